package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStaticFS_ContainsClient verifies the client files are embedded at the root.
func TestStaticFS_ContainsClient(t *testing.T) {
	fsys, err := StaticFS()
	require.NoError(t, err)
	for _, name := range []string{"index.html", "app.js", "style.css"} {
		_, err := fs.Stat(fsys, name)
		assert.NoError(t, err, name)
	}
}

package scene

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSaveLoad_RoundTrip verifies saving and loading preserves the layout.
func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "layout.yaml")
	in := sampleLayout()
	in.Elements[2].Directions = []geom.Direction{geom.DirTop}

	require.NoError(t, SaveFile(path, in))
	out, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

// TestLoadFile_MissingReturnsEmpty verifies missing files return zero data.
func TestLoadFile_MissingReturnsEmpty(t *testing.T) {
	out, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, out.Elements)
}

// TestLoadFile_RejectsInvalid verifies parse and validation errors.
func TestLoadFile_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("elements: [\n"), 0o600))
	_, err := LoadFile(bad)
	assert.Error(t, err)

	dup := filepath.Join(dir, "dup.yaml")
	require.NoError(t, os.WriteFile(dup, []byte("elements:\n  - id: a\n  - id: a\n"), 0o600))
	_, err = LoadFile(dup)
	assert.ErrorContains(t, err, "duplicate")
}

// TestWatch_ReloadsOnSave verifies file changes reach the callback.
func TestWatch_ReloadsOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Layout, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zerolog.Nop(), func(l Layout) { got <- l })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, SaveFile(path, sampleLayout()))

	select {
	case l := <-got:
		assert.Len(t, l.Elements, 3)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}
	cancel()
	require.NoError(t, <-done)
}

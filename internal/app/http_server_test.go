package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/pointerkit/internal/config"
	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/pointer"
	"github.com/frudas24/pointerkit/internal/rtc"
	"github.com/frudas24/pointerkit/internal/scene"
	"github.com/frudas24/pointerkit/internal/session"
)

// newTestApp returns an App whose layout file lives in a temp dir.
func newTestApp(t *testing.T) (*App, *session.Session, *http.ServeMux) {
	t.Helper()
	sess := session.New("pw")
	peers, err := rtc.NewFactory(nil)
	require.NoError(t, err)
	cfg := config.Config{
		UIPassword:   "pw",
		LayoutPath:   filepath.Join(t.TempDir(), "layout.yaml"),
		ViewerPolicy: config.PolicyReject,
		Tuning:       pointer.DefaultTuning(),
	}
	a, err := New(cfg, sess, peers, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, a.Start())
	mux := http.NewServeMux()
	a.RegisterRoutes(mux, t.TempDir())
	return a, sess, mux
}

func serve(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// TestNew_RequiresDependencies verifies constructor validation.
func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(config.Config{}, nil, nil, zerolog.Nop())
	assert.Error(t, err)
	_, err = New(config.Config{}, session.New("pw"), nil, zerolog.Nop())
	assert.Error(t, err)
}

// TestLogin_FlowAndState verifies login, state and logout.
func TestLogin_FlowAndState(t *testing.T) {
	_, _, mux := newTestApp(t)

	assert.Equal(t, http.StatusUnauthorized, serve(mux, http.MethodGet, "/api/state", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(mux, http.MethodGet, "/login", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(mux, http.MethodPost, "/login", `{"password":"no"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(mux, http.MethodPost, "/login", `{`).Code)
	require.Equal(t, http.StatusOK, serve(mux, http.MethodPost, "/login", `{"password":"pw"}`).Code)

	rec := serve(mux, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var st stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.True(t, st.Authenticated)
	assert.True(t, st.InputEnabled)
	assert.False(t, st.ControlActive)
	assert.Zero(t, st.Elements)

	require.Equal(t, http.StatusOK, serve(mux, http.MethodPost, "/logout", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(mux, http.MethodGet, "/api/state", "").Code)
}

// TestLayout_PutSavesAndReloads verifies the layout endpoint persists to disk.
func TestLayout_PutSavesAndReloads(t *testing.T) {
	a, sess, mux := newTestApp(t)
	require.True(t, sess.Authenticate("pw"))

	l := scene.Layout{
		Viewport: geom.Rect{W: 640, H: 480},
		Elements: []scene.ElementSpec{{ID: "btn", Rect: geom.Rect{W: 10, H: 10}, Gestures: []scene.Gesture{scene.GestureClick}}},
	}
	body, err := json.Marshal(l)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, serve(mux, http.MethodPut, "/api/layout", string(body)).Code)

	rec := serve(mux, http.MethodGet, "/api/layout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got scene.Layout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "btn", got.Elements[0].ID)

	onDisk, err := scene.LoadFile(a.cfg.LayoutPath)
	require.NoError(t, err)
	require.Len(t, onDisk.Elements, 1)
	assert.Equal(t, l.Elements[0].Rect, onDisk.Elements[0].Rect)
	assert.Equal(t, l.Viewport, onDisk.Viewport)

	bad := `{"elements":[{"id":"x","gestures":["fly"]}]}`
	assert.Equal(t, http.StatusBadRequest, serve(mux, http.MethodPut, "/api/layout", bad).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(mux, http.MethodDelete, "/api/layout", "").Code)
}

// TestNewChannel_UsesCurrentLayout verifies data channel sessions see the live layout.
func TestNewChannel_UsesCurrentLayout(t *testing.T) {
	a, _, _ := newTestApp(t)
	a.SetLayout(scene.Layout{Elements: []scene.ElementSpec{{ID: "a"}, {ID: "b"}}})
	ch, err := a.NewChannel("dc", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, ch.Scene().Len())
}

// TestFavicon verifies the empty favicon response.
func TestFavicon(t *testing.T) {
	_, _, mux := newTestApp(t)
	assert.Equal(t, http.StatusNoContent, serve(mux, http.MethodGet, "/favicon.ico", "").Code)
}

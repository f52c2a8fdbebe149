package app

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/frudas24/pointerkit/internal/scene"
	"github.com/frudas24/pointerkit/internal/web"
)

// RegisterRoutes wires API and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		staticDir = filepath.Join("internal", "web", "static")
	}

	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/layout", a.handleLayout)
	mux.Handle("/ws/signal", a.Signaling())
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)

	mux.Handle("/", a.staticFileServer(staticDir))
}

type loginRequest struct {
	Password string `json:"password"`
}

type stateResponse struct {
	Authenticated bool `json:"authenticated"`
	InputEnabled  bool `json:"inputEnabled"`
	ControlActive bool `json:"controlActive"`
	Elements      int  `json:"elements"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		a.log.Warn().Str("remote", r.RemoteAddr).Msg("login failed")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleState returns the current session state.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	snap := a.session.Snapshot()
	resp := stateResponse{
		Authenticated: snap.Authenticated,
		InputEnabled:  snap.InputEnabled,
		ControlActive: a.control.Active(),
		Elements:      len(a.Layout().Elements),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// handleLayout returns the layout on GET and replaces it on PUT.
func (a *App) handleLayout(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(a.Layout())
	case http.MethodPut:
		var l scene.Layout
		if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if err := l.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := a.SaveLayout(l); err != nil {
			a.log.Error().Err(err).Msg("save layout")
			http.Error(w, "failed to save layout", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func (a *App) staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		a.log.Error().Err(err).Msg("static assets unavailable")
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Package app wires HTTP, signaling, control and the layout store together.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/frudas24/pointerkit/internal/config"
	"github.com/frudas24/pointerkit/internal/control"
	"github.com/frudas24/pointerkit/internal/rtc"
	"github.com/frudas24/pointerkit/internal/scene"
	"github.com/frudas24/pointerkit/internal/session"
	"github.com/frudas24/pointerkit/internal/signaling"
)

// App coordinates the HTTP API, the websocket servers and the layout.
type App struct {
	mu        sync.RWMutex
	cfg       config.Config
	log       zerolog.Logger
	session   *session.Session
	layout    scene.Layout
	signaling *signaling.Server
	control   *control.Server
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, peers *rtc.Factory, log zerolog.Logger) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if peers == nil {
		return nil, errors.New("peer factory is required")
	}

	app := &App{
		cfg:     cfg,
		log:     log.With().Str("component", "app").Logger(),
		session: sess,
	}

	policy := signaling.ViewerReject
	if cfg.ViewerPolicy == config.PolicyReplace {
		policy = signaling.ViewerReplace
	}
	app.signaling = signaling.NewServer(peers, app.NewChannel, policy, sess.IsAuthenticated, log)
	app.control = control.NewServer(sess, app.Layout, cfg.Tuning, log)

	return app, nil
}

// Start loads the layout file.
func (a *App) Start() error {
	l, err := scene.LoadFile(a.cfg.LayoutPath)
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}
	a.SetLayout(l)
	a.log.Info().Str("file", a.cfg.LayoutPath).Int("elements", len(l.Elements)).Msg("layout loaded")
	return nil
}

// WatchLayout reloads the layout file on change until ctx is done.
func (a *App) WatchLayout(ctx context.Context) error {
	return scene.Watch(ctx, a.cfg.LayoutPath, a.log, a.SetLayout)
}

// Layout returns the current layout.
func (a *App) Layout() scene.Layout {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.layout
}

// SetLayout replaces the layout and pushes it to the open control
// connection.
func (a *App) SetLayout(l scene.Layout) {
	a.mu.Lock()
	a.layout = l
	a.mu.Unlock()
	a.control.ApplyLayout(l)
}

// SaveLayout validates l, writes it to the layout file and applies it.
func (a *App) SaveLayout(l scene.Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := scene.SaveFile(a.cfg.LayoutPath, l); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	a.SetLayout(l)
	return nil
}

// NewChannel builds a control channel on the current layout. It serves the
// WebRTC input data channel.
func (a *App) NewChannel(id string, send control.SendFunc) (*control.Channel, error) {
	return control.NewChannel(id, a.Layout(), a.session, a.cfg.Tuning, send, a.log.With().Str("component", "rtc-input").Logger())
}

// Signaling returns the signaling websocket handler.
func (a *App) Signaling() *signaling.Server {
	return a.signaling
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

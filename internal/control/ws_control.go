package control

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/frudas24/pointerkit/internal/pointer"
	"github.com/frudas24/pointerkit/internal/scene"
)

// Authenticator reports whether the viewer may open a control connection.
type Authenticator interface {
	IsAuthenticated() bool
}

// Session is the viewer state the control server needs.
type Session interface {
	Authenticator
	InputGate
}

// LayoutSource returns the layout new connections start from.
type LayoutSource func() scene.Layout

// Server handles websocket control input.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	session  Session
	layout   LayoutSource
	tuning   pointer.Tuning
	log      zerolog.Logger
	opts     []pointer.Option
	conn     *websocket.Conn
	channel  *Channel
}

// NewServer creates a control websocket server. opts are passed to every
// connection's recognizer context.
func NewServer(sess Session, layout LayoutSource, tuning pointer.Tuning, log zerolog.Logger, opts ...pointer.Option) *Server {
	return &Server{
		session: sess,
		layout:  layout,
		tuning:  tuning,
		log:     log.With().Str("component", "control").Logger(),
		opts:    opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and processes control messages.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		s.log.Warn().Err(err).Msg("rejecting control connection")
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)

	id := uuid.NewString()
	var writeMu sync.Mutex
	send := func(n Notice) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(n); err != nil {
			s.log.Debug().Err(err).Str("conn", id).Msg("control write failed")
		}
	}
	ch, err := NewChannel(id, s.layout(), s.session, s.tuning, send, s.log, s.opts...)
	if err != nil {
		s.log.Error().Err(err).Msg("control channel")
		return
	}
	ctx, cancel := context.WithCancel(r.Context())
	done := ch.Start(ctx)
	s.setChannel(conn, ch)
	defer func() {
		cancel()
		if err := <-done; err != nil {
			s.log.Error().Err(err).Str("conn", id).Msg("control loop")
		}
	}()
	s.log.Info().Str("conn", id).Msg("control connected")

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			s.log.Info().Str("conn", id).Msg("control disconnected")
			return
		}
		if !ch.Submit(msg) {
			s.log.Warn().Str("conn", id).Str("t", msg.T).Msg("control loop stopped, dropping message")
		}
	}
}

// ApplyLayout pushes a new layout to the active connection, if any.
func (s *Server) ApplyLayout(l scene.Layout) {
	s.mu.Lock()
	ch := s.channel
	s.mu.Unlock()
	if ch != nil {
		ch.ApplyLayout(l)
	}
}

// Active reports whether a control connection is open.
func (s *Server) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// acceptConn ensures only one active control connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("control connection already active")
	}
	s.conn = conn
	return nil
}

// setChannel records ch as the channel of conn while conn is active.
func (s *Server) setChannel(conn *websocket.Conn, ch *Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == conn {
		s.channel = ch
	}
}

// cleanupConn clears the active connection when closed.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
		s.channel = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
}

package signaling

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/pointerkit/internal/rtc"
)

func newSignalingServer(t *testing.T, authed bool) (*Server, string) {
	t.Helper()
	peers, err := rtc.NewFactory(nil)
	require.NoError(t, err)
	t.Cleanup(peers.ClosePeer)
	s := NewServer(peers, testFactory, ViewerReject, func() bool { return authed }, zerolog.Nop())
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return s, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func activeConn(s *Server) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peer != nil
}

// TestServer_RejectsUnauthenticated verifies the auth callback gates signaling.
func TestServer_RejectsUnauthenticated(t *testing.T) {
	_, url := newSignalingServer(t, false)
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestServer_RejectsSecondViewer verifies the reject policy closes newcomers with a reason.
func TestServer_RejectsSecondViewer(t *testing.T) {
	s, url := newSignalingServer(t, true)
	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()
	require.Eventually(t, func() bool { return activeConn(s) }, 2*time.Second, 5*time.Millisecond)

	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = second.ReadMessage()
	var ce *websocket.CloseError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, websocket.ClosePolicyViolation, ce.Code)
}

// TestServer_EmptyOfferClosesConnection verifies protocol errors end the session.
func TestServer_EmptyOfferClosesConnection(t *testing.T) {
	s, url := newSignalingServer(t, true)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return activeConn(s) }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteJSON(Message{T: MsgOffer}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	require.Eventually(t, func() bool { return !activeConn(s) }, 2*time.Second, 5*time.Millisecond)
}

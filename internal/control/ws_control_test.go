package control

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

	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/pointer"
	"github.com/frudas24/pointerkit/internal/scene"
	"github.com/frudas24/pointerkit/internal/session"
)

func newTestServer(t *testing.T, authenticated bool) (*Server, string) {
	t.Helper()
	sess := session.New("pw")
	if authenticated {
		require.True(t, sess.Authenticate("pw"))
	}
	layout := func() scene.Layout {
		return testLayout(scene.ElementSpec{ID: "btn", Rect: geom.Rect{W: 50, H: 50}, Gestures: []scene.Gesture{scene.GestureClick}})
	}
	s := NewServer(sess, layout, pointer.DefaultTuning(), zerolog.Nop())
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return s, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func readUntil(t *testing.T, conn *websocket.Conn, typ string) Notice {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var n Notice
		require.NoError(t, conn.ReadJSON(&n))
		if n.T == typ {
			return n
		}
	}
}

// TestServer_RejectsUnauthenticated verifies the login requirement.
func TestServer_RejectsUnauthenticated(t *testing.T) {
	_, url := newTestServer(t, false)
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestServer_ClickRoundTrip verifies messages reach the recognizers and notices come back.
func TestServer_ClickRoundTrip(t *testing.T) {
	s, url := newTestServer(t, true)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(Message{T: MsgDown, ID: 1, X: 10, Y: 10}))
	require.NoError(t, conn.WriteJSON(Message{T: MsgUp, ID: 1, X: 10, Y: 10}))

	n := readUntil(t, conn, NoticeClick)
	assert.Equal(t, "btn", n.Target)
	assert.True(t, s.Active())
}

// TestServer_SingleConnection verifies a second control client is refused.
func TestServer_SingleConnection(t *testing.T) {
	s, url := newTestServer(t, true)
	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()
	require.Eventually(t, s.Active, time.Second, 5*time.Millisecond)

	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = second.ReadMessage()
	assert.Error(t, err)
}

// TestServer_ApplyLayoutReachesChannel verifies layout pushes reach the open connection.
func TestServer_ApplyLayoutReachesChannel(t *testing.T) {
	s, url := newTestServer(t, true)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, s.Active, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.channel != nil
	}, time.Second, 5*time.Millisecond)
	s.ApplyLayout(testLayout(scene.ElementSpec{ID: "other", Rect: geom.Rect{W: 50, H: 50}, Gestures: []scene.Gesture{scene.GestureClick}}))

	require.NoError(t, conn.WriteJSON(Message{T: MsgDown, ID: 1, X: 10, Y: 10}))
	require.NoError(t, conn.WriteJSON(Message{T: MsgUp, ID: 1, X: 10, Y: 10}))
	n := readUntil(t, conn, NoticeClick)
	assert.Equal(t, "other", n.Target)
}

// Package rtc builds the WebRTC peer connections that carry control
// messages over a data channel.
package rtc

import (
	"fmt"
	"sync"

	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v3"
)

// InputLabel is the label of the data channel carrying control messages.
const InputLabel = "input"

// Factory owns the pion API and the single active peer connection.
type Factory struct {
	mu     sync.Mutex
	api    *webrtc.API
	config webrtc.Configuration
	peer   *webrtc.PeerConnection
}

// NewFactory initializes the pion API with default codecs and interceptors.
// iceServers are STUN/TURN URLs; none means host candidates only.
func NewFactory(iceServers []string) (*Factory, error) {
	media := &webrtc.MediaEngine{}
	if err := media.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("register codecs: %w", err)
	}

	interceptors := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(media, interceptors); err != nil {
		return nil, fmt.Errorf("register interceptors: %w", err)
	}

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(media),
		webrtc.WithInterceptorRegistry(interceptors),
	)

	cfg := webrtc.Configuration{}
	if len(iceServers) > 0 {
		cfg.ICEServers = []webrtc.ICEServer{{URLs: iceServers}}
	}
	return &Factory{api: api, config: cfg}, nil
}

// Config returns the peer configuration used for new peers.
func (f *Factory) Config() webrtc.Configuration {
	return f.config
}

// NewPeer creates a new peer connection, closing the previous one.
func (f *Factory) NewPeer() (*webrtc.PeerConnection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.peer != nil {
		_ = f.peer.Close()
		f.peer = nil
	}

	peer, err := f.api.NewPeerConnection(f.config)
	if err != nil {
		return nil, fmt.Errorf("new peer: %w", err)
	}
	f.peer = peer
	return peer, nil
}

// ClosePeer closes the current peer connection.
func (f *Factory) ClosePeer() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.peer != nil {
		_ = f.peer.Close()
		f.peer = nil
	}
}

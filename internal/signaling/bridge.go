package signaling

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/frudas24/pointerkit/internal/control"
)

// ChannelFactory builds the control channel for one data channel.
type ChannelFactory func(id string, send control.SendFunc) (*control.Channel, error)

// bridge moves control messages between a data channel and a control
// channel. It knows nothing about pion so it can be driven directly.
type bridge struct {
	log    zerolog.Logger
	ch     *control.Channel
	cancel context.CancelFunc
	done   <-chan error
	once   sync.Once
}

// newBridge builds the channel and starts its loop. sendText writes one
// text frame to the data channel.
func newBridge(ctx context.Context, id string, factory ChannelFactory, sendText func(string) error, log zerolog.Logger) (*bridge, error) {
	log = log.With().Str("conn", id).Logger()
	send := func(n control.Notice) {
		data, err := json.Marshal(n)
		if err != nil {
			log.Error().Err(err).Str("t", n.T).Msg("encode notice")
			return
		}
		if err := sendText(string(data)); err != nil {
			log.Debug().Err(err).Msg("data channel write failed")
		}
	}
	ch, err := factory(id, send)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	b := &bridge{log: log, ch: ch, cancel: cancel}
	b.done = ch.Start(ctx)
	return b, nil
}

// receive decodes one data channel frame and queues it.
func (b *bridge) receive(data []byte) {
	var msg control.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		b.log.Warn().Err(err).Msg("bad control frame")
		return
	}
	if !b.ch.Submit(msg) {
		b.log.Warn().Str("t", msg.T).Msg("control loop stopped, dropping message")
	}
}

// close stops the loop and waits for it.
func (b *bridge) close() {
	b.once.Do(func() {
		b.cancel()
		if err := <-b.done; err != nil {
			b.log.Error().Err(err).Msg("control loop")
		}
	})
}

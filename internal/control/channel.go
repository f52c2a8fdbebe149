package control

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
	"github.com/frudas24/pointerkit/internal/pointer"
	"github.com/frudas24/pointerkit/internal/scene"
)

// InputGate switches remote input on and off.
type InputGate interface {
	InputEnabled() bool
	SetInputEnabled(enabled bool)
}

// SendFunc delivers a notice to the client. It is called from the channel
// loop goroutine only.
type SendFunc func(n Notice)

// Channel owns the recognizer context and the scene of one client. All
// recognizer work runs on the context loop; Submit is safe from any
// goroutine.
type Channel struct {
	id    string
	log   zerolog.Logger
	gate  InputGate
	send  SendFunc
	scene *scene.Scene
	pctx  *pointer.Context

	// touchOrigin pins each active touch contact to the element it went
	// down on, which keeps receiving that contact's events until release.
	touchOrigin map[int]*scene.Element
}

var (
	_ scene.Notifier     = (*Channel)(nil)
	_ pointer.CursorSink = (*Channel)(nil)
	_ pointer.Overlay    = (*Channel)(nil)
)

// NewChannel builds a channel showing layout. gate may be nil, in which
// case input is always enabled. Extra options are applied after the
// channel's own wiring, so tests can swap the clock.
func NewChannel(id string, layout scene.Layout, gate InputGate, tuning pointer.Tuning, send SendFunc, log zerolog.Logger, opts ...pointer.Option) (*Channel, error) {
	ch := &Channel{
		id:          id,
		log:         log.With().Str("conn", id).Logger(),
		gate:        gate,
		send:        send,
		touchOrigin: make(map[int]*scene.Element),
	}
	ch.scene = scene.New(ch)
	if err := ch.scene.Apply(layout); err != nil {
		return nil, fmt.Errorf("apply layout: %w", err)
	}
	base := []pointer.Option{
		pointer.WithTuning(tuning),
		pointer.WithLogger(ch.log),
		pointer.WithViewport(ch.scene.Viewport),
		pointer.WithHitTester(ch.scene),
		pointer.WithCursorSink(ch),
		pointer.WithOverlay(ch),
		pointer.WithErrorHandler(ch.reportError),
		pointer.WithTapEvents(),
	}
	ch.pctx = pointer.New(append(base, opts...)...)
	return ch, nil
}

// ID returns the connection id.
func (ch *Channel) ID() string { return ch.id }

// Scene returns the element scene of the channel.
func (ch *Channel) Scene() *scene.Scene { return ch.scene }

// Pointer returns the recognizer context.
func (ch *Channel) Pointer() *pointer.Context { return ch.pctx }

// Run drives the recognizer loop until ctx is done.
func (ch *Channel) Run(ctx context.Context) error {
	return ch.pctx.Run(ctx)
}

// Start runs the loop in its own goroutine and returns once it accepts
// messages. The returned channel yields the loop result.
func (ch *Channel) Start(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() { done <- ch.pctx.Run(ctx) }()
	select {
	case <-ch.pctx.Ready():
	case <-ctx.Done():
	}
	return done
}

// Submit queues msg for the loop. It reports false when the loop is not
// running.
func (ch *Channel) Submit(msg Message) bool {
	return ch.pctx.Post(func() { ch.Handle(msg) })
}

// ApplyLayout queues a scene replacement.
func (ch *Channel) ApplyLayout(l scene.Layout) bool {
	return ch.pctx.Post(func() {
		if err := ch.scene.Apply(l); err != nil {
			ch.reportError(err)
		}
	})
}

// Handle processes one message synchronously. It must run on the loop
// goroutine, or before the loop is started.
func (ch *Channel) Handle(msg Message) {
	switch msg.T {
	case MsgViewport:
		ch.scene.SetViewport(msg.W, msg.H)
		return
	case MsgLayout:
		if msg.Layout == nil {
			return
		}
		if err := ch.scene.Apply(*msg.Layout); err != nil {
			ch.reportError(err)
		}
		return
	case MsgInputEnabled:
		if msg.Enabled != nil && ch.gate != nil {
			ch.gate.SetInputEnabled(*msg.Enabled)
		}
		return
	}
	if ch.gate != nil && !ch.gate.InputEnabled() {
		return
	}
	e, ok := msg.Event(ch.resolveTarget(msg))
	if !ok {
		ch.log.Debug().Str("t", msg.T).Str("family", msg.Family).Msg("ignored message")
		return
	}
	if ch.pctx.HasTouchButMouse(e) {
		return
	}
	ch.route(e)
}

// resolveTarget returns the element the event belongs to: the named
// target when known, else the topmost element under the pointer, lifted
// to the nearest element that binds gestures. Touch contacts stay on the
// element they went down on until they are released or cancelled.
func (ch *Channel) resolveTarget(msg Message) input.Element {
	if input.Family(msg.Family) == input.FamilyTouch {
		switch msg.T {
		case MsgMove:
			if el, ok := ch.touchOrigin[msg.ID]; ok {
				return el
			}
		case MsgUp, MsgCancel:
			if el, ok := ch.touchOrigin[msg.ID]; ok {
				delete(ch.touchOrigin, msg.ID)
				return el
			}
		}
	}
	el := ch.hitTarget(msg)
	if el == nil {
		return nil
	}
	if msg.T == MsgDown && input.Family(msg.Family) == input.FamilyTouch {
		ch.touchOrigin[msg.ID] = el
	}
	return el
}

// hitTarget resolves a message without touch pinning.
func (ch *Channel) hitTarget(msg Message) *scene.Element {
	var el *scene.Element
	if msg.Target != "" {
		el, _ = ch.scene.Get(msg.Target)
	}
	if el == nil {
		switch msg.T {
		case MsgEnter, MsgLeave:
			return nil
		}
		el, _ = ch.scene.At(msg.X, msg.Y)
	}
	if el == nil {
		return nil
	}
	return bindingOwner(el)
}

// bindingOwner walks up from el to the first element with gestures.
func bindingOwner(el *scene.Element) *scene.Element {
	for cur := el; cur != nil; {
		if len(cur.Spec().Gestures) > 0 {
			return cur
		}
		p, ok := cur.Parent().(*scene.Element)
		if !ok {
			break
		}
		cur = p
	}
	return el
}

// emit sends n to the client, if anyone listens.
func (ch *Channel) emit(n Notice) {
	if ch.send != nil {
		ch.send(n)
	}
}

// reportError logs err and forwards it as an error notice.
func (ch *Channel) reportError(err error) {
	if err == nil {
		return
	}
	ch.log.Error().Err(err).Msg("recognizer error")
	ch.emit(Notice{T: NoticeError, Error: err.Error()})
}

// Signal forwards element signals (tap, dragenter, drop...) to the client.
func (ch *Channel) Signal(id string, sig input.Signal) {
	n := Notice{T: sig.Type, Target: id, Value: sig.Value}
	if sig.Event != nil {
		n.X, n.Y = sig.Event.X, sig.Event.Y
	}
	ch.emit(n)
}

// Capture forwards a pointer capture request.
func (ch *Channel) Capture(id string, pointerID int) {
	ch.emit(Notice{T: NoticeCapture, Target: id, Pointer: pointerID})
}

// Hover is covered by the dragenter and dragleave signals.
func (ch *Channel) Hover(id string, on bool) {
	ch.log.Trace().Str("target", id).Bool("on", on).Msg("drop hover")
}

// ApplyCursor forwards the global cursor override.
func (ch *Channel) ApplyCursor(cursor, rule string) {
	ch.emit(Notice{T: NoticeCursor, Cursor: cursor, Rule: rule})
}

// Indicator forwards the gesture indicator state.
func (ch *Channel) Indicator(st pointer.IndicatorState) {
	ch.emit(Notice{T: NoticeIndicator, Indicator: &st})
}

// Ghost forwards the drag clone state.
func (ch *Channel) Ghost(st pointer.GhostState) {
	ch.emit(Notice{T: NoticeGhost, Ghost: &st})
}

// moveElement shifts the element rect and reports it.
func (ch *Channel) moveElement(el *scene.Element, dx, dy float64) {
	r := el.Bounds()
	r.X += dx
	r.Y += dy
	ch.setRect(el, NoticeMove, r, "")
}

// setRect stores r on the element and reports the applied rect.
func (ch *Channel) setRect(el *scene.Element, typ string, r geom.Rect, border geom.Border) {
	if err := ch.scene.SetRect(el.ID(), r); err != nil {
		ch.reportError(err)
		return
	}
	r = el.Bounds()
	ch.emit(Notice{T: typ, Target: el.ID(), Rect: &r, Border: border})
}

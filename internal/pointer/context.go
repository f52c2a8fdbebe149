// Package pointer turns normalized input events into gestures: bounded
// drags, resizes, clicks, long presses, pinch/wheel scaling, directional
// swipes, drag-and-drop, hover and context menus.
//
// All state that a browser would keep in module globals (cursor override,
// drag payload, last click, wheel accumulator) lives on a Context, so several
// independent surfaces can run side by side. A Context is confined to one
// goroutine. Timers (long press, menu, wheel gesture) need the loop: run it
// with Run and hand work over with Post. Calling a Context directly from a
// single goroutine without a loop only works with a clock that fires
// inline, such as clock.Fake; with the real clock, timer callbacks are
// dropped instead of racing the caller.
package pointer

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/frudas24/pointerkit/internal/clock"
	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
	"github.com/rs/zerolog"
)

const loopQueueSize = 256

// ErrLoopRunning is returned by Run when the loop is already active.
var ErrLoopRunning = errors.New("pointer: loop already running")

// Option configures a Context.
type Option func(*Context)

// WithClock overrides the time source.
func WithClock(clk clock.Clock) Option {
	return func(c *Context) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithTuning overrides the recognizer constants.
func WithTuning(t Tuning) Option {
	return func(c *Context) {
		c.tuning = t
	}
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Context) {
		c.log = log
	}
}

// WithViewport sets the function reporting the visible area used as the
// default drag bounds.
func WithViewport(fn func() geom.Rect) Option {
	return func(c *Context) {
		if fn != nil {
			c.viewport = fn
		}
	}
}

// WithHitTester sets the element lookup used by drag-and-drop.
func WithHitTester(h HitTester) Option {
	return func(c *Context) {
		c.hit = h
	}
}

// WithCursorSink sets where the cursor override is rendered.
func WithCursorSink(s CursorSink) Option {
	return func(c *Context) {
		c.cursorSink = s
	}
}

// WithOverlay sets where gesture indicator and drag clone are rendered.
func WithOverlay(o Overlay) Option {
	return func(c *Context) {
		c.overlay = o
	}
}

// WithErrorHandler receives errors returned by asynchronous handlers.
func WithErrorHandler(fn func(error)) Option {
	return func(c *Context) {
		c.onError = fn
	}
}

// WithTapEvents makes every dispatched press emit tap/dbltap signals to its
// target.
func WithTapEvents() Option {
	return func(c *Context) {
		c.taps = true
	}
}

// Context owns the listeners and shared state of one input surface.
type Context struct {
	tuning     Tuning
	clock      clock.Clock
	log        zerolog.Logger
	viewport   func() geom.Rect
	hit        HitTester
	cursorSink CursorSink
	overlay    Overlay
	onError    func(error)
	taps       bool

	listeners []*listener

	loop      atomic.Pointer[loop]
	stopped   atomic.Bool
	ready     chan struct{}
	readyOnce sync.Once
	// inlineTimers lets timer callbacks run without a loop.
	inlineTimers bool

	cursor    *string
	dragData  any
	moving    bool
	hooks     []hookEntry
	hookSeq   int
	lastClick clickRecord
	lastLong  time.Time
	lastTouch time.Time
	wheel     wheelGesture
	indicator IndicatorState
	hovering  map[string]bool
	scaling   map[string]bool
}

type loop struct {
	tasks chan func()
	done  <-chan struct{}
}

// New returns a Context with default tuning and the wall clock.
func New(opts ...Option) *Context {
	c := &Context{
		tuning:   DefaultTuning(),
		clock:    clock.Real{},
		log:      zerolog.Nop(),
		viewport: func() geom.Rect { return geom.Rect{} },
		hovering: make(map[string]bool),
		scaling:  make(map[string]bool),
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if ic, ok := c.clock.(clock.Inline); ok && ic.Inline() {
		c.inlineTimers = true
	}
	if c.onError == nil {
		c.onError = func(err error) {
			c.log.Error().Err(err).Msg("pointer handler failed")
		}
	}
	return c
}

// Tuning returns the active recognizer constants.
func (c *Context) Tuning() Tuning {
	return c.tuning
}

// Run executes posted tasks and timer callbacks until ctx is done. Once Run
// has returned, late timer callbacks are dropped.
func (c *Context) Run(ctx context.Context) error {
	l := &loop{tasks: make(chan func(), loopQueueSize), done: ctx.Done()}
	if !c.loop.CompareAndSwap(nil, l) {
		return ErrLoopRunning
	}
	defer func() {
		c.stopped.Store(true)
		c.loop.Store(nil)
	}()
	c.readyOnce.Do(func() { close(c.ready) })
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Ready is closed once the first loop accepts tasks.
func (c *Context) Ready() <-chan struct{} {
	return c.ready
}

// Post hands fn to the running loop. It reports false when no loop runs.
func (c *Context) Post(fn func()) bool {
	l := c.loop.Load()
	if l == nil {
		return false
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// exec runs a timer callback on the loop. Without a loop it runs inline
// only for clocks that fire on the caller's goroutine.
func (c *Context) exec(fn func()) {
	if c.Post(fn) {
		return
	}
	if c.stopped.Load() {
		return
	}
	if !c.inlineTimers {
		c.log.Warn().Msg("timer fired without a running loop, dropped")
		return
	}
	fn()
}

// after schedules fn on the loop after d.
func (c *Context) after(d time.Duration, fn func()) clock.Timer {
	return c.clock.AfterFunc(d, func() { c.exec(fn) })
}

// report forwards a handler error.
func (c *Context) report(err error) {
	if err != nil {
		c.onError(err)
	}
}

// viewportBounds returns the default drag area; an unknown viewport leaves
// the right and bottom edges open.
func (c *Context) viewportBounds() geom.Bounds {
	vp := c.viewport()
	if vp.W <= 0 || vp.H <= 0 {
		return geom.Bounds{Left: vp.X, Top: vp.Y, Right: math.Inf(1), Bottom: math.Inf(1)}
	}
	return vp.Bounds()
}

// listener is one registered event callback. A nil scope listens on the
// window; pointer < 0 accepts any pointer id; an empty family accepts all.
type listener struct {
	scope   input.Element
	family  input.Family
	kinds   []input.Kind
	pointer int
	fn      func(e *input.Event)
	removed bool
}

// matches reports whether e should be delivered to l.
func (l *listener) matches(e *input.Event) bool {
	if l.family != "" && l.family != e.Family {
		return false
	}
	if l.pointer >= 0 && l.pointer != e.PointerID {
		return false
	}
	if l.scope != nil && !input.Same(l.scope, e.Target) {
		return false
	}
	for _, k := range l.kinds {
		if k == e.Kind {
			return true
		}
	}
	return false
}

// listen registers l and returns it for later removal.
func (c *Context) listen(l *listener) *listener {
	c.listeners = append(c.listeners, l)
	return l
}

// unlisten removes the given listeners; unknown or nil entries are ignored.
func (c *Context) unlisten(ls ...*listener) {
	for _, l := range ls {
		if l != nil {
			l.removed = true
		}
	}
	kept := c.listeners[:0]
	for _, l := range c.listeners {
		if !l.removed {
			kept = append(kept, l)
		}
	}
	for i := len(kept); i < len(c.listeners); i++ {
		c.listeners[i] = nil
	}
	c.listeners = kept
}

// Listeners returns the number of registered listeners.
func (c *Context) Listeners() int {
	return len(c.listeners)
}

// Dispatch delivers e to every matching listener. Listeners removed while
// the event is in flight are skipped.
func (c *Context) Dispatch(e *input.Event) {
	if e == nil {
		return
	}
	if e.Time.IsZero() {
		e.Time = c.clock.Now()
	}
	if e.IsTouch() {
		c.lastTouch = c.clock.Now()
	}
	snapshot := make([]*listener, len(c.listeners))
	copy(snapshot, c.listeners)
	for _, l := range snapshot {
		if l.removed || !l.matches(e) {
			continue
		}
		l.fn(e)
	}
	if c.taps && e.Kind == input.KindDown {
		c.emitTaps(e)
	}
}

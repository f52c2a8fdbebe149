package pointer

import (
	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
)

// Verdict is what a session callback tells the tracker to do next.
type Verdict int

const (
	// Continue keeps tracking.
	Continue Verdict = iota
	// Stop stops tracking moves; Up and End still fire on release.
	Stop
	// Cancel stops tracking moves and suppresses End.
	Cancel
)

// DownOptions are the callbacks of one press-to-release session. All are
// optional.
type DownOptions struct {
	// Down runs once listeners are attached.
	Down func(e *input.Event)
	// Start runs on the first real movement. Anything but Continue aborts
	// the session before it starts.
	Start func(e *input.Event) Verdict
	// Move runs for every movement with the dominant direction of the step.
	Move func(e *input.Event, dir geom.Direction) Verdict
	// Up runs exactly once on release or cancel.
	Up func(e *input.Event)
	// End runs after Up when the session started and was not cancelled.
	End func(e *input.Event)
}

// downSession is the per-press state of Down.
type downSession struct {
	c         *Context
	opt       DownOptions
	x, y      float64
	started   bool
	cancelled bool
	tracking  bool
	moveL     *listener
	releaseL  *listener
}

// Down tracks one press until release. Move and release listeners are
// attached according to the event family of e: pointer events listen on the
// window for the pressing pointer only and capture the pointer on the
// target, mouse events listen on the window, touch events listen on the
// original target.
func (c *Context) Down(e *input.Event, opt DownOptions) {
	if e == nil {
		return
	}
	s := &downSession{c: c, opt: opt, x: e.X, y: e.Y, tracking: true}
	var scope input.Element
	pointerID := -1
	moveKinds := []input.Kind{input.KindMove}
	releaseKinds := []input.Kind{input.KindUp}
	switch e.Family {
	case input.FamilyMouse:
	case input.FamilyTouch:
		scope = e.Target
		releaseKinds = append(releaseKinds, input.KindCancel)
	default:
		pointerID = e.PointerID
		releaseKinds = append(releaseKinds, input.KindCancel)
		if cp, ok := e.Target.(input.Capturer); ok && cp != nil {
			cp.CapturePointer(e.PointerID)
		}
	}
	s.moveL = c.listen(&listener{scope: scope, family: e.Family, kinds: moveKinds, pointer: pointerID, fn: s.onMove})
	s.releaseL = c.listen(&listener{scope: scope, family: e.Family, kinds: releaseKinds, pointer: pointerID, fn: s.onRelease})
	if opt.Down != nil {
		opt.Down(e)
	}
}

// onMove applies one movement to the session.
func (s *downSession) onMove(e *input.Event) {
	if e.Target == nil || detached(e.Target) {
		e.PreventDefault()
	}
	if e.X == s.x && e.Y == s.y {
		return
	}
	dir := geom.MoveDir(e.X-s.x, e.Y-s.y)
	s.x, s.y = e.X, e.Y
	if !s.started {
		s.started = true
		if s.opt.Start != nil {
			if v := s.opt.Start(e); v != Continue {
				s.cancelled = true
				s.stopTracking()
				return
			}
		}
	}
	if s.opt.Move == nil {
		return
	}
	switch s.opt.Move(e, dir) {
	case Stop:
		s.stopTracking()
	case Cancel:
		s.cancelled = true
		s.stopTracking()
	}
}

// stopTracking drops the move listener. The release listener stays so Up
// still fires once on the physical release.
func (s *downSession) stopTracking() {
	if !s.tracking {
		return
	}
	s.tracking = false
	s.c.unlisten(s.moveL)
}

// onRelease ends the session on up or cancel.
func (s *downSession) onRelease(e *input.Event) {
	s.tracking = false
	s.c.unlisten(s.moveL, s.releaseL)
	if s.opt.Up != nil {
		s.opt.Up(e)
	}
	if s.started && !s.cancelled && s.opt.End != nil {
		s.opt.End(e)
	}
}

// detached reports whether el says it left the document.
func detached(el input.Element) bool {
	cn, ok := el.(input.Connected)
	return ok && cn != nil && !cn.Connected()
}

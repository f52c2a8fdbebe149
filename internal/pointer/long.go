package pointer

import (
	"math"
	"time"

	"github.com/frudas24/pointerkit/internal/clock"
	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
)

// LongOptions tunes a long press. A zero Delay uses the context default.
type LongOptions struct {
	Delay time.Duration
	Down  func(e *input.Event)
	Up    func(e *input.Event)
}

// Long calls handler when the pointer is held within the slop until the
// delay elapses. Leaving the slop once disarms the press for good. Errors
// returned by handler go to the context error handler.
func (c *Context) Long(e *input.Event, handler func(e *input.Event) error, opt LongOptions) {
	if e == nil {
		return
	}
	delay := opt.Delay
	if delay <= 0 {
		delay = c.tuning.LongDelay
	}
	tx, ty := e.X, e.Y
	var drift float64
	fired := false
	var timer clock.Timer
	timer = c.after(delay, func() {
		if timer == nil {
			return
		}
		timer = nil
		if drift > c.tuning.LongSlop {
			return
		}
		fired = true
		if handler != nil {
			c.report(handler(e))
		}
	})
	c.Down(e, DownOptions{
		Down: opt.Down,
		Move: func(ne *input.Event, _ geom.Direction) Verdict {
			drift = math.Max(drift, math.Max(math.Abs(ne.X-tx), math.Abs(ne.Y-ty)))
			return Continue
		},
		Up: func(*input.Event) {
			if opt.Up != nil {
				opt.Up(e)
			}
			if timer != nil {
				timer.Stop()
				timer = nil
			} else if fired {
				c.lastLong = c.clock.Now()
			}
		},
	})
}

// AllowEvent reports whether a click-like event should be handled. Events
// arriving right after a long press, or aimed at a disabled element, are
// rejected.
func (c *Context) AllowEvent(e *input.Event) bool {
	if !c.lastLong.IsZero() && c.clock.Now().Sub(c.lastLong) < c.tuning.LongSuppress {
		return false
	}
	if e != nil && e.Target != nil && input.IsDisabled(e.Target) {
		return false
	}
	return true
}

// HasTouchButMouse reports whether e is a compatibility mouse event that
// followed a recent touch.
func (c *Context) HasTouchButMouse(e *input.Event) bool {
	if e == nil || e.Family != input.FamilyMouse || c.lastTouch.IsZero() {
		return false
	}
	return c.clock.Now().Sub(c.lastTouch) < c.tuning.TouchMouseWindow
}

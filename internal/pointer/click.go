package pointer

import (
	"math"
	"time"

	"github.com/frudas24/pointerkit/internal/input"
)

// ClickHandler receives the release event and its position.
type ClickHandler func(e *input.Event, x, y float64)

type clickRecord struct {
	at   time.Time
	x, y float64
}

// Click calls handler when the primary button is released quickly at the
// press position. Any movement, a cancel or a slow release means no click.
func (c *Context) Click(e *input.Event, handler ClickHandler) {
	if e == nil || e.Button > input.ButtonPrimary {
		return
	}
	x, y := e.X, e.Y
	pressed := c.clock.Now()
	moved := false
	c.Down(e, DownOptions{
		Start: func(*input.Event) Verdict {
			moved = true
			return Cancel
		},
		Up: func(ne *input.Event) {
			if moved || ne.Kind == input.KindCancel {
				return
			}
			if c.clock.Now().Sub(pressed) >= c.tuning.ClickTimeout {
				return
			}
			if ne.X != x || ne.Y != y {
				return
			}
			if handler != nil {
				handler(ne, ne.X, ne.Y)
			}
		},
	})
}

// DblClick calls handler on the second of two clicks close in time and
// space. The last click is shared by every DblClick on the Context and is
// reset once a double click fires.
func (c *Context) DblClick(e *input.Event, handler ClickHandler) {
	c.Click(e, func(ne *input.Event, x, y float64) {
		now := c.clock.Now()
		last := c.lastClick
		if !last.at.IsZero() && now.Sub(last.at) <= c.tuning.DblClickWindow {
			if math.Abs(x-last.x) < c.tuning.DblClickRadius && math.Abs(y-last.y) < c.tuning.DblClickRadius {
				c.lastClick = clickRecord{}
				if handler != nil {
					handler(ne, x, y)
				}
				return
			}
		}
		c.lastClick = clickRecord{at: now, x: x, y: y}
	})
}

// emitTaps turns a dispatched press into tap/dbltap signals on its target.
func (c *Context) emitTaps(e *input.Event) {
	target := e.Target
	if target == nil {
		return
	}
	c.Click(e, func(*input.Event, float64, float64) {
		input.Send(target, input.Signal{Type: input.SignalTap, Event: e})
	})
	c.DblClick(e, func(*input.Event, float64, float64) {
		input.Send(target, input.Signal{Type: input.SignalDblTap, Event: e})
	})
}

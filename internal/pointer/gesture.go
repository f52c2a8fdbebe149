package pointer

import (
	"math"
	"time"

	"github.com/frudas24/pointerkit/internal/clock"
	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
)

// Claim is the answer of a GestureBefore callback.
type Claim int

const (
	// GestureBlock rejects the gesture but stops propagation; the caller
	// scrolls on its own.
	GestureBlock Claim = -1
	// GesturePass rejects the gesture and leaves the event alone.
	GesturePass Claim = 0
	// GestureAccept takes over the interaction and suppresses scrolling.
	GestureAccept Claim = 1
)

// GestureBefore decides whether a swipe in dir becomes a gesture.
type GestureBefore func(e *input.Event, dir geom.Direction) Claim

// GestureHandler fires once a swipe reached the threshold.
type GestureHandler func(dir geom.Direction)

// wheelGesture accumulates wheel bursts into one logical gesture.
type wheelGesture struct {
	last   time.Time
	offset float64
	done   bool
	timer  clock.Timer
	dir    geom.Direction
}

// Gesture recognizes a directional pull on the target element. Pointer
// gestures report the direction the content is pulled from, so dragging
// down yields top. Wheel gestures report the scroll direction.
func (c *Context) Gesture(e *input.Event, before GestureBefore, handler GestureHandler) {
	if e == nil || e.Target == nil || before == nil {
		return
	}
	if e.Kind == input.KindWheel {
		c.gestureWheel(e, before, handler)
		return
	}
	c.gesturePointer(e, before, handler)
}

// gesturePointer tracks a pull from a press until release.
func (c *Context) gesturePointer(e *input.Event, before GestureBefore, handler GestureHandler) {
	el := e.Target
	rect := el.Bounds()
	threshold := c.tuning.GestureThreshold
	var (
		offset, origin float64
		dir            geom.Direction
		probed, active bool
		guard          *listener
	)
	if e.IsTouch() {
		guard = c.listen(&listener{family: input.FamilyTouch, kinds: []input.Kind{input.KindMove}, pointer: -1, fn: func(te *input.Event) {
			if active {
				te.PreventDefault()
			}
		}})
	}
	c.Down(e, DownOptions{
		Move: func(ne *input.Event, d geom.Direction) Verdict {
			if !probed {
				probed = true
				dir = d.Reverse()
				switch before(ne, dir) {
				case GestureAccept:
					active = true
					ne.StopPropagation()
					ne.PreventDefault()
					if cp, ok := el.(input.Capturer); ok && cp != nil {
						cp.CapturePointer(ne.PointerID)
					}
				case GestureBlock:
					ne.StopPropagation()
					return Stop
				default:
					return Stop
				}
				origin = e.X
				if dir.Vertical() {
					origin = e.Y
				}
			}
			pos := ne.X
			if dir.Vertical() {
				pos = ne.Y
			}
			if dir.Leading() {
				offset = pos - origin
			} else {
				offset = origin - pos
			}
			offset = math.Max(0, math.Min(threshold, offset))
			c.indicator.Visible = offset > 0
			c.indicator.Done = offset >= threshold
			c.placeIndicator(rect, dir, offset, false)
			c.pushIndicator()
			return Continue
		},
		Up: func(*input.Event) {
			if guard != nil {
				c.unlisten(guard)
			}
		},
		End: func(*input.Event) {
			if !active {
				return
			}
			c.indicator.Visible = false
			c.pushIndicator()
			if offset >= threshold && handler != nil {
				handler(dir)
			}
		},
	})
}

// gestureWheel accumulates wheel deltas into one gesture per burst.
func (c *Context) gestureWheel(e *input.Event, before GestureBefore, handler GestureHandler) {
	w := &c.wheel
	t := c.tuning
	now := c.clock.Now()
	if now.Sub(w.last) > t.GestureWheelIdle {
		w.offset = 0
		w.done = false
		w.timer = nil
		w.dir = ""
	}
	w.last = now
	if w.dir != "" && e.Cancelable {
		e.StopPropagation()
		e.PreventDefault()
	}
	if w.done {
		return
	}
	rect := e.Target.Bounds()
	if w.dir == "" {
		w.dir = geom.MoveDir(e.DeltaX, e.DeltaY)
		switch before(e, w.dir) {
		case GestureAccept:
			e.StopPropagation()
			e.PreventDefault()
		case GestureBlock:
			e.StopPropagation()
			w.done = true
			return
		default:
			w.dir = ""
			return
		}
		c.placeIndicator(rect, w.dir, 0, true)
		c.pushIndicator()
		c.indicator.Animated = true
	}
	delta := e.DeltaX
	if w.dir.Vertical() {
		delta = e.DeltaY
	}
	if w.dir.Leading() {
		w.offset -= delta
	} else {
		w.offset += delta
	}
	if w.offset < 0 {
		w.offset = 0
		c.indicator.Visible = false
		c.pushIndicator()
		return
	}
	offset := math.Min(t.GestureThreshold, w.offset/t.GestureWheelDamping)
	c.indicator.Visible = true
	c.indicator.Done = offset >= t.GestureThreshold
	c.placeIndicator(rect, w.dir, offset, false)
	c.pushIndicator()
	if w.timer != nil {
		w.timer.Stop()
	}
	if offset < t.GestureThreshold {
		w.timer = c.after(t.GestureWheelIdle, c.hideIndicator)
		return
	}
	w.done = true
	if handler != nil {
		handler(w.dir)
	}
	w.timer = c.after(t.GestureWheelLinger, c.hideIndicator)
}

// hideIndicator hides the gesture indicator.
func (c *Context) hideIndicator() {
	c.indicator.Visible = false
	c.indicator.Animated = false
	c.pushIndicator()
}

// placeIndicator positions the indicator along the edge the gesture pulls
// from. The initial placement sits half an indicator inside the edge.
func (c *Context) placeIndicator(rect geom.Rect, dir geom.Direction, offset float64, init bool) {
	size := c.tuning.IndicatorSize
	travel := c.tuning.GestureTravel
	ind := &c.indicator
	ind.Size = size
	ind.Scale = offset / c.tuning.GestureThreshold
	if dir.Vertical() {
		ind.Left = rect.X + (rect.W-size)/2
		switch {
		case init && dir == geom.DirTop:
			ind.Top = rect.Y + size/2
		case init:
			ind.Top = rect.Bottom() - size/2
		case dir == geom.DirTop:
			ind.Top = rect.Y + offset/travel
		default:
			ind.Top = rect.Bottom() - size - offset/travel
		}
		return
	}
	ind.Top = rect.Y + (rect.H-size)/2
	switch {
	case init && dir == geom.DirLeft:
		ind.Left = rect.X + size/2
	case init:
		ind.Left = rect.Right() - size/2
	case dir == geom.DirLeft:
		ind.Left = rect.X + offset/travel
	default:
		ind.Left = rect.Right() - size - offset/travel
	}
}

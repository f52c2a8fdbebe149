package pointer

import (
	"math"

	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
)

// ScaleHandler receives a zoom factor and the pan delta of the gesture
// center. A wheel reports a zero delta: the zoom origin is the event
// position.
type ScaleHandler func(e *input.Event, factor float64, delta geom.Point)

type trackedPointer struct {
	id   int
	x, y float64
}

// scaleState tracks the pointers of one Scale session in press order.
type scaleState struct {
	pointers   []trackedPointer
	lastDis    float64
	lastCenter geom.Point
	lastSingle geom.Point
}

// index returns the press-order slot of pointer id, or -1.
func (s *scaleState) index(id int) int {
	for i, p := range s.pointers {
		if p.id == id {
			return i
		}
	}
	return -1
}

// set records the position of pointer id, adding it when new.
func (s *scaleState) set(id int, x, y float64) {
	if i := s.index(id); i >= 0 {
		s.pointers[i].x, s.pointers[i].y = x, y
		return
	}
	s.pointers = append(s.pointers, trackedPointer{id: id, x: x, y: y})
}

// pinch returns the distance and midpoint of the first two pointers.
func (s *scaleState) pinch() (float64, geom.Point) {
	a, b := s.pointers[0], s.pointers[1]
	return math.Hypot(a.x-b.x, a.y-b.y), geom.Point{X: (a.x + b.x) / 2, Y: (a.y + b.y) / 2}
}

// rebase resets the pinch baseline after the pointer count changed.
func (s *scaleState) rebase() {
	switch len(s.pointers) {
	case 1:
		s.lastDis = 0
		s.lastSingle = geom.Point{X: s.pointers[0].x, Y: s.pointers[0].y}
	case 2:
		s.lastDis, s.lastCenter = s.pinch()
	}
}

// Scale unifies pinch, single-pointer pan and wheel zoom into one stream of
// (factor, delta) reports.
func (c *Context) Scale(e *input.Event, handler ScaleHandler) {
	if e == nil || handler == nil {
		return
	}
	if e.Kind == input.KindWheel {
		c.scaleWheel(e, handler)
		return
	}
	target := e.Target
	if target == nil || c.scaling[target.ID()] {
		return
	}
	c.scaling[target.ID()] = true
	s := &scaleState{lastSingle: geom.Point{X: e.X, Y: e.Y}}
	s.set(e.PointerID, e.X, e.Y)

	var moveL, upL, downL *listener
	moveL = c.listen(&listener{family: e.Family, kinds: []input.Kind{input.KindMove}, pointer: -1, fn: func(ne *input.Event) {
		if s.index(ne.PointerID) < 0 {
			s.set(ne.PointerID, ne.X, ne.Y)
			if len(s.pointers) == 2 {
				s.rebase()
			}
			return
		}
		s.set(ne.PointerID, ne.X, ne.Y)
		if len(s.pointers) >= 2 {
			dis, center := s.pinch()
			factor := 1.0
			if s.lastDis > 0 {
				factor = dis / s.lastDis
			}
			delta := geom.Point{X: center.X - s.lastCenter.X, Y: center.Y - s.lastCenter.Y}
			handler(ne, factor, delta)
			s.lastDis, s.lastCenter = dis, center
			return
		}
		dx, dy := ne.X-s.lastSingle.X, ne.Y-s.lastSingle.Y
		if dx != 0 || dy != 0 {
			handler(ne, 1, geom.Point{X: dx, Y: dy})
			s.lastSingle = geom.Point{X: ne.X, Y: ne.Y}
		}
	}})
	upL = c.listen(&listener{family: e.Family, kinds: []input.Kind{input.KindUp, input.KindCancel}, pointer: -1, fn: func(ne *input.Event) {
		if i := s.index(ne.PointerID); i >= 0 {
			s.pointers = append(s.pointers[:i], s.pointers[i+1:]...)
		}
		if len(s.pointers) == 1 {
			s.rebase()
		}
		if len(s.pointers) == 0 {
			c.unlisten(moveL, upL, downL)
			delete(c.scaling, target.ID())
		}
	}})
	downL = c.listen(&listener{family: e.Family, kinds: []input.Kind{input.KindDown}, pointer: -1, fn: func(ne *input.Event) {
		s.set(ne.PointerID, ne.X, ne.Y)
		if len(s.pointers) == 2 {
			s.rebase()
		}
	}})
}

// scaleWheel maps a wheel step to a zoom factor: steeper for small deltas,
// shallower past the threshold.
func (c *Context) scaleWheel(e *input.Event, handler ScaleHandler) {
	if e.DeltaY == 0 {
		return
	}
	e.PreventDefault()
	delta := math.Abs(e.DeltaY)
	slope := c.tuning.WheelZoomFine
	if delta > c.tuning.WheelZoomThreshold {
		slope = c.tuning.WheelZoomCoarse
	}
	zoom := delta * slope
	factor := 1 - zoom
	if e.DeltaY < 0 {
		factor = 1 + zoom
	}
	handler(e, factor, geom.Point{})
}

package pointer

import (
	"time"

	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
)

// MoveDetail is reported for every accepted movement of a Move session.
type MoveDetail struct {
	// DX and DY are the clamped deltas since the previous event.
	DX float64
	DY float64
	// X and Y are the clamped pointer position.
	X        float64
	Y        float64
	Border   geom.Border
	InBorder geom.Edges
	// Dir is the raw direction of the step, before clamping.
	Dir geom.Direction
}

// Sample is one entry of a session's movement trail.
type Sample struct {
	Time time.Time
	DX   float64
	DY   float64
}

// MoveOptions configures a bounded drag.
type MoveOptions struct {
	// Area limits the drag to the element's rect minus its insets.
	Area input.Element
	// Bounds limits the drag when Area is nil. Nil means the viewport.
	Bounds *geom.Bounds
	// Offset is added to each resolved edge.
	Offset geom.Bounds
	// Object is the dragged element; ObjectRect is used when it is nil.
	Object     input.Element
	ObjectRect geom.Rect
	// Cursor overrides the target's cursor during the session.
	Cursor string

	Start     func(x, y float64) Verdict
	Move      func(e *input.Event, d MoveDetail)
	BorderIn  func(x, y float64, border geom.Border, e *input.Event)
	BorderOut func()
	Up        func(trail []Sample, e *input.Event)
	End       func(trail []Sample, e *input.Event)
}

// MoveHook observes every Move session. Down runs before the session is
// set up; Up runs at release before the session's own Up.
type MoveHook struct {
	Down func(e *input.Event, opt *MoveOptions)
	Up   func(e *input.Event, opt *MoveOptions)
}

type hookEntry struct {
	id   int
	hook MoveHook
}

// AddMoveHook registers h and returns a function removing it.
func (c *Context) AddMoveHook(h MoveHook) (remove func()) {
	c.hookSeq++
	id := c.hookSeq
	c.hooks = append(c.hooks, hookEntry{id: id, hook: h})
	return func() {
		for i, he := range c.hooks {
			if he.id == id {
				c.hooks = append(c.hooks[:i:i], c.hooks[i+1:]...)
				return
			}
		}
	}
}

// Moving reports whether a Move session is between press and release.
func (c *Context) Moving() bool {
	return c.moving
}

// moveArea resolves the drag bounds once per session.
func (c *Context) moveArea(opt *MoveOptions) geom.Bounds {
	var b geom.Bounds
	switch {
	case opt.Area != nil:
		b = geom.Normalize(opt.Area.Bounds()).Bounds()
		if st, ok := opt.Area.(input.Styled); ok && st != nil {
			b = b.Inset(st.Insets())
		}
	case opt.Bounds != nil:
		b = *opt.Bounds
	default:
		b = c.viewportBounds()
	}
	return b.Shift(opt.Offset)
}

// Move runs a bounded drag of an element or virtual rect. The object keeps
// its grab point under the pointer while each of its edges is clamped to
// the area independently. It returns the resolved area.
func (c *Context) Move(e *input.Event, opt MoveOptions) geom.Bounds {
	if e == nil {
		return geom.Bounds{}
	}
	c.moving = true
	cursor := opt.Cursor
	if cursor == "" {
		if st, ok := e.Target.(input.Styled); ok && st != nil {
			cursor = st.Cursor()
		}
	}
	c.SetCursor(cursor)

	area := c.moveArea(&opt)
	tx, ty := e.X, e.Y
	inBorder := false
	var offLeft, offTop, offRight, offBottom float64
	var trail []Sample

	for _, he := range append([]hookEntry(nil), c.hooks...) {
		if he.hook.Down != nil {
			he.hook.Down(e, &opt)
		}
	}

	c.Down(e, DownOptions{
		Start: func(*input.Event) Verdict {
			if opt.Start != nil {
				if v := opt.Start(tx, ty); v != Continue {
					c.SetCursor("")
					return v
				}
			}
			obj := opt.ObjectRect
			if opt.Object != nil {
				obj = opt.Object.Bounds()
			}
			if obj.W > 0 {
				offLeft = tx - obj.X
			}
			if obj.H > 0 {
				offTop = ty - obj.Y
			}
			offRight = obj.W - offLeft
			offBottom = obj.H - offTop
			return Continue
		},
		Move: func(ne *input.Event, dir geom.Direction) Verdict {
			x, y := ne.X, ne.Y
			if x == tx && y == ty {
				return Continue
			}
			cx := geom.ClampToBorder(x, tx, x-offLeft, x+offRight, area.Left, area.Right, offLeft, offRight)
			cy := geom.ClampToBorder(y, ty, y-offTop, y+offBottom, area.Top, area.Bottom, offTop, offBottom)
			x, y = cx.Val, cy.Val
			edges := geom.Edges{Top: cy.AtMin, Right: cx.AtMax, Bottom: cy.AtMax, Left: cx.AtMin}
			border := geom.BorderNone
			if edges.Any() {
				border = geom.BorderType(edges, x, y, area, c.tuning.CornerTolerance)
				if !inBorder {
					inBorder = true
					if opt.BorderIn != nil {
						opt.BorderIn(x, y, border, ne)
					}
				}
			} else if inBorder {
				inBorder = false
				if opt.BorderOut != nil {
					opt.BorderOut()
				}
			}
			dx, dy := x-tx, y-ty
			trail = append(trail, Sample{Time: c.clock.Now(), DX: dx, DY: dy})
			if opt.Move != nil {
				opt.Move(ne, MoveDetail{DX: dx, DY: dy, X: x, Y: y, Border: border, InBorder: edges, Dir: dir})
			}
			tx, ty = x, y
			return Continue
		},
		Up: func(ne *input.Event) {
			c.moving = false
			c.SetCursor("")
			for _, he := range append([]hookEntry(nil), c.hooks...) {
				if he.hook.Up != nil {
					he.hook.Up(e, &opt)
				}
			}
			if opt.Up != nil {
				opt.Up(trail, ne)
			}
		},
		End: func(ne *input.Event) {
			if opt.End != nil {
				opt.End(trail, ne)
			}
		},
	})
	return area
}

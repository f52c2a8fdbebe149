package pointer

import (
	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
)

// ResizeOptions configures a border-driven resize. Zero max values mean
// unlimited.
type ResizeOptions struct {
	Border    geom.Border
	MinWidth  float64
	MinHeight float64
	MaxWidth  float64
	MaxHeight float64
	// Object is measured when ObjectRect is nil.
	Object     input.Element
	ObjectRect *geom.Rect

	Start func(x, y float64) Verdict
	Move  func(box geom.Rect, x, y float64, border geom.Border)
	End   func(trail []Sample, e *input.Event)
}

// Resize drags the edges named by opt.Border. The opposite edges stay put
// and the min/max sizes become bounds of the underlying Move.
func (c *Context) Resize(e *input.Event, opt ResizeOptions) {
	if e == nil {
		return
	}
	var box geom.Rect
	switch {
	case opt.ObjectRect != nil:
		box = *opt.ObjectRect
	case opt.Object != nil:
		box = opt.Object.Bounds()
	default:
		return
	}
	b := opt.Border
	vp := c.viewportBounds()
	area := geom.Bounds{Right: vp.Right, Bottom: vp.Bottom}
	var off geom.Bounds

	switch {
	case b.HasRight():
		area.Left = box.X + opt.MinWidth
		off.Left = e.X - box.Right()
		off.Right = off.Left
		if opt.MaxWidth > 0 {
			area.Right = box.X + opt.MaxWidth
		}
	case b.HasLeft():
		area.Right = box.Right() - opt.MinWidth
		off.Left = e.X - box.X
		off.Right = off.Left
		if opt.MaxWidth > 0 {
			area.Left = box.Right() - opt.MaxWidth
		}
	}
	switch {
	case b.HasBottom():
		area.Top = box.Y + opt.MinHeight
		off.Top = e.Y - box.Bottom()
		off.Bottom = off.Top
		if opt.MaxHeight > 0 {
			area.Bottom = box.Y + opt.MaxHeight
		}
	case b.HasTop():
		area.Bottom = box.Bottom() - opt.MinHeight
		off.Top = e.Y - box.Y
		off.Bottom = off.Top
		if opt.MaxHeight > 0 {
			area.Top = box.Bottom() - opt.MaxHeight
		}
	}

	c.Move(e, MoveOptions{
		Bounds: &area,
		Offset: off,
		Start:  opt.Start,
		Move: func(_ *input.Event, d MoveDetail) {
			switch {
			case b.HasRight():
				box.W += d.DX
			case b.HasLeft():
				box.W -= d.DX
				box.X += d.DX
			}
			switch {
			case b.HasBottom():
				box.H += d.DY
			case b.HasTop():
				box.H -= d.DY
				box.Y += d.DY
			}
			if opt.Move != nil {
				opt.Move(box, d.X, d.Y, d.Border)
			}
		},
		End: opt.End,
	})
}

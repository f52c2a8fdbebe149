package pointer

import (
	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
)

// DragOptions configures a drag-and-drop session.
type DragOptions struct {
	// Data is the payload delivered with dragenter, dragleave and drop.
	Data  any
	Start func(x, y float64)
	Move  func(e *input.Event, d MoveDetail)
	End   func(trail []Sample, e *input.Event)
}

// DragData returns the payload of the active drag session.
func (c *Context) DragData() any {
	return c.dragData
}

// SetDragData replaces the payload of the active drag session.
func (c *Context) SetDragData(v any) {
	c.dragData = v
}

// signalDrop sends a drop-family signal carrying the drag payload.
func (c *Context) signalDrop(el input.Element, typ string, e *input.Event) {
	input.Send(el, input.Signal{Type: typ, Value: c.dragData, Event: e})
}

// setHover toggles the drop highlight on el.
func setHover(el input.Element, on bool) {
	if h, ok := el.(input.Hoverable); ok && h != nil {
		h.SetHover(on)
	}
}

// droppableAt returns the topmost droppable under (x, y) other than self.
func (c *Context) droppableAt(x, y float64, self input.Element) input.Element {
	if c.hit == nil {
		return nil
	}
	for _, item := range c.hit.ElementsAt(x, y) {
		if input.Same(item, self) {
			continue
		}
		if d, ok := item.(input.Droppable); ok && d.Droppable() {
			return item
		}
	}
	return nil
}

// Drag moves a floating clone of el and tracks the droppable element under
// the pointer. Exactly one droppable is hovered at a time.
func (c *Context) Drag(e *input.Event, el input.Element, opt DragOptions) {
	if e == nil || el == nil {
		return
	}
	c.dragData = opt.Data
	var ghost geom.Rect
	var over input.Element
	started := false

	c.Move(e, MoveOptions{
		Object: el,
		Start: func(x, y float64) Verdict {
			started = true
			ghost = el.Bounds()
			c.pushGhost(GhostState{Visible: true, Rect: ghost})
			if opt.Start != nil {
				opt.Start(x, y)
			}
			return Continue
		},
		Move: func(ne *input.Event, d MoveDetail) {
			ghost.X += d.DX
			ghost.Y += d.DY
			c.pushGhost(GhostState{Visible: true, Rect: ghost})
			next := c.droppableAt(d.X, d.Y, el)
			if !input.Same(next, over) {
				if over != nil {
					setHover(over, false)
					c.signalDrop(over, input.SignalDragLeave, ne)
				}
				over = next
				if over != nil {
					setHover(over, true)
					c.signalDrop(over, input.SignalDragEnter, ne)
				}
			}
			if opt.Move != nil {
				opt.Move(ne, d)
			}
		},
		Up: func(_ []Sample, _ *input.Event) {
			if !started {
				c.dragData = nil
			}
		},
		End: func(trail []Sample, ne *input.Event) {
			c.pushGhost(GhostState{})
			if over != nil {
				setHover(over, false)
				c.signalDrop(over, input.SignalDrop, ne)
				over = nil
			}
			if opt.End != nil {
				opt.End(trail, ne)
			}
			c.dragData = nil
		},
	})
}

package pointer

import "github.com/frudas24/pointerkit/internal/input"

// HoverOptions are the callbacks of a hover session.
type HoverOptions struct {
	Enter func(e *input.Event)
	Move  func(e *input.Event)
	Leave func(e *input.Event)
}

// Hover reports enter/move/leave for the target. A touch press counts as
// entering and lasts until the finger leaves, lifts or is cancelled; a
// touch that delivers both a press and an enter is only reported once.
// Mouse hovers start on enter only.
func (c *Context) Hover(e *input.Event, opt HoverOptions) {
	if e == nil || e.Target == nil {
		return
	}
	el := e.Target
	if e.IsTouch() {
		c.hoverTouch(e, el, opt)
		return
	}
	if e.Kind == input.KindDown {
		return
	}
	if opt.Enter != nil {
		opt.Enter(e)
	}
	var moveL, leaveL *listener
	moveL = c.listen(&listener{pointer: -1, kinds: []input.Kind{input.KindMove}, fn: func(ne *input.Event) {
		if opt.Move != nil {
			opt.Move(ne)
		}
	}})
	leaveL = c.listen(&listener{scope: el, pointer: -1, kinds: []input.Kind{input.KindLeave}, fn: func(ne *input.Event) {
		c.unlisten(moveL, leaveL)
		if opt.Leave != nil {
			opt.Leave(ne)
		}
	}})
}

// hoverTouch treats a touch press as enter and its release as leave.
func (c *Context) hoverTouch(e *input.Event, el input.Element, opt HoverOptions) {
	id := el.ID()
	if c.hovering[id] {
		return
	}
	c.hovering[id] = true
	if opt.Enter != nil {
		opt.Enter(e)
	}
	var moveL, leaveL, releaseL *listener
	leave := func(ne *input.Event) {
		c.unlisten(moveL, leaveL, releaseL)
		delete(c.hovering, id)
		if opt.Leave != nil {
			opt.Leave(ne)
		}
	}
	leaveL = c.listen(&listener{scope: el, pointer: -1, kinds: []input.Kind{input.KindLeave}, fn: leave})
	moveL = c.listen(&listener{pointer: -1, kinds: []input.Kind{input.KindMove}, fn: func(ne *input.Event) {
		if opt.Move != nil {
			opt.Move(ne)
		}
	}})
	releaseL = c.listen(&listener{pointer: -1, kinds: []input.Kind{input.KindUp, input.KindCancel}, fn: leave})
}

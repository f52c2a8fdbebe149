package pointer

import "github.com/frudas24/pointerkit/internal/input"

// Menu turns a secondary click or a touch long press into one menu
// request. The platform context menu is suppressed for the interaction; the
// suppression outlives the release briefly because the contextmenu event
// may arrive after it.
func (c *Context) Menu(e *input.Event, handler func(e *input.Event) error) {
	if e == nil || handler == nil {
		return
	}
	delay := c.tuning.MenuReleaseDelay
	if e.IsTouch() {
		suppress := c.listen(&listener{pointer: -1, kinds: []input.Kind{input.KindContextMenu}, fn: func(ce *input.Event) {
			ce.PreventDefault()
		}})
		c.Long(e, handler, LongOptions{
			Up: func(*input.Event) {
				c.after(delay, func() { c.unlisten(suppress) })
			},
		})
		return
	}
	if e.Button != input.ButtonSecondary {
		return
	}
	fired := false
	menuL := c.listen(&listener{pointer: -1, kinds: []input.Kind{input.KindContextMenu}, fn: func(ce *input.Event) {
		ce.PreventDefault()
		if fired {
			return
		}
		fired = true
		c.report(handler(ce))
	}})
	c.Down(e, DownOptions{
		Up: func(*input.Event) {
			c.after(delay, func() { c.unlisten(menuL) })
		},
	})
}

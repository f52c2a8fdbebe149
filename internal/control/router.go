package control

import (
	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
	"github.com/frudas24/pointerkit/internal/pointer"
	"github.com/frudas24/pointerkit/internal/scene"
)

// pressOrder is the order press bindings are attached in. Long presses go
// before clicks so a release that ends a long press is seen by AllowEvent
// when the click handler runs.
var pressOrder = []scene.Gesture{
	scene.GestureLong,
	scene.GestureMenu,
	scene.GestureClick,
	scene.GestureDblClick,
	scene.GestureHover,
	scene.GestureScale,
	scene.GestureSwipe,
	scene.GestureDrag,
	scene.GestureResize,
	scene.GestureMove,
}

// route dispatches e to running sessions, then starts the sessions its
// target binds.
func (ch *Channel) route(e *input.Event) {
	ch.pctx.Dispatch(e)
	if e.PropagationStopped() {
		return
	}
	el, ok := e.Target.(*scene.Element)
	if !ok || el == nil {
		return
	}
	switch e.Kind {
	case input.KindDown:
		ch.bindPress(e, el)
	case input.KindWheel:
		if el.Has(scene.GestureScale) {
			ch.bindScale(e, el)
		}
		if el.Has(scene.GestureSwipe) && !e.PropagationStopped() {
			ch.bindSwipe(e, el)
		}
	case input.KindEnter:
		if el.Has(scene.GestureHover) {
			ch.bindHover(e, el)
		}
	}
}

// bindPress starts the press sessions el binds, in pressOrder.
func (ch *Channel) bindPress(e *input.Event, el *scene.Element) {
	resizing := false
	for _, g := range pressOrder {
		if !el.Has(g) || e.PropagationStopped() {
			continue
		}
		switch g {
		case scene.GestureLong:
			ch.pctx.Long(e, func(le *input.Event) error {
				ch.emit(Notice{T: NoticeLong, Target: el.ID(), X: le.X, Y: le.Y})
				return nil
			}, pointer.LongOptions{})
		case scene.GestureMenu:
			ch.pctx.Menu(e, func(me *input.Event) error {
				ch.emit(Notice{T: NoticeMenu, Target: el.ID(), X: me.X, Y: me.Y})
				return nil
			})
		case scene.GestureClick:
			ch.pctx.Click(e, ch.clickHandler(NoticeClick, el))
		case scene.GestureDblClick:
			ch.pctx.DblClick(e, ch.clickHandler(NoticeDblClick, el))
		case scene.GestureHover:
			ch.bindHover(e, el)
		case scene.GestureScale:
			ch.bindScale(e, el)
		case scene.GestureSwipe:
			ch.bindSwipe(e, el)
		case scene.GestureDrag:
			ch.bindDrag(e, el)
		case scene.GestureResize:
			resizing = ch.bindResize(e, el)
		case scene.GestureMove:
			if !resizing {
				ch.bindMove(e, el)
			}
		}
	}
}

// clickHandler checks AllowEvent when the click fires, not at the press.
func (ch *Channel) clickHandler(typ string, el *scene.Element) pointer.ClickHandler {
	return func(ce *input.Event, x, y float64) {
		if !ch.pctx.AllowEvent(ce) {
			return
		}
		ch.emit(Notice{T: typ, Target: el.ID(), X: x, Y: y})
	}
}

// bindHover reports hover enter, move and leave.
func (ch *Channel) bindHover(e *input.Event, el *scene.Element) {
	notice := func(typ string) func(*input.Event) {
		return func(he *input.Event) {
			ch.emit(Notice{T: typ, Target: el.ID(), X: he.X, Y: he.Y})
		}
	}
	ch.pctx.Hover(e, pointer.HoverOptions{
		Enter: notice(NoticeHoverEnter),
		Move:  notice(NoticeHoverMove),
		Leave: notice(NoticeHoverLeave),
	})
}

// bindScale reports pinch and wheel zoom factors.
func (ch *Channel) bindScale(e *input.Event, el *scene.Element) {
	ch.pctx.Scale(e, func(se *input.Event, factor float64, delta geom.Point) {
		ch.emit(Notice{T: NoticeScale, Target: el.ID(), X: se.X, Y: se.Y, Factor: factor, DX: delta.X, DY: delta.Y})
	})
}

// bindSwipe reports swipes in the directions el accepts.
func (ch *Channel) bindSwipe(e *input.Event, el *scene.Element) {
	ch.pctx.Gesture(e, func(_ *input.Event, dir geom.Direction) pointer.Claim {
		if el.AcceptsDirection(dir) {
			return pointer.GestureAccept
		}
		return pointer.GesturePass
	}, func(dir geom.Direction) {
		ch.emit(Notice{T: NoticeGesture, Target: el.ID(), Dir: dir})
	})
}

// bindDrag drags a clone; the element itself stays put.
func (ch *Channel) bindDrag(e *input.Event, el *scene.Element) {
	ch.pctx.Drag(e, el, pointer.DragOptions{Data: el.Spec().Data})
}

// bindResize starts a resize when the press lies in the resize margin.
func (ch *Channel) bindResize(e *input.Event, el *scene.Element) bool {
	spec := el.Spec()
	border := geom.EdgeZone(spec.Rect, e.X, e.Y, spec.ResizeMargin, ch.pctx.Tuning().CornerTolerance)
	if border == geom.BorderNone {
		return false
	}
	ch.pctx.Resize(e, pointer.ResizeOptions{
		Border:    border,
		MinWidth:  spec.MinWidth,
		MinHeight: spec.MinHeight,
		MaxWidth:  spec.MaxWidth,
		MaxHeight: spec.MaxHeight,
		Object:    el,
		Move: func(box geom.Rect, _, _ float64, _ geom.Border) {
			ch.setRect(el, NoticeResize, box, border)
		},
	})
	return true
}

// bindMove drags the element itself inside its parent, or the viewport at
// the root.
func (ch *Channel) bindMove(e *input.Event, el *scene.Element) {
	opt := pointer.MoveOptions{
		Object: el,
		Move: func(_ *input.Event, d pointer.MoveDetail) {
			ch.moveElement(el, d.DX, d.DY)
		},
	}
	if p := el.Parent(); p != nil {
		opt.Area = p
	}
	ch.pctx.Move(e, opt)
}

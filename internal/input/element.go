package input

import "github.com/frudas24/pointerkit/internal/geom"

// Element is anything that can be the target of an event. Optional
// behaviour is discovered through the smaller interfaces below.
type Element interface {
	ID() string
	Bounds() geom.Rect
}

// Styled exposes the computed cursor and inner insets of an element.
type Styled interface {
	Cursor() string
	Insets() geom.Insets
}

// Capturer can route all further events of a pointer to itself.
type Capturer interface {
	CapturePointer(id int)
}

// Connected reports whether the element is still attached to its document.
type Connected interface {
	Connected() bool
}

// Parented exposes the enclosing element, nil at the root.
type Parented interface {
	Parent() Element
}

// Disabler marks an element (and, through Parented, its subtree) disabled.
type Disabler interface {
	Disabled() bool
}

// Droppable marks an element as a drop destination.
type Droppable interface {
	Droppable() bool
}

// Hoverable receives the hovered flag of a drag-and-drop session.
type Hoverable interface {
	SetHover(on bool)
}

// Signal is a synthetic event delivered to an element.
type Signal struct {
	Type  string
	Value any
	Event *Event
}

// Receiver accepts synthetic signals such as tap, dragenter or drop.
type Receiver interface {
	Receive(sig Signal)
}

// Signal types emitted by the recognizers.
const (
	SignalTap       = "tap"
	SignalDblTap    = "dbltap"
	SignalDragEnter = "dragenter"
	SignalDragLeave = "dragleave"
	SignalDrop      = "drop"
)

// Send delivers sig to el when it is a Receiver.
func Send(el Element, sig Signal) {
	if r, ok := el.(Receiver); ok && r != nil {
		r.Receive(sig)
	}
}

// IsDisabled reports whether el or any ancestor is disabled.
func IsDisabled(el Element) bool {
	for el != nil {
		if d, ok := el.(Disabler); ok && d.Disabled() {
			return true
		}
		p, ok := el.(Parented)
		if !ok {
			return false
		}
		el = p.Parent()
	}
	return false
}

// Same reports whether two elements are the same target.
func Same(a, b Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// Package input defines the normalized input event model shared by the
// recognizers and the transports that feed them.
package input

import (
	"time"

	"github.com/frudas24/pointerkit/internal/geom"
)

// Kind identifies what happened to the pointer.
type Kind string

const (
	// KindDown is a press (pointerdown, mousedown, touchstart).
	KindDown Kind = "down"
	// KindMove is a movement (pointermove, mousemove, touchmove).
	KindMove Kind = "move"
	// KindUp is a release (pointerup, mouseup, touchend).
	KindUp Kind = "up"
	// KindCancel is an aborted interaction (pointercancel, touchcancel).
	KindCancel Kind = "cancel"
	// KindWheel is a wheel or trackpad scroll.
	KindWheel Kind = "wheel"
	// KindEnter is the pointer entering an element.
	KindEnter Kind = "enter"
	// KindLeave is the pointer leaving an element.
	KindLeave Kind = "leave"
	// KindContextMenu is the platform context menu request.
	KindContextMenu Kind = "contextmenu"
)

// Family is the event family an event was delivered through.
type Family string

const (
	// FamilyPointer covers Pointer Events (any device).
	FamilyPointer Family = "pointer"
	// FamilyMouse covers legacy mouse events.
	FamilyMouse Family = "mouse"
	// FamilyTouch covers legacy touch events, delivered to the original target.
	FamilyTouch Family = "touch"
)

// PointerType is the physical device behind a pointer-family event.
type PointerType string

const (
	PointerMouse PointerType = "mouse"
	PointerTouch PointerType = "touch"
	PointerPen   PointerType = "pen"
)

// Buttons as reported by the platform.
const (
	ButtonPrimary   = 0
	ButtonAuxiliary = 1
	ButtonSecondary = 2
)

// Event is one normalized input event. Handlers receive it by pointer so
// default-prevention and propagation flags flow back to the caller.
type Event struct {
	Kind        Kind
	Family      Family
	PointerType PointerType
	PointerID   int
	Button      int
	X           float64
	Y           float64
	DeltaX      float64
	DeltaY      float64
	Target      Element
	Time        time.Time
	Cancelable  bool

	defaultPrevented   bool
	propagationStopped bool
}

// Pos returns the event's client position.
func (e *Event) Pos() geom.Point {
	return geom.Point{X: e.X, Y: e.Y}
}

// IsTouch reports whether the event originates from a touch contact.
func (e *Event) IsTouch() bool {
	return e.Family == FamilyTouch || e.PointerType == PointerTouch
}

// PreventDefault suppresses the platform default action when cancelable.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault took effect.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching outer handlers.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

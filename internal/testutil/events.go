package testutil

import "github.com/frudas24/pointerkit/internal/input"

// Pointer builds a cancelable pointer-family event of a mouse pointer.
func Pointer(kind input.Kind, id int, x, y float64, target input.Element) *input.Event {
	return &input.Event{
		Kind:        kind,
		Family:      input.FamilyPointer,
		PointerType: input.PointerMouse,
		PointerID:   id,
		X:           x,
		Y:           y,
		Target:      target,
		Cancelable:  true,
	}
}

// Touch builds a pointer-family event of a touch contact.
func Touch(kind input.Kind, id int, x, y float64, target input.Element) *input.Event {
	e := Pointer(kind, id, x, y, target)
	e.PointerType = input.PointerTouch
	return e
}

// Mouse builds a legacy mouse-family event.
func Mouse(kind input.Kind, button int, x, y float64, target input.Element) *input.Event {
	return &input.Event{
		Kind:        kind,
		Family:      input.FamilyMouse,
		PointerType: input.PointerMouse,
		Button:      button,
		X:           x,
		Y:           y,
		Target:      target,
		Cancelable:  true,
	}
}

// Wheel builds a wheel event.
func Wheel(dx, dy, x, y float64, target input.Element) *input.Event {
	return &input.Event{
		Kind:        input.KindWheel,
		Family:      input.FamilyPointer,
		PointerType: input.PointerMouse,
		X:           x,
		Y:           y,
		DeltaX:      dx,
		DeltaY:      dy,
		Target:      target,
		Cancelable:  true,
	}
}

// Package testutil holds fakes shared by package tests.
package testutil

import (
	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
)

// Box is a recording element implementing every optional capability.
type Box struct {
	Name       string
	Rect       geom.Rect
	Pad        geom.Insets
	CursorName string
	Detached   bool
	Off        bool
	Drop       bool
	Up         input.Element

	Hovered  bool
	Captures []int
	Signals  []input.Signal
}

var (
	_ input.Element   = (*Box)(nil)
	_ input.Styled    = (*Box)(nil)
	_ input.Capturer  = (*Box)(nil)
	_ input.Connected = (*Box)(nil)
	_ input.Parented  = (*Box)(nil)
	_ input.Disabler  = (*Box)(nil)
	_ input.Droppable = (*Box)(nil)
	_ input.Hoverable = (*Box)(nil)
	_ input.Receiver  = (*Box)(nil)
)

// NewBox returns a box with the given id and rect.
func NewBox(id string, r geom.Rect) *Box {
	return &Box{Name: id, Rect: r}
}

func (b *Box) ID() string             { return b.Name }
func (b *Box) Bounds() geom.Rect      { return b.Rect }
func (b *Box) Cursor() string         { return b.CursorName }
func (b *Box) Insets() geom.Insets    { return b.Pad }
func (b *Box) CapturePointer(id int)  { b.Captures = append(b.Captures, id) }
func (b *Box) Connected() bool        { return !b.Detached }
func (b *Box) Disabled() bool         { return b.Off }
func (b *Box) Droppable() bool        { return b.Drop }
func (b *Box) SetHover(on bool)       { b.Hovered = on }
func (b *Box) Receive(s input.Signal) { b.Signals = append(b.Signals, s) }

// Parent returns the enclosing element.
func (b *Box) Parent() input.Element {
	if b.Up == nil {
		return nil
	}
	return b.Up
}

// SignalTypes lists the received signal types in order.
func (b *Box) SignalTypes() []string {
	out := make([]string, 0, len(b.Signals))
	for _, s := range b.Signals {
		out = append(out, s.Type)
	}
	return out
}

// Hits is a HitTester returning the boxes containing a point, last first.
type Hits []*Box

// ElementsAt lists the boxes under (x, y), topmost first.
func (h Hits) ElementsAt(x, y float64) []input.Element {
	var out []input.Element
	for i := len(h) - 1; i >= 0; i-- {
		if geom.Contains(h[i].Rect, x, y) {
			out = append(out, h[i])
		}
	}
	return out
}

// Package scene keeps the server-side model of the client's elements: their
// geometry, capabilities and the gestures bound to them.
package scene

import (
	"fmt"

	"github.com/frudas24/pointerkit/internal/geom"
)

// Gesture names a recognizer that can be bound to an element.
type Gesture string

const (
	GestureClick    Gesture = "click"
	GestureDblClick Gesture = "dblclick"
	GestureLong     Gesture = "long"
	GestureMenu     Gesture = "menu"
	GestureHover    Gesture = "hover"
	GestureScale    Gesture = "scale"
	GestureSwipe    Gesture = "gesture"
	GestureDrag     Gesture = "drag"
	GestureResize   Gesture = "resize"
	GestureMove     Gesture = "move"
)

// Valid reports whether g is a known gesture.
func (g Gesture) Valid() bool {
	switch g {
	case GestureClick, GestureDblClick, GestureLong, GestureMenu, GestureHover,
		GestureScale, GestureSwipe, GestureDrag, GestureResize, GestureMove:
		return true
	}
	return false
}

// DefaultResizeMargin is the edge band, in pixels, that starts a resize.
const DefaultResizeMargin = 6

// ElementSpec declares one element of the layout.
type ElementSpec struct {
	ID        string      `yaml:"id" json:"id"`
	Rect      geom.Rect   `yaml:"rect" json:"rect"`
	Insets    geom.Insets `yaml:"insets,omitempty" json:"insets,omitempty"`
	Cursor    string      `yaml:"cursor,omitempty" json:"cursor,omitempty"`
	Droppable bool        `yaml:"droppable,omitempty" json:"droppable,omitempty"`
	Disabled  bool        `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Parent    string      `yaml:"parent,omitempty" json:"parent,omitempty"`
	Gestures  []Gesture   `yaml:"gestures,omitempty" json:"gestures,omitempty"`
	// Data is the payload carried when the element is dragged.
	Data any `yaml:"data,omitempty" json:"data,omitempty"`
	// Directions limits the swipe gesture; empty accepts all.
	Directions   []geom.Direction `yaml:"directions,omitempty" json:"directions,omitempty"`
	ResizeMargin float64          `yaml:"resize_margin,omitempty" json:"resize_margin,omitempty"`
	MinWidth     float64          `yaml:"min_width,omitempty" json:"min_width,omitempty"`
	MinHeight    float64          `yaml:"min_height,omitempty" json:"min_height,omitempty"`
	MaxWidth     float64          `yaml:"max_width,omitempty" json:"max_width,omitempty"`
	MaxHeight    float64          `yaml:"max_height,omitempty" json:"max_height,omitempty"`
}

// Layout is the declared scene: a viewport and elements in paint order.
type Layout struct {
	Viewport geom.Rect     `yaml:"viewport" json:"viewport"`
	Elements []ElementSpec `yaml:"elements" json:"elements"`
}

// Validate checks ids, parents and gesture names.
func (l Layout) Validate() error {
	seen := make(map[string]bool, len(l.Elements))
	for i, el := range l.Elements {
		if el.ID == "" {
			return fmt.Errorf("element %d: missing id", i)
		}
		if seen[el.ID] {
			return fmt.Errorf("element %q: duplicate id", el.ID)
		}
		seen[el.ID] = true
		for _, g := range el.Gestures {
			if !g.Valid() {
				return fmt.Errorf("element %q: unknown gesture %q", el.ID, g)
			}
		}
		if el.ResizeMargin < 0 {
			return fmt.Errorf("element %q: resize_margin must be >= 0", el.ID)
		}
	}
	for _, el := range l.Elements {
		if el.Parent == "" {
			continue
		}
		if el.Parent == el.ID || !seen[el.Parent] {
			return fmt.Errorf("element %q: unknown parent %q", el.ID, el.Parent)
		}
	}
	return nil
}

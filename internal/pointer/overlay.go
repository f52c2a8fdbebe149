package pointer

import (
	"fmt"

	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
)

// HitTester lists the elements under a client position, topmost first.
type HitTester interface {
	ElementsAt(x, y float64) []input.Element
}

// CursorSink renders the global cursor override. rule is the stylesheet
// text for the override element, empty when the override is cleared.
type CursorSink interface {
	ApplyCursor(cursor, rule string)
}

// IndicatorState describes the floating gesture progress indicator.
type IndicatorState struct {
	Visible  bool    `json:"visible"`
	Done     bool    `json:"done"`
	Animated bool    `json:"animated"`
	Scale    float64 `json:"scale"`
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	Size     float64 `json:"size"`
}

// GhostState describes the floating clone shown while dragging.
type GhostState struct {
	Visible bool      `json:"visible"`
	Rect    geom.Rect `json:"rect"`
}

// Overlay renders the floating visuals owned by the recognizers.
type Overlay interface {
	Indicator(st IndicatorState)
	Ghost(st GhostState)
}

// CursorRule returns the stylesheet text that forces cursor everywhere.
func CursorRule(cursor string) string {
	if cursor == "" {
		return ""
	}
	return fmt.Sprintf("*, *::after, *::before {cursor: %s !important;}", cursor)
}

// SetCursor sets or clears (empty string) the global cursor override.
func (c *Context) SetCursor(cursor string) {
	if c.cursor == nil {
		c.cursor = new(string)
	}
	*c.cursor = cursor
	if c.cursorSink != nil {
		c.cursorSink.ApplyCursor(cursor, CursorRule(cursor))
	}
}

// Cursor returns the active cursor override, empty when none.
func (c *Context) Cursor() string {
	if c.cursor == nil {
		return ""
	}
	return *c.cursor
}

// pushIndicator forwards the current indicator state to the overlay.
func (c *Context) pushIndicator() {
	if c.overlay != nil {
		c.overlay.Indicator(c.indicator)
	}
}

// pushGhost forwards a drag clone update to the overlay.
func (c *Context) pushGhost(st GhostState) {
	if c.overlay != nil {
		c.overlay.Ghost(st)
	}
}

package scene

import (
	"fmt"
	"slices"
	"sync"

	"github.com/frudas24/pointerkit/internal/geom"
	"github.com/frudas24/pointerkit/internal/input"
)

// Notifier receives the side effects recognizers apply to elements.
type Notifier interface {
	Signal(id string, sig input.Signal)
	Capture(id string, pointerID int)
	Hover(id string, on bool)
}

// Scene is a set of elements in paint order. It is safe for concurrent use.
type Scene struct {
	mu       sync.RWMutex
	notify   Notifier
	viewport geom.Rect
	order    []*Element
	byID     map[string]*Element
}

// Element is one declared element. It implements input.Element and the
// optional capabilities the recognizers probe for.
type Element struct {
	scene   *Scene
	spec    ElementSpec
	hovered bool
}

var (
	_ input.Element   = (*Element)(nil)
	_ input.Styled    = (*Element)(nil)
	_ input.Parented  = (*Element)(nil)
	_ input.Disabler  = (*Element)(nil)
	_ input.Droppable = (*Element)(nil)
	_ input.Hoverable = (*Element)(nil)
	_ input.Receiver  = (*Element)(nil)
	_ input.Capturer  = (*Element)(nil)
)

// New returns an empty scene. n may be nil.
func New(n Notifier) *Scene {
	return &Scene{notify: n, byID: make(map[string]*Element)}
}

// Apply replaces the scene content with l.
func (s *Scene) Apply(l Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	order := make([]*Element, 0, len(l.Elements))
	byID := make(map[string]*Element, len(l.Elements))
	for _, spec := range l.Elements {
		spec.Rect = geom.Normalize(spec.Rect)
		if spec.ResizeMargin == 0 {
			spec.ResizeMargin = DefaultResizeMargin
		}
		el := &Element{scene: s, spec: spec}
		order = append(order, el)
		byID[spec.ID] = el
	}
	s.mu.Lock()
	s.viewport = l.Viewport
	s.order = order
	s.byID = byID
	s.mu.Unlock()
	return nil
}

// Layout returns a snapshot of the current scene.
func (s *Scene) Layout() Layout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l := Layout{Viewport: s.viewport, Elements: make([]ElementSpec, 0, len(s.order))}
	for _, el := range s.order {
		l.Elements = append(l.Elements, el.spec)
	}
	return l
}

// Viewport returns the visible area.
func (s *Scene) Viewport() geom.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// SetViewport updates the visible area size.
func (s *Scene) SetViewport(w, h float64) {
	s.mu.Lock()
	s.viewport.W, s.viewport.H = w, h
	s.mu.Unlock()
}

// Get returns the element with the given id.
func (s *Scene) Get(id string) (*Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	el, ok := s.byID[id]
	return el, ok
}

// Len returns the number of elements.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// SetRect moves or resizes an element.
func (s *Scene) SetRect(id string, r geom.Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	el, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("unknown element %q", id)
	}
	el.spec.Rect = geom.Normalize(r)
	return nil
}

// ElementsAt lists the elements containing (x, y), topmost first. Disabled
// elements still take hits.
func (s *Scene) ElementsAt(x, y float64) []input.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []input.Element
	for _, el := range slices.Backward(s.order) {
		if geom.Contains(el.spec.Rect, x, y) {
			out = append(out, el)
		}
	}
	return out
}

// At returns the topmost element containing (x, y).
func (s *Scene) At(x, y float64) (*Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, el := range slices.Backward(s.order) {
		if geom.Contains(el.spec.Rect, x, y) {
			return el, true
		}
	}
	return nil, false
}

// ID returns the element id.
func (e *Element) ID() string {
	return e.spec.ID
}

// Bounds returns the element rect.
func (e *Element) Bounds() geom.Rect {
	e.scene.mu.RLock()
	defer e.scene.mu.RUnlock()
	return e.spec.Rect
}

func (e *Element) Cursor() string      { return e.spec.Cursor }
func (e *Element) Insets() geom.Insets { return e.spec.Insets }
func (e *Element) Disabled() bool      { return e.spec.Disabled }
func (e *Element) Droppable() bool     { return e.spec.Droppable }

// Spec returns the element declaration with its current rect.
func (e *Element) Spec() ElementSpec {
	e.scene.mu.RLock()
	defer e.scene.mu.RUnlock()
	return e.spec
}

// Has reports whether g is bound to the element.
func (e *Element) Has(g Gesture) bool {
	return slices.Contains(e.spec.Gestures, g)
}

// AcceptsDirection reports whether a swipe toward dir is wanted.
func (e *Element) AcceptsDirection(dir geom.Direction) bool {
	return len(e.spec.Directions) == 0 || slices.Contains(e.spec.Directions, dir)
}

// Parent returns the enclosing element, nil at the root.
func (e *Element) Parent() input.Element {
	if e.spec.Parent == "" {
		return nil
	}
	p, ok := e.scene.Get(e.spec.Parent)
	if !ok {
		return nil
	}
	return p
}

// Hovered reports the drop-hover flag.
func (e *Element) Hovered() bool {
	e.scene.mu.RLock()
	defer e.scene.mu.RUnlock()
	return e.hovered
}

// SetHover sets the drop-hover flag and notifies.
func (e *Element) SetHover(on bool) {
	e.scene.mu.Lock()
	e.hovered = on
	e.scene.mu.Unlock()
	if e.scene.notify != nil {
		e.scene.notify.Hover(e.spec.ID, on)
	}
}

// Receive forwards a synthetic signal.
func (e *Element) Receive(sig input.Signal) {
	if e.scene.notify != nil {
		e.scene.notify.Signal(e.spec.ID, sig)
	}
}

// CapturePointer forwards a pointer capture request.
func (e *Element) CapturePointer(id int) {
	if e.scene.notify != nil {
		e.scene.notify.Capture(e.spec.ID, id)
	}
}

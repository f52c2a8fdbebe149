// Package geom holds the coordinate math shared by the pointer recognizers.
package geom

// Point is a position in client (CSS pixel) coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Rect describes a rectangle using top-left origin and size.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Insets are the inner paddings (padding plus border) of a box.
type Insets struct {
	Left   float64 `json:"left,omitempty" yaml:"left,omitempty"`
	Top    float64 `json:"top,omitempty" yaml:"top,omitempty"`
	Right  float64 `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom float64 `json:"bottom,omitempty" yaml:"bottom,omitempty"`
}

// Bounds is an area expressed by its four edges.
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Normalize returns a rectangle with non-negative width/height.
func Normalize(r Rect) Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Contains reports whether a point is inside the rectangle (edges inclusive).
func Contains(r Rect, x, y float64) bool {
	if r.W <= 0 || r.H <= 0 {
		return false
	}
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Right returns the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Bounds converts the rectangle into edge form.
func (r Rect) Bounds() Bounds {
	return Bounds{Left: r.X, Top: r.Y, Right: r.X + r.W, Bottom: r.Y + r.H}
}

// Inset shrinks the bounds by the given insets.
func (b Bounds) Inset(in Insets) Bounds {
	return Bounds{
		Left:   b.Left + in.Left,
		Top:    b.Top + in.Top,
		Right:  b.Right - in.Right,
		Bottom: b.Bottom - in.Bottom,
	}
}

// Shift moves each edge by the matching field of off.
func (b Bounds) Shift(off Bounds) Bounds {
	return Bounds{
		Left:   b.Left + off.Left,
		Top:    b.Top + off.Top,
		Right:  b.Right + off.Right,
		Bottom: b.Bottom + off.Bottom,
	}
}

// Rect converts edge form back into a rectangle.
func (b Bounds) Rect() Rect {
	return Rect{X: b.Left, Y: b.Top, W: b.Right - b.Left, H: b.Bottom - b.Top}
}

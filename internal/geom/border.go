package geom

// Border names one of the eight edge zones of a box, starting top-left.
type Border string

// Border zones. BorderNone means the point is inside the box.
const (
	BorderNone        Border = ""
	BorderTopLeft     Border = "lt"
	BorderTop         Border = "t"
	BorderTopRight    Border = "tr"
	BorderRight       Border = "r"
	BorderBottomRight Border = "rb"
	BorderBottom      Border = "b"
	BorderBottomLeft  Border = "bl"
	BorderLeft        Border = "l"
)

// CornerTolerance is the default distance within which a single-edge contact
// is promoted to the adjacent corner.
const CornerTolerance = 20

// HasLeft reports whether the zone includes the left edge.
func (b Border) HasLeft() bool {
	return b == BorderBottomLeft || b == BorderLeft || b == BorderTopLeft
}

// HasRight reports whether the zone includes the right edge.
func (b Border) HasRight() bool {
	return b == BorderTopRight || b == BorderRight || b == BorderBottomRight
}

// HasTop reports whether the zone includes the top edge.
func (b Border) HasTop() bool {
	return b == BorderTopLeft || b == BorderTop || b == BorderTopRight
}

// HasBottom reports whether the zone includes the bottom edge.
func (b Border) HasBottom() bool {
	return b == BorderBottomRight || b == BorderBottom || b == BorderBottomLeft
}

// Valid reports whether b is one of the known zones (including none).
func (b Border) Valid() bool {
	switch b {
	case BorderNone, BorderTopLeft, BorderTop, BorderTopRight, BorderRight,
		BorderBottomRight, BorderBottom, BorderBottomLeft, BorderLeft:
		return true
	}
	return false
}

// Edges records which edges of an area the pointer is touching.
type Edges struct {
	Top    bool `json:"top"`
	Right  bool `json:"right"`
	Bottom bool `json:"bottom"`
	Left   bool `json:"left"`
}

// Any reports whether at least one edge is touched.
func (e Edges) Any() bool {
	return e.Top || e.Right || e.Bottom || e.Left
}

// Clamp is the per-axis result of ClampToBorder.
type Clamp struct {
	Val   float64
	AtMin bool
	AtMax bool
}

// ClampToBorder limits one axis of a dragged object. nowMin/nowMax are the
// object's projected extents for val, min/max the allowed area and
// offsetMin/offsetMax the fixed distances from the grab point to the object
// edges. Retreating from a reached bound is always allowed. An object with
// offsetMax == 0 is treated as a point and stops at max-1.
func ClampToBorder(val, prevVal, nowMin, nowMax, min, max, offsetMin, offsetMax float64) Clamp {
	out := Clamp{Val: val}
	switch {
	case nowMin <= min:
		out.AtMin = true
		if nowMin < min && val < prevVal {
			if prevVal-offsetMin > min {
				out.Val = min + offsetMin
			} else {
				out.Val = prevVal
			}
		}
	case offsetMax != 0:
		if nowMax >= max {
			out.AtMax = true
			if nowMax > max && val > prevVal {
				if prevVal+offsetMax < max {
					out.Val = max - offsetMax
				} else {
					out.Val = prevVal
				}
			}
		}
	default:
		m1 := max - 1
		if val >= m1 {
			out.AtMax = true
			if val > m1 && val > prevVal {
				if prevVal < m1 {
					out.Val = m1
				} else {
					out.Val = prevVal
				}
			}
		}
	}
	return out
}

// BorderType classifies the zone reached at (x, y). Two touched edges give
// the corner directly; a single edge becomes a corner when the pointer is
// within tolerance of the adjacent corner.
func BorderType(in Edges, x, y float64, b Bounds, tolerance float64) Border {
	switch {
	case in.Top && in.Left:
		return BorderTopLeft
	case in.Top && in.Right:
		return BorderTopRight
	case in.Bottom && in.Right:
		return BorderBottomRight
	case in.Bottom && in.Left:
		return BorderBottomLeft
	}
	switch {
	case in.Top:
		if x-b.Left <= tolerance {
			return BorderTopLeft
		}
		if b.Right-x <= tolerance {
			return BorderTopRight
		}
		return BorderTop
	case in.Right:
		if y-b.Top <= tolerance {
			return BorderTopRight
		}
		if b.Bottom-y <= tolerance {
			return BorderBottomRight
		}
		return BorderRight
	case in.Bottom:
		if b.Right-x <= tolerance {
			return BorderBottomRight
		}
		if x-b.Left <= tolerance {
			return BorderBottomLeft
		}
		return BorderBottom
	case in.Left:
		if y-b.Top <= tolerance {
			return BorderTopLeft
		}
		if b.Bottom-y <= tolerance {
			return BorderBottomLeft
		}
		return BorderLeft
	}
	return BorderNone
}

// EdgeZone reports which border zone of r the point (x, y) falls in when it
// lies within margin of an edge. Points farther inside return BorderNone.
func EdgeZone(r Rect, x, y, margin, tolerance float64) Border {
	r = Normalize(r)
	if !Contains(r, x, y) {
		return BorderNone
	}
	b := r.Bounds()
	in := Edges{
		Top:    y-b.Top <= margin,
		Right:  b.Right-x <= margin,
		Bottom: b.Bottom-y <= margin,
		Left:   x-b.Left <= margin,
	}
	if !in.Any() {
		return BorderNone
	}
	return BorderType(in, x, y, b, tolerance)
}

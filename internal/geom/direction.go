package geom

import "math"

// Direction is the dominant axis direction of a movement.
type Direction string

const (
	// DirTop is upward movement.
	DirTop Direction = "top"
	// DirRight is rightward movement.
	DirRight Direction = "right"
	// DirBottom is downward movement.
	DirBottom Direction = "bottom"
	// DirLeft is leftward movement.
	DirLeft Direction = "left"
)

// MoveDir returns the dominant direction of a delta. Vertical wins only when
// strictly larger, so ties resolve horizontally.
func MoveDir(dx, dy float64) Direction {
	if math.Abs(dy) > math.Abs(dx) {
		if dy < 0 {
			return DirTop
		}
		return DirBottom
	}
	if dx < 0 {
		return DirLeft
	}
	return DirRight
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case DirTop:
		return DirBottom
	case DirBottom:
		return DirTop
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return d
	}
}

// Vertical reports whether the direction lies on the y axis.
func (d Direction) Vertical() bool {
	return d == DirTop || d == DirBottom
}

// Leading reports whether the direction points toward the origin (top or left).
func (d Direction) Leading() bool {
	return d == DirTop || d == DirLeft
}

// Package core provides the fundamental types shared by the game variants and
// the terminal platform. It has no external dependencies so that game logic
// stays pure and testable.
package core

// Point is a 2D position in playfield units.
type Point struct {
	X, Y float64
}

// Pt is a convenience constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned bounding box in screen-space playfield units
// (origin top-left, Y grows downward).
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewRect creates a rectangle with the given top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects reports whether the two rectangles overlap.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// IntersectsAny returns the index of the first rectangle in others that
// overlaps r, or -1 if none does.
func (r Rect) IntersectsAny(others ...Rect) int {
	for i, o := range others {
		if r.Intersects(o) {
			return i
		}
	}
	return -1
}

// CellRect is a rectangle on the character grid.
type CellRect struct {
	X, Y int
	W, H int
}

// Right returns the column just past the right edge.
func (r CellRect) Right() int {
	return r.X + r.W
}

// Bottom returns the row just past the bottom edge.
func (r CellRect) Bottom() int {
	return r.Y + r.H
}

package core

import "math"

// ToScreen converts a physics-space position (origin bottom-left, Y up) into
// screen space (origin top-left, Y down) for a surface of the given height.
// Every component mapping physics positions to the playfield goes through
// here so that rendering and collision boxes agree on orientation.
func ToScreen(p Point, height float64) Point {
	return Point{X: p.X, Y: height - p.Y}
}

// Viewport maps screen-space playfield units onto the terminal grid.
// The playfield is stretched to fill Cols x Rows cells.
type Viewport struct {
	Width  float64 // Playfield width in units
	Height float64 // Playfield height in units
	Cols   int     // Terminal columns
	Rows   int     // Terminal rows
}

// NewViewport creates a viewport for a playfield of w x h units drawn into
// a cols x rows grid.
func NewViewport(w, h float64, cols, rows int) Viewport {
	return Viewport{Width: w, Height: h, Cols: cols, Rows: rows}
}

// Col returns the column containing the playfield x-coordinate.
func (v Viewport) Col(x float64) int {
	if v.Width <= 0 {
		return 0
	}
	return int(math.Floor(x * float64(v.Cols) / v.Width))
}

// Row returns the row containing the playfield y-coordinate.
func (v Viewport) Row(y float64) int {
	if v.Height <= 0 {
		return 0
	}
	return int(math.Floor(y * float64(v.Rows) / v.Height))
}

// Cell returns the grid cell containing p.
func (v Viewport) Cell(p Point) (col, row int) {
	return v.Col(p.X), v.Row(p.Y)
}

// CellRect returns the grid cells covered by r.
// Non-empty rectangles always cover at least one cell.
func (v Viewport) CellRect(r Rect) CellRect {
	x0, y0 := v.Col(r.X), v.Row(r.Y)
	x1, y1 := v.Col(r.Right()), v.Row(r.Bottom())
	cr := CellRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	if r.W > 0 && cr.W < 1 {
		cr.W = 1
	}
	if r.H > 0 && cr.H < 1 {
		cr.H = 1
	}
	return cr
}

package banner

import "math"

// Layout constants, in logical units.
const (
	BorderSize = 25.0 // horizontal border on each side of the content
	Padding    = 5.0  // gap between spinner and label
	Height     = 30.0 // fixed banner height
	Inset      = 15.0 // anchor offset from the docking edge
)

// Terminal cell size in logical units. A banner is Height/CellHeight rows tall.
const (
	CellWidth  = 5.0
	CellHeight = 15.0
)

// Point is a position in logical units.
type Point struct {
	X, Y float64
}

// Size is an extent in logical units.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle in logical units.
type Rect struct {
	X, Y, W, H float64
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Host is the area a banner docks to. The banner borrows it and never owns it.
type Host interface {
	Size() Size
}

// FixedHost is a Host with a constant size.
type FixedHost Size

// Size implements Host.
func (h FixedHost) Size() Size { return Size(h) }

// CellsToUnits converts a terminal extent to logical units.
func CellsToUnits(cols, rows int) Size {
	return Size{W: float64(cols) * CellWidth, H: float64(rows) * CellHeight}
}

// rectAround returns the rectangle of size s centred on p.
func rectAround(p Point, s Size) Rect {
	return Rect{X: p.X - s.W/2, Y: p.Y - s.H/2, W: s.W, H: s.H}
}

// onGrid snaps the frame origin implied by centre p and size s to whole units
// and returns the resulting centre.
func onGrid(p Point, s Size) Point {
	r := rectAround(p, s)
	return Point{
		X: math.Round(r.X) + s.W/2,
		Y: math.Round(r.Y) + s.H/2,
	}
}

// toCells converts a unit length to a whole number of cells.
func toCells(v, cell float64) int {
	return int(math.Round(v / cell))
}

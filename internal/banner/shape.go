package banner

import "math"

// Verb is a path drawing operation.
type Verb int

const (
	MoveTo Verb = iota
	LineTo
	CurveTo
	ClosePath
)

// Segment is one path operation. CurveTo carries two control points followed
// by the end point; MoveTo and LineTo carry the end point only.
type Segment struct {
	Verb   Verb
	Points []Point
}

// Path is an outline built from segments.
type Path []Segment

// Shape returns the banner outline for bounds: two cubic curves joined by a
// straight edge, tapering toward the docking edge and bulging into the host.
func Shape(edge Edge, bounds Rect) Path {
	var maxY, minY float64
	if edge == EdgeTop {
		maxY = bounds.MinY() - 1
		minY = bounds.MaxY()
	} else {
		maxY = bounds.MaxY() + 1
		minY = bounds.MinY()
	}

	return Path{
		{Verb: MoveTo, Points: []Point{{bounds.MinX(), maxY}}},
		{Verb: CurveTo, Points: []Point{
			{bounds.MinX() + BorderSize, maxY},
			{bounds.MinX(), minY},
			{bounds.MinX() + BorderSize, minY},
		}},
		{Verb: LineTo, Points: []Point{{bounds.MaxX() - BorderSize, minY}}},
		{Verb: CurveTo, Points: []Point{
			{bounds.MaxX(), minY},
			{bounds.MaxX() - BorderSize, maxY},
			{bounds.MaxX(), maxY},
		}},
		{Verb: ClosePath},
	}
}

// cubic is a cubic bezier from P0 to P3.
type cubic struct {
	p0, p1, p2, p3 Point
}

func (c cubic) at(s float64) Point {
	u := 1 - s
	a, b, d, e := u*u*u, 3*u*u*s, 3*u*s*s, s*s*s
	return Point{
		X: a*c.p0.X + b*c.p1.X + d*c.p2.X + e*c.p3.X,
		Y: a*c.p0.Y + b*c.p1.Y + d*c.p2.Y + e*c.p3.Y,
	}
}

// xAt returns the x where a curve that is monotonic in y crosses y.
func (c cubic) xAt(y float64) float64 {
	lo, hi := 0.0, 1.0
	rising := c.p3.Y >= c.p0.Y
	for range 32 {
		mid := (lo + hi) / 2
		if (c.at(mid).Y < y) == rising {
			lo = mid
		} else {
			hi = mid
		}
	}
	return c.at((lo + hi) / 2).X
}

// curves extracts the two side curves of a banner shape.
func (p Path) curves() (left, right cubic, ok bool) {
	var cur Point
	var found []cubic
	for _, seg := range p {
		switch seg.Verb {
		case MoveTo, LineTo:
			cur = seg.Points[0]
		case CurveTo:
			found = append(found, cubic{cur, seg.Points[0], seg.Points[1], seg.Points[2]})
			cur = seg.Points[2]
		}
	}
	if len(found) != 2 {
		return cubic{}, cubic{}, false
	}
	return found[0], found[1], true
}

// CellKind is how one terminal cell of the banner is painted.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellFill
	CellEdgeLeft  // right half covered, on the left flank
	CellEdgeRight // left half covered, on the right flank
)

// Coverage thresholds for a cell to count as filled or half filled.
const (
	fullCoverage = 0.75
	halfCoverage = 0.25
)

// samplesPerRow is the number of scanlines averaged per terminal row.
const samplesPerRow = 4

// Raster is a shape sampled onto terminal cells.
type Raster struct {
	Cols, Rows int
	Cells      [][]CellKind
}

// Rasterize samples the banner shape for bounds onto a cell grid, one scanline
// per sample with the span between the two side curves counted as covered.
func Rasterize(edge Edge, bounds Rect) Raster {
	cols := toCells(bounds.W, CellWidth)
	rows := toCells(bounds.H, CellHeight)
	r := Raster{Cols: cols, Rows: rows, Cells: make([][]CellKind, rows)}

	left, right, ok := Shape(edge, bounds).curves()
	for row := range rows {
		r.Cells[row] = make([]CellKind, cols)
		if !ok {
			continue
		}

		coverage := make([]float64, cols)
		for k := range samplesPerRow {
			y := bounds.MinY() + (float64(row)+(float64(k)+0.5)/samplesPerRow)*CellHeight
			x0, x1 := left.xAt(y), right.xAt(y)
			for col := range cols {
				cx0 := bounds.MinX() + float64(col)*CellWidth
				cx1 := cx0 + CellWidth
				overlap := math.Min(x1, cx1) - math.Max(x0, cx0)
				if overlap > 0 {
					coverage[col] += overlap / CellWidth / samplesPerRow
				}
			}
		}

		for col, c := range coverage {
			switch {
			case c >= fullCoverage:
				r.Cells[row][col] = CellFill
			case c >= halfCoverage && col < cols/2:
				r.Cells[row][col] = CellEdgeLeft
			case c >= halfCoverage:
				r.Cells[row][col] = CellEdgeRight
			}
		}
	}
	return r
}

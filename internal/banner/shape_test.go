package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	bounds := Rect{W: 125, H: Height}

	tests := []struct {
		edge       Edge
		maxY, minY float64
	}{
		{EdgeTop, -1, Height},
		{EdgeBottom, Height + 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.edge.String(), func(t *testing.T) {
			p := Shape(tt.edge, bounds)
			require.Len(t, p, 5)

			verbs := make([]Verb, len(p))
			for i, seg := range p {
				verbs[i] = seg.Verb
			}
			assert.Equal(t, []Verb{MoveTo, CurveTo, LineTo, CurveTo, ClosePath}, verbs)

			assert.Equal(t, []Point{{0, tt.maxY}}, p[0].Points)
			assert.Equal(t, []Point{{25, tt.maxY}, {0, tt.minY}, {25, tt.minY}}, p[1].Points)
			assert.Equal(t, []Point{{100, tt.minY}}, p[2].Points)
			assert.Equal(t, []Point{{125, tt.minY}, {100, tt.maxY}, {125, tt.maxY}}, p[3].Points)
			assert.Empty(t, p[4].Points)
		})
	}
}

func TestCubicXAt(t *testing.T) {
	left, right, ok := Shape(EdgeTop, Rect{W: 125, H: Height}).curves()
	require.True(t, ok)

	assert.InDelta(t, 0, left.xAt(-1), 1e-6)
	assert.InDelta(t, BorderSize, left.xAt(Height), 1e-6)
	for _, y := range []float64{2, 7.5, 15, 22.5, 28} {
		assert.InDelta(t, 125-left.xAt(y), right.xAt(y), 1e-6, "mirrored at y=%v", y)
	}
}

func TestRasterize(t *testing.T) {
	bounds := Rect{W: 125, H: Height}
	top := Rasterize(EdgeTop, bounds)
	bottom := Rasterize(EdgeBottom, bounds)

	require.Equal(t, 25, top.Cols)
	require.Equal(t, 2, top.Rows)

	mirror := map[CellKind]CellKind{
		CellEmpty:     CellEmpty,
		CellFill:      CellFill,
		CellEdgeLeft:  CellEdgeRight,
		CellEdgeRight: CellEdgeLeft,
	}

	for row := range top.Rows {
		cells := top.Cells[row]
		assert.Equal(t, CellEmpty, cells[0], "row %d", row)
		assert.Equal(t, CellEdgeLeft, cells[2], "row %d", row)
		assert.Equal(t, CellFill, cells[12], "row %d", row)
		assert.Equal(t, CellEdgeRight, cells[22], "row %d", row)
		for col := range top.Cols {
			assert.Equal(t, mirror[cells[col]], cells[top.Cols-1-col], "row %d col %d", row, col)
		}

		// Bottom docking is the top shape flipped vertically.
		assert.Equal(t, top.Cells[row], bottom.Cells[top.Rows-1-row])
	}
}

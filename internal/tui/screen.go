package tui

import "github.com/jmylchreest/discreet/internal/banner"

// Screen is the terminal area the banner docks to. The footer rows are not
// part of it.
type Screen struct {
	cols, rows int
}

// Size implements banner.Host.
func (s *Screen) Size() banner.Size {
	return banner.CellsToUnits(s.cols, s.rows)
}

// Resize updates the area in cells. Negative extents clamp to zero.
func (s *Screen) Resize(cols, rows int) {
	s.cols = max(cols, 0)
	s.rows = max(rows, 0)
}

// Cols returns the width in cells.
func (s *Screen) Cols() int { return s.cols }

// Rows returns the height in cells.
func (s *Screen) Rows() int { return s.rows }

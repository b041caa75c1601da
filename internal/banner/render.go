package banner

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	edgeLeftGlyph  = "▐"
	edgeRightGlyph = "▌"
)

// View renders the banner at its presented opacity. It returns an empty
// string while the banner is fully transparent.
func (b *Banner) View() string {
	if b.closed || b.shownAlpha <= 0 || b.bounds.W <= 0 {
		return ""
	}
	return strings.Join(b.renderRows(), "\n")
}

// Overlay draws the banner over background, a host-sized block of lines, at
// the presented position. Rows and columns outside the host are clipped.
func (b *Banner) Overlay(background string) string {
	view := b.View()
	if view == "" || b.host == nil {
		return background
	}

	hostCols := toCells(b.hostSize().W, CellWidth)
	p := b.Presented()
	x := int(math.Round(p.X / CellWidth))
	y := int(math.Round(p.Y / CellHeight))

	lines := strings.Split(background, "\n")
	for i, row := range strings.Split(view, "\n") {
		ly := y + i
		if ly < 0 || ly >= len(lines) {
			continue
		}
		lines[ly] = splice(lines[ly], row, x, hostCols)
	}
	return strings.Join(lines, "\n")
}

// NeedsDisplay reports whether the shape must be rasterised again.
func (b *Banner) NeedsDisplay() bool { return b.needsDisplay }

// splice writes over into base starting at column x, clipped to [0, limit).
func splice(base, over string, x, limit int) string {
	if x < 0 {
		over = ansi.TruncateLeft(over, -x, "")
		x = 0
	}
	if x >= limit {
		return base
	}
	over = ansi.Truncate(over, limit-x, "")
	w := ansi.StringWidth(over)

	if bw := ansi.StringWidth(base); bw < x+w {
		base += strings.Repeat(" ", x+w-bw)
	}
	return ansi.Truncate(base, x, "") + over + ansi.TruncateLeft(base, x+w, "")
}

func (b *Banner) renderRows() []string {
	if b.needsDisplay || b.raster.Rows == 0 {
		b.raster = Rasterize(b.edge, b.bounds)
		b.needsDisplay = false
	}

	a := b.shownAlpha
	pal := b.palette
	host := lipgloss.NewStyle().Background(pal.BackgroundColor())
	fill := lipgloss.NewStyle().Background(pal.FillColor(a))
	stroke := lipgloss.NewStyle().Foreground(pal.StrokeColor(a)).Background(pal.BackgroundColor())

	textRow := 0
	if b.edge == EdgeBottom {
		textRow = b.raster.Rows - 1
	}

	rows := make([]string, b.raster.Rows)
	for row, kinds := range b.raster.Cells {
		cells := make([]string, len(kinds))
		for col, k := range kinds {
			switch k {
			case CellFill:
				cells[col] = fill.Render(" ")
			case CellEdgeLeft:
				cells[col] = stroke.Render(edgeLeftGlyph)
			case CellEdgeRight:
				cells[col] = stroke.Render(edgeRightGlyph)
			default:
				cells[col] = host.Render(" ")
			}
		}
		if row == textRow {
			b.drawContent(cells, fill, a)
		}
		rows[row] = strings.Join(cells, "")
	}
	return rows
}

// drawContent writes the spinner and the first label line over the fill.
// A rendered run is stored in its first cell and the cells it covers are
// emptied.
func (b *Banner) drawContent(cells []string, fill lipgloss.Style, a float64) {
	put := func(at, width int, s string) {
		if at < 0 || width <= 0 || at+width > len(cells) {
			return
		}
		cells[at] = s
		for i := at + 1; i < at+width; i++ {
			cells[i] = ""
		}
	}

	if b.spinner != nil && b.spinning {
		m := *b.spinner
		m.Style = m.Style.Inherit(fill.Foreground(b.palette.SpinnerColor(a)))
		at, w := toCells(b.spinnerFrame.X, CellWidth), toCells(b.spinnerFrame.W, CellWidth)
		put(at, w, fill.Render(ansi.Truncate(padRight(m.View(), w), w, "")))
	}

	if b.label.Hidden {
		return
	}
	lines := b.wrappedLines()
	if len(lines) == 0 {
		return
	}
	at, w := toCells(b.label.Frame.X, CellWidth), toCells(b.label.Frame.W, CellWidth)
	style := b.label.Style.Inherit(fill.Foreground(b.palette.TextColor(a)))
	put(at, w, style.Render(padRight(ansi.Truncate(lines[0], w, ""), w)))
}

func padRight(s string, w int) string {
	if n := w - ansi.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

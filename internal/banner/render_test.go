package banner

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRows(view string) []string {
	return strings.Split(ansi.Strip(view), "\n")
}

func hostBlock(cols, rows int) string {
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = strings.Repeat(".", cols)
	}
	return strings.Join(lines, "\n")
}

func TestView_HiddenIsEmpty(t *testing.T) {
	b := New("Synchronizing..", false, EdgeTop, testHost, quiet())
	assert.Empty(t, b.View())

	bg := hostBlock(80, 24)
	assert.Equal(t, bg, b.Overlay(bg))
}

func TestView_Top(t *testing.T) {
	b := newVisible(t, "Synchronizing..")

	rows := plainRows(b.View())
	require.Len(t, rows, 2)
	assert.Equal(t, "  ▐  Synchronizing..  ▌  ", rows[0])
	assert.Equal(t, "  ▐"+strings.Repeat(" ", 19)+"▌  ", rows[1])
	assert.False(t, b.NeedsDisplay())
}

func TestView_BottomPutsTextOnLastRow(t *testing.T) {
	b := New("Synchronizing..", false, EdgeBottom, testHost, quiet())
	b.Show(false)

	rows := plainRows(b.View())
	require.Len(t, rows, 2)
	assert.NotContains(t, rows[0], "Synchronizing..")
	assert.Contains(t, rows[1], "Synchronizing..")
}

func TestView_Spinner(t *testing.T) {
	b := New("abc", true, EdgeTop, testHost, quiet())
	b.Show(false)

	rows := plainRows(b.View())
	require.Len(t, rows, 2)
	assert.Equal(t, "  ▐  ⣾  abc  ▌  ", rows[0])

	// A stopped spinner is not drawn.
	b.stopSpinner()
	rows = plainRows(b.View())
	assert.Equal(t, "  ▐     abc  ▌  ", rows[0])
}

func TestView_LabelHiddenDuringChange(t *testing.T) {
	b := newVisible(t, "Synchronizing..")
	b.SetText("Done", true)
	frame(b)

	require.Positive(t, b.PresentedAlpha())
	assert.NotContains(t, ansi.Strip(b.View()), "Synchronizing..")
}

func TestView_WrappedTextShowsFirstLine(t *testing.T) {
	host := FixedHost(CellsToUnits(20, 5))
	b := New("Synchronizing..", false, EdgeTop, host, quiet())
	b.Show(false)

	assert.Equal(t, host.Size().W, b.RequiredWidth())
	rows := plainRows(b.View())
	assert.Contains(t, rows[0], "Synchroniz")
	assert.NotContains(t, rows[0], "ing..")
}

func TestNeedsDisplay(t *testing.T) {
	b := newVisible(t, "A")
	assert.True(t, b.NeedsDisplay())
	b.View()
	assert.False(t, b.NeedsDisplay())

	b.SetText("A", false)
	assert.False(t, b.NeedsDisplay(), "same bounds, no redraw")

	b.SetText("longer", false)
	assert.True(t, b.NeedsDisplay())
}

func TestOverlay(t *testing.T) {
	b := newVisible(t, "Synchronizing..")
	bg := hostBlock(80, 24)

	lines := strings.Split(b.Overlay(bg), "\n")
	require.Len(t, lines, 24)

	want := strings.Repeat(".", 28) + "  ▐  Synchronizing..  ▌  " + strings.Repeat(".", 27)
	assert.Equal(t, want, ansi.Strip(lines[0]))
	assert.Equal(t, 80, ansi.StringWidth(lines[1]))
	assert.Equal(t, strings.Repeat(".", 80), lines[2])
}

func TestOverlay_Bottom(t *testing.T) {
	b := New("Synchronizing..", false, EdgeBottom, testHost, quiet())
	b.Show(false)

	lines := strings.Split(b.Overlay(hostBlock(80, 24)), "\n")
	require.Len(t, lines, 24)
	assert.Contains(t, ansi.Strip(lines[23]), "Synchronizing..")
	assert.Equal(t, strings.Repeat(".", 80), lines[21])
}

func TestOverlay_ClipsWhileSliding(t *testing.T) {
	b := New("Synchronizing..", false, EdgeTop, testHost, quiet())
	b.Show(true)
	bg := hostBlock(80, 24)

	for b.IsAnimating() {
		frame(b)
		lines := strings.Split(b.Overlay(bg), "\n")
		require.Len(t, lines, 24)
		for _, l := range lines {
			assert.Equal(t, 80, ansi.StringWidth(l))
		}
	}
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		over  string
		x     int
		limit int
		want  string
	}{
		{"inside", "..........", "ab", 3, 10, "...ab....."},
		{"clipped left", "..........", "ab", -1, 10, "b........."},
		{"clipped right", "....", "abc", 2, 4, "..ab"},
		{"past limit", "....", "ab", 4, 4, "...."},
		{"short base", "..", "ab", 3, 10, ".. ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splice(tt.base, tt.over, tt.x, tt.limit))
		})
	}
}

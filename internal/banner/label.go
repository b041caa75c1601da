package banner

import "github.com/charmbracelet/lipgloss"

// Label is the banner's text subview. Owners may restyle it directly; the
// text itself changes through SetText.
type Label struct {
	Text   string
	Hidden bool
	Style  lipgloss.Style

	// Frame is relative to the banner bounds.
	Frame Rect
}

// SpinnerFrame returns the spinner rectangle relative to the banner bounds.
// It is empty when activity is off.
func (b *Banner) SpinnerFrame() Rect { return b.spinnerFrame }

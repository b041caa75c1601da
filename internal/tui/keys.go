package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Transitions
	Show    key.Binding
	Hide    key.Binding
	Delay   key.Binding
	Dismiss key.Binding

	// Properties
	Text        key.Binding
	TextInstant key.Binding
	Activity    key.Binding
	Edge        key.Binding
	Attach      key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Show, k.Hide, k.Text, k.Activity, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Show, k.Hide, k.Delay, k.Dismiss},
		{k.Text, k.TextInstant, k.Activity},
		{k.Edge, k.Attach, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Show: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "show"),
		),
		Hide: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide"),
		),
		Delay: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "hide after delay"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "show & dismiss"),
		),
		Text: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next text"),
		),
		TextInstant: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "next text (instant)"),
		),
		Activity: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle activity"),
		),
		Edge: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "flip edge"),
		),
		Attach: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "detach/attach"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// WatchKeyMap returns the bindings that make sense while a feed drives the
// banner.
func WatchKeyMap() KeyMap {
	k := DefaultKeyMap()
	disabled := []*key.Binding{&k.Text, &k.TextInstant, &k.Activity, &k.Delay}
	for _, b := range disabled {
		b.SetEnabled(false)
	}
	return k
}

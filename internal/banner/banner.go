package banner

import (
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/discreet/internal/theme"
)

// DefaultDuration is the length of one slide animation.
const DefaultDuration = 200 * time.Millisecond

// DefaultDismissDelay is the delay used by ShowAndDismissAutomatically.
const DefaultDismissDelay = time.Second

// Banner is a discreet notification docked to the top or bottom edge of a host.
// All methods must be called from the bubbletea update loop.
type Banner struct {
	id     string
	logger *slog.Logger

	host   Host
	edge   Edge
	docked bool // model anchor is the showing anchor

	text     string
	activity bool
	pending  *Change

	label        *Label
	spinner      *spinner.Model
	spinnerStyle spinner.Spinner
	spinning     bool

	bounds       Rect
	spinnerFrame Rect
	center       Point // model anchor
	alpha        float64
	needsDisplay bool
	raster       Raster

	motion
	timer     TimerHandle // current delayed hide, zero when none
	lastTimer TimerHandle

	palette      theme.Palette
	duration     time.Duration
	onCompletion func(Completion)
	closed       bool
}

// Option configures a Banner.
type Option func(*Banner)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *slog.Logger) Option {
	return func(b *Banner) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithDuration sets the slide animation duration.
func WithDuration(d time.Duration) Option {
	return func(b *Banner) {
		if d >= 0 {
			b.duration = d
		}
	}
}

// WithPalette sets the colours used when rendering.
func WithPalette(p theme.Palette) Option {
	return func(b *Banner) {
		b.palette = p
	}
}

// WithSpinner sets the activity spinner frames.
func WithSpinner(s spinner.Spinner) Option {
	return func(b *Banner) {
		if len(s.Frames) > 0 {
			b.spinnerStyle = s
		}
	}
}

// OnCompletion registers a hook called after each animation completes and the
// banner has handled it.
func OnCompletion(fn func(Completion)) Option {
	return func(b *Banner) {
		b.onCompletion = fn
	}
}

// New creates a banner attached to host. It starts hidden at the hiding anchor.
func New(text string, activity bool, edge Edge, host Host, opts ...Option) *Banner {
	b := &Banner{
		id:           ulid.Make().String(),
		logger:       slog.Default(),
		edge:         edge,
		text:         text,
		label:        &Label{Text: text, Hidden: true},
		spinnerStyle: spinner.Dot,
		palette:      theme.Default(),
		duration:     DefaultDuration,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("banner", b.id)
	b.motion.init(b.duration)

	b.host = host
	b.setActivity(activity)
	b.Layout()

	b.logger.Debug("banner created", "edge", edge, "activity", activity)
	return b
}

// ID returns the banner's unique identifier.
func (b *Banner) ID() string { return b.id }

// Attach re-parents the banner onto host and lays it out again. Moving to a
// different host drops any queued change; attaching the current host again
// only picks up its new size.
func (b *Banner) Attach(host Host) {
	if b.closed {
		return
	}
	if host == nil {
		b.Detach()
		return
	}
	if sameHost(b.host, host) {
		b.Layout()
		return
	}
	b.pending = nil
	b.host = host
	b.Layout()
	b.snapPresentation()
	b.logger.Debug("banner attached", "host", host.Size())
}

// sameHost compares hosts without panicking on non-comparable types, which
// never count as the same host.
func sameHost(a, b Host) bool {
	if a == nil || b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	return ta == reflect.TypeOf(b) && ta.Comparable() && a == b
}

// Detach removes the banner from its host and drops any queued change.
func (b *Banner) Detach() {
	if b.host == nil && b.pending == nil {
		return
	}
	b.pending = nil
	b.host = nil
	if !b.closed {
		b.Layout()
		b.snapPresentation()
	}
	b.logger.Debug("banner detached")
}

// Close detaches the banner and releases its label and spinner.
// A closed banner ignores every further call.
func (b *Banner) Close() {
	if b.closed {
		return
	}
	b.Detach()
	b.closed = true
	b.stopSpinner()
	b.spinner = nil
	b.label = nil
	b.inflight = nil
	b.ticking = false
	b.timer = 0
	b.logger.Debug("banner closed")
}

// Closed reports whether Close has been called.
func (b *Banner) Closed() bool { return b.closed }

// Host returns the attached host, or nil.
func (b *Banner) Host() Host { return b.host }

// Text returns the displayed text.
func (b *Banner) Text() string { return b.text }

// Activity reports whether the activity spinner is present.
func (b *Banner) Activity() bool { return b.activity }

// Label returns the text label for direct styling, or nil once closed.
func (b *Banner) Label() *Label { return b.label }

// Spinner returns the activity spinner for direct styling.
// It is nil whenever activity is off.
func (b *Banner) Spinner() *spinner.Model { return b.spinner }

// Pending returns the queued property change, if any.
func (b *Banner) Pending() (Change, bool) {
	if b.pending == nil {
		return Change{}, false
	}
	var c Change
	c.merge(*b.pending)
	return c, true
}

// Edge returns the docking edge.
func (b *Banner) Edge() Edge { return b.edge }

// SetEdge moves the banner to another docking edge, keeping it showing or
// hidden as it was.
func (b *Banner) SetEdge(edge Edge) {
	if b.closed || edge == b.edge {
		return
	}
	showing := b.IsShowing()
	b.edge = edge
	b.docked = showing
	b.needsDisplay = true
	b.Layout()
	b.logger.Debug("banner edge changed", "edge", edge, "showing", showing)
}

// Palette returns the rendering colours.
func (b *Banner) Palette() theme.Palette { return b.palette }

// SetPalette replaces the rendering colours.
func (b *Banner) SetPalette(p theme.Palette) {
	b.palette = p
	b.needsDisplay = true
}

// Duration returns the slide animation duration.
func (b *Banner) Duration() time.Duration { return b.duration }

// SetDuration changes the slide animation duration for future animations.
func (b *Banner) SetDuration(d time.Duration) {
	if d < 0 {
		return
	}
	b.duration = d
	b.motion.init(d)
}

// IsShowing reports whether the model anchor is the showing anchor.
// It flips as soon as a transition starts, not when it finishes.
func (b *Banner) IsShowing() bool {
	return b.center.Y == onGrid(b.ShowingAnchor(), b.size()).Y
}

// IsAnimating reports whether any animation is in flight.
func (b *Banner) IsAnimating() bool { return len(b.inflight) > 0 }

// Phase returns where the banner is in its show/hide cycle.
func (b *Banner) Phase() Phase {
	if n := len(b.inflight); n > 0 {
		switch b.inflight[n-1].kind {
		case kindShow:
			return PhaseShowing
		case kindHide:
			return PhaseHiding
		case kindChange:
			return PhaseChangingProperty
		}
	}
	if b.IsShowing() {
		return PhaseVisible
	}
	return PhaseHidden
}

// Bounds returns the banner's own rectangle with origin zero.
func (b *Banner) Bounds() Rect { return b.bounds }

// Frame returns the banner's model rectangle in host coordinates.
func (b *Banner) Frame() Rect { return rectAround(b.center, b.size()) }

// Center returns the model anchor.
func (b *Banner) Center() Point { return b.center }

// Alpha returns the model opacity.
func (b *Banner) Alpha() float64 { return b.alpha }

// RequiredWidth returns the width computed by the last layout pass.
func (b *Banner) RequiredWidth() float64 { return b.bounds.W }

// ShowingAnchor is the centre of the banner while it is visible.
func (b *Banner) ShowingAnchor() Point {
	hs := b.hostSize()
	y := Inset
	if b.edge == EdgeBottom {
		y = hs.H - Inset
	}
	return Point{X: hs.W / 2, Y: y}
}

// HidingAnchor is the centre of the banner while it is hidden, just off the
// docking edge.
func (b *Banner) HidingAnchor() Point {
	hs := b.hostSize()
	y := -Inset
	if b.edge == EdgeBottom {
		y = hs.H + Inset
	}
	return Point{X: hs.W / 2, Y: y}
}

// Layout recomputes the banner size and subview frames and re-anchors the
// banner on its host. Call it after the host is resized. A banner at rest is
// redrawn at its new place straight away.
func (b *Banner) Layout() {
	if b.closed {
		return
	}

	base := 2 * BorderSize
	spinnerW := 0.0
	if b.spinner != nil {
		base += Padding
		spinnerW = float64(lipgloss.Width(b.spinner.View())) * CellWidth
	}

	textW := b.measureText(b.hostSize().W - base - spinnerW)

	bounds := Rect{W: base + textW + spinnerW, H: Height}
	if bounds != b.bounds {
		b.bounds = bounds
		b.needsDisplay = true
	}

	if b.spinner == nil {
		b.label.Frame = Rect{X: BorderSize, W: textW, H: Height}
		b.spinnerFrame = Rect{}
	} else {
		b.spinnerFrame = Rect{X: BorderSize, Y: Padding, W: spinnerW, H: Height}
		b.label.Frame = Rect{X: BorderSize + spinnerW + Padding, W: textW, H: Height}
	}

	if b.docked {
		b.center = b.ShowingAnchor()
	} else {
		b.center = b.HidingAnchor()
	}
	b.placeOnGrid()
	if !b.IsAnimating() {
		b.snapPresentation()
	}
}

// measureText wraps the text to the available width and returns the widest
// line in units. A non-positive width disables wrapping.
func (b *Banner) measureText(available float64) float64 {
	if b.text == "" {
		return 0
	}

	cols := int(available / CellWidth)
	wrapped := b.text
	if cols > 0 {
		wrapped = ansi.Wrap(b.text, cols, "")
	}

	widest := 0
	for _, line := range strings.Split(wrapped, "\n") {
		widest = max(widest, ansi.StringWidth(line))
	}
	if cols > 0 {
		widest = min(widest, cols)
	}
	return float64(widest) * CellWidth
}

// wrappedLines returns the label text as laid out.
func (b *Banner) wrappedLines() []string {
	if b.text == "" {
		return nil
	}
	cols := int(b.label.Frame.W / CellWidth)
	if cols < 1 {
		return nil
	}
	return strings.Split(ansi.Wrap(b.text, cols, ""), "\n")
}

func (b *Banner) placeOnGrid() {
	b.center = onGrid(b.center, b.size())
}

func (b *Banner) size() Size {
	return Size{W: b.bounds.W, H: b.bounds.H}
}

func (b *Banner) hostSize() Size {
	if b.host == nil {
		return Size{}
	}
	return b.host.Size()
}

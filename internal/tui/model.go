// Package tui provides the BubbleTea program that hosts a banner in the
// terminal, either driven by keys (demo) or by a live feed (watch).
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/discreet/internal/banner"
	"github.com/jmylchreest/discreet/internal/config"
	"github.com/jmylchreest/discreet/internal/feed"
	"github.com/jmylchreest/discreet/internal/theme"
)

// Texts cycled through by the demo text keys.
var demoTexts = []string{
	"Synchronizing..",
	"Saved",
	"Connection lost, retrying in a moment",
	"3 new messages",
}

// Options configures a Model.
type Options struct {
	Config *config.Config
	Logger *slog.Logger

	// Initial banner content.
	Text     string
	Activity bool

	// Updates switches the model to watch mode when non-nil.
	Updates <-chan feed.Update

	ConfigChanges  <-chan *config.Config
	PaletteChanges <-chan theme.Palette
	ThemeWatcher   *theme.Watcher

	// Overrides re-applies command line settings to every reloaded config.
	Overrides func(*config.Config)

	// Now is the clock used for the footer; defaults to time.Now.
	Now func() time.Time
}

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg    *config.Config
	logger *slog.Logger

	// Components
	banner *banner.Banner
	screen *Screen
	help   help.Model
	keys   KeyMap

	palette      theme.Palette
	themeWatcher *theme.Watcher

	// State
	width    int
	height   int
	ready    bool
	watching bool
	sample   int

	// Watch mode
	updates     <-chan feed.Update
	lastUpdate  time.Time
	updateCount int
	feedDone    bool
	now         func() time.Time

	configCh  <-chan *config.Config
	paletteCh <-chan theme.Palette
	overrides func(*config.Config)

	// Status message
	statusMsg string
	statusErr bool
}

// New creates a new TUI model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	keys := DefaultKeyMap()
	if opts.Updates != nil {
		keys = WatchKeyMap()
	}

	edge, _ := banner.ParseEdge(cfg.Banner.Edge)
	palette := resolvePalette(cfg, logger)
	screen := &Screen{}

	b := banner.New(opts.Text, opts.Activity, edge, screen,
		banner.WithLogger(logger),
		banner.WithDuration(cfg.Banner.Animation.Duration()),
		banner.WithPalette(palette),
		banner.WithSpinner(SpinnerByName(cfg.Banner.Spinner)),
	)

	return Model{
		cfg:          cfg,
		logger:       logger,
		banner:       b,
		screen:       screen,
		help:         help.New(),
		keys:         keys,
		palette:      palette,
		themeWatcher: opts.ThemeWatcher,
		watching:     opts.Updates != nil,
		updates:      opts.Updates,
		now:          now,
		configCh:     opts.ConfigChanges,
		paletteCh:    opts.PaletteChanges,
		overrides:    opts.Overrides,
	}
}

// SpinnerByName maps a config spinner name to its frames. Unknown names give
// the dot spinner.
func SpinnerByName(name string) spinner.Spinner {
	switch name {
	case "line":
		return spinner.Line
	case "minidot":
		return spinner.MiniDot
	case "jump":
		return spinner.Jump
	case "points":
		return spinner.Points
	case "pulse":
		return spinner.Pulse
	case "ellipsis":
		return spinner.Ellipsis
	default:
		return spinner.Dot
	}
}

// resolvePalette loads the configured palette, falling back to the default
// when it cannot be found.
func resolvePalette(cfg *config.Config, logger *slog.Logger) theme.Palette {
	p, err := theme.Load(cfg.Theme.Name)
	if err != nil {
		logger.Warn("failed to load theme, using default", "theme", cfg.Theme.Name, "error", err)
	}
	if cfg.Theme.HostBackground != "" {
		p.Background = cfg.Theme.HostBackground
	}
	return p
}

// Banner returns the hosted banner.
func (m Model) Banner() *banner.Banner { return m.banner }

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForConfig, m.waitForPalette}
	if m.watching {
		cmds = append(cmds, m.waitForUpdate, clockTick())
	}
	return tea.Batch(cmds...)
}

type (
	updateMsg     feed.Update
	feedClosedMsg struct{}
	configMsg     struct{ cfg *config.Config }
	paletteMsg    struct{ palette theme.Palette }
	clockMsg      struct{}
)

// FeedErrorMsg reports that the feed stopped with an error.
type FeedErrorMsg struct {
	Err error
}

// waitForUpdate blocks until the feed publishes.
func (m Model) waitForUpdate() tea.Msg {
	if m.updates == nil {
		return nil
	}
	u, ok := <-m.updates
	if !ok {
		return feedClosedMsg{}
	}
	return updateMsg(u)
}

// waitForConfig blocks until the config file is reloaded.
func (m Model) waitForConfig() tea.Msg {
	if m.configCh == nil {
		return nil
	}
	cfg, ok := <-m.configCh
	if !ok {
		return nil
	}
	return configMsg{cfg: cfg}
}

// waitForPalette blocks until the palette file changes.
func (m Model) waitForPalette() tea.Msg {
	if m.paletteCh == nil {
		return nil
	}
	p, ok := <-m.paletteCh
	if !ok {
		return nil
	}
	return paletteMsg{palette: p}
}

// clockTick refreshes the relative time in the footer.
func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return clockMsg{} })
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

		if !m.ready {
			m.ready = true
			if !m.watching {
				return m, m.banner.ShowAnimated()
			}
		}
		return m, nil

	case updateMsg:
		cmd := m.applyUpdate(feed.Update(msg))
		return m, tea.Batch(cmd, m.waitForUpdate)

	case feedClosedMsg:
		m.updates = nil
		m.feedDone = true
		m.logger.Debug("feed closed")
		return m, nil

	case FeedErrorMsg:
		m.logger.Warn("feed stopped", "error", msg.Err)
		return m, setStatus("Feed stopped: "+msg.Err.Error(), true)

	case configMsg:
		cmd := m.applyConfig(msg.cfg)
		return m, tea.Batch(cmd, m.waitForConfig)

	case paletteMsg:
		m.setPalette(msg.palette)
		return m, tea.Batch(setStatus("Theme reloaded", false), m.waitForPalette)

	case clockMsg:
		return m, clockTick()

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	var cmd tea.Cmd
	m.banner, cmd = m.banner.Update(msg)
	return m, cmd
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.banner
	delay := m.cfg.Banner.DismissAfter.Duration()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Show):
		return m, b.Show(true)

	case key.Matches(msg, m.keys.Hide):
		return m, b.Hide(true)

	case key.Matches(msg, m.keys.Delay):
		return m, tea.Batch(
			b.HideAfter(true, delay),
			setStatus(fmt.Sprintf("Hiding in %s", delay), false),
		)

	case key.Matches(msg, m.keys.Dismiss):
		return m, b.ShowAndDismiss(delay)

	case key.Matches(msg, m.keys.Text):
		return m, b.SetText(m.nextText(), true)

	case key.Matches(msg, m.keys.TextInstant):
		return m, b.SetText(m.nextText(), false)

	case key.Matches(msg, m.keys.Activity):
		next := !b.Activity()
		if c, ok := b.Pending(); ok && c.Activity != nil {
			next = !*c.Activity
		}
		return m, b.SetActivity(next, true)

	case key.Matches(msg, m.keys.Edge):
		edge := banner.EdgeBottom
		if b.Edge() == banner.EdgeBottom {
			edge = banner.EdgeTop
		}
		b.SetEdge(edge)
		return m, setStatus("Edge: "+edge.String(), false)

	case key.Matches(msg, m.keys.Attach):
		if b.Host() == nil {
			b.Attach(m.screen)
			return m, setStatus("Attached", false)
		}
		b.Detach()
		return m, setStatus("Detached", false)
	}

	return m, nil
}

func (m *Model) nextText() string {
	m.sample = (m.sample + 1) % len(demoTexts)
	return demoTexts[m.sample]
}

// applyUpdate shows a feed update on the banner. The banner stays up while
// the feed reports activity and is dismissed after a quiet period otherwise.
func (m *Model) applyUpdate(u feed.Update) tea.Cmd {
	b := m.banner
	m.lastUpdate = u.Time
	m.updateCount++

	text, busy := b.Text(), b.Activity()
	if c, ok := b.Pending(); ok {
		if c.Text != nil {
			text = *c.Text
		}
		if c.Activity != nil {
			busy = *c.Activity
		}
	}

	var cmds []tea.Cmd
	if u.Text != "" && u.Text != text {
		cmds = append(cmds, b.SetText(u.Text, true))
	}
	if u.Activity != nil && *u.Activity != busy {
		cmds = append(cmds, b.SetActivity(*u.Activity, true))
		busy = *u.Activity
	}
	if b.Phase() != banner.PhaseChangingProperty {
		cmds = append(cmds, b.Show(true))
	}

	if busy {
		b.CancelHide()
	} else {
		cmds = append(cmds, b.HideAfter(true, m.dismissAfter()))
	}

	m.logger.Debug("feed update applied", "text", u.Text, "busy", busy, "phase", b.Phase())
	return tea.Batch(cmds...)
}

func (m Model) dismissAfter() time.Duration {
	return m.cfg.Watch.DismissAfter.Duration()
}

// applyConfig applies a reloaded config to the running banner, with the
// command line overrides on top. The spinner style only applies to banners
// created afterwards.
func (m *Model) applyConfig(reloaded *config.Config) tea.Cmd {
	cfg := reloaded
	if m.overrides != nil {
		c := *reloaded
		m.overrides(&c)
		cfg = &c
	}
	old := m.cfg
	m.cfg = cfg

	if edge, ok := banner.ParseEdge(cfg.Banner.Edge); ok {
		m.banner.SetEdge(edge)
	}
	m.banner.SetDuration(cfg.Banner.Animation.Duration())

	if cfg.Theme != old.Theme {
		p := resolvePalette(cfg, m.logger)
		m.setPalette(p)
		if m.themeWatcher != nil {
			m.themeWatcher.UpdatePalette(&p)
		}
	}

	m.logger.Info("config applied", "edge", cfg.Banner.Edge, "theme", cfg.Theme.Name)
	return setStatus("Config reloaded", false)
}

func (m *Model) setPalette(p theme.Palette) {
	if m.cfg.Theme.HostBackground != "" {
		p.Background = m.cfg.Theme.HostBackground
	}
	m.palette = p
	m.banner.SetPalette(p)
}

// resize gives the banner everything above the footer.
func (m *Model) resize() {
	m.help.Width = m.width
	rows := m.height - lipgloss.Height(m.footer())
	m.screen.Resize(m.width, rows)
	if m.banner.Host() != nil {
		m.banner.Layout()
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	bg := lipgloss.NewStyle().Background(m.palette.BackgroundColor())
	blank := bg.Render(strings.Repeat(" ", m.screen.Cols()))
	rows := make([]string, m.screen.Rows())
	for i := range rows {
		rows[i] = blank
	}

	area := m.banner.Overlay(strings.Join(rows, "\n"))
	if len(rows) == 0 {
		return m.footer()
	}
	return area + "\n" + m.footer()
}

// footer renders the status line and key help.
func (m Model) footer() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var status string
	switch {
	case m.statusMsg != "":
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			style = style.Foreground(lipgloss.Color("9"))
		}
		status = style.Render(m.statusMsg)
	case m.watching:
		status = dim.Render(m.watchStatus())
	default:
		status = dim.Render(fmt.Sprintf("%s · %s", m.banner.Phase(), m.banner.Edge()))
	}

	return status + "\n" + m.help.View(m.keys)
}

func (m Model) watchStatus() string {
	switch {
	case m.updateCount == 0 && m.feedDone:
		return "Feed ended without updates"
	case m.updateCount == 0:
		return "Waiting for updates..."
	}

	s := fmt.Sprintf("%s updates, last %s",
		humanize.Comma(int64(m.updateCount)),
		humanize.RelTime(m.lastUpdate, m.now(), "ago", "from now"))
	if m.feedDone {
		s += " (feed ended)"
	}
	return s
}

package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/discreet/internal/banner"
	"github.com/jmylchreest/discreet/internal/config"
	"github.com/jmylchreest/discreet/internal/feed"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	m := New(opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 26})
	return next.(Model)
}

func press(t *testing.T, m Model, keys string) (Model, tea.Cmd) {
	t.Helper()
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	if keys == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNew_DemoShowsOnFirstResize(t *testing.T) {
	m := newTestModel(t, Options{Text: "Hello"})

	assert.Equal(t, 80, m.screen.Cols())
	assert.Equal(t, 24, m.screen.Rows(), "footer rows are not part of the host")
	assert.True(t, m.Banner().IsShowing())
	assert.Equal(t, banner.PhaseShowing, m.Banner().Phase())
}

func TestNew_WatchStartsHidden(t *testing.T) {
	m := newTestModel(t, Options{Updates: make(chan feed.Update)})

	assert.False(t, m.Banner().IsShowing())
	assert.False(t, m.keys.Text.Enabled(), "demo text keys are off while watching")
}

func TestKeys_ShowHide(t *testing.T) {
	m := newTestModel(t, Options{Text: "Hello"})

	m, _ = press(t, m, "h")
	assert.False(t, m.Banner().IsShowing())

	m, _ = press(t, m, "s")
	assert.True(t, m.Banner().IsShowing())
}

func TestKeys_HideAfterDelay(t *testing.T) {
	m := newTestModel(t, Options{Text: "Hello"})

	m, cmd := press(t, m, "d")
	assert.NotNil(t, cmd)
	assert.True(t, m.Banner().HideScheduled())

	m, _ = press(t, m, "s")
	assert.True(t, m.Banner().IsShowing())
	assert.False(t, m.Banner().HideScheduled(), "show cancels the delayed hide")
}

func TestKeys_EdgeFlip(t *testing.T) {
	m := newTestModel(t, Options{Text: "Hello"})

	m, _ = press(t, m, "e")
	assert.Equal(t, banner.EdgeBottom, m.Banner().Edge())
	assert.True(t, m.Banner().IsShowing(), "flipping keeps the banner up")

	m, _ = press(t, m, "e")
	assert.Equal(t, banner.EdgeTop, m.Banner().Edge())
}

func TestKeys_Text(t *testing.T) {
	m := newTestModel(t, Options{Text: "Hello"})

	m, _ = press(t, m, "T")
	assert.Equal(t, demoTexts[1], m.Banner().Text())

	m, _ = press(t, m, "t")
	c, ok := m.Banner().Pending()
	require.True(t, ok, "an animated change on a visible banner is queued")
	require.NotNil(t, c.Text)
	assert.Equal(t, demoTexts[2], *c.Text)
}

func TestKeys_ActivityToggle(t *testing.T) {
	m := newTestModel(t, Options{Text: "Hello"})

	m, _ = press(t, m, " ")
	c, ok := m.Banner().Pending()
	require.True(t, ok)
	require.NotNil(t, c.Activity)
	assert.True(t, *c.Activity)

	// A second press toggles the queued value, not the current one.
	m, _ = press(t, m, " ")
	c, _ = m.Banner().Pending()
	require.NotNil(t, c.Activity)
	assert.False(t, *c.Activity)
}

func TestKeys_AttachDetach(t *testing.T) {
	m := newTestModel(t, Options{Text: "Hello"})

	m, _ = press(t, m, "x")
	assert.Nil(t, m.Banner().Host())

	m, _ = press(t, m, "x")
	assert.Equal(t, banner.Host(m.screen), m.Banner().Host())
}

func TestKeys_Quit(t *testing.T) {
	m := newTestModel(t, Options{})

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestKeys_HelpResizesHost(t *testing.T) {
	m := newTestModel(t, Options{})
	short := m.screen.Rows()

	m, _ = press(t, m, "?")
	assert.True(t, m.help.ShowAll)
	assert.Less(t, m.screen.Rows(), short)
}

func TestWatch_AppliesUpdates(t *testing.T) {
	m := newTestModel(t, Options{Updates: make(chan feed.Update)})
	now := time.Now()

	next, cmd := m.Update(updateMsg{Text: "Uploading", Time: now})
	m = next.(Model)
	assert.NotNil(t, cmd)

	b := m.Banner()
	assert.Equal(t, "Uploading", b.Text(), "a hidden banner takes the text at once")
	assert.True(t, b.IsShowing())
	assert.True(t, b.HideScheduled())
	assert.Equal(t, now, m.lastUpdate)

	busy := true
	next, _ = m.Update(updateMsg{Text: "Uploading", Activity: &busy, Time: now})
	m = next.(Model)

	c, ok := b.Pending()
	require.True(t, ok)
	assert.Nil(t, c.Text, "unchanged text is not queued")
	require.NotNil(t, c.Activity)
	assert.True(t, *c.Activity)
	assert.False(t, b.HideScheduled(), "a busy banner stays up")
	assert.Equal(t, 2, m.updateCount)
}

func TestWatch_FeedClosed(t *testing.T) {
	m := newTestModel(t, Options{Updates: make(chan feed.Update)})

	next, _ := m.Update(feedClosedMsg{})
	m = next.(Model)
	assert.True(t, m.feedDone)
	assert.Nil(t, m.updates)
	assert.Equal(t, "Feed ended without updates", m.watchStatus())
}

func TestWatchStatus(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := newTestModel(t, Options{
		Updates: make(chan feed.Update),
		Now:     func() time.Time { return now },
	})
	assert.Equal(t, "Waiting for updates...", m.watchStatus())

	m.updateCount = 1200
	m.lastUpdate = now.Add(-3 * time.Second)
	assert.Equal(t, "1,200 updates, last 3 seconds ago", m.watchStatus())
}

func TestWaitForUpdate(t *testing.T) {
	ch := make(chan feed.Update, 1)
	m := Model{updates: ch}

	ch <- feed.Update{Text: "one"}
	assert.Equal(t, updateMsg{Text: "one"}, m.waitForUpdate())

	close(ch)
	assert.Equal(t, feedClosedMsg{}, m.waitForUpdate())

	assert.Nil(t, Model{}.waitForUpdate())
}

func TestView(t *testing.T) {
	m := newTestModel(t, Options{Text: "Hello"})
	m.Banner().Hide(false)
	m.Banner().Show(false)

	view := m.View()
	assert.Len(t, strings.Split(view, "\n"), 26)
	assert.Contains(t, view, "Hello")
	assert.Contains(t, view, "quit")
}

func TestView_NotReady(t *testing.T) {
	m := New(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	assert.Equal(t, "Loading...", m.View())
}

func TestApplyConfig(t *testing.T) {
	m := newTestModel(t, Options{Text: "Hello"})

	cfg := config.DefaultConfig()
	cfg.Banner.Edge = "bottom"
	cfg.Banner.Animation = config.Duration(50 * time.Millisecond)
	cfg.Theme.Name = "minimal"

	next, cmd := m.Update(configMsg{cfg: cfg})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Equal(t, banner.EdgeBottom, m.Banner().Edge())
	assert.Equal(t, 50*time.Millisecond, m.Banner().Duration())
	assert.Equal(t, "minimal", m.Banner().Palette().Name)
}

func TestApplyConfig_HostBackground(t *testing.T) {
	m := newTestModel(t, Options{})

	cfg := config.DefaultConfig()
	cfg.Theme.HostBackground = "#123456"
	next, _ := m.Update(configMsg{cfg: cfg})
	m = next.(Model)
	assert.Equal(t, "#123456", m.palette.Background)
	assert.Equal(t, "#123456", m.Banner().Palette().Background)
}

func TestSpinnerByName(t *testing.T) {
	tests := []struct {
		name string
		want spinner.Spinner
	}{
		{"dot", spinner.Dot},
		{"line", spinner.Line},
		{"minidot", spinner.MiniDot},
		{"jump", spinner.Jump},
		{"points", spinner.Points},
		{"pulse", spinner.Pulse},
		{"ellipsis", spinner.Ellipsis},
		{"unknown", spinner.Dot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SpinnerByName(tt.name))
		})
	}
}

func TestSpinnerNamesCoverConfig(t *testing.T) {
	for _, name := range config.Spinners {
		if name == "dot" {
			continue
		}
		assert.NotEqual(t, spinner.Dot, SpinnerByName(name), name)
	}
}

func TestScreen(t *testing.T) {
	s := &Screen{}
	s.Resize(10, -2)
	assert.Equal(t, 10, s.Cols())
	assert.Equal(t, 0, s.Rows())
	assert.Equal(t, banner.CellsToUnits(10, 0), s.Size())
}

func TestOffer_KeepsLatest(t *testing.T) {
	ch := make(chan int, 1)
	offer(ch, 1)
	offer(ch, 2)
	assert.Equal(t, 2, <-ch)
}

func TestApplyConfig_KeepsOverrides(t *testing.T) {
	overrides := func(c *config.Config) {
		c.Banner.Edge = "bottom"
		c.Watch.DismissAfter = config.Duration(5 * time.Second)
	}
	cfg := config.DefaultConfig()
	overrides(cfg)
	m := newTestModel(t, Options{
		Config:    cfg,
		Updates:   make(chan feed.Update),
		Overrides: overrides,
	})
	require.Equal(t, banner.EdgeBottom, m.Banner().Edge())

	reloaded := config.DefaultConfig()
	reloaded.Banner.Animation = config.Duration(80 * time.Millisecond)
	next, _ := m.Update(configMsg{cfg: reloaded})
	m = next.(Model)

	assert.Equal(t, 5*time.Second, m.dismissAfter())
	assert.Equal(t, banner.EdgeBottom, m.Banner().Edge())
	assert.Equal(t, 80*time.Millisecond, m.Banner().Duration(), "file changes still apply")
	assert.Equal(t, "top", reloaded.Banner.Edge, "the reloaded config is not modified")
}

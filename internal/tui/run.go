package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/discreet/internal/config"
	"github.com/jmylchreest/discreet/internal/feed"
	"github.com/jmylchreest/discreet/internal/theme"
)

// RunOptions configures Run.
type RunOptions struct {
	Config     *config.Config
	ConfigPath string // watched for hot reload; empty uses the default path
	Logger     *slog.Logger

	Text     string
	Activity bool

	// Source drives the banner in watch mode. Nil runs the key driven demo.
	Source feed.Source

	// Overrides re-applies command line flags to each reloaded config.
	Overrides func(*config.Config)
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	modelOpts := Options{
		Config:    cfg,
		Logger:    logger,
		Text:      opts.Text,
		Activity:  opts.Activity,
		Overrides: opts.Overrides,
	}

	// Config hot reload
	configCh := make(chan *config.Config, 1)
	cw, err := config.NewWatcher(opts.ConfigPath, cfg, logger)
	if err != nil {
		logger.Warn("config hot reload unavailable", "error", err)
	} else {
		cw.SetReloadCallback(func(c *config.Config) { offer(configCh, c) })
		if err := cw.Start(); err != nil {
			logger.Warn("config hot reload unavailable", "error", err)
		} else {
			modelOpts.ConfigChanges = configCh
		}
		defer cw.Stop()
	}

	// Palette hot reload, for user palette files
	paletteCh := make(chan theme.Palette, 1)
	palette := resolvePalette(cfg, logger)
	tw := theme.NewWatcher(&palette, logger)
	tw.SetChangeCallback(func(p theme.Palette) { offer(paletteCh, p) })
	if err := tw.Start(ctx); err != nil {
		logger.Warn("theme hot reload unavailable", "error", err)
	}
	defer tw.Stop()
	modelOpts.PaletteChanges = paletteCh
	modelOpts.ThemeWatcher = tw

	var updates chan feed.Update
	if opts.Source != nil {
		updates = make(chan feed.Update, 16)
		modelOpts.Updates = updates
	}

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Source != nil && opts.Source.Name() == "stdin" {
		// Stdin carries the feed, so keys come from the terminal.
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(New(modelOpts), programOpts...)

	if opts.Source != nil {
		src := opts.Source
		go func() {
			defer close(updates)
			logger.Debug("feed started", "source", src.Name())
			if err := src.Run(ctx, updates); err != nil {
				p.Send(FeedErrorMsg{Err: err})
			}
		}()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// offer replaces whatever is waiting in ch with v, so a slow consumer only
// ever sees the latest value.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

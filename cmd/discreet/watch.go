package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/discreet/internal/config"
	"github.com/jmylchreest/discreet/internal/feed"
	"github.com/jmylchreest/discreet/internal/tui"
)

var watchOpts struct {
	source       string
	file         string
	dismissAfter string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Drive a banner from a live feed",
	Long: `Show each update from a feed on the banner, then dismiss it after a
quiet period.

Sources:
  stdin   One update per line
  file    The last line of a status file, on every write
  dbus    Desktop notifications seen on the session bus ("app: summary")

A line starting with "~ " turns the activity spinner on and keeps the
banner up; a line starting with "= " turns it off.

Examples:
  rsync -av --info=progress2 src/ dst/ | discreet watch
  discreet watch --source file --file ~/.cache/build-status
  discreet watch --source dbus`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchOpts.source, "source", "",
		"Update source: stdin, file, dbus (default from config)")
	watchCmd.Flags().StringVar(&watchOpts.file, "file", "",
		"Status file for the file source")
	watchCmd.Flags().StringVar(&watchOpts.dismissAfter, "dismiss-after", "",
		"Quiet period before the banner hides, e.g. 3s (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	var dismissAfter config.Duration
	if watchOpts.dismissAfter != "" {
		if err := dismissAfter.UnmarshalText([]byte(watchOpts.dismissAfter)); err != nil {
			return err
		}
	}
	overrides := func(c *config.Config) {
		if watchOpts.source != "" {
			c.Watch.Source = watchOpts.source
		}
		if watchOpts.file != "" {
			c.Watch.File = watchOpts.file
		}
		if watchOpts.dismissAfter != "" {
			c.Watch.DismissAfter = dismissAfter
		}
	}

	c := *getConfig()
	overrides(&c)
	if err := c.Validate(); err != nil {
		return err
	}

	src, err := feed.New(c.Watch.Source, feed.Options{
		Reader: os.Stdin,
		File:   c.WatchFile(),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), tui.RunOptions{
		Config:     &c,
		ConfigPath: globalOpts.configPath,
		Logger:     logger,
		Source:     src,
		Overrides:  overrides,
	})
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/discreet/internal/banner"
	"github.com/jmylchreest/discreet/internal/config"
	"github.com/jmylchreest/discreet/internal/tui"
)

var demoOpts struct {
	text     string
	activity bool
	edge     string
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Drive a banner from the keyboard",
	Long: `Launch an interactive demo hosting one banner in the terminal.

Key bindings:
  s           Show the banner
  h           Hide the banner
  d           Hide after the configured delay
  a           Show, then dismiss after the delay
  t           Change the text (animated)
  T           Change the text (instant)
  space       Toggle the activity spinner (animated)
  e           Flip between top and bottom edge
  x           Detach from / re-attach to the terminal
  ?           Show all keys
  q           Quit`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().StringVar(&demoOpts.text, "text", "Synchronizing..",
		"Banner text")
	demoCmd.Flags().BoolVar(&demoOpts.activity, "activity", false,
		"Show the activity spinner")
	demoCmd.Flags().StringVar(&demoOpts.edge, "edge", "",
		"Docking edge: top or bottom (default from config)")
}

func runDemo(cmd *cobra.Command, args []string) error {
	if demoOpts.edge != "" {
		if _, ok := banner.ParseEdge(demoOpts.edge); !ok {
			return fmt.Errorf("invalid edge %q: must be top or bottom", demoOpts.edge)
		}
	}
	overrides := func(c *config.Config) {
		if demoOpts.edge != "" {
			c.Banner.Edge = demoOpts.edge
		}
	}
	c := *getConfig()
	overrides(&c)

	text := demoOpts.text
	if text == "" {
		text = "Synchronizing.."
	}

	return tui.Run(cmd.Context(), tui.RunOptions{
		Config:     &c,
		ConfigPath: globalOpts.configPath,
		Logger:     logger,
		Text:       text,
		Activity:   demoOpts.activity,
		Overrides:  overrides,
	})
}

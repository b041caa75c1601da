package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/discreet/internal/theme"
)

var themesOpts struct {
	json bool
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available palettes",
	Long: `List bundled palettes and palettes found in the user themes directory
(~/.config/discreet/themes/<name>.toml). User palettes override bundled
palettes of the same name.`,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)

	themesCmd.Flags().BoolVar(&themesOpts.json, "json", false,
		"Output as JSON")
}

func runThemes(cmd *cobra.Command, args []string) error {
	themes, err := theme.ListAvailableThemes()
	if err != nil {
		logger.Warn("failed to read user themes", "error", err)
	}

	if themesOpts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(themes)
	}

	active := getConfig().Theme.Name
	for _, t := range themes {
		marker := " "
		if t.Name == active {
			marker = "*"
		}
		origin := "bundled"
		if !t.IsBundled {
			origin = t.Path
		}
		fmt.Printf("%s %-12s %s\n", marker, t.Name, origin)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deckport/internal/export"
	"github.com/pdiddy/deckport/internal/journal"
	"github.com/pdiddy/deckport/pkg/types"
)

// openJournal opens the export journal when enabled by config or the
// --journal flag and begins a run. The returned closer is safe to call
// either way.
func openJournal(cmd *cobra.Command, cfg types.JournalConfig, pipeline types.Pipeline, inputDir, outputDir string) (export.Recorder, func(), error) {
	enabled := cfg.Enabled
	if cmd.Flags().Changed("journal") {
		enabled, _ = cmd.Flags().GetBool("journal")
	}
	if !enabled {
		return nil, func() {}, nil
	}

	store, err := journal.Open(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	if err := store.BeginRun(pipeline, inputDir, outputDir); err != nil {
		store.Close()
		return nil, nil, err
	}

	return store, func() { store.Close() }, nil
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show journaled export outcomes",
	Long: `History lists the most recent export outcomes recorded in the journal,
newest first. Runs record outcomes only when journaling is enabled via
configuration or the --journal flag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := store.History(limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No journaled exports.")
			return nil
		}

		for _, e := range entries {
			line := fmt.Sprintf("%s  run %d  %-5s  %-6s  %s -> %s (%s)",
				e.StartedAt.Format("2006-01-02 15:04"), e.RunID, e.Pipeline, e.Status,
				e.Source, e.Output, e.Duration.Round(100*time.Millisecond))
			if e.ShapesRemoved > 0 {
				line += fmt.Sprintf("  removed=%d", e.ShapesRemoved)
			}
			if e.Error != "" {
				line += "  error=" + e.Error
			}
			fmt.Fprintln(os.Stdout, line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 50, "maximum number of entries to show")

	rootCmd.AddCommand(historyCmd)
}

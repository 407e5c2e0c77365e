// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deckport/internal/automation"
	"github.com/pdiddy/deckport/internal/automation/powerpoint"
	"github.com/pdiddy/deckport/internal/export"
	"github.com/pdiddy/deckport/pkg/types"
)

var videoCmd = &cobra.Command{
	Use:   "video [input-dir]",
	Short: "Render .ppsm decks to MP4 videos",
	Long: `Video renders every .ppsm file in the input directory (default: current
directory) to an MP4 of the same name. Rendering happens inside the
presentation application; deckport starts each render, polls its status,
and waits for the output file to materialize on disk before moving on.

The first render failure or timeout aborts the batch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		inputDir := "."
		if len(args) == 1 {
			inputDir = args[0]
		}
		outputDir, _ := cmd.Flags().GetString("output")
		if !cmd.Flags().Changed("output") {
			outputDir = filepath.Join(inputDir, outputDir)
		}

		applyVideoFlags(cmd, &cfg.Video)

		rec, closeJournal, err := openJournal(cmd, cfg.Journal, types.PipelineVideo, inputDir, outputDir)
		if err != nil {
			return err
		}
		defer closeJournal()

		return automation.WithApplication(powerpoint.Connect, os.Stderr, func(app automation.Application) error {
			exp := &export.VideoExporter{
				App:     app,
				Config:  cfg.Video,
				Out:     os.Stdout,
				Journal: rec,
			}
			return exp.ExportFolder(inputDir, outputDir)
		})
	},
}

// applyVideoFlags overrides config fields with explicitly set flags.
func applyVideoFlags(cmd *cobra.Command, cfg *types.VideoConfig) {
	if cmd.Flags().Changed("use-timings") {
		cfg.UseRecordedTimings, _ = cmd.Flags().GetBool("use-timings")
	}
	if cmd.Flags().Changed("slide-duration") {
		cfg.DefaultSlideSeconds, _ = cmd.Flags().GetInt("slide-duration")
	}
	if cmd.Flags().Changed("resolution") {
		cfg.VerticalResolution, _ = cmd.Flags().GetInt("resolution")
	}
	if cmd.Flags().Changed("fps") {
		cfg.FramesPerSecond, _ = cmd.Flags().GetInt("fps")
	}
	if cmd.Flags().Changed("quality") {
		cfg.Quality, _ = cmd.Flags().GetInt("quality")
	}
	if cmd.Flags().Changed("render-timeout") {
		cfg.RenderTimeout, _ = cmd.Flags().GetDuration("render-timeout")
	}
}

func init() {
	videoCmd.Flags().String("output", "Videos", "output directory (default: <input-dir>/Videos)")
	videoCmd.Flags().Bool("use-timings", true, "use recorded slide timings and narrations")
	videoCmd.Flags().Int("slide-duration", 5, "seconds per slide when no timing is recorded")
	videoCmd.Flags().Int("resolution", 1080, "vertical resolution of the rendered video")
	videoCmd.Flags().Int("fps", 30, "frames per second of the rendered video")
	videoCmd.Flags().Int("quality", 85, "encoder quality (1-100)")
	videoCmd.Flags().Duration("render-timeout", time.Hour, "per-file render budget")
	videoCmd.Flags().Bool("journal", false, "record outcomes in the export journal")

	rootCmd.AddCommand(videoCmd)
}

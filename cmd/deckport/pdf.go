// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deckport/internal/automation"
	"github.com/pdiddy/deckport/internal/automation/powerpoint"
	"github.com/pdiddy/deckport/internal/export"
	"github.com/pdiddy/deckport/internal/overlay"
	"github.com/pdiddy/deckport/pkg/types"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf [input-dir]",
	Short: "Export .ppsm decks to PDFs without webcam overlays",
	Long: `Pdf exports every .ppsm file in the input directory (default: current
directory) to a PDF of the same name. Before export, webcam/cameo
overlay shapes are removed from all slides, slide masters, and custom
layouts. When the fixed-format export path fails, a plain save-as PDF
is tried once as a fallback.`,
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

		if cmd.Flags().Changed("print-hidden") {
			cfg.PDF.PrintHiddenSlides, _ = cmd.Flags().GetBool("print-hidden")
		}
		if cmd.Flags().Changed("print-quality") {
			cfg.PDF.PrintQuality, _ = cmd.Flags().GetBool("print-quality")
		}
		if keep, _ := cmd.Flags().GetBool("keep-overlays"); keep {
			cfg.PDF.RemoveOverlays = false
		}

		rec, closeJournal, err := openJournal(cmd, cfg.Journal, types.PipelinePDF, inputDir, outputDir)
		if err != nil {
			return err
		}
		defer closeJournal()

		return automation.WithApplication(powerpoint.Connect, os.Stderr, func(app automation.Application) error {
			exp := &export.PDFExporter{
				App:     app,
				Config:  cfg.PDF,
				Policy:  overlay.PolicyFromConfig(cfg.Overlay),
				Out:     os.Stdout,
				Journal: rec,
			}
			return exp.ExportFolder(inputDir, outputDir)
		})
	},
}

func init() {
	pdfCmd.Flags().String("output", "Slides", "output directory (default: <input-dir>/Slides)")
	pdfCmd.Flags().Bool("print-hidden", false, "include hidden slides in the PDF")
	pdfCmd.Flags().Bool("print-quality", true, "export with print intent instead of screen intent")
	pdfCmd.Flags().Bool("keep-overlays", false, "skip webcam overlay removal")
	pdfCmd.Flags().Bool("journal", false, "record outcomes in the export journal")

	rootCmd.AddCommand(pdfCmd)
}

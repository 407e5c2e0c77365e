// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/deckport/internal/automation"
	"github.com/pdiddy/deckport/internal/overlay"
	"github.com/pdiddy/deckport/internal/poll"
	"github.com/pdiddy/deckport/pkg/types"
)

// pdfFileInterval paces the exported-file wait. PDF writes are quick, so
// the stat cadence is tighter than the video pipeline's.
const pdfFileInterval = 500 * time.Millisecond

// PDFExporter exports each presentation in a folder to PDF, removing
// webcam overlay shapes first.
type PDFExporter struct {
	// App is the connected automation instance.
	App automation.Application

	// Config holds the export flags and wait budgets.
	Config types.PDFConfig

	// Policy is the overlay classification policy.
	Policy overlay.Policy

	// Out receives progress lines; nil discards them.
	Out io.Writer

	// Clock and Stat are test seams; nil means system clock and os.Stat.
	Clock poll.Clock
	Stat  func(path string) (os.FileInfo, error)

	// Journal records per-file outcomes when set.
	Journal Recorder
}

func (e *PDFExporter) out() io.Writer {
	if e.Out == nil {
		return io.Discard
	}
	return e.Out
}

func (e *PDFExporter) clock() poll.Clock {
	if e.Clock == nil {
		return poll.SystemClock()
	}
	return e.Clock
}

// ExportFolder exports every .ppsm file in inputDir to a .pdf of the
// same stem in outputDir, creating outputDir if absent. Each document is
// sanitized, exported (with a one-shot save-as fallback when the primary
// export path fails), waited on, marked saved, and closed before the
// next file. The first unrecovered failure aborts the batch.
func (e *PDFExporter) ExportFolder(inputDir, outputDir string) error {
	files, err := listInputs(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(e.out(), "No .ppsm files found.")
		return nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	report := types.BatchReport{
		Pipeline:  types.PipelinePDF,
		InputDir:  inputDir,
		OutputDir: outputDir,
		StartedAt: e.clock().Now(),
	}

	for _, src := range files {
		out := outputName(src, outputDir, ".pdf")
		start := e.clock().Now()

		removed, exportErr := e.exportOne(src, out)

		rec := types.ExportRecord{
			Pipeline:      types.PipelinePDF,
			Source:        src,
			Output:        out,
			Status:        types.ExportDone,
			ShapesRemoved: removed,
			Duration:      e.clock().Now().Sub(start),
		}
		if exportErr != nil {
			rec.Status = types.ExportFailed
			rec.Error = exportErr.Error()
		}
		record(e.Journal, rec)
		report.Exports = append(report.Exports, rec)

		if exportErr != nil {
			writeReport(outputDir, report, e.out())
			return fmt.Errorf("exporting %s: %w", filepath.Base(src), exportErr)
		}
	}

	writeReport(outputDir, report, e.out())
	fmt.Fprintln(e.out(), "Done.")
	return nil
}

// exportOne sanitizes and exports a single presentation, returning the
// overlay deletion count alongside any fatal error.
func (e *PDFExporter) exportOne(src, out string) (int, error) {
	fmt.Fprintf(e.out(), "Exporting: %s -> %s\n", filepath.Base(src), filepath.Base(out))

	pres, err := e.App.Open(src, automation.OpenOptions{ReadOnly: true})
	if err != nil {
		return 0, fmt.Errorf("opening presentation: %w", err)
	}
	defer func() { _ = pres.Close() }()

	removed := 0
	if e.Config.RemoveOverlays {
		removed = overlay.Remove(pres, e.Policy)
		if removed > 0 {
			fmt.Fprintf(e.out(), "  removed %d webcam/cameo shape(s)\n", removed)
		}
	}

	if err := e.export(pres, out); err != nil {
		return removed, err
	}

	if err := poll.AwaitFile(poll.FileConfig{
		MinBytes: e.Config.MinBytes,
		Timeout:  e.Config.FileTimeout,
		Interval: pdfFileInterval,
		Clock:    e.Clock,
		Stat:     e.Stat,
		Pump:     e.App.Pump,
	}, out); err != nil {
		return removed, err
	}

	// The overlay pass dirtied the document; marking it saved suppresses
	// the application's close-time confirmation prompt.
	pres.MarkSaved()
	return removed, nil
}

// export runs the fixed-format path and, when it fails, falls back once
// to a plain save-as. The fallback is the recovery mechanism, not a
// retry: a second failure is fatal.
func (e *PDFExporter) export(pres automation.Presentation, out string) error {
	intent := automation.IntentScreen
	if e.Config.PrintQuality {
		intent = automation.IntentPrint
	}

	primaryErr := pres.ExportFixedFormat(out, automation.FixedFormatPDF, automation.FixedFormatOptions{
		Intent:            intent,
		FrameSlides:       false,
		PrintHiddenSlides: e.Config.PrintHiddenSlides,
	})
	if primaryErr == nil {
		return nil
	}

	fmt.Fprintf(e.out(), "  fixed-format export failed (%v), falling back to save-as\n", primaryErr)

	if err := pres.SaveAs(out, automation.SavePDF); err != nil {
		return fmt.Errorf("fallback save-as failed: %w (primary: %v)", err, primaryErr)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/deckport/internal/automation"
	"github.com/pdiddy/deckport/internal/poll"
	"github.com/pdiddy/deckport/pkg/types"
)

// videoPollInterval paces both render status polls and the rendered-file
// wait.
const videoPollInterval = time.Second

// VideoExporter renders each presentation in a folder to MP4 through the
// automation surface.
type VideoExporter struct {
	// App is the connected automation instance.
	App automation.Application

	// Config holds the render parameters and wait budgets.
	Config types.VideoConfig

	// Out receives progress lines; nil discards them.
	Out io.Writer

	// Clock and Stat are test seams; nil means system clock and os.Stat.
	Clock poll.Clock
	Stat  func(path string) (os.FileInfo, error)

	// Journal records per-file outcomes when set.
	Journal Recorder
}

func (e *VideoExporter) out() io.Writer {
	if e.Out == nil {
		return io.Discard
	}
	return e.Out
}

func (e *VideoExporter) clock() poll.Clock {
	if e.Clock == nil {
		return poll.SystemClock()
	}
	return e.Clock
}

// ExportFolder renders every .ppsm file in inputDir to an .mp4 of the
// same stem in outputDir, creating outputDir if absent. Files are
// processed in sorted-filename order, strictly one at a time. The first
// render failure or timeout aborts the batch.
func (e *VideoExporter) ExportFolder(inputDir, outputDir string) error {
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
		Pipeline:  types.PipelineVideo,
		InputDir:  inputDir,
		OutputDir: outputDir,
		StartedAt: e.clock().Now(),
	}

	for _, src := range files {
		out := outputName(src, outputDir, ".mp4")
		start := e.clock().Now()

		exportErr := e.exportOne(src, out)

		rec := types.ExportRecord{
			Pipeline: types.PipelineVideo,
			Source:   src,
			Output:   out,
			Status:   types.ExportDone,
			Duration: e.clock().Now().Sub(start),
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

// exportOne renders a single presentation: open non-interactive, start
// the asynchronous render, wait for the terminal status, then wait for
// the file to actually reach its sanity size on disk.
func (e *VideoExporter) exportOne(src, out string) error {
	fmt.Fprintf(e.out(), "Exporting: %s -> %s\n", filepath.Base(src), filepath.Base(out))

	pres, err := e.App.Open(src, automation.OpenOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("opening presentation: %w", err)
	}
	defer func() { _ = pres.Close() }()

	job, err := pres.CreateVideo(out, automation.VideoOptions{
		UseRecordedTimings:  e.Config.UseRecordedTimings,
		DefaultSlideSeconds: e.Config.DefaultSlideSeconds,
		VerticalResolution:  e.Config.VerticalResolution,
		FramesPerSecond:     e.Config.FramesPerSecond,
		Quality:             e.Config.Quality,
	})
	if err != nil {
		return fmt.Errorf("starting video render: %w", err)
	}

	err = poll.AwaitCompletion(
		poll.Config{
			Timeout:  e.Config.RenderTimeout,
			Interval: videoPollInterval,
			Clock:    e.Clock,
			Progress: e.out(),
		},
		filepath.Base(out),
		job.Status,
		func(s automation.VideoStatus) bool { return s == automation.StatusDone },
		func(s automation.VideoStatus) bool { return s == automation.StatusFailed },
	)
	if err != nil {
		return err
	}

	// The render reported done, but the application may still be flushing
	// the container; keep servicing its queue while the file fills out.
	return poll.AwaitFile(poll.FileConfig{
		MinBytes: e.Config.MinBytes,
		Timeout:  e.Config.FileTimeout,
		Interval: videoPollInterval,
		Clock:    e.Clock,
		Stat:     e.Stat,
		Pump:     e.App.Pump,
	}, out)
}

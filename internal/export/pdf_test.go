// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/deckport/internal/automation"
	"github.com/pdiddy/deckport/internal/automation/fake"
	"github.com/pdiddy/deckport/internal/overlay"
	"github.com/pdiddy/deckport/internal/poll"
	"github.com/pdiddy/deckport/pkg/types"
)

func pdfConfig() types.PDFConfig {
	return types.DefaultPipelineConfig().PDF
}

// presentationWithOverlay returns a deck whose first slide carries one
// webcam overlay shape on a 960x540 canvas.
func presentationWithOverlay() *fake.Presentation {
	slide := fake.NewShapeList(
		&fake.Shape{
			Rect:      automation.Rect{Left: 10, Top: 10, Width: 400, Height: 300},
			Kind:      automation.ShapePicture,
			ShapeName: "Title",
		},
		&fake.Shape{
			Rect:      automation.Rect{Left: 700, Top: 400, Width: 200, Height: 120},
			Kind:      automation.ShapeMedia,
			ShapeName: "Cameo",
		},
	)
	return &fake.Presentation{Width: 960, Height: 540, SlideShapes: []*fake.ShapeList{slide}}
}

func newPDFExporter(app *fake.Application, cfg types.PDFConfig, out *bytes.Buffer) *PDFExporter {
	return &PDFExporter{
		App:    app,
		Config: cfg,
		Policy: overlay.DefaultPolicy(),
		Out:    out,
		Clock:  &fakeClock{now: time.Unix(0, 0)},
		Stat:   statAlways(50_000),
	}
}

func TestPDFExportFolder(t *testing.T) {
	inputDir := writeInputs(t, "deck.ppsm")
	outputDir := filepath.Join(t.TempDir(), "Slides")

	pres := presentationWithOverlay()
	app := &fake.Application{Presentations: map[string]*fake.Presentation{
		filepath.Join(inputDir, "deck.ppsm"): pres,
	}}

	var out bytes.Buffer
	rec := &memoryRecorder{}
	exp := newPDFExporter(app, pdfConfig(), &out)
	exp.Journal = rec

	require.NoError(t, exp.ExportFolder(inputDir, outputDir))

	outPDF := filepath.Join(outputDir, "deck.pdf")
	assert.Equal(t, []string{outPDF}, pres.FixedFormatTo)
	assert.Empty(t, pres.SaveAsTo, "fallback must not run when the primary path works")
	assert.True(t, pres.Saved, "document marked saved to suppress the close prompt")
	assert.Equal(t, 1, pres.CloseCalls)
	assert.Contains(t, out.String(), "removed 1 webcam/cameo shape(s)")

	require.Len(t, rec.records, 1)
	assert.Equal(t, types.ExportDone, rec.records[0].Status)
	assert.Equal(t, 1, rec.records[0].ShapesRemoved)

	// The file wait services the application's message queue.
	assert.GreaterOrEqual(t, app.PumpCalls, 1)
}

func TestPDFExportFolder_KeepOverlays(t *testing.T) {
	inputDir := writeInputs(t, "deck.ppsm")

	pres := presentationWithOverlay()
	app := &fake.Application{Presentations: map[string]*fake.Presentation{
		filepath.Join(inputDir, "deck.ppsm"): pres,
	}}

	cfg := pdfConfig()
	cfg.RemoveOverlays = false

	var out bytes.Buffer
	exp := newPDFExporter(app, cfg, &out)

	require.NoError(t, exp.ExportFolder(inputDir, filepath.Join(inputDir, "Slides")))
	assert.Equal(t, 2, pres.SlideShapes[0].Count(), "shapes untouched when removal is off")
	assert.NotContains(t, out.String(), "removed")
}

func TestPDFExportFolder_FallbackOnPrimaryFailure(t *testing.T) {
	inputDir := writeInputs(t, "deck.ppsm")
	outputDir := filepath.Join(t.TempDir(), "Slides")

	pres := presentationWithOverlay()
	pres.FixedFormatErr = errors.New("export filter not installed")
	app := &fake.Application{Presentations: map[string]*fake.Presentation{
		filepath.Join(inputDir, "deck.ppsm"): pres,
	}}

	var out bytes.Buffer
	exp := newPDFExporter(app, pdfConfig(), &out)

	require.NoError(t, exp.ExportFolder(inputDir, outputDir))

	assert.Equal(t, []string{filepath.Join(outputDir, "deck.pdf")}, pres.SaveAsTo)
	assert.Contains(t, out.String(), "falling back to save-as")
}

func TestPDFExportFolder_FallbackFailureIsFatal(t *testing.T) {
	inputDir := writeInputs(t, "deck.ppsm")

	pres := presentationWithOverlay()
	pres.FixedFormatErr = errors.New("export filter not installed")
	pres.SaveAsErr = errors.New("disk full")
	app := &fake.Application{Presentations: map[string]*fake.Presentation{
		filepath.Join(inputDir, "deck.ppsm"): pres,
	}}

	var out bytes.Buffer
	exp := newPDFExporter(app, pdfConfig(), &out)

	err := exp.ExportFolder(inputDir, filepath.Join(inputDir, "Slides"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deck.ppsm")
	assert.Contains(t, err.Error(), "fallback save-as failed")
	assert.Equal(t, 1, pres.CloseCalls, "presentation closed on the failure path")
}

func TestPDFExportFolder_FileTimeoutIsFatal(t *testing.T) {
	inputDir := writeInputs(t, "deck.ppsm")

	pres := presentationWithOverlay()
	app := &fake.Application{Presentations: map[string]*fake.Presentation{
		filepath.Join(inputDir, "deck.ppsm"): pres,
	}}

	cfg := pdfConfig()
	cfg.FileTimeout = 2 * time.Second

	var out bytes.Buffer
	exp := newPDFExporter(app, cfg, &out)
	exp.Stat = statAlways(100) // never reaches MinBytes

	err := exp.ExportFolder(inputDir, filepath.Join(inputDir, "Slides"))
	var toErr *poll.TimeoutError
	require.ErrorAs(t, err, &toErr)
	assert.False(t, pres.Saved, "document not marked saved when the export never materialized")
}

func TestListInputs_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.ppsm", "a.ppsm", "notes.txt", "c.PPSM"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.ppsm"), 0o755))

	files, err := listInputs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.ppsm"),
		filepath.Join(dir, "b.ppsm"),
		filepath.Join(dir, "c.PPSM"),
	}, files)
}

func TestOutputName(t *testing.T) {
	got := outputName(filepath.Join("in", "Weekly Update.ppsm"), "out", ".pdf")
	assert.Equal(t, filepath.Join("out", "Weekly Update.pdf"), got)
}

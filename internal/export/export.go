// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export sequences the two deliverable pipelines: presentation
// folder in, MP4 or PDF folder out. Each pipeline opens one file at a
// time against the automation surface, transforms and exports it, waits
// for the result to materialize, and closes it before touching the next
// file. A failure aborts the whole batch; there is no per-file continue.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deckport/pkg/types"
)

// inputExt is the macro-enabled presentation extension both pipelines consume.
const inputExt = ".ppsm"

// reportFile is the per-batch YAML summary written into the output folder.
const reportFile = "export-report.yaml"

// Recorder persists per-file export outcomes. The journal store
// implements it; a nil Recorder disables recording.
type Recorder interface {
	RecordExport(rec types.ExportRecord) error
}

// listInputs returns the presentation files in dir, sorted by filename.
func listInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), inputExt) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// outputName maps an input path to its deliverable in outputDir: same
// stem, new extension.
func outputName(src, outputDir, ext string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(outputDir, base+ext)
}

// record sends one outcome to the recorder, if any. Journal trouble is a
// warning, never a batch failure.
func record(rec Recorder, r types.ExportRecord) {
	if rec == nil {
		return
	}
	if err := rec.RecordExport(r); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record export of %s: %v\n", r.Source, err)
	}
}

// writeReport marshals the batch summary into the output folder. Like
// the journal, a report failure only warns.
func writeReport(outputDir string, report types.BatchReport, w io.Writer) {
	data, err := yaml.Marshal(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not marshal batch report: %v\n", err)
		return
	}
	path := filepath.Join(outputDir, reportFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not write batch report: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Report: %s\n", path)
}

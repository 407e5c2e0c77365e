// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Pipeline identifies which export pipeline produced a record.
type Pipeline string

const (
	PipelineVideo Pipeline = "video"
	PipelinePDF   Pipeline = "pdf"
)

// ExportStatus is the terminal outcome of one file's export.
type ExportStatus string

const (
	ExportDone   ExportStatus = "done"
	ExportFailed ExportStatus = "failed"
)

// ExportRecord is the outcome of exporting a single presentation.
type ExportRecord struct {
	// Pipeline is the pipeline that produced this record.
	Pipeline Pipeline `json:"pipeline" yaml:"pipeline"`

	// Source is the input presentation path.
	Source string `json:"source" yaml:"source"`

	// Output is the produced file path.
	Output string `json:"output" yaml:"output"`

	// Status is the terminal outcome.
	Status ExportStatus `json:"status" yaml:"status"`

	// ShapesRemoved counts webcam overlay shapes deleted before export
	// (PDF pipeline only).
	ShapesRemoved int `json:"shapes_removed" yaml:"shapes_removed"`

	// Duration is the wall-clock time spent on this file.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Error describes the failure when Status is failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchReport summarizes one pipeline run over a folder.
type BatchReport struct {
	// Pipeline is the pipeline that ran.
	Pipeline Pipeline `json:"pipeline" yaml:"pipeline"`

	// InputDir and OutputDir are the folders the run read from and wrote to.
	InputDir  string `json:"input_dir" yaml:"input_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// StartedAt is when the batch began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Exports holds one record per input file, in processing order.
	Exports []ExportRecord `json:"exports" yaml:"exports"`
}

// Failed reports whether any export in the batch failed.
func (r BatchReport) Failed() bool {
	for _, e := range r.Exports {
		if e.Status == ExportFailed {
			return true
		}
	}
	return false
}

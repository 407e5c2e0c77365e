// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the configuration and record types shared across
// the deckport pipelines.
package types

import "time"

// VideoConfig holds settings for the video export pipeline.
type VideoConfig struct {
	// UseRecordedTimings replays recorded slide timings and narrations
	// instead of a fixed per-slide duration.
	UseRecordedTimings bool `json:"use_recorded_timings" yaml:"use_recorded_timings"`

	// DefaultSlideSeconds is the per-slide duration used when a slide has
	// no recorded timing (default 5).
	DefaultSlideSeconds int `json:"default_slide_seconds" yaml:"default_slide_seconds"`

	// VerticalResolution is the rendered video height in pixels (default 1080).
	VerticalResolution int `json:"vertical_resolution" yaml:"vertical_resolution"`

	// FramesPerSecond is the rendered video frame rate (default 30).
	FramesPerSecond int `json:"frames_per_second" yaml:"frames_per_second"`

	// Quality is the encoder quality, 1-100 (default 85).
	Quality int `json:"quality" yaml:"quality"`

	// RenderTimeout bounds how long a single render may stay non-terminal
	// (default 1h).
	RenderTimeout time.Duration `json:"render_timeout" yaml:"render_timeout"`

	// FileTimeout bounds the wait for the rendered file to materialize on
	// disk after the render reports done (default 60s).
	FileTimeout time.Duration `json:"file_timeout" yaml:"file_timeout"`

	// MinBytes is the sanity threshold a rendered file must reach before
	// it counts as materialized (default 200000).
	MinBytes int64 `json:"min_bytes" yaml:"min_bytes"`
}

// PDFConfig holds settings for the PDF export pipeline.
type PDFConfig struct {
	// PrintHiddenSlides includes hidden slides in the exported PDF.
	PrintHiddenSlides bool `json:"print_hidden_slides" yaml:"print_hidden_slides"`

	// PrintQuality exports with print intent; when false the lighter
	// screen intent is used.
	PrintQuality bool `json:"print_quality" yaml:"print_quality"`

	// RemoveOverlays runs webcam overlay removal before export (default true).
	RemoveOverlays bool `json:"remove_overlays" yaml:"remove_overlays"`

	// FileTimeout bounds the wait for the exported PDF to materialize on
	// disk (default 2m).
	FileTimeout time.Duration `json:"file_timeout" yaml:"file_timeout"`

	// MinBytes is the size threshold an exported PDF must reach before it
	// counts as materialized (default 10000).
	MinBytes int64 `json:"min_bytes" yaml:"min_bytes"`
}

// OverlayConfig holds the webcam overlay classification policy. The
// thresholds and keyword list are heuristic policy, not hard-coded truth;
// tune them when legitimate corner graphics are being deleted.
type OverlayConfig struct {
	// CornerRatio is the fraction of the slide width/height a shape's
	// left/top must exceed to count as bottom-right (default 0.65).
	CornerRatio float64 `json:"corner_ratio" yaml:"corner_ratio"`

	// MaxSizeRatio is the fraction of the slide width/height a shape must
	// stay under to count as an overlay rather than a full-bleed element
	// (default 0.50).
	MaxSizeRatio float64 `json:"max_size_ratio" yaml:"max_size_ratio"`

	// Keywords are the case-insensitive name/alt-text tokens that count as
	// naming evidence (default: camera, cameo, webcam, presenter).
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// JournalConfig holds settings for the export journal.
type JournalConfig struct {
	// Enabled turns per-file outcome recording on.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file (default "deckport.db").
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Video   VideoConfig   `json:"video" yaml:"video"`
	PDF     PDFConfig     `json:"pdf" yaml:"pdf"`
	Overlay OverlayConfig `json:"overlay" yaml:"overlay"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// DefaultPipelineConfig returns the configuration used by a bare
// invocation: recorded timings at 1080p/30fps, print-quality PDFs with
// overlay removal on, journal disabled.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Video: VideoConfig{
			UseRecordedTimings:  true,
			DefaultSlideSeconds: 5,
			VerticalResolution:  1080,
			FramesPerSecond:     30,
			Quality:             85,
			RenderTimeout:       time.Hour,
			FileTimeout:         60 * time.Second,
			MinBytes:            200_000,
		},
		PDF: PDFConfig{
			PrintHiddenSlides: false,
			PrintQuality:      true,
			RemoveOverlays:    true,
			FileTimeout:       2 * time.Minute,
			MinBytes:          10_000,
		},
		Overlay: OverlayConfig{
			CornerRatio:  0.65,
			MaxSizeRatio: 0.50,
			Keywords:     []string{"camera", "cameo", "webcam", "presenter"},
		},
		Journal: JournalConfig{
			Enabled: false,
			Path:    "deckport.db",
		},
	}
}

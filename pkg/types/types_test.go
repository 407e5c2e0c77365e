// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
	"time"
)

func TestDefaultPipelineConfig(t *testing.T) {
	cfg := DefaultPipelineConfig()

	if !cfg.Video.UseRecordedTimings {
		t.Error("video default should use recorded timings")
	}
	if cfg.Video.RenderTimeout != time.Hour {
		t.Errorf("video render timeout = %v, want 1h", cfg.Video.RenderTimeout)
	}
	if cfg.Video.MinBytes != 200_000 {
		t.Errorf("video min bytes = %d, want 200000", cfg.Video.MinBytes)
	}
	if cfg.PDF.MinBytes != 10_000 {
		t.Errorf("pdf min bytes = %d, want 10000", cfg.PDF.MinBytes)
	}
	if cfg.PDF.FileTimeout != 2*time.Minute {
		t.Errorf("pdf file timeout = %v, want 2m", cfg.PDF.FileTimeout)
	}
	if !cfg.PDF.RemoveOverlays {
		t.Error("pdf default should remove overlays")
	}
	if cfg.Overlay.CornerRatio != 0.65 || cfg.Overlay.MaxSizeRatio != 0.50 {
		t.Errorf("overlay thresholds = %v/%v, want 0.65/0.50",
			cfg.Overlay.CornerRatio, cfg.Overlay.MaxSizeRatio)
	}
	if len(cfg.Overlay.Keywords) != 4 {
		t.Errorf("overlay keywords = %v, want 4 entries", cfg.Overlay.Keywords)
	}
}

func TestBatchReportFailed(t *testing.T) {
	report := BatchReport{Exports: []ExportRecord{
		{Status: ExportDone},
		{Status: ExportDone},
	}}
	if report.Failed() {
		t.Error("all-done report should not be failed")
	}

	report.Exports = append(report.Exports, ExportRecord{Status: ExportFailed})
	if !report.Failed() {
		t.Error("report with a failed export should be failed")
	}
}

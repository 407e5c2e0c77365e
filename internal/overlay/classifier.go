// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package overlay identifies and removes webcam ("cameo") overlay shapes
// from a presentation before PDF export. Classification is heuristic:
// geometry narrows the candidates, semantic evidence confirms them.
package overlay

import (
	"strings"

	"github.com/pdiddy/deckport/internal/automation"
	"github.com/pdiddy/deckport/pkg/types"
)

// Policy holds the classification thresholds and keyword list. The
// defaults encode the observed overlay placement; they are policy, not
// truth, and callers may tune them via configuration.
type Policy struct {
	// CornerRatio: a shape whose left and top both exceed this fraction
	// of the slide dimensions lies in the bottom-right region.
	CornerRatio float64

	// MaxSizeRatio: a shape must stay under this fraction of the slide
	// dimensions on both axes to count as an overlay.
	MaxSizeRatio float64

	// Keywords are matched case-insensitively against the shape name and
	// alt text as naming evidence.
	Keywords []string
}

// DefaultPolicy returns the stock thresholds and keyword list.
func DefaultPolicy() Policy {
	return Policy{
		CornerRatio:  0.65,
		MaxSizeRatio: 0.50,
		Keywords:     []string{"camera", "cameo", "webcam", "presenter"},
	}
}

// PolicyFromConfig builds a Policy from configuration, filling zero
// values with the defaults.
func PolicyFromConfig(cfg types.OverlayConfig) Policy {
	p := DefaultPolicy()
	if cfg.CornerRatio > 0 {
		p.CornerRatio = cfg.CornerRatio
	}
	if cfg.MaxSizeRatio > 0 {
		p.MaxSizeRatio = cfg.MaxSizeRatio
	}
	if len(cfg.Keywords) > 0 {
		p.Keywords = cfg.Keywords
	}
	return p
}

// Classifier decides whether a shape is a webcam overlay on a slide
// canvas of known dimensions.
type Classifier struct {
	policy Policy
	slideW float64
	slideH float64
}

// NewClassifier builds a classifier for the given policy and slide size.
func NewClassifier(policy Policy, slideW, slideH float64) *Classifier {
	return &Classifier{policy: policy, slideW: slideW, slideH: slideH}
}

// Matches reports whether sh looks like a webcam overlay. The verdict is
// conjunctive: bottom-right position AND minority size AND (media
// evidence OR naming evidence). Geometry alone would flag legitimate
// corner graphics; hints alone are not always present.
//
// Any property that cannot be read fails its own sub-check and nothing
// more: classification degrades per signal and never aborts.
func (c *Classifier) Matches(sh automation.Shape) bool {
	r, err := sh.Bounds()
	if err != nil {
		return false
	}

	inCorner := r.Left > c.policy.CornerRatio*c.slideW && r.Top > c.policy.CornerRatio*c.slideH
	smallish := r.Width < c.policy.MaxSizeRatio*c.slideW && r.Height < c.policy.MaxSizeRatio*c.slideH
	if !inCorner || !smallish {
		return false
	}

	return c.mediaEvidence(sh) || c.namingEvidence(sh)
}

// mediaEvidence checks the three independent media signals: declared
// media type, a responding media-format capability, or a responding
// cameo capability. The probes respond only on media shapes, so success
// is itself the signal.
func (c *Classifier) mediaEvidence(sh automation.Shape) bool {
	if t, err := sh.Type(); err == nil && t == automation.ShapeMedia {
		return true
	}
	return sh.ProbeMediaFormat() || sh.ProbeCameo()
}

// namingEvidence checks the shape name and alt text for policy keywords,
// case-insensitively. Unreadable fields contribute nothing.
func (c *Classifier) namingEvidence(sh automation.Shape) bool {
	if name, err := sh.Name(); err == nil && c.containsKeyword(name) {
		return true
	}
	if alt, err := sh.AltText(); err == nil && c.containsKeyword(alt) {
		return true
	}
	return false
}

func (c *Classifier) containsKeyword(s string) bool {
	s = strings.ToLower(s)
	for _, k := range c.policy.Keywords {
		if k != "" && strings.Contains(s, k) {
			return true
		}
	}
	return false
}

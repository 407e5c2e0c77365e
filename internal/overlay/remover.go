// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overlay

import (
	"github.com/pdiddy/deckport/internal/automation"
)

// Remove walks every shape container in the presentation, deleting
// shapes the classifier flags: all slides in document order, then each
// design's slide master and that master's custom layouts. It returns
// the total number of deletions.
//
// Remove is best-effort by contract: unreadable containers and per-shape
// faults are swallowed so a single bad shape never aborts the pass, and
// the traversal always completes over everything it was given.
func Remove(pres automation.Presentation, policy Policy) int {
	slideW, slideH := pres.SlideSize()
	cls := NewClassifier(policy, slideW, slideH)

	total := 0

	if slides, err := pres.Slides(); err == nil {
		for _, s := range slides {
			total += removeFromContainer(s, cls)
		}
	}

	// Masters and layouts cover overlays stamped onto every slide.
	if designs, err := pres.Designs(); err == nil {
		for _, d := range designs {
			if master, err := d.SlideMaster(); err == nil {
				total += removeFromContainer(master, cls)
			}
			if layouts, err := d.CustomLayouts(); err == nil {
				for _, l := range layouts {
					total += removeFromContainer(l, cls)
				}
			}
		}
	}

	return total
}

// removeFromContainer classifies and deletes within one container.
// Iteration runs last to first: deleting a shape shifts every later
// index down, so a forward walk would skip the element after each
// deletion. Walking backward keeps the not-yet-visited indices stable.
func removeFromContainer(shapes automation.Shapes, cls *Classifier) int {
	deleted := 0

	for i := shapes.Count() - 1; i >= 0; i-- {
		sh, err := shapes.At(i)
		if err != nil {
			continue
		}

		if cls.Matches(sh) {
			if sh.Delete() == nil {
				deleted++
			}
			continue
		}

		if isGroup(sh) && groupContainsOverlay(sh, cls) {
			// An overlay composited inside a group makes the whole group
			// the overlay; deleting just the child would leave a husk.
			if sh.Delete() == nil {
				deleted++
			}
		}
	}

	return deleted
}

func isGroup(sh automation.Shape) bool {
	t, err := sh.Type()
	return err == nil && t == automation.ShapeGroup
}

// groupContainsOverlay scans a group's children, last to first, stopping
// at the first match. Faulty children are skipped.
func groupContainsOverlay(group automation.Shape, cls *Classifier) bool {
	items, err := group.GroupItems()
	if err != nil {
		return false
	}
	for j := items.Count() - 1; j >= 0; j-- {
		inner, err := items.At(j)
		if err != nil {
			continue
		}
		if cls.Matches(inner) {
			return true
		}
	}
	return false
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overlay

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pdiddy/deckport/internal/automation"
	"github.com/pdiddy/deckport/internal/automation/fake"
)

// overlayShape builds a shape the default policy flags.
func overlayShape(name string) *fake.Shape {
	return &fake.Shape{
		Rect:      cornerRect(),
		Kind:      automation.ShapeMedia,
		ShapeName: name,
	}
}

// plainShape builds a shape no policy flags.
func plainShape(name string) *fake.Shape {
	return &fake.Shape{
		Rect:      automation.Rect{Left: 10, Top: 10, Width: 300, Height: 200},
		Kind:      automation.ShapePicture,
		ShapeName: name,
	}
}

func presentationWith(slides ...*fake.ShapeList) *fake.Presentation {
	return &fake.Presentation{Width: slideW, Height: slideH, SlideShapes: slides}
}

func defaultClassifier() *Classifier {
	return NewClassifier(DefaultPolicy(), slideW, slideH)
}

func TestRemove_AlternatingFixtureKeepsSurvivorsOrdered(t *testing.T) {
	// Overlays at positions 1, 3, 5 (1-indexed) of six. Deleting in
	// reverse order must leave the shapes originally at 2, 4, 6 intact
	// and correctly indexed.
	slide := fake.NewShapeList(
		overlayShape("one"),
		plainShape("two"),
		overlayShape("three"),
		plainShape("four"),
		overlayShape("five"),
		plainShape("six"),
	)

	count := Remove(presentationWith(slide), DefaultPolicy())

	if count != 3 {
		t.Fatalf("Remove() = %d deletions, want 3", count)
	}
	want := []string{"two", "four", "six"}
	if got := slide.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("survivors = %v, want %v", got, want)
	}
}

// forwardRemove is the broken variant: walking up while deleting shifts
// the next element into the just-freed index and skips it. It exists
// only to pin down why removeFromContainer iterates backward.
func forwardRemove(shapes automation.Shapes, cls *Classifier) int {
	deleted := 0
	for i := 0; i < shapes.Count(); i++ {
		sh, err := shapes.At(i)
		if err != nil {
			continue
		}
		if cls.Matches(sh) {
			if sh.Delete() == nil {
				deleted++
			}
		}
	}
	return deleted
}

func TestRemove_ForwardIterationCorruptsIndices(t *testing.T) {
	build := func() *fake.ShapeList {
		return fake.NewShapeList(
			overlayShape("a"),
			overlayShape("b"),
			overlayShape("c"),
			plainShape("d"),
		)
	}

	// Forward deletion skips the shape that slides into the freed index:
	// "b" survives even though it is an overlay.
	forward := build()
	if got := forwardRemove(forward, defaultClassifier()); got == 3 {
		t.Fatal("forward deletion unexpectedly handled index shifting; fixture no longer guards the traversal order")
	}
	if got := forward.Names(); !reflect.DeepEqual(got, []string{"b", "d"}) {
		t.Errorf("forward survivors = %v, want [b d] (the skipped overlay)", got)
	}

	// The backward pass takes all three.
	backward := build()
	if got := removeFromContainer(backward, defaultClassifier()); got != 3 {
		t.Errorf("removeFromContainer() = %d deletions, want 3", got)
	}
	if got := backward.Names(); !reflect.DeepEqual(got, []string{"d"}) {
		t.Errorf("backward survivors = %v, want [d]", got)
	}
}

func TestRemove_FlaggedGroupDeletedWhole(t *testing.T) {
	group := &fake.Shape{
		Rect:      cornerRect(),
		Kind:      automation.ShapeGroup,
		ShapeName: "Cameo group",
		Children:  fake.NewShapeList(plainShape("frame"), plainShape("shadow")),
	}
	slide := fake.NewShapeList(plainShape("title"), group)

	count := Remove(presentationWith(slide), DefaultPolicy())

	if count != 1 {
		t.Fatalf("Remove() = %d deletions, want 1 (the group as a unit)", count)
	}
	if !group.Deleted {
		t.Error("group should be deleted")
	}
}

func TestRemove_GroupDeletedOnChildMatch(t *testing.T) {
	// The group itself is off-corner and unflagged; one child is a
	// webcam overlay. The whole parent group goes, counted once.
	inner := overlayShape("camera feed")
	group := &fake.Shape{
		Rect:      automation.Rect{Left: 100, Top: 100, Width: 700, Height: 400},
		Kind:      automation.ShapeGroup,
		ShapeName: "content group",
		Children:  fake.NewShapeList(plainShape("chart"), inner),
	}
	slide := fake.NewShapeList(group, plainShape("title"))

	count := Remove(presentationWith(slide), DefaultPolicy())

	if count != 1 {
		t.Fatalf("Remove() = %d deletions, want exactly 1 (group, not group plus child)", count)
	}
	if !group.Deleted {
		t.Error("parent group should be deleted")
	}
	if inner.Deleted {
		t.Error("child must not be deleted separately")
	}
}

func TestRemove_GroupWithoutMatchSurvives(t *testing.T) {
	group := &fake.Shape{
		Rect:     automation.Rect{Left: 100, Top: 100, Width: 700, Height: 400},
		Kind:     automation.ShapeGroup,
		Children: fake.NewShapeList(plainShape("chart"), plainShape("legend")),
	}
	slide := fake.NewShapeList(group)

	if count := Remove(presentationWith(slide), DefaultPolicy()); count != 0 {
		t.Errorf("Remove() = %d deletions, want 0", count)
	}
	if group.Deleted {
		t.Error("clean group should survive")
	}
}

func TestRemove_PerShapeFaultsAreSwallowed(t *testing.T) {
	errCOM := errors.New("RPC server unavailable")

	undeletable := overlayShape("stuck")
	undeletable.DeleteErr = errCOM
	unreadable := &fake.Shape{BoundsErr: errCOM}
	brokenGroup := &fake.Shape{
		Rect:     automation.Rect{Left: 100, Top: 100, Width: 700, Height: 400},
		Kind:     automation.ShapeGroup,
		GroupErr: errCOM,
	}

	slide := fake.NewShapeList(undeletable, unreadable, brokenGroup, overlayShape("ok"))

	count := Remove(presentationWith(slide), DefaultPolicy())

	// The traversal completes and still removes what it can.
	if count != 1 {
		t.Errorf("Remove() = %d deletions, want 1", count)
	}
}

func TestRemove_CoversMastersAndLayouts(t *testing.T) {
	slide := fake.NewShapeList(overlayShape("on slide"))
	master := fake.NewShapeList(overlayShape("on master"))
	layout := fake.NewShapeList(overlayShape("on layout"), plainShape("placeholder"))

	pres := presentationWith(slide)
	pres.DesignList = []*fake.Design{{Master: master, Layouts: []*fake.ShapeList{layout}}}

	count := Remove(pres, DefaultPolicy())

	if count != 3 {
		t.Errorf("Remove() = %d deletions, want 3 (slide + master + layout)", count)
	}
	if got := layout.Names(); !reflect.DeepEqual(got, []string{"placeholder"}) {
		t.Errorf("layout survivors = %v, want [placeholder]", got)
	}
}

func TestRemove_FaultyDesignDoesNotAbort(t *testing.T) {
	errCOM := errors.New("design unavailable")

	slide := fake.NewShapeList(overlayShape("on slide"))
	pres := presentationWith(slide)
	pres.DesignList = []*fake.Design{
		{MasterErr: errCOM, LayoutsErr: errCOM},
		{Master: fake.NewShapeList(overlayShape("on master"))},
	}

	if count := Remove(pres, DefaultPolicy()); count != 2 {
		t.Errorf("Remove() = %d deletions, want 2", count)
	}
}

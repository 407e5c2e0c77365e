// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package automation defines the surface deckport consumes from the
// desktop presentation application. The real implementation drives the
// application over COM (see the powerpoint subpackage); tests use the
// fake subpackage. Deckport owns sequencing and sanitization; rendering
// and encoding belong to the application behind these interfaces.
package automation

import "fmt"

// Application is a connected automation instance. Deckport acquires one
// fresh instance per batch and never shares it.
type Application interface {
	// Open opens the presentation at path and returns its handle. The
	// handle is valid until Close.
	Open(path string, opts OpenOptions) (Presentation, error)

	// Pump services the application's pending window messages once. An
	// out-of-process automation server only advances long-running work
	// while its caller's queue drains, so every wait loop calls Pump
	// between checks.
	Pump()

	// Quit shuts the application instance down.
	Quit() error
}

// OpenOptions mirror the application's document-open parameters.
type OpenOptions struct {
	ReadOnly   bool
	Untitled   bool
	WithWindow bool
}

// Presentation is an opened document. It is exclusively owned by one
// export at a time; callers must Close it before opening the next file.
type Presentation interface {
	// SlideSize returns the slide canvas dimensions in slide units.
	SlideSize() (width, height float64)

	// Slides returns the slide shape containers in document order.
	Slides() ([]Shapes, error)

	// Designs returns the presentation's design variants, each holding a
	// slide master and its custom layouts.
	Designs() ([]Design, error)

	// CreateVideo starts an asynchronous video render targeting outPath.
	// The output path is fixed at job creation and never changes.
	CreateVideo(outPath string, opts VideoOptions) (VideoJob, error)

	// ExportFixedFormat renders the document to a paginated, layout-frozen
	// file at outPath.
	ExportFixedFormat(outPath string, format FixedFormatType, opts FixedFormatOptions) error

	// SaveAs writes the document to outPath in the given format. Used as
	// the fallback export path when ExportFixedFormat fails.
	SaveAs(outPath string, format SaveFormat) error

	// MarkSaved flags the document as having no unsaved changes, which
	// suppresses the application's close-time confirmation prompt.
	MarkSaved()

	// Close releases the document handle.
	Close() error
}

// VideoOptions mirror the application's video render parameters.
type VideoOptions struct {
	UseRecordedTimings  bool
	DefaultSlideSeconds int
	VerticalResolution  int
	FramesPerSecond     int
	Quality             int
}

// FixedFormatOptions mirror the application's fixed-format export
// parameters.
type FixedFormatOptions struct {
	Intent            ExportIntent
	FrameSlides       bool
	PrintHiddenSlides bool
}

// VideoJob is an in-flight asynchronous render. Status may have side
// effects: the COM implementation pumps the application's message queue
// on every call, which the application requires to advance its own state
// machine.
type VideoJob interface {
	Status() (VideoStatus, error)
}

// Design is one design variant: a slide master plus its custom layouts.
type Design interface {
	SlideMaster() (Shapes, error)
	CustomLayouts() ([]Shapes, error)
}

// Shapes is an ordered container of shapes belonging to a slide, a slide
// master, a custom layout, or a group. Deleting a shape shifts the
// indices of every later shape down by one, so mutating passes must walk
// the container last to first.
type Shapes interface {
	// Count returns the current number of shapes.
	Count() int

	// At returns the shape at index i (0-based).
	At(i int) (Shape, error)
}

// Shape is a read-mostly view over one visual element. Accessors return
// an error when the underlying property cannot be read for this shape;
// callers degrade per sub-check rather than aborting. The Probe methods
// report capability presence directly: an unsupported probe is absent,
// never an error.
type Shape interface {
	// Bounds returns the shape's geometry in slide-relative units.
	Bounds() (Rect, error)

	// Type returns the shape's declared type.
	Type() (ShapeType, error)

	// Name returns the shape's author-visible name.
	Name() (string, error)

	// AltText returns the shape's alternative text.
	AltText() (string, error)

	// ProbeMediaFormat reports whether the media-format capability
	// responds for this shape. It responds only on media shapes, so a
	// successful probe signals media-ness by itself.
	ProbeMediaFormat() bool

	// ProbeCameo reports whether the cameo capability responds. Newer
	// application versions expose it on live-camera shapes only.
	ProbeCameo() bool

	// GroupItems returns the child container when the shape is a group.
	GroupItems() (Shapes, error)

	// Delete removes the shape from its container.
	Delete() error
}

// Rect is a shape's bounding box in slide-relative units.
type Rect struct {
	Left, Top, Width, Height float64
}

// ShapeType enumerates the shape kinds the pipelines care about.
type ShapeType int

const (
	ShapeOther ShapeType = iota
	ShapeMedia
	ShapeGroup
	ShapePicture
)

// VideoStatus is the application's render state. Transitions are ordered
// and never skip backward: None → InProgress → Queued → Done, with
// Failed reachable from InProgress or Queued.
type VideoStatus int

const (
	StatusNone       VideoStatus = 0
	StatusInProgress VideoStatus = 1
	StatusQueued     VideoStatus = 2
	StatusDone       VideoStatus = 3
	StatusFailed     VideoStatus = 4
)

// String returns the status name used in progress output.
func (s VideoStatus) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusInProgress:
		return "in-progress"
	case StatusQueued:
		return "queued"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// FixedFormatType selects the fixed-format target.
type FixedFormatType int

// FixedFormatPDF is the application's PDF fixed-format type.
const FixedFormatPDF FixedFormatType = 2

// ExportIntent selects the fixed-format rendering intent.
type ExportIntent int

const (
	IntentScreen ExportIntent = 1
	IntentPrint  ExportIntent = 2
)

// SaveFormat selects the SaveAs target format.
type SaveFormat int

// SavePDF is the application's save-as-PDF format.
const SavePDF SaveFormat = 32

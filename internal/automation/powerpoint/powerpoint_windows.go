// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build windows

// Package powerpoint drives a real PowerPoint instance over COM,
// implementing the automation surface deckport consumes. A fresh
// out-of-process instance is created per connection; an existing,
// possibly wedged instance is never reused.
package powerpoint

import (
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/pdiddy/deckport/internal/automation"
)

const (
	msoTrue  = -1
	msoFalse = 0

	// msoAutomationSecurityForceDisable suppresses macro prompts when
	// opening .ppsm files.
	msoAutomationSecurityForceDisable = 3

	msoShapeTypeGroup   = 6
	msoShapeTypePicture = 13
	msoShapeTypeMedia   = 16

	ppPrintHandoutVerticalFirst = 1
	ppPrintOutputSlides         = 1
)

// Connect starts a new PowerPoint automation instance. The window is
// made visible (some export paths stall headless) but alerts and macro
// prompts are disabled so the batch never blocks on a dialog.
func Connect() (automation.Application, error) {
	// CoInitialize puts the calling OS thread in a single-threaded
	// apartment. Every COM call and every message pump must stay on that
	// thread, so it is pinned for the whole session; Quit unpins it.
	runtime.LockOSThread()

	if err := ole.CoInitialize(0); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("initializing COM: %w", err)
	}

	unknown, err := oleutil.CreateObject("PowerPoint.Application")
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("creating PowerPoint instance: %w", err)
	}
	disp, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		unknown.Release()
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("querying PowerPoint dispatch interface: %w", err)
	}

	oleutil.PutProperty(disp, "Visible", msoTrue)
	oleutil.PutProperty(disp, "DisplayAlerts", 0)
	// Older versions lack this property; opening still works, with prompts.
	_, _ = oleutil.PutProperty(disp, "AutomationSecurity", msoAutomationSecurityForceDisable)

	return &comApplication{disp: disp}, nil
}

type comApplication struct {
	disp *ole.IDispatch
}

func (a *comApplication) Open(path string, opts automation.OpenOptions) (automation.Presentation, error) {
	col, err := getDispatch(a.disp, "Presentations")
	if err != nil {
		return nil, fmt.Errorf("reading Presentations collection: %w", err)
	}
	defer col.Release()

	v, err := oleutil.CallMethod(col, "Open", path, msoBool(opts.ReadOnly), msoBool(opts.Untitled), msoBool(opts.WithWindow))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &comPresentation{disp: v.ToIDispatch()}, nil
}

// Pump drains the pending window messages of the apartment thread.
// PowerPoint only advances renders and flushes exports while its
// automation client services the queue.
func (a *comApplication) Pump() {
	pumpWaitingMessages()
}

func (a *comApplication) Quit() error {
	_, err := oleutil.CallMethod(a.disp, "Quit")
	a.disp.Release()
	ole.CoUninitialize()
	runtime.UnlockOSThread()
	if err != nil {
		return fmt.Errorf("quitting PowerPoint: %w", err)
	}
	return nil
}

type comPresentation struct {
	disp *ole.IDispatch
}

func (p *comPresentation) SlideSize() (float64, float64) {
	setup, err := getDispatch(p.disp, "PageSetup")
	if err != nil {
		return 0, 0
	}
	defer setup.Release()

	w, werr := getFloat(setup, "SlideWidth")
	h, herr := getFloat(setup, "SlideHeight")
	if werr != nil || herr != nil {
		return 0, 0
	}
	return w, h
}

func (p *comPresentation) Slides() ([]automation.Shapes, error) {
	slides, err := getDispatch(p.disp, "Slides")
	if err != nil {
		return nil, fmt.Errorf("reading Slides collection: %w", err)
	}
	defer slides.Release()

	count, err := getInt(slides, "Count")
	if err != nil {
		return nil, fmt.Errorf("reading slide count: %w", err)
	}

	out := make([]automation.Shapes, 0, count)
	for i := 1; i <= count; i++ {
		v, err := oleutil.CallMethod(slides, "Item", i)
		if err != nil {
			return nil, fmt.Errorf("reading slide %d: %w", i, err)
		}
		slide := v.ToIDispatch()
		shapes, err := getDispatch(slide, "Shapes")
		slide.Release()
		if err != nil {
			return nil, fmt.Errorf("reading shapes of slide %d: %w", i, err)
		}
		out = append(out, &comShapes{disp: shapes})
	}
	return out, nil
}

func (p *comPresentation) Designs() ([]automation.Design, error) {
	designs, err := getDispatch(p.disp, "Designs")
	if err != nil {
		return nil, fmt.Errorf("reading Designs collection: %w", err)
	}
	defer designs.Release()

	count, err := getInt(designs, "Count")
	if err != nil {
		return nil, fmt.Errorf("reading design count: %w", err)
	}

	out := make([]automation.Design, 0, count)
	for i := 1; i <= count; i++ {
		v, err := oleutil.CallMethod(designs, "Item", i)
		if err != nil {
			return nil, fmt.Errorf("reading design %d: %w", i, err)
		}
		out = append(out, &comDesign{disp: v.ToIDispatch()})
	}
	return out, nil
}

func (p *comPresentation) CreateVideo(outPath string, opts automation.VideoOptions) (automation.VideoJob, error) {
	_, err := oleutil.CallMethod(p.disp, "CreateVideo",
		outPath,
		msoBool(opts.UseRecordedTimings),
		opts.DefaultSlideSeconds,
		opts.VerticalResolution,
		opts.FramesPerSecond,
		opts.Quality,
	)
	if err != nil {
		return nil, fmt.Errorf("starting CreateVideo for %s: %w", outPath, err)
	}
	return &comVideoJob{pres: p.disp}, nil
}

func (p *comPresentation) ExportFixedFormat(outPath string, format automation.FixedFormatType, opts automation.FixedFormatOptions) error {
	_, err := oleutil.CallMethod(p.disp, "ExportAsFixedFormat",
		outPath,
		int(format),
		int(opts.Intent),
		msoBool(opts.FrameSlides),
		ppPrintHandoutVerticalFirst,
		ppPrintOutputSlides,
		msoBool(opts.PrintHiddenSlides),
	)
	if err != nil {
		return fmt.Errorf("fixed-format export to %s: %w", outPath, err)
	}
	return nil
}

func (p *comPresentation) SaveAs(outPath string, format automation.SaveFormat) error {
	if _, err := oleutil.CallMethod(p.disp, "SaveAs", outPath, int(format)); err != nil {
		return fmt.Errorf("save-as to %s: %w", outPath, err)
	}
	return nil
}

func (p *comPresentation) MarkSaved() {
	_, _ = oleutil.PutProperty(p.disp, "Saved", msoTrue)
}

func (p *comPresentation) Close() error {
	_, err := oleutil.CallMethod(p.disp, "Close")
	p.disp.Release()
	if err != nil {
		return fmt.Errorf("closing presentation: %w", err)
	}
	return nil
}

// comVideoJob polls CreateVideoStatus on its presentation. PowerPoint
// only advances the render while its message queue is serviced, so every
// Status call pumps waiting messages first.
type comVideoJob struct {
	pres *ole.IDispatch
}

func (j *comVideoJob) Status() (automation.VideoStatus, error) {
	pumpWaitingMessages()

	n, err := getInt(j.pres, "CreateVideoStatus")
	if err != nil {
		return automation.StatusNone, fmt.Errorf("reading CreateVideoStatus: %w", err)
	}
	return automation.VideoStatus(n), nil
}

type comDesign struct {
	disp *ole.IDispatch
}

func (d *comDesign) SlideMaster() (automation.Shapes, error) {
	master, err := getDispatch(d.disp, "SlideMaster")
	if err != nil {
		return nil, fmt.Errorf("reading SlideMaster: %w", err)
	}
	defer master.Release()

	shapes, err := getDispatch(master, "Shapes")
	if err != nil {
		return nil, fmt.Errorf("reading master shapes: %w", err)
	}
	return &comShapes{disp: shapes}, nil
}

func (d *comDesign) CustomLayouts() ([]automation.Shapes, error) {
	master, err := getDispatch(d.disp, "SlideMaster")
	if err != nil {
		return nil, fmt.Errorf("reading SlideMaster: %w", err)
	}
	defer master.Release()

	layouts, err := getDispatch(master, "CustomLayouts")
	if err != nil {
		return nil, fmt.Errorf("reading CustomLayouts: %w", err)
	}
	defer layouts.Release()

	count, err := getInt(layouts, "Count")
	if err != nil {
		return nil, fmt.Errorf("reading layout count: %w", err)
	}

	out := make([]automation.Shapes, 0, count)
	for i := 1; i <= count; i++ {
		v, err := oleutil.CallMethod(layouts, "Item", i)
		if err != nil {
			return nil, fmt.Errorf("reading layout %d: %w", i, err)
		}
		layout := v.ToIDispatch()
		shapes, err := getDispatch(layout, "Shapes")
		layout.Release()
		if err != nil {
			return nil, fmt.Errorf("reading layout %d shapes: %w", i, err)
		}
		out = append(out, &comShapes{disp: shapes})
	}
	return out, nil
}

// comShapes adapts a COM Shapes or GroupItems collection. COM indices
// are 1-based; the surface exposes 0-based indices.
type comShapes struct {
	disp *ole.IDispatch
}

func (s *comShapes) Count() int {
	n, err := getInt(s.disp, "Count")
	if err != nil {
		return 0
	}
	return n
}

func (s *comShapes) At(i int) (automation.Shape, error) {
	v, err := oleutil.CallMethod(s.disp, "Item", i+1)
	if err != nil {
		return nil, fmt.Errorf("reading shape %d: %w", i, err)
	}
	return &comShape{disp: v.ToIDispatch()}, nil
}

type comShape struct {
	disp *ole.IDispatch
}

func (s *comShape) Bounds() (automation.Rect, error) {
	var r automation.Rect
	var err error
	if r.Left, err = getFloat(s.disp, "Left"); err != nil {
		return automation.Rect{}, err
	}
	if r.Top, err = getFloat(s.disp, "Top"); err != nil {
		return automation.Rect{}, err
	}
	if r.Width, err = getFloat(s.disp, "Width"); err != nil {
		return automation.Rect{}, err
	}
	if r.Height, err = getFloat(s.disp, "Height"); err != nil {
		return automation.Rect{}, err
	}
	return r, nil
}

func (s *comShape) Type() (automation.ShapeType, error) {
	n, err := getInt(s.disp, "Type")
	if err != nil {
		return automation.ShapeOther, err
	}
	switch n {
	case msoShapeTypeMedia:
		return automation.ShapeMedia, nil
	case msoShapeTypeGroup:
		return automation.ShapeGroup, nil
	case msoShapeTypePicture:
		return automation.ShapePicture, nil
	}
	return automation.ShapeOther, nil
}

func (s *comShape) Name() (string, error) {
	return getString(s.disp, "Name")
}

func (s *comShape) AltText() (string, error) {
	return getString(s.disp, "AlternativeText")
}

// ProbeMediaFormat reports whether the MediaFormat property responds.
// The property raises on non-media shapes, so a clean read is the signal.
func (s *comShape) ProbeMediaFormat() bool {
	v, err := oleutil.GetProperty(s.disp, "MediaFormat")
	if err != nil {
		return false
	}
	v.Clear()
	return true
}

// ProbeCameo reports whether the Cameo property responds. Only newer
// PowerPoint builds expose it, and only on live-camera shapes.
func (s *comShape) ProbeCameo() bool {
	v, err := oleutil.GetProperty(s.disp, "Cameo")
	if err != nil {
		return false
	}
	v.Clear()
	return true
}

func (s *comShape) GroupItems() (automation.Shapes, error) {
	items, err := getDispatch(s.disp, "GroupItems")
	if err != nil {
		return nil, fmt.Errorf("reading GroupItems: %w", err)
	}
	return &comShapes{disp: items}, nil
}

func (s *comShape) Delete() error {
	if _, err := oleutil.CallMethod(s.disp, "Delete"); err != nil {
		return fmt.Errorf("deleting shape: %w", err)
	}
	return nil
}

func msoBool(b bool) int {
	if b {
		return msoTrue
	}
	return msoFalse
}

func getDispatch(d *ole.IDispatch, name string) (*ole.IDispatch, error) {
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return nil, err
	}
	disp := v.ToIDispatch()
	if disp == nil {
		v.Clear()
		return nil, fmt.Errorf("property %s is not a dispatch object", name)
	}
	return disp, nil
}

func getInt(d *ole.IDispatch, name string) (int, error) {
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return 0, err
	}
	defer v.Clear()

	switch n := v.Value().(type) {
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float32:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("property %s is not numeric", name)
}

func getFloat(d *ole.IDispatch, name string) (float64, error) {
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return 0, err
	}
	defer v.Clear()

	switch n := v.Value().(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("property %s is not numeric", name)
}

func getString(d *ole.IDispatch, name string) (string, error) {
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return "", err
	}
	defer v.Clear()
	return v.ToString(), nil
}

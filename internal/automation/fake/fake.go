// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fake provides a deterministic in-memory implementation of the
// automation surface. Containers model the application's deletion
// semantics, where removing a shape shifts every later index down, so
// traversal-order bugs surface in tests exactly as they would against
// the real application.
package fake

import (
	"errors"
	"fmt"

	"github.com/pdiddy/deckport/internal/automation"
)

// Application is a scripted automation instance.
type Application struct {
	// Presentations maps input path to the handle Open returns.
	Presentations map[string]*Presentation

	// OpenErr forces Open to fail for specific paths.
	OpenErr map[string]error

	// Opened records Open calls in order.
	Opened []string

	// PumpCalls counts Pump invocations.
	PumpCalls int

	// QuitCalls counts Quit invocations.
	QuitCalls int

	// QuitErr is returned from Quit when set.
	QuitErr error
}

func (a *Application) Open(path string, _ automation.OpenOptions) (automation.Presentation, error) {
	a.Opened = append(a.Opened, path)
	if err := a.OpenErr[path]; err != nil {
		return nil, err
	}
	p, ok := a.Presentations[path]
	if !ok {
		return nil, fmt.Errorf("no such presentation: %s", path)
	}
	return p, nil
}

func (a *Application) Pump() { a.PumpCalls++ }

func (a *Application) Quit() error {
	a.QuitCalls++
	return a.QuitErr
}

// Presentation is a scripted document handle.
type Presentation struct {
	Width, Height float64

	SlideShapes []*ShapeList
	DesignList  []*Design

	// Job is returned by CreateVideo; VideoOut records the requested path.
	Job            *Job
	VideoOut       string
	CreateVideoErr error

	// FixedFormatErr forces the primary PDF export path to fail.
	FixedFormatErr error
	FixedFormatTo  []string

	// SaveAsErr forces the fallback export to fail.
	SaveAsErr error
	SaveAsTo  []string

	Saved      bool
	CloseCalls int
}

func (p *Presentation) SlideSize() (float64, float64) { return p.Width, p.Height }

func (p *Presentation) Slides() ([]automation.Shapes, error) {
	out := make([]automation.Shapes, len(p.SlideShapes))
	for i, s := range p.SlideShapes {
		out[i] = s
	}
	return out, nil
}

func (p *Presentation) Designs() ([]automation.Design, error) {
	out := make([]automation.Design, len(p.DesignList))
	for i, d := range p.DesignList {
		out[i] = d
	}
	return out, nil
}

func (p *Presentation) CreateVideo(outPath string, _ automation.VideoOptions) (automation.VideoJob, error) {
	if p.CreateVideoErr != nil {
		return nil, p.CreateVideoErr
	}
	p.VideoOut = outPath
	if p.Job == nil {
		p.Job = &Job{Statuses: []automation.VideoStatus{automation.StatusDone}}
	}
	return p.Job, nil
}

func (p *Presentation) ExportFixedFormat(outPath string, _ automation.FixedFormatType, _ automation.FixedFormatOptions) error {
	if p.FixedFormatErr != nil {
		return p.FixedFormatErr
	}
	p.FixedFormatTo = append(p.FixedFormatTo, outPath)
	return nil
}

func (p *Presentation) SaveAs(outPath string, _ automation.SaveFormat) error {
	if p.SaveAsErr != nil {
		return p.SaveAsErr
	}
	p.SaveAsTo = append(p.SaveAsTo, outPath)
	return nil
}

func (p *Presentation) MarkSaved() { p.Saved = true }

func (p *Presentation) Close() error {
	p.CloseCalls++
	return nil
}

// Job replays a scripted status sequence; the final status repeats once
// the script is exhausted.
type Job struct {
	Statuses  []automation.VideoStatus
	StatusErr error

	// Polls counts Status calls.
	Polls int
}

func (j *Job) Status() (automation.VideoStatus, error) {
	if j.StatusErr != nil {
		return automation.StatusNone, j.StatusErr
	}
	i := j.Polls
	if i >= len(j.Statuses) {
		i = len(j.Statuses) - 1
	}
	j.Polls++
	if i < 0 {
		return automation.StatusNone, errors.New("no scripted statuses")
	}
	return j.Statuses[i], nil
}

// Design pairs a master container with its custom layouts.
type Design struct {
	Master  *ShapeList
	Layouts []*ShapeList

	MasterErr  error
	LayoutsErr error
}

func (d *Design) SlideMaster() (automation.Shapes, error) {
	if d.MasterErr != nil {
		return nil, d.MasterErr
	}
	return d.Master, nil
}

func (d *Design) CustomLayouts() ([]automation.Shapes, error) {
	if d.LayoutsErr != nil {
		return nil, d.LayoutsErr
	}
	out := make([]automation.Shapes, len(d.Layouts))
	for i, l := range d.Layouts {
		out[i] = l
	}
	return out, nil
}

// ShapeList is an ordered shape container with live deletion semantics.
type ShapeList struct {
	Items []*Shape
}

// NewShapeList builds a container and wires each shape's back-pointer so
// Delete mutates the right collection.
func NewShapeList(shapes ...*Shape) *ShapeList {
	l := &ShapeList{}
	for _, s := range shapes {
		l.Append(s)
	}
	return l
}

// Append adds a shape at the end of the container.
func (l *ShapeList) Append(s *Shape) {
	s.owner = l
	l.Items = append(l.Items, s)
}

func (l *ShapeList) Count() int { return len(l.Items) }

func (l *ShapeList) At(i int) (automation.Shape, error) {
	if i < 0 || i >= len(l.Items) {
		return nil, fmt.Errorf("shape index %d out of range", i)
	}
	return l.Items[i], nil
}

// Names returns the current shape names in container order.
func (l *ShapeList) Names() []string {
	out := make([]string, len(l.Items))
	for i, s := range l.Items {
		out[i] = s.ShapeName
	}
	return out
}

// remove deletes s from the container, shifting later shapes down.
func (l *ShapeList) remove(s *Shape) bool {
	for i, cur := range l.Items {
		if cur == s {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Shape is a scripted shape descriptor. Err fields force the matching
// accessor to fail, modeling properties the application cannot read for
// a given shape.
type Shape struct {
	Rect      automation.Rect
	BoundsErr error

	Kind    automation.ShapeType
	TypeErr error

	ShapeName string
	NameErr   error

	Alt    string
	AltErr error

	// MediaFormat and Cameo make the corresponding capability probes respond.
	MediaFormat bool
	Cameo       bool

	// Children holds group members when Kind is ShapeGroup.
	Children *ShapeList
	GroupErr error

	DeleteErr error
	Deleted   bool

	owner *ShapeList
}

func (s *Shape) Bounds() (automation.Rect, error) {
	if s.BoundsErr != nil {
		return automation.Rect{}, s.BoundsErr
	}
	return s.Rect, nil
}

func (s *Shape) Type() (automation.ShapeType, error) {
	if s.TypeErr != nil {
		return automation.ShapeOther, s.TypeErr
	}
	return s.Kind, nil
}

func (s *Shape) Name() (string, error) {
	if s.NameErr != nil {
		return "", s.NameErr
	}
	return s.ShapeName, nil
}

func (s *Shape) AltText() (string, error) {
	if s.AltErr != nil {
		return "", s.AltErr
	}
	return s.Alt, nil
}

func (s *Shape) ProbeMediaFormat() bool { return s.MediaFormat }
func (s *Shape) ProbeCameo() bool       { return s.Cameo }

func (s *Shape) GroupItems() (automation.Shapes, error) {
	if s.GroupErr != nil {
		return nil, s.GroupErr
	}
	if s.Children == nil {
		return nil, errors.New("not a group")
	}
	return s.Children, nil
}

func (s *Shape) Delete() error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	if s.owner == nil || !s.owner.remove(s) {
		return errors.New("shape not attached to a container")
	}
	s.Deleted = true
	return nil
}

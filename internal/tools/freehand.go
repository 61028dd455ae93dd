package tools

import (
	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/item"
	"github.com/example/doodle/internal/style"
)

// StrokeState is the state of the freehand and eraser tools.
type StrokeState int

const (
	StrokeIdle StrokeState = iota
	StrokeDrawing
)

// Freehand draws a stroke that follows the pointer. Segments are painted
// straight onto the real surface while dragging and the whole path is
// committed on release. The eraser is a freehand stroke composited with
// destination-out.
type Freehand struct {
	Base
	h     Host
	erase bool
	state StrokeState
	path  *canvas.Path
	rect  geom.Rect
	last  geom.Point
}

// NewFreehand returns the freehand tool.
func NewFreehand(h Host) Tool { return &Freehand{h: h} }

// NewEraser returns the eraser tool.
func NewEraser(h Host) Tool {
	h.Real().SetComposite(style.DestinationOut)
	return &Freehand{h: h, erase: true}
}

// State reports the current state.
func (f *Freehand) State() StrokeState { return f.state }

func (f *Freehand) style() style.Snapshot {
	st := f.h.Style()
	if f.erase {
		st.Composite = style.DestinationOut
	}
	return st
}

func (f *Freehand) PointerDown(p geom.Point, _ Event) {
	if f.state == StrokeDrawing {
		f.finish(p)
	}
	f.state = StrokeDrawing
	f.path = canvas.NewPath()
	f.path.MoveTo(p.X, p.Y)
	f.rect = geom.RectAt(p)
	f.last = p
}

func (f *Freehand) PointerDrag(p geom.Point, _ Event) {
	if f.state != StrokeDrawing || p == f.last {
		return
	}
	f.path.LineTo(p.X, p.Y)
	f.rect.UpdatePoint(p)

	seg := canvas.NewPath()
	seg.MoveTo(f.last.X, f.last.Y)
	seg.LineTo(p.X, p.Y)
	r := f.h.Real()
	r.Save()
	r.SetStyle(f.style())
	r.SetDash()
	r.Stroke(seg)
	r.Restore()
	f.last = p
}

func (f *Freehand) PointerUp(p geom.Point, _ Event) {
	if f.state == StrokeDrawing {
		f.finish(p)
	}
}

// PointerLeave ends the stroke; the release may never reach the canvas.
func (f *Freehand) PointerLeave(p geom.Point, _ Event) {
	if f.state == StrokeDrawing {
		f.finish(p)
	}
}

func (f *Freehand) Destroy() {
	if f.state == StrokeDrawing {
		f.finish(f.last)
	}
	if f.erase {
		f.h.Real().SetComposite(style.SourceOver)
	}
}

func (f *Freehand) finish(p geom.Point) {
	f.PointerDrag(p, Event{})
	f.state = StrokeIdle
	path, rect := f.path, f.rect
	f.path = nil
	if rect.Empty() {
		return
	}
	f.h.Commit(item.NewPath(path, rect, f.style(), item.Stroke))
}

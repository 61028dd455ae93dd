package tools

import (
	"math"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/item"
)

// DragState is the state of the tools shaped by a single drag.
type DragState int

const (
	DragIdle DragState = iota
	Dragging
)

// shapeFunc builds the path and bounding rect spanned by a drag from a to b.
type shapeFunc func(a, b geom.Point) (*canvas.Path, geom.Rect)

// Shape is a drag to size tool: the anchor is where the button went down,
// the shape follows the pointer on the draft surface and is committed on
// release.
type Shape struct {
	Base
	h      Host
	build  shapeFunc
	mode   item.Mode
	state  DragState
	anchor geom.Point
}

// NewLine returns the straight line tool.
func NewLine(h Host) Tool { return &Shape{h: h, build: line, mode: item.Stroke} }

// NewRect returns the rectangle tool.
func NewRect(h Host) Tool { return &Shape{h: h, build: rect, mode: item.FillStroke} }

// NewCircle returns the circle tool. The anchor is the centre.
func NewCircle(h Host) Tool { return &Shape{h: h, build: circle, mode: item.FillStroke} }

// NewEllipse returns the ellipse tool. The anchor is the centre.
func NewEllipse(h Host) Tool { return &Shape{h: h, build: ellipse, mode: item.FillStroke} }

// State reports the current state.
func (s *Shape) State() DragState { return s.state }

func (s *Shape) PointerDown(p geom.Point, _ Event) {
	s.state = Dragging
	s.anchor = p
}

func (s *Shape) PointerDrag(p geom.Point, _ Event) {
	if s.state != Dragging {
		return
	}
	path, _ := s.build(s.anchor, p)
	preview(s.h, path, s.mode)
}

func (s *Shape) PointerUp(p geom.Point, _ Event) {
	if s.state != Dragging {
		return
	}
	s.state = DragIdle
	s.h.Draft().ClearAll()
	path, r := s.build(s.anchor, p)
	if r.Empty() {
		return
	}
	commit(s.h, item.NewPath(path, r, s.h.Style(), s.mode))
}

func (s *Shape) Destroy() {
	s.state = DragIdle
	s.h.Draft().ClearAll()
}

func line(a, b geom.Point) (*canvas.Path, geom.Rect) {
	p := canvas.NewPath()
	p.MoveTo(a.X, a.Y)
	p.LineTo(b.X, b.Y)
	return p, geom.RectFromPoints(a, b)
}

func rect(a, b geom.Point) (*canvas.Path, geom.Rect) {
	r := geom.RectFromPoints(a, b)
	p := canvas.NewPath()
	p.Rect(r.X, r.Y, r.W, r.H)
	return p, r
}

func circle(a, b geom.Point) (*canvas.Path, geom.Rect) {
	radius := a.Dist(b)
	p := canvas.NewPath()
	p.Circle(a.X, a.Y, radius)
	return p, geom.Rect{X: a.X - radius, Y: a.Y - radius, W: 2 * radius, H: 2 * radius}
}

func ellipse(a, b geom.Point) (*canvas.Path, geom.Rect) {
	rx, ry := math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)
	p := canvas.NewPath()
	p.Ellipse(a.X, a.Y, rx, ry)
	return p, geom.Rect{X: a.X - rx, Y: a.Y - ry, W: 2 * rx, H: 2 * ry}
}

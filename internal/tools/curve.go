package tools

import (
	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/item"
)

// CurveState is the state of the quadratic and cubic curve tools.
type CurveState int

const (
	// AwaitingAnchor waits for the first press.
	AwaitingAnchor CurveState = iota
	// Anchoring holds the start point while the button is down.
	Anchoring
	// AwaitingEnd waits for a click placing the end point, after the
	// anchor was placed with a click rather than a drag.
	AwaitingEnd
	// AwaitingControl1 waits for the first control point.
	AwaitingControl1
	// AwaitingControl2 waits for the second control point of a cubic.
	AwaitingControl2
)

func (s CurveState) String() string {
	switch s {
	case Anchoring:
		return "anchoring"
	case AwaitingEnd:
		return "awaiting end"
	case AwaitingControl1:
		return "awaiting control 1"
	case AwaitingControl2:
		return "awaiting control 2"
	default:
		return "awaiting anchor"
	}
}

// Curve places a bezier curve in steps. The start and end points are set
// by a drag, or by two clicks; later clicks place the control points and
// the last one commits.
type Curve struct {
	Base
	h     Host
	cubic bool
	state CurveState
	start geom.Point
	end   geom.Point
	c1    geom.Point
}

// NewQuadratic returns the quadratic curve tool.
func NewQuadratic(h Host) Tool { return &Curve{h: h} }

// NewCubic returns the cubic bezier tool.
func NewCubic(h Host) Tool { return &Curve{h: h, cubic: true} }

// State reports the current state.
func (c *Curve) State() CurveState { return c.state }

func (c *Curve) PointerDown(p geom.Point, _ Event) {
	switch c.state {
	case AwaitingAnchor:
		c.start = p
		c.state = Anchoring
	case AwaitingEnd:
		c.end = p
		c.state = AwaitingControl1
		c.preview(p)
	case AwaitingControl1:
		if !c.cubic {
			c.finish(p, p)
			return
		}
		c.c1 = p
		c.state = AwaitingControl2
		c.preview(p)
	case AwaitingControl2:
		c.finish(c.c1, p)
	}
}

func (c *Curve) PointerUp(p geom.Point, _ Event) {
	if c.state != Anchoring {
		return
	}
	if p == c.start {
		c.state = AwaitingEnd
		return
	}
	c.end = p
	c.state = AwaitingControl1
	c.preview(p)
}

func (c *Curve) PointerMove(p geom.Point, _ Event) {
	if c.state != AwaitingAnchor {
		c.preview(p)
	}
}

func (c *Curve) Destroy() {
	c.state = AwaitingAnchor
	c.h.Draft().ClearAll()
}

// path returns the curve as it would look with the pointer at p.
func (c *Curve) path(p geom.Point) *canvas.Path {
	path := canvas.NewPath()
	path.MoveTo(c.start.X, c.start.Y)
	switch c.state {
	case Anchoring, AwaitingEnd:
		path.LineTo(p.X, p.Y)
	case AwaitingControl1:
		if c.cubic {
			path.CubicTo(p.X, p.Y, c.end.X, c.end.Y, c.end.X, c.end.Y)
		} else {
			path.QuadTo(p.X, p.Y, c.end.X, c.end.Y)
		}
	case AwaitingControl2:
		path.CubicTo(c.c1.X, c.c1.Y, p.X, p.Y, c.end.X, c.end.Y)
	}
	return path
}

func (c *Curve) preview(p geom.Point) {
	preview(c.h, c.path(p), item.Stroke)
}

func (c *Curve) finish(c1, c2 geom.Point) {
	path := canvas.NewPath()
	path.MoveTo(c.start.X, c.start.Y)
	if c.cubic {
		path.CubicTo(c1.X, c1.Y, c2.X, c2.Y, c.end.X, c.end.Y)
	} else {
		path.QuadTo(c1.X, c1.Y, c.end.X, c.end.Y)
	}
	c.state = AwaitingAnchor
	c.h.Draft().ClearAll()
	r := path.Bounds()
	if r.Empty() {
		return
	}
	commit(c.h, item.NewPath(path, r, c.h.Style(), item.Stroke))
}

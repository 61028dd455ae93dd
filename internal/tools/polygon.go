package tools

import (
	"math"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/item"
	"github.com/example/doodle/internal/style"
)

// Polygon drags out a regular polygon centred on the anchor, with one
// vertex under the pointer.
type Polygon struct {
	Base
	h      Host
	state  DragState
	anchor geom.Point
}

// NewPolygon returns the regular polygon tool.
func NewPolygon(h Host) Tool { return &Polygon{h: h} }

// State reports the current state.
func (t *Polygon) State() DragState { return t.state }

func (t *Polygon) PointerDown(p geom.Point, _ Event) {
	t.state = Dragging
	t.anchor = p
}

func (t *Polygon) PointerDrag(p geom.Point, _ Event) {
	if t.state != Dragging {
		return
	}
	pts := RegularVertices(t.anchor, p, t.h.PolygonSides())
	if pts == nil {
		t.h.Draft().ClearAll()
		return
	}
	path := canvas.NewPath()
	path.Polygon(pts, true)
	preview(t.h, path, item.FillStroke)
}

func (t *Polygon) PointerUp(p geom.Point, _ Event) {
	if t.state != Dragging {
		return
	}
	t.state = DragIdle
	t.h.Draft().ClearAll()
	pts := RegularVertices(t.anchor, p, t.h.PolygonSides())
	if pts == nil {
		return
	}
	path := canvas.NewPath()
	path.Polygon(pts, true)
	r := boundsOf(pts)
	if r.Empty() {
		return
	}
	commit(t.h, item.NewPath(path, r, t.h.Style(), item.FillStroke))
}

func (t *Polygon) Destroy() {
	t.state = DragIdle
	t.h.Draft().ClearAll()
}

// RegularVertices returns the n vertices of the regular polygon centred on
// o whose last vertex is p. It returns nil when p is o or n < 3.
func RegularVertices(o, p geom.Point, n int) []geom.Point {
	r := o.Dist(p)
	if r == 0 || n < 3 {
		return nil
	}
	start := math.Acos(math.Max(-1, math.Min(1, (p.X-o.X)/r)))
	if p.Y < o.Y {
		start = 2*math.Pi - start
	}
	step := 2 * math.Pi / float64(n)
	pts := make([]geom.Point, n)
	for k := 1; k <= n; k++ {
		a := float64(k)*step - start
		pts[k-1] = geom.Pt(o.X+r*math.Cos(a), o.Y-r*math.Sin(a))
	}
	return pts
}

func boundsOf(pts []geom.Point) geom.Rect {
	if len(pts) == 0 {
		return geom.Rect{}
	}
	r := geom.RectAt(pts[0])
	for _, pt := range pts[1:] {
		r.UpdatePoint(pt)
	}
	return r
}

// Irregular polygon geometry.
const (
	CloseThreshold = 16
	MarkerRadius   = 8
	MarkerWidth    = 4
)

// Irregular builds a polygon one click per vertex. A rubber band follows
// the pointer from the last vertex, and a click within CloseThreshold of
// the first vertex closes and commits the shape.
type Irregular struct {
	Base
	h       Host
	verts   []geom.Point
	pointer geom.Point
}

// NewIrregular returns the irregular polygon tool.
func NewIrregular(h Host) Tool { return &Irregular{h: h} }

// Vertices returns the placed vertices.
func (t *Irregular) Vertices() []geom.Point { return t.verts }

func (t *Irregular) PointerDown(p geom.Point, _ Event) {
	t.pointer = p
	if len(t.verts) > 0 && t.verts[0].Dist(p) < CloseThreshold {
		if len(t.verts) < 2 {
			return
		}
		t.close()
		return
	}
	t.verts = append(t.verts, p)
	t.redraw()
}

func (t *Irregular) PointerMove(p geom.Point, _ Event) {
	t.pointer = p
	if len(t.verts) > 0 {
		t.redraw()
	}
}

func (t *Irregular) Destroy() {
	t.verts = nil
	t.h.Draft().ClearAll()
}

func (t *Irregular) close() {
	verts := t.verts
	t.verts = nil
	t.h.Draft().ClearAll()
	r := boundsOf(verts)
	if r.Empty() {
		return
	}
	path := canvas.NewPath()
	path.Polygon(verts, true)
	commit(t.h, item.NewPath(path, r, t.h.Style(), item.FillStroke))
}

func (t *Irregular) redraw() {
	path := canvas.NewPath()
	path.Polygon(t.verts, false)
	path.LineTo(t.pointer.X, t.pointer.Y)
	preview(t.h, path, item.Stroke)

	st := style.Default()
	st.LineWidth = MarkerWidth
	if th := t.h.Theme(); th != nil {
		st.StrokeColor = th.MarkerStroke
		st.FillColor = th.MarkerFill
	}
	marker := canvas.NewPath()
	marker.Circle(t.verts[0].X, t.verts[0].Y, MarkerRadius)
	d := t.h.Draft()
	d.Save()
	d.SetStyle(st)
	d.Fill(marker)
	d.Stroke(marker)
	d.Restore()
}

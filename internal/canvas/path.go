package canvas

import (
	"math"

	"github.com/example/doodle/internal/geom"
)

// Op identifies a path segment kind.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	QuadTo
	CubicTo
	Close
)

// Segment is one path element. The end point is the last used entry of
// Pts: Pts[0] for MoveTo and LineTo, Pts[1] for QuadTo, Pts[2] for CubicTo.
type Segment struct {
	Op  Op
	Pts [3]geom.Point
}

// End returns the point the segment finishes on. Close has no end point of
// its own and returns the zero Point.
func (s Segment) End() geom.Point {
	switch s.Op {
	case QuadTo:
		return s.Pts[1]
	case CubicTo:
		return s.Pts[2]
	case Close:
		return geom.Point{}
	default:
		return s.Pts[0]
	}
}

// Path is an ordered list of move, line, curve and close segments. Arcs,
// circles and ellipses are stored as cubic Béziers.
type Path struct {
	segs  []Segment
	start geom.Point
	cur   geom.Point
	has   bool
}

// NewPath returns an empty path.
func NewPath() *Path { return &Path{segs: make([]Segment, 0, 16)} }

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) {
	pt := geom.Pt(x, y)
	p.segs = append(p.segs, Segment{Op: MoveTo, Pts: [3]geom.Point{pt}})
	p.start, p.cur, p.has = pt, pt, true
}

// LineTo adds a straight segment. Without a current point it behaves like
// MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.has {
		p.MoveTo(x, y)
		return
	}
	pt := geom.Pt(x, y)
	p.segs = append(p.segs, Segment{Op: LineTo, Pts: [3]geom.Point{pt}})
	p.cur = pt
}

// QuadTo adds a quadratic Bézier with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !p.has {
		p.MoveTo(cx, cy)
	}
	pt := geom.Pt(x, y)
	p.segs = append(p.segs, Segment{Op: QuadTo, Pts: [3]geom.Point{geom.Pt(cx, cy), pt}})
	p.cur = pt
}

// CubicTo adds a cubic Bézier with control points (c1x, c1y) and (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.has {
		p.MoveTo(c1x, c1y)
	}
	pt := geom.Pt(x, y)
	p.segs = append(p.segs, Segment{Op: CubicTo, Pts: [3]geom.Point{geom.Pt(c1x, c1y), geom.Pt(c2x, c2y), pt}})
	p.cur = pt
}

// Close closes the current subpath back to its first point.
func (p *Path) Close() {
	if !p.has {
		return
	}
	p.segs = append(p.segs, Segment{Op: Close})
	p.cur = p.start
}

// Rect adds a closed rectangle subpath.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498307936

// Ellipse adds a closed ellipse subpath centred on (cx, cy).
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	ox, oy := rx*kappa, ry*kappa
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Circle adds a closed circle subpath.
func (p *Path) Circle(cx, cy, r float64) { p.Ellipse(cx, cy, r, r) }

// Arc adds a clockwise circular arc from angle a0 to a1 (radians). A line
// joins the current point to the arc start, as with a canvas arc().
func (p *Path) Arc(cx, cy, r, a0, a1 float64) {
	for a1 < a0 {
		a1 += 2 * math.Pi
	}
	sx, sy := cx+r*math.Cos(a0), cy+r*math.Sin(a0)
	if p.has {
		p.LineTo(sx, sy)
	} else {
		p.MoveTo(sx, sy)
	}
	n := int(math.Ceil((a1 - a0) / (math.Pi / 2)))
	if n == 0 {
		return
	}
	step := (a1 - a0) / float64(n)
	for i := 0; i < n; i++ {
		p.arcSegment(cx, cy, r, a0+float64(i)*step, a0+float64(i+1)*step)
	}
}

func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	t := math.Tan((a2 - a1) / 2)
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*t*t) - 1) / 3
	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)
	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2
	p.CubicTo(x1-alpha*r*sin1, y1+alpha*r*cos1, x2+alpha*r*sin2, y2-alpha*r*cos2, x2, y2)
}

// Polygon adds a subpath through pts, closing it when closed is true.
func (p *Path) Polygon(pts []geom.Point, closed bool) {
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	if closed && len(pts) > 0 {
		p.Close()
	}
}

// Segments exposes the path elements. Callers must not modify them.
func (p *Path) Segments() []Segment { return p.segs }

// Len reports the number of segments.
func (p *Path) Len() int { return len(p.segs) }

// Empty reports whether the path has no drawing segments.
func (p *Path) Empty() bool {
	for _, s := range p.segs {
		if s.Op != MoveTo {
			return false
		}
	}
	return true
}

// Current returns the current point.
func (p *Path) Current() (geom.Point, bool) { return p.cur, p.has }

// Clone deep copies the path.
func (p *Path) Clone() *Path {
	c := &Path{start: p.start, cur: p.cur, has: p.has}
	c.segs = make([]Segment, len(p.segs))
	copy(c.segs, p.segs)
	return c
}

// Append adds every segment of q to p.
func (p *Path) Append(q *Path) {
	for _, s := range q.segs {
		switch s.Op {
		case MoveTo:
			p.MoveTo(s.Pts[0].X, s.Pts[0].Y)
		case LineTo:
			p.LineTo(s.Pts[0].X, s.Pts[0].Y)
		case QuadTo:
			p.QuadTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y)
		case CubicTo:
			p.CubicTo(s.Pts[0].X, s.Pts[0].Y, s.Pts[1].X, s.Pts[1].Y, s.Pts[2].X, s.Pts[2].Y)
		case Close:
			p.Close()
		}
	}
}

// Transform returns a copy of p with every point mapped through m.
func (p *Path) Transform(m geom.Matrix) *Path {
	c := p.Clone()
	for i := range c.segs {
		for j := range c.segs[i].Pts {
			c.segs[i].Pts[j] = m.Apply(c.segs[i].Pts[j])
		}
	}
	c.start = m.Apply(c.start)
	c.cur = m.Apply(c.cur)
	return c
}

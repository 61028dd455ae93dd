package canvas

import (
	"math"

	"github.com/example/doodle/internal/geom"
)

// Polyline is a flattened subpath.
type Polyline struct {
	Points []geom.Point
	Closed bool
}

// Flatten approximates every curve in p with line segments after mapping
// through m.
func (p *Path) Flatten(m geom.Matrix) []Polyline {
	var out []Polyline
	var cur *Polyline
	var last, start geom.Point
	begin := func(pt geom.Point) {
		out = append(out, Polyline{Points: []geom.Point{pt}})
		cur = &out[len(out)-1]
		start = pt
		last = pt
	}
	for _, s := range p.segs {
		switch s.Op {
		case MoveTo:
			begin(m.Apply(s.Pts[0]))
		case LineTo:
			pt := m.Apply(s.Pts[0])
			if cur == nil {
				begin(last)
			}
			cur.Points = append(cur.Points, pt)
			last = pt
		case QuadTo:
			c, e := m.Apply(s.Pts[0]), m.Apply(s.Pts[1])
			if cur == nil {
				begin(last)
			}
			n := steps(last.Dist(c) + c.Dist(e))
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				cur.Points = append(cur.Points, geom.Pt(
					u*u*last.X+2*u*t*c.X+t*t*e.X,
					u*u*last.Y+2*u*t*c.Y+t*t*e.Y,
				))
			}
			last = e
		case CubicTo:
			c1, c2, e := m.Apply(s.Pts[0]), m.Apply(s.Pts[1]), m.Apply(s.Pts[2])
			if cur == nil {
				begin(last)
			}
			n := steps(last.Dist(c1) + c1.Dist(c2) + c2.Dist(e))
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				cur.Points = append(cur.Points, geom.Pt(
					u*u*u*last.X+3*u*u*t*c1.X+3*u*t*t*c2.X+t*t*t*e.X,
					u*u*u*last.Y+3*u*u*t*c1.Y+3*u*t*t*c2.Y+t*t*t*e.Y,
				))
			}
			last = e
		case Close:
			if cur != nil {
				cur.Closed = true
				cur = nil
			}
			last = start
		}
	}
	return out
}

func steps(length float64) int {
	n := int(math.Ceil(length / 3))
	if n < 4 {
		return 4
	}
	if n > 128 {
		return 128
	}
	return n
}

// Bounds returns the box around the flattened path.
func (p *Path) Bounds() geom.Rect {
	var r geom.Rect
	first := true
	for _, pl := range p.Flatten(geom.Identity()) {
		for _, pt := range pl.Points {
			if first {
				r = geom.RectAt(pt)
				first = false
				continue
			}
			r.UpdatePoint(pt)
		}
	}
	return r
}

// Contains reports whether pt lies inside the path under the nonzero
// winding rule. Open subpaths are treated as implicitly closed, matching
// canvas isPointInPath.
func (p *Path) Contains(pt geom.Point, m geom.Matrix) bool {
	winding := 0
	for _, pl := range p.Flatten(m) {
		pts := pl.Points
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if a.Y <= pt.Y {
				if b.Y > pt.Y && cross(a, b, pt) > 0 {
					winding++
				}
			} else if b.Y <= pt.Y && cross(a, b, pt) < 0 {
				winding--
			}
		}
	}
	return winding != 0
}

// NearStroke reports whether pt is within dist of the outline of the path.
func (p *Path) NearStroke(pt geom.Point, dist float64, m geom.Matrix) bool {
	for _, pl := range p.Flatten(m) {
		pts := pl.Points
		if len(pts) == 1 && pts[0].Dist(pt) <= dist {
			return true
		}
		for i := 1; i < len(pts); i++ {
			if segmentDist(pts[i-1], pts[i], pt) <= dist {
				return true
			}
		}
		if pl.Closed && len(pts) > 2 && segmentDist(pts[len(pts)-1], pts[0], pt) <= dist {
			return true
		}
	}
	return false
}

func cross(a, b, p geom.Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

func segmentDist(a, b, p geom.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return a.Dist(p)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return geom.Pt(a.X+t*dx, a.Y+t*dy).Dist(p)
}

// Package geom holds the small amount of plane geometry shared by the
// drawing engine: points, incrementally grown bounding rectangles and a
// 2x3 affine matrix.
package geom

import "math"

// Point is a position in canvas pixel space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Rect is an axis aligned box with an optional rotation about its centre.
type Rect struct {
	X, Y, W, H float64
	Rotation   float64
}

// RectAt returns a zero sized rect anchored at p.
func RectAt(p Point) Rect { return Rect{X: p.X, Y: p.Y} }

// RectFromPoints returns the normalized rect spanning a and b.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(b.X - a.X),
		H: math.Abs(b.Y - a.Y),
	}
}

// Update grows r just enough to include (x, y). It never shrinks.
func (r *Rect) Update(x, y float64) {
	if dx := x - r.X; dx < 0 {
		r.W -= dx
		r.X = x
	} else if dx > r.W {
		r.W = dx
	}
	if dy := y - r.Y; dy < 0 {
		r.H -= dy
		r.Y = y
	} else if dy > r.H {
		r.H = dy
	}
}

// UpdatePoint is Update for a Point.
func (r *Rect) UpdatePoint(p Point) { r.Update(p.X, p.Y) }

// Empty reports whether the rect is degenerate, meaning it has neither
// width nor height.
func (r Rect) Empty() bool { return r.W == 0 && r.H == 0 }

// Normalize flips negative extents so W and H are non-negative.
func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Inflate grows the rect by d on every side.
func (r Rect) Inflate(d float64) Rect {
	r.X -= d
	r.Y -= d
	r.W += 2 * d
	r.H += 2 * d
	return r
}

// Translate moves the rect by p.
func (r Rect) Translate(p Point) Rect {
	r.X += p.X
	r.Y += p.Y
	return r
}

// Center returns the middle of the rect.
func (r Rect) Center() Point { return Point{r.X + r.W/2, r.Y + r.H/2} }

// Min returns the top left corner.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Max returns the bottom right corner.
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Contains reports whether p lies inside r or on its edge. Rotation is
// ignored; callers map p into the rect's frame first.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix is a 2D affine transform laid out like x/image/math/f64.Aff3:
//
//	| A B C |
//	| D E F |
//
// so that x' = A*x + B*y + C and y' = D*x + E*y + F.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity is the transform that leaves points unchanged.
func Identity() Matrix { return Matrix{A: 1, E: 1} }

// Translation returns a pure translation.
func Translation(x, y float64) Matrix { return Matrix{A: 1, C: x, E: 1, F: y} }

// Scaling returns a pure scale.
func Scaling(sx, sy float64) Matrix { return Matrix{A: sx, E: sy} }

// Rotation returns a rotation by angle radians.
func Rotation(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{A: c, B: -s, D: s, E: c}
}

// Multiply returns m*n, which applies n first and then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

// Translate post-multiplies a translation, as a canvas translate() does.
func (m Matrix) Translate(x, y float64) Matrix { return m.Multiply(Translation(x, y)) }

// Rotate post-multiplies a rotation.
func (m Matrix) Rotate(angle float64) Matrix { return m.Multiply(Rotation(angle)) }

// Scale post-multiplies a scale.
func (m Matrix) Scale(sx, sy float64) Matrix { return m.Multiply(Scaling(sx, sy)) }

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{m.A*p.X + m.B*p.Y + m.C, m.D*p.X + m.E*p.Y + m.F}
}

// Det returns the determinant of the linear part.
func (m Matrix) Det() float64 { return m.A*m.E - m.B*m.D }

// Invert returns the inverse transform. A singular matrix inverts to the
// identity.
func (m Matrix) Invert() Matrix {
	d := m.Det()
	if d == 0 {
		return Identity()
	}
	return Matrix{
		A: m.E / d,
		B: -m.B / d,
		C: (m.B*m.F - m.E*m.C) / d,
		D: -m.D / d,
		E: m.A / d,
		F: (m.D*m.C - m.A*m.F) / d,
	}
}

// LineScale is the factor a line width grows by under m.
func (m Matrix) LineScale() float64 { return math.Sqrt(math.Abs(m.Det())) }

// IsTranslation reports whether m only translates.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// Aff3 converts m for use with golang.org/x/image/draw transforms.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

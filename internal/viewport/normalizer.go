// Package viewport maps host pointer coordinates, measured in displayed
// pixels, onto the canvas backing store when the two differ in size.
package viewport

import (
	"math"

	"github.com/example/doodle/internal/geom"
)

// Epsilon is how close the coefficient must be to one for the fast path.
const Epsilon = 0.001

// Normalizer holds the display to canvas scale coefficient. The zero value
// is an identity mapping.
type Normalizer struct {
	coef  float64
	valid bool
}

// Update recomputes the coefficient from the canvas backing width and the
// width it is displayed at. A non-positive displayed width means the host
// has no layout yet and leaves the previous coefficient in place.
func (n *Normalizer) Update(canvasWidth int, displayedWidth float64) {
	if displayedWidth <= 0 || math.IsNaN(displayedWidth) || math.IsInf(displayedWidth, 0) {
		return
	}
	n.coef = float64(canvasWidth) / displayedWidth
	n.valid = true
	if math.Abs(n.coef-1) < Epsilon {
		n.coef = 1
	}
}

// Coefficient returns the current multiplier.
func (n *Normalizer) Coefficient() float64 {
	if !n.valid {
		return 1
	}
	return n.coef
}

// Fast reports whether Map passes coordinates through untouched.
func (n *Normalizer) Fast() bool { return n.Coefficient() == 1 }

// Map converts a display position to canvas pixels.
func (n *Normalizer) Map(x, y float64) geom.Point {
	if n.Fast() {
		return geom.Pt(x, y)
	}
	c := n.coef
	return geom.Pt(math.Floor(x*c), math.Floor(y*c))
}

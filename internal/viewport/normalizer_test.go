package viewport

import (
	"testing"

	"github.com/example/doodle/internal/geom"
)

func TestNormalizer(t *testing.T) {
	tests := []struct {
		name      string
		canvas    int
		displayed float64
		in        geom.Point
		want      geom.Point
		fast      bool
	}{
		{"identity", 1280, 1280, geom.Pt(10.5, 3.25), geom.Pt(10.5, 3.25), true},
		{"near one", 1280, 1279.5, geom.Pt(10.5, 3.25), geom.Pt(10.5, 3.25), true},
		{"half size display", 1280, 640, geom.Pt(10.5, 3.25), geom.Pt(21, 6), false},
		{"zoomed display", 1280, 2560, geom.Pt(101, 33), geom.Pt(50, 16), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Normalizer
			n.Update(tt.canvas, tt.displayed)
			if n.Fast() != tt.fast {
				t.Fatalf("fast path = %v, want %v (coef %v)", n.Fast(), tt.fast, n.Coefficient())
			}
			if got := n.Map(tt.in.X, tt.in.Y); got != tt.want {
				t.Fatalf("Map(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizerIgnoresMissingLayout(t *testing.T) {
	var n Normalizer
	n.Update(1280, 640)
	n.Update(1280, 0)
	if n.Coefficient() != 2 {
		t.Fatalf("zero display width should keep the previous coefficient, got %v", n.Coefficient())
	}
	var fresh Normalizer
	if !fresh.Fast() || fresh.Map(3, 4) != geom.Pt(3, 4) {
		t.Fatalf("zero value should be the identity")
	}
}

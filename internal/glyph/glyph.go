// Package glyph turns text into vector outlines so committed text behaves
// like any other path item: it scales on resize and can be hit-tested.
package glyph

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/style"
)

var families = map[string][]byte{
	"sans":    goregular.TTF,
	"regular": goregular.TTF,
	"bold":    gobold.TTF,
	"italic":  goitalic.TTF,
	"mono":    gomono.TTF,
	"serif":   goregular.TTF,
}

var fontCache sync.Map

// Lookup returns the parsed font for a family name. Unknown families fall
// back to Go Regular, much like a browser falls back for a missing face.
func Lookup(family string) (*sfnt.Font, error) {
	key := strings.ToLower(strings.TrimSpace(family))
	data, ok := families[key]
	if !ok {
		key = "sans"
		data = goregular.TTF
	}
	if f, ok := fontCache.Load(key); ok {
		return f.(*sfnt.Font), nil
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", key, err)
	}
	actual, _ := fontCache.LoadOrStore(key, f)
	return actual.(*sfnt.Font), nil
}

// Outline lays text out on a baseline starting at origin and returns the
// glyph outlines as a path, along with the advance width.
func Outline(text string, fnt style.Font, origin geom.Point) (*canvas.Path, float64, error) {
	f, err := Lookup(fnt.Family)
	if err != nil {
		return nil, 0, err
	}
	ppem := fixed.Int26_6(fnt.Size * 64)
	var buf sfnt.Buffer
	p := canvas.NewPath()
	x := origin.X
	prev := sfnt.GlyphIndex(0)
	for i, r := range text {
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return nil, 0, fmt.Errorf("glyph %q: %w", r, err)
		}
		if i > 0 && prev != 0 && idx != 0 {
			if k, err := f.Kern(&buf, prev, idx, ppem, font.HintingNone); err == nil {
				x += fix(k)
			}
		}
		segs, err := f.LoadGlyph(&buf, idx, ppem, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("load glyph %q: %w", r, err)
		}
		addSegments(p, segs, x, origin.Y)
		adv, err := f.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err != nil {
			return nil, 0, fmt.Errorf("advance %q: %w", r, err)
		}
		x += fix(adv)
		prev = idx
	}
	return p, x - origin.X, nil
}

// Metrics returns the ascent and descent of the face at the given size.
func Metrics(fnt style.Font) (ascent, descent float64, err error) {
	f, err := Lookup(fnt.Family)
	if err != nil {
		return 0, 0, err
	}
	var buf sfnt.Buffer
	m, err := f.Metrics(&buf, fixed.Int26_6(fnt.Size*64), font.HintingNone)
	if err != nil {
		return 0, 0, err
	}
	return fix(m.Ascent), fix(m.Descent), nil
}

func addSegments(p *canvas.Path, segs sfnt.Segments, dx, dy float64) {
	pt := func(a fixed.Point26_6) (float64, float64) {
		return fix(a.X) + dx, fix(a.Y) + dy
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			x, y := pt(s.Args[0])
			p.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := pt(s.Args[0])
			p.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			x, y := pt(s.Args[1])
			p.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			x, y := pt(s.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		p.Close()
	}
}

func fix(v fixed.Int26_6) float64 { return float64(v) / 64 }

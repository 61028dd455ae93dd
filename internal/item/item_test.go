package item

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/style"
)

func rectItem() *Item {
	p := canvas.NewPath()
	p.Rect(10, 10, 90, 70)
	r := geom.RectAt(geom.Pt(10, 10))
	r.Update(100, 80)
	return NewPath(p, r, style.Default(), FillStroke)
}

func TestRectangleScenarioBounds(t *testing.T) {
	it := rectItem()
	if it.Rect != (geom.Rect{X: 10, Y: 10, W: 90, H: 70}) {
		t.Fatalf("geometric rect %+v", it.Rect)
	}
	if got := it.Bounds(); got != (geom.Rect{X: 7, Y: 7, W: 96, H: 76}) {
		t.Fatalf("hit rect %+v", got)
	}
	if got := it.BoundingPath().Bounds(); got != (geom.Rect{X: 7, Y: 7, W: 96, H: 76}) {
		t.Fatalf("bounding path %+v", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	it := rectItem()
	c := it.Clone()
	c.Move(5, 5)
	if it.Offset != (geom.Point{}) {
		t.Fatalf("moving the clone moved the original: %+v", it.Offset)
	}
	if c.ID != it.ID {
		t.Fatalf("clone should keep the item id")
	}
	c.Path.LineTo(500, 500)
	if it.Path.Len() == c.Path.Len() {
		t.Fatalf("clone shares its path")
	}

	patch := image.NewRGBA(image.Rect(0, 0, 4, 4))
	ri := NewRaster(patch, geom.Rect{W: 4, H: 4}, style.Default())
	rc := ri.Clone()
	rc.Raster.Pix[0] = 99
	if ri.Raster.Pix[0] == 99 {
		t.Fatalf("clone shares raster pixels")
	}
}

func TestHitTestFollowsOffset(t *testing.T) {
	it := rectItem()
	if !it.HitTest(geom.Pt(50, 50)) {
		t.Fatalf("centre should hit")
	}
	it.Move(200, 0)
	if it.HitTest(geom.Pt(50, 50)) {
		t.Fatalf("old position should miss after move")
	}
	if !it.HitTest(geom.Pt(250, 50)) {
		t.Fatalf("new position should hit")
	}
}

func TestStrokeItemHitBand(t *testing.T) {
	p := canvas.NewPath()
	p.MoveTo(0, 50)
	p.LineTo(100, 50)
	it := NewPath(p, geom.Rect{X: 0, Y: 50, W: 100}, style.Default(), Stroke)
	if !it.HitTest(geom.Pt(40, 52)) {
		t.Fatalf("point on the stroke band should hit")
	}
	if it.HitTest(geom.Pt(40, 60)) {
		t.Fatalf("point away from the stroke should miss")
	}
}

func TestDrawRasterPatch(t *testing.T) {
	s := canvas.NewRaster(40, 40)
	patch := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 5; x++ {
			patch.SetRGBA(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	it := NewRaster(patch, geom.Rect{X: 10, Y: 10, W: 10, H: 10}, style.Default())
	it.Move(5, 0)
	it.Draw(s)
	if got := s.Image().RGBAAt(16, 15); got != (color.RGBA{0, 0, 255, 255}) {
		t.Fatalf("patch pixel not drawn at offset: %+v", got)
	}
	if got := s.Image().RGBAAt(22, 15); got.A != 0 {
		t.Fatalf("transparent patch pixel became %+v", got)
	}
	if !it.HitTest(geom.Pt(24, 19)) || it.HitTest(geom.Pt(12, 15)) {
		t.Fatalf("raster hit test should use the moved rect")
	}
}

func TestDrawUsesCommittedStyle(t *testing.T) {
	s := canvas.NewRaster(120, 120)
	st := style.Default()
	st.FillColor = color.RGBA{0, 255, 0, 255}
	p := canvas.NewPath()
	p.Rect(20, 20, 40, 40)
	it := NewPath(p, geom.Rect{X: 20, Y: 20, W: 40, H: 40}, st, Fill)
	st.FillColor = color.RGBA{255, 0, 0, 255}
	s.SetStyle(st)
	it.Draw(s)
	if got := s.Image().RGBAAt(40, 40); got != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("item should paint with its own style, got %+v", got)
	}
	if s.StyleState().FillColor != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("draw leaked its style into the surface state")
	}
}

func TestRotatedHitTest(t *testing.T) {
	p := canvas.NewPath()
	p.Rect(0, 40, 100, 20)
	it := NewPath(p, geom.Rect{X: 0, Y: 40, W: 100, H: 20}, style.Default(), Fill)
	if it.HitTest(geom.Pt(50, 5)) {
		t.Fatalf("unrotated bar should not cover the top")
	}
	it.Rect.Rotation = 1.5707963267948966
	if !it.HitTest(geom.Pt(50, 5)) {
		t.Fatalf("rotated bar should cover the top")
	}
}

package tools

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/imagesrc"
	"github.com/example/doodle/internal/item"
	"github.com/example/doodle/internal/style"
)

// ImageState is the state of the image placement tool.
type ImageState int

const (
	ImageLoading ImageState = iota
	ImagePlacing
	ImageMoving
	ImageDone
	ImageFailed
)

func (s ImageState) String() string {
	switch s {
	case ImagePlacing:
		return "placing"
	case ImageMoving:
		return "moving"
	case ImageDone:
		return "done"
	case ImageFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Image places a picture from a source. It is inert until the source has
// loaded, then shows the picture fitted and centred on the canvas. Dragging
// inside moves it; a click outside, or deactivation, commits it.
type Image struct {
	Base
	h      Host
	src    imagesrc.Source
	state  ImageState
	patch  *image.RGBA
	rect   geom.Rect
	anchor geom.Point
}

// NewImage returns a factory for the image tool fed from src.
func NewImage(src imagesrc.Source) Factory {
	return func(h Host) Tool {
		t := &Image{h: h, src: src}
		h.Async(src.Load, t.loaded)
		return t
	}
}

// State reports the current state.
func (t *Image) State() ImageState { return t.state }

// Placement returns the current placement rect.
func (t *Image) Placement() geom.Rect { return t.rect }

func (t *Image) loaded(img image.Image, err error) {
	if t.state != ImageLoading {
		return
	}
	if err != nil {
		t.state = ImageFailed
		t.h.Logger().Warn("image load failed", "source", t.src.Name(), "err", err)
		t.h.Abort(t)
		return
	}
	cw, ch := t.h.CanvasSize()
	t.patch, t.rect = Fit(img, cw, ch)
	t.state = ImagePlacing
	t.render()
}

func (t *Image) PointerDown(p geom.Point, _ Event) {
	if t.state != ImagePlacing {
		return
	}
	if t.rect.Contains(p) {
		t.state = ImageMoving
		t.anchor = p
		return
	}
	t.place()
}

func (t *Image) PointerDrag(p geom.Point, _ Event) {
	if t.state != ImageMoving {
		return
	}
	t.rect.X += p.X - t.anchor.X
	t.rect.Y += p.Y - t.anchor.Y
	t.anchor = p
	t.render()
}

func (t *Image) PointerUp(p geom.Point, ev Event) {
	if t.state != ImageMoving {
		return
	}
	t.PointerDrag(p, ev)
	t.state = ImagePlacing
}

func (t *Image) Destroy() {
	switch t.state {
	case ImagePlacing, ImageMoving:
		t.place()
	case ImageLoading:
		t.state = ImageDone
	}
	t.h.Draft().ClearAll()
}

func (t *Image) style() style.Snapshot {
	st := t.h.Style()
	st.Composite = style.SourceOver
	return st
}

func (t *Image) place() {
	t.state = ImageDone
	commit(t.h, item.NewRaster(t.patch, t.rect, t.style()))
	t.patch = nil
}

func (t *Image) render() {
	d := t.h.Draft()
	d.ClearAll()
	d.Save()
	d.SetStyle(t.style())
	d.DrawImage(t.patch, t.rect.Min())
	d.Restore()
	placed := &item.Item{Raster: t.patch, Rect: t.rect}
	placed.DrawSelection(d, outline(t.h))
}

// Fit scales img down to fit a cw x ch canvas, never up, and returns the
// pixels with a rect centring them on the canvas.
func Fit(img image.Image, cw, ch float64) (*image.RGBA, geom.Rect) {
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	w, h := b.Dx(), b.Dy()
	if iw > 0 && ih > 0 {
		if scale := math.Min(cw/iw, ch/ih); scale < 1 {
			w = max(1, int(math.Round(iw*scale)))
			h = max(1, int(math.Round(ih*scale)))
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}
	r := geom.Rect{
		X: math.Round((cw - float64(w)) / 2),
		Y: math.Round((ch - float64(h)) / 2),
		W: float64(w),
		H: float64(h),
	}
	return dst, r
}

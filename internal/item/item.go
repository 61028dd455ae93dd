// Package item holds the committed drawable: a vector path or raster patch
// together with the style, bounds and offset it was committed with.
package item

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/google/uuid"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/style"
)

// Mode selects how a vector item is painted.
type Mode int

const (
	// FillStroke fills, then strokes on top. It is the zero value.
	FillStroke Mode = iota
	Fill
	Stroke
	StrokeFill
)

func (m Mode) String() string {
	switch m {
	case Fill:
		return "fill"
	case Stroke:
		return "stroke"
	case StrokeFill:
		return "strokeFill"
	}
	return "fillStroke"
}

// Item is one committed drawable. Only Move mutates an item after it has
// been created.
type Item struct {
	ID     uuid.UUID
	Path   *canvas.Path
	Raster *image.RGBA
	Rect   geom.Rect
	Style  style.Snapshot
	Offset geom.Point
	Mode   Mode
}

// NewPath returns a vector item.
func NewPath(p *canvas.Path, rect geom.Rect, st style.Snapshot, mode Mode) *Item {
	return &Item{ID: uuid.New(), Path: p, Rect: rect, Style: st, Mode: mode}
}

// NewRaster returns a raster item covering rect. The pixels are copied.
func NewRaster(img image.Image, rect geom.Rect, st style.Snapshot) *Item {
	return &Item{ID: uuid.New(), Raster: copyRGBA(img), Rect: rect, Style: st}
}

// IsRaster reports whether the item carries pixels rather than a path.
func (it *Item) IsRaster() bool { return it.Raster != nil }

// Transform maps item space to user space: the offset, then a rotation
// about the rect centre when the rect is rotated.
func (it *Item) Transform() geom.Matrix {
	m := geom.Translation(it.Offset.X, it.Offset.Y)
	if it.Rect.Rotation != 0 {
		c := it.Rect.Center()
		m = m.Translate(c.X, c.Y).Rotate(it.Rect.Rotation).Translate(-c.X, -c.Y)
	}
	return m
}

func (it *Item) applyTransform(s canvas.Surface) {
	s.Translate(it.Offset.X, it.Offset.Y)
	if it.Rect.Rotation != 0 {
		c := it.Rect.Center()
		s.Translate(c.X, c.Y)
		s.Rotate(it.Rect.Rotation)
		s.Translate(-c.X, -c.Y)
	}
}

// Draw paints the item with its own style. The surface state is restored
// afterwards.
func (it *Item) Draw(s canvas.Surface) {
	s.Save()
	defer s.Restore()
	s.SetStyle(it.Style)
	s.SetDash()
	it.applyTransform(s)
	if it.IsRaster() {
		// the patch goes through a scratch copy so transparent pixels stay
		// transparent and the stored pixels are never handed to the surface
		scratch := copyRGBA(it.Raster)
		s.DrawImage(scratch, it.Rect.Min())
		return
	}
	switch it.Mode {
	case Fill:
		s.Fill(it.Path)
	case Stroke:
		s.Stroke(it.Path)
	case StrokeFill:
		s.Stroke(it.Path)
		s.Fill(it.Path)
	default:
		s.Fill(it.Path)
		s.Stroke(it.Path)
	}
}

// HitTest reports whether the user space point p lands on the item.
// Raster items test their rect. Vector items test the interior for modes
// that fill and the stroke band of half the line width for modes that
// stroke, so thin open strokes stay pickable.
func (it *Item) HitTest(p geom.Point) bool {
	local := it.Transform().Invert().Apply(p)
	if it.IsRaster() {
		return it.Rect.Contains(local)
	}
	id := geom.Identity()
	if it.Mode != Stroke && it.Path.Contains(local, id) {
		return true
	}
	if it.Mode != Fill {
		return it.Path.NearStroke(local, it.Style.LineWidth/2, id)
	}
	return false
}

// Bounds returns the hit area rect in item space: the rect inflated by half
// the line width for vector items.
func (it *Item) Bounds() geom.Rect {
	if it.IsRaster() {
		return it.Rect
	}
	return it.Rect.Inflate(it.Style.LineWidth / 2)
}

// BoundingPath returns Bounds as a closed path in user space, ready for
// drawing a selection outline.
func (it *Item) BoundingPath() *canvas.Path {
	b := it.Bounds()
	p := canvas.NewPath()
	p.Rect(b.X, b.Y, b.W, b.H)
	return p.Transform(it.Transform())
}

// Outline describes how a selection outline is stroked.
type Outline struct {
	Color color.RGBA
	Width float64
	Dash  []float64
}

// DefaultOutline is the grey dashed selection outline.
func DefaultOutline() Outline {
	return Outline{Color: color.RGBA{128, 128, 128, 255}, Width: 2, Dash: []float64{5, 5}}
}

// DrawSelection strokes the bounding path with o.
func (it *Item) DrawSelection(s canvas.Surface, o Outline) {
	s.Save()
	defer s.Restore()
	st := style.Default()
	st.StrokeColor = o.Color
	st.LineWidth = o.Width
	st.LineCap = style.CapButt
	st.LineJoin = style.JoinMiter
	s.SetStyle(st)
	s.SetDash(o.Dash...)
	s.Stroke(it.BoundingPath())
}

// Move shifts the item by (dx, dy). The path itself is never touched.
func (it *Item) Move(dx, dy float64) {
	it.Offset.X += dx
	it.Offset.Y += dy
}

// Clone returns a deep copy sharing no mutable state with it. The ID is
// kept since the clone is the same logical item in another history entry.
func (it *Item) Clone() *Item {
	c := *it
	if it.Path != nil {
		c.Path = it.Path.Clone()
	}
	if it.Raster != nil {
		c.Raster = copyRGBA(it.Raster)
	}
	return &c
}

func copyRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

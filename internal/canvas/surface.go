// Package canvas provides the 2D rendering surface the drawing engine paints
// on: a vector path model and a raster implementation backed by rasterx.
package canvas

import (
	"image"

	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/style"
)

// Surface is the set of primitives the engine needs from a rendering
// target. It mirrors a 2D canvas context: paint state and transform are
// stacked with Save and Restore, paths are filled or stroked with the
// current state, and pixel regions can be captured and put back.
//
// Pixel coordinates given to Capture, Blit, Clear and IsPointInPath are
// device pixels and ignore the current transform.
type Surface interface {
	Bounds() image.Rectangle

	Save()
	Restore()
	SetStyle(s style.Snapshot)
	StyleState() style.Snapshot
	SetComposite(c style.Composite)
	SetDash(pattern ...float64)

	Translate(x, y float64)
	Rotate(angle float64)
	Scale(sx, sy float64)

	Fill(p *Path)
	Stroke(p *Path)
	IsPointInPath(p *Path, pt geom.Point) bool

	Capture(r image.Rectangle) *image.RGBA
	Blit(src *image.RGBA, at image.Point)
	DrawImage(src image.Image, at geom.Point)
	Clear(r image.Rectangle)
	ClearAll()
	Resize(w, h int)
}

package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/style"
)

type state struct {
	m     geom.Matrix
	style style.Snapshot
	dash  []float64
}

// Raster is a Surface over an *image.RGBA. Coverage is rasterized by
// rasterx into an alpha mask which is then composited with the current
// style, so both source-over and destination-out share one path.
type Raster struct {
	img   *image.RGBA
	base  geom.Matrix
	cur   state
	stack []state
}

var _ Surface = (*Raster)(nil)

// NewRaster returns a transparent w by h surface with the default style.
func NewRaster(w, h int) *Raster {
	return &Raster{
		img:  image.NewRGBA(image.Rect(0, 0, w, h)),
		base: geom.Identity(),
		cur:  state{m: geom.Identity(), style: style.Default()},
	}
}

// Image returns the backing image. It is live: later drawing changes it.
func (r *Raster) Image() *image.RGBA { return r.img }

// Bounds returns the device pixel bounds.
func (r *Raster) Bounds() image.Rectangle { return r.img.Bounds() }

// SetBase installs a transform applied underneath every drawing call. The
// board uses it to map world coordinates onto a resized canvas.
func (r *Raster) SetBase(m geom.Matrix) { r.base = m }

// Base returns the transform installed with SetBase.
func (r *Raster) Base() geom.Matrix { return r.base }

// Transform returns the full user to device transform.
func (r *Raster) Transform() geom.Matrix { return r.base.Multiply(r.cur.m) }

func (r *Raster) Save() {
	s := r.cur
	s.dash = append([]float64(nil), r.cur.dash...)
	r.stack = append(r.stack, s)
}

func (r *Raster) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.cur = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Raster) SetStyle(s style.Snapshot)      { r.cur.style = s }
func (r *Raster) StyleState() style.Snapshot     { return r.cur.style }
func (r *Raster) SetComposite(c style.Composite) { r.cur.style.Composite = c }

// SetDash sets the stroke dash pattern. No arguments means solid.
func (r *Raster) SetDash(pattern ...float64) {
	if len(pattern) == 0 {
		r.cur.dash = nil
		return
	}
	r.cur.dash = append([]float64(nil), pattern...)
}

func (r *Raster) Translate(x, y float64) { r.cur.m = r.cur.m.Translate(x, y) }
func (r *Raster) Rotate(angle float64)   { r.cur.m = r.cur.m.Rotate(angle) }
func (r *Raster) Scale(sx, sy float64)   { r.cur.m = r.cur.m.Scale(sx, sy) }

// Fill paints the interior of p with the fill colour using the nonzero
// winding rule.
func (r *Raster) Fill(p *Path) {
	if p == nil || p.Empty() {
		return
	}
	m := r.Transform()
	clip := r.clip(p, m, 0)
	if clip.Empty() {
		return
	}
	w, h := clip.Dx(), clip.Dy()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, mask, mask.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetWinding(true)
	feed(filler, p, toClip(clip, m))
	filler.SetColor(color.Opaque)
	filler.Draw()
	r.composite(mask, clip, r.cur.style.FillColor)
}

// Stroke paints the outline of p with the stroke colour, width, caps,
// joins and dash pattern of the current state.
func (r *Raster) Stroke(p *Path) {
	if p == nil || p.Len() == 0 {
		return
	}
	st := r.cur.style
	m := r.Transform()
	scale := m.LineScale()
	clip := r.clip(p, m, st.LineWidth*scale*math.Max(st.MiterLimit, 2))
	if clip.Empty() {
		return
	}
	w, h := clip.Dx(), clip.Dy()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, mask, mask.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	var dash []float64
	for _, d := range r.cur.dash {
		dash = append(dash, d*scale)
	}
	capFn := capFunc(st.LineCap)
	dasher.SetStroke(
		fixed.Int26_6(st.LineWidth*scale*64),
		fixed.Int26_6(st.MiterLimit*64),
		capFn, capFn,
		gapFunc(st.LineJoin),
		joinMode(st.LineJoin),
		dash, 0,
	)
	feed(dasher, p, toClip(clip, m))
	dasher.SetColor(color.Opaque)
	dasher.Draw()
	r.composite(mask, clip, st.StrokeColor)
}

// clip returns the device pixels p can cover under m, widened by pad.
func (r *Raster) clip(p *Path, m geom.Matrix, pad float64) image.Rectangle {
	var b geom.Rect
	first := true
	for _, pl := range p.Flatten(m) {
		for _, pt := range pl.Points {
			if first {
				b = geom.RectAt(pt)
				first = false
				continue
			}
			b.UpdatePoint(pt)
		}
	}
	if first {
		return image.Rectangle{}
	}
	b = b.Inflate(pad + 2)
	rect := image.Rect(
		int(math.Floor(b.X)), int(math.Floor(b.Y)),
		int(math.Ceil(b.X+b.W)), int(math.Ceil(b.Y+b.H)),
	)
	return rect.Intersect(r.img.Bounds())
}

// toClip shifts device space so the clip origin lands on zero.
func toClip(clip image.Rectangle, m geom.Matrix) geom.Matrix {
	return geom.Translation(-float64(clip.Min.X), -float64(clip.Min.Y)).Multiply(m)
}

// IsPointInPath reports whether the device pixel pt is inside p as it would
// be filled under the current transform.
func (r *Raster) IsPointInPath(p *Path, pt geom.Point) bool {
	return p.Contains(pt, r.Transform())
}

// Capture copies the device pixels in rect.
func (r *Raster) Capture(rect image.Rectangle) *image.RGBA {
	rect = rect.Intersect(r.img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), r.img, rect.Min, draw.Src)
	return out
}

// Blit replaces the device pixels at at with src, including transparency.
func (r *Raster) Blit(src *image.RGBA, at image.Point) {
	dst := src.Bounds().Sub(src.Bounds().Min).Add(at)
	draw.Draw(r.img, dst, src, src.Bounds().Min, draw.Src)
}

// DrawImage composites src with its top left corner at user space point
// at, honouring the transform, global alpha and composite mode.
func (r *Raster) DrawImage(src image.Image, at geom.Point) {
	m := r.Transform().Translate(at.X, at.Y)
	st := r.cur.style
	layer := image.NewRGBA(r.img.Bounds())
	sb := src.Bounds()
	if m.IsTranslation() && m.C == float64(int(m.C)) && m.F == float64(int(m.F)) {
		dp := image.Pt(int(m.C), int(m.F))
		draw.Draw(layer, sb.Sub(sb.Min).Add(dp), src, sb.Min, draw.Src)
	} else {
		aff := m.Translate(float64(-sb.Min.X), float64(-sb.Min.Y)).Aff3()
		xdraw.ApproxBiLinear.Transform(layer, aff, src, sb, xdraw.Src, nil)
	}
	if st.Composite == style.DestinationOut {
		mask := image.NewAlpha(layer.Bounds())
		for i := 0; i < len(mask.Pix); i++ {
			mask.Pix[i] = layer.Pix[i*4+3]
		}
		erase(r.img, mask, image.Point{}, st.Alpha)
		return
	}
	if st.Alpha >= 1 {
		draw.Draw(r.img, r.img.Bounds(), layer, image.Point{}, draw.Over)
		return
	}
	alpha := image.NewUniform(color.Alpha{A: uint8(st.Alpha*255 + 0.5)})
	draw.DrawMask(r.img, r.img.Bounds(), layer, image.Point{}, alpha, image.Point{}, draw.Over)
}

// Clear makes the device pixels in rect transparent.
func (r *Raster) Clear(rect image.Rectangle) {
	draw.Draw(r.img, rect.Intersect(r.img.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

// ClearAll makes the whole surface transparent.
func (r *Raster) ClearAll() {
	clear(r.img.Pix)
}

// Resize replaces the backing image with a transparent w by h one. The
// transform stack is reset and the paint style kept, as resizing an HTML
// canvas resets its context.
func (r *Raster) Resize(w, h int) {
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.stack = nil
	r.cur.m = geom.Identity()
	r.cur.dash = nil
}

// composite paints c through mask, whose origin sits at clip.Min.
func (r *Raster) composite(mask *image.Alpha, clip image.Rectangle, c color.RGBA) {
	st := r.cur.style
	if st.Composite == style.DestinationOut {
		erase(r.img, mask, clip.Min, st.Alpha*float64(c.A)/255)
		return
	}
	src := image.NewUniform(rasterx.ApplyOpacity(c, st.Alpha))
	draw.DrawMask(r.img, clip, src, image.Point{}, mask, mask.Bounds().Min, draw.Over)
}

// erase scales every premultiplied channel of dst by one minus the mask
// coverage times strength. The mask origin sits at at in dst.
func erase(dst *image.RGBA, mask *image.Alpha, at image.Point, strength float64) {
	b := dst.Bounds().Intersect(mask.Bounds().Add(at))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := mask.AlphaAt(x-at.X, y-at.Y).A
			if a == 0 {
				continue
			}
			keep := 1 - float64(a)/255*strength
			i := dst.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				dst.Pix[i+c] = uint8(float64(dst.Pix[i+c])*keep + 0.5)
			}
		}
	}
}

func feed(a rasterx.Adder, p *Path, m geom.Matrix) {
	open := false
	var start geom.Point
	fp := func(pt geom.Point) fixed.Point26_6 {
		d := m.Apply(pt)
		return rasterx.ToFixedP(d.X, d.Y)
	}
	ensure := func() {
		if !open {
			a.Start(fp(start))
			open = true
		}
	}
	for _, s := range p.segs {
		switch s.Op {
		case MoveTo:
			if open {
				a.Stop(false)
			}
			start = s.Pts[0]
			a.Start(fp(start))
			open = true
		case LineTo:
			ensure()
			a.Line(fp(s.Pts[0]))
		case QuadTo:
			ensure()
			a.QuadBezier(fp(s.Pts[0]), fp(s.Pts[1]))
		case CubicTo:
			ensure()
			a.CubeBezier(fp(s.Pts[0]), fp(s.Pts[1]), fp(s.Pts[2]))
		case Close:
			if open {
				a.Stop(true)
				open = false
			}
		}
	}
	if open {
		a.Stop(false)
	}
}

func capFunc(c style.Cap) rasterx.CapFunc {
	switch c {
	case style.CapButt:
		return rasterx.ButtCap
	case style.CapSquare:
		return rasterx.SquareCap
	}
	return rasterx.RoundCap
}

func gapFunc(j style.Join) rasterx.GapFunc {
	if j == style.JoinRound {
		return rasterx.RoundGap
	}
	return rasterx.FlatGap
}

func joinMode(j style.Join) rasterx.JoinMode {
	switch j {
	case style.JoinMiter:
		return rasterx.Miter
	case style.JoinBevel:
		return rasterx.Bevel
	}
	return rasterx.Round
}

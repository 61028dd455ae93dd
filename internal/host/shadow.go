package host

import (
	"image"
	"image/color"
	"image/draw"
)

// Drop shadow under the canvas page.
const (
	shadowRadius  = 6
	shadowOffset  = 4
	shadowOpacity = 0.35
)

// shadowCache keeps the blurred page mask between frames; it only changes
// when the canvas view is resized.
type shadowCache struct {
	size image.Point
	mask *image.Gray
}

// maskFor returns the blurred alpha of a size-sized page, padded by the blur
// radius on every side.
func (c *shadowCache) maskFor(size image.Point) *image.Gray {
	if c.mask != nil && c.size == size {
		return c.mask
	}
	page := image.Rectangle{Max: size}
	padded := page.Inset(-shadowRadius)
	m := image.NewGray(padded.Sub(padded.Min))
	draw.Draw(m, page.Add(image.Pt(shadowRadius, shadowRadius)), image.NewUniform(color.Gray{Y: 255}), image.Point{}, draw.Src)
	c.size = size
	c.mask = boxBlur(m, shadowRadius)
	return c.mask
}

// draw paints the shadow for a page occupying view.
func (c *shadowCache) draw(dst *image.RGBA, view image.Rectangle) {
	if view.Empty() {
		return
	}
	m := c.maskFor(view.Size())
	origin := view.Min.Add(image.Pt(shadowOffset-shadowRadius, shadowOffset-shadowRadius))
	shade := image.NewUniform(color.RGBA{A: uint8(shadowOpacity*255 + 0.5)})
	draw.DrawMask(dst, m.Bounds().Add(origin), shade, image.Point{}, m, image.Point{}, draw.Over)
}

// boxBlur runs a horizontal then a vertical running-sum box blur.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	dst := image.NewGray(src.Bounds())
	line := make([]int, max(w, h)+1)
	blur := func(n int, get func(int) uint8, set func(int, uint8)) {
		for i := 0; i < n; i++ {
			line[i+1] = line[i] + int(get(i))
		}
		for i := 0; i < n; i++ {
			lo, hi := max(i-radius, 0), min(i+radius, n-1)
			set(i, uint8((line[hi+1]-line[lo])/(hi-lo+1)))
		}
	}
	for y := 0; y < h; y++ {
		row := y * src.Stride
		blur(w, func(x int) uint8 { return src.Pix[row+x] }, func(x int, v uint8) { tmp.Pix[y*tmp.Stride+x] = v })
	}
	for x := 0; x < w; x++ {
		blur(h, func(y int) uint8 { return tmp.Pix[y*tmp.Stride+x] }, func(y int, v uint8) { dst.Pix[y*dst.Stride+x] = v })
	}
	return dst
}

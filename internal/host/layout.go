package host

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/doodle/internal/board"
	"github.com/example/doodle/internal/theme"
)

const statusHeight = 24

// canvasRect returns where a canvas of size cw x ch is drawn in a window of
// winW x winH. With fit set it is scaled to the area above the status
// strip, otherwise it is shown 1:1. The origin stays at the top left so
// the drawing does not jump while the window is resized.
func canvasRect(cw, ch, winW, winH int, fit bool) image.Rectangle {
	if cw <= 0 || ch <= 0 {
		return image.Rectangle{}
	}
	zoom := 1.0
	if fit {
		availW := winW
		availH := winH - statusHeight
		zx := float64(availW) / float64(cw)
		zy := float64(availH) / float64(ch)
		zoom = min(zx, zy)
		if zoom <= 0 {
			return image.Rectangle{}
		}
	}
	w := int(float64(cw) * zoom)
	h := int(float64(ch) * zoom)
	return image.Rect(0, 0, w, h)
}

// drawCheckerboard fills rect of dst with a checkerboard pattern.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	lu, du := image.NewUniform(light), image.NewUniform(dark)
	for y := rect.Min.Y; y < rect.Max.Y; y += size {
		for x := rect.Min.X; x < rect.Max.X; x += size {
			src := lu
			if ((x-rect.Min.X)/size+(y-rect.Min.Y)/size)%2 != 0 {
				src = du
			}
			cell := image.Rect(x, y, x+size, y+size).Intersect(rect)
			draw.Draw(dst, cell, src, image.Point{}, draw.Src)
		}
	}
}

// statusLine describes the board state for the status strip.
func statusLine(b *board.Board, fit bool) string {
	w, h := b.Size()
	hist := b.History()
	zoom := "1:1"
	if fit {
		zoom = "fit"
	}
	s := fmt.Sprintf("%s  sides:%d  %dx%d  %s  history:%d/%d",
		b.ActiveToolName(), b.PolygonSides(), w, h, zoom, hist.Cursor()+1, hist.Len())
	if txt, ok := b.TextEntry(); ok {
		str, _, _ := txt.Entry()
		s += fmt.Sprintf("  text:%q", str)
	}
	return s
}

// drawStatus paints the status strip along the bottom of dst.
func drawStatus(dst *image.RGBA, th *theme.Theme, text, message string) {
	b := dst.Bounds()
	strip := image.Rect(b.Min.X, b.Max.Y-statusHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, strip, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.StatusText), Face: basicfont.Face7x13,
		Dot: fixed.P(strip.Min.X+4, strip.Min.Y+16)}
	d.DrawString(text)
	if message == "" {
		return
	}
	mw := d.MeasureString(message).Ceil()
	d.Dot = fixed.P(strip.Max.X-mw-4, strip.Min.Y+16)
	d.DrawString(message)
}

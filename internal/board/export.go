package board

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// Image returns a copy of the drawing.
func (b *Board) Image() *image.RGBA { return b.Capture() }

// WritePNG encodes the drawing as PNG.
func (b *Board) WritePNG(w io.Writer) error {
	if err := png.Encode(w, b.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// DataURL returns the drawing as a data:image/png;base64 URL.
func (b *Board) DataURL() (string, error) {
	var buf bytes.Buffer
	if err := b.WritePNG(&buf); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Composite draws the real surface and then the draft surface over dst
// within r, scaling when r differs from the canvas size.
func (b *Board) Composite(dst draw.Image, r image.Rectangle) {
	for _, img := range []*image.RGBA{b.real.Image(), b.draft.Image()} {
		src := img.Bounds()
		if r.Size() == src.Size() {
			draw.Draw(dst, r, img, src.Min, draw.Over)
			continue
		}
		xdraw.ApproxBiLinear.Scale(dst, r, img, src, draw.Over, nil)
	}
}

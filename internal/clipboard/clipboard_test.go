package clipboard

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestPNGRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{10, 20, 30, 255})
	data, err := encodePNG(img)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodePNG(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
	r, g, b, _ := got.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("pixel mismatch: %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestDecodeEmpty(t *testing.T) {
	if _, err := decodePNG(nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if _, err := decodePNG([]byte("not a png")); err == nil {
		t.Fatalf("expected a decode error")
	}
}

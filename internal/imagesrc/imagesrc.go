// Package imagesrc provides the image sources the image tool places on the
// board. Loading may block on disk or the clipboard, so it takes a context
// and is run off the event loop.
package imagesrc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Registered decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/doodle/internal/clipboard"
)

// ErrNotImage is returned when the data is not in any known image format.
var ErrNotImage = errors.New("not an image")

// Source yields one image.
type Source interface {
	Load(ctx context.Context) (image.Image, error)
	Name() string
}

// File reads an image from disk.
type File string

func (f File) Name() string { return filepath.Base(string(f)) }

func (f File) Load(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(string(f))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer fh.Close()
	img, err := decode(ctx, fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	return img, nil
}

// Bytes decodes an image held in memory.
type Bytes struct {
	Label string
	Data  []byte
}

func (b Bytes) Name() string {
	if b.Label == "" {
		return "bytes"
	}
	return b.Label
}

func (b Bytes) Load(ctx context.Context) (image.Image, error) {
	return decode(ctx, bytes.NewReader(b.Data))
}

// Clipboard reads the image currently on the system clipboard.
type Clipboard struct{}

func (Clipboard) Name() string { return "clipboard" }

func (Clipboard) Load(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := clipboard.ReadImage()
	if errors.Is(err, clipboard.ErrEmpty) {
		return nil, fmt.Errorf("clipboard: %w", ErrNotImage)
	}
	if err != nil {
		return nil, fmt.Errorf("clipboard: %w", err)
	}
	return img, nil
}

// Func adapts a plain function to Source.
type Func func(ctx context.Context) (image.Image, error)

func (f Func) Name() string { return "func" }

func (f Func) Load(ctx context.Context) (image.Image, error) { return f(ctx) }

func decode(ctx context.Context, r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if errors.Is(err, image.ErrFormat) {
		return nil, ErrNotImage
	}
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

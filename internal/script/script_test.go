package script

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/doodle/internal/board"
	"github.com/example/doodle/internal/item"
	"github.com/example/doodle/internal/style"
)

func run(t *testing.T, src string) (*Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := New(&out, board.WithSize(200, 200))
	t.Cleanup(r.Close)
	if err := r.Run(strings.NewReader(src)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return r, &out
}

func TestRectangleScript(t *testing.T) {
	r, out := run(t, `
# a single rectangle
tool rect
style stroke=#ff0000 width=2   # thin red
drag 10 10 100 80
items
`)
	items := r.Board.Items()
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	it := items[0]
	if it.Style.StrokeColor != (color.RGBA{255, 0, 0, 255}) || it.Style.LineWidth != 2 {
		t.Fatalf("style not applied: %+v", it.Style)
	}
	if !strings.Contains(out.String(), "x=10 y=10 w=90 h=70") {
		t.Fatalf("items output = %q", out.String())
	}
}

func TestErrorsCarryLineNumber(t *testing.T) {
	r := New(nil, board.WithSize(100, 100))
	defer r.Close()
	err := r.Run(strings.NewReader("tool rect\n\ntool pencil\n"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, board.ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "line 3:") {
		t.Fatalf("error should name line 3: %v", err)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"scribble 1 2", ErrUnknownCommand},
		{"drag 1 2 3", ErrUsage},
		{"sides 2", board.ErrInvalidSides},
		{"style width=-1", style.ErrInvalid},
		{"type hello", ErrNoTextEntry},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			r := New(nil, board.WithSize(100, 100))
			defer r.Close()
			if err := r.Exec(tt.line); !errors.Is(err, tt.want) {
				t.Fatalf("Exec(%q) = %v, want %v", tt.line, err, tt.want)
			}
		})
	}
}

func TestTextScript(t *testing.T) {
	r, _ := run(t, `
tool text
style font=30px mono
click 20 100
type Hello world!
key backspace
key enter
`)
	items := r.Board.Items()
	if len(items) != 1 || items[0].Mode != item.Fill {
		t.Fatalf("expected one text item, got %d", len(items))
	}
	if items[0].Style.Font != (style.Font{Size: 30, Family: "mono"}) {
		t.Fatalf("font = %+v", items[0].Style.Font)
	}
}

func TestUndoRedoClearScript(t *testing.T) {
	r, _ := run(t, `
tool line
drag 10 10 50 50
drag 10 50 50 10
undo
`)
	if len(r.Board.Items()) != 1 {
		t.Fatalf("undo should leave one line")
	}
	for _, line := range []string{"redo", "clear"} {
		if err := r.Exec(line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}
	if len(r.Board.Items()) != 0 {
		t.Fatalf("clear should empty the board")
	}
	if err := r.Exec("undo"); err != nil || len(r.Board.Items()) != 2 {
		t.Fatalf("undo after clear should bring both lines back")
	}
}

func TestSizeStartsFresh(t *testing.T) {
	r, _ := run(t, `
tool rect
drag 10 10 50 50
size 64 32
`)
	if w, h := r.Board.Size(); w != 64 || h != 32 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if len(r.Board.Items()) != 0 {
		t.Fatalf("size should start a new board")
	}
}

func TestImageAndExport(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	in := filepath.Join(dir, "in.png")
	f, err := os.Create(in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	out := filepath.Join(dir, "out.png")
	r, _ := run(t, "image "+in+"\nclick 5 5\nexport "+out+"\n")
	items := r.Board.Items()
	if len(items) != 1 || items[0].Raster == nil {
		t.Fatalf("expected a placed raster item")
	}
	if items[0].Rect.X != 90 || items[0].Rect.Y != 95 {
		t.Fatalf("image should be centred, rect %+v", items[0].Rect)
	}

	g, err := os.Open(out)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer g.Close()
	img, err := png.Decode(g)
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if _, _, _, a := img.At(100, 100).RGBA(); a == 0 {
		t.Fatalf("exported image lacks the placed picture")
	}
}

func TestImageLoadFailure(t *testing.T) {
	r := New(nil, board.WithSize(100, 100))
	defer r.Close()
	r.Exec("tool circle")
	if err := r.Exec("image " + filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if r.Board.ActiveToolName() != "circle" {
		t.Fatalf("failed load should restore the circle tool, got %s", r.Board.ActiveToolName())
	}
}

func TestCommandsListed(t *testing.T) {
	got := Commands()
	if len(got) != len(commands) {
		t.Fatalf("Commands() = %d entries", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Fatalf("not sorted")
		}
	}
}

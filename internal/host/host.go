// Package host shows a board in a shiny window and feeds it pointer and
// keyboard input.
package host

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/doodle/internal/board"
	"github.com/example/doodle/internal/clipboard"
	"github.com/example/doodle/internal/imagesrc"
	"github.com/example/doodle/internal/notify"
	"github.com/example/doodle/internal/tools"
)

// pendingEvent asks the event loop to apply finished async loads.
type pendingEvent struct{}

// Window is the interactive presentation of a board.
type Window struct {
	Board     *board.Board
	ExportDir string
	ImagePath string
	Notifier  *notify.Notifier

	updates <-chan struct{}
	now     func() time.Time

	fit     bool
	inside  bool
	pressed bool
	view    image.Rectangle
	shadow  shadowCache
	message string
	until   time.Time
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithExportDir sets where Ctrl+S writes PNG files.
func WithExportDir(dir string) Option { return func(w *Window) { w.ExportDir = dir } }

// WithImagePath makes the image key place this file instead of the
// clipboard contents.
func WithImagePath(path string) Option { return func(w *Window) { w.ImagePath = path } }

// WithNotifier sets the notifier used after export and copy.
func WithNotifier(n *notify.Notifier) Option { return func(w *Window) { w.Notifier = n } }

// WithUpdates wires the channel the board's wake callback signals when an
// async load has finished.
func WithUpdates(ch <-chan struct{}) Option { return func(w *Window) { w.updates = ch } }

// New creates a Window for b.
func New(b *board.Board, opts ...Option) *Window {
	w := &Window{Board: b, fit: true, now: time.Now}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run executes the UI loop using shiny's driver.
func (w *Window) Run() { driver.Main(w.Main) }

// Main runs the event loop on s until the window closes.
func (w *Window) Main(s screen.Screen) {
	cw, ch := w.Board.Size()
	width, height := cw, ch+statusHeight
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Doodle"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer win.Release()

	if w.updates != nil {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-w.updates:
					win.Send(pendingEvent{})
				case <-done:
					return
				}
			}
		}()
		defer close(done)
	}

	table := Shortcuts()
	w.layout(width, height)

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case pendingEvent:
			if n := w.Board.RunPending(); n > 0 {
				win.Send(paint.Event{})
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			w.layout(width, height)
			win.Send(paint.Event{})
		case paint.Event:
			w.paint(s, win, width, height)
		case mouse.Event:
			if w.handleMouse(e) {
				win.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress && e.Direction != key.DirNone {
				continue
			}
			if w.handleKey(table, e) {
				w.layout(width, height)
				win.Send(paint.Event{})
			}
		case error:
			log.Print(e)
		}
	}
}

// layout recomputes the canvas view and tells the board how wide it is
// displayed.
func (w *Window) layout(width, height int) {
	cw, ch := w.Board.Size()
	w.view = canvasRect(cw, ch, width, height, w.fit)
	w.Board.SetDisplaySize(float64(w.view.Dx()))
}

func (w *Window) handleMouse(e mouse.Event) bool {
	x := float64(e.X) - float64(w.view.Min.X)
	y := float64(e.Y) - float64(w.view.Min.Y)
	ev := tools.Event{
		Button: int(e.Button),
		Shift:  e.Modifiers&key.ModShift != 0,
		Ctrl:   e.Modifiers&key.ModControl != 0,
	}
	in := image.Pt(int(e.X), int(e.Y)).In(w.view)
	changed := false
	if in != w.inside {
		w.inside = in
		if in {
			w.Board.PointerEnter(x, y, ev)
		} else {
			w.Board.PointerLeave(x, y, ev)
		}
		changed = true
	}
	if e.Button != mouse.ButtonLeft && e.Direction != mouse.DirNone {
		return changed
	}
	switch e.Direction {
	case mouse.DirPress:
		if !in {
			return changed
		}
		w.pressed = true
		w.Board.PointerDown(x, y, ev)
	case mouse.DirRelease:
		if !w.pressed {
			return changed
		}
		w.pressed = false
		w.Board.PointerUp(x, y, ev)
	case mouse.DirNone:
		if !in && !w.pressed {
			return changed
		}
		w.Board.PointerMove(x, y, ev)
	default:
		return changed
	}
	return true
}

// handleKey applies a key press and reports whether the view changed.
func (w *Window) handleKey(table map[KeyShortcut]string, e key.Event) bool {
	if txt, ok := w.Board.TextEntry(); ok {
		switch e.Code {
		case key.CodeReturnEnter:
			txt.Blur()
		case key.CodeEscape:
			txt.Cancel()
		case key.CodeDeleteBackspace:
			txt.Backspace()
		default:
			if e.Rune <= 0 || e.Modifiers&key.ModControl != 0 {
				return false
			}
			txt.Insert(e.Rune)
		}
		return true
	}

	action, tool := resolve(table, e)
	if tool != "" {
		if err := w.Board.SetActiveTool(tool); err != nil {
			log.Printf("tool: %v", err)
			return false
		}
		return true
	}
	switch action {
	case ActionUndo:
		w.Board.Undo()
	case ActionRedo:
		w.Board.Redo()
	case ActionClear:
		w.Board.Clear()
	case ActionSidesUp, ActionSidesDown:
		n := w.Board.PolygonSides() + 1
		if action == ActionSidesDown {
			n -= 2
		}
		if err := w.Board.SetPolygonSides(n); err != nil {
			return false
		}
		w.flash(fmt.Sprintf("polygon sides: %d", n))
	case ActionZoom:
		w.fit = !w.fit
	case ActionImage:
		w.Board.PlaceImage(w.imageSource())
	case ActionExport:
		w.export()
	case ActionCopy:
		w.copyImage()
	default:
		return false
	}
	return true
}

func (w *Window) imageSource() imagesrc.Source {
	if w.ImagePath != "" {
		return imagesrc.File(w.ImagePath)
	}
	return imagesrc.Clipboard{}
}

// exportPath returns a timestamped file name in the export directory.
func (w *Window) exportPath() string {
	name := fmt.Sprintf("doodle-%s.png", w.now().Format("20060102-150405"))
	return filepath.Join(w.ExportDir, name)
}

func (w *Window) export() {
	path := w.exportPath()
	if w.ExportDir != "" {
		if err := os.MkdirAll(w.ExportDir, 0o755); err != nil {
			log.Printf("export: %v", err)
			return
		}
	}
	f, err := os.Create(path)
	if err != nil {
		log.Printf("export: %v", err)
		return
	}
	if err := w.Board.WritePNG(f); err != nil {
		f.Close()
		log.Printf("export: %v", err)
		return
	}
	if err := f.Close(); err != nil {
		log.Printf("export: %v", err)
		return
	}
	log.Printf("exported %s", path)
	w.flash("exported " + filepath.Base(path))
	w.Notifier.Export(path)
}

func (w *Window) copyImage() {
	img := w.Board.Image()
	if err := clipboard.WriteImage(img); err != nil {
		log.Printf("copy: %v", err)
		return
	}
	w.flash("image copied to clipboard")
	w.Notifier.Copy("drawing", img)
}

func (w *Window) flash(msg string) {
	w.message = msg
	w.until = w.now().Add(2 * time.Second)
}

func (w *Window) paint(s screen.Screen, win screen.Window, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	buf, err := s.NewBuffer(image.Point{width, height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer buf.Release()
	w.render(buf.RGBA())
	win.Upload(image.Point{}, buf, buf.Bounds())
	win.Publish()
}

// render composes one frame: backdrop and page shadow, checkerboard under
// the canvas, the board surfaces, then the status strip.
func (w *Window) render(dst *image.RGBA) {
	th := w.Board.Theme()
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	w.shadow.draw(dst, w.view)
	view := w.view.Intersect(dst.Bounds())
	drawCheckerboard(dst, view, 8, th.CheckerLight, th.CheckerDark)
	w.Board.Composite(dst, w.view)
	msg := ""
	if w.now().Before(w.until) {
		msg = w.message
	}
	drawStatus(dst, th, statusLine(w.Board, w.fit), msg)
}

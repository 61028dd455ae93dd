// Package script drives a board from a line-oriented command language, so
// drawings can be produced and checked without a window.
package script

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/example/doodle/internal/board"
	"github.com/example/doodle/internal/imagesrc"
	"github.com/example/doodle/internal/style"
	"github.com/example/doodle/internal/tools"
)

// DefaultDragSteps is the number of interpolated moves a drag makes when
// the script does not say.
const DefaultDragSteps = 4

var (
	// ErrUnknownCommand is returned for a command word that is not defined.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command has the wrong arguments.
	ErrUsage = errors.New("usage")
	// ErrNoTextEntry is returned by type and key when no text entry is open.
	ErrNoTextEntry = errors.New("no text entry open")
)

type command struct {
	usage string
	args  int // minimum argument count
	run   func(r *Runner, args []string, raw string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"size":    {"size W H", 2, (*Runner).size},
		"tool":    {"tool NAME", 1, (*Runner).tool},
		"style":   {"style key=value ...", 1, (*Runner).style},
		"sides":   {"sides N", 1, (*Runner).sides},
		"display": {"display W", 1, (*Runner).display},
		"down":    {"down X Y", 2, pointer((*board.Board).PointerDown)},
		"move":    {"move X Y", 2, pointer((*board.Board).PointerMove)},
		"up":      {"up X Y", 2, pointer((*board.Board).PointerUp)},
		"enter":   {"enter X Y", 2, pointer((*board.Board).PointerEnter)},
		"leave":   {"leave X Y", 2, pointer((*board.Board).PointerLeave)},
		"drag":    {"drag X1 Y1 X2 Y2 [steps]", 4, (*Runner).drag},
		"click":   {"click X Y", 2, (*Runner).click},
		"type":    {"type TEXT", 1, (*Runner).typeText},
		"key":     {"key enter|escape|backspace", 1, (*Runner).key},
		"image":   {"image PATH", 1, (*Runner).image},
		"undo":    {"undo", 0, func(r *Runner, _ []string, _ string) error { r.Board.Undo(); return nil }},
		"redo":    {"redo", 0, func(r *Runner, _ []string, _ string) error { r.Board.Redo(); return nil }},
		"clear":   {"clear", 0, func(r *Runner, _ []string, _ string) error { r.Board.Clear(); return nil }},
		"resize":  {"resize W H", 2, (*Runner).resize},
		"export":  {"export PATH", 1, (*Runner).export},
		"items":   {"items", 0, (*Runner).items},
	}
}

// Commands lists the usage line of every command, sorted.
func Commands() []string {
	out := make([]string, 0, len(commands))
	for _, c := range commands {
		out = append(out, c.usage)
	}
	sort.Strings(out)
	return out
}

// Runner executes script lines against a board.
type Runner struct {
	Board *board.Board
	Out   io.Writer

	opts   []board.Option
	logger *slog.Logger
	line   int
}

// New returns a Runner drawing on a board built from opts. Output of the
// items command goes to out.
func New(out io.Writer, opts ...board.Option) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{Board: board.New(opts...), Out: out, opts: opts, logger: slog.New(slog.DiscardHandler)}
}

// SetLogger sets the logger for the runner and its board.
func (r *Runner) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	r.logger = l
	r.Board.SetLogger(l)
}

// Close releases the board.
func (r *Runner) Close() { r.Board.Close() }

// Run executes every line of in, stopping at the first error.
func (r *Runner) Run(in io.Reader) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if err := r.Exec(line); err != nil {
			return err
		}
	}
	return nil
}

// Exec executes a single line. Errors carry the line number, counted over
// every call to Exec on this Runner.
func (r *Runner) Exec(line string) error {
	r.line++
	if err := r.exec(strings.TrimRight(line, "\r")); err != nil {
		return fmt.Errorf("line %d: %w", r.line, err)
	}
	return nil
}

func (r *Runner) exec(line string) error {
	fields := strings.Fields(line)
	for i, f := range fields {
		if strings.HasPrefix(f, "#") {
			fields = fields[:i]
			break
		}
	}
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToLower(fields[0])
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])
	}
	args := fields[1:]
	if len(args) < cmd.args {
		return fmt.Errorf("%w: %s", ErrUsage, cmd.usage)
	}
	raw := strings.TrimSpace(line)
	raw = strings.TrimSpace(raw[len(fields[0]):])
	r.logger.Debug("script", "line", r.line, "cmd", name)
	return cmd.run(r, args, raw)
}

func floats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = f
	}
	return out, nil
}

func ints(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", a)
		}
		out[i] = n
	}
	return out, nil
}

func pointer(fn func(*board.Board, float64, float64, tools.Event)) func(*Runner, []string, string) error {
	return func(r *Runner, args []string, _ string) error {
		v, err := floats(args[:2])
		if err != nil {
			return err
		}
		fn(r.Board, v[0], v[1], tools.Event{})
		return nil
	}
}

// size starts over on a fresh board of the given size.
func (r *Runner) size(args []string, _ string) error {
	v, err := ints(args[:2])
	if err != nil {
		return err
	}
	if v[0] <= 0 || v[1] <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", v[0], v[1])
	}
	r.Board.Close()
	opts := append(append([]board.Option{}, r.opts...), board.WithSize(v[0], v[1]), board.WithLogger(r.logger))
	r.Board = board.New(opts...)
	return nil
}

func (r *Runner) tool(args []string, _ string) error {
	return r.Board.SetActiveTool(strings.ToLower(args[0]))
}

// style accepts key=value pairs. Words without '=' continue the previous
// value, so "font=18px mono" works.
func (r *Runner) style(args []string, _ string) error {
	var keys, values []string
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			if len(values) == 0 {
				return fmt.Errorf("%w: style key=value ...", ErrUsage)
			}
			values[len(values)-1] += " " + a
			continue
		}
		keys = append(keys, k)
		values = append(values, v)
	}
	var p style.Partial
	for i := range keys {
		if err := p.Set(keys[i], values[i]); err != nil {
			return err
		}
	}
	return r.Board.SetStyle(p)
}

func (r *Runner) sides(args []string, _ string) error {
	v, err := ints(args[:1])
	if err != nil {
		return err
	}
	return r.Board.SetPolygonSides(v[0])
}

func (r *Runner) display(args []string, _ string) error {
	v, err := floats(args[:1])
	if err != nil {
		return err
	}
	r.Board.SetDisplaySize(v[0])
	return nil
}

func (r *Runner) drag(args []string, _ string) error {
	steps := DefaultDragSteps
	if len(args) > 4 {
		n, err := strconv.Atoi(args[4])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid step count %q", args[4])
		}
		steps = n
	}
	v, err := floats(args[:4])
	if err != nil {
		return err
	}
	b := r.Board
	b.PointerDown(v[0], v[1], tools.Event{})
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		b.PointerMove(v[0]+(v[2]-v[0])*t, v[1]+(v[3]-v[1])*t, tools.Event{})
	}
	b.PointerUp(v[2], v[3], tools.Event{})
	return nil
}

func (r *Runner) click(args []string, _ string) error {
	v, err := floats(args[:2])
	if err != nil {
		return err
	}
	r.Board.PointerDown(v[0], v[1], tools.Event{})
	r.Board.PointerUp(v[0], v[1], tools.Event{})
	return nil
}

// typeText inserts the rest of the line, spaces included.
func (r *Runner) typeText(_ []string, raw string) error {
	txt, ok := r.Board.TextEntry()
	if !ok {
		return ErrNoTextEntry
	}
	for _, c := range raw {
		txt.Insert(c)
	}
	return nil
}

func (r *Runner) key(args []string, _ string) error {
	txt, ok := r.Board.TextEntry()
	if !ok {
		return ErrNoTextEntry
	}
	switch strings.ToLower(args[0]) {
	case "enter", "return":
		txt.Blur()
	case "escape", "esc":
		txt.Cancel()
	case "backspace":
		txt.Backspace()
	default:
		return fmt.Errorf("%w: key enter|escape|backspace", ErrUsage)
	}
	return nil
}

// image places a picture file and waits for it to load, leaving the image
// tool ready to move or drop it.
func (r *Runner) image(_ []string, raw string) error {
	src := imagesrc.File(raw)
	r.Board.PlaceImage(src)
	r.Board.WaitPending()
	t, ok := r.Board.ActiveTool().(*tools.Image)
	if !ok || t.State() != tools.ImagePlacing {
		return fmt.Errorf("image %s: could not be loaded", src.Name())
	}
	return nil
}

func (r *Runner) resize(args []string, _ string) error {
	v, err := ints(args[:2])
	if err != nil {
		return err
	}
	r.Board.Resize(v[0], v[1])
	return nil
}

func (r *Runner) export(_ []string, raw string) (err error) {
	f, err := os.Create(raw)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export: %w", cerr)
		}
	}()
	if err := r.Board.WritePNG(f); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// items prints one line per committed item.
func (r *Runner) items(_ []string, _ string) error {
	for i, it := range r.Board.Items() {
		kind := "path"
		if it.Raster != nil {
			kind = "raster"
		}
		if _, err := fmt.Fprintf(r.Out, "%d %s %s %s x=%g y=%g w=%g h=%g\n",
			i, it.ID, kind, it.Mode, it.Rect.X, it.Rect.Y, it.Rect.W, it.Rect.H); err != nil {
			return err
		}
	}
	return nil
}

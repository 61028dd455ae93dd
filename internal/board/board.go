// Package board is the drawing engine. It owns the real and draft
// surfaces, the history and the active tool, and turns host pointer events
// into tool events in world coordinates.
//
// World coordinates are the canvas size the board was created with. After
// a resize both surfaces carry a base scale so committed items keep their
// geometry and simply redraw larger or smaller.
package board

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/history"
	"github.com/example/doodle/internal/imagesrc"
	"github.com/example/doodle/internal/item"
	"github.com/example/doodle/internal/style"
	"github.com/example/doodle/internal/theme"
	"github.com/example/doodle/internal/tools"
	"github.com/example/doodle/internal/viewport"
)

// Default canvas geometry.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
	DefaultSides  = 3
	DefaultTool   = "freehand"
	MinSides      = 3
	MaxSides      = 99
)

var (
	// ErrUnknownTool is returned when a tool name is not registered.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidSides is returned for a polygon side count outside 3..99.
	ErrInvalidSides = errors.New("polygon sides out of range")
)

// Option configures a Board.
type Option func(*Board)

// WithSize sets the initial canvas size, which also fixes world space.
func WithSize(w, h int) Option {
	return func(b *Board) {
		if w > 0 && h > 0 {
			b.width, b.height = w, h
		}
	}
}

// WithStyle sets the initial paint style.
func WithStyle(st style.Snapshot) Option { return func(b *Board) { b.style = st } }

// WithHistoryCapacity bounds the number of undo entries.
func WithHistoryCapacity(n int) Option { return func(b *Board) { b.capacity = n } }

// WithPolygonSides sets the regular polygon side count. Values outside
// 3..99 are ignored.
func WithPolygonSides(n int) Option {
	return func(b *Board) {
		if n >= MinSides && n <= MaxSides {
			b.sides = n
		}
	}
}

// WithTheme sets the overlay colours.
func WithTheme(t *theme.Theme) Option { return func(b *Board) { b.theme = t } }

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option { return func(b *Board) { b.logger = l } }

// WithWake registers a callback invoked from a background goroutine when
// an async completion is queued. Hosts use it to schedule RunPending on
// their event loop.
func WithWake(f func()) Option { return func(b *Board) { b.wake = f } }

// WithTool selects the tool active after construction.
func WithTool(name string) Option { return func(b *Board) { b.initialTool = name } }

// Board is single goroutine: every method except the wake callback must be
// called from the goroutine that owns it.
type Board struct {
	real, draft   *canvas.Raster
	width, height int
	worldW        float64
	worldH        float64
	history       *history.Stack
	capacity      int
	style         style.Snapshot
	sides         int
	theme         *theme.Theme
	logger        *slog.Logger

	norm      viewport.Normalizer
	displayed float64

	initialTool string
	tool        tools.Tool
	toolName    string
	factory     tools.Factory
	prevName    string
	prevFactory tools.Factory
	dragging    bool

	ctx      context.Context
	cancel   context.CancelFunc
	wake     func()
	mu       sync.Mutex
	pending  []func()
	inflight sync.WaitGroup
}

var _ tools.Host = (*Board)(nil)

// New returns a board with an empty history entry and the default tool
// active.
func New(opts ...Option) *Board {
	b := &Board{
		width:       DefaultWidth,
		height:      DefaultHeight,
		style:       style.Default(),
		sides:       DefaultSides,
		theme:       theme.Default(),
		initialTool: DefaultTool,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}
	if b.theme == nil {
		b.theme = theme.Default()
	}
	b.ctx, b.cancel = context.WithCancel(context.Background())
	b.worldW, b.worldH = float64(b.width), float64(b.height)
	b.real = canvas.NewRaster(b.width, b.height)
	b.draft = canvas.NewRaster(b.width, b.height)
	b.applyStyle()
	b.history = history.New(b, b.capacity, b.logger)
	b.history.Write(nil)

	if err := b.SetActiveTool(b.initialTool); err != nil {
		b.logger.Warn("default tool unavailable", "tool", b.initialTool, "err", err)
		b.SetActiveTool(DefaultTool)
	}
	return b
}

// Close cancels outstanding async loads.
func (b *Board) Close() {
	b.cancel()
}

// SetLogger replaces the logger. A nil logger discards.
func (b *Board) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	b.logger = l
	b.history.SetLogger(l)
}

// SetActiveTool activates the registered tool called name.
func (b *Board) SetActiveTool(name string) error {
	info, ok := tools.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	b.activate(info.Name, info.Factory)
	return nil
}

// SetActiveFactory activates a tool built by f and reports it as name.
func (b *Board) SetActiveFactory(name string, f tools.Factory) {
	b.activate(name, f)
}

// PlaceImage activates the image tool fed from src.
func (b *Board) PlaceImage(src imagesrc.Source) {
	b.activate(tools.ImageToolName, tools.NewImage(src))
}

func (b *Board) activate(name string, f tools.Factory) {
	if b.tool != nil {
		b.tool.Destroy()
	}
	b.draft.ClearAll()
	b.dragging = false
	if b.toolName != tools.ImageToolName {
		b.prevName, b.prevFactory = b.toolName, b.factory
	}
	b.toolName, b.factory = name, f
	b.tool = nil
	b.tool = f(b)
	b.logger.Debug("tool activated", "tool", name)
}

// resetTool recreates the active tool so pending state is flushed or
// dropped. The image tool is not recreated since that would load its
// source again; the last non-image tool takes over instead.
func (b *Board) resetTool() {
	if b.factory == nil {
		return
	}
	if b.toolName == tools.ImageToolName {
		b.restorePrevious()
		return
	}
	name, f := b.toolName, b.factory
	prevName, prevFactory := b.prevName, b.prevFactory
	b.activate(name, f)
	b.prevName, b.prevFactory = prevName, prevFactory
}

// restorePrevious activates the last non-image tool, or DefaultTool when
// there is none.
func (b *Board) restorePrevious() {
	name, f := b.prevName, b.prevFactory
	if f == nil {
		info, _ := tools.Lookup(DefaultTool)
		name, f = info.Name, info.Factory
	}
	b.activate(name, f)
}

// ActiveTool returns the active tool.
func (b *Board) ActiveTool() tools.Tool { return b.tool }

// ActiveToolName returns the name the active tool was activated under.
func (b *Board) ActiveToolName() string { return b.toolName }

// TextEntry returns the active text tool while it is editing.
func (b *Board) TextEntry() (*tools.Text, bool) {
	t, ok := b.tool.(*tools.Text)
	if !ok || !t.Editing() {
		return nil, false
	}
	return t, true
}

// SetStyle validates and applies a partial style. On error nothing
// changes.
func (b *Board) SetStyle(p style.Partial) error {
	st, err := b.style.Apply(p)
	if err != nil {
		return err
	}
	b.style = st
	b.applyStyle()
	return nil
}

// applyStyle pushes the style to both surfaces. The real surface keeps its
// composite so an active eraser stays an eraser.
func (b *Board) applyStyle() {
	composite := b.real.StyleState().Composite
	b.real.SetStyle(b.style)
	b.real.SetComposite(composite)
	b.draft.SetStyle(b.style)
}

// SetPolygonSides sets the regular polygon side count.
func (b *Board) SetPolygonSides(n int) error {
	if n < MinSides || n > MaxSides {
		return fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidSides, n, MinSides, MaxSides)
	}
	b.sides = n
	return nil
}

// SetTheme replaces the overlay colours.
func (b *Board) SetTheme(t *theme.Theme) {
	if t != nil {
		b.theme = t
	}
}

// Items returns the items of the current history entry. Read only.
func (b *Board) Items() []*item.Item { return b.history.Items() }

// History exposes the undo stack.
func (b *Board) History() *history.Stack { return b.history }

// Size returns the canvas backing size in pixels.
func (b *Board) Size() (w, h int) { return b.width, b.height }

// Normalizer returns the display to canvas mapping.
func (b *Board) Normalizer() *viewport.Normalizer { return &b.norm }

// point maps display pixels to world coordinates.
func (b *Board) point(x, y float64) geom.Point {
	p := b.norm.Map(x, y)
	return b.real.Base().Invert().Apply(p)
}

func (b *Board) event(x, y float64, ev tools.Event) tools.Event {
	ev.Screen = geom.Pt(x, y)
	return ev
}

// PointerDown delivers a button press at display position (x, y).
func (b *Board) PointerDown(x, y float64, ev tools.Event) {
	b.dragging = true
	b.tool.PointerDown(b.point(x, y), b.event(x, y, ev))
}

// PointerMove delivers motion, and a drag while a button is held.
func (b *Board) PointerMove(x, y float64, ev tools.Event) {
	p, ev := b.point(x, y), b.event(x, y, ev)
	b.tool.PointerMove(p, ev)
	if b.dragging {
		b.tool.PointerDrag(p, ev)
	}
}

// PointerUp delivers a button release.
func (b *Board) PointerUp(x, y float64, ev tools.Event) {
	b.dragging = false
	b.tool.PointerUp(b.point(x, y), b.event(x, y, ev))
}

// PointerEnter delivers the pointer entering the canvas.
func (b *Board) PointerEnter(x, y float64, ev tools.Event) {
	b.tool.PointerEnter(b.point(x, y), b.event(x, y, ev))
}

// PointerLeave delivers the pointer leaving the canvas. Any drag ends.
func (b *Board) PointerLeave(x, y float64, ev tools.Event) {
	b.tool.PointerLeave(b.point(x, y), b.event(x, y, ev))
	b.dragging = false
}

// Undo steps back one history entry.
func (b *Board) Undo() bool {
	b.resetTool()
	snap, ok := b.history.Undo()
	if !ok {
		return false
	}
	b.restore(snap)
	return true
}

// Redo steps forward one history entry.
func (b *Board) Redo() bool {
	b.resetTool()
	snap, ok := b.history.Redo()
	if !ok {
		return false
	}
	b.restore(snap)
	return true
}

// restore shows the current entry: its snapshot when the size still
// matches, otherwise a redraw from its items.
func (b *Board) restore(snap *image.RGBA) {
	if snap != nil && snap.Bounds().Size() == b.real.Bounds().Size() {
		b.real.Blit(snap, image.Point{})
		return
	}
	b.Redraw(b.history.Items())
	b.history.Refresh()
}

// Clear wipes the canvas as a new history entry.
func (b *Board) Clear() {
	b.resetTool()
	b.real.ClearAll()
	b.history.PushEmpty()
}

// Resize changes the backing size and redraws every item at the new
// scale. Changes under a pixel are ignored.
func (b *Board) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == b.width && h == b.height) {
		return
	}
	b.resetTool()
	b.width, b.height = w, h
	base := geom.Scaling(float64(w)/b.worldW, float64(h)/b.worldH)
	for _, s := range []*canvas.Raster{b.real, b.draft} {
		s.Resize(w, h)
		s.SetBase(base)
	}
	b.applyStyle()
	b.Redraw(b.history.Items())
	b.history.Refresh()
	if b.displayed > 0 {
		b.norm.Update(b.width, b.displayed)
	}
	b.logger.Debug("board resized", "width", w, "height", h)
}

// SetDisplaySize records the width the canvas is shown at.
func (b *Board) SetDisplaySize(width float64) {
	if width <= 0 {
		return
	}
	b.displayed = width
	b.norm.Update(b.width, width)
}

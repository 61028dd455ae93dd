// Package tools implements the interactive drawing tools. Each tool is a
// small state machine fed with pointer events by the board. Previews go to
// the draft surface; finished shapes are committed as items.
package tools

import (
	"context"
	"image"
	"log/slog"
	"sort"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/item"
	"github.com/example/doodle/internal/style"
	"github.com/example/doodle/internal/theme"
)

// Event carries the raw host event details a tool may need besides the
// normalized canvas point.
type Event struct {
	// Screen is the pointer position in display pixels.
	Screen geom.Point
	Button int
	Shift  bool
	Ctrl   bool
}

// Tool receives pointer events while it is the active tool. Drag is only
// delivered while a button is held; Move is always delivered.
type Tool interface {
	PointerDown(p geom.Point, ev Event)
	PointerDrag(p geom.Point, ev Event)
	PointerMove(p geom.Point, ev Event)
	PointerUp(p geom.Point, ev Event)
	PointerEnter(p geom.Point, ev Event)
	PointerLeave(p geom.Point, ev Event)
	// Destroy is called when the tool is deactivated. Pending work that
	// must not be lost is committed; anything else is dropped.
	Destroy()
}

// Host is the part of the board a tool talks to.
type Host interface {
	Real() canvas.Surface
	Draft() canvas.Surface
	Style() style.Snapshot
	// Commit records it in history. The tool is responsible for having
	// drawn it to the real surface and must not touch it afterwards.
	Commit(it *item.Item)
	// PickItem removes the topmost item under p from the scene and hands
	// it over uncommitted.
	PickItem(p geom.Point) *item.Item
	PolygonSides() int
	// CanvasSize is the drawing area in world units.
	CanvasSize() (w, h float64)
	Theme() *theme.Theme
	Logger() *slog.Logger
	// Async runs load off the event loop and calls done back on it.
	Async(load func(ctx context.Context) (image.Image, error), done func(image.Image, error))
	// Abort reverts the activation of t, restoring the previous tool.
	Abort(t Tool)
}

// Factory constructs a tool bound to a host.
type Factory func(h Host) Tool

// Base provides no-op pointer handlers for embedding.
type Base struct{}

func (Base) PointerDown(geom.Point, Event)  {}
func (Base) PointerDrag(geom.Point, Event)  {}
func (Base) PointerMove(geom.Point, Event)  {}
func (Base) PointerUp(geom.Point, Event)    {}
func (Base) PointerEnter(geom.Point, Event) {}
func (Base) PointerLeave(geom.Point, Event) {}
func (Base) Destroy()                       {}

// Info describes a registered tool.
type Info struct {
	Name    string
	Keys    []rune
	Summary string
	Factory Factory
}

var registry = map[string]Info{
	"freehand":  {"freehand", []rune{'f'}, "freehand line", NewFreehand},
	"line":      {"line", []rune{'s'}, "straight line", NewLine},
	"rect":      {"rect", []rune{'r'}, "rectangle", NewRect},
	"circle":    {"circle", []rune{'c'}, "circle from centre", NewCircle},
	"ellipse":   {"ellipse", []rune{'l'}, "ellipse from centre", NewEllipse},
	"quadratic": {"quadratic", []rune{'q'}, "quadratic curve", NewQuadratic},
	"cubic":     {"cubic", []rune{'b', 'u'}, "cubic bezier curve", NewCubic},
	"polygon":   {"polygon", []rune{'p'}, "regular polygon", NewPolygon},
	"irregular": {"irregular", []rune{'i'}, "irregular polygon", NewIrregular},
	"text":      {"text", []rune{'t'}, "text", NewText},
	"eraser":    {"eraser", []rune{'e'}, "eraser", NewEraser},
	"select":    {"select", []rune{'m'}, "select and move items", NewSelect},
}

// ImageToolName is the name the board uses for image placement, which
// needs a source and so is not in the registry.
const ImageToolName = "image"

// ImageToolKey is the shortcut for image placement.
const ImageToolKey = 'a'

// Lookup returns the registered tool called name.
func Lookup(name string) (Info, bool) {
	info, ok := registry[name]
	return info, ok
}

// ForKey returns the tool bound to shortcut key r.
func ForKey(r rune) (Info, bool) {
	for _, info := range registry {
		for _, k := range info.Keys {
			if k == r {
				return info, true
			}
		}
	}
	return Info{}, false
}

// All returns every registered tool sorted by name.
func All() []Info {
	out := make([]Info, 0, len(registry))
	for _, info := range registry {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// paint fills and strokes p on s according to mode.
func paint(s canvas.Surface, p *canvas.Path, mode item.Mode) {
	switch mode {
	case item.Fill:
		s.Fill(p)
	case item.Stroke:
		s.Stroke(p)
	case item.StrokeFill:
		s.Stroke(p)
		s.Fill(p)
	default:
		s.Fill(p)
		s.Stroke(p)
	}
}

// preview clears the draft surface and draws p on it with the active style.
func preview(h Host, p *canvas.Path, mode item.Mode) {
	d := h.Draft()
	d.ClearAll()
	d.Save()
	d.SetStyle(h.Style())
	paint(d, p, mode)
	d.Restore()
}

// commit draws it to the real surface and records it.
func commit(h Host, it *item.Item) {
	h.Draft().ClearAll()
	it.Draw(h.Real())
	h.Commit(it)
}

func outline(h Host) item.Outline {
	o := item.DefaultOutline()
	if th := h.Theme(); th != nil {
		o.Color = th.SelectionOutline
	}
	return o
}

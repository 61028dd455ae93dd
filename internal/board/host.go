package board

import (
	"context"
	"image"
	"log/slog"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/item"
	"github.com/example/doodle/internal/style"
	"github.com/example/doodle/internal/theme"
	"github.com/example/doodle/internal/tools"
)

func (b *Board) Real() canvas.Surface  { return b.real }
func (b *Board) Draft() canvas.Surface { return b.draft }
func (b *Board) Style() style.Snapshot { return b.style }
func (b *Board) PolygonSides() int     { return b.sides }
func (b *Board) Theme() *theme.Theme   { return b.theme }
func (b *Board) Logger() *slog.Logger  { return b.logger }

// CanvasSize returns the world size.
func (b *Board) CanvasSize() (w, h float64) { return b.worldW, b.worldH }

// Commit records it as a new history entry.
func (b *Board) Commit(it *item.Item) {
	b.logger.Debug("item committed", "tool", b.toolName, "id", it.ID, "mode", it.Mode)
	b.history.Write(it)
}

// PickItem lifts the topmost item under p out of the scene.
func (b *Board) PickItem(p geom.Point) *item.Item {
	it := b.history.RemoveItem(p)
	if it != nil {
		b.logger.Debug("item picked up", "id", it.ID)
	}
	return it
}

// Abort undoes the activation of t when it is still the active tool.
func (b *Board) Abort(t tools.Tool) {
	if b.tool != t {
		return
	}
	b.restorePrevious()
	b.logger.Debug("tool activation aborted", "restored", b.toolName)
}

// Async runs load on its own goroutine and queues done for RunPending.
func (b *Board) Async(load func(ctx context.Context) (image.Image, error), done func(image.Image, error)) {
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		img, err := load(b.ctx)
		b.mu.Lock()
		b.pending = append(b.pending, func() { done(img, err) })
		b.mu.Unlock()
		if b.wake != nil {
			b.wake()
		}
	}()
}

// RunPending runs queued async completions and returns how many ran.
func (b *Board) RunPending() int {
	b.mu.Lock()
	queued := b.pending
	b.pending = nil
	b.mu.Unlock()
	for _, f := range queued {
		f()
	}
	return len(queued)
}

// WaitPending blocks until every async load has finished, then runs the
// completions.
func (b *Board) WaitPending() int {
	b.inflight.Wait()
	return b.RunPending()
}

// Capture copies the real surface.
func (b *Board) Capture() *image.RGBA {
	return b.real.Capture(b.real.Bounds())
}

// Redraw repaints the real surface from items.
func (b *Board) Redraw(items []*item.Item) {
	b.real.ClearAll()
	for _, it := range items {
		it.Draw(b.real)
	}
}

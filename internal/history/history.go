// Package history implements the bounded linear undo stack. Each entry
// keeps both the ordered item list, which is authoritative for redrawing at
// a new size, and a raster snapshot used for constant time undo and redo at
// a stable size.
package history

import (
	"image"
	"log/slog"

	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/item"
	"github.com/example/doodle/internal/style"
)

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 50

// Scene is the drawing the stack records.
type Scene interface {
	// Capture returns a copy of the whole real surface.
	Capture() *image.RGBA
	// Redraw replaces the real surface contents with items.
	Redraw(items []*item.Item)
}

// Entry is one recorded scene state.
type Entry struct {
	Items    []*item.Item
	Snapshot *image.RGBA
}

// Stack is a cursor indexed list of entries.
type Stack struct {
	scene    Scene
	capacity int
	entries  []Entry
	cursor   int
	logger   *slog.Logger

	// pickedUp is the index of the entry written by RemoveItem, or -1.
	pickedUp int
	// picked is the lifted item and pickedAt its former stack position.
	picked   *item.Item
	pickedAt int
}

// New returns an empty stack. A capacity below one selects DefaultCapacity.
func New(scene Scene, capacity int, logger *slog.Logger) *Stack {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Stack{scene: scene, capacity: capacity, cursor: -1, pickedUp: -1, logger: logger}
}

// SetLogger replaces the logger. A nil logger discards.
func (s *Stack) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	s.logger = l
}

// Write records the current items plus it, when it is not nil, together
// with a fresh snapshot of the scene. The item dropped after a pick up
// goes back to its former position, below anything drawn after it.
func (s *Stack) Write(it *item.Item) {
	items := cloneItems(s.Items())
	restacked := false
	if it != nil {
		if s.pickedUp == s.cursor && s.picked != nil && it.ID == s.picked.ID && s.pickedAt < len(items) {
			items = append(items[:s.pickedAt], append([]*item.Item{it}, items[s.pickedAt:]...)...)
			restacked = true
		} else {
			items = append(items, it)
		}
	}
	if s.pickedUp >= 0 {
		// the pick up entry is replaced, not stacked on
		if s.pickedUp == s.cursor {
			s.cursor--
		}
		s.clearPick()
	}
	if restacked {
		s.scene.Redraw(items)
	}
	s.push(items)
}

func (s *Stack) clearPick() {
	s.pickedUp = -1
	s.picked = nil
	s.pickedAt = 0
}

// PushEmpty records an entry with no items, as after clearing the canvas.
func (s *Stack) PushEmpty() {
	s.clearPick()
	s.push(nil)
}

func (s *Stack) push(items []*item.Item) {
	snap := s.scene.Capture()
	s.entries = append(s.entries[:s.cursor+1], Entry{Items: items, Snapshot: snap})
	for len(s.entries) > s.capacity {
		s.entries[0] = Entry{}
		s.entries = s.entries[1:]
		s.logger.Debug("history evicted oldest entry", "capacity", s.capacity)
	}
	s.cursor = len(s.entries) - 1
	s.logger.Debug("history write", "cursor", s.cursor, "items", len(items))
}

// Undo moves the cursor back one entry and returns its snapshot. It is a
// no-op at the first entry or when nothing has been written.
func (s *Stack) Undo() (*image.RGBA, bool) {
	if s.cursor <= 0 {
		return nil, false
	}
	s.cursor--
	return s.entries[s.cursor].Snapshot, true
}

// Redo moves the cursor forward one entry and returns its snapshot. It is
// a no-op at the tail.
func (s *Stack) Redo() (*image.RGBA, bool) {
	if s.cursor < 0 || s.cursor >= len(s.entries)-1 {
		return nil, false
	}
	s.cursor++
	return s.entries[s.cursor].Snapshot, true
}

// RemoveItem picks up the topmost item under p. The remaining items are
// redrawn and recorded as a new entry, and the item is returned to the
// caller uncommitted. The next Write replaces that entry so a pick up and
// drop costs a single history step, and puts the item back at index i.
// Eraser strokes are never picked.
func (s *Stack) RemoveItem(p geom.Point) *item.Item {
	items := s.Items()
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Style.Composite == style.DestinationOut || !items[i].HitTest(p) {
			continue
		}
		rest := cloneItems(items)
		picked := rest[i]
		rest = append(rest[:i], rest[i+1:]...)
		s.scene.Redraw(rest)
		s.clearPick()
		s.push(rest)
		s.pickedUp = s.cursor
		s.picked, s.pickedAt = picked, i
		s.logger.Debug("history picked up item", "id", picked.ID)
		return picked
	}
	return nil
}

// Refresh recaptures the snapshot of the current entry, for use after the
// scene has been rerendered at a new size.
func (s *Stack) Refresh() {
	if s.cursor < 0 {
		return
	}
	s.entries[s.cursor].Snapshot = s.scene.Capture()
}

// Items returns the item list of the current entry. Callers must treat it
// as read only.
func (s *Stack) Items() []*item.Item {
	if s.cursor < 0 {
		return nil
	}
	return s.entries[s.cursor].Items
}

// Current returns the entry under the cursor.
func (s *Stack) Current() (Entry, bool) {
	if s.cursor < 0 {
		return Entry{}, false
	}
	return s.entries[s.cursor], true
}

// Len reports the number of stored entries.
func (s *Stack) Len() int { return len(s.entries) }

// Cursor reports the current index, or -1 before the first write.
func (s *Stack) Cursor() int { return s.cursor }

// Capacity reports the maximum number of entries.
func (s *Stack) Capacity() int { return s.capacity }

// CanUndo reports whether Undo would move the cursor.
func (s *Stack) CanUndo() bool { return s.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (s *Stack) CanRedo() bool { return s.cursor >= 0 && s.cursor < len(s.entries)-1 }

func cloneItems(items []*item.Item) []*item.Item {
	out := make([]*item.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

package history

import (
	"image"
	"testing"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/item"
	"github.com/example/doodle/internal/style"
)

// fakeScene stamps each capture with a running serial number in its first
// pixel so snapshots can be told apart.
type fakeScene struct {
	serial  uint8
	redraws [][]*item.Item
}

func (f *fakeScene) Capture() *image.RGBA {
	f.serial++
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[0] = f.serial
	return img
}

func (f *fakeScene) Redraw(items []*item.Item) { f.redraws = append(f.redraws, items) }

func square(x, y float64) *item.Item {
	p := canvas.NewPath()
	p.Rect(x, y, 10, 10)
	return item.NewPath(p, geom.Rect{X: x, Y: y, W: 10, H: 10}, style.Default(), item.FillStroke)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := New(&fakeScene{}, 0, nil)
	for i := 0; i < 5; i++ {
		s.Write(square(float64(i*20), 0))
	}
	for undos := 1; undos < 5; undos++ {
		before, _ := s.Current()
		snap, ok := s.Undo()
		if !ok || snap == nil {
			t.Fatalf("undo %d failed", undos)
		}
		after, ok := s.Redo()
		if !ok || after != before.Snapshot {
			t.Fatalf("redo did not restore the snapshot present before undo")
		}
		s.Undo()
	}
}

func TestUndoNoopAtStart(t *testing.T) {
	s := New(&fakeScene{}, 0, nil)
	if _, ok := s.Undo(); ok {
		t.Fatalf("undo with no history should be a no-op")
	}
	if _, ok := s.Redo(); ok {
		t.Fatalf("redo with no history should be a no-op")
	}
	s.Write(nil)
	if _, ok := s.Undo(); ok {
		t.Fatalf("undo at the first entry should be a no-op")
	}
	if s.Cursor() != 0 {
		t.Fatalf("cursor moved: %d", s.Cursor())
	}
}

func TestWriteAfterUndoDiscardsRedo(t *testing.T) {
	s := New(&fakeScene{}, 0, nil)
	s.Write(nil)
	s.Write(square(0, 0))
	s.Write(square(20, 0))
	s.Undo()
	s.Undo()
	s.Write(square(40, 0))
	if s.Len() != 2 {
		t.Fatalf("expected truncated stack of 2, got %d", s.Len())
	}
	if s.CanRedo() {
		t.Fatalf("redo should be unavailable after a write")
	}
	if got := len(s.Items()); got != 1 {
		t.Fatalf("expected one item, got %d", got)
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	scene := &fakeScene{}
	s := New(scene, 3, nil)
	for i := 0; i < 5; i++ {
		s.Write(square(float64(i), 0))
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}
	if s.Cursor() != 2 {
		t.Fatalf("cursor should sit at the tail, got %d", s.Cursor())
	}
	s.Undo()
	snap, _ := s.Undo()
	if snap.Pix[0] != 3 {
		t.Fatalf("oldest surviving snapshot should be the third write, got %d", snap.Pix[0])
	}
	if _, ok := s.Undo(); ok {
		t.Fatalf("evicted entries must not be reachable")
	}
}

func TestEntriesDoNotAlias(t *testing.T) {
	s := New(&fakeScene{}, 0, nil)
	s.Write(square(0, 0))
	s.Write(nil)
	s.Items()[0].Move(50, 50)
	s.Undo()
	if s.Items()[0].Offset != (geom.Point{}) {
		t.Fatalf("moving an item in one entry changed another entry")
	}
}

func TestPickUpAndDropIsOneEntry(t *testing.T) {
	scene := &fakeScene{}
	s := New(scene, 0, nil)
	s.Write(nil)
	s.Write(square(0, 0))
	s.Write(square(50, 0))
	before := s.Len()

	picked := s.RemoveItem(geom.Pt(55, 5))
	if picked == nil {
		t.Fatalf("expected to pick the top square")
	}
	if len(scene.redraws) != 1 || len(scene.redraws[0]) != 1 {
		t.Fatalf("remaining items should be redrawn once")
	}
	s.Write(picked)
	if s.Len() != before+1 {
		t.Fatalf("pick up and drop should add one entry, got %d -> %d", before, s.Len())
	}
	if got := len(s.Items()); got != 2 {
		t.Fatalf("dropped item should be back in the list, got %d items", got)
	}
	s.Write(square(80, 80))
	if s.Len() != before+2 {
		t.Fatalf("flag must only suppress one write")
	}
}

func TestDropKeepsStackPosition(t *testing.T) {
	scene := &fakeScene{}
	s := New(scene, 0, nil)
	s.Write(nil)
	under := square(0, 0)
	er := square(0, 0)
	er.Style.Composite = style.DestinationOut
	top := square(50, 0)
	s.Write(under)
	s.Write(er)
	s.Write(top)

	picked := s.RemoveItem(geom.Pt(5, 5))
	if picked == nil || picked.ID != under.ID {
		t.Fatalf("expected to pick the bottom square, got %+v", picked)
	}
	s.Write(picked)
	items := s.Items()
	if len(items) != 3 || items[0].ID != under.ID || items[1].ID != er.ID || items[2].ID != top.ID {
		t.Fatalf("dropped item should return below the eraser: %+v", items)
	}
	if last := scene.redraws[len(scene.redraws)-1]; len(last) != 3 {
		t.Fatalf("restacked drop should redraw every item, got %d", len(last))
	}
}

func TestPickUpThenUndoKeepsHistory(t *testing.T) {
	s := New(&fakeScene{}, 0, nil)
	s.Write(nil)
	s.Write(square(0, 0))
	picked := s.RemoveItem(geom.Pt(5, 5))
	if picked == nil {
		t.Fatalf("expected a pick")
	}
	s.Undo()
	s.Write(picked)
	if s.Len() != 3 {
		t.Fatalf("entry under the cursor must survive, got %d entries", s.Len())
	}
}

func TestRemoveItemMissAndEraser(t *testing.T) {
	s := New(&fakeScene{}, 0, nil)
	s.Write(nil)
	er := square(0, 0)
	er.Style.Composite = style.DestinationOut
	s.Write(er)
	if s.RemoveItem(geom.Pt(5, 5)) != nil {
		t.Fatalf("eraser strokes must not be picked")
	}
	if s.RemoveItem(geom.Pt(500, 500)) != nil {
		t.Fatalf("miss should return nil")
	}
	if s.Len() != 2 {
		t.Fatalf("misses must not write")
	}
}

func TestPushEmpty(t *testing.T) {
	s := New(&fakeScene{}, 0, nil)
	s.Write(square(0, 0))
	s.PushEmpty()
	if len(s.Items()) != 0 {
		t.Fatalf("expected empty entry")
	}
	s.Undo()
	if len(s.Items()) != 1 {
		t.Fatalf("undo should restore the item")
	}
}

package tools

import (
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/item"
)

// SelectState is the state of the select tool.
type SelectState int

const (
	SelectIdle SelectState = iota
	SelectHolding
	SelectMoving
)

// Select picks up the topmost item under a press and holds it on the draft
// surface, where it can be dragged. The next press outside the item drops
// it back into the scene.
type Select struct {
	Base
	h      Host
	state  SelectState
	held   *item.Item
	anchor geom.Point
}

// NewSelect returns the select tool.
func NewSelect(h Host) Tool { return &Select{h: h} }

// State reports the current state.
func (s *Select) State() SelectState { return s.state }

// Held returns the item being held, if any.
func (s *Select) Held() *item.Item { return s.held }

func (s *Select) PointerDown(p geom.Point, _ Event) {
	if s.held != nil && s.held.HitTest(p) {
		s.state = SelectMoving
		s.anchor = p
		return
	}
	s.drop()
	if it := s.h.PickItem(p); it != nil {
		// the press that picks an item can drag it straight away
		s.held = it
		s.state = SelectMoving
		s.anchor = p
		s.render()
	}
}

func (s *Select) PointerDrag(p geom.Point, _ Event) {
	if s.state != SelectMoving {
		return
	}
	s.held.Move(p.X-s.anchor.X, p.Y-s.anchor.Y)
	s.anchor = p
	s.render()
}

func (s *Select) PointerUp(p geom.Point, ev Event) {
	if s.state != SelectMoving {
		return
	}
	s.PointerDrag(p, ev)
	s.state = SelectHolding
}

func (s *Select) Destroy() {
	s.drop()
	s.h.Draft().ClearAll()
}

func (s *Select) drop() {
	if s.held == nil {
		return
	}
	it := s.held
	s.held = nil
	s.state = SelectIdle
	commit(s.h, it)
}

func (s *Select) render() {
	d := s.h.Draft()
	d.ClearAll()
	s.held.Draw(d)
	s.held.DrawSelection(d, outline(s.h))
}

package tools

import (
	"strings"

	"github.com/example/doodle/internal/canvas"
	"github.com/example/doodle/internal/geom"
	"github.com/example/doodle/internal/glyph"
	"github.com/example/doodle/internal/item"
	"github.com/example/doodle/internal/style"
)

// TextState is the state of the text tool.
type TextState int

const (
	TextIdle TextState = iota
	TextEditing
)

// Text places a line of text. A click opens an entry at the pointer; keys
// routed from the host edit it and a blur commits the glyph outlines with
// the baseline on the click point, in the style current at the blur.
type Text struct {
	Base
	h      Host
	state  TextState
	anchor geom.Point
	screen geom.Point
	buf    []rune
}

// NewText returns the text tool.
func NewText(h Host) Tool { return &Text{h: h} }

// State reports the current state.
func (t *Text) State() TextState { return t.state }

// Editing reports whether key input should be routed to the tool.
func (t *Text) Editing() bool { return t.state == TextEditing }

// Entry returns the pending text and where the entry sits in canvas and
// screen space.
func (t *Text) Entry() (text string, anchor, screen geom.Point) {
	return string(t.buf), t.anchor, t.screen
}

func (t *Text) PointerDown(p geom.Point, ev Event) {
	if t.state == TextEditing {
		t.Blur()
		return
	}
	t.state = TextEditing
	t.anchor = p
	t.screen = ev.Screen
	t.buf = t.buf[:0]
	t.render()
}

// Insert appends r to the pending text.
func (t *Text) Insert(r rune) {
	if t.state != TextEditing || r < ' ' {
		return
	}
	t.buf = append(t.buf, r)
	t.render()
}

// Backspace deletes the last rune.
func (t *Text) Backspace() {
	if t.state != TextEditing || len(t.buf) == 0 {
		return
	}
	t.buf = t.buf[:len(t.buf)-1]
	t.render()
}

// Cancel closes the entry without committing.
func (t *Text) Cancel() {
	t.state = TextIdle
	t.buf = t.buf[:0]
	t.h.Draft().ClearAll()
}

// Blur closes the entry and commits the text if there is any.
func (t *Text) Blur() {
	if t.state != TextEditing {
		return
	}
	text := string(t.buf)
	t.Cancel()
	if strings.TrimSpace(text) == "" {
		return
	}
	st := t.h.Style()
	path, _, err := glyph.Outline(text, st.Font, t.anchor)
	if err != nil {
		t.h.Logger().Warn("text outline failed", "err", err)
		return
	}
	if path.Empty() {
		return
	}
	r := path.Bounds()
	if r.Empty() {
		return
	}
	commit(t.h, item.NewPath(path, r, st, item.Fill))
}

func (t *Text) Destroy() { t.Blur() }

func (t *Text) render() {
	d := t.h.Draft()
	d.ClearAll()
	d.Save()
	defer d.Restore()
	st := t.h.Style()
	d.SetStyle(st)

	advance := 0.0
	if len(t.buf) > 0 {
		path, adv, err := glyph.Outline(string(t.buf), st.Font, t.anchor)
		if err != nil {
			t.h.Logger().Warn("text outline failed", "err", err)
		} else {
			d.Fill(path)
			advance = adv
		}
	}

	ascent, descent, err := glyph.Metrics(st.Font)
	if err != nil {
		ascent, descent = st.Font.Size, 0
	}
	caret := style.Default()
	caret.LineWidth = 1
	caret.LineCap = style.CapButt
	if th := t.h.Theme(); th != nil {
		caret.StrokeColor = th.Caret
	}
	x := t.anchor.X + advance + 1
	c := canvas.NewPath()
	c.MoveTo(x, t.anchor.Y-ascent)
	c.LineTo(x, t.anchor.Y+descent)
	d.SetStyle(caret)
	d.Stroke(c)
}

package host

import (
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/doodle/internal/tools"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// Action names bound in the shortcut table.
const (
	ActionUndo      = "undo"
	ActionRedo      = "redo"
	ActionClear     = "clear"
	ActionExport    = "export"
	ActionCopy      = "copy"
	ActionSidesUp   = "sides+"
	ActionSidesDown = "sides-"
	ActionZoom      = "zoom"
	ActionImage     = "image"
)

const modMask = key.ModControl | key.ModShift

// Shortcuts returns the fixed shortcut table. Tool letters are resolved
// separately through the tool registry.
func Shortcuts() map[KeyShortcut]string {
	return map[KeyShortcut]string{
		{Rune: 'z', Modifiers: key.ModControl}:                ActionUndo,
		{Rune: 'y', Modifiers: key.ModControl}:                ActionRedo,
		{Rune: 'c', Modifiers: key.ModControl}:                ActionClear,
		{Rune: 'c', Modifiers: key.ModControl | key.ModShift}: ActionCopy,
		{Rune: 's', Modifiers: key.ModControl}:                ActionExport,
		{Rune: '+'}:                                           ActionSidesUp,
		{Rune: '+', Modifiers: key.ModShift}:                  ActionSidesUp,
		{Rune: '='}:                                           ActionSidesUp,
		{Rune: '-'}:                                           ActionSidesDown,
		{Rune: ' '}:                                           ActionZoom,
		{Rune: tools.ImageToolKey}:                            ActionImage,
	}
}

// shortcutFor normalises a key event into a table lookup key. Control
// combinations may arrive as control characters, so they are folded back
// to their letter.
func shortcutFor(e key.Event) KeyShortcut {
	r := e.Rune
	mods := e.Modifiers & modMask
	if mods&key.ModControl != 0 && r > 0 && r < ' ' {
		r += 'a' - 1
	}
	if r <= 0 {
		return KeyShortcut{Code: e.Code, Modifiers: mods}
	}
	return KeyShortcut{Rune: unicode.ToLower(r), Modifiers: mods}
}

// resolve returns the action bound to e, or the tool it selects.
func resolve(table map[KeyShortcut]string, e key.Event) (action, tool string) {
	ks := shortcutFor(e)
	if a, ok := table[ks]; ok {
		return a, ""
	}
	if ks.Rune == 0 || ks.Modifiers&key.ModControl != 0 {
		return "", ""
	}
	if info, ok := tools.ForKey(ks.Rune); ok {
		return "", info.Name
	}
	return "", ""
}

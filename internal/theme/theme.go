package theme

import (
	"image/color"
)

// Theme defines the colours used for everything the board draws that is
// not part of the picture: selection outlines, the polygon close marker,
// the text caret and the host window chrome.
type Theme struct {
	Name string

	// Window
	Background       color.RGBA // behind the canvas when it does not fill the window
	StatusBackground color.RGBA
	StatusText       color.RGBA

	// Canvas backdrop, shown through transparent pixels
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Overlay decorations
	SelectionOutline color.RGBA // dashed outline around held and placed items
	MarkerStroke     color.RGBA // ring around the first irregular polygon vertex
	MarkerFill       color.RGBA
	Caret            color.RGBA // text entry caret
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{220, 220, 220, 255},
		StatusBackground: color.RGBA{200, 200, 200, 255},
		StatusText:       color.RGBA{0, 0, 0, 255},
		CheckerLight:     color.RGBA{255, 255, 255, 255},
		CheckerDark:      color.RGBA{230, 230, 230, 255},
		SelectionOutline: color.RGBA{128, 128, 128, 255},
		MarkerStroke:     color.RGBA{0, 0, 0, 255},
		MarkerFill:       color.RGBA{255, 255, 255, 255},
		Caret:            color.RGBA{0, 0, 0, 255},
	}
}

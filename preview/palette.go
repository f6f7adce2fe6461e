package preview

import (
	"image/color"

	"github.com/bloodmagesoftware/summit/grid"
)

var (
	Background = color.NRGBA{R: 24, G: 22, B: 34, A: 255}
	RoomFill   = color.NRGBA{R: 52, G: 48, B: 72, A: 255}
	Infill     = color.NRGBA{R: 40, G: 36, B: 60, A: 255}
	GridLine   = color.NRGBA{R: 255, G: 255, B: 255, A: 24}
	Outline    = color.NRGBA{R: 255, G: 255, B: 255, A: 96}
	Selected   = color.NRGBA{R: 255, G: 210, B: 80, A: 255}
	Label      = color.NRGBA{R: 235, G: 235, B: 245, A: 255}
)

var tileColors = map[rune]color.NRGBA{
	'1': {R: 156, G: 102, B: 31, A: 255},
	'2': {R: 70, G: 120, B: 200, A: 255},
	'3': {R: 130, G: 130, B: 130, A: 255},
	'4': {R: 100, G: 130, B: 100, A: 255},
}

var otherSolid = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

// TileColor returns the fill for a tile character. ok is false for empty
// cells, which are not drawn. Solid cells surrounded on all sides by other
// solids use the infill colour.
func TileColor(ch rune, neighbors grid.Mask) (c color.NRGBA, ok bool) {
	if !grid.IsSolid(ch) {
		return color.NRGBA{}, false
	}
	if neighbors.Internal() {
		return Infill, true
	}
	if c, found := tileColors[ch]; found {
		return c, true
	}
	return otherSolid, true
}

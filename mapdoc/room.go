package mapdoc

import (
	"math"

	"github.com/bloodmagesoftware/summit/grid"
	"github.com/bloodmagesoftware/summit/view"
)

// Room is a rectangular sub-level with its own solids grid. X, Y, Width and
// Height are in world units as declared by the document.
type Room struct {
	Name   string
	X, Y   float64
	Width  float64
	Height float64

	tileSize float64
	grid     *grid.Grid

	// level and solids point into the document tree.
	level  *Node
	solids *Node
}

// Grid returns the room's solids grid. Mutating it directly bypasses the
// document; use Document.SetTile.
func (r *Room) Grid() *grid.Grid { return r.grid }

// Origin returns the room's world-space origin.
func (r *Room) Origin() view.Point { return view.Point{X: r.X, Y: r.Y} }

// Cols is the room width in tiles.
func (r *Room) Cols() int { return r.grid.Width() }

// Rows is the room height in tiles.
func (r *Room) Rows() int { return r.grid.Height() }

// TileSize is the number of world units per tile the room was loaded with.
func (r *Room) TileSize() float64 { return r.tileSize }

// WorldRect is the room's extent in world units.
func (r *Room) WorldRect() view.Rect {
	return view.Rect{
		Min: view.Point{X: r.X, Y: r.Y},
		Max: view.Point{X: r.X + r.Width, Y: r.Y + r.Height},
	}
}

// BoundingRect maps the room's extent to screen space.
func (r *Room) BoundingRect(v view.Transform) view.Rect {
	topLeft := v.WorldToScreen(r.Origin())
	size := v.ScaledTile()
	return view.Rect{
		Min: topLeft,
		Max: view.Point{
			X: topLeft.X + float64(r.Cols())*size,
			Y: topLeft.Y + float64(r.Rows())*size,
		},
	}
}

// ContainsScreenPoint reports whether p falls inside the room on screen.
func (r *Room) ContainsScreenPoint(p view.Point, v view.Transform) bool {
	return r.BoundingRect(v).Contains(p)
}

// LocalTileAt converts a screen point to this room's tile coordinates.
// The result is only meaningful for points inside BoundingRect.
func (r *Room) LocalTileAt(p view.Point, v view.Transform) (col, row int) {
	origin := v.WorldToScreen(r.Origin())
	size := v.ScaledTile()
	col = int(math.Floor((p.X - origin.X) / size))
	row = int(math.Floor((p.Y - origin.Y) / size))
	return col, row
}

// TileRect is the screen rectangle of one of the room's tiles.
func (r *Room) TileRect(col, row int, v view.Transform) view.Rect {
	origin := v.WorldToScreen(r.Origin())
	size := v.ScaledTile()
	topLeft := view.Point{X: origin.X + float64(col)*size, Y: origin.Y + float64(row)*size}
	return view.Rect{Min: topLeft, Max: view.Point{X: topLeft.X + size, Y: topLeft.Y + size}}
}

// sync writes the grid back into the solids node. An unchanged block keeps
// its original bytes.
func (r *Room) sync() {
	text := r.grid.Encode()
	cur, ok, err := r.solids.StringAttr(attrInnerText)
	if err == nil && cur == text && (ok || text == "") {
		return
	}
	r.solids.SetString(attrInnerText, text)
}

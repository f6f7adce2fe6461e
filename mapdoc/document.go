package mapdoc

import (
	"errors"
	"fmt"
	"math"

	"github.com/bloodmagesoftware/summit/grid"
	"github.com/bloodmagesoftware/summit/view"
)

const (
	nodeLevels    = "levels"
	nodeLevel     = "level"
	nodeSolids    = "solids"
	attrInnerText = "innerText"
)

var (
	// ErrFormat is returned for a malformed document. Solids block failures
	// match both ErrFormat and grid.ErrFormat.
	ErrFormat = errors.New("malformed map document")
	// ErrOutOfBounds is returned for invalid room indices or tile coordinates.
	ErrOutOfBounds = grid.ErrOutOfBounds
	// ErrMissingField is returned when a room lacks a required field.
	ErrMissingField = errors.New("missing required field")
)

// FieldError describes a room rejected while parsing.
type FieldError struct {
	Index int
	Room  string
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	name := e.Room
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("room %d (%s): %s: %v", e.Index, name, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Document is an ordered collection of rooms backed by the document tree.
type Document struct {
	root     *Node
	rooms    []*Room
	current  int
	tileSize float64
}

// Parse builds a document from a tree. The tree is copied. Any room with a
// missing or malformed field aborts the whole parse.
func Parse(root *Node, tileSize float64) (*Document, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrFormat)
	}
	if tileSize <= 0 {
		tileSize = view.TileSize
	}
	doc := &Document{root: root.Clone(), current: -1, tileSize: tileSize}

	levels := doc.root.Child(nodeLevels)
	if levels == nil {
		return nil, fmt.Errorf("%w: document %q has no %q element", ErrFormat, doc.root.Name, nodeLevels)
	}

	index := 0
	for _, n := range levels.Children {
		if n == nil || n.Name != nodeLevel {
			continue
		}
		room, err := parseRoom(index, n, tileSize)
		if err != nil {
			return nil, err
		}
		doc.rooms = append(doc.rooms, room)
		index++
	}
	if len(doc.rooms) > 0 {
		doc.current = 0
	}
	return doc, nil
}

func parseRoom(index int, n *Node, tileSize float64) (*Room, error) {
	fail := func(name, field string, err error) error {
		return &FieldError{Index: index, Room: name, Field: field, Err: err}
	}

	name, ok, err := n.StringAttr("name")
	if err != nil {
		return nil, fail("", "name", err)
	}
	if !ok {
		return nil, fail("", "name", ErrMissingField)
	}

	room := &Room{Name: name, tileSize: tileSize, level: n}
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"x", &room.X}, {"y", &room.Y}, {"width", &room.Width}, {"height", &room.Height},
	} {
		v, ok, err := n.NumberAttr(f.key)
		if err != nil {
			return nil, fail(name, f.key, err)
		}
		if !ok {
			return nil, fail(name, f.key, ErrMissingField)
		}
		*f.dst = v
	}

	room.solids = n.Child(nodeSolids)
	if room.solids == nil {
		return nil, fail(name, nodeSolids, ErrMissingField)
	}
	text, ok, err := room.solids.StringAttr(attrInnerText)
	if err != nil {
		return nil, fail(name, nodeSolids, err)
	}
	if !ok {
		// an absent innerText is how the converter writes an empty block
		text = ""
	}

	g, err := grid.Decode(text)
	if err != nil {
		return nil, fail(name, nodeSolids, fmt.Errorf("%w: %w", ErrFormat, err))
	}
	room.grid = g

	cols, err := tiles(room.Width, tileSize)
	if err != nil {
		return nil, fail(name, "width", err)
	}
	rows, err := tiles(room.Height, tileSize)
	if err != nil {
		return nil, fail(name, "height", err)
	}
	if cols != g.Width() || rows != g.Height() {
		return nil, fail(name, nodeSolids, fmt.Errorf("%w: grid is %dx%d tiles, room declares %dx%d",
			ErrFormat, g.Width(), g.Height(), cols, rows))
	}
	return room, nil
}

func tiles(size, tileSize float64) (int, error) {
	if size < 0 {
		return 0, fmt.Errorf("%w: negative size %v", ErrFormat, size)
	}
	n := size / tileSize
	if n != math.Trunc(n) {
		return 0, fmt.Errorf("%w: size %v is not a multiple of tile size %v", ErrFormat, size, tileSize)
	}
	return int(n), nil
}

// TileSize is the number of world units per tile.
func (d *Document) TileSize() float64 { return d.tileSize }

// Len returns the number of rooms.
func (d *Document) Len() int { return len(d.rooms) }

// Rooms returns the rooms in document order.
func (d *Document) Rooms() []*Room { return d.rooms }

// Room returns the room at index i.
func (d *Document) Room(i int) (*Room, error) {
	if i < 0 || i >= len(d.rooms) {
		return nil, fmt.Errorf("%w: room %d of %d", ErrOutOfBounds, i, len(d.rooms))
	}
	return d.rooms[i], nil
}

// RoomNames returns every room name in document order. Duplicates are kept.
func (d *Document) RoomNames() []string {
	names := make([]string, len(d.rooms))
	for i, r := range d.rooms {
		names[i] = r.Name
	}
	return names
}

// CurrentIndex returns the selected room index, or -1 for an empty document.
func (d *Document) CurrentIndex() int { return d.current }

// Current returns the selected room, or nil for an empty document.
func (d *Document) Current() *Room {
	if d.current < 0 {
		return nil
	}
	return d.rooms[d.current]
}

// SelectRoom makes room i current.
func (d *Document) SelectRoom(i int) error {
	if i < 0 || i >= len(d.rooms) {
		return fmt.Errorf("%w: room %d of %d", ErrOutOfBounds, i, len(d.rooms))
	}
	d.current = i
	return nil
}

// RoomTileAt returns the first room, in document order, whose screen
// rectangle contains p, together with the tile under p.
func (d *Document) RoomTileAt(p view.Point, v view.Transform) (index, col, row int, ok bool) {
	for i, r := range d.rooms {
		if r.ContainsScreenPoint(p, v) {
			col, row = r.LocalTileAt(p, v)
			return i, col, row, true
		}
	}
	return -1, 0, 0, false
}

// SetTile writes ch into room i and immediately re-encodes the room's
// solids block in the tree. It returns the previous character.
func (d *Document) SetTile(i, col, row int, ch rune) (rune, error) {
	r, err := d.Room(i)
	if err != nil {
		return 0, err
	}
	prev, err := r.grid.Get(col, row)
	if err != nil {
		return 0, err
	}
	if err := r.grid.Set(col, row, ch); err != nil {
		return 0, err
	}
	d.SyncRoom(i)
	return prev, nil
}

// SyncRoom writes room i's grid back into its solids element.
func (d *Document) SyncRoom(i int) {
	if i < 0 || i >= len(d.rooms) {
		return
	}
	d.rooms[i].sync()
}

// SolidsText returns room i's solids block as currently stored in the tree.
func (d *Document) SolidsText(i int) (string, error) {
	r, err := d.Room(i)
	if err != nil {
		return "", err
	}
	text, _, err := r.solids.StringAttr(attrInnerText)
	return text, err
}

// Serialize returns a copy of the document tree with every room's current
// grid encoded into its solids block.
func (d *Document) Serialize() *Node {
	for i := range d.rooms {
		d.SyncRoom(i)
	}
	return d.root.Clone()
}

package editor

import (
	"context"
	"fmt"
	"log"

	"github.com/bloodmagesoftware/summit/converter"
	"github.com/bloodmagesoftware/summit/grid"
	"github.com/bloodmagesoftware/summit/mapdoc"
	"github.com/bloodmagesoftware/summit/view"
)

// Options configures a Session.
type Options struct {
	View      view.Transform
	MaxUndo   int
	Converter converter.Converter
}

// Session is one editing session: the loaded document, the camera, the
// display mode and the undo history.
type Session struct {
	doc       *mapdoc.Document
	path      string
	view      view.Transform
	initial   view.Transform
	allRooms  bool
	dirty     bool
	history   *history
	converter converter.Converter
}

// NewSession creates a session with no document loaded.
func NewSession(opts Options) *Session {
	v := opts.View
	if v.Zoom() == 0 {
		v = view.New(view.TileSize)
	}
	conv := opts.Converter
	if conv == nil {
		conv = converter.Nop{}
	}
	return &Session{
		view:      v,
		initial:   v,
		allRooms:  true,
		history:   newHistory(opts.MaxUndo),
		converter: conv,
	}
}

// Open creates a session and loads path into it.
func Open(path string, opts Options) (*Session, error) {
	s := NewSession(opts)
	if err := s.Load(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Document returns the loaded document, or nil.
func (s *Session) Document() *mapdoc.Document { return s.doc }

// Path returns the file the document was loaded from.
func (s *Session) Path() string { return s.path }

// View returns the current view transform.
func (s *Session) View() view.Transform { return s.view }

// AllRooms reports whether every room is shown and editable at once.
func (s *Session) AllRooms() bool { return s.allRooms }

// SetAllRooms switches between single-room and all-rooms mode.
func (s *Session) SetAllRooms(on bool) { s.allRooms = on }

// ToggleAllRooms flips the display mode.
func (s *Session) ToggleAllRooms() { s.allRooms = !s.allRooms }

// Dirty reports whether there are unsaved edits.
func (s *Session) Dirty() bool { return s.dirty }

// Load replaces the document with the one at path. On failure the previous
// document, view and history are kept.
func (s *Session) Load(path string) error {
	doc, err := mapdoc.ReadFile(path, s.view.TileSize)
	if err != nil {
		return err
	}
	s.Replace(doc, path)
	log.Printf("loaded %s with %d rooms", path, doc.Len())
	return nil
}

// Replace installs an already parsed document, resetting the view and history.
func (s *Session) Replace(doc *mapdoc.Document, path string) {
	s.doc = doc
	s.path = path
	s.dirty = false
	s.history.reset()
	s.ResetView()
}

// Save writes the document back to its path and runs the converter.
func (s *Session) Save(ctx context.Context) error {
	return s.SaveAs(ctx, s.path)
}

// SaveAs writes the document to path, runs the converter, and makes path the
// session's file. A converter failure is reported after the JSON has been
// written; the in-memory document is never touched by a failed save.
func (s *Session) SaveAs(ctx context.Context, path string) error {
	if s.doc == nil {
		return fmt.Errorf("no map loaded")
	}
	if path == "" {
		return fmt.Errorf("no file name to save to")
	}
	if err := s.doc.WriteFile(path); err != nil {
		return err
	}
	s.path = path
	s.dirty = false
	log.Printf("saved %s", path)

	if err := s.converter.Convert(ctx, path); err != nil {
		return fmt.Errorf("saved %s but conversion failed: %w", path, err)
	}
	return nil
}

// SelectRoom makes room i current.
func (s *Session) SelectRoom(i int) error {
	if s.doc == nil {
		return fmt.Errorf("%w: no map loaded", mapdoc.ErrOutOfBounds)
	}
	return s.doc.SelectRoom(i)
}

// Pan moves the camera.
func (s *Session) Pan(delta view.Point) { s.view.Pan(delta) }

// ZoomIn zooms in one step.
func (s *Session) ZoomIn() { s.view.ZoomIn() }

// ZoomOut zooms out one step.
func (s *Session) ZoomOut() { s.view.ZoomOut() }

// ZoomAt zooms by factor around a screen point.
func (s *Session) ZoomAt(anchor view.Point, factor float64) { s.view.ZoomAt(anchor, factor) }

// ResetView restores the camera and zoom the session started with.
func (s *Session) ResetView() {
	s.view.Camera = s.initial.Camera
	s.view.SetZoom(s.initial.Zoom())
}

// PlaceBlock paints a solid tile under the screen point p.
func (s *Session) PlaceBlock(p view.Point) bool {
	return s.paint(p, grid.Solid)
}

// RemoveBlock clears the tile under the screen point p.
func (s *Session) RemoveBlock(p view.Point) bool {
	return s.paint(p, grid.Empty)
}

// paint resolves p to a room and tile and writes ch there. Clicks that miss
// every tile are ignored. It reports whether a cell changed.
func (s *Session) paint(p view.Point, ch rune) bool {
	room, col, row, ok := s.Target(p)
	if !ok {
		return false
	}
	if s.allRooms {
		// keep the current room in step with the last edited one
		if err := s.doc.SelectRoom(room); err != nil {
			return false
		}
	}
	return s.write(room, col, row, ch)
}

// Target resolves a screen point to the room and tile an edit would hit.
func (s *Session) Target(p view.Point) (room, col, row int, ok bool) {
	if s.doc == nil || s.doc.Len() == 0 {
		return -1, 0, 0, false
	}
	if s.allRooms {
		return s.doc.RoomTileAt(p, s.view)
	}
	cur := s.doc.Current()
	col, row = s.view.ScreenToTile(p)
	if !cur.Grid().Contains(col, row) {
		return -1, 0, 0, false
	}
	return s.doc.CurrentIndex(), col, row, true
}

func (s *Session) write(room, col, row int, ch rune) bool {
	r, err := s.doc.Room(room)
	if err != nil {
		return false
	}
	old, err := r.Grid().Get(col, row)
	if err != nil || old == ch {
		return false
	}
	if _, err := s.doc.SetTile(room, col, row, ch); err != nil {
		return false
	}
	s.history.push(cellChange{Room: room, Col: col, Row: row, Old: old, New: ch})
	s.dirty = true
	return true
}

// Undo reverts the most recent edit.
func (s *Session) Undo() bool {
	c, ok := s.history.popUndo()
	if !ok {
		return false
	}
	s.apply(c.Room, c.Col, c.Row, c.Old)
	return true
}

// Redo re-applies the most recently undone edit.
func (s *Session) Redo() bool {
	c, ok := s.history.popRedo()
	if !ok {
		return false
	}
	s.apply(c.Room, c.Col, c.Row, c.New)
	return true
}

func (s *Session) apply(room, col, row int, ch rune) {
	if _, err := s.doc.SetTile(room, col, row, ch); err != nil {
		log.Printf("history: %v", err)
		return
	}
	s.dirty = true
}

// PaintTile writes a solid (place) or empty tile at room-local coordinates,
// the same way a click would. It reports whether the cell changed.
func (s *Session) PaintTile(room, col, row int, place bool) (bool, error) {
	if s.doc == nil {
		return false, fmt.Errorf("%w: no map loaded", mapdoc.ErrOutOfBounds)
	}
	r, err := s.doc.Room(room)
	if err != nil {
		return false, err
	}
	if !r.Grid().Contains(col, row) {
		return false, fmt.Errorf("%w: tile (%d, %d) outside room %q (%dx%d)", mapdoc.ErrOutOfBounds, col, row, r.Name, r.Cols(), r.Rows())
	}
	ch := grid.Empty
	if place {
		ch = grid.Solid
	}
	return s.write(room, col, row, ch), nil
}

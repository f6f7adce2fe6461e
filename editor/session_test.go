package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloodmagesoftware/summit/converter"
	"github.com/bloodmagesoftware/summit/mapdoc"
	"github.com/bloodmagesoftware/summit/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneRoom = `{"__name":"Map","__children":[{"__name":"levels","__children":[
	{"__name":"level","name":"Room0","x":0,"y":0,"width":80,"height":60,"__children":[
		{"__name":"solids","innerText":"0000\n0000\n0000"}
	]}
]}]}`

const twoRooms = `{"__name":"Map","__children":[{"__name":"levels","__children":[
	{"__name":"level","name":"A","x":0,"y":0,"width":40,"height":40,"__children":[{"__name":"solids","innerText":"00\n00"}]},
	{"__name":"level","name":"B","x":200,"y":0,"width":40,"height":40,"__children":[{"__name":"solids","innerText":"00\n00"}]}
]}]}`

func writeMap(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func openSession(t *testing.T, src string, allRooms bool) (*Session, *converter.Recorder) {
	t.Helper()
	rec := &converter.Recorder{}
	s, err := Open(writeMap(t, src), Options{View: view.New(view.TileSize), Converter: rec})
	require.NoError(t, err)
	s.SetAllRooms(allRooms)
	return s, rec
}

func solids(t *testing.T, s *Session, room int) string {
	t.Helper()
	text, err := s.Document().SolidsText(room)
	require.NoError(t, err)
	return text
}

// tileCenter is the screen point in the middle of a tile at zoom 1, camera 0.
func tileCenter(col, row int) view.Point {
	return view.Point{X: float64(col)*view.TileSize + view.TileSize/2, Y: float64(row)*view.TileSize + view.TileSize/2}
}

func TestPlaceThenRemove(t *testing.T) {
	s, _ := openSession(t, oneRoom, false)

	require.True(t, s.PlaceBlock(tileCenter(1, 1)))
	assert.Equal(t, "0000\n0900\n0000", solids(t, s, 0))
	assert.True(t, s.Dirty())

	require.True(t, s.RemoveBlock(tileCenter(1, 1)))
	assert.Equal(t, "0000\n0000\n0000", solids(t, s, 0))
}

func TestMultiRoomClickSwitchesRoom(t *testing.T) {
	s, _ := openSession(t, twoRooms, true)
	require.Equal(t, 0, s.Document().CurrentIndex())

	require.True(t, s.PlaceBlock(view.Point{X: 210, Y: 10}))
	assert.Equal(t, 1, s.Document().CurrentIndex())
	assert.Equal(t, "B", s.Document().Current().Name)
	assert.Equal(t, "90\n00", solids(t, s, 1))
	assert.Equal(t, "00\n00", solids(t, s, 0))
}

func TestNegativeClickIsNoop(t *testing.T) {
	s, _ := openSession(t, oneRoom, false)

	assert.False(t, s.PlaceBlock(view.Point{X: -5, Y: -5}))
	assert.Equal(t, "0000\n0000\n0000", solids(t, s, 0))
	assert.False(t, s.Dirty())
	assert.False(t, s.Undo(), "ignored clicks must not enter the history")
}

func TestBadReloadKeepsPreviousDocument(t *testing.T) {
	s, _ := openSession(t, oneRoom, false)
	require.True(t, s.PlaceBlock(tileCenter(0, 0)))
	prevPath := s.Path()

	bad := `{"__name":"Map","__children":[{"__name":"levels","__children":[
		{"__name":"level","name":"fine","x":0,"y":0,"width":80,"height":60,"__children":[{"__name":"solids","innerText":"0000\n0000\n0000"}]},
		{"__name":"level","name":"ragged","x":100,"y":0,"width":80,"height":60,"__children":[{"__name":"solids","innerText":"0000\n0000\n000"}]}
	]}]}`

	err := s.Load(writeMap(t, bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, mapdoc.ErrFormat)

	assert.Equal(t, prevPath, s.Path())
	assert.Equal(t, []string{"Room0"}, s.Document().RoomNames())
	assert.Equal(t, "9000\n0000\n0000", solids(t, s, 0))
	assert.True(t, s.Dirty())
}

func TestNoopWritesLeaveGridUntouched(t *testing.T) {
	s, _ := openSession(t, oneRoom, false)

	assert.False(t, s.RemoveBlock(tileCenter(2, 2)), "removing an empty cell")
	assert.Equal(t, "0000\n0000\n0000", solids(t, s, 0))

	require.True(t, s.PlaceBlock(tileCenter(2, 2)))
	before := solids(t, s, 0)
	assert.False(t, s.PlaceBlock(tileCenter(2, 2)), "placing on a solid cell")
	assert.Equal(t, before, solids(t, s, 0))
}

func TestSingleRoomOutOfBoundsIgnored(t *testing.T) {
	s, _ := openSession(t, oneRoom, false)
	for _, p := range []view.Point{tileCenter(4, 0), tileCenter(0, 3), tileCenter(100, 100), {X: -0.1, Y: 5}} {
		assert.False(t, s.PlaceBlock(p), "%v", p)
	}
	assert.Equal(t, "0000\n0000\n0000", solids(t, s, 0))
}

func TestSingleRoomUsesCurrentRoomOnly(t *testing.T) {
	s, _ := openSession(t, twoRooms, false)
	require.NoError(t, s.SelectRoom(1))

	// in single-room mode the current room is drawn at the origin
	require.True(t, s.PlaceBlock(tileCenter(1, 0)))
	assert.Equal(t, "09\n00", solids(t, s, 1))
	assert.Equal(t, "00\n00", solids(t, s, 0))

	// a click where room B sits in all-rooms mode is outside its grid here
	assert.False(t, s.PlaceBlock(view.Point{X: 210, Y: 10}))
}

func TestMultiRoomMissIsNoop(t *testing.T) {
	s, _ := openSession(t, twoRooms, true)
	require.NoError(t, s.SelectRoom(1))

	assert.False(t, s.PlaceBlock(view.Point{X: 100, Y: 10}))
	assert.Equal(t, 1, s.Document().CurrentIndex(), "a miss must not change the selection")
}

func TestMultiRoomFollowsCamera(t *testing.T) {
	s, _ := openSession(t, twoRooms, true)
	s.Pan(view.Point{X: -200, Y: 0})

	// room B now starts at the screen origin
	require.True(t, s.PlaceBlock(tileCenter(1, 1)))
	assert.Equal(t, "00\n09", solids(t, s, 1))

	s.ResetView()
	assert.Equal(t, view.Point{}, s.View().Camera)
}

func TestUndoRedo(t *testing.T) {
	s, _ := openSession(t, oneRoom, false)
	require.True(t, s.PlaceBlock(tileCenter(0, 0)))
	require.True(t, s.PlaceBlock(tileCenter(3, 2)))

	require.True(t, s.Undo())
	assert.Equal(t, "9000\n0000\n0000", solids(t, s, 0))
	require.True(t, s.Undo())
	assert.Equal(t, "0000\n0000\n0000", solids(t, s, 0))
	assert.False(t, s.Undo())

	require.True(t, s.Redo())
	assert.Equal(t, "9000\n0000\n0000", solids(t, s, 0))

	// a new edit drops the redo branch
	require.True(t, s.RemoveBlock(tileCenter(0, 0)))
	assert.False(t, s.Redo())
}

func TestUndoHistoryIsBounded(t *testing.T) {
	rec := &converter.Recorder{}
	s, err := Open(writeMap(t, oneRoom), Options{View: view.New(view.TileSize), MaxUndo: 2, Converter: rec})
	require.NoError(t, err)
	s.SetAllRooms(false)

	require.True(t, s.PlaceBlock(tileCenter(0, 0)))
	require.True(t, s.PlaceBlock(tileCenter(1, 0)))
	require.True(t, s.PlaceBlock(tileCenter(2, 0)))

	assert.True(t, s.Undo())
	assert.True(t, s.Undo())
	assert.False(t, s.Undo())
	assert.Equal(t, "9000\n0000\n0000", solids(t, s, 0))
}

func TestSaveWritesThenConverts(t *testing.T) {
	s, rec := openSession(t, oneRoom, false)
	require.True(t, s.PlaceBlock(tileCenter(1, 1)))

	require.NoError(t, s.Save(context.Background()))
	assert.False(t, s.Dirty())
	assert.Equal(t, []string{s.Path()}, rec.Calls)

	reloaded, err := mapdoc.ReadFile(s.Path(), view.TileSize)
	require.NoError(t, err)
	text, err := reloaded.SolidsText(0)
	require.NoError(t, err)
	assert.Equal(t, "0000\n0900\n0000", text)
}

func TestSaveReportsConverterFailure(t *testing.T) {
	s, rec := openSession(t, oneRoom, false)
	rec.Err = errors.New("converter exploded")
	require.True(t, s.PlaceBlock(tileCenter(1, 1)))

	err := s.Save(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "converter exploded")
	assert.Equal(t, "0000\n0900\n0000", solids(t, s, 0))

	// the JSON itself was written
	_, statErr := os.Stat(s.Path())
	assert.NoError(t, statErr)
}

func TestSaveAsMovesPath(t *testing.T) {
	s, rec := openSession(t, oneRoom, false)
	dst := filepath.Join(t.TempDir(), "copy", "map.json")

	require.NoError(t, s.SaveAs(context.Background(), dst))
	assert.Equal(t, dst, s.Path())
	assert.Equal(t, []string{dst}, rec.Calls)
}

func TestEmptySession(t *testing.T) {
	s := NewSession(Options{})
	assert.False(t, s.PlaceBlock(view.Point{}))
	assert.Error(t, s.Save(context.Background()))
	assert.ErrorIs(t, s.SelectRoom(0), mapdoc.ErrOutOfBounds)
	v := s.View()
	assert.Equal(t, 1.0, v.Zoom())
}

func TestPaintTile(t *testing.T) {
	s, _ := openSession(t, twoRooms, true)

	changed, err := s.PaintTile(1, 1, 0, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "09\n00", solids(t, s, 1))

	changed, err = s.PaintTile(1, 1, 0, true)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = s.PaintTile(1, 2, 0, true)
	assert.ErrorIs(t, err, mapdoc.ErrOutOfBounds)
	_, err = s.PaintTile(5, 0, 0, true)
	assert.ErrorIs(t, err, mapdoc.ErrOutOfBounds)

	require.True(t, s.Undo())
	assert.Equal(t, "00\n00", solids(t, s, 1))
}

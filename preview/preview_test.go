package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bloodmagesoftware/summit/grid"
	"github.com/bloodmagesoftware/summit/mapdoc"
	"github.com/bloodmagesoftware/summit/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xfmoulet/qoi"
)

const twoRooms = `{"__name":"Map","__children":[{"__name":"levels","__children":[
	{"__name":"level","name":"A","x":0,"y":0,"width":40,"height":40,"__children":[{"__name":"solids","innerText":"90\n00"}]},
	{"__name":"level","name":"B","x":100,"y":20,"width":40,"height":20,"__children":[{"__name":"solids","innerText":"12"}]}
]}]}`

func load(t *testing.T) *mapdoc.Document {
	t.Helper()
	doc, err := mapdoc.Decode(strings.NewReader(twoRooms), view.TileSize)
	require.NoError(t, err)
	return doc
}

func plain() Options {
	return Options{Room: AllRooms, Scale: 1}
}

func assertPixel(t *testing.T, img image.Image, x, y int, want color.NRGBA) {
	t.Helper()
	got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	assert.Equal(t, want, got, "pixel (%d,%d)", x, y)
}

func TestRenderAllRooms(t *testing.T) {
	img, err := Render(load(t), plain())
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 140, 40), img.Bounds())
	assertPixel(t, img, 10, 10, otherSolid)
	assertPixel(t, img, 30, 30, RoomFill)
	assertPixel(t, img, 70, 10, Background)
	assertPixel(t, img, 110, 30, tileColors['1'])
	assertPixel(t, img, 130, 30, tileColors['2'])
}

func TestRenderSingleRoomAtOrigin(t *testing.T) {
	opts := plain()
	opts.Room = 1
	opts.Scale = 2
	img, err := Render(load(t), opts)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 80, 40), img.Bounds())
	assertPixel(t, img, 20, 20, tileColors['1'])
	assertPixel(t, img, 60, 20, tileColors['2'])
}

func TestRenderPadding(t *testing.T) {
	opts := plain()
	opts.Padding = 5
	img, err := Render(load(t), opts)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 150, 50), img.Bounds())
	assertPixel(t, img, 2, 2, Background)
	assertPixel(t, img, 15, 15, otherSolid)
}

func TestRenderWithLabels(t *testing.T) {
	img, err := Render(load(t), DefaultOptions())
	require.NoError(t, err)
	assert.False(t, img.Bounds().Empty())
}

func TestRenderErrors(t *testing.T) {
	doc := load(t)

	opts := plain()
	opts.Scale = 0
	_, err := Render(doc, opts)
	assert.Error(t, err)

	opts = plain()
	opts.Room = 7
	_, err = Render(doc, opts)
	assert.ErrorIs(t, err, mapdoc.ErrOutOfBounds)

	empty, err := mapdoc.Decode(strings.NewReader(`{"__name":"Map","__children":[{"__name":"levels"}]}`), view.TileSize)
	require.NoError(t, err)
	_, err = Render(empty, plain())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestTileColor(t *testing.T) {
	_, ok := TileColor(grid.Empty, 0)
	assert.False(t, ok)

	c, ok := TileColor('3', 0)
	require.True(t, ok)
	assert.Equal(t, tileColors['3'], c)

	c, _ = TileColor('3', 0xFF)
	assert.Equal(t, Infill, c)

	c, _ = TileColor('x', grid.North)
	assert.Equal(t, otherSolid, c)
}

func TestEncode(t *testing.T) {
	img, err := Render(load(t), plain())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, PNG))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, img, QOI))
	decoded, err = qoi.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	assert.Error(t, Encode(&buf, img, Format("gif")))
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("out/Map.PNG")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	f, err = FormatFromPath("map.qoi")
	require.NoError(t, err)
	assert.Equal(t, QOI, f)

	_, err = FormatFromPath("map.jpg")
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	img, err := Render(load(t), plain())
	require.NoError(t, err)
	assert.NoError(t, WriteFile(filepath.Join(t.TempDir(), "map.png"), img))
}

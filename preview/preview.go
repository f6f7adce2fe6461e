package preview

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"strings"

	"github.com/bloodmagesoftware/summit/mapdoc"
	"github.com/bloodmagesoftware/summit/view"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// AllRooms selects every room in Options.Room.
const AllRooms = -1

// maxPixels caps the rendered image at roughly 64 megapixels.
const maxPixels = 1 << 26

var ErrEmpty = errors.New("nothing to render")

type Options struct {
	// Room is the index of the room to draw, or AllRooms.
	Room int
	// Scale is screen pixels per world unit.
	Scale float64
	// Padding in pixels around the drawn rooms.
	Padding  int
	Grid     bool
	Labels   bool
	FontSize float64
}

func DefaultOptions() Options {
	return Options{Room: AllRooms, Scale: 1, Padding: 8, Grid: true, Labels: true, FontSize: 12}
}

// Render draws the document. In AllRooms mode rooms are placed at their
// world positions, otherwise the selected room is drawn alone.
func Render(doc *mapdoc.Document, opts Options) (image.Image, error) {
	if opts.Scale <= 0 || math.IsNaN(opts.Scale) || math.IsInf(opts.Scale, 0) {
		return nil, fmt.Errorf("invalid scale %v", opts.Scale)
	}

	rooms := doc.Rooms()
	if opts.Room != AllRooms {
		r, err := doc.Room(opts.Room)
		if err != nil {
			return nil, err
		}
		rooms = []*mapdoc.Room{r}
	}
	if len(rooms) == 0 {
		return nil, ErrEmpty
	}

	bounds := rooms[0].WorldRect()
	for _, r := range rooms[1:] {
		rect := r.WorldRect()
		bounds.Min.X = math.Min(bounds.Min.X, rect.Min.X)
		bounds.Min.Y = math.Min(bounds.Min.Y, rect.Min.Y)
		bounds.Max.X = math.Max(bounds.Max.X, rect.Max.X)
		bounds.Max.Y = math.Max(bounds.Max.Y, rect.Max.Y)
	}

	pad := float64(opts.Padding)
	width := int(math.Ceil(bounds.Dx()*opts.Scale + 2*pad))
	height := int(math.Ceil(bounds.Dy()*opts.Scale + 2*pad))
	if width <= 0 || height <= 0 {
		return nil, ErrEmpty
	}
	if width*height > maxPixels {
		return nil, fmt.Errorf("image of %dx%d pixels is too large, lower the scale", width, height)
	}

	v := view.New(doc.TileSize())
	v.MinZoom = math.Min(v.MinZoom, opts.Scale)
	v.MaxZoom = math.Max(v.MaxZoom, opts.Scale)
	v.SetZoom(opts.Scale)
	v.Camera = view.Point{X: pad - bounds.Min.X*opts.Scale, Y: pad - bounds.Min.Y*opts.Scale}

	dc := gg.NewContext(width, height)
	dc.SetColor(Background)
	dc.Clear()

	if opts.Labels {
		face, err := labelFace(opts.FontSize)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
	}

	for _, r := range rooms {
		drawRoom(dc, r, v, opts)
	}

	return dc.Image(), nil
}

func labelFace(size float64) (font.Face, error) {
	if size <= 0 {
		size = 12
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func drawRoom(dc *gg.Context, r *mapdoc.Room, v view.Transform, opts Options) {
	box := r.BoundingRect(v)
	dc.SetColor(RoomFill)
	dc.DrawRectangle(box.Min.X, box.Min.Y, box.Dx(), box.Dy())
	dc.Fill()

	g := r.Grid()
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			ch, _ := g.Get(col, row)
			c, ok := TileColor(ch, g.Neighbors(col, row, nil))
			if !ok {
				continue
			}
			tile := r.TileRect(col, row, v)
			dc.SetColor(c)
			dc.DrawRectangle(tile.Min.X, tile.Min.Y, tile.Dx(), tile.Dy())
			dc.Fill()
		}
	}

	// grid lines are unreadable once tiles get this small
	if opts.Grid && v.ScaledTile() >= 4 {
		dc.SetColor(GridLine)
		dc.SetLineWidth(1)
		size := v.ScaledTile()
		for col := 1; col < g.Width(); col++ {
			x := box.Min.X + float64(col)*size
			dc.DrawLine(x, box.Min.Y, x, box.Max.Y)
		}
		for row := 1; row < g.Height(); row++ {
			y := box.Min.Y + float64(row)*size
			dc.DrawLine(box.Min.X, y, box.Max.X, y)
		}
		dc.Stroke()
	}

	dc.SetColor(Outline)
	dc.SetLineWidth(1)
	dc.DrawRectangle(box.Min.X, box.Min.Y, box.Dx(), box.Dy())
	dc.Stroke()

	if opts.Labels && r.Name != "" {
		dc.SetColor(Label)
		dc.DrawStringAnchored(r.Name, box.Min.X+4, box.Min.Y+4, 0, 1)
	}
}

type Format string

const (
	PNG Format = "png"
	QOI Format = "qoi"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".png"):
		return PNG, nil
	case strings.HasSuffix(strings.ToLower(path), ".qoi"):
		return QOI, nil
	}
	return "", fmt.Errorf("unsupported image format for %s (want .png or .qoi)", path)
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case QOI:
		return qoi.Encode(w, img)
	}
	return fmt.Errorf("unsupported image format %q", format)
}

// WriteFile encodes img to path, picking the format from the extension.
func WriteFile(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

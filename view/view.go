package view

import "math"

// TileSize is the default number of world units per tile.
const TileSize = 20.0

const (
	DefaultMinZoom  = 0.1
	DefaultMaxZoom  = 10.0
	DefaultZoomStep = 1.1
)

// Point is a position in screen or world space.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Rect is an axis-aligned rectangle. Min is inclusive, Max is exclusive.
type Rect struct {
	Min, Max Point
}

// Contains reports whether p lies in [Min, Max).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Overlaps reports whether r and s share any area.
func (r Rect) Overlaps(s Rect) bool {
	return r.Min.X < s.Max.X && s.Min.X < r.Max.X && r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Transform maps world space to screen space: screen = world*zoom + camera.
// The zero value is not usable; use New.
type Transform struct {
	Camera   Point
	zoom     float64
	TileSize float64
	MinZoom  float64
	MaxZoom  float64
	ZoomStep float64
}

// New returns a transform at zoom 1 with the camera at the origin.
func New(tileSize float64) Transform {
	if tileSize <= 0 {
		tileSize = TileSize
	}
	return Transform{
		zoom:     1,
		TileSize: tileSize,
		MinZoom:  DefaultMinZoom,
		MaxZoom:  DefaultMaxZoom,
		ZoomStep: DefaultZoomStep,
	}
}

// Zoom returns the current zoom factor.
func (t *Transform) Zoom() float64 { return t.zoom }

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (t *Transform) SetZoom(z float64) {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return
	}
	t.zoom = math.Max(t.MinZoom, math.Min(t.MaxZoom, z))
}

// ScaledTile is the on-screen size of one tile.
func (t *Transform) ScaledTile() float64 { return t.TileSize * t.zoom }

// WorldToScreen maps a world point to the screen.
func (t *Transform) WorldToScreen(w Point) Point {
	return Point{w.X*t.zoom + t.Camera.X, w.Y*t.zoom + t.Camera.Y}
}

// ScreenToWorld is the inverse of WorldToScreen.
func (t *Transform) ScreenToWorld(s Point) Point {
	return Point{(s.X - t.Camera.X) / t.zoom, (s.Y - t.Camera.Y) / t.zoom}
}

// ScreenToTile resolves a screen point to a tile of a room placed at the
// world origin. The result may be negative or beyond any grid.
func (t *Transform) ScreenToTile(p Point) (col, row int) {
	size := t.ScaledTile()
	col = int(math.Floor((p.X - t.Camera.X) / size))
	row = int(math.Floor((p.Y - t.Camera.Y) / size))
	return col, row
}

// TileToScreen returns the top-left screen corner of a tile at the world origin.
func (t *Transform) TileToScreen(col, row int) Point {
	size := t.ScaledTile()
	return Point{float64(col)*size + t.Camera.X, float64(row)*size + t.Camera.Y}
}

// Pan moves the camera by delta screen units.
func (t *Transform) Pan(delta Point) {
	t.Camera = t.Camera.Add(delta)
}

// ZoomIn multiplies the zoom by ZoomStep.
func (t *Transform) ZoomIn() { t.SetZoom(t.zoom * t.ZoomStep) }

// ZoomOut divides the zoom by ZoomStep.
func (t *Transform) ZoomOut() { t.SetZoom(t.zoom / t.ZoomStep) }

// ZoomAt scales the zoom by factor while keeping the world point under
// anchor fixed on screen.
func (t *Transform) ZoomAt(anchor Point, factor float64) {
	old := t.zoom
	t.SetZoom(old * factor)
	ratio := t.zoom / old
	t.Camera = Point{
		X: anchor.X - (anchor.X-t.Camera.X)*ratio,
		Y: anchor.Y - (anchor.Y-t.Camera.Y)*ratio,
	}
}

// Reset restores zoom 1 and the camera to the origin.
func (t *Transform) Reset() {
	t.Camera = Point{}
	t.zoom = 1
}

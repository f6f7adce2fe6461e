package level

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"
	"github.com/bloodmagesoftware/summit/grid"
	"github.com/bloodmagesoftware/summit/mapdoc"
	"github.com/bloodmagesoftware/summit/preview"
	"github.com/bloodmagesoftware/summit/view"
)

// layoutCanvas renders the main canvas area where map editing happens
func (e *Editor) layoutCanvas(gtx layout.Context) layout.Dimensions {
	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
			paint.ColorOp{Color: preview.Background}.Add(gtx.Ops)
			paint.PaintOp{}.Add(gtx.Ops)
			return layout.Dimensions{Size: gtx.Constraints.Max}
		},
		func(gtx layout.Context) layout.Dimensions {
			e.handleCanvasInput(gtx)
			e.drawRooms(gtx)
			return layout.Dimensions{Size: gtx.Constraints.Max}
		},
	)
}

// handleCanvasInput processes pointer events for painting, panning and zooming
func (e *Editor) handleCanvasInput(gtx layout.Context) {
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, &e.canvasTag)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  &e.canvasTag,
			Kinds:   pointer.Press | pointer.Release | pointer.Drag | pointer.Move | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -100, Max: 100},
		})
		if !ok {
			break
		}
		if ev, ok := ev.(pointer.Event); ok {
			e.handlePointer(ev)
		}
	}
}

func toView(p f32.Point) view.Point {
	return view.Point{X: float64(p.X), Y: float64(p.Y)}
}

// handlePointer maps one pointer event to session operations. Primary
// paints solids, secondary clears them and the middle button pans.
func (e *Editor) handlePointer(ev pointer.Event) {
	pos := toView(ev.Position)

	switch ev.Kind {
	case pointer.Press:
		switch {
		case ev.Buttons.Contain(pointer.ButtonTertiary):
			e.isPanning = true
			e.lastMouse = pointerPos{ev.Position.X, ev.Position.Y}
		case ev.Buttons.Contain(pointer.ButtonPrimary):
			e.painting = paintPlace
			e.session.PlaceBlock(pos)
		case ev.Buttons.Contain(pointer.ButtonSecondary):
			e.painting = paintRemove
			e.session.RemoveBlock(pos)
		}

	case pointer.Release:
		if !ev.Buttons.Contain(pointer.ButtonTertiary) {
			e.isPanning = false
		}
		if !ev.Buttons.Contain(pointer.ButtonPrimary) && !ev.Buttons.Contain(pointer.ButtonSecondary) {
			e.painting = paintNone
		}

	case pointer.Drag:
		if e.isPanning {
			e.session.Pan(view.Point{
				X: float64(ev.Position.X - e.lastMouse.X),
				Y: float64(ev.Position.Y - e.lastMouse.Y),
			})
		}
		switch e.painting {
		case paintPlace:
			e.session.PlaceBlock(pos)
		case paintRemove:
			e.session.RemoveBlock(pos)
		}
		e.lastMouse = pointerPos{ev.Position.X, ev.Position.Y}

	case pointer.Move:
		e.lastMouse = pointerPos{ev.Position.X, ev.Position.Y}

	case pointer.Scroll:
		if ev.Scroll.Y == 0 {
			return
		}
		// scrolling up zooms in around the cursor
		v := e.session.View()
		factor := v.ZoomStep
		if ev.Scroll.Y > 0 {
			factor = 1 / factor
		}
		e.session.ZoomAt(pos, factor)
	}
}

// drawRooms draws either every room at its world position or only the
// current room at the view origin.
func (e *Editor) drawRooms(gtx layout.Context) {
	doc := e.session.Document()
	if doc == nil {
		return
	}
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()

	v := e.session.View()
	if e.session.AllRooms() {
		for i, r := range doc.Rooms() {
			topLeft := v.WorldToScreen(r.Origin())
			e.drawRoom(gtx, r, topLeft, v.ScaledTile(), i == doc.CurrentIndex())
		}
	} else if cur := doc.Current(); cur != nil {
		e.drawRoom(gtx, cur, v.Camera, v.ScaledTile(), true)
	}

	e.drawHover(gtx, doc, v)
}

func pixelRect(lo, hi view.Point) image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(int(math.Floor(lo.X)), int(math.Floor(lo.Y))),
		Max: image.Pt(int(math.Ceil(hi.X)), int(math.Ceil(hi.Y))),
	}
}

func fillRect(gtx layout.Context, lo, hi view.Point, col color.NRGBA) {
	r := pixelRect(lo, hi)
	paint.FillShape(gtx.Ops, col, clip.Rect(r).Op())
}

func strokeRect(gtx layout.Context, lo, hi view.Point, width float32, col color.NRGBA) {
	r := pixelRect(lo, hi)
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: clip.Rect(r).Path(), Width: width}.Op())
}

func (e *Editor) drawRoom(gtx layout.Context, r *mapdoc.Room, topLeft view.Point, size float64, selected bool) {
	g := r.Grid()
	bottomRight := view.Point{
		X: topLeft.X + float64(g.Width())*size,
		Y: topLeft.Y + float64(g.Height())*size,
	}

	// skip rooms entirely off screen
	canvasWidth := float64(gtx.Constraints.Max.X)
	canvasHeight := float64(gtx.Constraints.Max.Y)
	if bottomRight.X < 0 || topLeft.X > canvasWidth || bottomRight.Y < 0 || topLeft.Y > canvasHeight {
		return
	}

	fillRect(gtx, topLeft, bottomRight, preview.RoomFill)

	for row := 0; row < g.Height(); row++ {
		y := topLeft.Y + float64(row)*size
		if y+size < 0 || y > canvasHeight {
			continue
		}
		for col := 0; col < g.Width(); col++ {
			x := topLeft.X + float64(col)*size
			if x+size < 0 || x > canvasWidth {
				continue
			}
			ch, _ := g.Get(col, row)
			c, ok := preview.TileColor(ch, g.Neighbors(col, row, grid.IsSolid))
			if !ok {
				continue
			}
			fillRect(gtx, view.Point{X: x, Y: y}, view.Point{X: x + size, Y: y + size}, c)
		}
	}

	// grid lines once tiles are large enough to tell apart
	if size >= 6 {
		for col := 1; col < g.Width(); col++ {
			x := topLeft.X + float64(col)*size
			fillRect(gtx, view.Point{X: x, Y: topLeft.Y}, view.Point{X: x + 1, Y: bottomRight.Y}, preview.GridLine)
		}
		for row := 1; row < g.Height(); row++ {
			y := topLeft.Y + float64(row)*size
			fillRect(gtx, view.Point{X: topLeft.X, Y: y}, view.Point{X: bottomRight.X, Y: y + 1}, preview.GridLine)
		}
	}

	outline := preview.Outline
	width := float32(1)
	if selected && e.session.AllRooms() {
		outline = preview.Selected
		width = 2
	}
	strokeRect(gtx, topLeft, bottomRight, width, outline)

	if e.theme != nil && r.Name != "" {
		stack := op.Offset(image.Pt(int(topLeft.X)+4, int(topLeft.Y)+2)).Push(gtx.Ops)
		label := material.Caption(e.theme, r.Name)
		label.Color = preview.Label
		label.Layout(gtx)
		stack.Pop()
	}
}

// drawHover outlines the tile the next click would edit.
func (e *Editor) drawHover(gtx layout.Context, doc *mapdoc.Document, v view.Transform) {
	pos := view.Point{X: float64(e.lastMouse.X), Y: float64(e.lastMouse.Y)}
	room, col, row, ok := e.session.Target(pos)
	if !ok {
		return
	}
	r, err := doc.Room(room)
	if err != nil {
		return
	}

	var tile view.Rect
	if e.session.AllRooms() {
		tile = r.TileRect(col, row, v)
	} else {
		topLeft := v.TileToScreen(col, row)
		size := v.ScaledTile()
		tile = view.Rect{Min: topLeft, Max: view.Point{X: topLeft.X + size, Y: topLeft.Y + size}}
	}
	strokeRect(gtx, tile.Min, tile.Max, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 160})
}

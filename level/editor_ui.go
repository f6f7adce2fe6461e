package level

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// Layout renders the entire editor UI
func (e *Editor) Layout(gtx layout.Context) layout.Dimensions {
	e.drainReloads()

	// Register for global keyboard events
	event.Op(gtx.Ops, e)

	for {
		ev, ok := gtx.Event(e.keyFilters()...)
		if !ok {
			break
		}
		if ev, ok := ev.(key.Event); ok && ev.State == key.Press {
			e.handleKey(ev)
		}
	}

	// Handle close dialog buttons
	if e.closeSaveButton.Clicked(gtx) {
		if err := e.Save(); err != nil {
			log.Printf("Failed to save map: %v", err)
		} else {
			log.Printf("Map saved to %s", e.session.Path())
		}
		e.showCloseDialog = false
		e.shouldClose = true
	}
	if e.closeDiscardButton.Clicked(gtx) {
		e.showCloseDialog = false
		e.shouldClose = true
	}

	dims := layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		// Top bar
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return e.layoutTopBar(gtx)
		}),
		// Middle section (room list + canvas)
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis: layout.Horizontal,
			}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return e.layoutLeftBar(gtx)
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return e.layoutCanvas(gtx)
				}),
			)
		}),
	)

	if e.showCloseDialog {
		e.layoutCloseDialog(gtx)
	}

	return dims
}

func (e *Editor) keyFilters() []event.Filter {
	plain := []string{e.keys.ZoomIn, e.keys.ZoomOut, e.keys.ResetView, e.keys.AllRooms}
	shortcut := []string{e.keys.Save, e.keys.Undo, e.keys.Redo}

	filters := []event.Filter{key.Filter{Name: key.NameEscape}}
	for _, name := range plain {
		if name != "" {
			filters = append(filters, key.Filter{Name: key.Name(name), Optional: key.ModShift})
		}
	}
	for _, name := range shortcut {
		if name != "" {
			filters = append(filters, key.Filter{Name: key.Name(name), Required: key.ModShortcut, Optional: key.ModShift})
		}
	}
	return filters
}

// handleKey runs the action bound to a key press. It reports whether the
// key was bound.
func (e *Editor) handleKey(ev key.Event) bool {
	name := string(ev.Name)
	if ev.Name == key.NameEscape {
		if e.showCloseDialog {
			e.showCloseDialog = false
			return true
		}
		e.RequestClose()
		return true
	}

	if ev.Modifiers.Contain(key.ModShortcut) {
		switch name {
		case e.keys.Save:
			if err := e.Save(); err != nil {
				log.Printf("Failed to save map: %v", err)
			}
		case e.keys.Undo:
			e.session.Undo()
		case e.keys.Redo:
			e.session.Redo()
		default:
			return false
		}
		return true
	}

	switch name {
	case e.keys.ZoomIn:
		e.session.ZoomIn()
	case e.keys.ZoomOut:
		e.session.ZoomOut()
	case e.keys.ResetView:
		e.session.ResetView()
	case e.keys.AllRooms:
		e.session.ToggleAllRooms()
		e.allRoomsToggle.Value = e.session.AllRooms()
	default:
		return false
	}
	return true
}

// layoutTopBar renders the top toolbar with save button and map name
func (e *Editor) layoutTopBar(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min = gtx.Constraints.Max
	gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(40))
	gtx.Constraints.Max.Y = gtx.Constraints.Min.Y

	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			defer clip.Rect{Max: gtx.Constraints.Min}.Push(gtx.Ops).Pop()
			paint.ColorOp{Color: color.NRGBA{R: 40, G: 40, B: 40, A: 255}}.Add(gtx.Ops)
			paint.PaintOp{}.Add(gtx.Ops)
			return layout.Dimensions{Size: gtx.Constraints.Min}
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis:      layout.Horizontal,
				Alignment: layout.Middle,
			}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						label := material.Body1(e.theme, e.title())
						label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
						return label.Layout(gtx)
					})
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if e.saveButton.Clicked(gtx) {
						if err := e.Save(); err != nil {
							log.Printf("Failed to save map: %v", err)
						} else {
							log.Printf("Map saved to %s", e.session.Path())
						}
					}

					if e.saveIcon != nil {
						btn := material.IconButton(e.theme, &e.saveButton, e.saveIcon, "Save map")
						if e.session.Dirty() {
							btn.Background = color.NRGBA{R: 200, G: 120, B: 60, A: 255} // Orange when dirty
						} else {
							btn.Background = color.NRGBA{R: 60, G: 120, B: 200, A: 255}
						}
						btn.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
						btn.Size = unit.Dp(20)
						return btn.Layout(gtx)
					}
					return layout.Dimensions{}
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					v := e.session.View()
					label := material.Caption(e.theme, fmt.Sprintf("Zoom %.0f%%", v.Zoom()*100))
					label.Color = color.NRGBA{R: 170, G: 170, B: 170, A: 255}
					return label.Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					label := material.Caption(e.theme, e.status)
					label.Color = color.NRGBA{R: 170, G: 170, B: 170, A: 255}
					label.MaxLines = 1
					return label.Layout(gtx)
				}),
			)
		},
	)
}

func (e *Editor) title() string {
	title := "Map: " + filepath.Base(e.session.Path())
	if doc := e.session.Document(); doc != nil {
		if cur := doc.Current(); cur != nil && !e.session.AllRooms() {
			title += " / " + cur.Name
		}
	}
	if e.session.Dirty() {
		title += " *"
	}
	return title
}

// layoutLeftBar renders the room list and the display mode toggle
func (e *Editor) layoutLeftBar(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min.X = gtx.Dp(unit.Dp(200))
	gtx.Constraints.Max.X = gtx.Constraints.Min.X

	if e.allRoomsToggle.Update(gtx) {
		e.session.SetAllRooms(e.allRoomsToggle.Value)
	}

	var names []string
	current := -1
	if doc := e.session.Document(); doc != nil {
		names = doc.RoomNames()
		current = doc.CurrentIndex()
	}
	for len(e.roomButtons) < len(names) {
		e.roomButtons = append(e.roomButtons, widget.Clickable{})
	}

	return layout.Background{}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			defer clip.Rect{Max: gtx.Constraints.Min}.Push(gtx.Ops).Pop()
			paint.ColorOp{Color: color.NRGBA{R: 50, G: 50, B: 50, A: 255}}.Add(gtx.Ops)
			paint.PaintOp{}.Add(gtx.Ops)
			return layout.Dimensions{Size: gtx.Constraints.Min}
		},
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis: layout.Vertical,
			}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						label := material.H6(e.theme, fmt.Sprintf("Rooms (%d)", len(names)))
						label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
						return label.Layout(gtx)
					})
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						box := material.CheckBox(e.theme, &e.allRoomsToggle, "Show all rooms")
						box.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
						box.IconColor = color.NRGBA{R: 80, G: 140, B: 200, A: 255}
						return box.Layout(gtx)
					})
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return material.List(e.theme, &e.roomList).Layout(gtx, len(names), func(gtx layout.Context, index int) layout.Dimensions {
						return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							if e.roomButtons[index].Clicked(gtx) {
								if err := e.session.SelectRoom(index); err != nil {
									log.Printf("select room: %v", err)
								}
							}

							name := names[index]
							if name == "" {
								name = fmt.Sprintf("Room %d", index)
							}
							button := material.Button(e.theme, &e.roomButtons[index], name)
							if index == current {
								button.Background = color.NRGBA{R: 80, G: 140, B: 200, A: 255}
							} else {
								button.Background = color.NRGBA{R: 70, G: 70, B: 70, A: 255}
							}
							button.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
							return button.Layout(gtx)
						})
					})
				}),
			)
		},
	)
}

// layoutCloseDialog renders the close confirmation dialog
func (e *Editor) layoutCloseDialog(gtx layout.Context) layout.Dimensions {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.ColorOp{Color: color.NRGBA{R: 0, G: 0, B: 0, A: 200}}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				defer clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, 8).Push(gtx.Ops).Pop()
				paint.ColorOp{Color: color.NRGBA{R: 45, G: 45, B: 45, A: 255}}.Add(gtx.Ops)
				paint.PaintOp{}.Add(gtx.Ops)
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(24)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{
						Axis: layout.Vertical,
					}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Inset{Bottom: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								label := material.H6(e.theme, "Unsaved Changes")
								label.Color = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
								return label.Layout(gtx)
							})
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Inset{Bottom: unit.Dp(24)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								gtx.Constraints.Max.X = gtx.Dp(unit.Dp(400))
								label := material.Body1(e.theme, "Do you want to save your changes before closing?")
								label.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
								return label.Layout(gtx)
							})
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Flex{
								Axis:    layout.Horizontal,
								Spacing: layout.SpaceEnd,
							}.Layout(gtx,
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									btn := material.Button(e.theme, &e.closeSaveButton, "Save")
									btn.Background = color.NRGBA{R: 60, G: 120, B: 200, A: 255}
									btn.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
									return layout.Inset{Right: unit.Dp(8)}.Layout(gtx, btn.Layout)
								}),
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									btn := material.Button(e.theme, &e.closeDiscardButton, "Discard")
									btn.Background = color.NRGBA{R: 200, G: 80, B: 60, A: 255}
									btn.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
									return btn.Layout(gtx)
								}),
							)
						}),
					)
				})
			},
		)
	})
}

package level

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/bloodmagesoftware/summit/editor"
	"github.com/bloodmagesoftware/summit/project"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

// selfWriteWindow is how long after a save file change events are assumed to
// be our own write.
const selfWriteWindow = time.Second

// Editor is the window component for one editing session: it turns input
// into session operations and draws the document.
type Editor struct {
	theme   *material.Theme
	session *editor.Session
	keys    project.KeyConfig

	// UI state
	roomList       widget.List
	roomButtons    []widget.Clickable // clickable widgets for each room
	allRoomsToggle widget.Bool
	saveButton     widget.Clickable
	saveIcon       *widget.Icon
	status         string // last message shown in the top bar

	// Close confirmation dialog
	showCloseDialog    bool
	closeSaveButton    widget.Clickable
	closeDiscardButton widget.Clickable
	shouldClose        bool

	// Pointer state for canvas interaction
	canvasTag bool // event target for canvas pointer input
	isPanning bool
	lastMouse pointerPos
	painting  paintMode

	// external file changes
	reloads  <-chan string
	lastSave time.Time
}

type pointerPos struct{ X, Y float32 }

type paintMode int

const (
	paintNone paintMode = iota
	paintPlace
	paintRemove
)

// NewEditor creates an editor for an open session.
func NewEditor(theme *material.Theme, session *editor.Session, keys project.KeyConfig) *Editor {
	saveIcon, err := widget.NewIcon(icons.ContentSave)
	if err != nil {
		log.Printf("Failed to load save icon: %v", err)
	}

	e := &Editor{
		theme:   theme,
		session: session,
		keys:    keys,
		roomList: widget.List{
			List: layout.List{
				Axis: layout.Vertical,
			},
		},
		saveIcon: saveIcon,
	}
	e.allRoomsToggle.Value = session.AllRooms()
	return e
}

// Session returns the underlying editing session.
func (e *Editor) Session() *editor.Session {
	return e.session
}

// Watch makes the editor reload the document when a path arrives on ch.
// Paths are consumed during Layout, so the sender should invalidate the
// window after each send.
func (e *Editor) Watch(ch <-chan string) {
	e.reloads = ch
}

// HasUnsavedChanges returns true if there are unsaved edits.
func (e *Editor) HasUnsavedChanges() bool {
	return e.session.Dirty()
}

// Status is the message currently shown to the user.
func (e *Editor) Status() string {
	return e.status
}

// Save writes the document and runs the converter.
func (e *Editor) Save() error {
	e.lastSave = time.Now()
	if err := e.session.Save(context.Background()); err != nil {
		e.status = err.Error()
		return err
	}
	e.status = "Saved " + filepath.Base(e.session.Path())
	return nil
}

// Reload re-reads the document after it changed on disk. Unsaved edits are
// never discarded; the change is only reported.
func (e *Editor) Reload(path string) {
	if time.Since(e.lastSave) < selfWriteWindow {
		return
	}
	if !samePath(path, e.session.Path()) {
		return
	}
	if e.session.Dirty() {
		e.status = "File changed on disk; unsaved edits kept"
		return
	}
	if err := e.session.Load(e.session.Path()); err != nil {
		e.status = fmt.Sprintf("Reload failed: %v", err)
		log.Printf("reload %s: %v", path, err)
		return
	}
	e.status = "Reloaded " + filepath.Base(path)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func (e *Editor) drainReloads() {
	if e.reloads == nil {
		return
	}
	for {
		select {
		case path, ok := <-e.reloads:
			if !ok {
				e.reloads = nil
				return
			}
			e.Reload(path)
		default:
			return
		}
	}
}

// RequestClose is called when the user asks to close the window.
// Returns true if the window should close, false otherwise.
func (e *Editor) RequestClose() bool {
	if !e.session.Dirty() {
		e.shouldClose = true
		return true
	}

	if !e.showCloseDialog {
		e.showCloseDialog = true
		return false
	}

	return e.shouldClose
}

// ShouldClose returns true if the window should close
func (e *Editor) ShouldClose() bool {
	return e.shouldClose
}

package editor

// cellChange records one tile write for undo.
type cellChange struct {
	Room     int
	Col, Row int
	Old, New rune
}

// history is a bounded undo/redo stack of single-cell changes. Each click
// writes at most one cell, so one entry is one user action.
type history struct {
	undo  []cellChange
	redo  []cellChange
	limit int
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = 256
	}
	return &history{limit: limit}
}

func (h *history) push(c cellChange) {
	h.undo = append(h.undo, c)
	if len(h.undo) > h.limit {
		// drop oldest
		h.undo = h.undo[1:]
	}
	h.redo = h.redo[:0]
}

func (h *history) popUndo() (cellChange, bool) {
	n := len(h.undo)
	if n == 0 {
		return cellChange{}, false
	}
	c := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, c)
	return c, true
}

func (h *history) popRedo() (cellChange, bool) {
	n := len(h.redo)
	if n == 0 {
		return cellChange{}, false
	}
	c := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, c)
	return c, true
}

func (h *history) reset() {
	h.undo = nil
	h.redo = nil
}

package grid

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Empty is the tile character for an empty cell.
	Empty rune = '0'
	// Solid is the generic solid tile character the editor paints with.
	Solid rune = '9'
)

var (
	// ErrFormat is returned when a solids block cannot be decoded.
	ErrFormat = errors.New("malformed solids block")
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("tile coordinate out of bounds")
)

// Grid is one room's solid-tile character matrix, stored row-major.
// It is agnostic to what the characters mean; any rune round-trips.
type Grid struct {
	width  int
	height int
	cells  []rune

	// delims[i] is the text that followed row i in the source ("" after an
	// unterminated last row), so Encode is lossless.
	delims []string
}

// New creates a width x height grid filled with fill.
func New(width, height int, fill rune) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([]rune, width*height)
	for i := range cells {
		cells[i] = fill
	}
	delims := make([]string, height)
	for i := 0; i < height-1; i++ {
		delims[i] = "\n"
	}
	return &Grid{width: width, height: height, cells: cells, delims: delims}
}

// Decode parses a newline-delimited solids block, one character per column.
// All rows must have the same length. Each row may end in "\n" or "\r\n"
// independently, and a trailing delimiter is accepted; Encode reproduces
// the delimiters exactly.
func Decode(text string) (*Grid, error) {
	g := &Grid{}
	if text == "" {
		return g, nil
	}

	lines := strings.Split(text, "\n")
	trailing := lines[len(lines)-1] == ""
	if trailing {
		lines = lines[:len(lines)-1]
	}

	g.height = len(lines)
	g.delims = make([]string, g.height)
	for i, line := range lines {
		switch {
		case i == len(lines)-1 && !trailing:
			// unterminated last row keeps any bare '\r' as data
		case strings.HasSuffix(line, "\r"):
			line = line[:len(line)-1]
			g.delims[i] = "\r\n"
		default:
			g.delims[i] = "\n"
		}

		row := []rune(line)
		if i == 0 {
			g.width = len(row)
			g.cells = make([]rune, 0, g.width*g.height)
		} else if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrFormat, i, len(row), g.width)
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Encode renders the grid back to its textual form.
func (g *Grid) Encode() string {
	if g.height == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(g.cells) + 2*g.height)
	for row := 0; row < g.height; row++ {
		b.WriteString(string(g.cells[row*g.width : (row+1)*g.width]))
		b.WriteString(g.delims[row])
	}
	return b.String()
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Contains reports whether (col, row) addresses a cell.
func (g *Grid) Contains(col, row int) bool {
	return col >= 0 && col < g.width && row >= 0 && row < g.height
}

func (g *Grid) index(col, row int) (int, error) {
	if !g.Contains(col, row) {
		return 0, fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrOutOfBounds, col, row, g.width, g.height)
	}
	return row*g.width + col, nil
}

// Get returns the character at (col, row).
func (g *Grid) Get(col, row int) (rune, error) {
	i, err := g.index(col, row)
	if err != nil {
		return 0, err
	}
	return g.cells[i], nil
}

// Set overwrites the character at (col, row).
func (g *Grid) Set(col, row int, ch rune) error {
	i, err := g.index(col, row)
	if err != nil {
		return err
	}
	g.cells[i] = ch
	return nil
}

// Cells returns a copy of the row-major cell sequence.
func (g *Grid) Cells() []rune {
	out := make([]rune, len(g.cells))
	copy(out, g.cells)
	return out
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = g.Cells()
	c.delims = append([]string(nil), g.delims...)
	return &c
}

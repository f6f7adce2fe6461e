package grid

// Mask is an 8-bit neighbor occupancy mask. Bit i is set when the neighbor in
// direction i is filled, in the order N, NE, E, SE, S, SW, W, NW.
type Mask uint8

const (
	North Mask = 1 << iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directions = [8]struct{ dx, dy int }{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Internal reports whether all eight neighbors are filled.
func (m Mask) Internal() bool { return m == 0xFF }

// Has reports whether every bit of d is set.
func (m Mask) Has(d Mask) bool { return m&d == d }

// IsSolid is the default fill predicate: everything but empty and blank.
func IsSolid(ch rune) bool {
	return ch != Empty && ch != ' '
}

// Neighbors computes the occupancy mask around (col, row). Cells outside the
// grid count as empty.
func (g *Grid) Neighbors(col, row int, filled func(rune) bool) Mask {
	if filled == nil {
		filled = IsSolid
	}
	var m Mask
	for i, d := range directions {
		x, y := col+d.dx, row+d.dy
		if !g.Contains(x, y) {
			continue
		}
		if filled(g.cells[y*g.width+x]) {
			m |= 1 << i
		}
	}
	return m
}

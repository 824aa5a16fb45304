package maze

import (
	"math/rand/v2"
)

// Maze is a height×width grid of open-direction sets. Cells are addressed by
// (x, y) with 0 ≤ x < Width and 0 ≤ y < Height; y = 0 is the northern row.
//
// A Maze returned by [Generate] is not mutated afterwards and is safe to read
// from multiple goroutines.
type Maze struct {
	height int
	width  int
	cells  []Dirs // row-major: index = x + y*width
}

func newMaze(height, width int) *Maze {
	return &Maze{
		height: height,
		width:  width,
		cells:  make([]Dirs, height*width),
	}
}

// NewRand returns a deterministic random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Height returns the number of rows.
func (m *Maze) Height() int { return m.height }

// Width returns the number of columns.
func (m *Maze) Width() int { return m.width }

// Cells returns height*width.
func (m *Maze) Cells() int { return len(m.cells) }

// InBounds reports whether (x, y) is a cell of m.
func (m *Maze) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns the open directions of cell (x, y). It panics if the cell is out
// of bounds.
func (m *Maze) At(x, y int) Dirs {
	if !m.InBounds(x, y) {
		panic("maze: cell out of bounds")
	}
	return m.cells[m.index(x, y)]
}

// Neighbor returns the cell one step from (x, y) towards d. ok is false when
// that step would leave the grid.
func (m *Maze) Neighbor(x, y int, d Direction) (nx, ny int, ok bool) {
	dx, dy := d.Offset()
	nx, ny = x+dx, y+dy
	if !m.InBounds(x, y) || !m.InBounds(nx, ny) {
		return 0, 0, false
	}
	return nx, ny, true
}

// Grid returns a copy of the open-direction sets indexed as [y][x].
func (m *Maze) Grid() [][]Dirs {
	grid := make([][]Dirs, m.height)
	for y := range grid {
		row := make([]Dirs, m.width)
		copy(row, m.cells[y*m.width:(y+1)*m.width])
		grid[y] = row
	}
	return grid
}

// Passages returns the number of carved connections, counting each
// connection once.
func (m *Maze) Passages() int {
	n := 0
	for _, c := range m.cells {
		if c.Has(East) {
			n++
		}
		if c.Has(South) {
			n++
		}
	}
	return n
}

// Equal reports whether m and other have the same size and open sets.
func (m *Maze) Equal(other *Maze) bool {
	if other == nil || m.height != other.height || m.width != other.width {
		return false
	}
	for i, c := range m.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

func (m *Maze) index(x, y int) int { return x + y*m.width }

// carve opens the wall between (x, y) and its neighbour towards d on both sides.
func (m *Maze) carve(x, y, nx, ny int, d Direction) {
	i, j := m.index(x, y), m.index(nx, ny)
	m.cells[i] = m.cells[i].With(d)
	m.cells[j] = m.cells[j].With(d.Opposite())
}

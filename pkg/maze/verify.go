package maze

import (
	apperrors "github.com/matzehuels/mazegen/pkg/errors"
)

// Verify checks that m is a perfect maze: no open direction leaves the grid,
// every open direction is mirrored by the neighbour, and the carved
// connections form a spanning tree. It returns an INVALID_MAZE error naming
// the first violation found.
func Verify(m *Maze) error {
	if m == nil || m.Cells() == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidMaze, "maze is empty")
	}

	for y := range m.height {
		for x := range m.width {
			c := m.At(x, y)
			for _, d := range c.List() {
				nx, ny, ok := m.Neighbor(x, y, d)
				if !ok {
					return apperrors.New(apperrors.ErrCodeInvalidMaze, "cell (%d,%d) opens %s out of the grid", x, y, d)
				}
				if !m.At(nx, ny).Has(d.Opposite()) {
					return apperrors.New(apperrors.ErrCodeInvalidMaze, "cell (%d,%d) opens %s but (%d,%d) does not open %s", x, y, d, nx, ny, d.Opposite())
				}
			}
		}
	}

	if got, want := m.Passages(), m.Cells()-1; got != want {
		return apperrors.New(apperrors.ErrCodeInvalidMaze, "%d passages carved, want %d", got, want)
	}
	if reached := m.reachable(0, 0); reached != m.Cells() {
		return apperrors.New(apperrors.ErrCodeInvalidMaze, "only %d of %d cells reachable from (0,0)", reached, m.Cells())
	}
	return nil
}

// reachable counts the cells connected to (x, y) through open passages.
func (m *Maze) reachable(x, y int) int {
	seen := make([]bool, m.Cells())
	queue := []int{m.index(x, y)}
	seen[queue[0]] = true
	count := 0
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		count++
		cx, cy := i%m.width, i/m.width
		for _, d := range m.cells[i].List() {
			nx, ny, ok := m.Neighbor(cx, cy, d)
			if !ok {
				continue
			}
			j := m.index(nx, ny)
			if !seen[j] {
				seen[j] = true
				queue = append(queue, j)
			}
		}
	}
	return count
}

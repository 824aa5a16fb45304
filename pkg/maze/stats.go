package maze

// Stats summarizes the shape of a maze by how many passages each cell opens.
type Stats struct {
	Cells     int `json:"cells"`
	Passages  int `json:"passages"`
	DeadEnds  int `json:"dead_ends"` // exactly one open direction
	Corridors int `json:"corridors"` // exactly two
	Junctions int `json:"junctions"` // three or four
}

// Analyze counts dead ends, corridors and junctions in m.
func Analyze(m *Maze) Stats {
	s := Stats{Cells: m.Cells(), Passages: m.Passages()}
	for _, c := range m.cells {
		switch n := c.Len(); {
		case n == 1:
			s.DeadEnds++
		case n == 2:
			s.Corridors++
		case n >= 3:
			s.Junctions++
		}
	}
	return s
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Cells += o.Cells
	s.Passages += o.Passages
	s.DeadEnds += o.DeadEnds
	s.Corridors += o.Corridors
	s.Junctions += o.Junctions
}

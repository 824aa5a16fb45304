package grid

import (
	"math"
	"testing"

	"github.com/matzehuels/mazegen/pkg/maze"
)

func mustGenerate(t *testing.T, h, w int, seed uint64) *maze.Maze {
	t.Helper()
	m, err := maze.Generate(h, w, maze.NewRand(seed))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return m
}

func TestBuildCounts(t *testing.T) {
	m := mustGenerate(t, 6, 9, 1)
	l := Build(m, 800, 600, 10)

	if got := len(l.Cells()); got != 54 {
		t.Errorf("cells = %d, want 54", got)
	}
	if got := len(l.Passages()); got != 53 {
		t.Errorf("passages = %d, want 53", got)
	}
	if l.Rows != 6 || l.Cols != 9 {
		t.Errorf("Rows/Cols = %d/%d, want 6/9", l.Rows, l.Cols)
	}
}

func TestBuildGeometry(t *testing.T) {
	m := mustGenerate(t, 1, 2, 1)
	l := Build(m, 110, 60, 10)

	if l.CellWidth != 50 || l.CellHeight != 50 {
		t.Fatalf("cell size = %gx%g, want 50x50", l.CellWidth, l.CellHeight)
	}
	cells := l.Cells()
	want := []Rect{
		{X: 10, Y: 10, W: 40, H: 40, Kind: KindCell, Col: 0, Row: 0},
		{X: 60, Y: 10, W: 40, H: 40, Kind: KindCell, Col: 1, Row: 0},
	}
	for i, r := range cells {
		if r != want[i] {
			t.Errorf("cell %d = %+v, want %+v", i, r, want[i])
		}
	}

	passages := l.Passages()
	if len(passages) != 1 {
		t.Fatalf("passages = %d, want 1", len(passages))
	}
	p := passages[0]
	if p.Dir != maze.East || p.X != cells[0].Right() || p.Right() != cells[1].X {
		t.Errorf("passage %+v does not bridge the two cells", p)
	}
	if p.Y != cells[0].Y || p.H != cells[0].H {
		t.Errorf("passage %+v not aligned with the cell row", p)
	}
}

func TestBuildPassagesBridgeNeighbours(t *testing.T) {
	m := mustGenerate(t, 8, 8, 4)
	l := Build(m, 410, 410, 10)
	cellAt := make(map[[2]int]Rect)
	for _, c := range l.Cells() {
		cellAt[[2]int{c.Col, c.Row}] = c
	}
	for _, p := range l.Passages() {
		owner := cellAt[[2]int{p.Col, p.Row}]
		switch p.Dir {
		case maze.East:
			next := cellAt[[2]int{p.Col + 1, p.Row}]
			if math.Abs(p.Right()-next.X) > 1e-9 {
				t.Errorf("east passage at (%d,%d) ends at %g, neighbour starts at %g", p.Col, p.Row, p.Right(), next.X)
			}
		case maze.South:
			next := cellAt[[2]int{p.Col, p.Row + 1}]
			if math.Abs(p.Bottom()-next.Y) > 1e-9 {
				t.Errorf("south passage at (%d,%d) ends at %g, neighbour starts at %g", p.Col, p.Row, p.Bottom(), next.Y)
			}
		default:
			t.Errorf("unexpected passage direction %s", p.Dir)
		}
		if !m.At(owner.Col, owner.Row).Has(p.Dir) {
			t.Errorf("passage at (%d,%d) %s not open in maze", p.Col, p.Row, p.Dir)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		w, h, m    float64
		wantErr    bool
	}{
		{"fits", 10, 10, 800, 800, 10, false},
		{"no margin", 100, 100, 200, 200, 0, false},
		{"negative margin", 10, 10, 800, 800, -1, true},
		{"zero frame", 10, 10, 0, 800, 2, true},
		{"too crowded", 100, 100, 800, 800, 10, true},
		{"no cells", 0, 10, 800, 800, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.rows, tt.cols, tt.w, tt.h, tt.m)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

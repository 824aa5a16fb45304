package grid

import (
	"github.com/matzehuels/mazegen/pkg/maze"
)

// Kind distinguishes cell floors from the passages between them.
type Kind uint8

const (
	KindCell Kind = iota
	KindPassage
)

// Rect is an axis-aligned rectangle in frame units (pixels for raster sinks).
// X and Y name the top-left corner.
type Rect struct {
	X, Y, W, H float64
	Kind       Kind
	// Col and Row identify the cell the rect belongs to. Passages belong to
	// the cell on their North or West side.
	Col, Row int
	// Dir is the direction of a passage from its owning cell (East or South).
	Dir maze.Direction
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Layout is the complete drawable form of a maze.
type Layout struct {
	FrameWidth  float64
	FrameHeight float64
	Margin      float64
	CellWidth   float64
	CellHeight  float64
	Rows, Cols  int
	Rects       []Rect
}

// Cells returns only the cell floor rects.
func (l Layout) Cells() []Rect { return l.filter(KindCell) }

// Passages returns only the passage rects.
func (l Layout) Passages() []Rect { return l.filter(KindPassage) }

func (l Layout) filter(k Kind) []Rect {
	var out []Rect
	for _, r := range l.Rects {
		if r.Kind == k {
			out = append(out, r)
		}
	}
	return out
}

// Build computes the layout of m inside a frameWidth×frameHeight frame with
// the given wall margin. A margin at or above the cell size yields empty
// floors; callers should validate dimensions first (see [Validate]).
func Build(m *maze.Maze, frameWidth, frameHeight, margin float64) Layout {
	cols, rows := m.Width(), m.Height()
	l := Layout{
		FrameWidth:  frameWidth,
		FrameHeight: frameHeight,
		Margin:      margin,
		CellWidth:   (frameWidth - margin) / float64(cols),
		CellHeight:  (frameHeight - margin) / float64(rows),
		Rows:        rows,
		Cols:        cols,
		Rects:       make([]Rect, 0, m.Cells()+m.Passages()),
	}
	w := max(l.CellWidth-margin, 0)
	h := max(l.CellHeight-margin, 0)

	for row := range rows {
		for col := range cols {
			x := float64(col)*l.CellWidth + margin
			y := float64(row)*l.CellHeight + margin
			l.Rects = append(l.Rects, Rect{X: x, Y: y, W: w, H: h, Kind: KindCell, Col: col, Row: row})

			open := m.At(col, row)
			// North and West passages are the same rects seen from the
			// other cell.
			if open.Has(maze.East) {
				l.Rects = append(l.Rects, Rect{X: x + w, Y: y, W: margin, H: h, Kind: KindPassage, Col: col, Row: row, Dir: maze.East})
			}
			if open.Has(maze.South) {
				l.Rects = append(l.Rects, Rect{X: x, Y: y + h, W: w, H: margin, Kind: KindPassage, Col: col, Row: row, Dir: maze.South})
			}
		}
	}
	return l
}

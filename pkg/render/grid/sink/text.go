package sink

import (
	"strings"

	"github.com/matzehuels/mazegen/pkg/maze"
)

// RenderText draws m as ASCII art: "+" corners, "---" and "|" walls, and
// blanks where passages are open. The result has 2*height+1 lines.
func RenderText(m *maze.Maze) string {
	var b strings.Builder
	for y := range m.Height() {
		b.WriteByte('+')
		for x := range m.Width() {
			if m.At(x, y).Has(maze.North) {
				b.WriteString("   +")
			} else {
				b.WriteString("---+")
			}
		}
		b.WriteByte('\n')

		b.WriteByte('|')
		for x := range m.Width() {
			if m.At(x, y).Has(maze.East) {
				b.WriteString("    ")
			} else {
				b.WriteString("   |")
			}
		}
		b.WriteByte('\n')
	}
	b.WriteByte('+')
	b.WriteString(strings.Repeat("---+", m.Width()))
	b.WriteByte('\n')
	return b.String()
}

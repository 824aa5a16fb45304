package nodelink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Spacing is the distance between neighbouring nodes in inches.
	// Defaults to 0.3.
	Spacing float64
	// Labels prints each node's coordinates and open directions.
	Labels bool
}

// ToDOT converts m to Graphviz DOT with one pinned node per cell and one
// edge per carved passage.
func ToDOT(m *maze.Maze, opts Options) string {
	spacing := opts.Spacing
	if spacing <= 0 {
		spacing = 0.3
	}

	var buf bytes.Buffer
	buf.WriteString("graph maze {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	if opts.Labels {
		buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=8, margin=\"0.02,0.02\"];\n")
	} else {
		buf.WriteString("  node [shape=circle, style=filled, fillcolor=black, label=\"\", width=0.08, fixedsize=true];\n")
	}
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	for y := range m.Height() {
		for x := range m.Width() {
			attrs := fmt.Sprintf("pos=\"%.2f,%.2f!\"", float64(x)*spacing, float64(-y)*spacing)
			if opts.Labels {
				attrs += fmt.Sprintf(", label=\"%d,%d\\n%s\"", x, y, m.At(x, y))
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(x, y), attrs)
		}
	}

	buf.WriteString("\n")
	for y := range m.Height() {
		for x := range m.Width() {
			for _, d := range []maze.Direction{maze.East, maze.South} {
				if !m.At(x, y).Has(d) {
					continue
				}
				nx, ny, ok := m.Neighbor(x, y, d)
				if !ok {
					continue
				}
				fmt.Fprintf(&buf, "  %q -- %q;\n", nodeID(x, y), nodeID(nx, ny))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(x, y int) string { return fmt.Sprintf("%d,%d", x, y) }

// RenderSVG renders a DOT graph produced by [ToDOT] to SVG with the neato
// layout engine, honouring the pinned node positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render")
	}
	return buf.Bytes(), nil
}

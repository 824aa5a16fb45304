package maze

import (
	"math"
	"math/rand/v2"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
)

// MaxCells bounds height*width for a single maze.
const MaxCells = 1 << 24

// edge is a candidate connection from (x, y) to its North or West neighbour.
type edge struct {
	x, y int
	dir  Direction
}

// Option configures Generate.
type Option func(*options)

type options struct {
	merge Merge
}

// WithMerge selects the component tracking strategy. The default is
// [MergeRelabel].
func WithMerge(m Merge) Option {
	return func(o *options) { o.merge = m }
}

// ValidateDimensions checks that a height×width maze can be generated.
func ValidateDimensions(height, width int) error {
	if height < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidDimensions, "height must be at least 1, got %d", height)
	}
	if width < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidDimensions, "width must be at least 1, got %d", width)
	}
	if height > math.MaxInt/width || height*width > MaxCells {
		return apperrors.New(apperrors.ErrCodeInvalidDimensions, "%dx%d maze exceeds the %d cell limit", height, width, MaxCells)
	}
	return nil
}

// Generate builds a random perfect maze with the given number of rows and
// columns, drawing all randomness from rng.
//
// Dimensions are validated before anything is allocated; invalid ones return
// an INVALID_DIMENSIONS error.
func Generate(height, width int, rng *rand.Rand, opts ...Option) (*Maze, error) {
	if err := ValidateDimensions(height, width); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "random source is required")
	}
	o := options{merge: MergeRelabel}
	for _, opt := range opts {
		opt(&o)
	}

	m := newMaze(height, width)
	comps, err := newComponents(o.merge, m.Cells())
	if err != nil {
		return nil, err
	}

	edges := candidateEdges(height, width)
	rng.Shuffle(len(edges), func(i, j int) {
		edges[i], edges[j] = edges[j], edges[i]
	})

	for _, e := range edges {
		nx, ny, ok := m.Neighbor(e.x, e.y, e.dir)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeInternal, "edge (%d,%d,%s) leaves the grid", e.x, e.y, e.dir)
		}
		a, b := m.index(e.x, e.y), m.index(nx, ny)
		if comps.same(a, b) {
			continue
		}
		m.carve(e.x, e.y, nx, ny, e.dir)
		comps.join(a, b)
	}
	return m, nil
}

// EdgeCount returns the number of candidate edges of a height×width grid.
func EdgeCount(height, width int) int {
	return 2*height*width - height - width
}

// candidateEdges lists every interior adjacency once, as a North edge for
// rows below the first and a West edge for columns right of the first.
func candidateEdges(height, width int) []edge {
	edges := make([]edge, 0, EdgeCount(height, width))
	for y := range height {
		for x := range width {
			if y > 0 {
				edges = append(edges, edge{x: x, y: y, dir: North})
			}
			if x > 0 {
				edges = append(edges, edge{x: x, y: y, dir: West})
			}
		}
	}
	return edges
}

package maze

import (
	"fmt"
	"strings"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
)

// Merge selects how Generate tracks which cells are already connected.
type Merge uint8

const (
	// MergeRelabel keeps one label per cell and rewrites every label of the
	// absorbed component after each carve. O(cells) per carve.
	MergeRelabel Merge = iota
	// MergeUnionFind keeps a disjoint-set forest with union by rank and path
	// compression.
	MergeUnionFind
)

var mergeNames = map[Merge]string{
	MergeRelabel:   "relabel",
	MergeUnionFind: "unionfind",
}

func (m Merge) String() string {
	if s, ok := mergeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Merge(%d)", uint8(m))
}

// ParseMerge converts a strategy name ("relabel" or "unionfind") to a Merge.
func ParseMerge(s string) (Merge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "relabel", "":
		return MergeRelabel, nil
	case "unionfind", "union-find":
		return MergeUnionFind, nil
	}
	return 0, apperrors.New(apperrors.ErrCodeInvalidMerge, "invalid merge strategy: %q (must be 'relabel' or 'unionfind')", s)
}

// components answers "are these two cells connected yet" and records new
// connections. Cells are addressed by their row-major index.
type components interface {
	same(a, b int) bool
	join(a, b int)
}

func newComponents(m Merge, cells int) (components, error) {
	switch m {
	case MergeRelabel:
		return newLabels(cells), nil
	case MergeUnionFind:
		return newDisjointSet(cells), nil
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidMerge, "unknown merge strategy %d", uint8(m))
}

// labels gives every cell an explicit component label.
type labels []int

// newLabels assigns cell i the label i, which equals x + y*width.
func newLabels(cells int) labels {
	l := make(labels, cells)
	for i := range l {
		l[i] = i
	}
	return l
}

func (l labels) same(a, b int) bool { return l[a] == l[b] }

// join moves every cell carrying a's label over to b's label.
func (l labels) join(a, b int) {
	from, to := l[a], l[b]
	for i, v := range l {
		if v == from {
			l[i] = to
		}
	}
}

// disjointSet is an index-based union-find forest.
type disjointSet struct {
	parent []int
	rank   []uint8
}

func newDisjointSet(cells int) *disjointSet {
	s := &disjointSet{
		parent: make([]int, cells),
		rank:   make([]uint8, cells),
	}
	for i := range s.parent {
		s.parent[i] = i
	}
	return s
}

// find returns the root of x, halving the path on the way up.
func (s *disjointSet) find(x int) int {
	for s.parent[x] != x {
		s.parent[x] = s.parent[s.parent[x]]
		x = s.parent[x]
	}
	return x
}

func (s *disjointSet) same(a, b int) bool { return s.find(a) == s.find(b) }

func (s *disjointSet) join(a, b int) {
	ra, rb := s.find(a), s.find(b)
	if ra == rb {
		return
	}
	switch {
	case s.rank[ra] < s.rank[rb]:
		s.parent[ra] = rb
	case s.rank[ra] > s.rank[rb]:
		s.parent[rb] = ra
	default:
		s.parent[ra] = rb
		s.rank[rb]++
	}
}

// Package maze generates random perfect mazes on a rectangular grid.
//
// A perfect maze is a spanning tree over the grid's cells: every cell is
// reachable from every other cell by exactly one path. [Generate] builds one
// with a randomized Kruskal construction. Every candidate edge between a cell
// and its North or West neighbour is shuffled, then carved in order unless
// its endpoints already share a component.
//
// # Randomness
//
// The random source is passed explicitly, so a fixed seed always yields the
// same maze:
//
//	m, err := maze.Generate(20, 30, maze.NewRand(42))
//
// # Merge strategies
//
// Component tracking defaults to [MergeRelabel], which rewrites every label of
// the absorbed component on each successful carve. [MergeUnionFind] uses a
// disjoint-set forest instead. Both make identical carve decisions for the
// same edge order, so they return equal mazes for equal seeds.
//
// # Output
//
// A [Maze] holds one [Dirs] set per cell. An open direction means there is no
// wall between the cell and its neighbour in that direction; open sets are
// always symmetric. [Verify] checks these invariants.
package maze

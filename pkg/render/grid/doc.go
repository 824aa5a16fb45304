// Package grid converts a maze into drawable rectangles.
//
// # Overview
//
// [Build] lays a [maze.Maze] out inside a frame. Every cell becomes a filled
// [Rect], and every carved passage becomes a second rect that bridges the gap
// between two neighbouring cells. Whatever is left uncovered is wall:
// renderers paint the background in the wall colour and the rects in the floor
// colour.
//
//	l := grid.Build(m, 800, 600, 10)
//	for _, r := range l.Rects {
//	    draw(r.X, r.Y, r.W, r.H)
//	}
//
// The geometry matches the classic display loop: with margin m, a cell is
// (frameWidth-m)/width wide, its floor is inset by m on the top and left, and
// each passage is exactly m thick.
//
// Output formats live in the [sink] subpackage.
//
// [sink]: github.com/matzehuels/mazegen/pkg/render/grid/sink
package grid

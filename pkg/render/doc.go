// Package render turns generated mazes into pictures.
//
// # Overview
//
// Rendering is split the same way for every output:
//
//   - [grid]: computes floor and passage rectangles from a maze
//   - [grid/sink]: writes a layout as SVG, PNG, PDF, or ASCII text
//   - [nodelink]: draws the carved spanning tree as a Graphviz graph
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool (from
// librsvg). The grid PDF sink uses it.
//
//	svg := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(svg)
//
// [grid]: github.com/matzehuels/mazegen/pkg/render/grid
// [grid/sink]: github.com/matzehuels/mazegen/pkg/render/grid/sink
// [nodelink]: github.com/matzehuels/mazegen/pkg/render/nodelink
package render

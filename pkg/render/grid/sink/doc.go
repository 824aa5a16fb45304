// Package sink provides output format renderers for maze layouts.
//
// # Overview
//
// A "sink" transforms a computed [grid.Layout] (or the maze itself, for
// text) into a final output format:
//
//   - SVG: vector output, one rect per floor and passage
//   - PNG: raster output drawn in-process with fogleman/gg
//   - PDF: print-ready output (requires rsvg-convert)
//   - Text: ASCII art for terminals
//
// Colours come from a [Palette]: the background is painted in the wall
// colour and every layout rect in the floor colour.
//
//	l := grid.Build(m, 800, 800, 10)
//	svg := sink.RenderSVG(l, sink.WithPalette(sink.DefaultPalette()))
//	png, err := sink.RenderPNG(l, sink.WithScale(2))
//	txt := sink.RenderText(m)
//
// [grid.Layout]: github.com/matzehuels/mazegen/pkg/render/grid.Layout
package sink

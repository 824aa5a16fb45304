// Package pkg provides the core libraries for mazegen.
//
// # Overview
//
// mazegen builds random perfect mazes: every cell of a rectangular grid is
// reachable from every other cell by exactly one path. The pkg directory is
// organized by stage:
//
//  1. [maze] - Generation, verification and statistics
//  2. [render] - Rectangle layout and output sinks (SVG, PNG, PDF, text, DOT)
//  3. [pipeline] - Orchestration (generate → render)
//  4. [config] - TOML settings shared by the CLI and the server
//  5. [cache] - Rendered artifact storage for the HTTP server
//
// Supporting packages: [errors] for coded errors, [observability] for
// pipeline and HTTP hooks, and [buildinfo] for version metadata.
//
// # Architecture
//
//	height, width, seed
//	         ↓
//	maze.Generate      (randomized Kruskal over shuffled North/West edges)
//	         ↓
//	grid.Build         (floor and passage rectangles inside a frame)
//	         ↓
//	sink.RenderSVG / RenderPNG / RenderPDF / RenderText, nodelink.ToDOT
//
// # Quick Start
//
//	m, err := maze.Generate(20, 30, maze.NewRand(42))
//	if err != nil {
//	    return err
//	}
//	if err := grid.Validate(20, 30, 800, 600, 10); err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(grid.Build(m, 800, 600, 10))
//
// Or run both stages with options and defaults applied:
//
//	result, err := pipeline.NewRunner(logger).Execute(ctx, pipeline.Options{
//	    Height:  20,
//	    Width:   30,
//	    Seed:    42,
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatText},
//	})
//
// [maze]: github.com/matzehuels/mazegen/pkg/maze
// [render]: github.com/matzehuels/mazegen/pkg/render
// [pipeline]: github.com/matzehuels/mazegen/pkg/pipeline
// [config]: github.com/matzehuels/mazegen/pkg/config
// [cache]: github.com/matzehuels/mazegen/pkg/cache
// [errors]: github.com/matzehuels/mazegen/pkg/errors
// [observability]: github.com/matzehuels/mazegen/pkg/observability
// [buildinfo]: github.com/matzehuels/mazegen/pkg/buildinfo
package pkg

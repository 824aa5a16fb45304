package pipeline

import (
	"context"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/render/grid"
	"github.com/matzehuels/mazegen/pkg/render/grid/sink"
	"github.com/matzehuels/mazegen/pkg/render/nodelink"
)

// renderAll generates every requested format. The rectangle layout is built
// once and shared by the image sinks.
func renderAll(ctx context.Context, m *maze.Maze, opts Options) (map[string][]byte, grid.Layout, error) {
	var l grid.Layout
	if NeedsLayout(opts.Formats) {
		l = grid.Build(m, opts.FrameWidth, opts.FrameHeight, opts.Margin)
		opts.Logger.Debug("built layout",
			"cells", len(l.Cells()),
			"passages", len(l.Passages()),
			"cell_width", l.CellWidth,
			"cell_height", l.CellHeight)
	}

	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, grid.Layout{}, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, sink.WithPNGPalette(opts.palette), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatText:
			data = []byte(sink.RenderText(m))
		case FormatDOT:
			data = []byte(nodelink.ToDOT(m, nodelink.Options{Labels: opts.Labels}))
		case FormatGraph:
			data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(m, nodelink.Options{Labels: opts.Labels}))
		default:
			return nil, grid.Layout{}, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			code := apperrors.GetCode(err)
			if code == "" {
				code = apperrors.ErrCodeInternal
			}
			return nil, grid.Layout{}, apperrors.Wrap(code, err, "render %s", format)
		}
		artifacts[format] = data
		opts.Logger.Debug("rendered format", "format", format, "bytes", len(data))
	}

	return artifacts, l, nil
}

// buildSVGOptions constructs SVG rendering options from pipeline options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithPalette(opts.palette)}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	return svgOpts
}

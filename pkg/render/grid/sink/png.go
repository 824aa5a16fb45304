package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/render/grid"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette Palette
	scale   float64
}

// WithPNGPalette sets the wall and floor colours.
func WithPNGPalette(p Palette) PNGOption {
	return func(r *pngRenderer) { r.palette = p }
}

// WithScale sets the PNG scale factor (default 1.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the layout.
func RenderPNG(l grid.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{palette: DefaultPalette(), scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "png scale must be positive, got %g", r.scale)
	}

	w := int(math.Ceil(l.FrameWidth * r.scale))
	h := int(math.Ceil(l.FrameHeight * r.scale))
	dc := gg.NewContext(w, h)
	dc.SetColor(r.palette.Wall)
	dc.Clear()

	dc.Scale(r.scale, r.scale)
	dc.SetColor(r.palette.Floor)
	for _, rc := range l.Rects {
		dc.DrawRectangle(rc.X, rc.Y, rc.W, rc.H)
	}
	dc.Fill()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

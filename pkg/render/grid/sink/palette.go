package sink

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
)

// Default colours as hex strings.
const (
	DefaultWall  = "#000000"
	DefaultFloor = "#e62937"
)

// Palette holds the two colours a maze is drawn with.
type Palette struct {
	Wall  color.Color
	Floor color.Color
}

// DefaultPalette is red floors on black walls.
func DefaultPalette() Palette {
	return Palette{
		Wall:  color.RGBA{A: 255},
		Floor: color.RGBA{R: 230, G: 41, B: 55, A: 255},
	}
}

// ParsePalette builds a palette from two hex colours such as "#000" and
// "#e62937".
func ParsePalette(wall, floor string) (Palette, error) {
	w, err := colorful.Hex(wall)
	if err != nil {
		return Palette{}, apperrors.Wrap(apperrors.ErrCodeInvalidColor, err, "wall colour %q", wall)
	}
	f, err := colorful.Hex(floor)
	if err != nil {
		return Palette{}, apperrors.Wrap(apperrors.ErrCodeInvalidColor, err, "floor colour %q", floor)
	}
	return Palette{Wall: w, Floor: f}, nil
}

// Hex returns both colours in canonical "#rrggbb" form.
func (p Palette) Hex() (wall, floor string) {
	return hex(p.Wall), hex(p.Floor)
}

// hex formats c as "#rrggbb". Fully transparent colours become "none".
func hex(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "none"
	}
	return cf.Hex()
}

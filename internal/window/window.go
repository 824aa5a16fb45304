// Package window shows a maze in a desktop window.
//
// The maze is generated once by the caller; the window only redraws it. Each
// frame fills the screen with the wall colour and paints the cell and
// passage rectangles of a [grid.Layout] sized to the current window, so
// resizing the window rescales the maze.
package window

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/render/grid"
	"github.com/matzehuels/mazegen/pkg/render/grid/sink"
)

// Options configures the window.
type Options struct {
	Title   string
	Width   int // initial window width in pixels
	Height  int // initial window height in pixels
	Margin  float64
	Palette sink.Palette
}

// Game implements ebiten.Game for a fixed maze.
type Game struct {
	maze *maze.Maze
	opts Options

	// layout is rebuilt when the window size changes.
	width, height int
	layout        grid.Layout
	fits          bool
}

var _ ebiten.Game = (*Game)(nil)

// NewGame prepares a game drawing m.
func NewGame(m *maze.Maze, opts Options) (*Game, error) {
	if m == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "maze is required")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "window size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Palette.Wall == nil || opts.Palette.Floor == nil {
		opts.Palette = sink.DefaultPalette()
	}
	g := &Game{maze: m, opts: opts}
	g.resize(opts.Width, opts.Height)
	return g, nil
}

// Run opens the window and blocks until it is closed or Escape/Q is pressed.
func Run(m *maze.Maze, opts Options) error {
	g, err := NewGame(m, opts)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "run window")
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Palette.Wall)
	if !g.fits {
		return
	}
	for _, r := range g.layout.Rects {
		fillRect(screen, r, g.opts.Palette.Floor)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// resize rebuilds the layout for a w×h screen. When the maze no longer fits,
// only the wall colour is drawn until the window grows again.
func (g *Game) resize(w, h int) {
	g.width, g.height = w, h
	fw, fh := float64(w), float64(h)
	if err := grid.Validate(g.maze.Height(), g.maze.Width(), fw, fh, g.opts.Margin); err != nil {
		g.fits = false
		g.layout = grid.Layout{}
		return
	}
	g.layout = grid.Build(g.maze, fw, fh, g.opts.Margin)
	g.fits = true
}

func fillRect(dst *ebiten.Image, r grid.Rect, c color.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

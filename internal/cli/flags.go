package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/pipeline"
)

// mazeFlags are the generator flags shared by generate, show and view.
// Zero values mean "use the config"; a flag only overrides the config when
// the user set it.
type mazeFlags struct {
	height int
	width  int
	seed   uint64
	merge  string
	verify bool
}

func (f *mazeFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.height, "height", "H", 0, "maze rows (default from config)")
	cmd.Flags().IntVarP(&f.width, "width", "W", 0, "maze columns (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().StringVar(&f.merge, "merge", "", "component merge strategy: relabel, unionfind")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "check the maze invariants after generating")
}

// apply copies the flags the user set onto opts. Explicit dimensions below
// one are rejected here because the pipeline reads zero as "unset".
func (f *mazeFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	flags := cmd.Flags()
	if flags.Changed("height") {
		if f.height < 1 {
			return apperrors.New(apperrors.ErrCodeInvalidDimensions, "height must be at least 1, got %d", f.height)
		}
		opts.Height = f.height
	}
	if flags.Changed("width") {
		if f.width < 1 {
			return apperrors.New(apperrors.ErrCodeInvalidDimensions, "width must be at least 1, got %d", f.width)
		}
		opts.Width = f.width
	}
	if flags.Changed("seed") {
		opts.Seed = f.seed
	}
	if flags.Changed("merge") {
		opts.Merge = f.merge
	}
	if flags.Changed("verify") {
		opts.Verify = f.verify
	}
	return nil
}

// frameFlags control the rectangle layout and colours.
type frameFlags struct {
	frameWidth  float64
	frameHeight float64
	margin      float64
	wall        string
	floor       string
}

func (f *frameFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.frameWidth, "frame-width", 0, "frame width in pixels (default from config)")
	cmd.Flags().Float64Var(&f.frameHeight, "frame-height", 0, "frame height in pixels (default from config)")
	cmd.Flags().Float64Var(&f.margin, "margin", 0, "wall thickness in pixels (default from config)")
	cmd.Flags().StringVar(&f.wall, "wall", "", "wall colour as hex (default from config)")
	cmd.Flags().StringVar(&f.floor, "floor", "", "floor colour as hex (default from config)")
}

func (f *frameFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	flags := cmd.Flags()
	if flags.Changed("frame-width") {
		opts.FrameWidth = f.frameWidth
	}
	if flags.Changed("frame-height") {
		opts.FrameHeight = f.frameHeight
	}
	if flags.Changed("margin") {
		opts.WithMargin(f.margin)
	}
	if flags.Changed("wall") {
		opts.Wall = f.wall
	}
	if flags.Changed("floor") {
		opts.Floor = f.floor
	}
}

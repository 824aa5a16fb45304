package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/internal/window"
	"github.com/matzehuels/mazegen/pkg/pipeline"
)

// viewCommand creates the view command that opens a maze in a window.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		maze  mazeFlags
		frame frameFlags
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open a maze in a window",
		Long: `Generate a maze once and draw it in a resizable window until the window
is closed or Escape/Q is pressed. The frame flags set the initial window size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			if err := maze.apply(cmd, &opts); err != nil {
				return err
			}
			frame.apply(cmd, &opts)
			return c.runView(cmd.Context(), opts)
		},
	}
	maze.register(cmd)
	frame.register(cmd)
	return cmd
}

func (c *CLI) runView(ctx context.Context, opts pipeline.Options) error {
	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatSVG} // validate the frame like an image render
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	m, err := c.newRunner().Generate(ctx, opts)
	if err != nil {
		return err
	}

	c.Logger.Info("opening window", "height", m.Height(), "width", m.Width(), "seed", opts.Seed)
	return window.Run(m, window.Options{
		Title:   fmt.Sprintf("%s %dx%d (seed %d)", appName, m.Height(), m.Width(), opts.Seed),
		Width:   int(opts.FrameWidth),
		Height:  int(opts.FrameHeight),
		Margin:  opts.Margin,
		Palette: opts.Palette(),
	})
}

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/pkg/pipeline"
)

// generateCommand creates the generate command for writing maze artifacts.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		maze       mazeFlags
		frame      frameFlags
		formatsStr string
		output     string
		scale      float64
		title      string
		labels     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a maze and write it to files",
		Long: `Generate a random perfect maze and write it in one or more formats.

Formats:
  svg    vector image of walls and floors
  png    raster image of the same layout
  pdf    vector PDF (requires rsvg-convert)
  txt    ASCII art
  dot    Graphviz source of the carved spanning tree
  graph  the spanning tree laid out by Graphviz as SVG

Without -o, files are named maze-<seed>.<ext>. Use -o - to stream a single
format to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			if err := maze.apply(cmd, &opts); err != nil {
				return err
			}
			frame.apply(cmd, &opts)
			if cmd.Flags().Changed("format") {
				formats, err := pipeline.ParseFormats(formatsStr)
				if err != nil {
					return err
				}
				opts.Formats = formats
			}
			if cmd.Flags().Changed("scale") {
				opts.Scale = scale
			}
			opts.Title = title
			opts.Labels = labels
			return c.runGenerate(cmd.Context(), opts, output)
		},
	}

	maze.register(cmd)
	frame.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames, ", ")+" (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "PNG scale factor (default from config)")
	cmd.Flags().StringVar(&title, "title", "", "SVG title")
	cmd.Flags().BoolVar(&labels, "labels", false, "label dot/graph nodes with their open directions")

	return cmd
}

// runGenerate runs the pipeline and writes the artifacts.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string) error {
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %dx%d maze...", opts.Height, opts.Width))
	if output != "-" {
		spinner.Start()
	}

	result, err := c.newRunner().Execute(ctx, opts)
	if output != "-" {
		if err != nil {
			spinner.StopWithError("Generation failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(os.Stdout, result.Artifacts, opts.Formats, output, result.Seed)
	if err != nil {
		return err
	}
	if output == "-" {
		return nil
	}

	printSuccess("Generated %dx%d maze", result.Maze.Height(), result.Maze.Width())
	printKeyValue("Seed", fmt.Sprintf("%d", result.Seed))
	printKeyValue("Merge", opts.Merge)
	printStats(result.Stats)
	for _, p := range paths {
		printFile(p)
	}
	printNewline()
	printNextStep("Reproduce", fmt.Sprintf("%s generate -H %d -W %d --seed %d", appName, opts.Height, opts.Width, result.Seed))
	return nil
}

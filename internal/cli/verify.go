package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
)

// verifyCommand creates the verify command that checks generator invariants
// across many seeds.
func (c *CLI) verifyCommand() *cobra.Command {
	var (
		trials int
		seed   uint64
		height int
		width  int
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that generated mazes are perfect",
		Long: `Generate mazes for consecutive seeds with both merge strategies and check
that every maze is a spanning tree with symmetric, in-bounds passages and
that both strategies carve the same maze for the same seed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, w := c.Config.Maze.Height, c.Config.Maze.Width
			if cmd.Flags().Changed("height") {
				h = height
			}
			if cmd.Flags().Changed("width") {
				w = width
			}
			if trials < 1 {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "trials must be at least 1, got %d", trials)
			}
			return c.runVerify(cmd.Context(), h, w, seed, trials)
		},
	}

	cmd.Flags().IntVarP(&trials, "trials", "n", 100, "number of seeds to check")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "first seed")
	cmd.Flags().IntVarP(&height, "height", "H", 0, "maze rows (default from config)")
	cmd.Flags().IntVarP(&width, "width", "W", 0, "maze columns (default from config)")
	return cmd
}

// verifyReport aggregates the results of a verify run.
type verifyReport struct {
	relabel   maze.Stats
	unionFind maze.Stats
	trials    int
}

func (c *CLI) runVerify(ctx context.Context, height, width int, seed uint64, trials int) error {
	if err := maze.ValidateDimensions(height, width); err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Verifying %dx%d mazes...", height, width))
	spinner.Start()

	report, err := verifyMazes(ctx, height, width, seed, trials, func(done int) {
		spinner.SetMessage("Verifying %dx%d mazes... %d/%d", height, width, done, trials)
	})
	if err != nil {
		spinner.StopWithError("Verification failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Verified %d mazes", 2*report.trials))

	printSuccess("%d seeds from %d: every maze is perfect and both strategies agree", trials, seed)
	fmt.Println(renderStatsTable([]statsRow{
		{label: maze.MergeRelabel.String(), stats: report.relabel},
		{label: maze.MergeUnionFind.String(), stats: report.unionFind},
	}))
	return nil
}

// verifyMazes generates and checks trials mazes per strategy, starting at
// seed. onTrial is called after each seed completes.
func verifyMazes(ctx context.Context, height, width int, seed uint64, trials int, onTrial func(done int)) (verifyReport, error) {
	var report verifyReport
	for i := range trials {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		s := seed + uint64(i)

		relabel, err := maze.Generate(height, width, maze.NewRand(s), maze.WithMerge(maze.MergeRelabel))
		if err != nil {
			return report, err
		}
		unionFind, err := maze.Generate(height, width, maze.NewRand(s), maze.WithMerge(maze.MergeUnionFind))
		if err != nil {
			return report, err
		}
		for _, m := range []*maze.Maze{relabel, unionFind} {
			if err := maze.Verify(m); err != nil {
				return report, apperrors.Wrap(apperrors.ErrCodeInternal, err, "seed %d", s)
			}
		}
		if !relabel.Equal(unionFind) {
			return report, apperrors.New(apperrors.ErrCodeInternal, "seed %d: merge strategies carved different mazes", s)
		}

		report.relabel.Add(maze.Analyze(relabel))
		report.unionFind.Add(maze.Analyze(unionFind))
		report.trials++
		if onTrial != nil {
			onTrial(report.trials)
		}
	}
	return report, nil
}

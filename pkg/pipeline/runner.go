package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/observability"
	"github.com/matzehuels/mazegen/pkg/render/grid"
)

// Runner encapsulates pipeline execution.
// Both the CLI and the HTTP server use this to avoid duplicating stage logic.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options; each run owns its random source.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete generate → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Seed: opts.Seed}

	// Stage 1: Generate
	generateStart := time.Now()
	m, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Maze = m
	result.Stats = maze.Analyze(m)
	result.Timing.GenerateTime = time.Since(generateStart)

	r.Logger.Info("generated maze",
		"height", m.Height(),
		"width", m.Width(),
		"seed", opts.Seed,
		"passages", m.Passages(),
		"duration", result.Timing.GenerateTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, layout, err := r.renderWithLayout(ctx, m, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Layout = layout
	result.Timing.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Timing.RenderTime)

	return result, nil
}

// Generate builds the maze described by opts, optionally verifying it.
// Callers that need to report a randomly picked seed should call
// opts.ValidateForGenerate first and read opts.Seed.
func (r *Runner) Generate(ctx context.Context, opts Options) (*maze.Maze, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Height, opts.Width)
	start := time.Now()

	m, err := maze.Generate(opts.Height, opts.Width, maze.NewRand(opts.Seed), maze.WithMerge(opts.merge))
	if err == nil && opts.Verify {
		if verr := maze.Verify(m); verr != nil {
			err = apperrors.Wrap(apperrors.ErrCodeInternal, verr, "generated maze failed verification")
			m = nil
		}
	}

	passages := 0
	if m != nil {
		passages = m.Passages()
	}
	hooks.OnGenerateComplete(ctx, opts.Height, opts.Width, passages, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("generate stage done", "merge", opts.Merge, "verified", opts.Verify)
	return m, nil
}

// Render emits the requested formats for an existing maze.
func (r *Runner) Render(ctx context.Context, m *maze.Maze, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.renderWithLayout(ctx, m, opts)
	return artifacts, err
}

func (r *Runner) renderWithLayout(ctx context.Context, m *maze.Maze, opts Options) (map[string][]byte, grid.Layout, error) {
	if m == nil {
		return nil, grid.Layout{}, apperrors.New(apperrors.ErrCodeInvalidInput, "maze is required")
	}
	// Render against the maze's own size, whatever the options say.
	opts.Height, opts.Width = m.Height(), m.Width()
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, grid.Layout{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, layout, err := renderAll(ctx, m, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, layout, err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

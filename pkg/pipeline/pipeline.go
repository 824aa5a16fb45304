// Package pipeline provides the generate → render pipeline for mazegen.
//
// This package implements the complete pipeline that is shared by the CLI
// commands and the HTTP server. By centralizing this logic, every entry point
// validates options the same way and produces identical artifacts for the
// same seed.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: Build a random perfect maze from height, width and seed
//  2. Render: Lay the maze out in a frame and emit the requested formats
//     (SVG, PNG, PDF, text, DOT, graph)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Height:  20,
//	    Width:   30,
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// A zero Seed asks the pipeline to pick one; the seed actually used is
// reported in Result.Seed so the run can be reproduced.
package pipeline

import (
	"io"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/render/grid"
	"github.com/matzehuels/mazegen/pkg/render/grid/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultHeight is the number of maze rows callers fall back to when the
	// user gives none. Options itself never applies it.
	DefaultHeight = 20

	// DefaultWidth is the default number of maze columns.
	DefaultWidth = 30

	// DefaultFrameWidth is the default frame width in pixels.
	DefaultFrameWidth = 800.0

	// DefaultFrameHeight is the default frame height in pixels.
	DefaultFrameHeight = 600.0

	// DefaultMargin is the default wall thickness in pixels.
	DefaultMargin = 10.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatText  = "txt"
	FormatDOT   = "dot"
	FormatGraph = "graph" // node-link SVG laid out by graphviz
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatText:  true,
	FormatDOT:   true,
	FormatGraph: true,
}

// FormatNames lists the supported formats in display order.
var FormatNames = []string{FormatSVG, FormatPNG, FormatPDF, FormatText, FormatDOT, FormatGraph}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Generate options
	Height int    `json:"height"`
	Width  int    `json:"width"`
	Seed   uint64 `json:"seed,omitempty"`
	Merge  string `json:"merge,omitempty"`
	Verify bool   `json:"verify,omitempty"` // run maze.Verify after generation

	// Render options
	Formats     []string `json:"formats,omitempty"`
	FrameWidth  float64  `json:"frame_width,omitempty"`
	FrameHeight float64  `json:"frame_height,omitempty"`
	Margin      float64  `json:"margin,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Wall        string   `json:"wall,omitempty"`  // hex colour; empty uses the default palette
	Floor       string   `json:"floor,omitempty"` // hex colour; empty uses the default palette
	Title       string   `json:"title,omitempty"`
	Labels      bool     `json:"labels,omitempty"` // label DOT/graph nodes with their open directions

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// marginSet lets an explicit zero margin survive the defaults.
	marginSet bool
	palette   sink.Palette
	merge     maze.Merge

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Maze is the generated maze.
	Maze *maze.Maze

	// Seed is the seed the maze was generated from.
	Seed uint64

	// Layout is the rectangle layout the image sinks were drawn from.
	Layout grid.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains structural counts of the maze.
	Stats maze.Stats

	// Timing contains per-stage durations.
	Timing Timing
}

// Timing contains pipeline execution durations.
type Timing struct {
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(formats, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// NeedsLayout reports whether any format is drawn from the rectangle layout.
func NeedsLayout(formats []string) bool {
	for _, f := range formats {
		if f == FormatSVG || f == FormatPNG || f == FormatPDF {
			return true
		}
	}
	return false
}

// =============================================================================
// Options Methods
// =============================================================================

// WithMargin sets an explicit margin, including zero.
func (o *Options) WithMargin(m float64) {
	o.Margin = m
	o.marginSet = true
}

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate checks dimensions and merge strategy. Height and Width
// have no default here: a zero dimension is rejected, never corrected. A zero
// seed is replaced with a random one.
func (o *Options) ValidateForGenerate() error {
	if o.Seed == 0 {
		o.Seed = randomSeed()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := maze.ValidateDimensions(o.Height, o.Width); err != nil {
		return err
	}
	m, err := maze.ParseMerge(o.Merge)
	if err != nil {
		return err
	}
	o.merge = m
	o.Merge = m.String()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.FrameWidth == 0 {
		o.FrameWidth = DefaultFrameWidth
	}
	if o.FrameHeight == 0 {
		o.FrameHeight = DefaultFrameHeight
	}
	if o.Margin == 0 && !o.marginSet {
		o.Margin = DefaultMargin
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender applies render defaults and checks formats, frame
// geometry and colours.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if NeedsLayout(o.Formats) {
		if err := grid.Validate(o.Height, o.Width, o.FrameWidth, o.FrameHeight, o.Margin); err != nil {
			return err
		}
	}
	if o.Scale <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	o.palette = sink.DefaultPalette()
	if o.Wall != "" || o.Floor != "" {
		wall, floor := o.Wall, o.Floor
		if wall == "" {
			wall = sink.DefaultWall
		}
		if floor == "" {
			floor = sink.DefaultFloor
		}
		p, err := sink.ParsePalette(wall, floor)
		if err != nil {
			return err
		}
		o.palette = p
	}
	return nil
}

// Palette returns the parsed palette. Valid after ValidateForRender.
func (o *Options) Palette() sink.Palette { return o.palette }

func randomSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

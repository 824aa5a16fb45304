// Package cli implements the mazegen command-line interface.
//
// # Commands
//
// The main commands are:
//   - generate: Write a maze to SVG, PNG, PDF, text, DOT or graph files
//   - show: Scroll through a maze in the terminal
//   - view: Open a maze in a window
//   - serve: Render mazes on demand over HTTP
//   - verify: Check generator invariants over many seeds
//   - config: Inspect the configuration file
//   - cache: Locate or clear the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/pkg/buildinfo"
	"github.com/matzehuels/mazegen/pkg/config"
	"github.com/matzehuels/mazegen/pkg/observability"
	"github.com/matzehuels/mazegen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "mazegen"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "mazegen generates random perfect mazes",
		Long:          `mazegen builds random perfect mazes with a randomized Kruskal construction and renders them as images, text, graphs, a terminal viewer, a window or an HTTP endpoint.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if err := c.loadConfig(); err != nil {
				return err
			}
			observability.SetPipelineHooks(&logHooks{logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/mazegen/config.toml)")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the file named by --config, or the default location.
func (c *CLI) loadConfig() error {
	path, err := c.resolveConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

func (c *CLI) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.Path()
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// baseOptions converts the loaded config into pipeline options.
func (c *CLI) baseOptions() pipeline.Options {
	return optionsFromConfig(c.Config)
}

func optionsFromConfig(cfg config.Config) pipeline.Options {
	opts := pipeline.Options{
		Height:      cfg.Maze.Height,
		Width:       cfg.Maze.Width,
		Seed:        cfg.Maze.Seed,
		Merge:       cfg.Maze.Merge,
		Formats:     append([]string(nil), cfg.Render.Formats...),
		FrameWidth:  cfg.Render.FrameWidth,
		FrameHeight: cfg.Render.FrameHeight,
		Scale:       cfg.Render.Scale,
		Wall:        cfg.Render.Wall,
		Floor:       cfg.Render.Floor,
	}
	opts.WithMargin(cfg.Render.Margin)
	return opts
}

// Package config loads mazegen settings from a TOML file.
//
// Every field has a default, so a missing file is not an error. Values read
// from the file are validated as a whole; unknown keys are rejected so that a
// typo does not silently fall back to a default.
//
//	[maze]
//	height = 20
//	width  = 30
//	merge  = "unionfind"
//
//	[render]
//	frame_width  = 800
//	frame_height = 600
//	margin       = 10
//	wall         = "#000000"
//	floor        = "#e62937"
//
//	[server]
//	addr      = ":8080"
//	cache_ttl = "24h"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mazegen/pkg/cache"
	apperrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/pipeline"
	"github.com/matzehuels/mazegen/pkg/render/grid"
	"github.com/matzehuels/mazegen/pkg/render/grid/sink"
)

// AppName names the config directory.
const AppName = "mazegen"

// FileName is the config file inside the config directory.
const FileName = "config.toml"

// Config is the full set of user settings.
type Config struct {
	Maze   MazeConfig   `toml:"maze"`
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
}

// MazeConfig holds generator settings.
type MazeConfig struct {
	Height int    `toml:"height"`
	Width  int    `toml:"width"`
	Merge  string `toml:"merge"`
	// Seed 0 picks a fresh seed per run.
	Seed uint64 `toml:"seed"`
}

// RenderConfig holds frame geometry and colours.
type RenderConfig struct {
	FrameWidth  float64  `toml:"frame_width"`
	FrameHeight float64  `toml:"frame_height"`
	Margin      float64  `toml:"margin"`
	Wall        string   `toml:"wall"`
	Floor       string   `toml:"floor"`
	Scale       float64  `toml:"scale"`
	Formats     []string `toml:"formats"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	MaxCells     int      `toml:"max_cells"`
	WriteTimeout Duration `toml:"write_timeout"`

	// Cache stores artifacts for requests that name a seed.
	Cache    bool     `toml:"cache"`
	CacheDir string   `toml:"cache_dir"` // empty uses the user cache directory
	CacheTTL Duration `toml:"cache_ttl"`
}

// Duration is a time.Duration that decodes from TOML strings like "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Maze: MazeConfig{
			Height: pipeline.DefaultHeight,
			Width:  pipeline.DefaultWidth,
			Merge:  maze.MergeRelabel.String(),
		},
		Render: RenderConfig{
			FrameWidth:  800,
			FrameHeight: 600,
			Margin:      10,
			Wall:        sink.DefaultWall,
			Floor:       sink.DefaultFloor,
			Scale:       1,
			Formats:     []string{"svg"},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxCells:     250_000,
			WriteTimeout: Duration{30 * time.Second},
			Cache:        true,
			CacheTTL:     Duration{24 * time.Hour},
		},
	}
}

// Path returns the default config file location:
// $XDG_CONFIG_HOME/mazegen/config.toml, falling back to
// ~/.config/mazegen/config.toml.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, err, "locate home directory")
	}
	return filepath.Join(home, ".config", AppName, FileName), nil
}

// Load reads path on top of the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, apperrors.New(apperrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	if err := maze.ValidateDimensions(c.Maze.Height, c.Maze.Width); err != nil {
		return err
	}
	if _, err := maze.ParseMerge(c.Maze.Merge); err != nil {
		return err
	}
	r := c.Render
	if err := pipeline.ValidateFormats(r.Formats); err != nil {
		return err
	}
	// Text and graph output never touch the frame.
	if pipeline.NeedsLayout(r.Formats) {
		if err := grid.Validate(c.Maze.Height, c.Maze.Width, r.FrameWidth, r.FrameHeight, r.Margin); err != nil {
			return err
		}
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	if r.Scale <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "render.scale must be positive, got %g", r.Scale)
	}
	if c.Server.Addr == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "server.addr is required")
	}
	if c.Server.MaxCells < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "server.max_cells must be positive, got %d", c.Server.MaxCells)
	}
	if c.Server.WriteTimeout.Duration < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "server.write_timeout must not be negative")
	}
	if c.Server.CacheTTL.Duration < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "server.cache_ttl must not be negative")
	}
	return nil
}

// CacheDir returns the configured artifact cache directory, or the per-user
// default when none is set.
func (c Config) CacheDir() (string, error) {
	if c.Server.CacheDir != "" {
		return c.Server.CacheDir, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, err, "locate cache directory")
	}
	return dir, nil
}

// Palette parses the configured wall and floor colours.
func (c Config) Palette() (sink.Palette, error) {
	return sink.ParsePalette(c.Render.Wall, c.Render.Floor)
}

// Encode writes c as TOML.
func (c Config) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode config")
	}
	return b.String(), nil
}

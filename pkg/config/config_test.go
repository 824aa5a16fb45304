package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Maze.Height != Default().Maze.Height {
		t.Errorf("Maze.Height = %d, want default %d", cfg.Maze.Height, Default().Maze.Height)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[maze]
height = 8
merge = "unionfind"

[render]
floor = "#00ff00"

[server]
addr = "127.0.0.1:9000"
write_timeout = "5s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Maze.Height != 8 {
		t.Errorf("Maze.Height = %d, want 8", cfg.Maze.Height)
	}
	if cfg.Maze.Width != Default().Maze.Width {
		t.Errorf("Maze.Width = %d, want default", cfg.Maze.Width)
	}
	if cfg.Maze.Merge != "unionfind" {
		t.Errorf("Maze.Merge = %q", cfg.Maze.Merge)
	}
	if cfg.Render.Floor != "#00ff00" || cfg.Render.Wall != "#000000" {
		t.Errorf("Render colours = %q/%q", cfg.Render.Wall, cfg.Render.Floor)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.WriteTimeout.Duration != 5*time.Second {
		t.Errorf("Server.WriteTimeout = %v, want 5s", cfg.Server.WriteTimeout)
	}
}

func TestLoadTextOnlySkipsFrameCheck(t *testing.T) {
	path := writeConfig(t, `
[maze]
height = 400
width = 400

[render]
formats = ["txt"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Maze.Height != 400 || cfg.Maze.Width != 400 {
		t.Errorf("maze = %dx%d, want 400x400", cfg.Maze.Height, cfg.Maze.Width)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "[maze]\nhieght = 4\n", "maze.hieght"},
		{"bad syntax", "[maze\n", ""},
		{"bad colour", "[render]\nwall = \"#zzzzzz\"\n", "wall"},
		{"bad merge", "[maze]\nmerge = \"prim\"\n", "merge"},
		{"zero height", "[maze]\nheight = 0\n", "height"},
		{"cells too small", "[maze]\nwidth = 500\n", "does not fit"},
		{"cells too small for png", "[maze]\nwidth = 500\n[render]\nformats = [\"txt\", \"png\"]\n", "does not fit"},
		{"bad format", "[render]\nformats = [\"gif\"]\n", "gif"},
		{"bad duration", "[server]\nwrite_timeout = \"soon\"\n", ""},
		{"negative cache ttl", "[server]\ncache_ttl = \"-1m\"\n", "cache_ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
				t.Fatalf("Load() error = %v, want INVALID_CONFIG", err)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", AppName, FileName); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestCacheDir(t *testing.T) {
	cfg := Default()
	cfg.Server.CacheDir = "/srv/mazes"
	if got, err := cfg.CacheDir(); err != nil || got != "/srv/mazes" {
		t.Errorf("CacheDir() = (%q, %v), want /srv/mazes", got, err)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	got, err := Default().CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-cache", AppName); got != want {
		t.Errorf("default CacheDir() = %q, want %q", got, want)
	}
}

func TestEncodeRoundTripsThroughLoad(t *testing.T) {
	cfg := Default()
	cfg.Maze.Seed = 99
	out, err := cfg.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "[server]") || !strings.Contains(out, `write_timeout = "30s"`) {
		t.Errorf("Encode() output missing expected keys:\n%s", out)
	}
	got, err := Load(writeConfig(t, out))
	if err != nil {
		t.Fatalf("Load(Encode()) error = %v", err)
	}
	if got.Maze.Seed != 99 {
		t.Errorf("Seed = %d, want 99", got.Maze.Seed)
	}
}

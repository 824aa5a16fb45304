package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazegen/pkg/cache"
	"github.com/matzehuels/mazegen/pkg/config"
	apperrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/observability"
	"github.com/matzehuels/mazegen/pkg/pipeline"
)

func TestMazeFlagsApply(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     pipeline.Options
		wantCode apperrors.Code
	}{
		{
			name: "unset flags keep config",
			args: nil,
			want: pipeline.Options{Height: 20, Width: 30, Merge: "relabel"},
		},
		{
			name: "explicit flags override",
			args: []string{"-H", "5", "--width", "7", "--seed", "9", "--merge", "unionfind", "--verify"},
			want: pipeline.Options{Height: 5, Width: 7, Seed: 9, Merge: "unionfind", Verify: true},
		},
		{
			name:     "explicit zero height",
			args:     []string{"-H", "0"},
			wantCode: apperrors.ErrCodeInvalidDimensions,
		},
		{
			name:     "negative width",
			args:     []string{"-W", "-2"},
			wantCode: apperrors.ErrCodeInvalidDimensions,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f mazeFlags
			cmd := &cobra.Command{}
			f.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			opts := optionsFromConfig(config.Default())
			err := f.apply(cmd, &opts)
			if tt.wantCode != "" {
				if !apperrors.Is(err, tt.wantCode) {
					t.Fatalf("apply() error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if opts.Height != tt.want.Height || opts.Width != tt.want.Width || opts.Seed != tt.want.Seed ||
				opts.Merge != tt.want.Merge || opts.Verify != tt.want.Verify {
				t.Errorf("apply() = %+v, want %+v", opts, tt.want)
			}
		})
	}
}

func TestFrameFlagsApply(t *testing.T) {
	var f frameFlags
	cmd := &cobra.Command{}
	f.register(cmd)
	if err := cmd.ParseFlags([]string{"--margin", "0", "--frame-width", "300", "--floor", "#fff"}); err != nil {
		t.Fatal(err)
	}
	opts := optionsFromConfig(config.Default())
	f.apply(cmd, &opts)
	if opts.FrameWidth != 300 || opts.FrameHeight != 600 {
		t.Errorf("frame = %gx%g, want 300x600", opts.FrameWidth, opts.FrameHeight)
	}
	if opts.Floor != "#fff" || opts.Wall != "#000000" {
		t.Errorf("colours = %q/%q", opts.Wall, opts.Floor)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Margin != 0 {
		t.Errorf("explicit --margin 0 became %g", opts.Margin)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"", "maze-42"},
		{"out/maze.svg", "out/maze"},
		{"maze.graph.svg", "maze"},
		{"maze.txt", "maze"},
		{"maze", "maze"},
		{"maze.v2", "maze.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, 42); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	got := outputPaths([]string{"svg"}, "custom.image", 1)
	if got["svg"] != "custom.image" {
		t.Errorf("single format with explicit path = %q", got["svg"])
	}

	got = outputPaths([]string{"svg", "png", "graph"}, "out/m.svg", 1)
	want := map[string]string{"svg": "out/m.svg", "png": "out/m.png", "graph": "out/m.graph.svg"}
	for f, p := range want {
		if got[f] != p {
			t.Errorf("outputPaths[%s] = %q, want %q", f, got[f], p)
		}
	}

	got = outputPaths([]string{"txt"}, "", 7)
	if got["txt"] != "maze-7.txt" {
		t.Errorf("default path = %q, want maze-7.txt", got["txt"])
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"txt": []byte("+---+\n"), "dot": []byte("graph maze {}\n")}

	paths, err := writeArtifacts(io.Discard, artifacts, []string{"txt", "dot"}, filepath.Join(dir, "sub", "m"), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("wrote %d files, want 2", len(paths))
	}
	data, err := os.ReadFile(filepath.Join(dir, "sub", "m.dot"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "graph maze {}\n" {
		t.Errorf("m.dot = %q", data)
	}

	var stdout bytes.Buffer
	if _, err := writeArtifacts(&stdout, artifacts, []string{"txt"}, "-", 3); err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "+---+\n" {
		t.Errorf("stdout = %q", stdout.String())
	}

	if _, err := writeArtifacts(&stdout, artifacts, []string{"txt", "dot"}, "-", 3); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("two formats to stdout error = %v, want INVALID_INPUT", err)
	}
}

func TestMazeViewModelScroll(t *testing.T) {
	text := strings.Repeat("+---+---+---+\n|   |   |   |\n", 20)
	m := newMazeViewModel("test", text)

	step := func(msg tea.Msg) {
		next, _ := m.Update(msg)
		m = next.(mazeViewModel)
	}

	step(tea.WindowSizeMsg{Width: 6, Height: 10})
	if m.height != 10-viewerChrome || m.width != 6 {
		t.Fatalf("viewport = %dx%d", m.width, m.height)
	}

	step(tea.KeyMsg{Type: tea.KeyUp})
	if m.offY != 0 {
		t.Errorf("offY = %d after scrolling above the top", m.offY)
	}

	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyRight})
	if m.offY != 1 || m.offX != 2 {
		t.Errorf("offset = (%d,%d), want (2,1)", m.offX, m.offY)
	}

	step(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if want := len(m.lines) - m.height; m.offY != want {
		t.Errorf("offY after G = %d, want %d", m.offY, want)
	}

	for range 10 {
		step(tea.KeyMsg{Type: tea.KeyRight})
	}
	if want := m.cols - m.width; m.offX != want {
		t.Errorf("offX = %d, want clamped to %d", m.offX, want)
	}

	view := m.View()
	if !strings.Contains(view, "test") || !strings.Contains(view, "of 40") {
		t.Errorf("View() missing title or position:\n%s", view)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestVerifyMazes(t *testing.T) {
	calls := 0
	report, err := verifyMazes(context.Background(), 6, 7, 1, 10, func(int) { calls++ })
	if err != nil {
		t.Fatalf("verifyMazes() error = %v", err)
	}
	if report.trials != 10 || calls != 10 {
		t.Errorf("trials = %d, callbacks = %d, want 10", report.trials, calls)
	}
	if report.relabel != report.unionFind {
		t.Errorf("strategies disagree: %+v vs %+v", report.relabel, report.unionFind)
	}
	if report.relabel.Passages != 10*(6*7-1) {
		t.Errorf("passages = %d, want %d", report.relabel.Passages, 10*(6*7-1))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := verifyMazes(ctx, 3, 3, 1, 5, nil); err == nil {
		t.Error("cancelled context should stop verification")
	}
}

func TestRenderStatsTable(t *testing.T) {
	out := renderStatsTable([]statsRow{{label: "relabel"}})
	for _, want := range []string{"relabel", "dead ends", "junctions"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mazegen.toml")
	if err := os.WriteFile(path, []byte("[maze]\nheight = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeRoot(t, "--config", path, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}

	out, err = executeRoot(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "height = 9") {
		t.Errorf("config show missing override:\n%s", out)
	}
}

func TestInvalidConfigFailsCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[maze]\ncolour = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := executeRoot(t, "--config", path, "config", "show")
	if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestGenerateCommandWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "none.toml")
	base := filepath.Join(dir, "maze")

	_, err := executeRoot(t, "--config", cfgPath, "generate", "-H", "4", "-W", "6", "--seed", "5", "-f", "txt,dot,svg", "-o", base)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	for _, ext := range []string{".txt", ".dot", ".svg"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s: %v", ext, err)
		}
	}
	txt, err := os.ReadFile(base + ".txt")
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(txt), "\n"); lines != 2*4+1 {
		t.Errorf("text has %d lines, want %d", lines, 2*4+1)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := executeRoot(t, "--config", filepath.Join(t.TempDir(), "x.toml"), "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "mazegen") {
		t.Error("bash completion should mention the command name")
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "artifacts")
	cfgPath := filepath.Join(dir, "mazegen.toml")
	body := "[server]\ncache_dir = \"" + filepath.ToSlash(cacheDir) + "\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeRoot(t, "--config", cfgPath, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.ToSlash(cacheDir) {
		t.Errorf("cache path = %q, want %q", out, cacheDir)
	}

	fc, err := cache.NewFileCache(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "k", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if _, err := executeRoot(t, "--config", cfgPath, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := fc.Get(context.Background(), "k"); ok {
		t.Error("cache clear left the entry in place")
	}
}

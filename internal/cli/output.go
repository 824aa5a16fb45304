package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/matzehuels/mazegen/pkg/errors"
	"github.com/matzehuels/mazegen/pkg/pipeline"
)

// formatExt maps output formats to file extensions.
var formatExt = map[string]string{
	pipeline.FormatSVG:   ".svg",
	pipeline.FormatPNG:   ".png",
	pipeline.FormatPDF:   ".pdf",
	pipeline.FormatText:  ".txt",
	pipeline.FormatDOT:   ".dot",
	pipeline.FormatGraph: ".graph.svg",
}

// basePath derives the base output path. An empty output becomes
// "maze-<seed>"; a known format extension on output is stripped.
func basePath(output string, seed uint64) string {
	if output == "" {
		return fmt.Sprintf("maze-%d", seed)
	}
	for _, ext := range []string{".graph.svg", ".svg", ".png", ".pdf", ".txt", ".dot"} {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputPaths returns the file each format is written to. A single format
// with an explicit output path keeps that path as given.
func outputPaths(formats []string, output string, seed uint64) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, seed)
	for _, f := range formats {
		paths[f] = base + formatExt[f]
	}
	return paths
}

// writeArtifacts writes each artifact to its path and returns the paths in
// format order. Output "-" streams a single artifact to stdout instead.
func writeArtifacts(stdout io.Writer, artifacts map[string][]byte, formats []string, output string, seed uint64) ([]string, error) {
	if output == "-" {
		if len(formats) != 1 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "output - needs exactly one format, got %d", len(formats))
		}
		_, err := stdout.Write(artifacts[formats[0]])
		return nil, err
	}

	paths := outputPaths(formats, output, seed)
	written := make([]string, 0, len(formats))
	for _, f := range formats {
		path := paths[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, apperrors.Wrap(apperrors.ErrCodeInternal, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return written, apperrors.Wrap(apperrors.ErrCodeInternal, err, "write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}

// Package output handles file naming and writing for ReportPipe outputs.
// Filenames are derived from the report source: a local path keeps its base
// name (reports/q3 summary.md → q3_summary.pdf), a URL is flattened
// (https://reports.example.com/r/42 → reports_example_com_r_42.pdf).
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// stdinName is the base filename used for reports read from stdin.
const stdinName = "report"

// Writer writes rendered output to disk. Within one Writer no two reports
// share a file: a second source with the same base name gets "_2", "_3", ...
type Writer struct {
	OutputDir string

	written map[string]bool
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir, written: make(map[string]bool)}, nil
}

// Write stores data under a name derived from source and returns the path.
func (w *Writer) Write(source string, data []byte, ext string) (string, error) {
	path := w.uniquePath(Filename(source), ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// uniquePath returns the first path for name+ext not yet written by w and
// records it.
func (w *Writer) uniquePath(name, ext string) string {
	if w.written == nil {
		w.written = make(map[string]bool)
	}
	path := filepath.Join(w.OutputDir, name+ext)
	for n := 2; w.written[path]; n++ {
		path = filepath.Join(w.OutputDir, fmt.Sprintf("%s_%d%s", name, n, ext))
	}
	w.written[path] = true
	return path
}

// Filename converts a report source into a flat filename without extension.
func Filename(source string) string {
	if source == "" || source == "-" {
		return stdinName
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return filenameFromURL(source)
	}
	base := filepath.Base(source)
	return sanitize(strings.TrimSuffix(base, filepath.Ext(base)))
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/docs/intro → example_com_docs_intro
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fallback: sanitize the raw string.
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Package core defines the document model and pipeline interfaces for ReportPipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"strings"
)

// FetchResult holds the raw report body and response metadata from a fetch.
type FetchResult struct {
	Source      string
	ContentType string
	Body        string
}

// IsHTML reports whether the fetched report is an HTML page rather than
// report text.
func (r *FetchResult) IsHTML() bool {
	return isHTMLContentType(r.ContentType)
}

// ReportMetadata holds metadata about the rendered report.
type ReportMetadata struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	GeneratedAt string `json:"generated_at"` // ISO8601
}

// Fetcher retrieves a raw report from a file, stdin, or the report service.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*FetchResult, error)
}

// Extractor pulls the main content from an HTML report, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into report Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Parser converts report Markdown into a Document. Parsing never fails.
type Parser interface {
	Parse(text string) Document
}

// Renderer converts a parsed Document (and metadata) into a final output format.
type Renderer interface {
	Render(doc Document, meta ReportMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// isHTMLContentType matches text/html and application/xhtml+xml, ignoring
// parameters such as charset.
func isHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}

// HeadingRef is a heading listed in the report summary.
type HeadingRef struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// ScoreRef is a score mention listed in the report summary.
type ScoreRef struct {
	Raw   string  `json:"raw"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ReportSummary holds structural counts derived from a Document.
type ReportSummary struct {
	Headings        []HeadingRef `json:"headings"`
	Tables          int          `json:"tables"`
	Lists           int          `json:"lists"`
	Scores          []ScoreRef   `json:"scores"`
	RecommendedRows [][]string   `json:"recommended_rows"`
}

// ReportJSON is the complete JSON output for a single report.
type ReportJSON struct {
	Metadata ReportMetadata `json:"metadata"`
	Document Document       `json:"document"`
	Summary  ReportSummary  `json:"summary"`
}

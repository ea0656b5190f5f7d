// Package render — JSON renderer.
// Builds the structured JSON output from a parsed Document and report
// metadata, adding a summary of headings, tables, lists, scores and
// recommended rows.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/reportpipe/core"
	"github.com/gaurav-prasanna/reportpipe/core/inline"
	"github.com/gaurav-prasanna/reportpipe/core/score"
	"github.com/gaurav-prasanna/reportpipe/core/table"
)

// JSONRenderer produces structured JSON output from a Document.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts a Document and metadata into the JSON report structure.
func (r *JSONRenderer) Render(doc core.Document, meta core.ReportMetadata) ([]byte, error) {
	if doc.Blocks == nil {
		doc.Blocks = []core.Block{}
	}
	report := core.ReportJSON{
		Metadata: meta,
		Document: doc,
		Summary:  Summarize(doc),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Summarize walks the Document and collects its structural summary.
func Summarize(doc core.Document) core.ReportSummary {
	s := core.ReportSummary{
		Headings:        []core.HeadingRef{},
		Scores:          []core.ScoreRef{},
		RecommendedRows: [][]string{},
	}
	addScores := func(seq core.InlineSequence) {
		for _, sc := range inline.Scores(seq) {
			s.Scores = append(s.Scores, core.ScoreRef{
				Raw:   sc.Raw,
				Value: score.Finite(sc.Value),
				Color: score.BucketFor(sc.Value).String(),
			})
		}
	}

	for _, b := range doc.Blocks {
		switch b := b.(type) {
		case core.Heading:
			s.Headings = append(s.Headings, core.HeadingRef{Level: b.Level, Text: inline.Plain(b.Content)})
			addScores(b.Content)
		case core.Paragraph:
			addScores(b.Content)
		case core.BulletList:
			s.Lists++
			for _, item := range b.Items {
				addScores(item)
			}
		case core.NumberedList:
			s.Lists++
			for _, item := range b.Items {
				addScores(item)
			}
		case core.Table:
			s.Tables++
			for _, cell := range b.Header {
				addScores(cell)
			}
			for _, row := range b.Rows {
				for _, cell := range row.Cells {
					addScores(table.FormatCell(cell))
				}
				if row.IsRecommended {
					s.RecommendedRows = append(s.RecommendedRows, row.Cells)
				}
			}
		}
	}
	return s
}

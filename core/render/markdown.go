// Package render provides output renderers for the ReportPipe pipeline.
// This file implements the Markdown renderer, which writes the Document
// back in the report dialect. Parsing its output gives the same Document,
// except that two adjacent blocks that would merge on reparse (left behind
// by a separator-only table, which yields no block) are kept apart by a
// blank line and so gain a Spacer between them.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/reportpipe/core"
	"github.com/gaurav-prasanna/reportpipe/core/inline"
	"github.com/gaurav-prasanna/reportpipe/core/table"
)

// MarkdownRenderer writes a Document as canonical report Markdown: numbered
// lists are renumbered from 1, tables get a separator row and paragraphs sit
// on one line.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Document as Markdown.
func (r *MarkdownRenderer) Render(doc core.Document, meta core.ReportMetadata) ([]byte, error) {
	lines := make([]string, 0, len(doc.Blocks))
	var prev core.Block
	for _, b := range doc.Blocks {
		if merges(prev, b) {
			lines = append(lines, "")
		}
		prev = b
		switch b := b.(type) {
		case core.Heading:
			lines = append(lines, strings.Repeat("#", b.Level)+" "+inline.Markdown(b.Content))
		case core.Paragraph:
			lines = append(lines, inline.Markdown(b.Content))
		case core.BulletList:
			for _, item := range b.Items {
				lines = append(lines, "- "+inline.Markdown(item))
			}
		case core.NumberedList:
			for i, item := range b.Items {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, inline.Markdown(item)))
			}
		case core.Table:
			lines = append(lines, tableLines(b)...)
		case core.HorizontalRule:
			lines = append(lines, "---")
		case core.Spacer:
			lines = append(lines, "")
		}
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// merges reports whether b written right after prev would be read back as
// part of prev.
func merges(prev, b core.Block) bool {
	if prev == nil || prev.Kind() != b.Kind() {
		return false
	}
	switch b.(type) {
	case core.Paragraph, core.BulletList, core.NumberedList, core.Table:
		return true
	default:
		return false
	}
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func tableLines(t core.Table) []string {
	header := make([]string, len(t.Header))
	sep := make([]string, len(t.Header))
	for i, cell := range t.Header {
		header[i] = table.EscapeCell(inline.Markdown(cell))
		sep[i] = "---"
	}
	out := []string{row(header), row(sep)}
	for _, r := range t.Rows {
		cells := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			cells[i] = table.EscapeCell(c)
		}
		out = append(out, row(cells))
	}
	return out
}

func row(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

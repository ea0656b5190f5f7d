// Package render — terminal renderer.
// Styles the Document for an ANSI terminal with lipgloss. Color is dropped
// automatically when the output is not a color-capable terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gaurav-prasanna/reportpipe/core"
	"github.com/gaurav-prasanna/reportpipe/core/score"
	"github.com/gaurav-prasanna/reportpipe/core/table"
)

// TerminalRenderer renders a Document as styled terminal text.
type TerminalRenderer struct {
	Width int
	Theme Theme
}

// NewTerminalRenderer creates a TerminalRenderer wrapping paragraphs at width.
func NewTerminalRenderer(width int, theme Theme) *TerminalRenderer {
	if width <= 0 {
		width = 100
	}
	return &TerminalRenderer{Width: width, Theme: theme}
}

// Render converts a Document into terminal text.
func (r *TerminalRenderer) Render(doc core.Document, meta core.ReportMetadata) ([]byte, error) {
	var b strings.Builder
	if meta.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Underline(true).Render(meta.Title))
		b.WriteString("\n\n")
	}

	wrap := lipgloss.NewStyle().Width(r.Width)
	for _, blk := range doc.Blocks {
		switch blk := blk.(type) {
		case core.Heading:
			b.WriteString(r.headingStyle(blk.Level).Render(r.inline(blk.Content, false)))
			b.WriteString("\n")
		case core.Paragraph:
			b.WriteString(wrap.Render(r.inline(blk.Content, false)))
			b.WriteString("\n")
		case core.BulletList:
			for _, item := range blk.Items {
				b.WriteString("  • " + r.inline(item, false) + "\n")
			}
		case core.NumberedList:
			for i, item := range blk.Items {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, r.inline(item, false))
			}
		case core.Table:
			b.WriteString(r.table(blk))
		case core.HorizontalRule:
			b.WriteString(lipgloss.NewStyle().Faint(true).Render(strings.Repeat("─", r.Width)))
			b.WriteString("\n")
		case core.Spacer:
			b.WriteString("\n")
		}
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for terminal output.
func (r *TerminalRenderer) Extension() string {
	return ".txt"
}

func (r *TerminalRenderer) headingStyle(level int) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch level {
	case 1:
		return s.Underline(true).Foreground(lipgloss.Color(r.Theme.Blue))
	case 2:
		return s.Foreground(lipgloss.Color(r.Theme.Blue))
	case 3:
		return s
	default:
		return s.Italic(true)
	}
}

func (r *TerminalRenderer) inline(seq core.InlineSequence, bold bool) string {
	var b strings.Builder
	for _, s := range seq {
		switch s := s.(type) {
		case core.Text:
			b.WriteString(lipgloss.NewStyle().Bold(bold).Render(s.Value))
		case core.Score:
			b.WriteString(r.scoreStyle(score.BucketFor(s.Value)).Render(s.Raw))
		case core.Bold:
			b.WriteString(r.inline(s.Children, true))
		}
	}
	return b.String()
}

func (r *TerminalRenderer) scoreStyle(bk score.Bucket) lipgloss.Style {
	if bk == score.None {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(r.Theme.Score(bk)))
}

// table pads every column to its widest cell. Highlighted rows are marked
// with "▌" in the gutter; lipgloss backgrounds do not survive the nested
// span styles.
func (r *TerminalRenderer) table(t core.Table) string {
	cols := columnCount(t)
	if cols == 0 {
		return ""
	}

	grid := make([][]string, 0, len(t.Rows)+1)
	header := make([]string, cols)
	for c := range header {
		if c < len(t.Header) {
			header[c] = r.inline(t.Header[c], true)
		}
	}
	grid = append(grid, header)
	for _, row := range t.Rows {
		line := make([]string, cols)
		for c := range line {
			if c >= len(row.Cells) {
				continue
			}
			if bk := table.CellColor(row.Cells, c); bk != score.None {
				line[c] = r.scoreStyle(bk).Render(row.Cells[c])
			} else {
				line[c] = r.inline(table.FormatCell(row.Cells[c]), false)
			}
		}
		grid = append(grid, line)
	}

	widths := make([]int, cols)
	for _, line := range grid {
		for c, cell := range line {
			if w := lipgloss.Width(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}

	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Theme.Green)).Render("▌")
	var b strings.Builder
	for i, line := range grid {
		switch {
		case i > 0 && table.RowBackground(t.Rows[i-1]) == table.Highlight:
			b.WriteString(gutter)
		default:
			b.WriteString(" ")
		}
		for c, cell := range line {
			b.WriteString("│ ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[c]-lipgloss.Width(cell)+1))
		}
		b.WriteString("│\n")
		if i == 0 {
			b.WriteString(" ")
			for _, w := range widths {
				b.WriteString("├" + strings.Repeat("─", w+2))
			}
			b.WriteString("┤\n")
		}
	}
	return b.String()
}

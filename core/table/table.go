// Package table builds Table blocks from a run of pipe-delimited lines and
// decides the semantic highlighting of rows and cells.
package table

import (
	"strings"

	"github.com/gaurav-prasanna/reportpipe/core"
	"github.com/gaurav-prasanna/reportpipe/core/classify"
	"github.com/gaurav-prasanna/reportpipe/core/inline"
	"github.com/gaurav-prasanna/reportpipe/core/score"
)

// highScore is the lowest score that highlights its row.
const highScore = 8

// Background is the fill of a body row.
type Background int

const (
	Even Background = iota
	Odd
	Highlight
)

// String returns the class suffix used by the HTML renderer.
func (b Background) String() string {
	switch b {
	case Highlight:
		return "highlight"
	case Odd:
		return "odd"
	default:
		return "even"
	}
}

// Build turns the lines of a table group into a Table. Separator lines are
// dropped; the first remaining line is the header. It returns false when no
// content row is left.
func Build(lines []string) (core.Table, bool) {
	var rows [][]string
	for _, line := range lines {
		if classify.IsTableSeparator(line) {
			continue
		}
		rows = append(rows, ParseRow(line))
	}
	if len(rows) == 0 {
		return core.Table{}, false
	}

	header := make([]core.InlineSequence, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = inline.Format(cell)
	}

	body := make([]core.RowRecord, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		body = append(body, core.RowRecord{
			Cells:         cells,
			IsRecommended: IsRecommended(cells, i),
			HasHighScore:  HasHighScore(cells),
			RowIndex:      i,
		})
	}
	return core.Table{Header: header, Rows: body}, true
}

// ParseRow splits a table line into trimmed cells. The outer pipes are
// removed and an escaped pipe "\|" becomes a literal "|" inside its cell
// instead of a delimiter.
func ParseRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	var cells []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && line[i+1] == '|':
			cur.WriteByte('|')
			i++
		case c == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(cells, strings.TrimSpace(cur.String()))
}

// IsRecommended reports whether a body row is the recommended pick: a cell
// mentions "recommended" in any case, or it is the first row and ranked "1".
func IsRecommended(cells []string, rowIndex int) bool {
	for _, cell := range cells {
		if strings.Contains(strings.ToLower(cell), "recommended") {
			return true
		}
	}
	return rowIndex == 0 && len(cells) > 0 && strings.TrimSpace(cells[0]) == "1"
}

// HasHighScore reports whether any cell's first score is 8 or more.
func HasHighScore(cells []string) bool {
	for _, cell := range cells {
		if v, ok := score.First(cell); ok && v >= highScore {
			return true
		}
	}
	return false
}

// CellColor returns the color of cells[col]. A cell that is exactly a
// score is colored by its value. A bare number in the last column is read
// as a total and colored the same way when it is at most 10.
func CellColor(cells []string, col int) score.Bucket {
	if col < 0 || col >= len(cells) {
		return score.None
	}
	cell := strings.TrimSpace(cells[col])
	if v, ok := score.Exact(cell); ok {
		return score.BucketFor(v)
	}
	if col == len(cells)-1 {
		if v, ok := score.Number(cell); ok && v <= 10 {
			return score.BucketFor(v)
		}
	}
	return score.None
}

// RowBackground picks the fill of a body row. Highlighting wins over the
// even/odd striping.
func RowBackground(row core.RowRecord) Background {
	if row.IsRecommended || row.HasHighScore {
		return Highlight
	}
	if row.RowIndex%2 == 1 {
		return Odd
	}
	return Even
}

// FormatCell formats one raw body cell for display.
func FormatCell(cell string) core.InlineSequence {
	return inline.Format(cell)
}

// EscapeCell escapes literal pipes so the cell can be written back into a
// table line.
func EscapeCell(cell string) string {
	return strings.ReplaceAll(cell, "|", `\|`)
}

// Package segment is the block pass of the report parser. It walks the
// report once, left to right, and groups consecutive lines into blocks.
package segment

import (
	"strings"

	"github.com/gaurav-prasanna/reportpipe/core"
	"github.com/gaurav-prasanna/reportpipe/core/classify"
	"github.com/gaurav-prasanna/reportpipe/core/inline"
	"github.com/gaurav-prasanna/reportpipe/core/table"
)

// Parser implements the report parsing stage of the pipeline.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts report text into a Document.
func (p *Parser) Parse(text string) core.Document {
	return Parse(text)
}

// Parse converts report text into a Document. It never fails: constructs
// that do not fit the dialect fall back to paragraphs or literal text.
// Empty input gives a Document with no blocks.
func Parse(text string) core.Document {
	if text == "" {
		return core.Document{}
	}

	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}

	var blocks []core.Block
	i := 0
	for i < len(lines) {
		line := lines[i]

		switch classify.Classify(line) {
		case classify.Blank:
			blocks = append(blocks, core.Spacer{})
			i++

		case classify.TableRow:
			end := scan(lines, i+1, func(l string) bool {
				return classify.IsTableRow(l) || classify.IsTableSeparator(l)
			})
			if tbl, ok := table.Build(lines[i:end]); ok {
				blocks = append(blocks, tbl)
			}
			i = end

		case classify.Heading:
			blocks = append(blocks, core.Heading{
				Level:   classify.HeadingLevel(line),
				Content: inline.Format(classify.StripHeading(line)),
			})
			i++

		case classify.Bullet:
			end := scan(lines, i+1, classify.IsBulletPoint)
			blocks = append(blocks, core.BulletList{Items: items(lines[i:end], classify.StripBullet)})
			i = end

		case classify.Numbered:
			end := scan(lines, i+1, classify.IsNumberedListItem)
			blocks = append(blocks, core.NumberedList{Items: items(lines[i:end], classify.StripNumber)})
			i = end

		case classify.Rule:
			blocks = append(blocks, core.HorizontalRule{})
			i++

		default:
			end := scan(lines, i+1, func(l string) bool { return !classify.IsSpecial(l) })
			blocks = append(blocks, core.Paragraph{
				Content: inline.Format(strings.Join(lines[i:end], " ")),
			})
			i = end
		}
	}

	return core.Document{Blocks: blocks}
}

// scan returns the index of the first line at or after start that does not
// satisfy keep.
func scan(lines []string, start int, keep func(string) bool) int {
	end := start
	for end < len(lines) && keep(lines[end]) {
		end++
	}
	return end
}

func items(lines []string, strip func(string) string) []core.InlineSequence {
	out := make([]core.InlineSequence, len(lines))
	for i, l := range lines {
		out[i] = inline.Format(strip(l))
	}
	return out
}

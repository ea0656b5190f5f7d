// Package inline turns the raw text of a block or table cell into inline
// spans: plain text, bold runs and highlighted scores.
package inline

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/reportpipe/core"
	"github.com/gaurav-prasanna/reportpipe/core/score"
)

// boldRegex is non-greedy so "**a** **b**" gives two bold runs.
var boldRegex = regexp.MustCompile(`\*\*(.+?)\*\*`)

// Format splits text into Text, Bold and Score spans in source order.
// An unterminated "**" stays literal text. Empty input gives an empty
// sequence.
func Format(text string) core.InlineSequence {
	if text == "" {
		return nil
	}

	matches := boldRegex.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return FormatScores(text)
	}

	var seq core.InlineSequence
	last := 0
	for _, m := range matches {
		seq = append(seq, FormatScores(text[last:m[0]])...)
		seq = append(seq, core.Bold{Children: FormatScores(text[m[2]:m[3]])})
		last = m[1]
	}
	seq = append(seq, FormatScores(text[last:])...)
	return seq
}

// FormatScores splits text into Text and Score spans only. It never
// produces Bold, which keeps bold runs from nesting.
func FormatScores(text string) core.InlineSequence {
	if text == "" {
		return nil
	}

	matches := score.Pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return core.InlineSequence{core.Text{Value: text}}
	}

	var seq core.InlineSequence
	last := 0
	for _, m := range matches {
		if m[0] > last {
			seq = append(seq, core.Text{Value: text[last:m[0]]})
		}
		// The group is digits with at most one dot; a run too long for a
		// float64 parses as +Inf.
		v, _ := score.Number(text[m[2]:m[3]])
		seq = append(seq, core.Score{Value: v, Raw: text[m[0]:m[1]]})
		last = m[1]
	}
	if last < len(text) {
		seq = append(seq, core.Text{Value: text[last:]})
	}
	return seq
}

// Plain flattens a sequence to display text, dropping bold markers.
func Plain(seq core.InlineSequence) string {
	var b strings.Builder
	writePlain(&b, seq)
	return b.String()
}

func writePlain(b *strings.Builder, seq core.InlineSequence) {
	for _, s := range seq {
		switch s := s.(type) {
		case core.Text:
			b.WriteString(s.Value)
		case core.Score:
			b.WriteString(s.Raw)
		case core.Bold:
			writePlain(b, s.Children)
		}
	}
}

// Markdown writes a sequence back in the report dialect.
func Markdown(seq core.InlineSequence) string {
	var b strings.Builder
	for _, s := range seq {
		switch s := s.(type) {
		case core.Text:
			b.WriteString(s.Value)
		case core.Score:
			b.WriteString(s.Raw)
		case core.Bold:
			b.WriteString("**")
			writePlain(&b, s.Children)
			b.WriteString("**")
		}
	}
	return b.String()
}

// Scores returns every score in the sequence, bold children included.
func Scores(seq core.InlineSequence) []core.Score {
	var out []core.Score
	for _, s := range seq {
		switch s := s.(type) {
		case core.Score:
			out = append(out, s)
		case core.Bold:
			out = append(out, Scores(s.Children)...)
		}
	}
	return out
}

// IsAllBold reports whether the sequence is a single bold run.
func IsAllBold(seq core.InlineSequence) bool {
	if len(seq) != 1 {
		return false
	}
	_, ok := seq[0].(core.Bold)
	return ok
}

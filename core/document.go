package core

import (
	"encoding/json"

	"github.com/gaurav-prasanna/reportpipe/core/score"
)

// Document is the parsed form of a report: an ordered list of blocks in
// source line order. Documents are built once per input and never mutated.
type Document struct {
	Blocks []Block `json:"blocks"`
}

// Block kinds, also used as the JSON "type" discriminator.
const (
	KindHeading      = "heading"
	KindParagraph    = "paragraph"
	KindBulletList   = "bullet_list"
	KindNumberedList = "numbered_list"
	KindTable        = "table"
	KindRule         = "rule"
	KindSpacer       = "spacer"
)

// Block is one top-level element of a Document. The set of implementations
// is closed.
type Block interface {
	Kind() string
	block()
}

// Heading is a heading of level 1 through 4.
type Heading struct {
	Level   int            `json:"level"`
	Content InlineSequence `json:"content"`
}

// Paragraph is a run of plain lines joined with single spaces.
type Paragraph struct {
	Content InlineSequence `json:"content"`
}

// BulletList is a non-empty run of "-" or "*" items.
type BulletList struct {
	Items []InlineSequence `json:"items"`
}

// NumberedList is a non-empty run of "N." items. Source numbers are not
// kept; presentation numbers items from 1.
type NumberedList struct {
	Items []InlineSequence `json:"items"`
}

// Table is a pipe table. Header cells are formatted at parse time, body
// cells stay raw and are formatted per cell when rendered.
type Table struct {
	Header []InlineSequence `json:"header"`
	Rows   []RowRecord      `json:"rows"`
}

// RowRecord is one body row of a Table.
type RowRecord struct {
	Cells         []string `json:"cells"`
	IsRecommended bool     `json:"is_recommended"`
	HasHighScore  bool     `json:"has_high_score"`
	RowIndex      int      `json:"row_index"`
}

// HorizontalRule is a "---", "***" or "___" separator line.
type HorizontalRule struct{}

// Spacer stands for exactly one blank source line.
type Spacer struct{}

func (Heading) Kind() string        { return KindHeading }
func (Paragraph) Kind() string      { return KindParagraph }
func (BulletList) Kind() string     { return KindBulletList }
func (NumberedList) Kind() string   { return KindNumberedList }
func (Table) Kind() string          { return KindTable }
func (HorizontalRule) Kind() string { return KindRule }
func (Spacer) Kind() string         { return KindSpacer }

func (Heading) block()        {}
func (Paragraph) block()      {}
func (BulletList) block()     {}
func (NumberedList) block()   {}
func (Table) block()          {}
func (HorizontalRule) block() {}
func (Spacer) block()         {}

// Inline span kinds, also used as the JSON "type" discriminator.
const (
	SpanText  = "text"
	SpanBold  = "bold"
	SpanScore = "score"
)

// InlineSequence is the formatted content of a block or table cell.
type InlineSequence []InlineSpan

// InlineSpan is one run of inline content. The set of implementations is
// closed.
type InlineSpan interface {
	SpanKind() string
	span()
}

// Text is literal text.
type Text struct {
	Value string `json:"value"`
}

// Bold is a "**...**" run. Its children are Text and Score spans only.
type Bold struct {
	Children InlineSequence `json:"children"`
}

// Score is an "N/10" or "N.N / 10" mention. Raw keeps the matched text,
// whitespace included. Value is not clamped to 0..10.
type Score struct {
	Value float64 `json:"value"`
	Raw   string  `json:"raw"`
}

func (Text) SpanKind() string  { return SpanText }
func (Bold) SpanKind() string  { return SpanBold }
func (Score) SpanKind() string { return SpanScore }

func (Text) span()  {}
func (Bold) span()  {}
func (Score) span() {}

// MarshalJSON methods add the "type" discriminator. Each converts to a
// local alias type so the method is not called recursively.

func (h Heading) MarshalJSON() ([]byte, error) {
	type alias Heading
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{KindHeading, alias(h)})
}

func (p Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{KindParagraph, alias(p)})
}

func (l BulletList) MarshalJSON() ([]byte, error) {
	type alias BulletList
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{KindBulletList, alias(l)})
}

func (l NumberedList) MarshalJSON() ([]byte, error) {
	type alias NumberedList
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{KindNumberedList, alias(l)})
}

func (t Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{KindTable, alias(t)})
}

func (HorizontalRule) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{KindRule})
}

func (Spacer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{KindSpacer})
}

func (t Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{SpanText, alias(t)})
}

func (b Bold) MarshalJSON() ([]byte, error) {
	type alias Bold
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{SpanBold, alias(b)})
}

// Score values past float64 range are written as the largest float64.
func (s Score) MarshalJSON() ([]byte, error) {
	type alias Score
	s.Value = score.Finite(s.Value)
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{SpanScore, alias(s)})
}

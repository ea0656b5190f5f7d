// Package render — HTML renderer.
// Builds an x/net/html node tree for the Document and serializes it as a
// standalone page. Score colors and row backgrounds become CSS classes.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/reportpipe/core"
	"github.com/gaurav-prasanna/reportpipe/core/score"
	"github.com/gaurav-prasanna/reportpipe/core/table"
)

// HTMLRenderer produces a standalone HTML page.
type HTMLRenderer struct {
	Theme Theme
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer(theme Theme) *HTMLRenderer {
	return &HTMLRenderer{Theme: theme}
}

// Render converts a Document into an HTML page.
func (r *HTMLRenderer) Render(doc core.Document, meta core.ReportMetadata) ([]byte, error) {
	title := meta.Title
	if title == "" {
		title = "Report"
	}

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	head.AppendChild(withText(element(atom.Title), title))
	head.AppendChild(withText(element(atom.Style), r.stylesheet()))

	article := element(atom.Article, html.Attribute{Key: "class", Val: "report"})
	if meta.Source != "" {
		src := element(atom.P, html.Attribute{Key: "class", Val: "source"})
		article.AppendChild(withText(src, "Source: "+meta.Source))
	}
	for _, b := range doc.Blocks {
		article.AppendChild(blockNode(b))
	}

	body := element(atom.Body)
	body.AppendChild(article)

	root := element(atom.Html)
	root.AppendChild(head)
	root.AppendChild(body)

	page := &html.Node{Type: html.DocumentNode}
	page.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	page.AppendChild(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, page); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

func (r *HTMLRenderer) stylesheet() string {
	t := r.Theme
	var b strings.Builder
	fmt.Fprintf(&b, "body{font-family:sans-serif;color:%s;max-width:60em;margin:2em auto}", t.Text)
	b.WriteString("table{border-collapse:collapse;margin:.5em 0}th,td{border:1px solid #ccc;padding:.3em .6em;text-align:left}")
	fmt.Fprintf(&b, "th{background:%s}", t.HeaderBg)
	fmt.Fprintf(&b, ".row-highlight{background:%s}.row-even{background:%s}.row-odd{background:%s}", t.Highlight, t.Even, t.Odd)
	for _, bk := range []score.Bucket{score.Green, score.Blue, score.Yellow, score.Red} {
		fmt.Fprintf(&b, ".score-%s{color:%s;font-weight:bold}", bk, t.Score(bk))
	}
	b.WriteString(".spacer{height:.6em}.source{color:#666;font-style:italic}")
	return b.String()
}

var headingAtoms = map[int]atom.Atom{1: atom.H1, 2: atom.H2, 3: atom.H3, 4: atom.H4}

func blockNode(b core.Block) *html.Node {
	switch b := b.(type) {
	case core.Heading:
		a, ok := headingAtoms[b.Level]
		if !ok {
			a = atom.H4
		}
		return appendInline(element(a), b.Content)
	case core.Paragraph:
		return appendInline(element(atom.P), b.Content)
	case core.BulletList:
		return listNode(atom.Ul, b.Items)
	case core.NumberedList:
		return listNode(atom.Ol, b.Items)
	case core.Table:
		return tableNode(b)
	case core.HorizontalRule:
		return element(atom.Hr)
	default:
		return element(atom.Div, html.Attribute{Key: "class", Val: "spacer"})
	}
}

func listNode(a atom.Atom, items []core.InlineSequence) *html.Node {
	list := element(a)
	for _, item := range items {
		list.AppendChild(appendInline(element(atom.Li), item))
	}
	return list
}

func tableNode(t core.Table) *html.Node {
	tbl := element(atom.Table)

	thead := element(atom.Thead)
	hr := element(atom.Tr)
	for _, cell := range t.Header {
		hr.AppendChild(appendInline(element(atom.Th), cell))
	}
	thead.AppendChild(hr)
	tbl.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, row := range t.Rows {
		classes := []string{"row-" + table.RowBackground(row).String()}
		if row.IsRecommended {
			classes = append(classes, "recommended")
		}
		tr := element(atom.Tr, html.Attribute{Key: "class", Val: strings.Join(classes, " ")})
		for c, cell := range row.Cells {
			td := element(atom.Td)
			if bk := table.CellColor(row.Cells, c); bk != score.None {
				td.Attr = append(td.Attr, html.Attribute{Key: "class", Val: "score-" + bk.String()})
			}
			tr.AppendChild(appendInline(td, table.FormatCell(cell)))
		}
		tbody.AppendChild(tr)
	}
	tbl.AppendChild(tbody)
	return tbl
}

// appendInline adds the spans of seq as children of n and returns n.
func appendInline(n *html.Node, seq core.InlineSequence) *html.Node {
	for _, s := range seq {
		switch s := s.(type) {
		case core.Text:
			n.AppendChild(&html.Node{Type: html.TextNode, Data: s.Value})
		case core.Score:
			cls := "score score-" + score.BucketFor(s.Value).String()
			span := element(atom.Span, html.Attribute{Key: "class", Val: cls})
			n.AppendChild(withText(span, s.Raw))
		case core.Bold:
			n.AppendChild(appendInline(element(atom.Strong), s.Children))
		}
	}
	return n
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}

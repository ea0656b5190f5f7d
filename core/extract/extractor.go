// Package extract implements the Extractor interface for reports the report
// service serves as HTML pages. It reduces the page to markup that converts
// cleanly into the report dialect:
//  1. Score widgets (<meter>, data-score badges) become "N/10" text
//  2. Tables wrapped in figures or scroll containers are lifted out
//  3. Page chrome and report toolbars are removed
//  4. The report container is chosen (.report, [data-report], main, article, body)
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// chromeSelectors hold no report content.
var chromeSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "aside", "body > header",
	"img", "picture", "figure", "svg", "canvas", "iframe", "video", "audio",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".toolbar", ".actions", ".share", ".export",
	"[hidden]", `[aria-hidden="true"]`,
}

// containerSelectors are tried in order; the first match holds the report.
var containerSelectors = []string{".report", "[data-report]", "main", "article", "body"}

// HTMLExtractor reduces an HTML report page to its report body.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract returns the HTML fragment holding the report.
func (e *HTMLExtractor) Extract(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	scoresToText(doc)
	liftTables(doc)
	for _, sel := range chromeSelectors {
		doc.Find(sel).Remove()
	}

	content := container(doc)
	if content == nil {
		return "", fmt.Errorf("no report container found in HTML")
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing report: %w", err)
	}
	return result, nil
}

// scoresToText replaces score widgets with their "N/10" text so the parser
// sees them as scores. Widgets on another scale keep their visible text.
func scoresToText(doc *goquery.Document) {
	doc.Find("meter").Each(func(_ int, s *goquery.Selection) {
		replaceWithText(s, scoreText(s.AttrOr("value", ""), s.AttrOr("max", "1"), s.Text()))
	})
	doc.Find("[data-score]").Each(func(_ int, s *goquery.Selection) {
		replaceWithText(s, scoreText(s.AttrOr("data-score", ""), s.AttrOr("data-max", "10"), s.Text()))
	})
}

func scoreText(value, scale, fallback string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || strings.TrimSpace(scale) != "10" {
		return strings.TrimSpace(fallback)
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "/10"
}

func replaceWithText(s *goquery.Selection, text string) {
	s.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: text})
}

// liftTables replaces figures and scroll wrappers around a table with the
// table itself, so removing figure chrome keeps the data.
func liftTables(doc *goquery.Document) {
	doc.Find("figure, .table-wrapper, .table-scroll").Has("table").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithSelection(s.Find("table"))
	})
}

func container(doc *goquery.Document) *goquery.Selection {
	for _, sel := range containerSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found.First()
		}
	}
	return nil
}

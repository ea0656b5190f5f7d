package render

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/reportpipe/core"
	"github.com/gaurav-prasanna/reportpipe/core/segment"
)

const summaryReport = `# Summary
Top pick is **Acme** at 9/10.

| Rank | Component | Score |
|---|---|---|
| 1 | Acme FXP611 | 9/10 |
| 2 | Beta LM358 | **6/10** |
| 3 | Gamma a\|b | 4 |

- fast
- cheap
3. first
9. second
---
## Notes`

var testMeta = core.ReportMetadata{Source: "reports/summary.md", Title: "Trade Study"}

func parseSummary() core.Document {
	return segment.Parse(summaryReport)
}

// Every renderer must satisfy core.Renderer.
var (
	_ core.Renderer = (*PDFRenderer)(nil)
	_ core.Renderer = (*HTMLRenderer)(nil)
	_ core.Renderer = (*TerminalRenderer)(nil)
	_ core.Renderer = (*JSONRenderer)(nil)
	_ core.Renderer = (*MarkdownRenderer)(nil)
)

func TestMarkdownRoundTrip(t *testing.T) {
	doc := parseSummary()
	out, err := NewMarkdownRenderer().Render(doc, testMeta)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "1. first\n2. second")
	assert.Contains(t, text, `| 3 | Gamma a\|b | 4 |`)
	assert.Equal(t, doc, segment.Parse(text))
}

func TestMarkdownKeepsMergeableBlocksApart(t *testing.T) {
	cases := map[string]string{
		"paragraphs":     "alpha\n|---|\nbeta",
		"bullet lists":   "- a\n|---|\n- b",
		"numbered lists": "1. a\n|:-:|\n1. b",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			doc := segment.Parse(in)
			require.Len(t, doc.Blocks, 2)

			out, err := NewMarkdownRenderer().Render(doc, testMeta)
			require.NoError(t, err)

			reparsed := segment.Parse(string(out))
			require.Len(t, reparsed.Blocks, 3)
			assert.Equal(t, doc.Blocks[0], reparsed.Blocks[0])
			assert.Equal(t, core.Spacer{}, reparsed.Blocks[1])
			assert.Equal(t, doc.Blocks[1], reparsed.Blocks[2])
		})
	}
}

func TestHTMLRenderer(t *testing.T) {
	out, err := NewHTMLRenderer(DefaultTheme()).Render(parseSummary(), testMeta)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("<!DOCTYPE html>")))

	page, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, "Trade Study", page.Find("title").Text())
	assert.Equal(t, "Summary", page.Find("h1").Text())
	assert.Equal(t, "Notes", page.Find("h2").Text())
	assert.Equal(t, "Acme", page.Find("p strong").First().Text())
	assert.Equal(t, 2, page.Find("ul li").Length())
	assert.Equal(t, 2, page.Find("ol li").Length())
	assert.Equal(t, 1, page.Find("hr").Length())

	rows := page.Find("tbody tr")
	require.Equal(t, 3, rows.Length())
	assert.True(t, rows.Eq(0).HasClass("row-highlight"))
	assert.True(t, rows.Eq(0).HasClass("recommended"))
	assert.True(t, rows.Eq(1).HasClass("row-odd"))
	assert.True(t, rows.Eq(2).HasClass("row-even"))

	assert.True(t, rows.Eq(0).Find("td").Eq(2).HasClass("score-green"))
	assert.Equal(t, "6/10", rows.Eq(1).Find("td strong span.score-yellow").Text())
	assert.Equal(t, "Gamma a|b", rows.Eq(2).Find("td").Eq(1).Text())
	assert.True(t, rows.Eq(2).Find("td").Eq(2).HasClass("score-red"), "bare total in last column")

	assert.Equal(t, "9/10", page.Find("p span.score-green").Text())
}

func TestHTMLEscapesText(t *testing.T) {
	doc := segment.Parse("<script>alert(1)</script>")
	out, err := NewHTMLRenderer(DefaultTheme()).Render(doc, core.ReportMetadata{})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "&lt;script&gt;")
}

func TestJSONRenderer(t *testing.T) {
	out, err := NewJSONRenderer().Render(parseSummary(), testMeta)
	require.NoError(t, err)

	var got struct {
		Metadata core.ReportMetadata `json:"metadata"`
		Document struct {
			Blocks []map[string]any `json:"blocks"`
		} `json:"document"`
		Summary core.ReportSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out, &got))

	assert.Equal(t, testMeta, got.Metadata)
	require.NotEmpty(t, got.Document.Blocks)
	assert.Equal(t, "heading", got.Document.Blocks[0]["type"])

	s := got.Summary
	assert.Equal(t, []core.HeadingRef{{Level: 1, Text: "Summary"}, {Level: 2, Text: "Notes"}}, s.Headings)
	assert.Equal(t, 1, s.Tables)
	assert.Equal(t, 2, s.Lists)
	assert.Equal(t, [][]string{{"1", "Acme FXP611", "9/10"}}, s.RecommendedRows)
	require.Len(t, s.Scores, 3)
	assert.Equal(t, core.ScoreRef{Raw: "6/10", Value: 6, Color: "yellow"}, s.Scores[2])
}

func TestJSONHugeScore(t *testing.T) {
	doc := segment.Parse("Rated " + strings.Repeat("9", 400) + "/10")
	out, err := NewJSONRenderer().Render(doc, testMeta)
	require.NoError(t, err)

	var got struct {
		Summary core.ReportSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out, &got))
	require.Len(t, got.Summary.Scores, 1)
	assert.Equal(t, "green", got.Summary.Scores[0].Color)
	assert.Equal(t, math.MaxFloat64, got.Summary.Scores[0].Value)
}

func TestJSONEmptyDocument(t *testing.T) {
	out, err := NewJSONRenderer().Render(segment.Parse(""), core.ReportMetadata{})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"blocks": []`)
}

func TestTerminalRenderer(t *testing.T) {
	out, err := NewTerminalRenderer(60, DefaultTheme()).Render(parseSummary(), testMeta)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Summary")
	assert.Contains(t, text, "  • fast")
	assert.Contains(t, text, "  2. second")
	assert.Contains(t, text, "Acme FXP611")
	assert.Contains(t, text, "Gamma a|b")
	assert.Contains(t, text, "▌│ 1")
	assert.NotContains(t, text, "**")
}

func TestPDFRenderer(t *testing.T) {
	t.Run("renders a PDF", func(t *testing.T) {
		out, err := NewPDFRenderer(DefaultTheme()).Render(parseSummary(), testMeta)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})

	t.Run("unknown page size fails", func(t *testing.T) {
		r := NewPDFRenderer(DefaultTheme())
		r.PageSize = "Napkin"
		_, err := r.Render(parseSummary(), testMeta)
		assert.Error(t, err)
	})
}

func TestTheme(t *testing.T) {
	r, g, b, err := ParseHex("#15803d")
	require.NoError(t, err)
	assert.Equal(t, []int{0x15, 0x80, 0x3d}, []int{r, g, b})

	_, _, _, err = ParseHex("green")
	assert.Error(t, err)

	th := DefaultTheme().Merge(Theme{Green: "#00ff00"})
	assert.Equal(t, "#00ff00", th.Green)
	assert.Equal(t, DefaultTheme().Red, th.Red)
	assert.NoError(t, th.Validate())

	bad := DefaultTheme().Merge(Theme{Blue: "#12"})
	assert.Error(t, bad.Validate())
}

func TestExtensions(t *testing.T) {
	got := strings.Join([]string{
		NewPDFRenderer(DefaultTheme()).Extension(),
		NewHTMLRenderer(DefaultTheme()).Extension(),
		NewTerminalRenderer(0, DefaultTheme()).Extension(),
		NewJSONRenderer().Extension(),
		NewMarkdownRenderer().Extension(),
	}, " ")
	assert.Equal(t, ".pdf .html .txt .json .md", got)
}

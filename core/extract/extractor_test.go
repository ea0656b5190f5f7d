package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	page := `<html><head><title>t</title><script>x()</script></head><body>
<nav>Home | Projects</nav>
<main><div class="report"><h1>Summary</h1><p>Score 9/10</p><button>Export</button></div></main>
<footer>© ACME</footer>
</body></html>`

	out, err := New().Extract(page)
	require.NoError(t, err)

	assert.Contains(t, out, `<div class="report">`)
	assert.Contains(t, out, "<h1>Summary</h1>")
	assert.Contains(t, out, "Score 9/10")
	assert.NotContains(t, out, "Export")
	assert.NotContains(t, out, "Home | Projects")
	assert.NotContains(t, out, "ACME")
}

func TestExtractFallsBackToBody(t *testing.T) {
	out, err := New().Extract("<p>plain page</p>")
	require.NoError(t, err)
	assert.Contains(t, out, "<body>")
	assert.Contains(t, out, "plain page")
}

func TestExtractScoreWidgets(t *testing.T) {
	page := `<body><article>
<p>Overall <meter value="8" min="0" max="10">eight</meter></p>
<p>Cost <span class="badge" data-score="7.5">★★★</span></p>
<p>Grade <span data-score="4" data-max="5">B</span></p>
<p>Progress <meter value="0.4">40%</meter></p>
</article></body>`

	out, err := New().Extract(page)
	require.NoError(t, err)

	assert.Contains(t, out, "Overall 8/10")
	assert.Contains(t, out, "Cost 7.5/10")
	assert.Contains(t, out, "Grade B")
	assert.Contains(t, out, "Progress 40%")
	assert.NotContains(t, out, "meter")
	assert.NotContains(t, out, "★")
}

func TestExtractKeepsWrappedTables(t *testing.T) {
	page := `<body><div data-report="42">
<div class="toolbar"><a href="/pdf">Download</a></div>
<figure><figcaption>Ranking</figcaption><table><tr><th>Rank</th></tr><tr><td>1</td></tr></table></figure>
<div class="table-scroll"><table><tr><th>Cost</th></tr></table></div>
<p hidden>draft notes</p>
</div></body>`

	out, err := New().Extract(page)
	require.NoError(t, err)

	assert.Contains(t, out, `data-report="42"`)
	assert.Equal(t, 2, strings.Count(out, "<table>"))
	assert.Contains(t, out, "<th>Rank</th>")
	assert.Contains(t, out, "<th>Cost</th>")
	assert.NotContains(t, out, "figure")
	assert.NotContains(t, out, "Ranking")
	assert.NotContains(t, out, "Download")
	assert.NotContains(t, out, "draft notes")
}

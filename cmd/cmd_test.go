package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `# Trade Study
Overall: **8/10**

| Option | Cost | Total |
|---|---|---|
| **Alpha (Recommended)** | 9/10 | 9 |
| Beta | 4/10 | 4 |

1. Buy Alpha
2. Revisit Beta
`

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeReport(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestRenderFlagValidation(t *testing.T) {
	isolate(t)

	_, _, err := run(t, "", "render", "x.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one output format")

	_, _, err = run(t, "", "render", "x.md", "--pdf", "--html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one output format")
}

func TestRenderJSONStdin(t *testing.T) {
	isolate(t)

	out, _, err := run(t, sampleReport, "render", "-", "--json", "--stdout")
	require.NoError(t, err)

	var report struct {
		Metadata struct {
			Source string `json:"source"`
			Title  string `json:"title"`
		} `json:"metadata"`
		Document struct {
			Blocks []struct {
				Type string `json:"type"`
			} `json:"blocks"`
		} `json:"document"`
		Summary struct {
			Tables          int        `json:"tables"`
			Lists           int        `json:"lists"`
			RecommendedRows [][]string `json:"recommended_rows"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.Equal(t, "-", report.Metadata.Source)
	assert.Equal(t, "Trade Study", report.Metadata.Title)
	require.NotEmpty(t, report.Document.Blocks)
	assert.Equal(t, "heading", report.Document.Blocks[0].Type)
	assert.Equal(t, 1, report.Summary.Tables)
	assert.Equal(t, 1, report.Summary.Lists)
	require.Len(t, report.Summary.RecommendedRows, 1)
	assert.Equal(t, "**Alpha (Recommended)**", report.Summary.RecommendedRows[0][0])
}

func TestRenderTitleOverride(t *testing.T) {
	isolate(t)

	out, _, err := run(t, sampleReport, "render", "-", "--json", "--stdout", "--title", "Q3 Review")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Q3 Review"`)
}

func TestRenderWritesFiles(t *testing.T) {
	dir := isolate(t)
	outDir := filepath.Join(dir, "out")
	a := writeReport(t, dir, "q1 study.md", sampleReport)
	b := writeReport(t, dir, "q2.md", "## Notes\n- fine\n")

	out, _, err := run(t, "", "render", a, b, a, "--markdown", "--output_dir", outDir)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "✓ Written:"))
	data, err := os.ReadFile(filepath.Join(outDir, "q1_study.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "| **Alpha (Recommended)** | 9/10 | 9 |")
	assert.FileExists(t, filepath.Join(outDir, "q2.md"))
}

func TestRenderKeepsSameNamedReports(t *testing.T) {
	dir := isolate(t)
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b"), 0o755))
	a := writeReport(t, dir, "a/summary.md", "# A report\n")
	b := writeReport(t, dir, "b/summary.md", "# B report\n")

	out, _, err := run(t, "", "render", a, b, "--markdown", "--output_dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(outDir, "summary.md"))
	assert.Contains(t, out, filepath.Join(outDir, "summary_2.md"))

	first, err := os.ReadFile(filepath.Join(outDir, "summary.md"))
	require.NoError(t, err)
	assert.Equal(t, "# A report\n", string(first))
	second, err := os.ReadFile(filepath.Join(outDir, "summary_2.md"))
	require.NoError(t, err)
	assert.Equal(t, "# B report\n", string(second))
}

func TestRenderHTMLFromService(t *testing.T) {
	dir := isolate(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(sampleReport))
	}))
	defer srv.Close()

	out, _, err := run(t, "", "render", srv.URL+"/r/42", "--html", "--output_dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Written:")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var html string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".html") {
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			require.NoError(t, err)
			html = string(data)
		}
	}
	require.NotEmpty(t, html)
	assert.Contains(t, html, "row-highlight")
	assert.Contains(t, html, "score-blue")
}

func TestRenderContinuesPastFailures(t *testing.T) {
	dir := isolate(t)
	good := writeReport(t, dir, "good.md", sampleReport)

	out, errOut, err := run(t, "", "render", filepath.Join(dir, "missing.md"), good, "--json", "--output_dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 reports failed")
	assert.Contains(t, errOut, "missing.md")
	assert.Contains(t, out, "good.json")
}

func TestRenderSingleFailureReturnsCause(t *testing.T) {
	dir := isolate(t)

	_, _, err := run(t, "", "render", filepath.Join(dir, "missing.md"), "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch:")
}

func TestInspect(t *testing.T) {
	isolate(t)

	out, _, err := run(t, sampleReport, "inspect", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "h1 Trade Study")
	assert.Contains(t, out, "3 columns, 2 rows")
	assert.Contains(t, out, "[recommended high-score]")
	assert.Contains(t, out, "numbered_list")
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)

	out, _, err := run(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "# ReportPipe configuration (YAML)")
	assert.Contains(t, out, "page_size: A4")

	path := filepath.Join(dir, "cfg", "reportpipe.yaml")
	_, _, err = run(t, "", "config", "init", "-o", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, _, err = run(t, "", "config", "init", "-o", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--overwrite")

	out, _, err = run(t, "", "config", "check", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Config OK")
}

func TestInvalidConfigBlocksRender(t *testing.T) {
	dir := isolate(t)
	path := writeReport(t, dir, "bad.yaml", "pdf:\n  page_size: A0\n")

	_, _, err := run(t, sampleReport, "--config", path, "render", "-", "--json", "--stdout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")

	_, _, err = run(t, "", "config", "check", "--config", path)
	require.Error(t, err)
}

func TestTerminalWidth(t *testing.T) {
	assert.Equal(t, 80, terminalWidth(&bytes.Buffer{}, 80))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, 80, terminalWidth(f, 80))
}

func TestRenderTerminal(t *testing.T) {
	isolate(t)

	out, _, err := run(t, sampleReport, "render", "-", "--term")
	require.NoError(t, err)
	assert.Contains(t, out, "Trade Study")
	assert.Contains(t, out, "1. Buy Alpha")
	assert.Contains(t, out, "▌")
}

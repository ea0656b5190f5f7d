// Package cmd — render command.
// This is the main command that orchestrates the pipeline:
// fetch → (extract → normalize, for HTML reports) → parse → render → write.
//
// It handles flag validation and renderer selection.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gaurav-prasanna/reportpipe/config"
	"github.com/gaurav-prasanna/reportpipe/core"
	"github.com/gaurav-prasanna/reportpipe/core/batch"
	"github.com/gaurav-prasanna/reportpipe/core/extract"
	"github.com/gaurav-prasanna/reportpipe/core/fetch"
	"github.com/gaurav-prasanna/reportpipe/core/inline"
	"github.com/gaurav-prasanna/reportpipe/core/normalize"
	"github.com/gaurav-prasanna/reportpipe/core/output"
	"github.com/gaurav-prasanna/reportpipe/core/render"
	"github.com/gaurav-prasanna/reportpipe/core/segment"
)

// renderFlags holds the output format and destination flags.
type renderFlags struct {
	pdf       bool
	html      bool
	json      bool
	markdown  bool
	term      bool
	stdout    bool
	title     string
	outputDir string
}

func newRenderCmd() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render <file|url|->...",
		Short: "Render a report to the specified output format",
		Long: `Render reads one or more reports (local files, "-" for stdin, or report
service URLs), parses them, and renders each to the specified output format (PDF, HTML, JSON,
Markdown, or terminal text).

Examples:
  reportpipe render summary.md --pdf
  reportpipe render summary.md --html --output_dir ./out
  reportpipe render https://reports.example.com/r/42 --json --stdout
  reportpipe render q1.md q2.md q3.md --html
  cat summary.md | reportpipe render - --term`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, f)
		},
	}

	// Output format flags (mutually exclusive).
	cmd.Flags().BoolVar(&f.pdf, "pdf", false, "Output PDF")
	cmd.Flags().BoolVar(&f.html, "html", false, "Output HTML")
	cmd.Flags().BoolVar(&f.json, "json", false, "Output structured JSON")
	cmd.Flags().BoolVar(&f.markdown, "markdown", false, "Output canonical Markdown")
	cmd.Flags().BoolVar(&f.term, "term", false, "Print styled terminal output")

	cmd.Flags().BoolVar(&f.stdout, "stdout", false, "Write to stdout instead of a file")
	cmd.Flags().StringVar(&f.title, "title", "", "Document title (default: first heading)")
	cmd.Flags().StringVar(&f.outputDir, "output_dir", "", "Output directory (default: current directory)")

	return cmd
}

func runRender(cmd *cobra.Command, sources []string, f renderFlags) error {
	if err := f.validate(); err != nil {
		return err
	}
	opts := getOptions(cmd)

	if f.term {
		opts.TerminalWidth = terminalWidth(cmd.OutOrStdout(), opts.TerminalWidth)
	}
	renderer, err := selectRenderer(f, opts)
	if err != nil {
		return err
	}

	var writer *output.Writer
	if !f.stdout && !f.term {
		writer, err = output.New(opts.OutputDir)
		if err != nil {
			return fmt.Errorf("initializing output writer: %w", err)
		}
	}

	q := batch.NewQueue(sources...)
	failed := 0
	for q.HasNext() {
		source := q.Next()
		if err := renderSource(cmd, source, f, renderer, writer, opts); err != nil {
			if q.Len() == 1 {
				return err
			}
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", source, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d reports failed", failed, q.Len())
	}
	return nil
}

// renderSource renders one report and prints or writes the result.
func renderSource(cmd *cobra.Command, source string, f renderFlags, renderer core.Renderer, writer *output.Writer, opts config.Options) error {
	doc, meta, err := processSource(cmd.Context(), source, cmd.InOrStdin(), opts)
	if err != nil {
		return err
	}
	if f.title != "" {
		meta.Title = f.title
	}

	data, err := renderer.Render(doc, meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if writer == nil {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	path, err := writer.Write(source, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s (%s)\n", path, humanize.Bytes(uint64(len(data))))
	return nil
}

// processSource runs a report source through fetch, HTML cleanup and parse.
func processSource(ctx context.Context, source string, stdin io.Reader, opts config.Options) (core.Document, core.ReportMetadata, error) {
	httpFetcher := fetch.NewWithTimeout(opts.FetchTimeout, opts.UserAgent)
	httpFetcher.MaxBytes = opts.FetchMaxBytes
	fetcher := fetch.For(source, httpFetcher, stdin)

	// 1. Fetch
	result, err := fetcher.Fetch(ctx, source)
	if err != nil {
		return core.Document{}, core.ReportMetadata{}, fmt.Errorf("fetch: %w", err)
	}

	// 2. HTML reports are cleaned and converted to report Markdown.
	text := result.Body
	if result.IsHTML() {
		text, err = htmlToMarkdown(text, extract.New(), normalize.New())
		if err != nil {
			return core.Document{}, core.ReportMetadata{}, err
		}
	}

	// 3. Parse
	var parser core.Parser = segment.New()
	doc := parser.Parse(text)

	return doc, buildMetadata(source, doc), nil
}

func htmlToMarkdown(html string, extractor core.Extractor, normalizer core.Normalizer) (string, error) {
	content, err := extractor.Extract(html)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}
	markdown, err := normalizer.Normalize(content)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}
	return markdown, nil
}

// buildMetadata titles the report after its first heading.
func buildMetadata(source string, doc core.Document) core.ReportMetadata {
	meta := core.ReportMetadata{
		Source:      source,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, b := range doc.Blocks {
		if h, ok := b.(core.Heading); ok {
			meta.Title = inline.Plain(h.Content)
			break
		}
	}
	return meta
}

// validate checks that exactly one output format is chosen.
func (f renderFlags) validate() error {
	formatCount := 0
	for _, set := range []bool{f.pdf, f.html, f.json, f.markdown, f.term} {
		if set {
			formatCount++
		}
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --pdf, --html, --json, --markdown, or --term")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// terminalWidth narrows the configured width to the terminal's when w is one.
func terminalWidth(w io.Writer, configured int) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return configured
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 || cols >= configured {
		return configured
	}
	return cols
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer(f renderFlags, opts config.Options) (core.Renderer, error) {
	switch {
	case f.markdown:
		return render.NewMarkdownRenderer(), nil
	case f.json:
		return render.NewJSONRenderer(), nil
	case f.html:
		return render.NewHTMLRenderer(opts.Theme), nil
	case f.term:
		return render.NewTerminalRenderer(opts.TerminalWidth, opts.Theme), nil
	case f.pdf:
		r := render.NewPDFRenderer(opts.Theme)
		r.PageSize = opts.PDFPageSize
		r.Orientation = opts.PDFOrientation
		r.Font = opts.PDFFont
		return r, nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}

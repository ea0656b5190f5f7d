// Package fetch implements the Fetcher interface.
// Reports come from the report service over HTTP, from a local file, or
// from stdin ("-").
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/gaurav-prasanna/reportpipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "ReportPipe/1.0 (https://github.com/gaurav-prasanna/reportpipe)"

	// DefaultMaxBytes caps a report body read from the report service.
	DefaultMaxBytes int64 = 10 << 20
)

// HTTPFetcher fetches reports from the report service via HTTP.
type HTTPFetcher struct {
	UserAgent string
	MaxBytes  int64 // response bodies larger than this are rejected
	client    *http.Client
}

// New creates an HTTPFetcher with a sensible timeout.
func New() *HTTPFetcher {
	return NewWithTimeout(defaultTimeout, defaultUserAgent)
}

// NewWithTimeout creates an HTTPFetcher with the given timeout and user agent.
func NewWithTimeout(timeout time.Duration, userAgent string) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &HTTPFetcher{
		UserAgent: userAgent,
		MaxBytes:  DefaultMaxBytes,
		client:    &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the report at the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/markdown,text/plain,text/html;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("report at %s is larger than %s", url, humanize.IBytes(uint64(limit)))
	}

	return &core.FetchResult{
		Source:      url,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}, nil
}

// FileFetcher reads reports from the local filesystem, or stdin for "-".
type FileFetcher struct {
	Stdin io.Reader
}

// NewFile creates a FileFetcher reading "-" from os.Stdin.
func NewFile() *FileFetcher {
	return &FileFetcher{Stdin: os.Stdin}
}

// Fetch reads the report file. The content type is guessed from the file
// extension; anything unknown is treated as report text.
func (f *FileFetcher) Fetch(ctx context.Context, path string) (*core.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		body []byte
		err  error
	)
	if path == "-" {
		body, err = io.ReadAll(f.Stdin)
	} else {
		body, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if ct == "" {
		ct = "text/markdown; charset=utf-8"
	}
	return &core.FetchResult{
		Source:      path,
		ContentType: ct,
		Body:        string(body),
	}, nil
}

// IsURL reports whether source names an http(s) URL.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// For picks the fetcher for a source: httpFetcher for URLs, otherwise a
// FileFetcher reading "-" from stdin.
func For(source string, httpFetcher core.Fetcher, stdin io.Reader) core.Fetcher {
	if IsURL(source) {
		return httpFetcher
	}
	return &FileFetcher{Stdin: stdin}
}

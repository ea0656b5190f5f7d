// Package config loads ReportPipe settings with Viper.
// Precedence: defaults < config file < REPORTPIPE_* environment variables <
// command-line flags bound by the CLI.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/reportpipe/core/render"
)

// ConfigOption is one known key with its default and meaning.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// Options is a typed snapshot of the loaded configuration.
type Options struct {
	OutputDir      string
	FetchTimeout   time.Duration
	FetchMaxBytes  int64
	UserAgent      string
	PDFPageSize    string
	PDFOrientation string
	PDFFont        string
	TerminalWidth  int
	Theme          render.Theme
}

var (
	validPageSizes    = map[string]bool{"a3": true, "a4": true, "a5": true, "letter": true, "legal": true}
	validOrientations = map[string]bool{"p": true, "l": true, "portrait": true, "landscape": true}
	validFonts        = map[string]bool{"helvetica": true, "arial": true, "times": true, "courier": true}
)

// GetConfigOptions returns the default configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	theme := render.DefaultTheme()
	return []ConfigOption{
		{Key: "output_dir", Default: "", Comment: "Directory for rendered files (default: current directory)"},

		{Key: "fetch.timeout", Default: "30s", Comment: "HTTP timeout when fetching reports from the report service"},
		{Key: "fetch.max_bytes", Default: "10MiB", Comment: "Largest report body accepted from the report service, e.g. 512KiB or 10MB"},
		{Key: "fetch.user_agent", Default: "ReportPipe/1.0", Comment: "User-Agent sent to the report service"},

		{Key: "pdf.page_size", Default: "A4", Comment: "PDF page size: A3, A4, A5, Letter or Legal"},
		{Key: "pdf.orientation", Default: "P", Comment: "PDF orientation: P (portrait) or L (landscape)"},
		{Key: "pdf.font", Default: "Helvetica", Comment: "PDF core font family: Helvetica, Arial, Times or Courier"},

		{Key: "terminal.width", Default: 100, Comment: "Wrap width for terminal output"},

		{Key: "theme.green", Default: theme.Green, Comment: "Color of scores >= 9"},
		{Key: "theme.blue", Default: theme.Blue, Comment: "Color of scores of exactly 8"},
		{Key: "theme.yellow", Default: theme.Yellow, Comment: "Color of scores from 5 up to 9, except 8"},
		{Key: "theme.red", Default: theme.Red, Comment: "Color of scores below 5"},
		{Key: "theme.highlight", Default: theme.Highlight, Comment: "Background of recommended and high-score table rows"},
	}
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
// A config file set explicitly with SetConfigFile must exist and parse.
func Load(ctx context.Context, v *viper.Viper) error {
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("reportpipe")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "reportpipe"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "reportpipe"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("reportpipe")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return nil
}

// CheckConfigValidity reports every invalid setting in one joined error.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	if d := v.GetString("fetch.timeout"); d != "" {
		if dur, err := time.ParseDuration(d); err != nil || dur <= 0 {
			errs = append(errs, fmt.Errorf("fetch.timeout must be a positive duration, got %q", d))
		}
	}
	if n, err := humanize.ParseBytes(v.GetString("fetch.max_bytes")); err != nil || n == 0 {
		errs = append(errs, fmt.Errorf("fetch.max_bytes must be a positive size, got %q", v.GetString("fetch.max_bytes")))
	}
	if !validPageSizes[strings.ToLower(v.GetString("pdf.page_size"))] {
		errs = append(errs, fmt.Errorf("pdf.page_size %q is not supported", v.GetString("pdf.page_size")))
	}
	if !validOrientations[strings.ToLower(v.GetString("pdf.orientation"))] {
		errs = append(errs, fmt.Errorf("pdf.orientation must be P or L, got %q", v.GetString("pdf.orientation")))
	}
	if !validFonts[strings.ToLower(v.GetString("pdf.font"))] {
		errs = append(errs, fmt.Errorf("pdf.font %q is not a core font", v.GetString("pdf.font")))
	}
	if v.GetInt("terminal.width") <= 0 {
		errs = append(errs, errors.New("terminal.width must be greater than 0"))
	}
	for _, key := range []string{"theme.green", "theme.blue", "theme.yellow", "theme.red", "theme.highlight"} {
		if _, _, _, err := render.ParseHex(v.GetString(key)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	return errors.Join(errs...)
}

// FromViper returns the typed Options of a loaded, validated Viper instance.
func FromViper(v *viper.Viper) Options {
	timeout, _ := time.ParseDuration(v.GetString("fetch.timeout"))
	maxBytes, _ := humanize.ParseBytes(v.GetString("fetch.max_bytes"))
	return Options{
		OutputDir:      v.GetString("output_dir"),
		FetchTimeout:   timeout,
		FetchMaxBytes:  int64(maxBytes),
		UserAgent:      v.GetString("fetch.user_agent"),
		PDFPageSize:    v.GetString("pdf.page_size"),
		PDFOrientation: orientation(v.GetString("pdf.orientation")),
		PDFFont:        v.GetString("pdf.font"),
		TerminalWidth:  v.GetInt("terminal.width"),
		Theme: render.DefaultTheme().Merge(render.Theme{
			Green:     v.GetString("theme.green"),
			Blue:      v.GetString("theme.blue"),
			Yellow:    v.GetString("theme.yellow"),
			Red:       v.GetString("theme.red"),
			Highlight: v.GetString("theme.highlight"),
		}),
	}
}

// orientation maps "landscape"/"L" to gofpdf's "L" and anything else to "P".
func orientation(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "l") {
		return "L"
	}
	return "P"
}

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	v := viper.New()
	require.NoError(t, Load(context.Background(), v))
	require.NoError(t, CheckConfigValidity(v))

	opts := FromViper(v)
	assert.Equal(t, 30*time.Second, opts.FetchTimeout)
	assert.Equal(t, int64(10<<20), opts.FetchMaxBytes)
	assert.Equal(t, "A4", opts.PDFPageSize)
	assert.Equal(t, "P", opts.PDFOrientation)
	assert.Equal(t, 100, opts.TerminalWidth)
	assert.Equal(t, "#15803d", opts.Theme.Green)
}

func TestLoadFileAndEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "reportpipe.yaml")
	cfg := "pdf:\n  page_size: Letter\n  orientation: landscape\ntheme:\n  green: \"#00aa00\"\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	t.Setenv("REPORTPIPE_TERMINAL_WIDTH", "72")
	t.Setenv("REPORTPIPE_FETCH_MAX_BYTES", "512KiB")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, Load(context.Background(), v))
	require.NoError(t, CheckConfigValidity(v))

	opts := FromViper(v)
	assert.Equal(t, "Letter", opts.PDFPageSize)
	assert.Equal(t, "L", opts.PDFOrientation)
	assert.Equal(t, 72, opts.TerminalWidth)
	assert.Equal(t, int64(512<<10), opts.FetchMaxBytes)
	assert.Equal(t, "#00aa00", opts.Theme.Green)
	assert.Equal(t, "#b91c1c", opts.Theme.Red)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, Load(context.Background(), v))
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("fetch.timeout", "soon")
	v.Set("fetch.max_bytes", "lots")
	v.Set("pdf.page_size", "Napkin")
	v.Set("pdf.orientation", "sideways")
	v.Set("pdf.font", "Comic Sans")
	v.Set("terminal.width", 0)
	v.Set("theme.green", "green")
	v.Set("theme.blue", "#1d4ed8")
	v.Set("theme.yellow", "#a16207")
	v.Set("theme.red", "#b91c1c")
	v.Set("theme.highlight", "#dcfce7")

	err := CheckConfigValidity(v)
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"fetch.timeout must be a positive duration",
		`fetch.max_bytes must be a positive size, got "lots"`,
		`pdf.page_size "Napkin" is not supported`,
		"pdf.orientation must be P or L",
		`pdf.font "Comic Sans" is not a core font`,
		"terminal.width must be greater than 0",
		"theme.green: invalid color",
	} {
		assert.Contains(t, msg, want)
	}
	assert.NotContains(t, msg, "theme.blue")
}

func TestRenderDefaultYAML(t *testing.T) {
	out, err := RenderDefaultYAML()
	require.NoError(t, err)

	assert.Contains(t, out, "# ReportPipe configuration (YAML)")
	assert.Contains(t, out, "# Color of scores of exactly 8")
	assert.Contains(t, out, "pdf:\n")
	assert.Contains(t, out, "page_size: A4")

	// The rendered defaults load back as a valid config.
	isolate(t)
	path := filepath.Join(t.TempDir(), "reportpipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, Load(context.Background(), v))
	assert.NoError(t, CheckConfigValidity(v))
	assert.Equal(t, "A4", v.GetString("pdf.page_size"))
}

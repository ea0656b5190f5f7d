// Package render — color theme.
// Every renderer colors score buckets and row backgrounds from the same
// Theme so PDF, HTML and terminal output agree.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/reportpipe/core/score"
	"github.com/gaurav-prasanna/reportpipe/core/table"
)

// Theme holds hex colors ("#rrggbb") for score buckets and table rows.
type Theme struct {
	Green     string
	Blue      string
	Yellow    string
	Red       string
	Highlight string // background of recommended / high-score rows
	Even      string
	Odd       string
	HeaderBg  string
	Text      string
}

// DefaultTheme returns the default palette.
func DefaultTheme() Theme {
	return Theme{
		Green:     "#15803d",
		Blue:      "#1d4ed8",
		Yellow:    "#a16207",
		Red:       "#b91c1c",
		Highlight: "#dcfce7",
		Even:      "#ffffff",
		Odd:       "#f3f4f6",
		HeaderBg:  "#e5e7eb",
		Text:      "#111827",
	}
}

// Merge returns t with every non-empty field of o applied on top.
func (t Theme) Merge(o Theme) Theme {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&t.Green, o.Green)
	set(&t.Blue, o.Blue)
	set(&t.Yellow, o.Yellow)
	set(&t.Red, o.Red)
	set(&t.Highlight, o.Highlight)
	set(&t.Even, o.Even)
	set(&t.Odd, o.Odd)
	set(&t.HeaderBg, o.HeaderBg)
	set(&t.Text, o.Text)
	return t
}

// Score returns the color of a bucket, or "" for score.None.
func (t Theme) Score(b score.Bucket) string {
	switch b {
	case score.Green:
		return t.Green
	case score.Blue:
		return t.Blue
	case score.Yellow:
		return t.Yellow
	case score.Red:
		return t.Red
	default:
		return ""
	}
}

// Row returns the background color of a row fill.
func (t Theme) Row(bg table.Background) string {
	switch bg {
	case table.Highlight:
		return t.Highlight
	case table.Odd:
		return t.Odd
	default:
		return t.Even
	}
}

// ParseHex converts "#rrggbb" (or "rrggbb") into RGB components.
func ParseHex(hex string) (r, g, b int, err error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q: want #rrggbb", hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), nil
}

// Validate checks that every color of the theme parses.
func (t Theme) Validate() error {
	for _, c := range []string{t.Green, t.Blue, t.Yellow, t.Red, t.Highlight, t.Even, t.Odd, t.HeaderBg, t.Text} {
		if _, _, _, err := ParseHex(c); err != nil {
			return err
		}
	}
	return nil
}

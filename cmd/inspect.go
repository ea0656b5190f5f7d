// Package cmd — inspect command.
// Prints the block outline of a parsed report, one line per block and one
// line per table row, to debug how a report was segmented.
package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/reportpipe/core"
	"github.com/gaurav-prasanna/reportpipe/core/inline"
)

// maxSummary is the longest block summary printed before truncation.
const maxSummary = 60

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file|url|->",
		Short: "Print the block structure of a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := processSource(cmd.Context(), args[0], cmd.InOrStdin(), getOptions(cmd))
			if err != nil {
				return err
			}
			return writeOutline(cmd.OutOrStdout(), doc)
		},
	}
}

func writeOutline(w io.Writer, doc core.Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, b := range doc.Blocks {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, b.Kind(), outlineSummary(b))
		if t, ok := b.(core.Table); ok {
			for _, row := range t.Rows {
				fmt.Fprintf(tw, "\t  row %d\t%s%s\n", row.RowIndex, rowFlags(row), strings.Join(row.Cells, " | "))
			}
		}
	}
	return tw.Flush()
}

func outlineSummary(b core.Block) string {
	switch b := b.(type) {
	case core.Heading:
		return fmt.Sprintf("h%d %s", b.Level, truncate(inline.Plain(b.Content)))
	case core.Paragraph:
		return truncate(inline.Plain(b.Content))
	case core.BulletList:
		return fmt.Sprintf("%d items", len(b.Items))
	case core.NumberedList:
		return fmt.Sprintf("%d items", len(b.Items))
	case core.Table:
		return fmt.Sprintf("%d columns, %d rows", len(b.Header), len(b.Rows))
	default:
		return ""
	}
}

func rowFlags(row core.RowRecord) string {
	var flags []string
	if row.IsRecommended {
		flags = append(flags, "recommended")
	}
	if row.HasHighScore {
		flags = append(flags, "high-score")
	}
	if len(flags) == 0 {
		return ""
	}
	return "[" + strings.Join(flags, " ") + "] "
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxSummary {
		return s
	}
	return string(r[:maxSummary-3]) + "..."
}

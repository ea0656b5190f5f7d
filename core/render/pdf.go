// Package render — PDF renderer.
// Lays out a parsed report Document as a styled PDF using gofpdf.
// Handles the four heading levels, paragraphs, both list kinds, tables with
// row highlighting, horizontal rules and colored score spans.
package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/reportpipe/core"
	"github.com/gaurav-prasanna/reportpipe/core/inline"
	"github.com/gaurav-prasanna/reportpipe/core/score"
	"github.com/gaurav-prasanna/reportpipe/core/table"
	"github.com/jung-kurt/gofpdf"
)

// headingSizes are font sizes in points for heading levels 1-4.
var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12}

const (
	bodySize       = 10
	bodyLineHeight = 5
	tableSize      = 9
	tableRowHeight = 7
)

// PDFRenderer renders a report Document as a PDF document.
type PDFRenderer struct {
	PageSize    string // "A4", "Letter", ...
	Orientation string // "P" or "L"
	Font        string // core font family
	Theme       Theme
}

// NewPDFRenderer creates a PDFRenderer with A4 portrait Helvetica defaults.
func NewPDFRenderer(theme Theme) *PDFRenderer {
	return &PDFRenderer{
		PageSize:    "A4",
		Orientation: "P",
		Font:        "Helvetica",
		Theme:       theme,
	}
}

// pdfWriter carries the per-document state of one Render call.
type pdfWriter struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	font  string
	theme Theme
}

// Render converts a Document into PDF bytes.
func (r *PDFRenderer) Render(doc core.Document, meta core.ReportMetadata) ([]byte, error) {
	pdf := gofpdf.New(r.Orientation, "mm", r.PageSize, "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(meta.Title, true)
	pdf.AddPage()

	w := &pdfWriter{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		font:  r.Font,
		theme: r.Theme,
	}

	// Title from metadata.
	if meta.Title != "" {
		pdf.SetFont(w.font, "B", 18)
		w.color(w.theme.Text)
		pdf.MultiCell(0, 8, w.tr(meta.Title), "", "L", false)
		pdf.Ln(2)
	}

	// Source.
	if meta.Source != "" {
		pdf.SetFont(w.font, "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, w.tr("Source: "+meta.Source), "", "L", false)
		pdf.Ln(4)
	}

	for _, b := range doc.Blocks {
		switch b := b.(type) {
		case core.Heading:
			w.heading(b)
		case core.Paragraph:
			w.inline(b.Content, "", bodySize)
			pdf.Ln(bodyLineHeight + 1)
		case core.BulletList:
			for _, item := range b.Items {
				w.listItem("• ", item)
			}
			pdf.Ln(1)
		case core.NumberedList:
			for i, item := range b.Items {
				w.listItem(fmt.Sprintf("%d. ", i+1), item)
			}
			pdf.Ln(1)
		case core.Table:
			w.table(b)
		case core.HorizontalRule:
			w.rule()
		case core.Spacer:
			pdf.Ln(3)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// heading sets the font size based on heading level and writes text.
func (w *pdfWriter) heading(h core.Heading) {
	size, ok := headingSizes[h.Level]
	if !ok {
		size = bodySize
	}
	w.pdf.Ln(4)
	w.inline(h.Content, "B", size)
	w.pdf.Ln(size*0.6 + 2)
}

func (w *pdfWriter) listItem(marker string, item core.InlineSequence) {
	left, _, _, _ := w.pdf.GetMargins()
	w.pdf.SetX(left + 4)
	w.pdf.SetFont(w.font, "", bodySize)
	w.color(w.theme.Text)
	w.pdf.Write(bodyLineHeight, w.tr(marker))
	w.inline(item, "", bodySize)
	w.pdf.Ln(bodyLineHeight)
}

// inline writes spans as one flowing run. style is the base font style;
// bold spans add "B" and scores take their bucket color.
func (w *pdfWriter) inline(seq core.InlineSequence, style string, size float64) {
	h := size * 0.5
	for _, s := range seq {
		switch s := s.(type) {
		case core.Text:
			w.pdf.SetFont(w.font, style, size)
			w.color(w.theme.Text)
			w.pdf.Write(h, w.tr(s.Value))
		case core.Score:
			w.pdf.SetFont(w.font, "B", size)
			w.color(w.theme.Score(score.BucketFor(s.Value)))
			w.pdf.Write(h, w.tr(s.Raw))
		case core.Bold:
			w.inline(s.Children, "B", size)
		}
	}
	w.color(w.theme.Text)
}

func (w *pdfWriter) rule() {
	pageW, _ := w.pdf.GetPageSize()
	left, _, right, _ := w.pdf.GetMargins()
	w.pdf.Ln(2)
	y := w.pdf.GetY()
	w.pdf.SetDrawColor(180, 180, 180)
	w.pdf.Line(left, y, pageW-right, y)
	w.pdf.Ln(3)
}

// table draws a bordered grid. Columns share the printable width equally;
// cell text that does not fit is shortened.
func (w *pdfWriter) table(t core.Table) {
	cols := columnCount(t)
	if cols == 0 {
		return
	}
	pageW, _ := w.pdf.GetPageSize()
	left, _, right, _ := w.pdf.GetMargins()
	colW := (pageW - left - right) / float64(cols)

	w.pdf.Ln(2)
	w.pdf.SetDrawColor(200, 200, 200)

	// Header.
	w.pdf.SetFont(w.font, "B", tableSize)
	w.fill(w.theme.HeaderBg)
	w.color(w.theme.Text)
	for c := 0; c < cols; c++ {
		text := ""
		if c < len(t.Header) {
			text = inline.Plain(t.Header[c])
		}
		w.pdf.CellFormat(colW, tableRowHeight, w.fit(text, colW), "1", 0, "L", true, 0, "")
	}
	w.pdf.Ln(-1)

	// Body.
	for _, row := range t.Rows {
		w.fill(w.theme.Row(table.RowBackground(row)))
		for c := 0; c < cols; c++ {
			text, style, bucket := "", "", score.None
			if c < len(row.Cells) {
				seq := table.FormatCell(row.Cells[c])
				text = inline.Plain(seq)
				if inline.IsAllBold(seq) {
					style = "B"
				}
				bucket = cellBucket(row.Cells, c, seq)
			}
			if bucket != score.None {
				style = "B"
				w.color(w.theme.Score(bucket))
			} else {
				w.color(w.theme.Text)
			}
			w.pdf.SetFont(w.font, style, tableSize)
			w.pdf.CellFormat(colW, tableRowHeight, w.fit(text, colW), "1", 0, "L", true, 0, "")
		}
		w.pdf.Ln(-1)
	}
	w.color(w.theme.Text)
	w.pdf.Ln(3)
}

// fit translates s and shortens it with "..." until it fits in width mm.
func (w *pdfWriter) fit(s string, width float64) string {
	out := w.tr(s)
	limit := width - 2
	if w.pdf.GetStringWidth(out) <= limit {
		return out
	}
	for len(out) > 0 && w.pdf.GetStringWidth(out+"...") > limit {
		out = out[:len(out)-1]
	}
	return out + "..."
}

func (w *pdfWriter) color(hex string) {
	r, g, b, err := ParseHex(hex)
	if err != nil {
		r, g, b = 0, 0, 0
	}
	w.pdf.SetTextColor(r, g, b)
}

func (w *pdfWriter) fill(hex string) {
	r, g, b, err := ParseHex(hex)
	if err != nil {
		r, g, b = 255, 255, 255
	}
	w.pdf.SetFillColor(r, g, b)
}

// cellBucket is the cell-level color when the cell is a score or a total,
// otherwise the color of the first score span inside it.
func cellBucket(cells []string, col int, seq core.InlineSequence) score.Bucket {
	if b := table.CellColor(cells, col); b != score.None {
		return b
	}
	if scores := inline.Scores(seq); len(scores) > 0 {
		return score.BucketFor(scores[0].Value)
	}
	return score.None
}

// columnCount is the widest of the header and body rows.
func columnCount(t core.Table) int {
	n := len(t.Header)
	for _, row := range t.Rows {
		if len(row.Cells) > n {
			n = len(row.Cells)
		}
	}
	return n
}

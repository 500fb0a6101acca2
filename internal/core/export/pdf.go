package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const pageBreakY = 270.0

// PDFExporter implements PDF export using gofpdf
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export writes the report as a single A4 document
func (p *PDFExporter) Export(r *Report, w io.Writer) error {
	font := "Arial"
	size := r.Style.FontSize
	if size == 0 {
		size = 10
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont(font, "B", 16)
	pdf.Cell(0, 10, tr(r.Title))
	pdf.Ln(10)

	if r.Subtitle != "" {
		pdf.SetFont(font, "", 11)
		pdf.Cell(0, 6, tr(r.Subtitle))
		pdf.Ln(8)
	}

	if !r.CreatedAt.IsZero() {
		pdf.SetFont(font, "I", 8)
		meta := fmt.Sprintf("Generated: %s", r.CreatedAt.Format("2006-01-02 15:04:05"))
		if r.Author != "" {
			meta += " | Author: " + r.Author
		}
		pdf.Cell(0, 5, tr(meta))
		pdf.Ln(8)
	}

	if r.Overview != "" {
		pdf.SetFont(font, "", size)
		pdf.MultiCell(0, 5, tr(r.Overview), "", "", false)
		pdf.Ln(4)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	for _, sec := range r.Sections {
		if len(sec.Headers) == 0 {
			continue
		}
		widths := columnWidths(sec, usable)

		pdf.SetFont(font, "B", 12)
		pdf.Cell(0, 8, tr(sec.Title))
		pdf.Ln(9)

		drawHeader := func() {
			pdf.SetFont(font, "B", size)
			hr, hg, hb := hexToRGB(r.Style.HeaderBgColor)
			pdf.SetFillColor(hr, hg, hb)
			pdf.SetTextColor(255, 255, 255)
			for i, h := range sec.Headers {
				pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont(font, "", size)
		}
		drawHeader()

		if len(sec.Rows) == 0 {
			pdf.SetFont(font, "I", size)
			pdf.CellFormat(usable, 6, "No data", "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}

		for i, row := range sec.Rows {
			color := r.Style.RowBgColor1
			if i%2 == 1 {
				color = r.Style.RowBgColor2
			}
			cr, cg, cb := hexToRGB(color)
			pdf.SetFillColor(cr, cg, cb)

			for col, value := range row {
				if col >= len(widths) {
					break
				}
				pdf.CellFormat(widths[col], 6, tr(truncate(pdf, value, widths[col])), "1", 0, "L", true, 0, "")
			}
			pdf.Ln(-1)

			if pdf.GetY() > pageBreakY {
				pdf.AddPage()
				drawHeader()
			}
		}
		pdf.Ln(6)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// GetContentType returns the MIME type for PDF files
func (p *PDFExporter) GetContentType() string {
	return "application/pdf"
}

// GetFileExtension returns the file extension for PDF files
func (p *PDFExporter) GetFileExtension() string {
	return ".pdf"
}

func columnWidths(sec Section, usable float64) []float64 {
	weights := make([]float64, len(sec.Headers))
	total := 0.0
	for i := range weights {
		weights[i] = 1
		if i < len(sec.Widths) && sec.Widths[i] > 0 {
			weights[i] = sec.Widths[i]
		}
		total += weights[i]
	}
	for i := range weights {
		weights[i] = usable * weights[i] / total
	}
	return weights
}

// truncate shortens s with "..." until it fits in width
func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// hexToRGB converts hex color to RGB values
func hexToRGB(hex string) (int, int, int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	// Default to white if invalid
	if len(hex) != 6 {
		return 255, 255, 255
	}

	var r, g, b int
	_, _ = fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}

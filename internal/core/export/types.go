package export

import (
	"io"
	"time"
)

// Format is the export file format
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "xlsx"
)

// ParseFormat accepts the format names used in query strings
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "pdf":
		return FormatPDF, true
	case "xlsx", "excel":
		return FormatExcel, true
	default:
		return "", false
	}
}

// Exporter writes a report in one file format
type Exporter interface {
	Export(r *Report, w io.Writer) error
	GetContentType() string
	GetFileExtension() string
}

// Report is a titled document made of tables
type Report struct {
	Title     string
	Subtitle  string
	Overview  string
	Author    string
	CreatedAt time.Time
	Sections  []Section
	Style     Style
}

// Section is one table of a report. In Excel each section gets its own sheet.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []float64 // relative column widths, optional
}

// Style defines styling shared by both exporters
type Style struct {
	HeaderBgColor string
	RowBgColor1   string
	RowBgColor2   string
	FontFamily    string
	FontSize      float64
}

// DefaultStyle returns default export styling
func DefaultStyle() Style {
	return Style{
		HeaderBgColor: "#4F46E5",
		RowBgColor1:   "#FFFFFF",
		RowBgColor2:   "#F3F4F6",
		FontFamily:    "Arial",
		FontSize:      10,
	}
}

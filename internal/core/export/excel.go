package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// ExcelExporter implements Excel export using excelize
type ExcelExporter struct{}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export writes a summary sheet followed by one sheet per section
func (e *ExcelExporter) Export(r *Report, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Family: r.Style.FontFamily},
	})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	headerStyle, err := e.createHeaderStyle(f, r.Style)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	rowStyles := [2]int{}
	for i, color := range []string{r.Style.RowBgColor1, r.Style.RowBgColor2} {
		if rowStyles[i], err = e.createRowStyle(f, r.Style, color); err != nil {
			return fmt.Errorf("failed to create row style: %w", err)
		}
	}

	_ = f.SetCellValue(summary, "A1", r.Title)
	_ = f.SetCellStyle(summary, "A1", "A1", titleStyle)
	_ = f.SetCellValue(summary, "A2", r.Subtitle)
	_ = f.SetCellValue(summary, "A3", r.Overview)
	if !r.CreatedAt.IsZero() {
		_ = f.SetCellValue(summary, "A5", "Generated")
		_ = f.SetCellValue(summary, "B5", r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if r.Author != "" {
		_ = f.SetCellValue(summary, "A6", "Author")
		_ = f.SetCellValue(summary, "B6", r.Author)
	}
	_ = f.SetColWidth(summary, "A", "A", 60)

	for _, sec := range r.Sections {
		name := sheetName(sec.Title)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}

		for col, header := range sec.Headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			_ = f.SetCellValue(name, cell, header)
			_ = f.SetCellStyle(name, cell, cell, headerStyle)

			colName, _ := excelize.ColumnNumberToName(col + 1)
			width := 20.0
			if col < len(sec.Widths) {
				width = 20 * sec.Widths[col]
			}
			_ = f.SetColWidth(name, colName, colName, width)
		}

		for i, row := range sec.Rows {
			for col, value := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
				_ = f.SetCellValue(name, cell, value)
				_ = f.SetCellStyle(name, cell, cell, rowStyles[i%2])
			}
		}

		if len(sec.Headers) > 0 {
			_ = f.SetPanes(name, &excelize.Panes{
				Freeze:      true,
				YSplit:      1,
				TopLeftCell: "A2",
				ActivePane:  "bottomLeft",
			})
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}

	return nil
}

// GetContentType returns the MIME type for Excel files
func (e *ExcelExporter) GetContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// GetFileExtension returns the file extension for Excel files
func (e *ExcelExporter) GetFileExtension() string {
	return ".xlsx"
}

func (e *ExcelExporter) createHeaderStyle(f *excelize.File, style Style) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   style.FontSize,
			Family: style.FontFamily,
			Color:  "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{stripHashFromColor(style.HeaderBgColor)},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func (e *ExcelExporter) createRowStyle(f *excelize.File, style Style, bgColor string) (int, error) {
	rowStyle := &excelize.Style{
		Font:      &excelize.Font{Size: style.FontSize, Family: style.FontFamily},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	}

	// Only add fill if bgColor is not white
	if bgColor != "" && bgColor != "#FFFFFF" {
		rowStyle.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{stripHashFromColor(bgColor)},
		}
	}

	return f.NewStyle(rowStyle)
}

func sheetName(title string) string {
	if title == "" {
		title = "Data"
	}
	if len(title) > maxSheetName {
		title = title[:maxSheetName]
	}
	return title
}

// stripHashFromColor removes # from hex color codes
func stripHashFromColor(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}

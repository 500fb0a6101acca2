package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
)

func testReport() *Report {
	v := insights.Normalize(nil, insights.StaticDataset())
	return DashboardReport(v, "Test User", "Manager", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
}

func TestDashboardReport(t *testing.T) {
	r := testReport()
	require.Len(t, r.Sections, 3)
	assert.Equal(t, "Headline", r.Sections[0].Title)
	assert.Len(t, r.Sections[1].Rows, 3)
	assert.Equal(t, []string{"Total Revenue", "$2.4M", "up", "+12.5%"}, r.Sections[2].Rows[0])

	empty := DashboardReport(insights.View{}, "u", "Analyst", time.Now())
	require.Len(t, empty.Sections, 2)
	assert.Empty(t, empty.Sections[0].Rows)
}

func TestExcelExport(t *testing.T) {
	data, contentType, ext, err := NewService().Export(testReport(), FormatExcel)
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", ext)
	assert.Contains(t, contentType, "spreadsheetml")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Headline", "Insights", "Key Metrics"}, f.GetSheetList())

	title, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Clarity Insights Dashboard", title)

	cat, err := f.GetCellValue("Insights", "B2")
	require.NoError(t, err)
	assert.Equal(t, "customer", cat)
}

func TestPDFExport(t *testing.T) {
	data, contentType, ext, err := NewService().Export(testReport(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.Equal(t, ".pdf", ext)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExport_UnknownFormat(t *testing.T) {
	_, _, _, err := NewService().Export(testReport(), Format("csv"))
	assert.ErrorContains(t, err, "unsupported")
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("excel")
	assert.True(t, ok)
	assert.Equal(t, FormatExcel, f)
	_, ok = ParseFormat("doc")
	assert.False(t, ok)
}

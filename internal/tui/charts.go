package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/analytics"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// RenderChart draws the series stored under key as text. It returns "" for
// unknown keys and empty series.
func RenderChart(key string, points []analytics.Point, width int) string {
	spec, ok := analytics.Spec(key)
	if !ok || len(points) == 0 {
		return ""
	}
	if width < 20 {
		width = 20
	}

	var body string
	switch spec.Type {
	case analytics.ChartLine:
		body = sparkline(points)
	case analytics.ChartBar:
		body = bars(points, width)
	case analytics.ChartPie:
		body = pieLegend(points)
	}
	return lipgloss.NewStyle().Bold(true).Render(spec.Label) + "\n" + body
}

// sparkline maps each point to one of eight block heights
func sparkline(points []analytics.Point) string {
	vecs := analytics.Line(points, analytics.LineWidth, analytics.LineHeight)

	top, bottom := vecs[0].Y, vecs[0].Y
	for _, v := range vecs {
		top = math.Min(top, v.Y)
		bottom = math.Max(bottom, v.Y)
	}

	levels := float64(len(sparkLevels) - 1)
	var line, labels strings.Builder
	for i, v := range vecs {
		// smaller Y is higher on the surface
		frac := 0.5
		if bottom > top {
			frac = (bottom - v.Y) / (bottom - top)
		}
		idx := int(math.Round(frac * levels))
		line.WriteString(strings.Repeat(string(sparkLevels[idx]), 3))
		line.WriteRune(' ')
		labels.WriteString(fmt.Sprintf("%-4s", truncate(points[i].Label, 3)))
	}

	first, last := points[0].Value, points[len(points)-1].Value
	return fmt.Sprintf("%s  %g → %g\n%s", line.String(), first, last, labels.String())
}

func bars(points []analytics.Point, width int) string {
	labelWidth := 0
	for _, p := range points {
		if len(p.Label) > labelWidth {
			labelWidth = len(p.Label)
		}
	}
	barWidth := width - labelWidth - 10
	if barWidth < 5 {
		barWidth = 5
	}

	var b strings.Builder
	for i, seg := range analytics.Bar(points) {
		n := int(math.Round(seg.Percent / 100 * float64(barWidth)))
		color := lipgloss.Color(analytics.Palette[i%len(analytics.Palette)])
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n))
		fmt.Fprintf(&b, "%-*s %s %g\n", labelWidth, seg.Label, bar, seg.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}

func pieLegend(points []analytics.Point) string {
	var b strings.Builder
	for _, s := range analytics.Pie(points) {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("■")
		fmt.Fprintf(&b, "%s %s %.0f%%\n", swatch, s.Label, s.Angle/360*100)
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

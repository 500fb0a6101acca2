package analytics

import (
	"fmt"
	"html"
	"strings"
)

const barRowHeight = 32.0

// RenderSVG draws the series stored under key with the treatment from the
// chart table. It returns "" for empty input or an unknown key.
func RenderSVG(key string, points []Point) string {
	spec, ok := Spec(key)
	if !ok || len(points) == 0 {
		return ""
	}

	var b strings.Builder
	switch spec.Type {
	case ChartLine:
		renderLine(&b, spec, points)
	case ChartBar:
		renderBar(&b, spec, points)
	case ChartPie:
		renderPie(&b, spec, points)
	}
	return b.String()
}

func renderLine(b *strings.Builder, spec ChartSpec, points []Point) {
	pos := Line(points, LineWidth, LineHeight)

	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" preserveAspectRatio="none">`, LineWidth, LineHeight)
	writeTitle(b, spec)
	b.WriteString(`<defs><linearGradient id="lineGradient" x1="0%" y1="0%" x2="100%" y2="0%">`)
	b.WriteString(`<stop offset="0%" stop-color="#3b82f6"/><stop offset="100%" stop-color="#8b5cf6"/></linearGradient></defs>`)

	coords := make([]string, len(pos))
	for i, v := range pos {
		coords[i] = num(v.X) + "," + num(v.Y)
	}
	fmt.Fprintf(b, `<polyline fill="none" stroke="url(#lineGradient)" stroke-width="3" points="%s"/>`, strings.Join(coords, " "))

	for i, v := range pos {
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="4" fill="#3b82f6"><title>%s: %g</title></circle>`,
			num(v.X), num(v.Y), html.EscapeString(points[i].Label), points[i].Value)
	}
	b.WriteString(`</svg>`)
}

func renderBar(b *strings.Builder, spec ChartSpec, points []Point) {
	segs := Bar(points)
	height := barRowHeight * float64(len(segs))

	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 %g" preserveAspectRatio="none">`, height)
	writeTitle(b, spec)
	for i, s := range segs {
		y := barRowHeight * float64(i)
		fmt.Fprintf(b, `<rect x="0" y="%s" width="100" height="%s" fill="#e5e7eb"/>`, num(y+4), num(barRowHeight-8))
		fmt.Fprintf(b, `<rect x="0" y="%s" width="%s" height="%s" fill="#6366f1"><title>%s: %g</title></rect>`,
			num(y+4), num(s.Percent), num(barRowHeight-8), html.EscapeString(s.Label), s.Value)
	}
	b.WriteString(`</svg>`)
}

func renderPie(b *strings.Builder, spec ChartSpec, points []Point) {
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">`)
	writeTitle(b, spec)
	b.WriteString(`<g transform="rotate(-90 50 50)">`)
	for _, s := range Pie(points) {
		switch {
		case s.Angle <= 0:
			continue
		case s.Angle >= 360:
			fmt.Fprintf(b, `<circle cx="%g" cy="%g" r="%g" fill="%s"/>`, pieCenter, pieCenter, pieRadius, s.Color)
		default:
			fmt.Fprintf(b, `<path d="%s" fill="%s"><title>%s: %g</title></path>`,
				s.Path(), s.Color, html.EscapeString(s.Label), s.Value)
		}
	}
	fmt.Fprintf(b, `<circle cx="%g" cy="%g" r="%g" fill="white"/>`, pieCenter, pieCenter, PieInnerRadius)
	b.WriteString(`</g></svg>`)
}

func writeTitle(b *strings.Builder, spec ChartSpec) {
	fmt.Fprintf(b, `<title>%s</title>`, html.EscapeString(spec.Label))
}

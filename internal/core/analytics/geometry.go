package analytics

import (
	"fmt"
	"math"
)

// Default drawing surfaces.
const (
	LineWidth  = 400.0
	LineHeight = 150.0
	linePad    = 10.0

	pieCenter      = 50.0
	pieRadius      = 40.0
	PieInnerRadius = 25.0
)

// Vec is a position on the drawing surface.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line maps points onto a width x height surface. The lowest value sits
// linePad above the bottom edge and the highest linePad below the top.
// A flat series uses a range of 1 and a single point is centred.
func Line(points []Point, width, height float64) []Vec {
	if len(points) == 0 {
		return nil
	}

	lo, hi := bounds(points)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	out := make([]Vec, len(points))
	for i, p := range points {
		x := width / 2
		if len(points) > 1 {
			x = float64(i) / float64(len(points)-1) * width
		}
		y := height - ((p.Value-lo)/span)*(height-2*linePad) - linePad
		out[i] = Vec{X: x, Y: y}
	}
	return out
}

// BarSegment is one horizontal bar sized as a percentage of the largest value.
type BarSegment struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// Bar sizes each point relative to the series maximum
func Bar(points []Point) []BarSegment {
	if len(points) == 0 {
		return nil
	}

	_, hi := bounds(points)
	out := make([]BarSegment, len(points))
	for i, p := range points {
		pct := 0.0
		if hi > 0 && p.Value > 0 {
			pct = p.Value / hi * 100
		}
		out[i] = BarSegment{Label: p.Label, Value: p.Value, Percent: pct}
	}
	return out
}

// PieSlice is one wedge of a pie chart, angles in degrees.
type PieSlice struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	StartAngle float64 `json:"start_angle"`
	Angle      float64 `json:"angle"`
	Color      string  `json:"color"`
}

// Pie splits 360 degrees proportionally to the point values. A zero total
// yields zero-width slices.
func Pie(points []Point) []PieSlice {
	if len(points) == 0 {
		return nil
	}

	total := 0.0
	for _, p := range points {
		total += p.Value
	}

	out := make([]PieSlice, len(points))
	current := 0.0
	for i, p := range points {
		angle := 0.0
		if total > 0 {
			angle = p.Value / total * 360
		}
		out[i] = PieSlice{
			Label:      p.Label,
			Value:      p.Value,
			StartAngle: current,
			Angle:      angle,
			Color:      Palette[i%len(Palette)],
		}
		current += angle
	}
	return out
}

// Path returns the SVG path of the slice on a 100x100 surface
func (s PieSlice) Path() string {
	start := s.StartAngle * math.Pi / 180
	end := (s.StartAngle + s.Angle) * math.Pi / 180

	x1 := pieCenter + pieRadius*math.Cos(start)
	y1 := pieCenter + pieRadius*math.Sin(start)
	x2 := pieCenter + pieRadius*math.Cos(end)
	y2 := pieCenter + pieRadius*math.Sin(end)

	largeArc := 0
	if s.Angle > 180 {
		largeArc = 1
	}

	return fmt.Sprintf("M %g %g L %s %s A %g %g 0 %d 1 %s %s Z",
		pieCenter, pieCenter, num(x1), num(y1), pieRadius, pieRadius, largeArc, num(x2), num(y2))
}

func bounds(points []Point) (lo, hi float64) {
	lo, hi = points[0].Value, points[0].Value
	for _, p := range points[1:] {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	return lo, hi
}

func num(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

package analytics

import (
	"fmt"
	"math"
)

// ToChartData converts a series into the chart JSON shape. Unknown keys are
// drawn as bars.
func ToChartData(key string, points []Point) ChartData {
	spec, ok := Spec(key)
	if !ok {
		spec = ChartSpec{Key: key, Type: ChartBar, ValueKey: "value", Label: key}
	}

	labels := make([]string, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Label
		values[i] = p.Value
	}

	series := ChartSeries{Name: spec.ValueKey, Values: values}
	if spec.Type == ChartPie {
		series.Colors = make([]string, len(points))
		for i := range points {
			series.Colors[i] = Palette[i%len(Palette)]
		}
	}

	return ChartData{
		Key:    spec.Key,
		Type:   spec.Type,
		Title:  spec.Label,
		Labels: labels,
		Data:   []ChartSeries{series},
	}
}

// FormatStatValue renders a numeric KPI value.
// format: "number", "currency", "percentage"; anything else prints two decimals.
func FormatStatValue(value interface{}, format string) string {
	num := toFloat64(value)

	switch format {
	case "currency":
		return "$" + abbreviate(num, 2)
	case "percentage":
		return fmt.Sprintf("%.1f%%", num)
	case "number":
		return abbreviate(num, 0)
	default:
		return fmt.Sprintf("%.2f", num)
	}
}

func abbreviate(num float64, decimals int) string {
	abs := math.Abs(num)
	switch {
	case abs >= 1000000:
		return fmt.Sprintf("%.1fM", num/1000000)
	case abs >= 1000:
		return fmt.Sprintf("%.1fK", num/1000)
	default:
		return fmt.Sprintf("%.*f", decimals, num)
	}
}

func toFloat64(value interface{}) float64 {
	if value == nil {
		return 0
	}

	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

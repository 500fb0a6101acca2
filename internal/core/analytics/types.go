package analytics

import "time"

// Point is one labelled value of a chart series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartType selects how a series is drawn
type ChartType string

const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
	ChartPie  ChartType = "pie"
)

// ChartSpec describes how a known series key is drawn.
type ChartSpec struct {
	Key      string    `json:"key"`
	Type     ChartType `json:"type"`
	ValueKey string    `json:"value_key"` // field holding the value in the series rows
	Label    string    `json:"label"`
}

// AggregateQuery represents a generic database aggregation query
type AggregateQuery struct {
	Table      string                 // Table or JOIN clause
	GroupBy    []string               // GROUP BY columns
	Aggregates map[string]string      // Aggregate functions: {"count": "COUNT(*)"}
	Filters    map[string]interface{} // WHERE conditions
	DateRange  *DateRange             // Date range filter
	OrderBy    []string               // ORDER BY clauses
	Limit      int                    // LIMIT (0 = no limit)
}

// DateRange represents a time period for filtering
type DateRange struct {
	Start time.Time
	End   time.Time
	Field string // Date field to filter on (e.g., "created_at")
}

// ChartData is the JSON chart shape handed to API clients
type ChartData struct {
	Key    string        `json:"key"`
	Type   ChartType     `json:"type"`
	Title  string        `json:"title"`
	Labels []string      `json:"labels"`
	Data   []ChartSeries `json:"data"`
}

// ChartSeries represents a data series in a chart
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors,omitempty"`
}

// StatCard represents a summary statistic tile
type StatCard struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	ChangeLabel string `json:"change_label"`
	Trend       string `json:"trend"` // "up", "down", "neutral"
	Icon        string `json:"icon,omitempty"`
}

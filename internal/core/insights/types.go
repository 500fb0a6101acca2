package insights

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/analytics"
)

// Trend is the direction of a KPI
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// ParseTrend maps anything outside the enum to neutral
func ParseTrend(s string) Trend {
	switch Trend(s) {
	case TrendUp, TrendDown:
		return Trend(s)
	default:
		return TrendNeutral
	}
}

// Headline is the top story of the dashboard
type Headline struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Details   string `json:"details"`
	CreatedAt string `json:"created_at"`
}

// InsightCard is one categorised finding
type InsightCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CreatedAt   string `json:"created_at"`
}

// KPIMetric is a single labelled indicator with a preformatted value
type KPIMetric struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Value     string `json:"value"`
	Trend     Trend  `json:"trend"`
	Change    string `json:"change,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ChangeLabel is the explicit change, or a zero change signed by the trend
func (m KPIMetric) ChangeLabel() string {
	if m.Change != "" {
		return m.Change
	}
	switch m.Trend {
	case TrendUp:
		return "+0%"
	case TrendDown:
		return "-0%"
	default:
		return "~0%"
	}
}

// Payload is the body returned by the insights endpoint and persisted
// verbatim in the session store.
type Payload struct {
	Date      string     `json:"date"`
	Overview  string     `json:"overview"`
	Headline  string     `json:"headline"`
	Questions []Question `json:"questions"`
	Metrics   []Metric   `json:"metrics,omitempty"`
}

// Question is one analysed question of the payload. Every field is optional.
type Question struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Details  string `json:"details"`
	Category string `json:"category"`
	Overview string `json:"overview"`
}

// Metric is a KPI as sent by the endpoint
type Metric struct {
	ID     string      `json:"id,omitempty"`
	Title  string      `json:"title"`
	Value  MetricValue `json:"value"`
	Trend  string      `json:"trend"`
	Change string      `json:"change,omitempty"`
}

// MetricValue accepts a JSON string or number. Numbers of 1000 and above are
// abbreviated with the dashboard number format; smaller ones keep their
// precision.
type MetricValue string

func (v *MetricValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = MetricValue(s)
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("metric value must be a string or number: %s", data)
	}
	if math.Abs(f) < 1000 {
		*v = MetricValue(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	*v = MetricValue(analytics.FormatStatValue(f, "number"))
	return nil
}

// View is the display model of the dashboard page
type View struct {
	Headlines []Headline    `json:"headlines"`
	Cards     []InsightCard `json:"cards"`
	Metrics   []KPIMetric   `json:"metrics"`
	Overview  string        `json:"overview"`
	Date      string        `json:"date"`
	Static    bool          `json:"static"`
}

// PrimaryHeadline is the only headline the dashboard displays
func (v View) PrimaryHeadline() (Headline, bool) {
	if len(v.Headlines) == 0 {
		return Headline{}, false
	}
	return v.Headlines[0], true
}

// Headline finds a headline by id
func (v View) Headline(id string) (Headline, bool) {
	for _, h := range v.Headlines {
		if h.ID == id {
			return h, true
		}
	}
	return Headline{}, false
}

// Card finds a card by id
func (v View) Card(id string) (InsightCard, bool) {
	for _, c := range v.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return InsightCard{}, false
}

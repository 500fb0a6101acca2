package insights

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingFields is returned when a payload lacks one of the required
// top-level fields.
var ErrMissingFields = errors.New("payload missing required fields")

var requiredFields = []string{"date", "overview", "headline", "questions"}

// DecodePayload parses and validates an insights body
func DecodePayload(data []byte) (*Payload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("payload is not a JSON object: %w", err)
	}
	for _, f := range requiredFields {
		if _, ok := fields[f]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingFields, f)
		}
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return &p, nil
}

// Normalize shapes a payload into the dashboard view. A nil payload falls
// back to the static dataset.
func Normalize(p *Payload, fallback Dataset) View {
	if p == nil {
		return fallback.View()
	}

	v := View{
		Headlines: make([]Headline, 0, len(p.Questions)),
		Cards:     make([]InsightCard, 0, len(p.Questions)),
		Metrics:   make([]KPIMetric, 0, len(p.Metrics)),
		Overview:  p.Overview,
		Date:      p.Date,
	}

	for i, q := range p.Questions {
		id := strconv.Itoa(i + 1)
		v.Headlines = append(v.Headlines, Headline{
			ID:        id,
			Title:     q.Headline,
			Summary:   q.Summary,
			Details:   firstNonEmpty(q.Details, q.Overview),
			CreatedAt: p.Date,
		})
		v.Cards = append(v.Cards, InsightCard{
			ID:          id,
			Title:       q.Headline,
			Description: firstNonEmpty(q.Summary, q.Overview),
			Category:    strings.TrimSpace(q.Category),
			CreatedAt:   p.Date,
		})
	}

	for i, m := range p.Metrics {
		v.Metrics = append(v.Metrics, KPIMetric{
			ID:        firstNonEmpty(m.ID, strconv.Itoa(i+1)),
			Title:     m.Title,
			Value:     string(m.Value),
			Trend:     ParseTrend(m.Trend),
			Change:    m.Change,
			CreatedAt: p.Date,
		})
	}

	return v
}

func firstNonEmpty(values ...string) string {
	for _, s := range values {
		if s != "" {
			return s
		}
	}
	return ""
}

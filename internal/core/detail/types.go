package detail

import (
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
)

// Kind tells which dashboard entity was opened
type Kind string

const (
	KindHeadline Kind = "headline"
	KindCard     Kind = "card"
)

// Selection is the entity the user opened. Exactly one of Headline and Card
// is set, matching Kind.
type Selection struct {
	Kind     Kind                  `json:"type"`
	Headline *insights.Headline    `json:"headline,omitempty"`
	Card     *insights.InsightCard `json:"card,omitempty"`
}

func HeadlineSelection(h insights.Headline) Selection {
	return Selection{Kind: KindHeadline, Headline: &h}
}

func CardSelection(c insights.InsightCard) Selection {
	return Selection{Kind: KindCard, Card: &c}
}

// Title is the heading of the detail page
func (s Selection) Title() string {
	switch {
	case s.Headline != nil:
		return s.Headline.Title
	case s.Card != nil:
		return s.Card.Title
	default:
		return ""
	}
}

// ChartData holds named series; see analytics.Spec for how each key is drawn.
type ChartData map[string][]analytics.Point

// Keys returns the series present, in drawing order
func (c ChartData) Keys() []string {
	keys := make([]string, 0, len(c))
	for _, k := range analytics.Keys {
		if _, ok := c[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// CardDetail is the expanded view of a headline or card
type CardDetail struct {
	Insights        string               `json:"insights"`
	InsightPoints   []string             `json:"insight_points"`
	Recommendations []string             `json:"recommendations"`
	Metrics         []insights.KPIMetric `json:"metrics,omitempty"`
	ChartData       ChartData            `json:"chart_data"`
}

// Synthesizer builds the detail of a selection
type Synthesizer interface {
	Synthesize(sel Selection, metrics []insights.KPIMetric) CardDetail
}

package detail

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/auth"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
)

var roleFocus = map[auth.Role]struct {
	lens  string
	point string
	rec   string
}{
	auth.RoleAdmin: {
		lens:  "organisation-wide",
		point: "Access and data freshness are healthy across all teams",
		rec:   "Share this insight with team leads and schedule a review",
	},
	auth.RoleManager: {
		lens:  "team performance",
		point: "The change is concentrated in a small number of initiatives",
		rec:   "Reallocate budget toward the initiatives driving this result",
	},
	auth.RoleAnalyst: {
		lens:  "underlying data",
		point: "The trend holds after removing seasonal effects",
		rec:   "Break the result down by segment before drawing conclusions",
	},
}

// RoleSynthesizer phrases the detail for the viewer's role and attaches the
// dashboard KPIs. It produces no charts.
type RoleSynthesizer struct {
	Role auth.Role
}

func (s RoleSynthesizer) Synthesize(sel Selection, metrics []insights.KPIMetric) CardDetail {
	focus, ok := roleFocus[s.Role]
	if !ok {
		focus = roleFocus[auth.RoleAnalyst]
	}

	summary := ""
	if sel.Headline != nil {
		summary = sel.Headline.Summary
	} else if sel.Card != nil {
		summary = sel.Card.Description
	}

	d := CardDetail{
		Insights: fmt.Sprintf("From a %s perspective: %s", focus.lens, summary),
		InsightPoints: []string{
			focus.point,
			fmt.Sprintf("%d key metrics are tracked on this dashboard", len(metrics)),
		},
		Recommendations: []string{
			focus.rec,
			"Revisit this insight when the next report is published",
		},
		ChartData: ChartData{},
	}
	if len(metrics) > 0 {
		d.Metrics = append([]insights.KPIMetric{}, metrics...)
	}
	return d
}

// Composite sends headlines and cards to different synthesizers
type Composite struct {
	Headlines Synthesizer
	Cards     Synthesizer
}

func (c Composite) Synthesize(sel Selection, metrics []insights.KPIMetric) CardDetail {
	if sel.Kind == KindHeadline {
		return c.Headlines.Synthesize(sel, metrics)
	}
	return c.Cards.Synthesize(sel, metrics)
}

// Default is the synthesizer used by dashboard sessions: role-aware text
// for headlines and the category table for cards.
func Default(role auth.Role) Synthesizer {
	return Composite{
		Headlines: RoleSynthesizer{Role: role},
		Cards:     CategorySynthesizer{},
	}
}

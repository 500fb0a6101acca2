package export

import (
	"time"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
)

// DashboardReport lays out the dashboard view as a report
func DashboardReport(v insights.View, userName, roleTitle string, now time.Time) *Report {
	r := &Report{
		Title:     "Clarity Insights Dashboard",
		Subtitle:  roleTitle + " view",
		Overview:  v.Overview,
		Author:    userName,
		CreatedAt: now,
		Style:     DefaultStyle(),
	}

	if h, ok := v.PrimaryHeadline(); ok {
		r.Sections = append(r.Sections, Section{
			Title:   "Headline",
			Headers: []string{"Title", "Summary"},
			Rows:    [][]string{{h.Title, h.Summary}},
			Widths:  []float64{1, 2},
		})
	}

	cards := Section{
		Title:   "Insights",
		Headers: []string{"#", "Category", "Title", "Description"},
		Widths:  []float64{0.3, 1, 2, 3},
	}
	for _, c := range v.Cards {
		cards.Rows = append(cards.Rows, []string{c.ID, c.Category, c.Title, c.Description})
	}
	r.Sections = append(r.Sections, cards)

	kpis := Section{
		Title:   "Key Metrics",
		Headers: []string{"Metric", "Value", "Trend", "Change"},
		Widths:  []float64{2, 1, 1, 1},
	}
	for _, m := range v.Metrics {
		kpis.Rows = append(kpis.Rows, []string{m.Title, m.Value, string(m.Trend), m.ChangeLabel()})
	}
	r.Sections = append(r.Sections, kpis)

	return r
}

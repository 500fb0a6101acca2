package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/auth"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
)

func card(category string) Selection {
	return CardSelection(insights.InsightCard{ID: "1", Title: "t", Description: "d", Category: category})
}

func TestCategorySynthesizer(t *testing.T) {
	s := CategorySynthesizer{}

	tests := []struct {
		category string
		keys     []string
	}{
		{"customer", []string{"retention", "segmentRetention"}},
		{"revenue", []string{"revenue", "bySegment"}},
		{"operations", []string{"efficiency", "processes"}},
		{"unknown", []string{}},
		{"Customer", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			d := s.Synthesize(card(tt.category), nil)
			assert.ElementsMatch(t, tt.keys, d.ChartData.Keys())
			for _, k := range tt.keys {
				assert.NotEmpty(t, d.ChartData[k])
			}
		})
	}

	d := s.Synthesize(card("customer"), nil)
	assert.Len(t, d.ChartData["retention"], 6)
	assert.Equal(t, []string{"retention", "segmentRetention"}, d.ChartData.Keys())
	assert.NotEmpty(t, d.InsightPoints)
	assert.NotEmpty(t, d.Recommendations)
}

func TestCategorySynthesizer_Headline(t *testing.T) {
	d := CategorySynthesizer{}.Synthesize(HeadlineSelection(insights.Headline{ID: "1"}), nil)
	assert.Empty(t, d.ChartData)
}

func TestCategorySynthesizer_FreshCopies(t *testing.T) {
	s := CategorySynthesizer{}
	a := s.Synthesize(card("revenue"), nil)
	a.ChartData["revenue"][0].Value = -1
	a.InsightPoints[0] = "changed"

	b := s.Synthesize(card("revenue"), nil)
	assert.Equal(t, 1.8, b.ChartData["revenue"][0].Value)
	assert.NotEqual(t, "changed", b.InsightPoints[0])
}

func TestRoleSynthesizer(t *testing.T) {
	metrics := []insights.KPIMetric{{ID: "1", Title: "Revenue"}, {ID: "2", Title: "Users"}}
	h := HeadlineSelection(insights.Headline{ID: "1", Title: "Q4", Summary: "Revenue beat targets"})

	d := RoleSynthesizer{Role: auth.RoleManager}.Synthesize(h, metrics)
	assert.Contains(t, d.Insights, "team performance")
	assert.Contains(t, d.Insights, "Revenue beat targets")
	assert.Equal(t, metrics, d.Metrics)
	assert.Empty(t, d.ChartData)

	none := RoleSynthesizer{Role: auth.RoleAdmin}.Synthesize(h, nil)
	assert.Nil(t, none.Metrics)
}

func TestDefault(t *testing.T) {
	s := Default(auth.RoleAnalyst)
	metrics := []insights.KPIMetric{{ID: "1"}}

	hd := s.Synthesize(HeadlineSelection(insights.Headline{ID: "1", Summary: "s"}), metrics)
	assert.Len(t, hd.Metrics, 1)
	assert.Empty(t, hd.ChartData)

	cd := s.Synthesize(card("operations"), metrics)
	require.Contains(t, cd.ChartData, "processes")
	assert.Nil(t, cd.Metrics)
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryRevenue, ParseCategory("revenue"))
	assert.Equal(t, CategoryOther, ParseCategory("market"))
	assert.Equal(t, "other", CategoryOther.String())
}

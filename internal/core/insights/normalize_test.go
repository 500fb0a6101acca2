package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "date": "2024-05-01",
  "overview": "Marketing spend is paying back faster.",
  "headline": "ROI up",
  "questions": [
    {"headline": "Paid search ROI doubled", "summary": "Search returns 4.1x", "details": "Long form", "category": "revenue", "overview": "o1"},
    {"headline": "Churn steady", "summary": "", "details": "", "category": " customer ", "overview": "fallback text"},
    {"headline": "New segment", "category": "pricing"}
  ],
  "metrics": [
    {"title": "ROAS", "value": "4.1x", "trend": "up"},
    {"id": "m2", "title": "Spend", "value": 125000, "trend": "sideways"},
    {"title": "Payback (months)", "value": 2.4, "trend": "down"},
    {"title": "Match rate", "value": 0.94, "trend": "up"},
    {"title": "Campaigns", "value": 12}
  ]
}`

func TestNormalize_Payload(t *testing.T) {
	p, err := DecodePayload([]byte(samplePayload))
	require.NoError(t, err)

	v := Normalize(p, StaticDataset())
	assert.False(t, v.Static)
	assert.Equal(t, "Marketing spend is paying back faster.", v.Overview)
	assert.Equal(t, "2024-05-01", v.Date)

	require.Len(t, v.Headlines, 3)
	require.Len(t, v.Cards, 3)
	for i := range v.Headlines {
		assert.Equal(t, []string{"1", "2", "3"}[i], v.Headlines[i].ID)
		assert.Equal(t, v.Headlines[i].ID, v.Cards[i].ID)
		assert.Equal(t, "2024-05-01", v.Headlines[i].CreatedAt)
		assert.Equal(t, "2024-05-01", v.Cards[i].CreatedAt)
	}

	assert.Equal(t, "Paid search ROI doubled", v.Cards[0].Title)
	assert.Equal(t, "Search returns 4.1x", v.Cards[0].Description)
	assert.Equal(t, "fallback text", v.Cards[1].Description)
	assert.Equal(t, "fallback text", v.Headlines[1].Details)
	assert.Equal(t, "customer", v.Cards[1].Category)
	assert.Equal(t, "pricing", v.Cards[2].Category)

	require.Len(t, v.Metrics, 5)
	assert.Equal(t, KPIMetric{ID: "1", Title: "ROAS", Value: "4.1x", Trend: TrendUp, CreatedAt: "2024-05-01"}, v.Metrics[0])
	assert.Equal(t, "m2", v.Metrics[1].ID)
	assert.Equal(t, "125.0K", v.Metrics[1].Value)
	assert.Equal(t, TrendNeutral, v.Metrics[1].Trend)
	assert.Equal(t, "2.4", v.Metrics[2].Value)
	assert.Equal(t, "0.94", v.Metrics[3].Value)
	assert.Equal(t, "12", v.Metrics[4].Value)
}

func TestNormalize_EmptyQuestions(t *testing.T) {
	p, err := DecodePayload([]byte(`{"date":"d","overview":"o","headline":"h","questions":[]}`))
	require.NoError(t, err)

	v := Normalize(p, StaticDataset())
	assert.Empty(t, v.Headlines)
	assert.Empty(t, v.Cards)
	assert.Empty(t, v.Metrics)
	assert.NotNil(t, v.Headlines)
	_, ok := v.PrimaryHeadline()
	assert.False(t, ok)
}

func TestNormalize_Absent(t *testing.T) {
	v := Normalize(nil, StaticDataset())
	assert.True(t, v.Static)
	require.Len(t, v.Headlines, 1)
	require.Len(t, v.Cards, 3)
	assert.Len(t, v.Metrics, 3)

	categories := []string{v.Cards[0].Category, v.Cards[1].Category, v.Cards[2].Category}
	assert.Equal(t, []string{"customer", "revenue", "operations"}, categories)
}

func TestNormalize_DoesNotAliasFallback(t *testing.T) {
	ds := StaticDataset()
	v := Normalize(nil, ds)
	v.Cards[0].Title = "changed"
	assert.NotEqual(t, "changed", ds.Cards[0].Title)
}

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>`},
		{"array", `[]`},
		{"missing questions", `{"date":"d","overview":"o","headline":"h"}`},
		{"missing date", `{"overview":"o","headline":"h","questions":[]}`},
		{"bad metric", `{"date":"d","overview":"o","headline":"h","questions":[],"metrics":[{"value":true}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePayload([]byte(tt.body))
			assert.Error(t, err)
		})
	}

	_, err := DecodePayload([]byte(`{"overview":"o","headline":"h","questions":[]}`))
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestView_Lookup(t *testing.T) {
	v := Normalize(nil, StaticDataset())

	c, ok := v.Card("2")
	require.True(t, ok)
	assert.Equal(t, "revenue", c.Category)

	_, ok = v.Card("9")
	assert.False(t, ok)

	h, ok := v.Headline("1")
	require.True(t, ok)
	p, _ := v.PrimaryHeadline()
	assert.Equal(t, h, p)
}

func TestStyleAndTrend(t *testing.T) {
	assert.Equal(t, "users", CategoryStyle("customer").Icon)
	assert.Equal(t, CategoryStyle("product"), CategoryStyle("pricing"))
	assert.Equal(t, CategoryStyle("product"), CategoryStyle(""))

	assert.Equal(t, "▲", TrendSymbol(TrendUp))
	assert.Equal(t, "–", TrendSymbol("bogus"))

	assert.Equal(t, "+0%", KPIMetric{Trend: TrendUp}.ChangeLabel())
	assert.Equal(t, "-0%", KPIMetric{Trend: TrendDown}.ChangeLabel())
	assert.Equal(t, "~0%", KPIMetric{Trend: TrendNeutral}.ChangeLabel())
	assert.Equal(t, "+3%", KPIMetric{Trend: TrendDown, Change: "+3%"}.ChangeLabel())
}

package insights

// Dataset is the content shown when no insights payload is available.
type Dataset struct {
	Overview  string
	Date      string
	Headlines []Headline
	Cards     []InsightCard
	Metrics   []KPIMetric
}

// View copies the dataset into a dashboard view
func (d Dataset) View() View {
	return View{
		Headlines: append([]Headline{}, d.Headlines...),
		Cards:     append([]InsightCard{}, d.Cards...),
		Metrics:   append([]KPIMetric{}, d.Metrics...),
		Overview:  d.Overview,
		Date:      d.Date,
		Static:    true,
	}
}

const staticDate = "2024-01-15T09:00:00Z"

// StaticDataset is the built-in sample content.
func StaticDataset() Dataset {
	return Dataset{
		Overview: "Sample insights. Select a role to load the latest analysis.",
		Date:     staticDate,
		Headlines: []Headline{
			{
				ID:        "1",
				Title:     "Q4 Revenue Exceeds Targets by 23%",
				Summary:   "Strong performance across all product lines drove record quarterly revenue, with enterprise clients leading growth.",
				Details:   "Enterprise accounts grew 31% quarter over quarter while mid-market held steady. New product launches contributed 18% of incremental revenue.",
				CreatedAt: staticDate,
			},
		},
		Cards: []InsightCard{
			{
				ID:          "1",
				Title:       "Customer Retention Improved",
				Description: "Retention rate increased to 94% driven by the new onboarding program and proactive support.",
				Category:    "customer",
				CreatedAt:   staticDate,
			},
			{
				ID:          "2",
				Title:       "Revenue Growth Accelerating",
				Description: "Month-over-month revenue growth reached 12%, the highest in two years.",
				Category:    "revenue",
				CreatedAt:   staticDate,
			},
			{
				ID:          "3",
				Title:       "Operational Efficiency Gains",
				Description: "Process automation reduced manual work by 35% and cut fulfilment time in half.",
				Category:    "operations",
				CreatedAt:   staticDate,
			},
		},
		Metrics: []KPIMetric{
			{ID: "1", Title: "Total Revenue", Value: "$2.4M", Trend: TrendUp, Change: "+12.5%", CreatedAt: staticDate},
			{ID: "2", Title: "Active Users", Value: "45.2K", Trend: TrendUp, Change: "+8.3%", CreatedAt: staticDate},
			{ID: "3", Title: "Churn Rate", Value: "2.1%", Trend: TrendDown, Change: "-0.4%", CreatedAt: staticDate},
		},
	}
}

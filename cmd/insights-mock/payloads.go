package main

import (
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
)

const reportDate = "2024-05-01"

func question(headline, summary, details, category, overview string) insights.Question {
	return insights.Question{
		Headline: headline,
		Summary:  summary,
		Details:  details,
		Category: category,
		Overview: overview,
	}
}

func metric(title, value, trend, change string) insights.Metric {
	return insights.Metric{Title: title, Value: insights.MetricValue(value), Trend: trend, Change: change}
}

// payloads are the canned responses per role id
var payloads = map[string]insights.Payload{
	"admin": {
		Date:     reportDate,
		Overview: "Marketing spend returned 4.1x this month, led by paid search and lifecycle email.",
		Headline: "Portfolio ROI is up 12% month over month",
		Questions: []insights.Question{
			question("Retention is compounding revenue",
				"Repeat customers drove 38% of revenue, up from 31%.",
				"Enterprise renewals and the new onboarding flow lifted 90-day retention to 94%.",
				"customer", "Retention improved across every segment."),
			question("Paid search is the most efficient channel",
				"Paid search returned $5.20 per dollar spent.",
				"Cost per acquisition fell 18% after the bidding strategy change in April.",
				"revenue", "Channel efficiency improved."),
			question("Campaign approvals are slowing launches",
				"Median approval time rose to 4.5 days.",
				"Manual review steps account for most of the delay; two of five are automatable.",
				"operations", "Process time is the main launch constraint."),
		},
		Metrics: []insights.Metric{
			metric("Marketing ROI", "4.1x", "up", "+12%"),
			metric("Customer Acquisition Cost", "$42", "down", "-18%"),
			metric("Active Campaigns", "27", "neutral", ""),
		},
	},
	"manager": {
		Date:     reportDate,
		Overview: "Campaign performance is ahead of plan; two initiatives need budget review.",
		Headline: "Q2 campaigns are tracking 8% above target",
		Questions: []insights.Question{
			question("Lifecycle email outperforms forecast",
				"Email revenue is 22% above forecast.",
				"Segmented win-back flows converted at twice the rate of broadcast sends.",
				"revenue", "Owned channels are over-delivering."),
			question("Mid-market churn needs attention",
				"Mid-market churn rose to 6.1%.",
				"Accounts without a second active user churn three times as often.",
				"customer", "Churn risk is concentrated in mid-market."),
		},
		Metrics: []insights.Metric{
			metric("Pipeline Generated", "$1.2M", "up", "+8%"),
			metric("Churn Rate", "6.1%", "down", ""),
		},
	},
	"analyst": {
		Date:     reportDate,
		Overview: "Attribution data is complete for 96% of conversions this period.",
		Headline: "Attribution coverage reached a new high",
		Questions: []insights.Question{
			question("Display ads are over-credited",
				"Last-touch attribution credits display with 14% of conversions.",
				"Data-driven attribution lowers that to 6%, moving budget signal toward search.",
				"revenue", "Model choice changes channel rankings."),
			question("Tagging gaps on partner pages",
				"4% of conversions lack a source tag.",
				"All untagged traffic arrives through three partner landing pages.",
				"operations", "Tracking coverage is nearly complete."),
			question("New feature adoption by cohort",
				"Accounts onboarded after March adopt dashboards 40% faster.",
				"The guided tour is the strongest predictor of week-one activation.",
				"product", "Newer cohorts activate faster."),
		},
		Metrics: []insights.Metric{
			metric("Attributed Conversions", "96%", "up", "+3%"),
			metric("Untagged Sessions", "4%", "down", "-1%"),
		},
	},
}

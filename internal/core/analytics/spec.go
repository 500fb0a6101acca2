package analytics

// Chart keys in the order a detail page draws them.
var Keys = []string{
	"retention",
	"revenue",
	"efficiency",
	"usage",
	"segmentRetention",
	"bySegment",
	"features",
	"satisfaction",
	"processes",
	"marketShare",
}

var specs = map[string]ChartSpec{
	"retention":        {Key: "retention", Type: ChartLine, ValueKey: "rate", Label: "Retention Rate Trend"},
	"revenue":          {Key: "revenue", Type: ChartLine, ValueKey: "value", Label: "Revenue Trend (Millions)"},
	"efficiency":       {Key: "efficiency", Type: ChartLine, ValueKey: "score", Label: "Efficiency Score"},
	"usage":            {Key: "usage", Type: ChartLine, ValueKey: "users", Label: "Active Users"},
	"segmentRetention": {Key: "segmentRetention", Type: ChartBar, ValueKey: "rate", Label: "Retention by Segment"},
	"bySegment":        {Key: "bySegment", Type: ChartBar, ValueKey: "value", Label: "Revenue by Segment (%)"},
	"features":         {Key: "features", Type: ChartBar, ValueKey: "adoption", Label: "Feature Adoption Rate"},
	"satisfaction":     {Key: "satisfaction", Type: ChartBar, ValueKey: "score", Label: "Customer Satisfaction"},
	"processes":        {Key: "processes", Type: ChartPie, ValueKey: "percentage", Label: "Process Automation Status"},
	"marketShare":      {Key: "marketShare", Type: ChartBar, ValueKey: "our", Label: "Our Market Share by Segment"},
}

// Spec looks up the chart treatment for a series key
func Spec(key string) (ChartSpec, bool) {
	s, ok := specs[key]
	return s, ok
}

// Palette is the slice colour cycle used by pie charts.
var Palette = []string{"#3b82f6", "#8b5cf6", "#ec4899", "#f59e0b", "#10b981", "#6366f1"}

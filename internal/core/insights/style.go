package insights

// Style is the icon and colour treatment of a card category.
type Style struct {
	Icon     string `json:"icon"`
	Gradient string `json:"gradient"`
	Color    string `json:"color"` // accent used by the terminal client
}

var categoryStyles = map[string]Style{
	"customer":   {Icon: "users", Gradient: "from-emerald-500 to-teal-500", Color: "#10b981"},
	"revenue":    {Icon: "trending-up", Gradient: "from-blue-500 to-cyan-500", Color: "#3b82f6"},
	"operations": {Icon: "package", Gradient: "from-orange-500 to-amber-500", Color: "#f97316"},
	"product":    {Icon: "target", Gradient: "from-purple-500 to-pink-500", Color: "#a855f7"},
	"market":     {Icon: "line-chart", Gradient: "from-red-500 to-rose-500", Color: "#ef4444"},
	"strategy":   {Icon: "award", Gradient: "from-indigo-500 to-violet-500", Color: "#6366f1"},
}

// CategoryStyle returns the treatment for category, falling back to product
func CategoryStyle(category string) Style {
	if s, ok := categoryStyles[category]; ok {
		return s
	}
	return categoryStyles["product"]
}

func TrendSymbol(t Trend) string {
	switch t {
	case TrendUp:
		return "▲"
	case TrendDown:
		return "▼"
	default:
		return "–"
	}
}

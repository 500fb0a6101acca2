// Package tui is the terminal client of the dashboard. Each page of the
// session is drawn with lipgloss and driven by a bubbletea program.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
)

var (
	Primary     = lipgloss.Color("#3b82f6")
	Accent      = lipgloss.Color("#8b5cf6")
	Muted       = lipgloss.Color("#6b7280")
	Border      = lipgloss.Color("#374151")
	Success     = lipgloss.Color("#10b981")
	Destructive = lipgloss.Color("#ef4444")
)

// Styles groups the lipgloss styles used by every page
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Card     lipgloss.Style
	Tile     lipgloss.Style
	Headline lipgloss.Style
	Help     lipgloss.Style
	Bot      lipgloss.Style
	User     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Subtitle: lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(Muted),
		Error:    lipgloss.NewStyle().Foreground(Destructive),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(Accent),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1),
		Tile: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(Border).
			Padding(0, 1).
			Width(24),
		Headline: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(Accent).
			PaddingLeft(1),
		Help: lipgloss.NewStyle().Foreground(Muted).Italic(true),
		Bot:  lipgloss.NewStyle().Foreground(Primary),
		User: lipgloss.NewStyle().Foreground(Success),
	}
}

// categoryBadge renders the category name in its accent colour
func categoryBadge(category string) string {
	style := insights.CategoryStyle(category)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(style.Color)).Bold(true).Render("● " + category)
}

func trendStyle(t insights.Trend) lipgloss.Style {
	switch t {
	case insights.TrendUp:
		return lipgloss.NewStyle().Foreground(Success)
	case insights.TrendDown:
		return lipgloss.NewStyle().Foreground(Destructive)
	default:
		return lipgloss.NewStyle().Foreground(Muted)
	}
}

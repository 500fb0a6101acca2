package dashboard

import (
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/auth"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/detail"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/router"
)

// RoleOption is one choice on the role selection page
type RoleOption struct {
	ID    auth.Role `json:"id"`
	Title string    `json:"title"`
}

// View is everything needed to draw the current page
type View struct {
	SessionID string      `json:"session_id"`
	Page      router.Page `json:"page"`
	User      *auth.User  `json:"user"`
	RoleTitle string      `json:"role_title,omitempty"`

	// role-selection
	Roles   []RoleOption `json:"roles,omitempty"`
	Pending bool         `json:"pending,omitempty"`

	// dashboard and detail
	Dashboard *insights.View     `json:"dashboard,omitempty"`
	Headline  *insights.Headline `json:"headline,omitempty"`

	// detail
	Selection *detail.Selection  `json:"selection,omitempty"`
	Detail    *detail.CardDetail `json:"detail,omitempty"`
}

// View snapshots the session for rendering
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		SessionID: s.id,
		Page:      s.router.Page(),
		User:      s.auth.User(),
		Pending:   s.pending,
	}
	if v.User != nil && v.User.HasRole() {
		v.RoleTitle = v.User.Role.Title()
	}

	switch v.Page {
	case router.PageRoleSelection:
		for _, r := range auth.Roles {
			v.Roles = append(v.Roles, RoleOption{ID: r, Title: r.Title()})
		}
	case router.PageDashboard, router.PageDetail:
		dv := s.dashboardView()
		v.Dashboard = &dv
		if h, ok := dv.PrimaryHeadline(); ok {
			v.Headline = &h
		}
		v.Selection, v.Detail = s.router.Selection()
	}

	return v
}

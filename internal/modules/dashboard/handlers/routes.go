package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/auth"
)

// Routes groups the handlers mounted by RegisterRoutes
type Routes struct {
	Sessions *SessionHandler
	Insights *InsightHandler
	Activity *ActivityHandler // optional
	Health   *HealthHandler
	Session  fiber.Handler // SessionMiddleware
}

// RegisterRoutes mounts the dashboard API on app. Routes added to app after
// this call sit behind the session middleware.
func RegisterRoutes(app *fiber.App, r Routes) {
	app.Get("/health", r.Health.GetHealth)
	app.Post("/sessions", r.Sessions.CreateSession)
	app.Get("/share/qr", r.Insights.ShareQR)

	s := app.Group("", r.Session)

	s.Get("/view", r.Sessions.GetView)

	// Navigation
	s.Post("/navigate/register", r.Sessions.ShowRegister)
	s.Post("/navigate/login", r.Sessions.ShowLogin)
	s.Post("/navigate/back", r.Sessions.Back)

	// Auth
	s.Post("/auth/login", r.Sessions.Login)
	s.Post("/auth/register", r.Sessions.Register)
	s.Post("/auth/logout", r.Sessions.Logout)
	s.Post("/role", r.Sessions.SelectRole)

	// Dashboard
	s.Post("/headlines/:id/open", r.Sessions.OpenHeadline)
	s.Post("/cards/:id/open", r.Sessions.OpenCard)
	s.Get("/charts/:key", r.Insights.GetChart)
	s.Get("/export", r.Insights.Export)
	s.Post("/chat", r.Insights.Chat)

	if r.Activity != nil {
		s.Get("/activity", RequireRole(auth.RoleAdmin), r.Activity.GetActivity)
	}
}

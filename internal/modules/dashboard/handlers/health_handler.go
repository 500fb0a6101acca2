package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/dashboard"
)

type HealthHandler struct {
	registry *dashboard.Registry
	provider string
}

func NewHealthHandler(registry *dashboard.Registry, provider string) *HealthHandler {
	return &HealthHandler{registry: registry, provider: provider}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":        "ok",
		"service":       "clarity-api",
		"chat_provider": h.provider,
		"live_sessions": h.registry.Len(),
	})
}

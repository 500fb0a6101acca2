package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/audit"
)

type ActivityHandler struct {
	auditService *audit.Service
}

func NewActivityHandler(auditService *audit.Service) *ActivityHandler {
	return &ActivityHandler{auditService: auditService}
}

// GetActivity godoc
// @Summary Dashboard activity
// @Description Event counts per action and the most recent events (admin only)
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param period query string false "today, yesterday, this_week, this_month, last_30_days or all" default(all)
// @Param limit query int false "Number of recent events" default(20)
// @Success 200 {object} audit.ActivityReport
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /activity [get]
func (h *ActivityHandler) GetActivity(c *fiber.Ctx) error {
	period := c.Query("period", "all")
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 200 {
		limit = 20
	}

	report, err := h.auditService.Activity(c.UserContext(), period, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/auth"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/dashboard"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/router"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrValidation), errors.Is(err, auth.ErrUnknownRole),
		errors.Is(err, dashboard.ErrEmptyMessage):
		return fiber.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrRegistrationRejected),
		errors.Is(err, auth.ErrNoActiveUser):
		return fiber.StatusUnauthorized
	case errors.Is(err, dashboard.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, router.ErrInvalidTransition), errors.Is(err, dashboard.ErrSelectionPending):
		return fiber.StatusConflict
	case errors.Is(err, insights.ErrFetchFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("❌ Request failed")
		return c.Status(status).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

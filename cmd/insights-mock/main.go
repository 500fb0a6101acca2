package main

import (
	"flag"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/shared/utils"
)

func main() {
	var addr string
	var delay time.Duration

	flag.StringVar(&addr, "addr", "127.0.0.1:5000", "Listen address")
	flag.DurationVar(&delay, "delay", 0, "Artificial response delay")
	flag.Parse()

	utils.InitLogger()

	app := newApp(delay)

	log.Info().Str("addr", addr).Msg("🚀 Mock insights endpoint running")
	log.Info().Msgf("🔗 Try: http://%s/roi-insights/latest?role=admin", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("❌ Server stopped")
	}
}

func newApp(delay time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Clarity Insights Mock",
		DisableStartupMessage: true,
	})

	app.Get("/roi-insights/latest", func(c *fiber.Ctx) error {
		role := c.Query("role")
		payload, ok := payloads[role]
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "unknown role: " + role,
			})
		}

		if delay > 0 {
			time.Sleep(delay)
		}

		log.Info().Str("role", role).Msg("📨 Insights requested")
		return c.JSON(payload)
	})

	return app
}

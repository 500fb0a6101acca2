package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/audit"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/auth"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/chat"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/dashboard"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/export"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/llm"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/metrics"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/session"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/modules/dashboard/handlers"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/shared/config"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/shared/database"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/shared/utils"

	_ "github.com/MuhamadAgungGumelar/clarity-dashboard/cmd/api/docs"
)

// @title Clarity Insights Dashboard API
// @version 1.0
// @description Session-based API for the Clarity insights dashboard
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	utils.InitLogger()

	// Load config
	cfg := config.LoadConfig()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("🚀 Starting clarity-api")

	ctx := context.Background()

	// Init database
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL, !cfg.IsProduction())
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to connect to database")
	}
	defer db.Close()

	if !cfg.IsProduction() {
		if err := db.AutoMigrate(&session.Entry{}, &audit.Event{}); err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to migrate database")
		}
	}

	// Init session storage
	var kv session.KV
	var purger session.Purger
	switch cfg.SessionBackend {
	case "redis":
		redisKV, err := session.NewRedisKV(ctx, cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to init redis session store")
		}
		defer redisKV.Close()
		kv = redisKV
	case "memory":
		memKV := session.NewMemoryKV()
		kv, purger = memKV, memKV
	default:
		gormKV := session.NewGormKV(db.GORM)
		kv, purger = gormKV, gormKV
	}
	log.Info().Str("backend", cfg.SessionBackend).Msg("✅ Session store ready")

	// Init metrics
	observer, err := metrics.NewPrometheus("clarity", nil)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to register metrics")
	}

	// Init chat assistant (optional LLM provider)
	provider, err := llm.NewProvider(llm.ProviderConfig{
		Type:        llm.ProviderType(cfg.LLMProvider),
		OpenAIKey:   cfg.OpenAIKey,
		GroqKey:     cfg.GroqKey,
		DeepSeekKey: cfg.DeepSeekKey,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
	})
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Chat provider unavailable, using demo replies")
		provider = nil
	}
	providerName := "none"
	if provider != nil {
		providerName = provider.GetProviderName()
	}

	auditService := audit.NewService(db.GORM)

	registry, err := dashboard.NewRegistry(cfg.SessionCacheSize, kv, dashboard.Deps{
		Credentials: auth.DemoCredentials(),
		Fetcher:     insights.NewClient(cfg.InsightsEndpoint, cfg.InsightsTimeout),
		Fallback:    insights.StaticDataset(),
		Assistant:   chat.NewAssistant(provider),
		Recorder:    auditService,
		Observer:    observer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to init session registry")
	}

	// Redis expires sessions itself
	if purger != nil {
		janitor := dashboard.NewJanitor(purger, registry, cfg.SessionTTL)
		if err := janitor.Start("@every 10m"); err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to start session janitor")
		}
		defer janitor.Stop()
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Clarity Insights Dashboard API",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, handlers.Routes{
		Sessions: handlers.NewSessionHandler(registry, tokens, auditService),
		Insights: handlers.NewInsightHandler(export.NewService(), cfg.PublicURL),
		Activity: handlers.NewActivityHandler(auditService),
		Health:   handlers.NewHealthHandler(registry, providerName),
		Session:  handlers.SessionMiddleware(tokens, registry),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("🛑 Shutting down clarity-api...")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("❌ Shutdown failed")
		}
	}()

	log.Info().Msgf("✅ clarity-api running at :%s", cfg.Port)
	log.Info().Msgf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
	log.Info().Str("endpoint", cfg.InsightsEndpoint).Msg("🔗 Insights endpoint")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("❌ Server stopped")
	}
}

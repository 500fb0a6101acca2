package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/auth"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/chat"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/dashboard"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/insights"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/llm"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/session"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/shared/config"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/shared/database"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/shared/utils"
	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/tui"
)

func main() {
	var sessionID string
	var ephemeral bool
	var logPath string

	flag.StringVar(&sessionID, "session", "terminal", "Session id to resume")
	flag.BoolVar(&ephemeral, "ephemeral", false, "Keep session state in memory only")
	flag.StringVar(&logPath, "log", "clarity-tui.log", "Log file")
	flag.Parse()

	// The screen belongs to bubbletea; logs go to a file
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	utils.InitLoggerTo(logFile)

	cfg := config.LoadConfig()
	ctx := context.Background()

	var kv session.KV
	if ephemeral {
		kv = session.NewMemoryKV()
	} else {
		db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL, false)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to connect to database")
		}
		defer db.Close()
		if err := db.AutoMigrate(&session.Entry{}); err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to migrate database")
		}
		kv = session.NewGormKV(db.GORM)
	}

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

	s, err := dashboard.NewSession(ctx, session.NewStore(kv, sessionID), dashboard.Deps{
		Credentials: auth.DemoCredentials(),
		Fetcher:     insights.NewClient(cfg.InsightsEndpoint, cfg.InsightsTimeout),
		Fallback:    insights.StaticDataset(),
		Assistant:   chat.NewAssistant(provider),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load session")
	}

	log.Info().Str("session", sessionID).Bool("ephemeral", ephemeral).Msg("🚀 Starting terminal dashboard")

	p := tea.NewProgram(tui.New(ctx, s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

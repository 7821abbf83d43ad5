package main

import (
	"context"
	"log"
	"time"

	"swing-copilot/internal/bot"
	"swing-copilot/internal/cache"
	"swing-copilot/internal/config"
	"swing-copilot/internal/license"
	"swing-copilot/internal/provider"
	"swing-copilot/internal/service"
	"swing-copilot/internal/tui"
	"swing-copilot/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	connectRedisFunc     = cache.Connect
	initTracerFunc       = tracing.InitTracer
	newScoringClientFunc = provider.NewScoringClient
	newGateFunc          = license.NewGate
	startTelegramBotFunc = bot.StartTelegramBot
	runProgramFunc       = func(model tea.Model) error {
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	}
)

func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Init Redis-backed credential store
	redisClient, err := connectRedisFunc(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	store := cache.NewCredentialStore(redisClient)

	// Create scoring client and license gate
	scoringClient := newScoringClientFunc(tracer, cfg.ScoringAPIURL, time.Duration(cfg.RequestTimeoutSecs)*time.Second)
	gate := newGateFunc(tracer, scoringClient, store, cfg.ProbeSymbol)
	if err := gate.Load(ctx); err != nil {
		log.Printf("Warning: could not load stored license: %v", err)
	}

	analysisService := service.NewAnalysisService(tracer, gate, scoringClient)

	// Start Telegram bot (optional)
	if cfg.TelegramBotToken != "" {
		startTelegramBotFunc(cfg.TelegramBotToken, gate, analysisService)
	}

	svc := tui.Services{
		License:         gate,
		Analysis:        analysisService,
		Watchlist:       cfg.Watchlist,
		AuthReturnDelay: time.Duration(cfg.AuthReturnDelaySecs) * time.Second,
	}

	if err := runProgramFunc(tui.NewAppModel(svc)); err != nil {
		log.Fatalf("terminal error: %v", err)
	}
}

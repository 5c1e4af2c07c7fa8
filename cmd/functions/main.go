package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/castmate/functions/internal/completion"
	"github.com/castmate/functions/internal/config"
	"github.com/castmate/functions/internal/proxy"
	"github.com/castmate/functions/internal/server"
	"github.com/castmate/functions/internal/telemetry"
	"github.com/castmate/functions/internal/turn"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdown, err := telemetry.InitTracer("castmate-functions", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load(os.Getenv("CASTMATE_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// Fail fast on missing secrets; the handlers never re-read the
	// environment per request.
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	proxyHandler := proxy.NewHandler(cfg.Upstream.APIKey, cfg.Upstream.BaseURL, logger)
	turnHandler := turn.NewHandler(
		completion.NewClient(cfg.OpenAI.APIKey, completion.WithBaseURL(cfg.OpenAI.BaseURL)),
		cfg.OpenAI.Model,
		logger,
	)

	srv := server.New(cfg.Server.Port, logger)
	srv.Router.Post("/api/proxy", proxyHandler.ServeHTTP)
	srv.Router.Post("/api/turn", turnHandler.ServeHTTP)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

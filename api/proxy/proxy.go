package handler

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/castmate/functions/internal/config"
	"github.com/castmate/functions/internal/proxy"
	"github.com/castmate/functions/internal/server"
)

var defaultHandler http.Handler

// init runs once per cold start.
func init() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load("")
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		cfg = &config.Config{}
	}

	h := proxy.NewHandler(cfg.Upstream.APIKey, cfg.Upstream.BaseURL, logger)
	defaultHandler = server.Wrap(h, logger)
}

// Handler is the entry point for the serverless Go runtime.
func Handler(w http.ResponseWriter, r *http.Request) {
	defaultHandler.ServeHTTP(w, r)
}

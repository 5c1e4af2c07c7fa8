package main

import (
	"log/slog"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"github.com/castmate/functions/internal/awsgateway"
	"github.com/castmate/functions/internal/completion"
	"github.com/castmate/functions/internal/config"
	"github.com/castmate/functions/internal/server"
	"github.com/castmate/functions/internal/turn"
)

var handler awsgateway.HandlerFunc

// Cold start: build the handler once and reuse it across invocations.
func init() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load("")
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		cfg = &config.Config{}
	}

	h := turn.NewHandler(
		completion.NewClient(cfg.OpenAI.APIKey, completion.WithBaseURL(cfg.OpenAI.BaseURL)),
		cfg.OpenAI.Model,
		logger,
	)
	handler = awsgateway.Wrap(server.Wrap(h, logger))
}

func main() {
	awslambda.Start(handler)
}

package main

import (
	"log/slog"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"github.com/castmate/functions/internal/awsgateway"
	"github.com/castmate/functions/internal/config"
	"github.com/castmate/functions/internal/proxy"
	"github.com/castmate/functions/internal/server"
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

	// No fail-fast here: an unconfigured key must still surface as the
	// proxy's configuration-error envelope, not a crashed function.
	h := proxy.NewHandler(cfg.Upstream.APIKey, cfg.Upstream.BaseURL, logger)
	handler = awsgateway.Wrap(server.Wrap(h, logger))
}

func main() {
	awslambda.Start(handler)
}

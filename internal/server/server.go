// Package server provides the shared HTTP plumbing for both functions: the
// router used by the local server and the middleware chain applied to every
// entrypoint, serverless or not.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const requestTimeout = 30 * time.Second

type Server struct {
	Router *chi.Mux
	Port   int
	logger *slog.Logger
}

func New(port int, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	// Apply middleware in order
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware)
	r.Use(TimeoutMiddleware(requestTimeout))
	r.Use(middleware.Recoverer)

	// Wrap with OpenTelemetry HTTP instrumentation
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "castmate-functions")
	})

	return &Server{
		Router: r,
		Port:   port,
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting server", slog.Int("port", s.Port))
	return http.ListenAndServe(fmt.Sprintf(":%d", s.Port), s.Router)
}

// Wrap applies the standard middleware chain to a single handler. The
// serverless entrypoints use it so an isolated function behaves exactly like
// the same route mounted on the local router.
func Wrap(h http.Handler, logger *slog.Logger) http.Handler {
	wrapped := http.Handler(otelhttp.NewHandler(h, "castmate-functions"))
	wrapped = middleware.Recoverer(wrapped)
	wrapped = TimeoutMiddleware(requestTimeout)(wrapped)
	wrapped = CORSMiddleware(wrapped)
	wrapped = LoggingMiddleware(logger)(wrapped)
	return RequestIDMiddleware(wrapped)
}

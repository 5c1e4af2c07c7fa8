// Package proxy implements the generic API proxy function. It forwards a
// client-described call to the Castmate platform API, injecting the
// server-held credential and normalizing the response envelope.
package proxy

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/castmate/functions/internal/fault"
	"github.com/castmate/functions/internal/server"
)

// logBodyLimit caps how much of the upstream body lands in the log line.
const logBodyLimit = 200

// Request is the inbound envelope describing the call to forward.
type Request struct {
	Endpoint string `json:"endpoint" validate:"required"`
	Method   string `json:"method"`
	Body     any    `json:"body"`
}

type Handler struct {
	client   *Client
	apiKey   string
	logger   *slog.Logger
	validate *validator.Validate
}

// NewHandler builds the proxy handler. The credential is validated per
// request rather than at construction so an unconfigured deployment still
// answers with its configuration-error envelope instead of crashing.
func NewHandler(apiKey, baseURL string, logger *slog.Logger, opts ...ClientOption) *Handler {
	return &Handler{
		client:   NewClient(apiKey, baseURL, opts...),
		apiKey:   apiKey,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.apiKey == "" {
		server.RespondError(w, fault.Configuration("Missing API key configuration"))
		return
	}

	req, err := h.decode(r)
	if err != nil {
		server.RespondError(w, err)
		return
	}

	h.logger.Info("proxying request",
		slog.String("method", req.Method),
		slog.String("endpoint", req.Endpoint),
	)

	res, err := h.client.Forward(r.Context(), req.Method, req.Endpoint, req.Body)
	if err != nil {
		h.logger.Error("proxy request failed", slog.String("error", err.Error()))
		server.RespondError(w, err)
		return
	}

	h.logger.Info("upstream responded",
		slog.Int("status", res.StatusCode),
		slog.String("body", truncate(res.RawBody, logBodyLimit)),
	)

	// Status mirrors upstream verbatim, including 4xx/5xx.
	server.RespondJSON(w, res.StatusCode, res.Body)
}

// decode parses and validates the inbound envelope, defaulting the method to
// GET. A missing endpoint keeps its legacy message.
func (h *Handler) decode(r *http.Request) (*Request, error) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fault.Validation("invalid request body: " + err.Error())
	}

	if err := h.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, ve := range verrs {
				if ve.Field() == "Endpoint" {
					return nil, fault.Validation("Missing endpoint parameter")
				}
			}
		}
		return nil, fault.Validation("invalid request: " + err.Error())
	}

	if req.Method == "" {
		req.Method = http.MethodGet
	}
	req.Method = strings.ToUpper(req.Method)

	return &req, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

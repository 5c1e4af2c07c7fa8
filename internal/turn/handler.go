package turn

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/castmate/functions/internal/completion"
	"github.com/castmate/functions/internal/fault"
	"github.com/castmate/functions/internal/server"
)

const (
	temperature = 0.8
	maxTokens   = 200
)

type Handler struct {
	client   *completion.Client
	model    string
	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(client *completion.Client, model string, logger *slog.Logger) *Handler {
	return &Handler{
		client:   client,
		model:    model,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(r)
	if err != nil {
		server.RespondError(w, err)
		return
	}

	system := req.BuildSystemPrompt()
	user := req.BuildUserPrompt()

	h.logger.Debug("prompt built",
		slog.String("host", req.CurrentHost.Name),
		slog.Int("prompt_tokens", promptTokens(h.model, system, user)),
	)

	resp, err := h.client.CreateChatCompletion(r.Context(), &completion.ChatRequest{
		Model: h.model,
		Messages: []completion.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		h.logFailure(err)
		server.RespondError(w, err)
		return
	}

	if len(resp.Choices) == 0 {
		err := fault.Internal("completion response contained no choices")
		h.logFailure(err)
		server.RespondError(w, err)
		return
	}

	server.RespondJSON(w, http.StatusOK, Response{
		Text: strings.TrimSpace(resp.Choices[0].Message.Content),
	})
}

// logFailure emits the single failure log line, keeping the upstream status
// visible even though the caller always sees a 500.
func (h *Handler) logFailure(err error) {
	attrs := []any{slog.String("error", err.Error())}
	var f *fault.Fault
	if errors.As(err, &f) && f.UpstreamStatus != 0 {
		attrs = append(attrs, slog.Int("upstream_status", f.UpstreamStatus))
	}
	h.logger.Error("turn generation failed", attrs...)
}

// decode parses and validates the show state so malformed input surfaces as
// a clear 400 instead of an opaque fault inside prompt construction.
func (h *Handler) decode(r *http.Request) (*Request, error) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fault.Validation("invalid request body: " + err.Error())
	}

	if err := h.validate.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			ve := verrs[0]
			return nil, fault.Validation("invalid request: missing " + ve.Namespace())
		}
		return nil, fault.Validation("invalid request: " + err.Error())
	}

	return &req, nil
}

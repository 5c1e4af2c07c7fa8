package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL for the upstream API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client forwards calls to the Castmate platform API, attaching the
// server-held credential on every request.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new upstream API client.
func NewClient(apiKey, baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the normalized upstream response: the verbatim status code, the
// body parsed as JSON (or wrapped as {raw: text} when it is not JSON), and
// the raw text for logging.
type Result struct {
	StatusCode int
	Body       any
	RawBody    string
}

// Forward sends one request to <base>/api<endpoint>. The endpoint string is
// concatenated verbatim after the API path prefix; the body encoding is
// picked by the encoder predicates.
func (c *Client) Forward(ctx context.Context, method, endpoint string, body any) (*Result, error) {
	reader, contentType, err := encoderFor(endpoint, method).Encode(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("creating upstream request: %w", err)
	}

	httpReq.Header.Set("X-API-Key", c.apiKey)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading upstream response: %w", err)
	}

	// Best-effort parse: non-JSON bodies are passed through under "raw".
	text := string(respBody)
	var parsed any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		parsed = map[string]any{"raw": text}
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       parsed,
		RawBody:    text,
	}, nil
}

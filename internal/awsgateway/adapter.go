// Package awsgateway bridges API Gateway proxy events to a plain
// http.Handler, so each Lambda entrypoint reuses the same handler and
// middleware chain as the local server.
package awsgateway

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// HandlerFunc is the signature the Lambda runtime invokes.
type HandlerFunc func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Wrap converts an http.Handler into a Lambda proxy handler. Handler errors
// never propagate to the runtime; the handler itself writes the error
// envelope, so the response always reaches the caller with CORS headers.
func Wrap(h http.Handler) HandlerFunc {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := newRequest(ctx, event)
		if err != nil {
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       `{"error": "malformed event"}`,
			}, nil
		}

		rec := newRecorder()
		h.ServeHTTP(rec, req)

		return events.APIGatewayProxyResponse{
			StatusCode: rec.status,
			Headers:    rec.flatHeaders(),
			Body:       rec.body.String(),
		}, nil
	}
}

func newRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	u := url.URL{Path: event.Path}
	if len(event.QueryStringParameters) > 0 {
		q := url.Values{}
		for k, v := range event.QueryStringParameters {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, event.HTTPMethod, u.String(), strings.NewReader(event.Body))
	if err != nil {
		return nil, err
	}
	for k, v := range event.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// recorder captures the handler's response for translation back to an event.
type recorder struct {
	status int
	header http.Header
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{status: http.StatusOK, header: make(http.Header)}
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(code int) { r.status = code }

func (r *recorder) Write(b []byte) (int, error) { return r.body.Write(b) }

func (r *recorder) flatHeaders() map[string]string {
	out := make(map[string]string, len(r.header))
	for k, vals := range r.header {
		if len(vals) > 0 {
			out[k] = vals[0]
		}
	}
	return out
}

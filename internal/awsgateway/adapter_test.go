package awsgateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
)

func TestWrap_RoundTrip(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if r.URL.Path != "/api/proxy" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	})

	resp, err := Wrap(h)(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/api/proxy",
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"endpoint": "/x"}`,
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201", resp.StatusCode)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("headers = %v", resp.Headers)
	}

	var echoed map[string]string
	if err := json.Unmarshal([]byte(resp.Body), &echoed); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if echoed["endpoint"] != "/x" {
		t.Errorf("body = %v", echoed)
	}
}

func TestWrap_QueryParameters(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Query().Get("q")))
	})

	resp, err := Wrap(h)(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		Path:                  "/api/proxy",
		QueryStringParameters: map[string]string{"q": "hello"},
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if resp.Body != "hello" {
		t.Errorf("body = %q, want hello", resp.Body)
	}
}

func TestWrap_DefaultStatus(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	resp, err := Wrap(h)(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/",
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want implicit 200", resp.StatusCode)
	}
}

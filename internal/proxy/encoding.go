package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
)

// Encoder turns the inbound body value into an outbound request body. The
// upstream API has per-endpoint quirks, so encoders are a closed set selected
// by predicate; a new quirk becomes a new encoder, not a new conditional.
type Encoder interface {
	// Matches reports whether this encoder handles the endpoint/method pair.
	Matches(endpoint, method string) bool

	// Encode returns the body reader and the Content-Type header value.
	// A nil reader means the outbound request carries no body.
	Encode(body any) (io.Reader, string, error)
}

// encoders in match order; jsonEncoder matches everything and goes last.
var encoders = []Encoder{
	multipartEncoder{},
	jsonEncoder{},
}

func encoderFor(endpoint, method string) Encoder {
	for _, e := range encoders {
		if e.Matches(endpoint, method) {
			return e
		}
	}
	return jsonEncoder{}
}

// jsonEncoder is the default: JSON-serialized body, explicit JSON content type.
type jsonEncoder struct{}

func (jsonEncoder) Matches(string, string) bool { return true }

func (jsonEncoder) Encode(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "application/json", nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("encoding request body: %w", err)
	}
	return bytes.NewReader(b), "application/json", nil
}

// multipartEncoder handles POSTs to message endpoints, which the upstream
// only accepts as multipart form data. Each field value is stringified; null
// values are dropped to match the upstream's expectations.
type multipartEncoder struct{}

func (multipartEncoder) Matches(endpoint, method string) bool {
	return strings.Contains(endpoint, "/messages") && method == http.MethodPost
}

func (multipartEncoder) Encode(body any) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields, _ := body.(map[string]any)
	for _, key := range sortedKeys(fields) {
		val := fields[key]
		if val == nil {
			continue
		}
		if err := mw.WriteField(key, stringifyField(val)); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", key, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing form body: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// stringifyField renders a form value: strings pass through, everything else
// is rendered as its JSON text, so 1 becomes "1" and true becomes "true".
func stringifyField(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

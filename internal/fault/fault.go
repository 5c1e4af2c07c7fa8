// Package fault provides the canonical error types shared by both functions.
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes a fault so handlers can pick the right HTTP status.
type Kind string

const (
	// KindValidation indicates a malformed or incomplete inbound request.
	KindValidation Kind = "validation"

	// KindConfiguration indicates a missing or invalid server-side setting,
	// detected before any network call is made.
	KindConfiguration Kind = "configuration"

	// KindUpstream indicates a non-success response from a third-party API.
	KindUpstream Kind = "upstream"

	// KindInternal indicates any other failure inside the request cycle.
	KindInternal Kind = "internal"
)

// Fault is an error with a category and, for upstream faults, the original
// status code returned by the third-party API.
type Fault struct {
	Kind    Kind
	Message string

	// UpstreamStatus holds the status code the upstream API answered with.
	// Only set when Kind is KindUpstream. It is kept for logging; callers
	// of the turn generator always see a 500.
	UpstreamStatus int
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Kind == KindUpstream && f.UpstreamStatus != 0 {
		return fmt.Sprintf("%s (status %d): %s", f.Kind, f.UpstreamStatus, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// HTTPStatusCode maps the fault category to the status the caller receives.
func (f *Fault) HTTPStatusCode() int {
	switch f.Kind {
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Validation creates a validation fault.
func Validation(message string) *Fault {
	return &Fault{Kind: KindValidation, Message: message}
}

// Configuration creates a configuration fault.
func Configuration(message string) *Fault {
	return &Fault{Kind: KindConfiguration, Message: message}
}

// Upstream creates an upstream fault carrying the original status code.
func Upstream(status int, message string) *Fault {
	return &Fault{Kind: KindUpstream, UpstreamStatus: status, Message: message}
}

// Internal creates an internal fault.
func Internal(message string) *Fault {
	return &Fault{Kind: KindInternal, Message: message}
}

// StatusFor returns the HTTP status for any error: Fault values map through
// HTTPStatusCode, everything else is a 500.
func StatusFor(err error) int {
	var f *Fault
	if errors.As(err, &f) {
		return f.HTTPStatusCode()
	}
	return http.StatusInternalServerError
}

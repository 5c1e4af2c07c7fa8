package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/castmate/functions/internal/fault"
)

// RespondJSON writes v as the JSON response body with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// RespondError writes the uniform error envelope. The status comes from the
// fault category; the message falls back to a generic string when the error
// carries none. Fault values surface their bare message so contract envelopes
// stay byte-exact; the category prefix is for logs only.
func RespondError(w http.ResponseWriter, err error) {
	msg := "Unknown error"
	var f *fault.Fault
	switch {
	case errors.As(err, &f) && f.Message != "":
		msg = f.Message
	case err != nil && err.Error() != "":
		msg = err.Error()
	}
	RespondJSON(w, fault.StatusFor(err), map[string]string{"error": msg})
}

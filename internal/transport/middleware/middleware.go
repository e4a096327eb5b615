// Package middleware holds the HTTP middleware mounted in front of the
// refbook API: request ids, access logging, panic recovery, CORS and
// per-client rate limiting.
package middleware

import (
	"encoding/json"
	"net/http"
)

// Middleware is a function that wraps an http.Handler. It is assignable to
// the func type chi's Router.Use expects.
type Middleware func(http.Handler) http.Handler

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message}) //nolint:errcheck
}

// Package response writes the storefront's JSON wire format: plain objects
// or arrays on success, {"message": "..."} on failure.
package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Message sends {"message": msg} with the given status.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error is an alias of Message used on failure paths for readability.
func Error(w http.ResponseWriter, status int, msg string) {
	Message(w, status, msg)
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, msg string) {
	Error(w, http.StatusUnauthorized, msg)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter, msg string) {
	Error(w, http.StatusForbidden, msg)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// Internal sends a 500 with a generic message; details stay in the server log.
func Internal(w http.ResponseWriter, msg string) {
	Error(w, http.StatusInternalServerError, msg)
}

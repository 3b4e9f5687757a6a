package config

import (
	"encoding/json"
	"net/http"
)

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Log.WithError(err).Error("failed to encode response")
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Error writes the error envelope. cause is optional diagnostic detail.
func Error(w http.ResponseWriter, status int, message string, cause error) {
	body := ErrorResponse{Message: message}
	if cause != nil {
		body.Error = cause.Error()
	}
	JSON(w, status, body)
}

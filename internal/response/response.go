// Package response provides shared JSON response helpers for HTTP handlers.
//
// Success bodies carry {"success":true} plus caller-supplied fields so each
// endpoint can keep its own top-level keys (token, content, contents, ...).
// Error bodies are always {"success":false,"message":...}.
package response

import (
	"encoding/json"
	"net/http"
)

// Fields holds the endpoint-specific keys of a success body.
type Fields map[string]interface{}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// OK writes a 200 success body.
func OK(w http.ResponseWriter, fields Fields) {
	success(w, http.StatusOK, fields)
}

// Created writes a 201 success body.
func Created(w http.ResponseWriter, fields Fields) {
	success(w, http.StatusCreated, fields)
}

func success(w http.ResponseWriter, status int, fields Fields) {
	body := Fields{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	JSON(w, status, body)
}

// Error writes an error body with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// BadRequest writes a 400 response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 response.
func Forbidden(w http.ResponseWriter, message string) {
	Error(w, http.StatusForbidden, message)
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

// InternalError writes a 500 response with a generic message.
// Internal detail is never leaked to the caller.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "internal server error")
}

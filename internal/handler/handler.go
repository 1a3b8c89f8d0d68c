// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cadastra/cadastra/internal/handler/dto"
	"github.com/cadastra/cadastra/internal/service"
	"github.com/cadastra/cadastra/internal/store"
	"github.com/cadastra/cadastra/internal/validation"
)

// Handler carries shared behavior for the root and fallback routes.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is the root endpoint.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Cadastra API",
		"version": "1.0.0",
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response in the standard envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: dto.ErrorBody{Code: code, Message: message},
	})
}

// handleServiceError maps service and store errors to HTTP responses.
// Validation failures carry their field-path issues; credential failures
// stay deliberately generic.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, dto.ValidationErrorResponse{Errors: verr.Issues})
	case errors.Is(err, service.ErrPasswordsRequired):
		writeError(w, http.StatusBadRequest, "PASSWORDS_REQUIRED", "Current and new passwords are required")
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrCurrentPassword):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
	case errors.Is(err, service.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, store.ErrEmailExists):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cadastra/cadastra/internal/handler/dto"
	"github.com/cadastra/cadastra/internal/service"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "MISSING_CREDENTIALS", "Email and password are required")
		return
	}

	token, account, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("login", "account_id", account.ID)

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:   token,
		Account: account,
	})
}

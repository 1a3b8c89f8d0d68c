package dto

import "github.com/cadastra/cadastra/internal/model"

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries a freshly issued token and the account it
// belongs to.
type LoginResponse struct {
	Token   string             `json:"token"`
	Account *model.AccountView `json:"account"`
}

// ChangePasswordRequest is the body for PUT /api/v1/accounts/{id}/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

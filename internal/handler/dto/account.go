package dto

// CreateAccountRequest is the body for POST /api/v1/accounts.
type CreateAccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// UpdateAccountRequest is the body for PUT /api/v1/accounts/{id}.
// Password is decoded so its presence can be rejected explicitly;
// password changes go through the dedicated route.
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty"`
}

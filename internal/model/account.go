// Package model defines domain entities for the application.
package model

import "time"

// Role is the coarse permission tier assigned to an account.
type Role string

// Valid roles.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Account represents a system user. The password hash never leaves the
// store/service boundary; responses are built from AccountView instead.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountView is the public projection of an Account. It has no hash field
// at all, so handlers and the authorization layer cannot leak it.
type AccountView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// View projects the account into its public shape.
func (a *Account) View() *AccountView {
	return &AccountView{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

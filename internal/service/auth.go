// Package service implements the application workflows on top of the
// storage contract.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cadastra/cadastra/internal/auth"
	"github.com/cadastra/cadastra/internal/metrics"
	"github.com/cadastra/cadastra/internal/model"
	"github.com/cadastra/cadastra/internal/store"
)

// ErrInvalidCredentials covers both unknown email and wrong password so a
// login response never reveals whether the account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies credentials and mints access tokens.
type AuthService struct {
	accounts store.AccountStore
	tokens   *auth.TokenService
	metrics  metrics.Recorder
}

// NewAuthService creates an AuthService.
func NewAuthService(accounts store.AccountStore, tokens *auth.TokenService, recorder metrics.Recorder) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens, metrics: recorder}
}

// Login checks the credentials and returns a signed token together with the
// public view of the account.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.AccountView, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.metrics.IncLoginFailure()
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup account: %w", err)
	}

	if !auth.VerifyPassword(password, account.PasswordHash) {
		s.metrics.IncLoginFailure()
		return "", nil, ErrInvalidCredentials
	}

	view := account.View()
	token, err := s.tokens.Issue(view)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLoginSuccess()
	return token, view, nil
}

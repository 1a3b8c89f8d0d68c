package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cadastra/cadastra/internal/auth"
	"github.com/cadastra/cadastra/internal/metrics"
	"github.com/cadastra/cadastra/internal/model"
	"github.com/cadastra/cadastra/internal/store"
	"github.com/cadastra/cadastra/internal/validation"
)

// Password-change workflow errors, in precondition order.
var (
	ErrPasswordsRequired = errors.New("current and new passwords are required")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrForbidden         = errors.New("operation not allowed for this account")
	// ErrCurrentPassword stands in for every step-four failure, including
	// a missing target account, so the response never reveals existence.
	ErrCurrentPassword = errors.New("incorrect current password")
)

// AccountService manages system user accounts.
type AccountService struct {
	accounts store.AccountStore
	metrics  metrics.Recorder
}

// NewAccountService creates an AccountService.
func NewAccountService(accounts store.AccountStore, recorder metrics.Recorder) *AccountService {
	return &AccountService{accounts: accounts, metrics: recorder}
}

// CreateAccountInput carries the signup payload.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// CreateAccount validates the input, hashes the password and stores the
// account. The plaintext never travels past this call.
func (s *AccountService) CreateAccount(ctx context.Context, in CreateAccountInput) (*model.AccountView, error) {
	if err := validation.Account(validation.AccountInput(in)); err != nil {
		s.metrics.IncValidationFailure("account")
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := model.Role(in.Role)
	if role == "" {
		role = model.RoleUser
	}

	return s.accounts.Create(ctx, &model.Account{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	})
}

// GetAccount returns the public view of one account.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*model.AccountView, error) {
	return s.accounts.GetByID(ctx, id)
}

// ListAccounts returns the public views of all accounts.
func (s *AccountService) ListAccounts(ctx context.Context) ([]*model.AccountView, error) {
	return s.accounts.List(ctx)
}

// UpdateAccountInput carries a partial account update. A Password field in
// the payload is rejected; password changes go through ChangePassword.
type UpdateAccountInput struct {
	Name     *string
	Email    *string
	Role     *string
	Password *string
}

// UpdateAccount applies a partial update to an account.
func (s *AccountService) UpdateAccount(ctx context.Context, id string, in UpdateAccountInput) (*model.AccountView, error) {
	if err := validation.AccountPatch(in.Name, in.Email, in.Role, in.Password); err != nil {
		s.metrics.IncValidationFailure("account")
		return nil, err
	}

	patch := store.AccountPatch{Name: in.Name, Email: in.Email}
	if in.Role != nil {
		role := model.Role(*in.Role)
		patch.Role = &role
	}
	return s.accounts.Update(ctx, id, patch)
}

// DeleteAccount removes an account.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	return s.accounts.Delete(ctx, id)
}

// ChangePassword re-authenticates and replaces the target account's hash.
// Preconditions are checked in order and the first failure wins:
//  1. both passwords supplied
//  2. caller authenticated
//  3. caller owns the target account, or is admin
//  4. current password matches the target account's stored hash
func (s *AccountService) ChangePassword(ctx context.Context, claims *auth.Claims, targetID, current, next string) error {
	if current == "" || next == "" {
		return ErrPasswordsRequired
	}
	if claims == nil {
		return ErrNotAuthenticated
	}
	if claims.ID != targetID && claims.Role != model.RoleAdmin {
		return ErrForbidden
	}

	account, err := s.accounts.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCurrentPassword
		}
		return fmt.Errorf("lookup account: %w", err)
	}
	if !auth.VerifyPassword(current, account.PasswordHash) {
		return ErrCurrentPassword
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePasswordHash(ctx, targetID, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCurrentPassword
		}
		return fmt.Errorf("update password hash: %w", err)
	}

	s.metrics.IncPasswordChanged()
	return nil
}

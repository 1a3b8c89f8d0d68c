// Package store defines the storage contract shared by the memory and
// postgres backends. Handlers and services depend only on these interfaces;
// the backend is selected once at startup.
package store

import (
	"context"
	"errors"

	"github.com/cadastra/cadastra/internal/model"
)

// Sentinel errors. Lookups for missing records return ErrNotFound rather
// than failing loose.
var (
	ErrNotFound    = errors.New("record not found")
	ErrEmailExists = errors.New("email already exists")
)

// AccountPatch carries a partial account update. Nil fields are untouched.
type AccountPatch struct {
	Name  *string
	Email *string
	Role  *model.Role
}

// PartyPatch carries a partial party update. Nil fields are untouched.
// Address replaces the whole embedded value when present.
type PartyPatch struct {
	Kind     *model.PartyKind
	Name     *string
	Document *string
	Email    *string
	Phone    *string
	Address  *model.Address
}

// PartyFilter narrows a party listing. Query matches name, document and
// email case-insensitively.
type PartyFilter struct {
	Kind  model.PartyKind
	Query string
}

// AccountStore persists accounts. The credential-side methods (FindByEmail,
// FindByID, UpdatePasswordHash) are the only ones that expose or touch the
// password hash; everything else returns the public view.
type AccountStore interface {
	Create(ctx context.Context, account *model.Account) (*model.AccountView, error)
	GetByID(ctx context.Context, id string) (*model.AccountView, error)
	List(ctx context.Context) ([]*model.AccountView, error)
	Update(ctx context.Context, id string, patch AccountPatch) (*model.AccountView, error)
	Delete(ctx context.Context, id string) error

	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByID(ctx context.Context, id string) (*model.Account, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

// PartyStore persists registered parties.
type PartyStore interface {
	Create(ctx context.Context, party *model.Party) (*model.Party, error)
	GetByID(ctx context.Context, id string) (*model.Party, error)
	List(ctx context.Context, filter PartyFilter) ([]*model.Party, error)
	Update(ctx context.Context, id string, patch PartyPatch) (*model.Party, error)
	Delete(ctx context.Context, id string) error
}

// Store bundles both entity stores behind one handle.
type Store interface {
	Accounts() AccountStore
	Parties() PartyStore
	Ping(ctx context.Context) error
	Close()
}

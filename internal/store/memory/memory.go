// Package memory provides an in-process store implementation backed by
// mutex-guarded maps. Used for development and tests; the postgres backend
// is the durable counterpart behind the same interface.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cadastra/cadastra/internal/model"
	"github.com/cadastra/cadastra/internal/store"
)

// Store is an in-memory store.Store implementation.
type Store struct {
	accounts *accountStore
	parties  *partyStore
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		accounts: &accountStore{byID: make(map[string]model.Account)},
		parties:  &partyStore{byID: make(map[string]model.Party)},
	}
}

// Accounts returns the account store.
func (s *Store) Accounts() store.AccountStore { return s.accounts }

// Parties returns the party store.
func (s *Store) Parties() store.PartyStore { return s.parties }

// Ping always succeeds for the in-memory backend.
func (s *Store) Ping(ctx context.Context) error { return nil }

// Close is a no-op for the in-memory backend.
func (s *Store) Close() {}

type accountStore struct {
	mu   sync.RWMutex
	byID map[string]model.Account
}

func (s *accountStore) Create(ctx context.Context, account *model.Account) (*model.AccountView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byID {
		if existing.Email == account.Email {
			return nil, store.ErrEmailExists
		}
	}

	stored := *account
	stored.ID = ulid.Make().String()
	stored.CreatedAt = time.Now().UTC()
	s.byID[stored.ID] = stored
	return stored.View(), nil
}

func (s *accountStore) GetByID(ctx context.Context, id string) (*model.AccountView, error) {
	account, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return account.View(), nil
}

func (s *accountStore) List(ctx context.Context) ([]*model.AccountView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]*model.AccountView, 0, len(s.byID))
	for _, account := range s.byID {
		views = append(views, account.View())
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

func (s *accountStore) Update(ctx context.Context, id string, patch store.AccountPatch) (*model.AccountView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Email != nil && *patch.Email != account.Email {
		for _, existing := range s.byID {
			if existing.Email == *patch.Email {
				return nil, store.ErrEmailExists
			}
		}
		account.Email = *patch.Email
	}
	if patch.Name != nil {
		account.Name = *patch.Name
	}
	if patch.Role != nil {
		account.Role = *patch.Role
	}
	s.byID[id] = account
	return account.View(), nil
}

func (s *accountStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *accountStore) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.byID {
		if account.Email == email {
			copied := account
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *accountStore) FindByID(ctx context.Context, id string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := account
	return &copied, nil
}

func (s *accountStore) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	account.PasswordHash = hash
	s.byID[id] = account
	return nil
}

type partyStore struct {
	mu   sync.RWMutex
	byID map[string]model.Party
}

// listLimit caps party listings, mirroring the durable backend.
const listLimit = 100

func (s *partyStore) Create(ctx context.Context, party *model.Party) (*model.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *party
	stored.ID = ulid.Make().String()
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = nil
	s.byID[stored.ID] = stored

	copied := stored
	return &copied, nil
}

func (s *partyStore) GetByID(ctx context.Context, id string) (*model.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	party, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := party
	return &copied, nil
}

func (s *partyStore) List(ctx context.Context, filter store.PartyFilter) ([]*model.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	parties := make([]*model.Party, 0, len(s.byID))
	for _, party := range s.byID {
		if !matches(party, filter) {
			continue
		}
		copied := party
		parties = append(parties, &copied)
	}
	sort.Slice(parties, func(i, j int) bool { return parties[i].ID < parties[j].ID })
	if len(parties) > listLimit {
		parties = parties[:listLimit]
	}
	return parties, nil
}

func matches(party model.Party, filter store.PartyFilter) bool {
	if filter.Kind != "" && party.Kind != filter.Kind {
		return false
	}
	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		if !strings.Contains(strings.ToLower(party.Name), q) &&
			!strings.Contains(strings.ToLower(party.Document), q) &&
			!strings.Contains(strings.ToLower(party.Email), q) {
			return false
		}
	}
	return true
}

func (s *partyStore) Update(ctx context.Context, id string, patch store.PartyPatch) (*model.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	party, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if patch.Kind != nil {
		party.Kind = *patch.Kind
	}
	if patch.Name != nil {
		party.Name = *patch.Name
	}
	if patch.Document != nil {
		party.Document = *patch.Document
	}
	if patch.Email != nil {
		party.Email = *patch.Email
	}
	if patch.Phone != nil {
		party.Phone = *patch.Phone
	}
	if patch.Address != nil {
		party.Address = *patch.Address
	}
	now := time.Now().UTC()
	party.UpdatedAt = &now
	s.byID[id] = party

	copied := party
	return &copied, nil
}

func (s *partyStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

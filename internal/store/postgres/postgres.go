// Package postgres provides the durable store implementation backed by
// PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cadastra/cadastra/internal/store"
)

// Store is a PostgreSQL-backed store.Store implementation.
type Store struct {
	pool     *pgxpool.Pool
	accounts *accountStore
	parties  *partyStore
}

// New creates a Store with a connection pool and verifies connectivity.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		pool:     pool,
		accounts: &accountStore{pool: pool},
		parties:  &partyStore{pool: pool},
	}, nil
}

// NewWithPool wraps an existing pool; used by tests.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:     pool,
		accounts: &accountStore{pool: pool},
		parties:  &partyStore{pool: pool},
	}
}

// Accounts returns the account store.
func (s *Store) Accounts() store.AccountStore { return s.accounts }

// Parties returns the party store.
func (s *Store) Parties() store.PartyStore { return s.parties }

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer adding methods to the stores.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// isUniqueViolation checks for a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

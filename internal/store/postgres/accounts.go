package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/cadastra/cadastra/internal/model"
	"github.com/cadastra/cadastra/internal/store"
)

type accountStore struct {
	pool *pgxpool.Pool
}

const accountViewColumns = "id, name, email, role, created_at"

func scanAccountView(row pgx.Row) (*model.AccountView, error) {
	var view model.AccountView
	err := row.Scan(&view.ID, &view.Name, &view.Email, &view.Role, &view.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &view, nil
}

func (s *accountStore) Create(ctx context.Context, account *model.Account) (*model.AccountView, error) {
	query := `
		INSERT INTO accounts (id, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + accountViewColumns

	view, err := scanAccountView(s.pool.QueryRow(ctx, query,
		ulid.Make().String(),
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Role,
		time.Now().UTC(),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return view, nil
}

func (s *accountStore) GetByID(ctx context.Context, id string) (*model.AccountView, error) {
	query := `SELECT ` + accountViewColumns + ` FROM accounts WHERE id = $1`

	view, err := scanAccountView(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return view, nil
}

func (s *accountStore) List(ctx context.Context) ([]*model.AccountView, error) {
	query := `SELECT ` + accountViewColumns + ` FROM accounts ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var views []*model.AccountView
	for rows.Next() {
		var view model.AccountView
		if err := rows.Scan(&view.ID, &view.Name, &view.Email, &view.Role, &view.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		views = append(views, &view)
	}
	return views, rows.Err()
}

func (s *accountStore) Update(ctx context.Context, id string, patch store.AccountPatch) (*model.AccountView, error) {
	query := `
		UPDATE accounts
		SET name  = COALESCE($2, name),
		    email = COALESCE($3, email),
		    role  = COALESCE($4, role)
		WHERE id = $1
		RETURNING ` + accountViewColumns

	view, err := scanAccountView(s.pool.QueryRow(ctx, query, id, patch.Name, patch.Email, patch.Role))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if isUniqueViolation(err) {
			return nil, store.ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return view, nil
}

func (s *accountStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var account model.Account
	err := row.Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash, &account.Role, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (s *accountStore) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM accounts
		WHERE email = $1
	`

	account, err := scanAccount(s.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account by email: %w", err)
	}
	return account, nil
}

func (s *accountStore) FindByID(ctx context.Context, id string) (*model.Account, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM accounts
		WHERE id = $1
	`

	account, err := scanAccount(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account by id: %w", err)
	}
	return account, nil
}

func (s *accountStore) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE accounts SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

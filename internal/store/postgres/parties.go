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

type partyStore struct {
	pool *pgxpool.Pool
}

// listLimit caps party listings.
const listLimit = 100

const partyColumns = `id, kind, name, document, email, phone,
	postal_code, street, number, complement, district, city, state,
	created_at, updated_at`

func scanParty(row pgx.Row) (*model.Party, error) {
	var p model.Party
	err := row.Scan(
		&p.ID, &p.Kind, &p.Name, &p.Document, &p.Email, &p.Phone,
		&p.Address.PostalCode, &p.Address.Street, &p.Address.Number,
		&p.Address.Complement, &p.Address.District, &p.Address.City,
		&p.Address.State, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *partyStore) Create(ctx context.Context, party *model.Party) (*model.Party, error) {
	query := `
		INSERT INTO parties (id, kind, name, document, email, phone,
			postal_code, street, number, complement, district, city, state,
			created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + partyColumns

	created, err := scanParty(s.pool.QueryRow(ctx, query,
		ulid.Make().String(),
		party.Kind,
		party.Name,
		party.Document,
		party.Email,
		party.Phone,
		party.Address.PostalCode,
		party.Address.Street,
		party.Address.Number,
		party.Address.Complement,
		party.Address.District,
		party.Address.City,
		party.Address.State,
		time.Now().UTC(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create party: %w", err)
	}
	return created, nil
}

func (s *partyStore) GetByID(ctx context.Context, id string) (*model.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE id = $1`

	party, err := scanParty(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get party: %w", err)
	}
	return party, nil
}

func (s *partyStore) List(ctx context.Context, filter store.PartyFilter) ([]*model.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties
		WHERE ($1 = '' OR kind = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%'
		               OR document ILIKE '%' || $2 || '%'
		               OR email ILIKE '%' || $2 || '%')
		ORDER BY created_at
		LIMIT $3`

	rows, err := s.pool.Query(ctx, query, string(filter.Kind), filter.Query, listLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	var parties []*model.Party
	for rows.Next() {
		var p model.Party
		if err := rows.Scan(
			&p.ID, &p.Kind, &p.Name, &p.Document, &p.Email, &p.Phone,
			&p.Address.PostalCode, &p.Address.Street, &p.Address.Number,
			&p.Address.Complement, &p.Address.District, &p.Address.City,
			&p.Address.State, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, &p)
	}
	return parties, rows.Err()
}

func (s *partyStore) Update(ctx context.Context, id string, patch store.PartyPatch) (*model.Party, error) {
	var (
		postalCode, street, number, complement, district, city, state *string
	)
	if patch.Address != nil {
		a := patch.Address
		postalCode, street, number = &a.PostalCode, &a.Street, &a.Number
		complement, district, city, state = &a.Complement, &a.District, &a.City, &a.State
	}

	query := `
		UPDATE parties
		SET kind        = COALESCE($2, kind),
		    name        = COALESCE($3, name),
		    document    = COALESCE($4, document),
		    email       = COALESCE($5, email),
		    phone       = COALESCE($6, phone),
		    postal_code = COALESCE($7, postal_code),
		    street      = COALESCE($8, street),
		    number      = COALESCE($9, number),
		    complement  = COALESCE($10, complement),
		    district    = COALESCE($11, district),
		    city        = COALESCE($12, city),
		    state       = COALESCE($13, state),
		    updated_at  = $14
		WHERE id = $1
		RETURNING ` + partyColumns

	party, err := scanParty(s.pool.QueryRow(ctx, query,
		id, patch.Kind, patch.Name, patch.Document, patch.Email, patch.Phone,
		postalCode, street, number, complement, district, city, state,
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update party: %w", err)
	}
	return party, nil
}

func (s *partyStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete party: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

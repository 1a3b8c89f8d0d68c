package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cadastra/cadastra/internal/model"
	"github.com/cadastra/cadastra/internal/store"
	"github.com/cadastra/cadastra/internal/testutil"
)

// setupStore connects to TEST_DATABASE_URL and resets both schemas.
// Skips when the variable is not set.
func setupStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	databaseURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	unlock, err := testutil.AcquireDBLock(ctx, pool)
	if err != nil {
		t.Fatalf("acquire lock: %v", err)
	}
	t.Cleanup(func() { _ = unlock() })

	for _, name := range []string{"000001_accounts", "000002_parties"} {
		if err := testutil.ResetSchema(ctx, pool, name); err != nil {
			t.Fatalf("reset schema %s: %v", name, err)
		}
	}

	return NewWithPool(pool)
}

func TestAccountStore_Integration(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	accounts := st.Accounts()

	view, err := accounts.Create(ctx, testutil.NewTestAccount(t, "it@co.test"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if view.ID == "" {
		t.Error("store should assign an ID")
	}

	// Unique email enforced by the database.
	if _, err := accounts.Create(ctx, testutil.NewTestAccount(t, "it@co.test")); !errors.Is(err, store.ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}

	full, err := accounts.FindByEmail(ctx, "it@co.test")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if full.PasswordHash == "" {
		t.Error("credential lookup should carry the hash")
	}

	if err := accounts.UpdatePasswordHash(ctx, view.ID, "rotated"); err != nil {
		t.Fatalf("UpdatePasswordHash failed: %v", err)
	}
	rotated, err := accounts.FindByID(ctx, view.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if rotated.PasswordHash != "rotated" {
		t.Errorf("hash = %q, want rotated", rotated.PasswordHash)
	}

	name := "Renamed"
	updated, err := accounts.Update(ctx, view.ID, store.AccountPatch{Name: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", updated.Name)
	}

	if err := accounts.Delete(ctx, view.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := accounts.GetByID(ctx, view.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPartyStore_Integration(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	parties := st.Parties()

	pf := testutil.NewTestParty(t, model.KindIndividual)
	pf.Name = "Maria Oliveira"
	created, err := parties.Create(ctx, pf)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.UpdatedAt != nil {
		t.Error("new party should have nil updated_at")
	}

	pj := testutil.NewTestParty(t, model.KindOrganization)
	pj.Name = "Acme Ltda"
	if _, err := parties.Create(ctx, pj); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	byKind, err := parties.List(ctx, store.PartyFilter{Kind: model.KindOrganization})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byKind) != 1 || byKind[0].Name != "Acme Ltda" {
		t.Errorf("kind filter returned %+v", byKind)
	}

	byQuery, err := parties.List(ctx, store.PartyFilter{Query: "MARIA"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byQuery) != 1 || byQuery[0].ID != created.ID {
		t.Errorf("query filter returned %+v", byQuery)
	}

	doc := "98765432109"
	updated, err := parties.Update(ctx, created.ID, store.PartyPatch{Document: &doc})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Document != doc {
		t.Errorf("document = %q, want %q", updated.Document, doc)
	}
	if updated.UpdatedAt == nil {
		t.Error("update should set updated_at")
	}

	if err := parties.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := parties.Delete(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

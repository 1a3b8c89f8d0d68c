package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/cadastra/cadastra/internal/model"
)

func testAccount() *model.AccountView {
	return &model.AccountView{
		ID:        "acc-1",
		Name:      "Admin",
		Email:     "admin@co.test",
		Role:      model.RoleAdmin,
		CreatedAt: time.Now(),
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.ID != "acc-1" {
		t.Errorf("claims.ID = %q, want acc-1", claims.ID)
	}
	if claims.Email != "admin@co.test" {
		t.Errorf("claims.Email = %q, want admin@co.test", claims.Email)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("claims.Role = %q, want admin", claims.Role)
	}
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService("secret-a", time.Hour).Issue(testAccount())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = NewTokenService("secret-b", time.Hour).Verify(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)
	for _, tok := range []string{"", "abc", "a.b.c"} {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Verify(%q): expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

func TestParseBearer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"missing", "", "", ErrMissingHeader},
		{"wrong scheme", "Token abc", "", ErrWrongScheme},
		{"lowercase scheme", "bearer abc", "", ErrWrongScheme},
		{"scheme only", "Bearer", "", ErrWrongScheme},
		{"empty token", "Bearer ", "", ErrWrongScheme},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseBearer(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	admin := &Claims{ID: "1", Role: model.RoleAdmin}
	user := &Claims{ID: "2", Role: model.RoleUser}

	tests := []struct {
		name     string
		claims   *Claims
		required []model.Role
		want     Decision
	}{
		{"no claims", nil, []model.Role{model.RoleUser}, DecisionUnauthenticated},
		{"user needs admin", user, []model.Role{model.RoleAdmin}, DecisionForbidden},
		{"user needs user", user, []model.Role{model.RoleUser}, DecisionAllow},
		{"admin needs admin", admin, []model.Role{model.RoleAdmin}, DecisionAllow},
		{"either role", user, []model.Role{model.RoleAdmin, model.RoleUser}, DecisionAllow},
		{"any authenticated", user, nil, DecisionAllow},
		{"nil claims no roles", nil, nil, DecisionUnauthenticated},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Authorize(tt.claims, tt.required...); got != tt.want {
				t.Errorf("Authorize = %v, want %v", got, tt.want)
			}
		})
	}
}

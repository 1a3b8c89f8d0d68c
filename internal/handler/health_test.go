package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeChecker struct {
	err error
}

func (f fakeChecker) Ping(ctx context.Context) error { return f.err }

func TestHealthz_AlwaysOK(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestReadyz_HealthyDependencies(t *testing.T) {
	h := NewHealthHandler(fakeChecker{}, fakeChecker{})

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Checks["store"] != "ok" || resp.Checks["redis"] != "ok" {
		t.Errorf("checks = %+v", resp.Checks)
	}
}

func TestReadyz_FailingStoreIs503(t *testing.T) {
	h := NewHealthHandler(fakeChecker{err: errors.New("down")}, nil)

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("status field = %q", resp.Status)
	}
	if resp.Checks["redis"] != "not configured" {
		t.Errorf("redis check = %q", resp.Checks["redis"])
	}
}

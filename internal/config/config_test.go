package config

import (
	"os"
	"testing"
)

// clearEnv unsets every variable Load reads so tests start clean.
// t.Setenv registers the restore; Unsetenv then removes the variable
// entirely so envDefault values apply.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "APP_PORT", "STORE_BACKEND", "DATABASE_URL", "REDIS_URL",
		"JWT_SECRET", "JWT_EXPIRES", "LOG_LEVEL", "LOG_FORMAT",
		"READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT",
		"MAX_REQUEST_BODY_SIZE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("AppEnv = %q, want development", cfg.AppEnv)
	}
	if cfg.AppPort != 8080 {
		t.Errorf("AppPort = %d, want 8080", cfg.AppPort)
	}
	if cfg.StoreBackend != StoreMemory {
		t.Errorf("StoreBackend = %q, want memory", cfg.StoreBackend)
	}
	if !cfg.UsingDevSecret() {
		t.Error("expected dev secret fallback when JWT_SECRET is unset")
	}
	if cfg.SigningSecret() == "" {
		t.Error("signing secret should never be empty")
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("production without JWT_SECRET should fail startup")
	}

	t.Setenv("JWT_SECRET", "super-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SigningSecret() != "super-secret" {
		t.Errorf("SigningSecret = %q, want configured value", cfg.SigningSecret())
	}
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("postgres backend without DATABASE_URL should fail")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/cadastra")
	if _, err := Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "mongodb")

	if _, err := Load(); err == nil {
		t.Fatal("unknown backend should fail")
	}
}

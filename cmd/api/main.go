// Package main is the entrypoint for the Cadastra API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cadastra/cadastra/internal/auth"
	"github.com/cadastra/cadastra/internal/cache"
	"github.com/cadastra/cadastra/internal/config"
	"github.com/cadastra/cadastra/internal/handler"
	"github.com/cadastra/cadastra/internal/metrics"
	"github.com/cadastra/cadastra/internal/middleware"
	"github.com/cadastra/cadastra/internal/server"
	"github.com/cadastra/cadastra/internal/service"
	"github.com/cadastra/cadastra/internal/store"
	"github.com/cadastra/cadastra/internal/store/memory"
	"github.com/cadastra/cadastra/internal/store/postgres"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error(
			"failed to open store",
			slog.String("backend", cfg.StoreBackend),
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer st.Close()
	logger.Info("store ready", "backend", cfg.StoreBackend)

	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		defer cacheClient.Close()
		logger.Info("connected to Redis")
	} else {
		logger.Info("cache disabled, no REDIS_URL configured")
	}

	if cfg.UsingDevSecret() {
		logger.Warn("JWT_SECRET not set, using development fallback secret")
	}
	tokens := auth.NewTokenService(cfg.SigningSecret(), auth.ParseExpiry(cfg.JWTExpires))

	metricsRecorder := metrics.NewInMemory()
	authService := service.NewAuthService(st.Accounts(), tokens, metricsRecorder)
	accountService := service.NewAccountService(st.Accounts(), metricsRecorder)
	partyService := service.NewPartyService(st.Parties(), cacheClient, metricsRecorder, logger)

	h := handler.New()
	healthHandler := newHealthHandler(st, cacheClient)
	authHandler := handler.NewAuthHandler(authService, logger)
	accountHandler := handler.NewAccountHandler(accountService, logger)
	partyHandler := handler.NewPartyHandler(partyService, logger)

	r := setupRouter(routerDeps{
		base:     h,
		health:   healthHandler,
		auth:     authHandler,
		accounts: accountHandler,
		parties:  partyHandler,
		tokens:   tokens,
		metrics:  metricsRecorder,
		cfg:      cfg,
		logger:   logger,
	})

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"token_ttl", tokens.TTL().String(),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// openStore selects the storage backend configured via STORE_BACKEND.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.StoreBackend == config.StorePostgres {
		return postgres.New(ctx, cfg.DatabaseURL)
	}
	return memory.New(), nil
}

// newHealthHandler passes a typed nil-safe cache checker to the health
// handler.
func newHealthHandler(st store.Store, cacheClient *cache.Cache) *handler.HealthHandler {
	if cacheClient == nil {
		return handler.NewHealthHandler(st, nil)
	}
	return handler.NewHealthHandler(st, cacheClient)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	base     *handler.Handler
	health   *handler.HealthHandler
	auth     *handler.AuthHandler
	accounts *handler.AccountHandler
	parties  *handler.PartyHandler
	tokens   *auth.TokenService
	metrics  metrics.Recorder
	cfg      *config.Config
	logger   *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: deps.cfg.IsDevelopment()}))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	// Health endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	// Root info endpoint
	r.Get("/", deps.base.Hello)

	// Login is the only open business route.
	r.Post("/auth/login", deps.auth.Login)

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger:  deps.logger,
		Tokens:  deps.tokens,
		Metrics: deps.metrics,
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Open signup; the first account of a fresh deployment is
		// created here.
		r.Post("/accounts", deps.accounts.Create)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			// Account management; listing and deletion are admin-only.
			// Updates are open to any authenticated account and reject
			// password fields; the dedicated password route enforces
			// owner-or-admin in the service.
			r.With(middleware.RequireAdmin()).Get("/accounts", deps.accounts.List)
			r.Get("/accounts/{id}", deps.accounts.Get)
			r.Put("/accounts/{id}", deps.accounts.Update)
			r.Put("/accounts/{id}/password", deps.accounts.ChangePassword)
			r.With(middleware.RequireAdmin()).Delete("/accounts/{id}", deps.accounts.Delete)

			// Party records; any authenticated account may read and
			// write, deletion is admin-only.
			r.Route("/parties", func(r chi.Router) {
				r.Get("/", deps.parties.List)
				r.Post("/", deps.parties.Create)
				r.Get("/{id}", deps.parties.Get)
				r.Put("/{id}", deps.parties.Update)
				r.With(middleware.RequireAdmin()).Delete("/{id}", deps.parties.Delete)
			})
		})
	})

	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}

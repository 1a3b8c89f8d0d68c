package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cadastra/cadastra/internal/auth"
	"github.com/cadastra/cadastra/internal/metrics"
)

// AuthConfig holds dependencies for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Tokens  *auth.TokenService
	Metrics metrics.Recorder
}

// Auth returns a middleware that authenticates requests with a bearer
// JWT. The token must arrive as "Authorization: Bearer <token>"; any
// other scheme is rejected. Verified claims are injected into the
// request context for downstream handlers.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ParseBearer(r.Header.Get("Authorization"))
			if err != nil {
				rejectToken(w, r, cfg, "malformed_header", err)
				return
			}

			claims, err := cfg.Tokens.Verify(token)
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "expired_token"
				}
				rejectToken(w, r, cfg, reason, err)
				return
			}

			ctx := auth.ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectToken(w http.ResponseWriter, r *http.Request, cfg AuthConfig, reason string, err error) {
	cfg.Metrics.IncTokenRejected()
	cfg.Logger.Warn("authentication failed",
		slog.String("reason", reason),
		slog.String("error", err.Error()),
		slog.String("ip", r.RemoteAddr),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)
	// Same message for all rejection reasons to prevent probing.
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or missing token")
}

// writeError writes a JSON error response in the envelope used across
// the API.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"error":{"code":%q,"message":%q}}`, code, message)
}

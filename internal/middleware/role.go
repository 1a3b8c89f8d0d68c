package middleware

import (
	"net/http"

	"github.com/cadastra/cadastra/internal/auth"
	"github.com/cadastra/cadastra/internal/model"
)

// RequireRole returns middleware that enforces role requirements.
// Must be applied after Auth middleware. With multiple roles, holding
// ANY of them is sufficient; with none, any authenticated caller passes.
func RequireRole(required ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.ClaimsFromContext(r.Context())

			switch auth.Authorize(claims, required...) {
			case auth.DecisionAllow:
				next.ServeHTTP(w, r)
			case auth.DecisionUnauthenticated:
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			default:
				writeError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
			}
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only routes.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)
}

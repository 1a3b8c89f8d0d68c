package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// claimsContextKey is the context key for verified token claims.
const claimsContextKey contextKey = "auth_claims"

// ContextWithClaims attaches verified claims to the context. The claims
// live exactly as long as the request context they ride on.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext retrieves verified claims from the context.
// Returns nil if the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

package http

import (
	"context"

	"github.com/example/reserva/internal/server/auth"
)

type contextKey int

const claimsKey contextKey = iota

// ContextWithClaims stores the verified token claims in the request context.
func ContextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext retrieves the claims stored by the token middleware.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// Package utils provides general-purpose helper utilities used across the
// vault server and client: type-safe context keys, JSON response writing,
// the resty HTTP client wrapper, UUID generation, and JWT issuing and
// verification.
package utils

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey stores the authenticated [models.Identity] in a request
// context.
var IdentityCtxKey = contextKey("identity")

// ContextWithIdentity returns a copy of ctx carrying identity.
func ContextWithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// GetIdentityFromContext retrieves the identity stored under IdentityCtxKey.
// ok is false if the value is missing, has another type, or is zero.
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	if !ok || identity.IsZero() {
		return models.Identity{}, false
	}
	return identity, true
}

// TokenCtxKey stores the raw session token presented with a request.
var TokenCtxKey = contextKey("token")

// ContextWithToken returns a copy of ctx carrying the raw session token.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenCtxKey, token)
}

// GetTokenFromContext returns the raw session token, or "" if none was
// stored.
func GetTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(TokenCtxKey).(string)
	return token
}

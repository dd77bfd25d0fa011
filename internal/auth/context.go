package auth

import (
	"context"

	"github.com/signet/signet/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const identityContextKey contextKey = "identity"

// ContextWithIdentity attaches the resolved user identity to the context.
func ContextWithIdentity(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, identityContextKey, user)
}

// IdentityFromContext retrieves the resolved user identity from the context.
// Returns nil if the request has not passed the auth middleware.
func IdentityFromContext(ctx context.Context) *model.User {
	user, ok := ctx.Value(identityContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

package auth

import (
	"context"

	"github.com/hongminglow/jobboard-be/internal/models"
)

// Identity is the verified caller of a protected request.
type Identity struct {
	Subject string
	Role    models.Role
}

type identityKey struct{}

// WithIdentity stores id on ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity placed on ctx by the auth guard.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

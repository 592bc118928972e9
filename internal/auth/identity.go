package auth

import (
	"context"

	"feedback_backend/internal/models"
)

// Identity is the resolved caller of a request. A nil *Identity means the
// request carried no valid token.
type Identity struct {
	UserID string
	Role   models.UserRole
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.UserRoleAdmin
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the caller identity, or nil for anonymous
// requests.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

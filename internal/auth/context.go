package auth

import "context"

// Identity is the resolved user attached to a request after verification.
// Downstream services receive it from the auth service's introspection
// endpoint; the auth service resolves it locally.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	RoleID   *int64 `json:"role_id"`
	Role     string `json:"role,omitempty"`
	IsActive bool   `json:"is_active"`
}

type ctxKey int

const identityKey ctxKey = iota

// WithIdentity attaches the verified identity to the request context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the verified identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	v, ok := ctx.Value(identityKey).(Identity)
	if !ok || v.ID == 0 {
		return Identity{}, false
	}
	return v, true
}

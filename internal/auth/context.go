package auth

import (
	"context"
	"strconv"
)

// Identity is the per-request view of a verified token. It lives exactly as
// long as the request; nothing here is cached across requests.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Roles   []string
}

// IdentityFromClaims builds the request identity from verified claims.
func IdentityFromClaims(c Claims) Identity {
	return Identity{
		Subject: c.Subject,
		Email:   c.Email,
		Name:    c.Name,
		Roles:   c.Roles,
	}
}

// UserID parses the subject claim into the numeric user id. Claims are
// attacker-influenced up to the signature boundary, so a subject that does
// not parse fails closed with ErrUnauthorized.
func (id Identity) UserID() (int64, error) {
	n, err := strconv.ParseInt(id.Subject, 10, 64)
	if err != nil {
		return 0, ErrUnauthorized
	}
	return n, nil
}

// HasAnyRole reports whether the identity holds at least one of the wanted
// roles. An empty wanted list allows. Unknown role names simply never match.
func (id Identity) HasAnyRole(wanted ...string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, held := range id.Roles {
		for _, w := range wanted {
			if held == w {
				return true
			}
		}
	}
	return false
}

// RequireRoles returns ErrForbidden when the identity holds none of the
// wanted roles. This is authorization, not authentication: the token was
// already verified by the time an Identity exists.
func (id Identity) RequireRoles(wanted ...string) error {
	if id.HasAnyRole(wanted...) {
		return nil
	}
	return ErrForbidden
}

type ctxKey struct{}

// WithIdentity stores the request identity in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity placed by the auth middleware.
func FromContext(ctx context.Context) (Identity, error) {
	if id, ok := ctx.Value(ctxKey{}).(Identity); ok && id.Subject != "" {
		return id, nil
	}
	return Identity{}, ErrUnauthorized
}

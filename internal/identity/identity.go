package identity

import (
	"context"
	"errors"
)

// Identity is a verified principal from the external auth service.
// Metadata carries whatever the auth service stored alongside the account
// (role, full_name, ...); it is opaque to this system except for those keys.
type Identity struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata"`
}

// ErrUnauthenticated is returned for any token the backend rejects: missing,
// malformed, empty or invalid. Callers map it to a 401 without retrying.
var ErrUnauthenticated = errors.New("invalid or expired token")

// Verifier validates an opaque bearer token and returns the identity it
// belongs to.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}

// MetaString reads a string value from the identity metadata
func (i *Identity) MetaString(key string) string {
	if i.Metadata == nil {
		return ""
	}
	if value, ok := i.Metadata[key].(string); ok {
		return value
	}
	return ""
}

package ports

import (
	"context"
)

// Identity is the resolved actor behind a staff-side request.
type Identity struct {
	ID   string
	Name string
	Role string
}

// IdentityProvider resolves the staff identity behind an access token.
// Staff-only operations (verify, hold, cancel, return, split, merge) use it
// to stamp audit fields; an invalid or expired token yields an error and
// the operation is refused.
type IdentityProvider interface {
	Identify(ctx context.Context, token string) (Identity, error)
}

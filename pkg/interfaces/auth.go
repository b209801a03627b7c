package interfaces

import "context"

// Principal identifies the caller behind an admin request.
type Principal struct {
	UID   string
	Email string
}

// TokenVerifier resolves a bearer token into a principal.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Principal, error)
}

// AuthorizationPolicy decides whether a verified principal may use the admin surface.
type AuthorizationPolicy interface {
	IsAuthorized(principal Principal) bool
}

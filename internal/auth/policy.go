// Package auth resolves admin bearer tokens into principals and decides
// whether a principal may use the admin API.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

var (
	ErrMissingToken  = errors.New("auth: bearer token is required")
	ErrInvalidToken  = errors.New("auth: token could not be verified")
	ErrForbidden     = errors.New("auth: principal is not an administrator")
	ErrVerifierSetup = errors.New("auth: verifier is not configured")
)

// AdminPolicy authorizes principals whose email is on a fixed allow-list.
type AdminPolicy struct {
	emails map[string]struct{}
}

var _ interfaces.AuthorizationPolicy = (*AdminPolicy)(nil)

func NewAdminPolicy(emails ...string) *AdminPolicy {
	set := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		if key := normalizeEmail(email); key != "" {
			set[key] = struct{}{}
		}
	}
	return &AdminPolicy{emails: set}
}

// IsAuthorized reports whether the principal's email is an admin email.
// Comparison ignores case and surrounding space.
func (p *AdminPolicy) IsAuthorized(principal interfaces.Principal) bool {
	if p == nil {
		return false
	}
	key := normalizeEmail(principal.Email)
	if key == "" {
		return false
	}
	_, ok := p.emails[key]
	return ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type principalKey struct{}

// WithPrincipal stores the verified principal on the request context.
func WithPrincipal(ctx context.Context, principal interfaces.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFrom returns the principal stored by the middleware.
func PrincipalFrom(ctx context.Context) (interfaces.Principal, bool) {
	if ctx == nil {
		return interfaces.Principal{}, false
	}
	principal, ok := ctx.Value(principalKey{}).(interfaces.Principal)
	return principal, ok
}

package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// StaticVerifier accepts a single shared token and maps it to a fixed
// principal. It backs local development and the CLI.
type StaticVerifier struct {
	token     string
	principal interfaces.Principal
}

var _ interfaces.TokenVerifier = (*StaticVerifier)(nil)

func NewStaticVerifier(token, email string) *StaticVerifier {
	return &StaticVerifier{
		token:     token,
		principal: interfaces.Principal{UID: "static", Email: email},
	}
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (interfaces.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return interfaces.Principal{}, ErrMissingToken
	}
	if v.token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(v.token)) != 1 {
		return interfaces.Principal{}, ErrInvalidToken
	}
	return v.principal, nil
}

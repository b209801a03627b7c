package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// ErrorWriter renders an authentication failure.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

type MiddlewareOption func(*middleware)

func WithErrorWriter(writer ErrorWriter) MiddlewareOption {
	return func(m *middleware) {
		if writer != nil {
			m.writeError = writer
		}
	}
}

func WithMiddlewareLogger(logger interfaces.Logger) MiddlewareOption {
	return func(m *middleware) {
		if logger != nil {
			m.logger = logger
		}
	}
}

type middleware struct {
	verifier   interfaces.TokenVerifier
	policy     interfaces.AuthorizationPolicy
	logger     interfaces.Logger
	writeError ErrorWriter
}

// Middleware requires a bearer token that the verifier accepts and the
// policy authorizes. The principal is stored on the request context.
func Middleware(verifier interfaces.TokenVerifier, policy interfaces.AuthorizationPolicy, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if verifier == nil || policy == nil {
		panic(ErrVerifierSetup)
	}
	m := &middleware{
		verifier:   verifier,
		policy:     policy,
		logger:     logging.NoOp(),
		writeError: defaultErrorWriter,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				m.writeError(w, r, ErrMissingToken)
				return
			}
			principal, err := m.verifier.Verify(r.Context(), token)
			if err != nil {
				m.logger.Warn("auth.token.rejected", "error", err, "path", r.URL.Path)
				if !errors.Is(err, ErrMissingToken) && !errors.Is(err, ErrInvalidToken) {
					err = errors.Join(ErrInvalidToken, err)
				}
				m.writeError(w, r, err)
				return
			}
			if !m.policy.IsAuthorized(principal) {
				m.logger.Warn("auth.principal.forbidden", "email", principal.Email, "path", r.URL.Path)
				m.writeError(w, r, ErrForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < len("bearer ") || !strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[len("bearer "):])
	return token, token != ""
}

// StatusFor maps authentication errors to HTTP status codes.
func StatusFor(err error) int {
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}

func defaultErrorWriter(w http.ResponseWriter, _ *http.Request, err error) {
	http.Error(w, http.StatusText(StatusFor(err)), StatusFor(err))
}

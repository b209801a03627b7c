package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/goliatone/go-sitecms/internal/auth"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

func TestAdminPolicy(t *testing.T) {
	policy := auth.NewAdminPolicy(" Admin@Example.com ", "")
	cases := []struct {
		email string
		want  bool
	}{
		{"admin@example.com", true},
		{"ADMIN@example.com", true},
		{"other@example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := policy.IsAuthorized(interfaces.Principal{Email: tc.email}); got != tc.want {
			t.Fatalf("IsAuthorized(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

type fakeFirebase struct {
	token *fbauth.Token
	err   error
}

func (f fakeFirebase) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return f.token, f.err
}

func TestFirebaseVerifier(t *testing.T) {
	verifier := auth.NewFirebaseVerifier(fakeFirebase{token: &fbauth.Token{
		UID:    "uid-1",
		Claims: map[string]any{"email": "admin@example.com"},
	}})
	principal, err := verifier.Verify(context.Background(), "id-token")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal.UID != "uid-1" || principal.Email != "admin@example.com" {
		t.Fatalf("unexpected principal %+v", principal)
	}

	failing := auth.NewFirebaseVerifier(fakeFirebase{err: errors.New("expired")})
	if _, err := failing.Verify(context.Background(), "id-token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := failing.Verify(context.Background(), " "); !errors.Is(err, auth.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestMiddleware(t *testing.T) {
	verifier := auth.NewStaticVerifier("secret-token", "admin@example.com")
	handler := auth.Middleware(verifier, auth.NewAdminPolicy("admin@example.com"))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFrom(r.Context())
			if !ok || principal.Email != "admin@example.com" {
				t.Fatalf("principal missing from context: %+v", principal)
			}
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic secret-token", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"ok", "Bearer secret-token", http.StatusNoContent},
		{"lowercase scheme", "bearer secret-token", http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/api/orders", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestMiddlewareRejectsNonAdmins(t *testing.T) {
	var captured error
	verifier := auth.NewStaticVerifier("token", "someone@example.com")
	handler := auth.Middleware(verifier, auth.NewAdminPolicy("admin@example.com"),
		auth.WithErrorWriter(func(w http.ResponseWriter, _ *http.Request, err error) {
			captured = err
			w.WriteHeader(auth.StatusFor(err))
		}),
	)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/api/orders", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden || !errors.Is(captured, auth.ErrForbidden) {
		t.Fatalf("expected forbidden, got %d %v", rec.Code, captured)
	}
}

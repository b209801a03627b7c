package auth

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// IDTokenVerifier is the part of the Firebase auth client the verifier uses.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier accepts Firebase ID tokens issued to signed in admins.
type FirebaseVerifier struct {
	client IDTokenVerifier
}

var _ interfaces.TokenVerifier = (*FirebaseVerifier)(nil)

func NewFirebaseVerifier(client IDTokenVerifier) *FirebaseVerifier {
	if client == nil {
		panic(ErrVerifierSetup)
	}
	return &FirebaseVerifier{client: client}
}

// OpenFirebase builds a verifier from application default credentials.
func OpenFirebase(ctx context.Context, projectID string) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("auth: initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth: firebase auth client: %w", err)
	}
	return NewFirebaseVerifier(client), nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (interfaces.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return interfaces.Principal{}, ErrMissingToken
	}
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return interfaces.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	principal := interfaces.Principal{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		principal.Email = email
	}
	return principal, nil
}

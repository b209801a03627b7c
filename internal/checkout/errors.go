package checkout

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-sitecms/internal/settings"
)

var (
	ErrInvalidAmount = errors.New("checkout: amount must be greater than zero")
	ErrEmptyOrder    = errors.New("checkout: gateway returned an empty order")
)

// ConfigurationError means payment credentials or switches are missing.
// Checkout fails closed.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "checkout: " + e.Reason
}

// VerificationError is a payment callback whose signature does not match.
// The order is never persisted.
type VerificationError struct {
	OrderID string
	Reason  string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("checkout: verification of order %q failed: %s", e.OrderID, e.Reason)
}

// GatewayError wraps a failed remote order request.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("checkout: gateway: %v", e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Messages shown to the payer.
const (
	MessageInvalidData        = "Invalid data provided."
	MessageVerificationFailed = "Payment verification failed"
	MessageInitiateFailed     = "Could not initiate payment."
	MessageSaveFailed         = "Could not save the order to the database."
)

// PublicMessage maps a checkout error to the text the payer may see.
// Configuration reasons are shown as is; store and unknown failures use
// fallback.
func PublicMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var (
		validationErr *settings.ValidationError
		configErr     *ConfigurationError
		verifyErr     *VerificationError
		gatewayErr    *GatewayError
	)
	switch {
	case errors.As(err, &validationErr), errors.Is(err, ErrInvalidAmount):
		return MessageInvalidData
	case errors.As(err, &configErr):
		return configErr.Reason
	case errors.As(err, &verifyErr):
		return MessageVerificationFailed
	case errors.As(err, &gatewayErr):
		return MessageInitiateFailed
	default:
		return fallback
	}
}

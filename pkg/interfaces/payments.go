package interfaces

import "context"

// GatewayOrderRequest carries the amount in minor currency units.
type GatewayOrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	AutoCapture bool
}

// GatewayOrder is the remote gateway's handle for a pending transaction.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, req GatewayOrderRequest) (GatewayOrder, error)
}

// PaymentGatewayFactory builds a gateway for the credentials currently stored
// in payment settings. Credentials can change between requests so gateways
// are not cached by callers.
type PaymentGatewayFactory func(keyID, keySecret string) PaymentGateway

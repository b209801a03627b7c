// Package razorpay creates orders through the Razorpay REST API.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	DefaultBaseURL = "https://api.razorpay.com/v1"
	defaultTimeout = 15 * time.Second
)

var ErrCredentialsRequired = errors.New("razorpay: key id and secret are required")

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status      int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("razorpay: status %d", e.Status)
	}
	return fmt.Sprintf("razorpay: status %d: %s: %s", e.Status, e.Code, e.Description)
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url = strings.TrimRight(strings.TrimSpace(url), "/"); url != "" {
			c.baseURL = url
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// Client is a PaymentGateway bound to one key pair.
type Client struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *http.Client
}

var _ interfaces.PaymentGateway = (*Client)(nil)

func New(keyID, keySecret string, opts ...Option) *Client {
	c := &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   DefaultBaseURL,
		http:      &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Factory returns a PaymentGatewayFactory sharing opts across key pairs.
func Factory(opts ...Option) interfaces.PaymentGatewayFactory {
	return func(keyID, keySecret string) interfaces.PaymentGateway {
		return New(keyID, keySecret, opts...)
	}
}

type orderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt,omitempty"`
	PaymentCapture int    `json:"payment_capture"`
}

type errorBody struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) CreateOrder(ctx context.Context, req interfaces.GatewayOrderRequest) (interfaces.GatewayOrder, error) {
	if c.keyID == "" || c.keySecret == "" {
		return interfaces.GatewayOrder{}, ErrCredentialsRequired
	}
	body := orderRequest{
		Amount:   req.AmountMinor,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	}
	if req.AutoCapture {
		body.PaymentCapture = 1
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return interfaces.GatewayOrder{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return interfaces.GatewayOrder{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return interfaces.GatewayOrder{}, fmt.Errorf("razorpay: create order: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return interfaces.GatewayOrder{}, fmt.Errorf("razorpay: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			apiErr.Code = eb.Error.Code
			apiErr.Description = eb.Error.Description
		}
		return interfaces.GatewayOrder{}, apiErr
	}

	var order interfaces.GatewayOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return interfaces.GatewayOrder{}, fmt.Errorf("razorpay: decode order: %w", err)
	}
	return order, nil
}

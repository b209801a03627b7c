package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	defaultWebhookTimeout = 10 * time.Second
	secretHeader          = "X-Revalidate-Secret"
)

// WebhookSink posts events to the rendering frontend. Delivery happens in
// the background; the writer only waits for the request to be queued.
type WebhookSink struct {
	url     string
	secret  string
	client  *http.Client
	timeout time.Duration
	logger  interfaces.Logger
	async   bool
}

var _ Sink = (*WebhookSink)(nil)

type WebhookOption func(*WebhookSink)

func WithHTTPClient(client *http.Client) WebhookOption {
	return func(w *WebhookSink) {
		if client != nil {
			w.client = client
		}
	}
}

func WithWebhookLogger(logger interfaces.Logger) WebhookOption {
	return func(w *WebhookSink) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func WithWebhookTimeout(timeout time.Duration) WebhookOption {
	return func(w *WebhookSink) {
		if timeout > 0 {
			w.timeout = timeout
		}
	}
}

// WithSynchronousDelivery makes Revalidate block until the frontend
// answered. Used by the CLI, which exits right after dispatching.
func WithSynchronousDelivery() WebhookOption {
	return func(w *WebhookSink) { w.async = false }
}

func NewWebhookSink(url, secret string, opts ...WebhookOption) *WebhookSink {
	w := &WebhookSink{
		url:     url,
		secret:  secret,
		client:  http.DefaultClient,
		timeout: defaultWebhookTimeout,
		logger:  logging.NoOp(),
		async:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

type webhookPayload struct {
	ContentType string   `json:"content_type"`
	Paths       []Target `json:"paths"`
	IssuedAt    string   `json:"issued_at"`
}

func (w *WebhookSink) Revalidate(ctx context.Context, event Event) error {
	body, err := json.Marshal(webhookPayload{
		ContentType: event.ContentType,
		Paths:       event.Targets,
		IssuedAt:    event.IssuedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("revalidate: encode webhook payload: %w", err)
	}
	if !w.async {
		return w.deliver(ctx, body)
	}
	go func() {
		if err := w.deliver(context.WithoutCancel(ctx), body); err != nil {
			w.logger.Warn("revalidate.webhook.failed", "content_type", event.ContentType, "error", err)
		}
	}()
	return nil
}

func (w *WebhookSink) deliver(ctx context.Context, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.secret != "" {
		req.Header.Set(secretHeader, w.secret)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("revalidate: webhook responded %s", resp.Status)
	}
	return nil
}

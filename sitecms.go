// Package sitecms is the entry point for embedding the marketing site backend:
// it builds the service container from a Config and exposes the site
// services and the HTTP handler.
package sitecms

import (
	"context"
	"net/http"

	"github.com/goliatone/go-sitecms/internal/checkout"
	"github.com/goliatone/go-sitecms/internal/di"
	sitehttp "github.com/goliatone/go-sitecms/internal/http"
	"github.com/goliatone/go-sitecms/internal/inquiries"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/internal/transfer"
)

// Site exports the settings and records facade.
type Site = site.Site

// CheckoutService exports the payment checkout service.
type CheckoutService = *checkout.Service

// InquiryService exports the contact form service.
type InquiryService = *inquiries.Service

// TransferService exports the export/import service.
type TransferService = *transfer.Service

// Revalidations exports the in-memory record of dispatched markers.
type Revalidations = *revalidate.Recorder

// Module represents the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module with the provided configuration and optional DI
// overrides. Without a store override the in-memory store is used.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Open connects to the configured backends before building the module.
func Open(ctx context.Context, cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.Open(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

func (m *Module) Site() *Site {
	return m.container.Site()
}

func (m *Module) Checkout() CheckoutService {
	return m.container.CheckoutService()
}

func (m *Module) Inquiries() InquiryService {
	return m.container.InquiryService()
}

func (m *Module) Transfer() TransferService {
	return m.container.TransferService()
}

func (m *Module) Revalidations() Revalidations {
	return m.container.Revalidations()
}

// Handler returns the public and admin API. Admin routes stay closed (503)
// when no token verifier is configured.
func (m *Module) Handler() http.Handler {
	c := m.container
	cfg := c.Config
	opts := []sitehttp.Option{
		sitehttp.WithPublicBaseURL(cfg.HTTP.PublicBaseURL),
		sitehttp.WithCheckout(c.CheckoutService()),
		sitehttp.WithInquiries(c.InquiryService()),
		sitehttp.WithTransfer(c.TransferService()),
		sitehttp.WithRevalidations(c.Revalidations()),
		sitehttp.WithLogger(logging.HTTPLogger(c.LoggerProvider())),
	}
	if gen := c.MetaGenerator(); gen != nil {
		opts = append(opts, sitehttp.WithMetaGenerator(gen))
	}
	if verifier := c.TokenVerifier(); verifier != nil {
		opts = append(opts, sitehttp.WithAuth(verifier, c.AuthorizationPolicy()))
	}
	return sitehttp.NewServer(c.Site(), opts...).Handler()
}

// Close releases the connections opened by Open.
func (m *Module) Close(ctx context.Context) error {
	return m.container.Close(ctx)
}

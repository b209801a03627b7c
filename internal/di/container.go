package di

import (
	"context"
	"errors"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitecms/internal/auth"
	"github.com/goliatone/go-sitecms/internal/checkout"
	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/docstore/bunstore"
	"github.com/goliatone/go-sitecms/internal/inquiries"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/logging/gologger"
	"github.com/goliatone/go-sitecms/internal/metagen"
	"github.com/goliatone/go-sitecms/internal/notify"
	"github.com/goliatone/go-sitecms/internal/payments/razorpay"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/internal/runtimeconfig"
	"github.com/goliatone/go-sitecms/internal/settings"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/internal/transfer"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// Container wires the document store, the revalidation dispatcher, every
// site module and the services built on top of them.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	store   docstore.Store
	bunDB   *bun.DB
	closers []func(context.Context) error

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	sinks      []revalidate.Sink
	recorder   *revalidate.Recorder
	dispatcher *revalidate.Dispatcher

	engineOptions []settings.Option
	now           func() time.Time
	mailer        interfaces.Mailer
	gateways      interfaces.PaymentGatewayFactory
	textModel     interfaces.TextGenerator
	verifier      interfaces.TokenVerifier
	policy        interfaces.AuthorizationPolicy

	site      *site.Site
	checkout  *checkout.Service
	inquiries *inquiries.Service
	transfer  *transfer.Service
	metagen   *metagen.Generator
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithStore replaces the configured backend.
func WithStore(store docstore.Store) Option {
	return func(c *Container) {
		if store != nil {
			c.store = store
		}
	}
}

// WithBunDB backs the store with a sql database through bun.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		if db != nil {
			c.bunDB = db
		}
	}
}

// WithCache overrides the cache used by the bun backend.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithSink adds a revalidation sink next to the configured ones.
func WithSink(sink revalidate.Sink) Option {
	return func(c *Container) {
		if sink != nil {
			c.sinks = append(c.sinks, sink)
		}
	}
}

// WithEngineOptions forwards clocks and id generators to the settings engine.
func WithEngineOptions(opts ...settings.Option) Option {
	return func(c *Container) {
		c.engineOptions = append(c.engineOptions, opts...)
	}
}

func WithMailer(mailer interfaces.Mailer) Option {
	return func(c *Container) {
		if mailer != nil {
			c.mailer = mailer
		}
	}
}

func WithPaymentGateways(factory interfaces.PaymentGatewayFactory) Option {
	return func(c *Container) {
		if factory != nil {
			c.gateways = factory
		}
	}
}

func WithTextGenerator(model interfaces.TextGenerator) Option {
	return func(c *Container) {
		if model != nil {
			c.textModel = model
		}
	}
}

func WithTokenVerifier(verifier interfaces.TokenVerifier) Option {
	return func(c *Container) {
		if verifier != nil {
			c.verifier = verifier
		}
	}
}

func withCloser(fn func(context.Context) error) Option {
	return func(c *Container) {
		if fn != nil {
			c.closers = append(c.closers, fn)
		}
	}
}

// NewContainer builds the services for cfg over an in-memory store unless a
// store or bun database is supplied. Use Open to connect to remote backends.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.TTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
		recorder: revalidate.NewRecorder(cfg.Revalidate.RecorderLimit),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	c.now = settings.Clock(c.engineOptions)
	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureStore()
	c.configureDispatcher()
	c.configureIntegrations()

	settingsLogger := logging.SettingsLogger(c.loggerProvider)
	c.site = site.New(c.store,
		site.WithNotifier(c.dispatcher),
		site.WithLogger(settingsLogger),
		site.WithEngineOptions(c.engineOptions...),
	)

	appName := cfg.AppName
	checkoutOpts := []checkout.Option{
		checkout.WithClock(c.now),
		checkout.WithLogger(logging.CheckoutLogger(c.loggerProvider)),
		checkout.WithAppName(appName),
	}
	inquiryOpts := []inquiries.Option{
		inquiries.WithLogger(logging.ModuleLogger(c.loggerProvider, "sitecms.inquiries")),
		inquiries.WithAppName(appName),
	}
	if c.mailer != nil {
		checkoutOpts = append(checkoutOpts, checkout.WithMailer(c.mailer))
		inquiryOpts = append(inquiryOpts, inquiries.WithMailer(c.mailer))
	}
	c.checkout = checkout.NewService(c.site, c.gateways, checkoutOpts...)
	c.inquiries = inquiries.NewService(c.site, inquiryOpts...)

	c.transfer = transfer.NewService(c.store,
		transfer.WithNotifier(c.dispatcher),
		transfer.WithLogger(logging.TransferLogger(c.loggerProvider)),
	)

	if c.textModel != nil {
		c.metagen = metagen.New(c.textModel, metagen.WithLogger(logging.ModuleLogger(c.loggerProvider, "sitecms.metagen")))
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || c.Config.Logging.Provider != "gologger" {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStore() {
	if c.store != nil {
		return
	}
	if c.bunDB != nil {
		opts := []bunstore.Option{}
		if c.cacheService != nil && c.keySerializer != nil {
			opts = append(opts, bunstore.WithCache(c.cacheService, c.keySerializer))
		}
		opts = append(opts, bunstore.WithClock(c.now))
		c.store = bunstore.New(c.bunDB, opts...)
		return
	}
	c.store = docstore.NewMemoryStore()
}

func (c *Container) configureDispatcher() {
	logger := logging.RevalidateLogger(c.loggerProvider)
	opts := []revalidate.Option{
		revalidate.WithLogger(logger),
		revalidate.WithSink(c.recorder),
	}
	if url := c.Config.Revalidate.WebhookURL; url != "" {
		opts = append(opts, revalidate.WithSink(revalidate.NewWebhookSink(url, c.Config.Revalidate.Secret,
			revalidate.WithWebhookLogger(logger),
			revalidate.WithWebhookTimeout(c.Config.Revalidate.Timeout),
		)))
	} else {
		opts = append(opts, revalidate.WithSink(revalidate.NewLogSink(logger)))
	}
	for _, sink := range c.sinks {
		opts = append(opts, revalidate.WithSink(sink))
	}
	opts = append(opts, revalidate.WithClock(c.now))
	c.dispatcher = revalidate.NewDispatcher(opts...)
}

func (c *Container) configureIntegrations() {
	if c.mailer == nil && c.Config.Mail.Enabled {
		c.mailer = notify.NewSMTPMailer(notify.WithMailerLogger(logging.ModuleLogger(c.loggerProvider, "sitecms.notify")))
	}
	if c.gateways == nil {
		gatewayOpts := []razorpay.Option{}
		if base := c.Config.Payments.GatewayBaseURL; base != "" {
			gatewayOpts = append(gatewayOpts, razorpay.WithBaseURL(base))
		}
		c.gateways = razorpay.Factory(gatewayOpts...)
	}
	if c.textModel == nil && c.Config.MetaGen.APIKey != "" {
		geminiOpts := []metagen.GeminiOption{}
		if model := c.Config.MetaGen.Model; model != "" {
			geminiOpts = append(geminiOpts, metagen.WithGeminiModel(model))
		}
		if base := c.Config.MetaGen.BaseURL; base != "" {
			geminiOpts = append(geminiOpts, metagen.WithGeminiBaseURL(base))
		}
		c.textModel = metagen.NewGemini(c.Config.MetaGen.APIKey, geminiOpts...)
	}
	if c.verifier == nil && c.Config.Auth.Provider == runtimeconfig.AuthStatic {
		email := c.Config.Auth.StaticTokenEmail
		if email == "" && len(c.Config.Auth.AdminEmails) > 0 {
			email = c.Config.Auth.AdminEmails[0]
		}
		c.verifier = auth.NewStaticVerifier(c.Config.Auth.StaticToken, email)
	}
	if c.policy == nil {
		c.policy = auth.NewAdminPolicy(c.Config.Auth.AdminEmails...)
	}
}

// Close releases backend connections opened by Open.
func (c *Container) Close(ctx context.Context) error {
	var errs error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = errors.Join(errs, c.closers[i](ctx))
	}
	c.closers = nil
	return errs
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

func (c *Container) Store() docstore.Store { return c.store }

func (c *Container) Dispatcher() *revalidate.Dispatcher { return c.dispatcher }

// Revalidations exposes the in-memory marker history.
func (c *Container) Revalidations() *revalidate.Recorder { return c.recorder }

func (c *Container) Site() *site.Site { return c.site }

func (c *Container) CheckoutService() *checkout.Service { return c.checkout }

func (c *Container) InquiryService() *inquiries.Service { return c.inquiries }

func (c *Container) TransferService() *transfer.Service { return c.transfer }

// MetaGenerator is nil when no model is configured.
func (c *Container) MetaGenerator() *metagen.Generator { return c.metagen }

// TokenVerifier is nil until a verifier is configured or opened.
func (c *Container) TokenVerifier() interfaces.TokenVerifier { return c.verifier }

func (c *Container) AuthorizationPolicy() interfaces.AuthorizationPolicy { return c.policy }

package site

import (
	"context"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/markdown"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/internal/settings"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// Collections of the persisted layout.
const (
	CollectionSettings     = "settings"
	CollectionPages        = "pages"
	CollectionWebSettings  = "webSettings"
	CollectionSkills       = "skills"
	CollectionFeatures     = "pages/why-choose-us/features"
	CollectionServices     = "services"
	CollectionPortfolio    = "portfolio_items"
	CollectionPricingPlans = "pricing_plans"
	CollectionFAQs         = "faqs"
	CollectionLegalPages   = "legal_pages"
	CollectionPageSEO      = "page_seo"
	CollectionTestimonials = "testimonials"
	CollectionOrders       = "orders"
	CollectionSubmissions  = "contact_submissions"
	themeDocumentID        = "global"
	contentTypeLegal       = "legal"
	contentTypeSEO         = "seo"
	contentTypeSkills      = "skills"
	contentTypeFeatures    = "features"
)

// Registry module names.
const (
	ModuleGeneral          = "general"
	ModuleTheme            = "theme"
	ModuleVanta            = "vanta"
	ModuleMarketing        = "marketing"
	ModulePayments         = "payments"
	ModuleEmail            = "email"
	ModuleContact          = "contact"
	ModuleHome             = "home"
	ModuleAbout            = "about"
	ModuleWhyChooseUs      = "why-choose-us"
	ModuleServices         = "services"
	ModuleServicesSection  = "services-section"
	ModulePortfolio        = "portfolio"
	ModulePortfolioSection = "portfolio-section"
	ModulePricing          = "pricing"
	ModulePricingPage      = "pricing-page"
	ModuleFAQs             = "faqs"
)

// Option configures a Site.
type Option func(*options)

type options struct {
	settings []settings.Option
	logger   interfaces.Logger
	markdown *markdown.Renderer
}

func WithNotifier(notifier revalidate.Notifier) Option {
	return func(o *options) { o.settings = append(o.settings, settings.WithNotifier(notifier)) }
}

func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
			o.settings = append(o.settings, settings.WithLogger(logger))
		}
	}
}

// WithEngineOptions passes options such as clocks and id generators to every
// settings engine.
func WithEngineOptions(opts ...settings.Option) Option {
	return func(o *options) { o.settings = append(o.settings, opts...) }
}

func WithMarkdownRenderer(renderer *markdown.Renderer) Option {
	return func(o *options) {
		if renderer != nil {
			o.markdown = renderer
		}
	}
}

// Site holds every content module of the marketing site.
type Site struct {
	store    docstore.Store
	registry *settings.Registry
	logger   interfaces.Logger
	markdown *markdown.Renderer

	General          *settings.Single[GeneralSettings]
	Theme            *settings.Single[ThemeSettings]
	Vanta            *settings.Single[VantaSettings]
	Marketing        *settings.Single[MarketingSettings]
	Payments         *settings.Single[PaymentSettings]
	Email            *settings.Single[EmailSettings]
	Contact          *settings.Single[ContactDetails]
	Home             *settings.Single[HomeContent]
	About            *settings.Nested[AboutContent, Skill]
	WhyChooseUs      *settings.Nested[WhyChooseUsContent, Feature]
	Services         *settings.List[Service]
	ServicesSection  *settings.Single[SectionContent]
	Portfolio        *settings.List[PortfolioItem]
	PortfolioSection *settings.Single[SectionContent]
	PricingPlans     *settings.List[PricingPlan]
	PricingPage      *settings.Single[SectionContent]
	FAQs             *settings.List[FAQ]
	Legal            *settings.Keyed[LegalPage]
	SEO              *settings.Keyed[PageSEO]
	Testimonials     *settings.Records[Testimonial]
	Orders           *settings.Records[Order]
	Submissions      *settings.Records[Submission]
}

// New builds every module over store and registers the editable ones.
func New(store docstore.Store, opts ...Option) *Site {
	if store == nil {
		panic(settings.ErrStoreRequired)
	}
	cfg := options{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.markdown == nil {
		cfg.markdown = markdown.NewRenderer(markdown.Options{})
	}
	eng := cfg.settings

	s := &Site{
		store:    store,
		registry: settings.NewRegistry(),
		logger:   cfg.logger,
		markdown: cfg.markdown,
	}

	s.General = settings.NewSingle(store, settings.SingleConfig[GeneralSettings]{
		ContentType: revalidate.General,
		Collection:  CollectionSettings,
		ID:          "general",
		Defaults:    defaultGeneral,
	}, eng...)
	s.Theme = newThemeModule(store, eng)
	s.Vanta = settings.NewSingle(store, settings.SingleConfig[VantaSettings]{
		ContentType: revalidate.Vanta,
		Collection:  CollectionSettings,
		ID:          "vanta",
		Defaults:    defaultVanta,
	}, eng...)
	s.Marketing = settings.NewSingle(store, settings.SingleConfig[MarketingSettings]{
		ContentType: revalidate.Marketing,
		Collection:  CollectionSettings,
		ID:          "marketing",
		Defaults:    defaultMarketing,
	}, eng...)
	s.Payments = settings.NewSingle(store, settings.SingleConfig[PaymentSettings]{
		ContentType: revalidate.Payments,
		Collection:  CollectionSettings,
		ID:          "payments",
		Defaults:    defaultPayments,
		Prepare:     keepPaymentSecret,
	}, eng...)
	s.Email = settings.NewSingle(store, settings.SingleConfig[EmailSettings]{
		ContentType: revalidate.Email,
		Collection:  CollectionSettings,
		ID:          "email",
		Defaults:    defaultEmail,
		Migrate:     migrateEmail,
		Prepare:     keepSMTPPassword,
	}, eng...)
	s.Contact = settings.NewSingle(store, settings.SingleConfig[ContactDetails]{
		ContentType: revalidate.Contact,
		Collection:  CollectionSettings,
		ID:          "contact",
		Defaults:    defaultContact,
	}, eng...)
	s.Home = settings.NewSingle(store, settings.SingleConfig[HomeContent]{
		ContentType: revalidate.Home,
		Collection:  CollectionPages,
		ID:          "home",
		Defaults:    defaultHome,
		Migrate:     renameField("hero_image", "hero_media_url"),
	}, eng...)

	s.About = settings.NewNested(store, revalidate.About,
		settings.NewSingle(store, settings.SingleConfig[AboutContent]{
			ContentType: revalidate.About,
			Collection:  CollectionPages,
			ID:          "about",
			Defaults:    defaultAbout,
		}, eng...),
		settings.NewList(store, settings.ListConfig[Skill]{
			ContentType: contentTypeSkills,
			Collection:  CollectionSkills,
			Defaults:    defaultSkills,
			Skip:        func(skill Skill) bool { return strings.TrimSpace(skill.Name) == "" },
		}, eng...),
		nil, eng...)

	s.WhyChooseUs = settings.NewNested(store, revalidate.WhyChooseUs,
		settings.NewSingle(store, settings.SingleConfig[WhyChooseUsContent]{
			ContentType: revalidate.WhyChooseUs,
			Collection:  CollectionPages,
			ID:          "why-choose-us",
			Defaults:    defaultWhyChooseUs,
			Migrate:     renameField("image", "media_url"),
		}, eng...),
		settings.NewList(store, settings.ListConfig[Feature]{
			ContentType: contentTypeFeatures,
			Collection:  CollectionFeatures,
			Defaults:    defaultFeatures,
			Order:       []docstore.OrderBy{docstore.Asc(settings.FieldCreatedAt)},
		}, eng...),
		nil, eng...)

	s.Services = settings.NewList(store, settings.ListConfig[Service]{
		ContentType: revalidate.Services,
		Collection:  CollectionServices,
		Defaults:    defaultServices,
		Migrate:     renameField("image", "mediaUrl"),
		Normalize: func(i int, svc *Service) {
			svc.DisplayOrder = displayOrder(svc.DisplayOrder, i)
			svc.MediaType = mediaType(svc.MediaType)
		},
	}, eng...)
	s.ServicesSection = sectionModule(store, revalidate.Services, "services-section", defaultServicesSection, eng)

	s.Portfolio = settings.NewList(store, settings.ListConfig[PortfolioItem]{
		ContentType: revalidate.Portfolio,
		Collection:  CollectionPortfolio,
		Migrate:     renameField("image", "mediaUrl"),
		Normalize: func(i int, item *PortfolioItem) {
			item.DisplayOrder = displayOrder(item.DisplayOrder, i)
			item.MediaType = mediaType(item.MediaType)
		},
	}, eng...)
	s.PortfolioSection = sectionModule(store, revalidate.Portfolio, "portfolio-section", defaultPortfolioSection, eng)

	s.PricingPlans = settings.NewList(store, settings.ListConfig[PricingPlan]{
		ContentType: revalidate.Pricing,
		Collection:  CollectionPricingPlans,
		Defaults:    defaultPricingPlans,
		Normalize: func(i int, plan *PricingPlan) {
			plan.DisplayOrder = displayOrder(plan.DisplayOrder, i)
		},
	}, eng...)
	s.PricingPage = sectionModule(store, revalidate.Pricing, "pricing", defaultPricingPage, eng)

	s.FAQs = settings.NewList(store, settings.ListConfig[FAQ]{
		ContentType: revalidate.FAQ,
		Collection:  CollectionFAQs,
		Defaults:    defaultFAQs,
		Order:       []docstore.OrderBy{docstore.Asc(settings.FieldCreatedAt)},
	}, eng...)

	s.Legal = settings.NewKeyed(store, settings.KeyedConfig[LegalPage]{
		ContentType:  contentTypeLegal,
		Collection:   CollectionLegalPages,
		Defaults:     defaultLegalPages,
		SeedOnList:   true,
		NormalizeKey: normalizeKey,
		Targets:      revalidate.LegalTargets,
		Patch: func(page LegalPage) (map[string]any, error) {
			return map[string]any{"content": page.Content}, nil
		},
	}, eng...)

	seoDefaults := defaultSEO()
	s.SEO = settings.NewKeyed(store, settings.KeyedConfig[PageSEO]{
		ContentType:  contentTypeSEO,
		Collection:   CollectionPageSEO,
		Defaults:     defaultSEO,
		Fallback:     func(string) PageSEO { return seoDefaults[SEOHome] },
		NormalizeKey: normalizeKey,
		Targets:      revalidate.SEOTargets,
	}, eng...)

	s.Testimonials = settings.NewRecords(store, settings.RecordsConfig[Testimonial]{
		ContentType: revalidate.Testimonials,
		Collection:  CollectionTestimonials,
		Defaults:    defaultTestimonials,
	}, eng...)
	s.Orders = settings.NewRecords(store, settings.RecordsConfig[Order]{
		ContentType: revalidate.Orders,
		Collection:  CollectionOrders,
	}, eng...)
	s.Submissions = settings.NewRecords(store, settings.RecordsConfig[Submission]{
		ContentType: revalidate.Submissions,
		Collection:  CollectionSubmissions,
	}, eng...)

	s.register()
	return s
}

func (s *Site) register() {
	r := s.registry
	r.MustRegister(ModuleGeneral, settings.SingleModule(s.General), settings.Public())
	r.MustRegister(ModuleTheme, settings.SingleModule(s.Theme), settings.Public())
	r.MustRegister(ModuleVanta, settings.SingleModule(s.Vanta), settings.Public())
	r.MustRegister(ModuleMarketing, settings.SingleModule(s.Marketing), settings.Public())
	r.MustRegister(ModulePayments, redactedPayments{settings.SingleModule(s.Payments)},
		settings.PublicWith(func(ctx context.Context, _ settings.Module) any {
			return s.PublicPaymentConfig(ctx)
		}))
	r.MustRegister(ModuleEmail, redactedEmail{settings.SingleModule(s.Email)})
	r.MustRegister(ModuleContact, settings.SingleModule(s.Contact), settings.Public())
	r.MustRegister(ModuleHome, settings.SingleModule(s.Home), settings.Public())
	r.MustRegister(ModuleAbout, settings.NestedModule(s.About), settings.Public())
	r.MustRegister(ModuleWhyChooseUs, settings.NestedModule(s.WhyChooseUs), settings.Public())
	r.MustRegister(ModuleServices, settings.ListModule(s.Services), settings.Public())
	r.MustRegister(ModuleServicesSection, settings.SingleModule(s.ServicesSection), settings.Public())
	r.MustRegister(ModulePortfolio, settings.ListModule(s.Portfolio), settings.Public())
	r.MustRegister(ModulePortfolioSection, settings.SingleModule(s.PortfolioSection), settings.Public())
	r.MustRegister(ModulePricing, settings.ListModule(s.PricingPlans), settings.Public())
	r.MustRegister(ModulePricingPage, settings.SingleModule(s.PricingPage), settings.Public())
	r.MustRegister(ModuleFAQs, settings.ListModule(s.FAQs), settings.Public())
}

// Registry exposes the editable modules by name.
func (s *Site) Registry() *settings.Registry { return s.registry }

// Store returns the backing document store.
func (s *Site) Store() docstore.Store { return s.store }

func sectionModule(store docstore.Store, contentType, id string, defaults func() SectionContent, eng []settings.Option) *settings.Single[SectionContent] {
	return settings.NewSingle(store, settings.SingleConfig[SectionContent]{
		ContentType: contentType,
		Collection:  CollectionPages,
		ID:          id,
		Defaults:    defaults,
	}, eng...)
}

// normalizeKey turns page names and legal slugs into document ids.
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if normalized, err := slug.Normalize(key); err == nil && normalized != "" {
		return normalized
	}
	return strings.ToLower(key)
}

func displayOrder(stored, index int) int {
	if stored > 0 {
		return stored
	}
	return index + 1
}

func mediaType(stored string) string {
	if stored == "" {
		return MediaImage
	}
	return stored
}

// renameField copies a legacy field to its current name when the current
// one is missing or empty.
func renameField(legacy, current string) func(map[string]any) {
	return func(data map[string]any) {
		if value, ok := data[current].(string); ok && value != "" {
			return
		}
		if value, ok := data[legacy].(string); ok && value != "" {
			data[current] = value
		}
	}
}

package site

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-sitecms/internal/colors"
	"github.com/goliatone/go-sitecms/internal/settings"
)

const (
	MediaImage = "image"
	MediaVideo = "video"
)

var mediaTypes = []any{MediaImage, MediaVideo}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// optionalURL accepts an empty string or an absolute URL. Site relative paths
// such as /favicon.ico are accepted too.
var optionalURL = validation.By(func(value any) error {
	s, _ := value.(string)
	if s == "" || s[0] == '/' {
		return nil
	}
	return is.URL.Validate(s)
})

// GeneralSettings is settings/general: branding and social links.
type GeneralSettings struct {
	WebsiteName       string `json:"website_name"`
	Logo              string `json:"logo"`
	Favicon           string `json:"favicon"`
	FooterDescription string `json:"footer_description"`
	FacebookURL       string `json:"facebook_url"`
	InstagramURL      string `json:"instagram_url"`
	TwitterURL        string `json:"twitter_url"`
	LinkedInURL       string `json:"linkedin_url"`
	YouTubeURL        string `json:"youtube_url"`
}

func (g GeneralSettings) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.WebsiteName, validation.Required, validation.Length(1, 120)),
		validation.Field(&g.Logo, optionalURL),
		validation.Field(&g.Favicon, optionalURL),
		validation.Field(&g.FacebookURL, optionalURL),
		validation.Field(&g.InstagramURL, optionalURL),
		validation.Field(&g.TwitterURL, optionalURL),
		validation.Field(&g.LinkedInURL, optionalURL),
		validation.Field(&g.YouTubeURL, optionalURL),
	)
}

// ThemeSettings is webSettings/global. Colors are HSL triples; hex swatches
// are accepted on update and converted.
type ThemeSettings struct {
	ThemeColors colors.Modes `json:"themeColors"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}

func (t ThemeSettings) Validate() error {
	issues := validation.Errors{}
	if _, err := t.ThemeColors.Light.Normalize(); err != nil {
		issues["themeColors.light"] = err
	}
	if _, err := t.ThemeColors.Dark.Normalize(); err != nil {
		issues["themeColors.dark"] = err
	}
	return issues.Filter()
}

// VantaSection configures the animated background of one page section.
type VantaSection struct {
	Enabled bool   `json:"enabled"`
	Effect  string `json:"effect"`
	Color1  string `json:"color1"`
	Color2  string `json:"color2"`
}

func (v VantaSection) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Effect, validation.Required),
		validation.Field(&v.Color1, validation.Match(hexColor)),
		validation.Field(&v.Color2, validation.Match(hexColor)),
	)
}

// VantaSettings is settings/vanta. Sections stay stored while GlobalEnable
// is off.
type VantaSettings struct {
	GlobalEnable bool                    `json:"globalEnable"`
	Sections     map[string]VantaSection `json:"sections"`
}

func (v VantaSettings) Validate() error {
	return validation.ValidateStruct(&v, validation.Field(&v.Sections))
}

// SectionActive reports whether the background of section renders.
func (v VantaSettings) SectionActive(section string) bool {
	cfg, ok := v.Sections[section]
	return v.GlobalEnable && ok && cfg.Enabled
}

// MarketingTag is one optional tracking integration.
type MarketingTag struct {
	Enabled bool   `json:"enabled"`
	Value   string `json:"value"`
}

func (m MarketingTag) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Value, validation.When(m.Enabled, validation.Required)),
	)
}

// MarketingSettings is settings/marketing.
type MarketingSettings struct {
	GoogleTagManagerID    MarketingTag `json:"googleTagManagerId"`
	GoogleAnalyticsID     MarketingTag `json:"googleAnalyticsId"`
	GoogleAdsID           MarketingTag `json:"googleAdsId"`
	GoogleAdsLabel        MarketingTag `json:"googleAdsLabel"`
	GoogleRemarketing     MarketingTag `json:"googleRemarketing"`
	GoogleOptimizeID      MarketingTag `json:"googleOptimizeId"`
	MetaPixelID           MarketingTag `json:"metaPixelId"`
	MetaPixelAccessToken  MarketingTag `json:"metaPixelAccessToken"`
	MetaConversionsAPIKey MarketingTag `json:"metaConversionsApiKey"`
	BingUETTagID          MarketingTag `json:"bingUetTagId"`
	PinterestTagID        MarketingTag `json:"pinterestTagId"`
	CustomHeadScript      MarketingTag `json:"customHeadScript"`
	CustomBodyScript      MarketingTag `json:"customBodyScript"`
}

func (m MarketingSettings) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.GoogleTagManagerID),
		validation.Field(&m.GoogleAnalyticsID),
		validation.Field(&m.GoogleAdsID),
		validation.Field(&m.GoogleAdsLabel),
		validation.Field(&m.GoogleRemarketing),
		validation.Field(&m.GoogleOptimizeID),
		validation.Field(&m.MetaPixelID),
		validation.Field(&m.MetaPixelAccessToken),
		validation.Field(&m.MetaConversionsAPIKey),
		validation.Field(&m.BingUETTagID),
		validation.Field(&m.PinterestTagID),
		validation.Field(&m.CustomHeadScript),
		validation.Field(&m.CustomBodyScript),
	)
}

// PaymentSettings is settings/payments. The secret never leaves the admin
// API.
type PaymentSettings struct {
	KeyID                string `json:"razorpay_key_id"`
	KeySecret            string `json:"razorpay_key_secret"`
	EnableOnlinePayments bool   `json:"enable_online_payments"`
	EnablePayLater       bool   `json:"enable_pay_later"`
}

func (p PaymentSettings) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.KeyID, validation.When(p.EnableOnlinePayments, validation.Required)),
	)
}

// Configured reports whether gateway credentials are present.
func (p PaymentSettings) Configured() bool {
	return p.KeyID != "" && p.KeySecret != ""
}

// PublicPaymentConfig is what the checkout page may see.
type PublicPaymentConfig struct {
	KeyID                string `json:"razorpay_key_id"`
	EnableOnlinePayments bool   `json:"enable_online_payments"`
	EnablePayLater       bool   `json:"enable_pay_later"`
}

func (p PaymentSettings) Public() PublicPaymentConfig {
	return PublicPaymentConfig{
		KeyID:                p.KeyID,
		EnableOnlinePayments: p.EnableOnlinePayments,
		EnablePayLater:       p.EnablePayLater,
	}
}

// EmailSettings is settings/email, the SMTP relay used for notifications.
type EmailSettings struct {
	Host        string `json:"smtp_host"`
	Port        int    `json:"smtp_port"`
	User        string `json:"smtp_user"`
	Password    string `json:"smtp_password"`
	SenderEmail string `json:"smtp_sender_email"`
}

func (e EmailSettings) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Host, validation.Required),
		validation.Field(&e.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&e.SenderEmail, validation.Required, is.EmailFormat),
	)
}

// Complete reports whether every field needed to send mail is set.
func (e EmailSettings) Complete() bool {
	return e.Host != "" && e.User != "" && e.Password != "" && e.SenderEmail != ""
}

// Secure is the implicit TLS convention: only port 465.
func (e EmailSettings) Secure() bool {
	return e.Port == 465
}

// Redacted hides the SMTP password.
func (e EmailSettings) Redacted() EmailSettings {
	e.Password = ""
	return e
}

// ContactDetails is settings/contact.
type ContactDetails struct {
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	WhatsAppNumber string `json:"whatsAppNumber"`
}

func (c ContactDetails) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.EmailFormat),
		validation.Field(&c.Phone, validation.Required),
		validation.Field(&c.WhatsAppNumber, is.Digit),
	)
}

// HomeContent is pages/home.
type HomeContent struct {
	HeroMediaURL  string `json:"hero_media_url"`
	HeroMediaType string `json:"hero_media_type"`
}

func (h HomeContent) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.HeroMediaURL, validation.Required, optionalURL),
		validation.Field(&h.HeroMediaType, validation.In(mediaTypes...)),
	)
}

// AboutContent is pages/about.
type AboutContent struct {
	MissionTitle       string `json:"mission_title"`
	MissionDescription string `json:"mission_description"`
	MissionImage       string `json:"mission_image"`
	StackTitle         string `json:"stack_title"`
	StackDescription   string `json:"stack_description"`
}

func (a AboutContent) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.MissionTitle, validation.Required),
		validation.Field(&a.MissionImage, optionalURL),
		validation.Field(&a.StackTitle, validation.Required),
	)
}

// Skill is an item of the top level skills collection owned by the about page.
type Skill struct {
	settings.Meta
	Name string `json:"name"`
}

func (s Skill) Validate() error {
	return validation.ValidateStruct(&s, validation.Field(&s.Name, validation.Required))
}

// WhyChooseUsContent is pages/why-choose-us.
type WhyChooseUsContent struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	MediaURL  string `json:"media_url"`
	MediaType string `json:"media_type"`
}

func (w WhyChooseUsContent) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Title, validation.Required),
		validation.Field(&w.MediaURL, optionalURL),
		validation.Field(&w.MediaType, validation.In(mediaTypes...)),
	)
}

// Feature is an item of pages/why-choose-us/features.
type Feature struct {
	settings.Meta
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (f Feature) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Icon, validation.Required),
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Description, validation.Required),
	)
}

// SectionContent is the heading copy of a page section such as
// pages/services-section.
type SectionContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

func (s SectionContent) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required),
	)
}

// NamedFeature is a bullet of a service or pricing plan.
type NamedFeature struct {
	Name string `json:"name"`
}

// Service is an item of the services collection.
type Service struct {
	settings.Meta
	Icon         string         `json:"icon"`
	Title        string         `json:"title"`
	Price        string         `json:"price"`
	Description  string         `json:"description"`
	MediaURL     string         `json:"mediaUrl"`
	MediaType    string         `json:"mediaType"`
	Features     []NamedFeature `json:"features"`
	DisplayOrder int            `json:"displayOrder,omitempty"`
}

func (s Service) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required),
		validation.Field(&s.Description, validation.Required),
		validation.Field(&s.MediaURL, optionalURL),
		validation.Field(&s.MediaType, validation.In(mediaTypes...)),
		validation.Field(&s.DisplayOrder, validation.Min(0)),
	)
}

// PortfolioItem is an item of the portfolio_items collection.
type PortfolioItem struct {
	settings.Meta
	Title        string `json:"title"`
	Category     string `json:"category"`
	MediaType    string `json:"mediaType"`
	MediaURL     string `json:"mediaUrl"`
	Link         string `json:"link,omitempty"`
	DisplayOrder int    `json:"displayOrder,omitempty"`
}

func (p PortfolioItem) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.MediaURL, validation.Required, optionalURL),
		validation.Field(&p.MediaType, validation.In(mediaTypes...)),
		validation.Field(&p.Link, optionalURL),
		validation.Field(&p.DisplayOrder, validation.Min(0)),
	)
}

// PricingPlan is an item of the pricing_plans collection.
type PricingPlan struct {
	settings.Meta
	Title        string         `json:"title"`
	Price        string         `json:"price"`
	Description  string         `json:"description"`
	IsFeatured   bool           `json:"is_featured"`
	Features     []NamedFeature `json:"features"`
	DisplayOrder int            `json:"displayOrder,omitempty"`
}

func (p PricingPlan) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Price, validation.Required),
		validation.Field(&p.DisplayOrder, validation.Min(0)),
	)
}

// FAQ is an item of the faqs collection.
type FAQ struct {
	settings.Meta
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (f FAQ) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Question, validation.Required),
		validation.Field(&f.Answer, validation.Required),
	)
}

// LegalPage is legal_pages/{slug}. Content is Markdown.
type LegalPage struct {
	settings.Meta
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

func (l LegalPage) Validate() error {
	return validation.ValidateStruct(&l, validation.Field(&l.Content, validation.Required))
}

// RenderedLegalPage is the public shape with HTML content.
type RenderedLegalPage struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	HTML  string `json:"html"`
}

// PageSEO is page_seo/{page}.
type PageSEO struct {
	H1Title         string `json:"h1_title"`
	Paragraph       string `json:"paragraph"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
}

func (p PageSEO) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.H1Title, validation.Required),
		validation.Field(&p.MetaTitle, validation.Required, validation.Length(1, 70)),
		validation.Field(&p.MetaDescription, validation.Required, validation.Length(1, 160)),
	)
}

// Testimonial is an item of the testimonials collection.
type Testimonial struct {
	settings.Meta
	Name        string `json:"name"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
	Image       string `json:"image"`
}

func (t Testimonial) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required, validation.Length(2, 0).Error("Name must be at least 2 characters.")),
		validation.Field(&t.Description, validation.Required, validation.Length(10, 0).Error("Review must be at least 10 characters.")),
		validation.Field(&t.Rating, validation.Min(1), validation.Max(5)),
		validation.Field(&t.Image, is.URL),
	)
}

// Order statuses.
const (
	OrderCompleted = "completed"
	OrderFailed    = "failed"
)

// Order is an item of the orders collection, one per terminal checkout
// attempt. Signature is only kept for completed orders.
type Order struct {
	settings.Meta
	CustomerName      string  `json:"customer_name"`
	CustomerEmail     string  `json:"customer_email"`
	PlanTitle         string  `json:"plan_title"`
	Amount            float64 `json:"amount"`
	RazorpayPaymentID string  `json:"razorpay_payment_id"`
	RazorpayOrderID   string  `json:"razorpay_order_id"`
	RazorpaySignature string  `json:"razorpay_signature,omitempty"`
	Status            string  `json:"status"`
}

func (o Order) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.CustomerName, validation.Required),
		validation.Field(&o.CustomerEmail, validation.Required, is.EmailFormat),
		validation.Field(&o.PlanTitle, validation.Required),
		validation.Field(&o.Amount, validation.Required, validation.Min(0.0)),
		validation.Field(&o.Status, validation.Required, validation.In(OrderCompleted, OrderFailed)),
	)
}

// Submission is an item of the contact_submissions collection.
type Submission struct {
	settings.Meta
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Budget  *string `json:"budget"`
	Message string  `json:"message"`
}

func (s Submission) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.Email, validation.Required, is.EmailFormat),
		validation.Field(&s.Message, validation.Required),
	)
}

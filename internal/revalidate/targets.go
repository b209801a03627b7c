package revalidate

import "strings"

// Scope tells the renderer whether only the page output or the whole
// layout subtree under Path is stale.
type Scope string

const (
	ScopePage   Scope = "page"
	ScopeLayout Scope = "layout"
)

// Target is one path the rendering layer must recompute.
type Target struct {
	Path  string `json:"path"`
	Scope Scope  `json:"type"`
}

func Page(path string) Target   { return Target{Path: path, Scope: ScopePage} }
func Layout(path string) Target { return Target{Path: path, Scope: ScopeLayout} }

// SiteWide invalidates every rendered page.
var SiteWide = Layout("/")

// Content types with a fixed set of dependent routes.
const (
	General      = "general"
	Theme        = "theme"
	Vanta        = "vanta"
	Marketing    = "marketing"
	Home         = "home"
	About        = "about"
	Contact      = "contact"
	Services     = "services"
	Portfolio    = "portfolio"
	Pricing      = "pricing"
	FAQ          = "faq"
	WhyChooseUs  = "why-choose-us"
	Payments     = "payments"
	Email        = "email"
	Testimonials = "testimonials"
	Orders       = "orders"
	Submissions  = "submissions"
	Import       = "import"
)

const (
	adminSettings     = "/admin/settings"
	adminSEO          = "/admin/seo-geo-settings"
	adminTestimonials = "/admin/testimonials"
	adminOrders       = "/admin/orders"
	adminDashboard    = "/admin/dashboard"
	adminSubmissions  = "/admin/submissions"
)

var routeTable = map[string][]Target{
	General:      {SiteWide},
	Theme:        {SiteWide},
	Vanta:        {SiteWide},
	Marketing:    {SiteWide},
	Home:         {Page("/")},
	About:        {Page("/about")},
	Contact:      {Page("/contact"), Page("/")},
	Services:     {Page("/services"), Page("/")},
	Portfolio:    {Page("/portfolio"), Page("/")},
	Pricing:      {Page("/pricing"), Page("/")},
	FAQ:          {Page("/")},
	WhyChooseUs:  {Page("/"), Page(adminSettings)},
	Payments:     {Page("/pricing"), Page(adminSettings)},
	Email:        {Page(adminSettings)},
	Testimonials: {Page(adminTestimonials), Page("/")},
	Orders:       {Page(adminOrders), Page(adminDashboard)},
	Submissions:  {Page(adminDashboard), Page(adminSubmissions)},
	Import:       {SiteWide},
}

// TargetsFor returns the routes depending on a content type. Unknown types
// yield nil.
func TargetsFor(contentType string) []Target {
	targets := routeTable[contentType]
	if len(targets) == 0 {
		return nil
	}
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}

// PagePath maps a page key to its public route; "home" is the site root.
func PagePath(page string) string {
	page = strings.Trim(strings.TrimSpace(page), "/")
	if page == "" || page == "home" {
		return "/"
	}
	return "/" + page
}

// SEOTargets covers a per-page SEO record: the page, its metadata layout
// and the admin SEO screen.
func SEOTargets(page string) []Target {
	path := PagePath(page)
	return []Target{Page(path), Layout(path), Page(adminSEO)}
}

// LegalTargets covers a legal page rendered at /{slug}.
func LegalTargets(slug string) []Target {
	return []Target{Page(PagePath(slug))}
}

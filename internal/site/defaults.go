package site

import (
	"github.com/goliatone/go-sitecms/internal/colors"
)

const (
	DefaultSiteName  = "WebDesignBro"
	placeholderWide  = "https://placehold.co/600x400.png"
	placeholderTall  = "https://placehold.co/600x800.png"
	placeholderHero  = "https://placehold.co/800x600.png"
	defaultFavicon   = "/favicon.ico"
	defaultVantaHex1 = "#0055ff"
	defaultVantaHex2 = "#00aaff"
)

func defaultGeneral() GeneralSettings {
	return GeneralSettings{
		WebsiteName:       DefaultSiteName,
		Favicon:           defaultFavicon,
		FooterDescription: "Crafting high-performance websites with modern technology.",
	}
}

func defaultTheme() ThemeSettings {
	return ThemeSettings{ThemeColors: colors.DefaultModes()}
}

// VantaSectionNames lists the page sections that can carry a background.
var VantaSectionNames = []string{
	"hero", "services", "whyChooseUs", "portfolio", "pricing",
	"testimonials", "faq", "contact", "footer",
}

func defaultVanta() VantaSettings {
	sections := make(map[string]VantaSection, len(VantaSectionNames))
	for _, name := range VantaSectionNames {
		sections[name] = VantaSection{Effect: "WAVES", Color1: defaultVantaHex1, Color2: defaultVantaHex2}
	}
	sections["hero"] = VantaSection{Enabled: true, Effect: "GLOBE", Color1: defaultVantaHex1, Color2: defaultVantaHex2}
	return VantaSettings{GlobalEnable: true, Sections: sections}
}

func defaultMarketing() MarketingSettings {
	return MarketingSettings{}
}

func defaultPayments() PaymentSettings {
	return PaymentSettings{
		KeyID:                "rzp_test_12345",
		KeySecret:            "your_secret_key",
		EnableOnlinePayments: true,
	}
}

func defaultEmail() EmailSettings {
	return EmailSettings{
		Host:        "smtp.example.com",
		Port:        587,
		User:        "user@example.com",
		Password:    "your-password",
		SenderEmail: "noreply@example.com",
	}
}

func defaultContact() ContactDetails {
	return ContactDetails{
		Email:          "wecanfix.in@gmail.com",
		Phone:          "+917353145565",
		Location:       "Bengaluru, India",
		WhatsAppNumber: "917353145565",
	}
}

func defaultHome() HomeContent {
	return HomeContent{HeroMediaURL: placeholderHero, HeroMediaType: MediaImage}
}

func defaultAbout() AboutContent {
	return AboutContent{
		MissionTitle:       "Our Mission",
		MissionDescription: "At WebDesignBro, our mission is to empower businesses...",
		MissionImage:       placeholderTall,
		StackTitle:         "Our Tech Stack",
		StackDescription:   "We use a modern, robust tech stack...",
	}
}

func defaultSkills() []Skill {
	return []Skill{{Name: "Next.js"}, {Name: "React"}, {Name: "Firebase"}}
}

func defaultWhyChooseUs() WhyChooseUsContent {
	return WhyChooseUsContent{
		Title:     "Why Choose WebDesignBro?",
		Subtitle:  "We are committed to delivering excellence and innovation in every project.",
		MediaURL:  placeholderTall,
		MediaType: MediaImage,
	}
}

func defaultFeatures() []Feature {
	return []Feature{
		{Icon: "Zap", Title: "Blazing Fast Performance", Description: "We build websites with Next.js for optimal speed and user experience."},
		{Icon: "Smartphone", Title: "Fully Responsive Design", Description: "Your website will look perfect on all devices, from desktops to smartphones."},
		{Icon: "Search", Title: "SEO-Optimized", Description: "Built-in SEO best practices to help you rank higher on search engines."},
		{Icon: "CircleCheckBig", Title: "Modern Tech Stack", Description: "Leveraging the power of React, Next.js, and Tailwind CSS for robust solutions."},
	}
}

func defaultServicesSection() SectionContent {
	return SectionContent{
		Title:    "Our Services",
		Subtitle: "We offer a wide range of web development services to meet your business needs.",
	}
}

func defaultServices() []Service {
	return []Service{{
		Icon:         "Briefcase",
		Title:        "Business Websites",
		Price:        "Starting at ₹4999",
		Description:  "A professional online presence is crucial. We build beautiful, fast, and secure websites that represent your brand and attract customers.",
		MediaURL:     placeholderWide,
		MediaType:    MediaImage,
		Features:     []NamedFeature{{Name: "Custom Design"}, {Name: "Mobile-Friendly"}},
		DisplayOrder: 1,
	}}
}

func defaultPortfolioSection() SectionContent {
	return SectionContent{
		Title:    "Our Recent Work",
		Subtitle: "Check out some of the stunning websites we've delivered to our clients.",
	}
}

func defaultPricingPage() SectionContent {
	return SectionContent{
		Title:    "Flexible Pricing Plans",
		Subtitle: "Choose a plan that fits your needs. All plans include one year of free support.",
	}
}

func defaultPricingPlans() []PricingPlan {
	return []PricingPlan{
		{
			Title:        "Basic",
			Price:        "₹4999",
			Description:  "Perfect for personal sites or small businesses.",
			Features:     []NamedFeature{{Name: "Up to 5 Pages"}, {Name: "Responsive Design"}},
			DisplayOrder: 1,
		},
		{
			Title:        "Business Pro",
			Price:        "₹9999",
			Description:  "Ideal for growing businesses and professionals.",
			IsFeatured:   true,
			Features:     []NamedFeature{{Name: "Up to 10 Pages"}, {Name: "Blog Integration"}},
			DisplayOrder: 2,
		},
	}
}

func defaultFAQs() []FAQ {
	return []FAQ{
		{
			Question: "What is the typical timeline for a new website?",
			Answer:   "A basic website typically takes 1-2 weeks. More complex projects like e-commerce stores or custom applications can take 4-8 weeks or more, depending on the requirements.",
		},
		{
			Question: "Do you provide website hosting?",
			Answer:   "While we don't host websites directly, we deploy all our projects to Vercel, a world-class hosting platform. We can also help you configure your custom domain.",
		},
		{
			Question: "What kind of support do you offer after the website is launched?",
			Answer:   "We offer one year of free technical support for all our projects. This includes bug fixes and assistance with any technical issues. We also offer paid maintenance plans for ongoing content updates and feature enhancements.",
		},
	}
}

// Legal page slugs seeded on first listing.
const (
	LegalTerms        = "terms"
	LegalPrivacy      = "privacy-policy"
	LegalCancellation = "cancellation-policy"
	LegalRefund       = "refund-policy"
)

func defaultLegalPages() map[string]LegalPage {
	page := func(slug, title, subject string) LegalPage {
		return LegalPage{Title: title, Slug: slug, Content: "Please add your " + subject + " here."}
	}
	return map[string]LegalPage{
		LegalTerms:        page(LegalTerms, "Terms and Conditions", "terms and conditions"),
		LegalPrivacy:      page(LegalPrivacy, "Privacy Policy", "privacy policy"),
		LegalCancellation: page(LegalCancellation, "Cancellation Policy", "cancellation policy"),
		LegalRefund:       page(LegalRefund, "Refund Policy", "refund policy"),
	}
}

// SEO page keys with built-in defaults.
const (
	SEOHome      = "home"
	SEOServices  = "services"
	SEOPortfolio = "portfolio"
	SEOPricing   = "pricing"
	SEOAbout     = "about"
	SEOContact   = "contact"
)

func defaultSEO() map[string]PageSEO {
	return map[string]PageSEO{
		SEOHome: {
			H1Title:         "Stunning Websites that Convert",
			Paragraph:       "We design and build fast, responsive, and SEO-optimized websites that help your business grow. Get a custom quote today.",
			MetaTitle:       "WebDesignBro - Custom Web Design Services",
			MetaDescription: "High-performance, SEO-optimized, and mobile-friendly websites built with Next.js. We offer custom web design, e-commerce solutions, and more.",
			MetaKeywords:    "web design, next.js developer, bangalore, india, custom websites",
		},
		SEOServices: {
			H1Title:         "What We Offer",
			Paragraph:       "From simple landing pages to complex web applications, we have a solution for you.",
			MetaTitle:       "Our Services | WebDesignBro",
			MetaDescription: "We offer a wide range of web design and development services, including business websites, e-commerce stores, and custom dashboards.",
			MetaKeywords:    "web development, e-commerce, custom dashboards, business websites",
		},
		SEOPortfolio: {
			H1Title:         "Our Portfolio",
			Paragraph:       "A glimpse into the quality and creativity we bring to every project.",
			MetaTitle:       "Portfolio | WebDesignBro",
			MetaDescription: "Explore our portfolio of successfully launched websites, from e-commerce stores to corporate pages.",
			MetaKeywords:    "portfolio, web design projects, e-commerce examples",
		},
		SEOPricing: {
			H1Title:         "Our Pricing",
			Paragraph:       "Transparent and affordable pricing for top-quality web design services.",
			MetaTitle:       "Pricing | WebDesignBro",
			MetaDescription: "Find the perfect plan for your web design needs. We offer flexible pricing for businesses of all sizes.",
			MetaKeywords:    "website pricing, web design cost, affordable websites",
		},
		SEOAbout: {
			H1Title:         "About WebDesignBro",
			Paragraph:       "We are passionate about building beautiful, functional, and high-performance web experiences.",
			MetaTitle:       "About Us | WebDesignBro",
			MetaDescription: "Learn more about WebDesignBro, our mission, and the technologies we use to build amazing websites.",
			MetaKeywords:    "about us, web design company, our mission",
		},
		SEOContact: {
			H1Title:         "Get in Touch",
			Paragraph:       "We're here to help you turn your ideas into reality. Reach out to us for a free consultation.",
			MetaTitle:       "Contact Us | WebDesignBro",
			MetaDescription: "Get in touch with WebDesignBro for a free quote or to discuss your project. We are available via email, phone, or WhatsApp.",
			MetaKeywords:    "contact us, free quote, web design consultation",
		},
	}
}

func defaultTestimonials() []Testimonial {
	return []Testimonial{{
		Name:        "Jane Doe",
		Description: "This is a fantastic service! Highly recommended to everyone looking for a professional website.",
		Rating:      5,
	}}
}

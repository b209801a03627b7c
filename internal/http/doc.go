// Package http serves the site over net/http.
//
// Admin routes mount under /admin/api and require a bearer token accepted by
// the authorization policy:
//   - Settings modules: /settings/{module}
//   - SEO: /seo, /seo/{page}, /seo/meta-description
//   - Legal pages: /legal, /legal/{slug}
//   - Testimonials: /testimonials, /testimonials/{id}
//   - Orders and submissions: /orders/{id}, /submissions/{id}
//   - Tools: /dashboard, /revalidations, /export, /import
//
// Public routes serve the read models under /api along with the checkout and
// contact workflows. /api/openapi.json describes every registered route.
package http

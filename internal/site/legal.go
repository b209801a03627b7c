package site

import (
	"context"
	"html"
	"strings"

	"github.com/goliatone/go-sitecms/internal/settings"
)

// LegalPages lists the legal pages, seeding the defaults on first use.
func (s *Site) LegalPages(ctx context.Context) ([]LegalPage, error) {
	entries, err := s.Legal.List(ctx)
	if err != nil {
		return nil, err
	}
	pages := make([]LegalPage, 0, len(entries))
	for _, entry := range entries {
		page := entry.Value
		if page.Slug == "" {
			page.Slug = entry.Key
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// LegalSlugs returns the slugs for the sitemap. Store failures yield the
// default slugs.
func (s *Site) LegalSlugs(ctx context.Context) []string {
	pages, err := s.LegalPages(ctx)
	if err != nil {
		s.logger.Warn("site.legal.fallback", "error", err)
		return s.Legal.Keys()
	}
	slugs := make([]string, 0, len(pages))
	for _, page := range pages {
		slugs = append(slugs, page.Slug)
	}
	return slugs
}

// UpdateLegalContent replaces the Markdown content of one page.
func (s *Site) UpdateLegalContent(ctx context.Context, slug, content string) (LegalPage, error) {
	if _, err := s.Legal.Get(ctx, slug); err != nil {
		return LegalPage{}, err
	}
	return s.Legal.Update(ctx, slug, LegalPage{Content: content})
}

// RenderedLegalPage returns the page with its content rendered to HTML.
func (s *Site) RenderedLegalPage(ctx context.Context, slug string) (RenderedLegalPage, error) {
	page, err := s.Legal.Get(ctx, slug)
	if err != nil {
		return RenderedLegalPage{}, err
	}
	if page.Slug == "" {
		page.Slug = page.ID
	}
	out, err := s.markdown.RenderString(page.Content)
	if err != nil {
		s.logger.Warn("site.legal.render_failed", "slug", page.Slug, "error", err)
		out = "<p>" + strings.ReplaceAll(html.EscapeString(page.Content), "\n", "<br>") + "</p>"
	}
	return RenderedLegalPage{Title: page.Title, Slug: page.Slug, HTML: out}, nil
}

// SEOPages returns the record of every page with built-in defaults, seeding
// missing ones.
func (s *Site) SEOPages(ctx context.Context) ([]settings.Entry[PageSEO], error) {
	keys := s.SEO.Keys()
	out := make([]settings.Entry[PageSEO], 0, len(keys))
	for _, key := range keys {
		value, err := s.SEO.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		out = append(out, settings.Entry[PageSEO]{Key: key, Value: value})
	}
	return out, nil
}

// PublicSEO serves page metadata. Store failures and unknown pages fall back
// to the defaults.
func (s *Site) PublicSEO(ctx context.Context, page string) PageSEO {
	value, _ := s.SEO.GetOrDefault(ctx, page)
	return value
}

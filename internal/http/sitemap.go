package http

import (
	"encoding/xml"
	"net/http"
	"time"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

var staticPages = []string{"/", "/about", "/services", "/portfolio", "/pricing", "/contact"}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// sitemapPaths lists the static pages followed by every legal page, without
// duplicates.
func sitemapPaths(legalSlugs []string) []string {
	seen := make(map[string]struct{}, len(staticPages)+len(legalSlugs))
	out := make([]string, 0, len(staticPages)+len(legalSlugs))
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	for _, page := range staticPages {
		add(page)
	}
	for _, slug := range legalSlugs {
		if slug != "" {
			add("/" + slug)
		}
	}
	return out
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	lastMod := s.now().UTC().Format(time.RFC3339)
	set := urlSet{XMLNS: sitemapNamespace}
	for _, path := range sitemapPaths(s.site.LegalSlugs(r.Context())) {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.publicBaseURL + path,
			LastMod:    lastMod,
			ChangeFreq: "daily",
			Priority:   "0.8",
		})
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(body)
}

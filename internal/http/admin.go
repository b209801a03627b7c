package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/goliatone/go-sitecms/internal/inquiries"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/internal/transfer"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

type legalUpdatePayload struct {
	Content string `json:"content"`
}

func (s *Server) registerSettingsRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "settings")
	s.adminRoute(mux, "GET "+root, s.handleSettingsIndex)
	s.adminRoute(mux, "GET "+root+"/{module}", s.handleSettingsGet)
	s.adminRoute(mux, "PUT "+root+"/{module}", s.handleSettingsPut)
}

func (s *Server) handleSettingsIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"modules": s.site.Registry().Names()})
}

func (s *Server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	value, err := s.site.Registry().Load(r.Context(), r.PathValue("module"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, value)
}

func (s *Server) handleSettingsPut(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	saved, err := s.site.Registry().Save(r.Context(), r.PathValue("module"), json.RawMessage(raw))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) registerSEORoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "seo")
	s.adminRoute(mux, "GET "+root, s.handleSEOList)
	s.adminRoute(mux, "GET "+root+"/{page}", s.handleSEOGet)
	s.adminRoute(mux, "PUT "+root+"/{page}", s.handleSEOPut)
	s.adminRoute(mux, "POST "+root+"/meta-description", s.handleMetaDescription)
}

func (s *Server) handleSEOList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.site.SEOPages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSEOGet(w http.ResponseWriter, r *http.Request) {
	value, err := s.site.SEO.Get(r.Context(), r.PathValue("page"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, value)
}

func (s *Server) handleSEOPut(w http.ResponseWriter, r *http.Request) {
	var payload site.PageSEO
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}
	saved, err := s.site.SEO.Update(r.Context(), r.PathValue("page"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleMetaDescription(w http.ResponseWriter, r *http.Request) {
	if s.metagen == nil {
		unavailable(w, "meta description generation")
		return
	}
	var payload interfaces.MetaDescriptionInput
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}
	out, err := s.metagen.Generate(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) registerLegalRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "legal")
	s.adminRoute(mux, "GET "+root, s.handleLegalList)
	s.adminRoute(mux, "GET "+root+"/{slug}", s.handleLegalGet)
	s.adminRoute(mux, "PUT "+root+"/{slug}", s.handleLegalPut)
}

func (s *Server) handleLegalList(w http.ResponseWriter, r *http.Request) {
	pages, err := s.site.LegalPages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

func (s *Server) handleLegalGet(w http.ResponseWriter, r *http.Request) {
	page, err := s.site.Legal.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleLegalPut(w http.ResponseWriter, r *http.Request) {
	var payload legalUpdatePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}
	page, err := s.site.UpdateLegalContent(r.Context(), r.PathValue("slug"), payload.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) registerRecordRoutes(mux *http.ServeMux, base string) {
	testimonials := joinPath(base, "testimonials")
	s.adminRoute(mux, "GET "+testimonials, s.handleTestimonialList)
	s.adminRoute(mux, "POST "+testimonials, s.handleTestimonialCreate)
	s.adminRoute(mux, "PUT "+testimonials+"/{id}", s.handleTestimonialUpdate)
	s.adminRoute(mux, "DELETE "+testimonials+"/{id}", s.handleTestimonialDelete)

	orders := joinPath(base, "orders")
	s.adminRoute(mux, "GET "+orders, s.handleOrderList)
	s.adminRoute(mux, "DELETE "+orders+"/{id}", s.handleOrderDelete)

	submissions := joinPath(base, "submissions")
	s.adminRoute(mux, "GET "+submissions, s.handleSubmissionList)
	s.adminRoute(mux, "DELETE "+submissions+"/{id}", s.handleSubmissionDelete)
}

func (s *Server) handleTestimonialList(w http.ResponseWriter, r *http.Request) {
	items, err := s.site.Testimonials.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleTestimonialCreate(w http.ResponseWriter, r *http.Request) {
	var payload site.Testimonial
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}
	created, err := s.site.Testimonials.Create(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleTestimonialUpdate(w http.ResponseWriter, r *http.Request) {
	var payload site.Testimonial
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}
	updated, err := s.site.Testimonials.Update(r.Context(), r.PathValue("id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleTestimonialDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.site.Testimonials.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOrderList(w http.ResponseWriter, r *http.Request) {
	if s.checkout == nil {
		unavailable(w, "checkout")
		return
	}
	orders, err := s.checkout.Orders(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleOrderDelete(w http.ResponseWriter, r *http.Request) {
	if s.checkout == nil {
		unavailable(w, "checkout")
		return
	}
	if err := s.checkout.DeleteOrder(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmissionList(w http.ResponseWriter, r *http.Request) {
	if s.inquiries == nil {
		unavailable(w, "contact submissions")
		return
	}
	items, err := s.inquiries.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleSubmissionDelete(w http.ResponseWriter, r *http.Request) {
	if s.inquiries == nil {
		unavailable(w, "contact submissions")
		return
	}
	if err := s.inquiries.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeErrorMessage(w, err, inquiries.PublicMessage(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) registerToolRoutes(mux *http.ServeMux, base string) {
	s.adminRoute(mux, "GET "+joinPath(base, "dashboard"), s.handleDashboard)
	s.adminRoute(mux, "GET "+joinPath(base, "revalidations"), s.handleRevalidations)
	s.adminRoute(mux, "GET "+joinPath(base, "export"), s.handleExport)
	s.adminRoute(mux, "POST "+joinPath(base, "import"), s.handleImport)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.site.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRevalidations(w http.ResponseWriter, _ *http.Request) {
	if s.revalidations == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, s.revalidations.Events())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.transfer == nil {
		unavailable(w, "export")
		return
	}
	snapshot, err := s.transfer.Export(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	filename := "site-export-" + s.now().UTC().Format(time.DateOnly) + ".json"
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if s.transfer == nil {
		unavailable(w, "import")
		return
	}
	raw, err := readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := s.transfer.Import(r.Context(), raw)
	if err != nil {
		writeErrorMessage(w, err, transfer.PublicMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

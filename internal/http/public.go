package http

import (
	"net/http"

	"github.com/goliatone/go-sitecms/internal/checkout"
	"github.com/goliatone/go-sitecms/internal/inquiries"
)

type createOrderPayload struct {
	Amount float64 `json:"amount"`
}

func (s *Server) registerPublicRoutes(mux *http.ServeMux) {
	s.publicRoute(mux, "GET /api/site/{module}", s.handlePublicModule)
	s.publicRoute(mux, "GET /api/seo/{page}", s.handlePublicSEO)
	s.publicRoute(mux, "GET /api/legal/{slug}", s.handlePublicLegal)
	s.publicRoute(mux, "GET /api/testimonials", s.handlePublicTestimonials)
	s.publicRoute(mux, "GET /api/payments/config", s.handlePaymentConfig)
	s.publicRoute(mux, "POST /api/checkout/orders", s.handleCreateOrder)
	s.publicRoute(mux, "POST /api/checkout/verify", s.handleVerifyPayment)
	s.publicRoute(mux, "POST /api/contact", s.handleContact)
	s.publicRoute(mux, "GET /theme.css", s.handleThemeCSS)
	s.publicRoute(mux, "GET /sitemap.xml", s.handleSitemap)
	s.publicRoute(mux, "GET /healthz", s.handleHealth)
	s.publicRoute(mux, "GET /api/openapi.json", s.handleOpenAPI)
}

func (s *Server) handlePublicModule(w http.ResponseWriter, r *http.Request) {
	value, err := s.site.Registry().LoadPublic(r.Context(), r.PathValue("module"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, value)
}

func (s *Server) handlePublicSEO(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.site.PublicSEO(r.Context(), r.PathValue("page")))
}

func (s *Server) handlePublicLegal(w http.ResponseWriter, r *http.Request) {
	page, err := s.site.RenderedLegalPage(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handlePublicTestimonials(w http.ResponseWriter, r *http.Request) {
	items, err := s.site.Testimonials.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handlePaymentConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.site.PublicPaymentConfig(r.Context()))
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	if s.checkout == nil {
		unavailable(w, "checkout")
		return
	}
	var payload createOrderPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, err, checkout.MessageInvalidData)
		return
	}
	order, err := s.checkout.CreateOrder(r.Context(), payload.Amount)
	if err != nil {
		writeErrorMessage(w, err, checkout.PublicMessage(err, checkout.MessageInitiateFailed))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"order": order})
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	if s.checkout == nil {
		unavailable(w, "checkout")
		return
	}
	var payload checkout.Payload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeErrorMessage(w, err, checkout.MessageInvalidData)
		return
	}
	order, err := s.checkout.VerifyAndSave(r.Context(), payload)
	if err != nil {
		writeErrorMessage(w, err, checkout.PublicMessage(err, checkout.MessageSaveFailed))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"order": order})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	if s.inquiries == nil {
		unavailable(w, "contact form")
		return
	}
	var form inquiries.Form
	if err := decodeJSON(w, r, &form); err != nil {
		writeErrorMessage(w, err, inquiries.MessageInvalidForm)
		return
	}
	saved, err := s.inquiries.Submit(r.Context(), form)
	if err != nil {
		writeErrorMessage(w, err, inquiries.PublicMessage(err))
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleThemeCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.site.StyleSheet(r.Context())))
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.api)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

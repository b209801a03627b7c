package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-sitecms/internal/auth"
	"github.com/goliatone/go-sitecms/internal/checkout"
	"github.com/goliatone/go-sitecms/internal/inquiries"
	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/openapi"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/internal/transfer"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	apiTitle     = "Site CMS API"
	apiVersion   = "1.0.0"
	bearerScheme = "bearer"
)

// Server exposes the admin and public APIs of a site.
type Server struct {
	basePath      string
	publicBaseURL string

	site          *site.Site
	checkout      *checkout.Service
	inquiries     *inquiries.Service
	transfer      *transfer.Service
	metagen       interfaces.MetaGenerator
	revalidations *revalidate.Recorder
	verifier      interfaces.TokenVerifier
	policy        interfaces.AuthorizationPolicy
	logger        interfaces.Logger
	now           func() time.Time
	api           *openapi.Document
}

// Option mutates the Server configuration.
type Option func(*Server)

// WithBasePath overrides the admin API path (defaults to "/admin/api").
func WithBasePath(path string) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			s.basePath = trimmed
		}
	}
}

// WithPublicBaseURL sets the origin used for sitemap locations.
func WithPublicBaseURL(url string) Option {
	return func(s *Server) {
		s.publicBaseURL = strings.TrimRight(strings.TrimSpace(url), "/")
	}
}

func WithCheckout(service *checkout.Service) Option {
	return func(s *Server) { s.checkout = service }
}

func WithInquiries(service *inquiries.Service) Option {
	return func(s *Server) { s.inquiries = service }
}

func WithTransfer(service *transfer.Service) Option {
	return func(s *Server) { s.transfer = service }
}

func WithMetaGenerator(generator interfaces.MetaGenerator) Option {
	return func(s *Server) { s.metagen = generator }
}

// WithRevalidations exposes the recorded markers on the admin API.
func WithRevalidations(recorder *revalidate.Recorder) Option {
	return func(s *Server) { s.revalidations = recorder }
}

// WithAuth protects the admin API. Without it admin routes answer 503.
func WithAuth(verifier interfaces.TokenVerifier, policy interfaces.AuthorizationPolicy) Option {
	return func(s *Server) {
		s.verifier = verifier
		s.policy = policy
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

func NewServer(st *site.Site, opts ...Option) *Server {
	if st == nil {
		panic("http: site is required")
	}
	s := &Server{
		basePath:      "/admin/api",
		publicBaseURL: "http://localhost:3000",
		site:          st,
		logger:        logging.NoOp(),
		now:           time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register attaches every route to mux.
func (s *Server) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if s == nil {
		return fmt.Errorf("http: server is nil")
	}

	s.api = openapi.NewDocument(apiTitle, apiVersion)
	s.api.AddBearerScheme(bearerScheme)

	base := joinPath(s.basePath, "")
	admin := http.NewServeMux()
	s.registerSettingsRoutes(admin, base)
	s.registerSEORoutes(admin, base)
	s.registerLegalRoutes(admin, base)
	s.registerRecordRoutes(admin, base)
	s.registerToolRoutes(admin, base)
	mux.Handle(base+"/", s.protect(admin))

	s.registerPublicRoutes(mux)
	return nil
}

func (s *Server) adminRoute(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	s.api.AddRoute(pattern, "admin", bearerScheme)
	mux.HandleFunc(pattern, handler)
}

func (s *Server) publicRoute(mux *http.ServeMux, pattern string, handler http.HandlerFunc) {
	s.api.AddRoute(pattern, "public", "")
	mux.HandleFunc(pattern, handler)
}

// Handler returns a mux with every route and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if err := s.Register(mux); err != nil {
		panic(err)
	}
	return s.logRequests(mux)
}

func (s *Server) protect(next http.Handler) http.Handler {
	if s.verifier == nil || s.policy == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{
				Error:   "service_unavailable",
				Message: "admin authentication is not configured",
			})
		})
	}
	return auth.Middleware(s.verifier, s.policy,
		auth.WithErrorWriter(writeAuthError),
		auth.WithMiddlewareLogger(s.logger),
	)(next)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := s.now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger := s.logger.WithContext(r.Context())
		args := []any{"method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", s.now().Sub(started)}
		if rec.status >= http.StatusInternalServerError {
			logger.Error("http.request.failed", args...)
			return
		}
		logger.Debug("http.request.completed", args...)
	})
}

func unavailable(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{
		Error:   "service_unavailable",
		Message: what + " is not configured",
	})
}

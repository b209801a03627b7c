package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-sitecms/internal/auth"
	"github.com/goliatone/go-sitecms/internal/checkout"
	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/inquiries"
	"github.com/goliatone/go-sitecms/internal/metagen"
	"github.com/goliatone/go-sitecms/internal/notify"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/internal/site"
	"github.com/goliatone/go-sitecms/internal/transfer"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

const (
	adminToken = "admin-token"
	adminEmail = "admin@example.com"
)

type stubGateway struct {
	order interfaces.GatewayOrder
	err   error
}

func (g stubGateway) CreateOrder(context.Context, interfaces.GatewayOrderRequest) (interfaces.GatewayOrder, error) {
	return g.order, g.err
}

type fakeModel struct{ text string }

func (m fakeModel) Generate(context.Context, string) (string, error) { return m.text, nil }

type fixture struct {
	handler  http.Handler
	site     *site.Site
	recorder *revalidate.Recorder
	outbox   *notify.Outbox
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	store := docstore.NewMemoryStore()
	recorder := revalidate.NewRecorder(0)
	dispatcher := revalidate.NewDispatcher(revalidate.WithSink(recorder))
	st := site.New(store, site.WithNotifier(dispatcher))
	outbox := notify.NewOutbox()
	gateway := stubGateway{order: interfaces.GatewayOrder{ID: "order_test", Amount: 49900, Currency: "INR"}}
	gateways := func(string, string) interfaces.PaymentGateway { return gateway }

	base := []Option{
		WithCheckout(checkout.NewService(st, gateways, checkout.WithMailer(outbox))),
		WithInquiries(inquiries.NewService(st, inquiries.WithMailer(outbox))),
		WithTransfer(transfer.NewService(store, transfer.WithNotifier(dispatcher))),
		WithMetaGenerator(metagen.New(fakeModel{text: `"A studio that builds fast marketing sites."`})),
		WithRevalidations(recorder),
		WithAuth(auth.NewStaticVerifier(adminToken, adminEmail), auth.NewAdminPolicy(adminEmail)),
		WithPublicBaseURL("https://example.test"),
		WithClock(func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }),
	}
	server := NewServer(st, append(base, opts...)...)
	return fixture{handler: server.Handler(), site: st, recorder: recorder, outbox: outbox}
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch v := body.(type) {
	case nil:
	case string:
		buf.WriteString(v)
	case []byte:
		buf.Write(v)
	default:
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("%s %s: expected status %d got %d (%s)", method, path, wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func doAdmin(t *testing.T, h http.Handler, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, h, method, path, adminToken, body, wantStatus)
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
}

func TestAdminRoutesRequireAdminToken(t *testing.T) {
	f := newFixture(t)

	doRequest(t, f.handler, http.MethodGet, "/admin/api/dashboard", "", nil, http.StatusUnauthorized)
	doRequest(t, f.handler, http.MethodGet, "/admin/api/dashboard", "wrong", nil, http.StatusUnauthorized)
	doAdmin(t, f.handler, http.MethodGet, "/admin/api/dashboard", nil, http.StatusOK)

	outsider := newFixture(t, WithAuth(auth.NewStaticVerifier(adminToken, "someone@example.com"), auth.NewAdminPolicy(adminEmail)))
	rec := doAdmin(t, outsider.handler, http.MethodGet, "/admin/api/dashboard", nil, http.StatusForbidden)
	var body errorResponse
	decodeJSONBody(t, rec, &body)
	if body.Error != "forbidden" {
		t.Fatalf("expected forbidden error code got %q", body.Error)
	}

	doRequest(t, f.handler, http.MethodGet, "/healthz", "", nil, http.StatusOK)
}

func TestAdminRoutesUnavailableWithoutAuth(t *testing.T) {
	f := newFixture(t, WithAuth(nil, nil))
	doAdmin(t, f.handler, http.MethodGet, "/admin/api/dashboard", nil, http.StatusServiceUnavailable)
}

func TestSettingsRoundTrip(t *testing.T) {
	f := newFixture(t)

	index := doAdmin(t, f.handler, http.MethodGet, "/admin/api/settings", nil, http.StatusOK)
	var modules struct {
		Modules []string `json:"modules"`
	}
	decodeJSONBody(t, index, &modules)
	if len(modules.Modules) == 0 {
		t.Fatalf("expected registered modules")
	}

	doAdmin(t, f.handler, http.MethodPut, "/admin/api/settings/general", map[string]any{"website_name": "Acme Studio"}, http.StatusOK)
	if len(f.recorder.Events()) == 0 {
		t.Fatalf("expected a revalidation event after saving general settings")
	}

	rec := doRequest(t, f.handler, http.MethodGet, "/api/site/general", "", nil, http.StatusOK)
	var general map[string]any
	decodeJSONBody(t, rec, &general)
	if general["website_name"] != "Acme Studio" {
		t.Fatalf("expected website_name Acme Studio got %v", general["website_name"])
	}

	invalid := doAdmin(t, f.handler, http.MethodPut, "/admin/api/settings/general", map[string]any{"website_name": ""}, http.StatusUnprocessableEntity)
	var body errorResponse
	decodeJSONBody(t, invalid, &body)
	if _, ok := body.Issues["website_name"]; !ok {
		t.Fatalf("expected website_name issue got %v", body.Issues)
	}

	doAdmin(t, f.handler, http.MethodGet, "/admin/api/settings/unknown", nil, http.StatusNotFound)
	doAdmin(t, f.handler, http.MethodPut, "/admin/api/settings/general", "{not json", http.StatusBadRequest)
}

func TestPaymentSecretNeverLeaves(t *testing.T) {
	f := newFixture(t)

	payload := map[string]any{
		"razorpay_key_id":        "rzp_live_abc",
		"razorpay_key_secret":    "very-secret",
		"enable_online_payments": true,
	}
	saved := doAdmin(t, f.handler, http.MethodPut, "/admin/api/settings/payments", payload, http.StatusOK)
	if strings.Contains(saved.Body.String(), "very-secret") {
		t.Fatalf("admin save response leaked the secret: %s", saved.Body.String())
	}
	loaded := doAdmin(t, f.handler, http.MethodGet, "/admin/api/settings/payments", nil, http.StatusOK)
	if strings.Contains(loaded.Body.String(), "very-secret") {
		t.Fatalf("admin read leaked the secret: %s", loaded.Body.String())
	}

	rec := doRequest(t, f.handler, http.MethodGet, "/api/payments/config", "", nil, http.StatusOK)
	var cfg site.PublicPaymentConfig
	decodeJSONBody(t, rec, &cfg)
	if cfg.KeyID != "rzp_live_abc" || !cfg.EnableOnlinePayments {
		t.Fatalf("unexpected public payment config %+v", cfg)
	}
	if strings.Contains(rec.Body.String(), "razorpay_key_secret") {
		t.Fatalf("public config exposed the secret field: %s", rec.Body.String())
	}

	stored, err := f.site.Payments.Get(context.Background())
	if err != nil {
		t.Fatalf("get payments: %v", err)
	}
	if stored.KeySecret != "very-secret" {
		t.Fatalf("expected the stored secret to survive got %q", stored.KeySecret)
	}
}

func TestCheckoutFlow(t *testing.T) {
	f := newFixture(t)
	if _, err := f.site.Payments.Update(context.Background(), site.PaymentSettings{KeyID: "rzp_test_1", KeySecret: "s3cr3t", EnableOnlinePayments: true}); err != nil {
		t.Fatalf("seed payments: %v", err)
	}

	created := doRequest(t, f.handler, http.MethodPost, "/api/checkout/orders", "", map[string]any{"amount": 499}, http.StatusCreated)
	var order struct {
		Order interfaces.GatewayOrder `json:"order"`
	}
	decodeJSONBody(t, created, &order)
	if order.Order.ID != "order_test" {
		t.Fatalf("expected gateway order id got %+v", order.Order)
	}

	invalid := doRequest(t, f.handler, http.MethodPost, "/api/checkout/orders", "", map[string]any{"amount": 0}, http.StatusBadRequest)
	var body errorResponse
	decodeJSONBody(t, invalid, &body)
	if body.Message != checkout.MessageInvalidData {
		t.Fatalf("expected invalid data message got %q", body.Message)
	}

	payment := checkout.Payload{
		CustomerName:      "Ann Buyer",
		CustomerEmail:     "ann@buyer.test",
		PlanTitle:         "Business",
		Amount:            499,
		RazorpayPaymentID: "pay_1",
		RazorpayOrderID:   "order_test",
		Status:            site.OrderCompleted,
	}
	payment.RazorpaySignature = "forged"
	rejected := doRequest(t, f.handler, http.MethodPost, "/api/checkout/verify", "", payment, http.StatusBadRequest)
	decodeJSONBody(t, rejected, &body)
	if body.Message != checkout.MessageVerificationFailed {
		t.Fatalf("expected verification message got %q", body.Message)
	}

	payment.RazorpaySignature = checkout.Sign("s3cr3t", "order_test", "pay_1")
	doRequest(t, f.handler, http.MethodPost, "/api/checkout/verify", "", payment, http.StatusCreated)

	list := doAdmin(t, f.handler, http.MethodGet, "/admin/api/orders", nil, http.StatusOK)
	var orders []site.Order
	decodeJSONBody(t, list, &orders)
	if len(orders) != 1 {
		t.Fatalf("expected 1 stored order got %d", len(orders))
	}
	doAdmin(t, f.handler, http.MethodDelete, "/admin/api/orders/"+orders[0].ID, nil, http.StatusNoContent)
	doAdmin(t, f.handler, http.MethodDelete, "/admin/api/orders/"+orders[0].ID, nil, http.StatusNotFound)
}

func TestContactSubmissions(t *testing.T) {
	f := newFixture(t)

	form := inquiries.Form{Name: "Jane", Email: "jane@example.com", Message: "We need a new site."}
	created := doRequest(t, f.handler, http.MethodPost, "/api/contact", "", form, http.StatusCreated)
	var saved site.Submission
	decodeJSONBody(t, created, &saved)
	if saved.ID == "" {
		t.Fatalf("expected submission id")
	}

	rejected := doRequest(t, f.handler, http.MethodPost, "/api/contact", "", inquiries.Form{Name: "Jane"}, http.StatusUnprocessableEntity)
	var body errorResponse
	decodeJSONBody(t, rejected, &body)
	if body.Message != inquiries.MessageInvalidForm {
		t.Fatalf("expected invalid form message got %q", body.Message)
	}

	list := doAdmin(t, f.handler, http.MethodGet, "/admin/api/submissions", nil, http.StatusOK)
	var items []site.Submission
	decodeJSONBody(t, list, &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 submission got %d", len(items))
	}
	doAdmin(t, f.handler, http.MethodDelete, "/admin/api/submissions/"+saved.ID, nil, http.StatusNoContent)
}

func TestTestimonialLifecycle(t *testing.T) {
	f := newFixture(t)

	item := map[string]any{"name": "Ravi", "description": "Delivered ahead of schedule.", "rating": 5}
	created := doAdmin(t, f.handler, http.MethodPost, "/admin/api/testimonials", item, http.StatusCreated)
	var saved site.Testimonial
	decodeJSONBody(t, created, &saved)
	if saved.ID == "" {
		t.Fatalf("expected testimonial id")
	}

	doAdmin(t, f.handler, http.MethodPost, "/admin/api/testimonials", map[string]any{"name": "R", "description": "short", "rating": 9}, http.StatusUnprocessableEntity)

	item["rating"] = 4
	updated := doAdmin(t, f.handler, http.MethodPut, "/admin/api/testimonials/"+saved.ID, item, http.StatusOK)
	decodeJSONBody(t, updated, &saved)
	if saved.Rating != 4 {
		t.Fatalf("expected rating 4 got %d", saved.Rating)
	}

	public := doRequest(t, f.handler, http.MethodGet, "/api/testimonials", "", nil, http.StatusOK)
	var items []site.Testimonial
	decodeJSONBody(t, public, &items)
	found := false
	for _, it := range items {
		found = found || it.ID == saved.ID
	}
	if !found {
		t.Fatalf("expected testimonial %s in public list", saved.ID)
	}

	doAdmin(t, f.handler, http.MethodDelete, "/admin/api/testimonials/"+saved.ID, nil, http.StatusNoContent)
}

func TestLegalPages(t *testing.T) {
	f := newFixture(t)

	doAdmin(t, f.handler, http.MethodPut, "/admin/api/legal/terms", map[string]any{"content": "# Terms\n\nBe kind."}, http.StatusOK)
	rec := doRequest(t, f.handler, http.MethodGet, "/api/legal/terms", "", nil, http.StatusOK)
	var page site.RenderedLegalPage
	decodeJSONBody(t, rec, &page)
	if !strings.Contains(page.HTML, "<h1") || !strings.Contains(page.HTML, "Be kind.") {
		t.Fatalf("expected rendered markdown got %q", page.HTML)
	}

	doRequest(t, f.handler, http.MethodGet, "/api/legal/cookies-we-never-had", "", nil, http.StatusNotFound)
	doAdmin(t, f.handler, http.MethodPut, "/admin/api/legal/cookies-we-never-had", map[string]any{"content": "x"}, http.StatusNotFound)
}

func TestSEOAndMetaDescription(t *testing.T) {
	f := newFixture(t)

	seo := map[string]any{"h1_title": "Home", "meta_title": "Acme", "meta_description": "Fast sites."}
	doAdmin(t, f.handler, http.MethodPut, "/admin/api/seo/home", seo, http.StatusOK)

	rec := doRequest(t, f.handler, http.MethodGet, "/api/seo/home", "", nil, http.StatusOK)
	var public map[string]any
	decodeJSONBody(t, rec, &public)
	if public["meta_title"] != "Acme" {
		t.Fatalf("expected meta_title Acme got %v", public["meta_title"])
	}

	generated := doAdmin(t, f.handler, http.MethodPost, "/admin/api/seo/meta-description",
		interfaces.MetaDescriptionInput{PageTitle: "Home", PageContent: "We build websites."}, http.StatusOK)
	var out interfaces.MetaDescriptionOutput
	decodeJSONBody(t, generated, &out)
	if out.MetaDescription != "A studio that builds fast marketing sites." {
		t.Fatalf("unexpected meta description %q", out.MetaDescription)
	}

	doAdmin(t, f.handler, http.MethodPost, "/admin/api/seo/meta-description", interfaces.MetaDescriptionInput{}, http.StatusUnprocessableEntity)

	bare := newFixture(t, WithMetaGenerator(nil))
	doAdmin(t, bare.handler, http.MethodPost, "/admin/api/seo/meta-description",
		interfaces.MetaDescriptionInput{PageTitle: "Home", PageContent: "x"}, http.StatusServiceUnavailable)
}

func TestExportImport(t *testing.T) {
	f := newFixture(t)
	doAdmin(t, f.handler, http.MethodPut, "/admin/api/settings/general", map[string]any{"website_name": "Exported"}, http.StatusOK)

	export := doAdmin(t, f.handler, http.MethodGet, "/admin/api/export", nil, http.StatusOK)
	if got := export.Header().Get("Content-Disposition"); !strings.Contains(got, "site-export-2024-05-06.json") {
		t.Fatalf("unexpected content disposition %q", got)
	}

	target := newFixture(t)
	doAdmin(t, target.handler, http.MethodPost, "/admin/api/import", export.Body.Bytes(), http.StatusOK)
	rec := doRequest(t, target.handler, http.MethodGet, "/api/site/general", "", nil, http.StatusOK)
	var general map[string]any
	decodeJSONBody(t, rec, &general)
	if general["website_name"] != "Exported" {
		t.Fatalf("expected imported website_name got %v", general["website_name"])
	}

	bad := doAdmin(t, target.handler, http.MethodPost, "/admin/api/import", "not json", http.StatusBadRequest)
	var body errorResponse
	decodeJSONBody(t, bad, &body)
	if body.Message != transfer.MessageParse {
		t.Fatalf("expected parse message got %q", body.Message)
	}
}

func TestThemeStyleSheet(t *testing.T) {
	f := newFixture(t)
	rec := doRequest(t, f.handler, http.MethodGet, "/theme.css", "", nil, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Fatalf("expected text/css got %q", ct)
	}
	css := rec.Body.String()
	if !strings.Contains(css, ":root {") || !strings.Contains(css, ".dark {") {
		t.Fatalf("expected light and dark blocks got %q", css)
	}
}

func TestSitemap(t *testing.T) {
	f := newFixture(t)
	rec := doRequest(t, f.handler, http.MethodGet, "/sitemap.xml", "", nil, http.StatusOK)
	body := rec.Body.String()
	for _, want := range []string{
		"<loc>https://example.test/</loc>",
		"<loc>https://example.test/pricing</loc>",
		"<loc>https://example.test/terms</loc>",
		"<loc>https://example.test/privacy-policy</loc>",
		"<changefreq>daily</changefreq>",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("sitemap missing %s: %s", want, body)
		}
	}
}

func TestSitemapPathsDeduplicate(t *testing.T) {
	paths := sitemapPaths([]string{"terms", "about", "terms", ""})
	seen := map[string]int{}
	for _, p := range paths {
		seen[p]++
	}
	if seen["/about"] != 1 || seen["/terms"] != 1 {
		t.Fatalf("expected unique paths got %v", paths)
	}
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"forbidden", auth.ErrForbidden, http.StatusForbidden},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"amount", checkout.ErrInvalidAmount, http.StatusBadRequest},
		{"gateway", &checkout.GatewayError{Err: errors.New("down")}, http.StatusBadGateway},
		{"empty result", metagen.ErrEmptyResult, http.StatusBadGateway},
		{"parse", &transfer.ParseError{Err: errors.New("eof")}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := mapError(tc.err)
			if status != tc.want {
				t.Fatalf("expected %d got %d", tc.want, status)
			}
		})
	}
}

func TestOpenAPIDocumentListsRoutes(t *testing.T) {
	f := newFixture(t)
	rec := doRequest(t, f.handler, http.MethodGet, "/api/openapi.json", "", nil, http.StatusOK)
	var doc struct {
		Paths map[string]map[string]struct {
			Security []map[string][]string `json:"security"`
		} `json:"paths"`
	}
	decodeJSONBody(t, rec, &doc)

	put, ok := doc.Paths["/admin/api/settings/{module}"]["put"]
	if !ok {
		t.Fatalf("expected admin settings route in %v", doc.Paths)
	}
	if len(put.Security) == 0 {
		t.Fatalf("expected admin route to require bearer auth")
	}
	if _, ok := doc.Paths["/api/contact"]["post"]; !ok {
		t.Fatalf("expected contact route")
	}
}

package metagen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/goliatone/go-sitecms/internal/settings"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

type fakeModel struct {
	prompt string
	reply  string
	err    error
}

func (f *fakeModel) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestGenerateBindsPrompt(t *testing.T) {
	model := &fakeModel{reply: "  \"Fast, modern websites for growing brands.\"\n"}
	out, err := New(model).Generate(context.Background(), interfaces.MetaDescriptionInput{PageTitle: "Services", PageContent: "Web design and SEO"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.MetaDescription != "Fast, modern websites for growing brands." {
		t.Fatalf("unexpected description %q", out.MetaDescription)
	}
	if !strings.Contains(model.prompt, "Page Title: Services") || !strings.Contains(model.prompt, "Page Content: Web design and SEO") {
		t.Fatalf("prompt missing input: %s", model.prompt)
	}
}

func TestGenerateValidatesAndPropagates(t *testing.T) {
	model := &fakeModel{}
	g := New(model)
	_, err := g.Generate(context.Background(), interfaces.MetaDescriptionInput{PageTitle: " "})
	var validationErr *settings.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Issues["pageTitle"] == "" {
		t.Fatalf("expected validation issues, got %v", err)
	}
	if model.prompt != "" {
		t.Fatalf("model must not be called for invalid input")
	}

	model.err = errors.New("quota")
	if _, err := g.Generate(context.Background(), interfaces.MetaDescriptionInput{PageTitle: "a", PageContent: "b"}); err == nil {
		t.Fatalf("expected model error")
	}
	model.err, model.reply = nil, "   "
	if _, err := g.Generate(context.Background(), interfaces.MetaDescriptionInput{PageTitle: "a", PageContent: "b"}); !errors.Is(err, ErrEmptyResult) {
		t.Fatalf("expected empty result error, got %v", err)
	}
}

func TestCleanTruncates(t *testing.T) {
	long := strings.Repeat("word ", 60)
	got := Clean(long)
	if n := utf8.RuneCountInString(got); n > MaxLength || n < MaxLength*3/4 {
		t.Fatalf("unexpected length %d: %q", n, got)
	}
	if strings.HasSuffix(got, " ") {
		t.Fatalf("trailing space left: %q", got)
	}
	unbroken := strings.Repeat("x", 200)
	if got := Clean(unbroken); utf8.RuneCountInString(got) != MaxLength {
		t.Fatalf("expected hard cut, got %d", len(got))
	}
}

func TestGeminiGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/test-model:generateContent" || r.URL.Query().Get("key") != "k" {
			t.Errorf("unexpected request %s", r.URL)
		}
		var req geminiRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "hello" {
			t.Errorf("unexpected body %+v", req)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hi "},{"text":"there"}]}}]}`))
	}))
	defer server.Close()

	g := NewGemini("k", WithGeminiBaseURL(server.URL), WithGeminiModel("test-model"), WithGeminiHTTPClient(server.Client()))
	text, err := g.Generate(context.Background(), "hello")
	if err != nil || text != "Hi there" {
		t.Fatalf("unexpected result %q (%v)", text, err)
	}

	if _, err := NewGemini("").Generate(context.Background(), "x"); !errors.Is(err, ErrAPIKeyRequired) {
		t.Fatalf("expected api key error, got %v", err)
	}
}

func TestGeminiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer server.Close()
	_, err := NewGemini("k", WithGeminiBaseURL(server.URL)).Generate(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected quota error, got %v", err)
	}
}

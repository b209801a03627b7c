// Package metagen drafts SEO meta descriptions with a text generation model.
package metagen

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"text/template"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sitecms/internal/logging"
	"github.com/goliatone/go-sitecms/internal/settings"
	"github.com/goliatone/go-sitecms/pkg/interfaces"
)

// MaxLength is the longest description returned.
const MaxLength = 160

var (
	ErrModelRequired = errors.New("metagen: text generator is required")
	ErrEmptyResult   = errors.New("metagen: model returned no text")
)

var prompt = template.Must(template.New("meta").Parse(`You are an expert SEO content writer. Your goal is to write a compelling and accurate meta description for a given web page.

The meta description should be no more than 160 characters.

Page Title: {{.PageTitle}}
Page Content: {{.PageContent}}

Write a meta description for the page. Reply with the description text only.`))

type Option func(*Generator)

func WithLogger(logger interfaces.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator binds page input into the prompt and cleans the model output.
type Generator struct {
	model  interfaces.TextGenerator
	logger interfaces.Logger
}

var _ interfaces.MetaGenerator = (*Generator)(nil)

func New(model interfaces.TextGenerator, opts ...Option) *Generator {
	if model == nil {
		panic(ErrModelRequired)
	}
	g := &Generator{model: model, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

func validateInput(in interfaces.MetaDescriptionInput) error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.PageTitle, validation.Required),
		validation.Field(&in.PageContent, validation.Required),
	)
	return settings.ValidationIssues("seo", err)
}

// Generate makes one model call per request. There is no retry or caching.
func (g *Generator) Generate(ctx context.Context, in interfaces.MetaDescriptionInput) (interfaces.MetaDescriptionOutput, error) {
	in.PageTitle = strings.TrimSpace(in.PageTitle)
	in.PageContent = strings.TrimSpace(in.PageContent)
	if err := validateInput(in); err != nil {
		return interfaces.MetaDescriptionOutput{}, err
	}
	var buf bytes.Buffer
	if err := prompt.Execute(&buf, in); err != nil {
		return interfaces.MetaDescriptionOutput{}, err
	}
	text, err := g.model.Generate(ctx, buf.String())
	if err != nil {
		g.logger.Error("metagen.generate.failed", "error", err)
		return interfaces.MetaDescriptionOutput{}, err
	}
	description := Clean(text)
	if description == "" {
		return interfaces.MetaDescriptionOutput{}, ErrEmptyResult
	}
	g.logger.Debug("metagen.generate.done", "length", utf8.RuneCountInString(description))
	return interfaces.MetaDescriptionOutput{MetaDescription: description}, nil
}

// Clean collapses whitespace, strips wrapping quotes and truncates to
// MaxLength runes, at a word boundary when one is close.
func Clean(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	text = strings.Trim(text, "\"'`")
	text = strings.TrimSpace(strings.TrimPrefix(text, "Meta description:"))
	if utf8.RuneCountInString(text) <= MaxLength {
		return text
	}
	runes := []rune(text)[:MaxLength]
	cut := string(runes)
	if i := strings.LastIndexByte(cut, ' '); i >= MaxLength*3/4 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:-")
}

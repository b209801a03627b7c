package interfaces

import "context"

type MetaDescriptionInput struct {
	PageTitle   string `json:"pageTitle"`
	PageContent string `json:"pageContent"`
}

type MetaDescriptionOutput struct {
	MetaDescription string `json:"metaDescription"`
}

// TextGenerator runs a single prompt against a text generation model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// MetaGenerator drafts an SEO meta description for a page.
type MetaGenerator interface {
	Generate(ctx context.Context, in MetaDescriptionInput) (MetaDescriptionOutput, error)
}

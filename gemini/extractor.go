// Package gemini extracts incident fields from articles with Google Gemini.
package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/extract"
	"google.golang.org/genai"
)

// Ensure FieldExtractor implements elephantlog.FieldExtractor at compile time.
var _ elephantlog.FieldExtractor = (*FieldExtractor)(nil)

// FieldExtractor implements elephantlog.FieldExtractor using Google Gemini.
type FieldExtractor struct {
	client *genai.Client
	model  string
	cfg    elephantlog.Config
}

// NewClient creates a Gemini API client. An empty key is an ECONFIG error.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, elephantlog.Errorf(elephantlog.ECONFIG, "GEMINI_API_KEY is required for gemini mode")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, elephantlog.Errorf(elephantlog.ECONFIG, "gemini client: %v", err)
	}
	return client, nil
}

// NewFieldExtractor creates a FieldExtractor. An empty model means
// elephantlog.DefaultGeminiModel.
func NewFieldExtractor(client *genai.Client, model string, cfg elephantlog.Config) *FieldExtractor {
	if model == "" {
		model = elephantlog.DefaultGeminiModel
	}
	return &FieldExtractor{client: client, model: model, cfg: cfg}
}

// ExtractFields asks the model for the record fields of article.
func (e *FieldExtractor) ExtractFields(ctx context.Context, article *elephantlog.Article) (*elephantlog.RawRecord, error) {
	if err := article.Validate(); err != nil {
		return nil, err
	}

	prompt := extract.BuildPrompt(article, &e.cfg)
	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if result == nil {
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "gemini returned nil result")
	}

	return extract.ParseRawRecord(result.Text())
}

// BuildConfig returns the GenerateContentConfig for extraction calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: extract.SystemPrompt}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

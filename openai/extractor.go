// Package openai extracts incident fields from articles with OpenAI-compatible
// chat completion APIs.
package openai

import (
	"context"
	"fmt"

	"github.com/fwojciec/elephantlog"
	"github.com/fwojciec/elephantlog/extract"
	"github.com/sashabaranov/go-openai"
)

// Ensure FieldExtractor implements elephantlog.FieldExtractor at compile time.
var _ elephantlog.FieldExtractor = (*FieldExtractor)(nil)

// FieldExtractor implements elephantlog.FieldExtractor using the Chat
// Completions API.
type FieldExtractor struct {
	client *openai.Client
	model  string
	cfg    elephantlog.Config
}

// NewFieldExtractor creates a FieldExtractor. An empty baseURL uses the
// OpenAI endpoint; an empty model means elephantlog.DefaultOpenAIModel.
// An empty key is an ECONFIG error.
func NewFieldExtractor(apiKey, baseURL, model string, cfg elephantlog.Config) (*FieldExtractor, error) {
	if apiKey == "" {
		return nil, elephantlog.Errorf(elephantlog.ECONFIG, "OPENAI_API_KEY is required for openai mode")
	}
	if model == "" {
		model = elephantlog.DefaultOpenAIModel
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	return &FieldExtractor{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		cfg:    cfg,
	}, nil
}

// ExtractFields asks the model for the record fields of article.
func (e *FieldExtractor) ExtractFields(ctx context.Context, article *elephantlog.Article) (*elephantlog.RawRecord, error) {
	if err := article.Validate(); err != nil {
		return nil, err
	}

	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extract.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: extract.BuildPrompt(article, &e.cfg)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   1000,
		Temperature: 0.1,
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, elephantlog.Errorf(elephantlog.EPARSE, "no response from OpenAI")
	}

	return extract.ParseRawRecord(resp.Choices[0].Message.Content)
}

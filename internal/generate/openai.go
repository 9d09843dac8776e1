// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	oaoption "github.com/openai/openai-go/option"

	"github.com/pdiddy/content-engine/pkg/types"
)

// OpenAIBackend calls the chat completions API of OpenAI or any
// compatible gateway named by BaseURL.
type OpenAIBackend struct {
	Model  string
	client openai.Client
}

// NewOpenAIBackend builds a backend for model. Retries are left to the
// chain, so the SDK's own retry loop is disabled.
func NewOpenAIBackend(apiKey, model, baseURL string) *OpenAIBackend {
	opts := []oaoption.RequestOption{
		oaoption.WithAPIKey(apiKey),
		oaoption.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, oaoption.WithBaseURL(baseURL))
	}
	return &OpenAIBackend{Model: model, client: openai.NewClient(opts...)}
}

// Name returns the backend identifier.
func (o *OpenAIBackend) Name() string { return types.ProviderOpenAI + "/" + o.Model }

// Generate sends the prompt as a single user message.
func (o *OpenAIBackend) Generate(ctx context.Context, req Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(req.Prompt)},
	}
	if req.Sampling.Temperature > 0 {
		params.Temperature = openai.Float(req.Sampling.Temperature)
	}
	if req.Sampling.TopP > 0 {
		params.TopP = openai.Float(req.Sampling.TopP)
	}
	if req.Sampling.MaxOutputTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.Sampling.MaxOutputTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices: %w", ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

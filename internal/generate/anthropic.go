// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anoption "github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pdiddy/content-engine/pkg/types"
)

// defaultAnthropicMaxTokens is sent when the policy sets no output limit;
// the Messages API requires one.
const defaultAnthropicMaxTokens = 4096

// AnthropicBackend calls the Claude Messages API.
type AnthropicBackend struct {
	Model  string
	client anthropic.Client
}

// NewAnthropicBackend builds a backend for model. Retries are left to
// the chain.
func NewAnthropicBackend(apiKey, model, baseURL string) *AnthropicBackend {
	opts := []anoption.RequestOption{
		anoption.WithAPIKey(apiKey),
		anoption.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, anoption.WithBaseURL(baseURL))
	}
	return &AnthropicBackend{Model: model, client: anthropic.NewClient(opts...)}
}

// Name returns the backend identifier.
func (a *AnthropicBackend) Name() string { return types.ProviderAnthropic + "/" + a.Model }

// Generate sends the prompt as a single user message and joins the text
// blocks of the reply.
func (a *AnthropicBackend) Generate(ctx context.Context, req Request) (string, error) {
	maxTokens := int64(req.Sampling.MaxOutputTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if t := req.Sampling.Temperature; t > 0 {
		params.Temperature = anthropic.Float(min(t, 1))
	}
	if req.Sampling.TopK > 0 {
		params.TopK = anthropic.Int(int64(req.Sampling.TopK))
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("calling Anthropic API: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(tb.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("Anthropic API returned no text: %w", ErrEmptyResponse)
	}
	return text.String(), nil
}

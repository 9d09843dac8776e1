// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/pdiddy/content-engine/pkg/types"
)

// OllamaBackend calls a local Ollama server through langchaingo.
type OllamaBackend struct {
	Model string
	llm   llms.Model
}

// NewOllamaBackend connects to the Ollama server at serverURL.
func NewOllamaBackend(model, serverURL string) (*OllamaBackend, error) {
	llm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(serverURL))
	if err != nil {
		return nil, fmt.Errorf("initializing Ollama client: %w", err)
	}
	return &OllamaBackend{Model: model, llm: llm}, nil
}

// Name returns the backend identifier.
func (o *OllamaBackend) Name() string { return types.ProviderOllama + "/" + o.Model }

// Generate sends the prompt with the request's sampling options.
func (o *OllamaBackend) Generate(ctx context.Context, req Request) (string, error) {
	var opts []llms.CallOption
	if req.Sampling.Temperature > 0 {
		opts = append(opts, llms.WithTemperature(req.Sampling.Temperature))
	}
	if req.Sampling.TopK > 0 {
		opts = append(opts, llms.WithTopK(req.Sampling.TopK))
	}
	if req.Sampling.TopP > 0 {
		opts = append(opts, llms.WithTopP(req.Sampling.TopP))
	}
	if req.Sampling.MaxOutputTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.Sampling.MaxOutputTokens))
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, o.llm, req.Prompt, opts...)
	if err != nil {
		return "", fmt.Errorf("calling Ollama: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("Ollama returned no text: %w", ErrEmptyResponse)
	}
	return text, nil
}

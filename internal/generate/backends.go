// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pdiddy/content-engine/pkg/types"
)

// NewChain builds one backend per configured alternative, in order.
// Alternatives whose provider has no credentials are skipped with a
// warning; an unknown provider is an error. With no alternatives
// configured the default Gemini model list is used.
func NewChain(cfg types.GenerationConfig, creds types.Credentials, logger *slog.Logger) (*Chain, error) {
	if logger == nil {
		logger = slog.Default()
	}
	alts := cfg.Alternatives
	if len(alts) == 0 {
		alts = types.DefaultAlternatives()
	}
	client := &http.Client{Timeout: cfg.Timeout}

	c := &Chain{Timeout: cfg.Timeout, Logger: logger}
	for _, alt := range alts {
		skip := func(key string) {
			logger.Warn("skipping generation backend without API key", "provider", alt.Provider, "model", alt.Model, "key", key)
		}
		switch strings.ToLower(alt.Provider) {
		case types.ProviderGemini, "":
			if creds.GeminiAPIKey == "" {
				skip("GEMINI_API_KEY")
				continue
			}
			c.Backends = append(c.Backends, &GeminiBackend{APIKey: creds.GeminiAPIKey, Model: alt.Model, Client: client, HTTP: cfg.HTTPConfig})
		case types.ProviderOpenAI:
			if creds.OpenAIAPIKey == "" {
				skip("OPENAI_API_KEY")
				continue
			}
			c.Backends = append(c.Backends, NewOpenAIBackend(creds.OpenAIAPIKey, alt.Model, alt.BaseURL))
		case types.ProviderAnthropic:
			if creds.AnthropicAPIKey == "" {
				skip("ANTHROPIC_API_KEY")
				continue
			}
			c.Backends = append(c.Backends, NewAnthropicBackend(creds.AnthropicAPIKey, alt.Model, alt.BaseURL))
		case types.ProviderOllama:
			server := alt.BaseURL
			if server == "" {
				server = creds.OllamaHost
			}
			b, err := NewOllamaBackend(alt.Model, server)
			if err != nil {
				return nil, err
			}
			c.Backends = append(c.Backends, b)
		default:
			return nil, fmt.Errorf("unknown generation provider %q", alt.Provider)
		}
	}
	return c, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by collaborators that make network requests.
type HTTPConfig struct {
	// Timeout bounds a single alternative or provider call.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "content-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries is the number of 429/503 retries within one call (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// Provider names accepted in Alternative.Provider.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Alternative is one entry in the prioritized list of text-generation
// backends. Alternatives are tried strictly in order.
type Alternative struct {
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`
	Model    string `json:"model" yaml:"model" mapstructure:"model"`

	// BaseURL overrides the provider endpoint (Ollama server, OpenAI-compatible gateways).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`
}

// GenerationConfig holds settings for the text-generation collaborator.
type GenerationConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	Alternatives []Alternative `json:"alternatives" yaml:"alternatives" mapstructure:"alternatives"`
}

// ImageConfig holds settings for the image-search collaborator.
type ImageConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Providers lists image providers in fallback order: serpapi, pexels, scrape.
	Providers []string `json:"providers" yaml:"providers" mapstructure:"providers"`

	// ScrapeRate is the Google Images scrape rate in requests per second.
	ScrapeRate float64 `json:"scrape_rate" yaml:"scrape_rate" mapstructure:"scrape_rate"`
}

// ArchiveConfig controls persistence of generated articles.
type ArchiveConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" yaml:"path" mapstructure:"path"`
}

// ServerConfig holds settings for the HTTP service.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// Mode is the gin mode: debug, release or test.
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`
}

// Credentials carries API keys for the external collaborators.
type Credentials struct {
	GeminiAPIKey    string `json:"-" yaml:"-" envconfig:"GEMINI_API_KEY"`
	OpenAIAPIKey    string `json:"-" yaml:"-" envconfig:"OPENAI_API_KEY"`
	AnthropicAPIKey string `json:"-" yaml:"-" envconfig:"ANTHROPIC_API_KEY"`
	PexelsAPIKey    string `json:"-" yaml:"-" envconfig:"PEXELS_API_KEY"`
	SerpAPIKey      string `json:"-" yaml:"-" envconfig:"SERPAPI_API_KEY"`
	OllamaHost      string `json:"-" yaml:"-" envconfig:"OLLAMA_HOST" default:"http://localhost:11434"`
}

// Config is the top-level configuration read from content-engine.yaml.
type Config struct {
	// Style names the default policy (professional, ultra, true-human, social).
	Style string `json:"style" yaml:"style" mapstructure:"style"`

	// PolicyFile is an optional YAML file overriding or adding policies.
	PolicyFile string `json:"policy_file,omitempty" yaml:"policy_file,omitempty" mapstructure:"policy_file"`

	// MetaTruncation selects how the meta description is cut to length.
	MetaTruncation MetaTruncation `json:"meta_truncation" yaml:"meta_truncation" mapstructure:"meta_truncation"`

	Generation GenerationConfig `json:"generation" yaml:"generation" mapstructure:"generation"`
	Images     ImageConfig      `json:"images" yaml:"images" mapstructure:"images"`
	Archive    ArchiveConfig    `json:"archive" yaml:"archive" mapstructure:"archive"`
	Server     ServerConfig     `json:"server" yaml:"server" mapstructure:"server"`
}

// MetaTruncation selects hard or word-boundary truncation of the meta description.
type MetaTruncation string

const (
	TruncateHard MetaTruncation = "hard"
	TruncateWord MetaTruncation = "word"
)

// DefaultAlternatives is the Gemini model order used when no alternatives are configured.
func DefaultAlternatives() []Alternative {
	return []Alternative{
		{Provider: ProviderGemini, Model: "gemini-exp-1206"},
		{Provider: ProviderGemini, Model: "gemini-2.0-flash-exp"},
		{Provider: ProviderGemini, Model: "gemini-2.0-flash-thinking-exp"},
		{Provider: ProviderGemini, Model: "gemini-2.0-flash"},
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/pdiddy/content-engine/pkg/types"
)

// Key file names read from the secrets directory.
const (
	GeminiKeyFile    = "gemini-api-key"
	OpenAIKeyFile    = "openai-api-key"
	AnthropicKeyFile = "anthropic-api-key"
	PexelsKeyFile    = "pexels-api-key"
	SerpAPIKeyFile   = "serpapi-api-key"
	OllamaHostFile   = "ollama-host"
)

// Credentials resolves API keys from three layers, lowest first: the
// dotenv file envFile (skipped when empty or missing), the process
// environment, and the files in dir. Variables already set in the
// environment are never overwritten by envFile.
func Credentials(dir, envFile string) (types.Credentials, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return types.Credentials{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	var c types.Credentials
	if err := envconfig.Process("", &c); err != nil {
		return types.Credentials{}, fmt.Errorf("processing environment: %w", err)
	}

	files, err := Load(dir)
	if err != nil {
		return types.Credentials{}, err
	}
	for name, dst := range map[string]*string{
		GeminiKeyFile:    &c.GeminiAPIKey,
		OpenAIKeyFile:    &c.OpenAIAPIKey,
		AnthropicKeyFile: &c.AnthropicAPIKey,
		PexelsKeyFile:    &c.PexelsAPIKey,
		SerpAPIKeyFile:   &c.SerpAPIKey,
		OllamaHostFile:   &c.OllamaHost,
	} {
		if v, ok := files[name]; ok {
			*dst = v
		}
	}
	return c, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/internal/article"
	"github.com/pdiddy/content-engine/internal/humanize"
	"github.com/pdiddy/content-engine/pkg/types"
)

func testViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	configureViper(v)
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(testViper(t))
	require.NoError(t, err)

	assert.Equal(t, humanize.PolicyProfessional, cfg.Style)
	assert.Equal(t, types.TruncateHard, cfg.MetaTruncation)
	assert.Equal(t, 60*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, 2, cfg.Generation.MaxRetries)
	assert.Empty(t, cfg.Generation.Alternatives)
	assert.Equal(t, 15*time.Second, cfg.Images.Timeout)
	assert.Equal(t, []string{"serpapi", "pexels", "scrape"}, cfg.Images.Providers)
	assert.InDelta(t, 0.5, cfg.Images.ScrapeRate, 1e-9)
	assert.False(t, cfg.Archive.Enabled)
	assert.Equal(t, "content.db", cfg.Archive.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content-engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
style: ultra
meta_truncation: word
generation:
  timeout: 20s
  alternatives:
    - {provider: openai, model: gpt-4o-mini}
    - {provider: ollama, model: llama3, base_url: "http://gpu:11434"}
images:
  providers: [pexels]
archive:
  enabled: true
  path: /tmp/articles.db
`), 0o644))

	v := testViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "ultra", cfg.Style)
	assert.Equal(t, types.TruncateWord, cfg.MetaTruncation)
	assert.Equal(t, 20*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, defaultUserAgent, cfg.Generation.UserAgent)
	assert.Equal(t, []types.Alternative{
		{Provider: "openai", Model: "gpt-4o-mini"},
		{Provider: "ollama", Model: "llama3", BaseURL: "http://gpu:11434"},
	}, cfg.Generation.Alternatives)
	assert.Equal(t, []string{"pexels"}, cfg.Images.Providers)
	assert.True(t, cfg.Archive.Enabled)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("CONTENT_ENGINE_STYLE", "social")
	t.Setenv("CONTENT_ENGINE_IMAGES_SCRAPE_RATE", "2")
	t.Setenv("CONTENT_ENGINE_SERVER_ADDR", ":9090")

	cfg, err := loadConfig(testViper(t))
	require.NoError(t, err)
	assert.Equal(t, "social", cfg.Style)
	assert.InDelta(t, 2.0, cfg.Images.ScrapeRate, 1e-9)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoadConfigBadTruncation(t *testing.T) {
	v := testViper(t)
	v.Set("meta_truncation", "soft")
	_, err := loadConfig(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meta_truncation")
}

func TestNewWriter(t *testing.T) {
	cfg, err := loadConfig(testViper(t))
	require.NoError(t, err)

	w, err := newWriter(cfg, types.Credentials{}, logger)
	require.NoError(t, err)
	assert.NotNil(t, w.Text)
	assert.NotNil(t, w.Images)
	assert.Equal(t, humanize.PolicyProfessional, w.DefaultStyle)

	cfg.Style = "baroque"
	_, err = newWriter(cfg, types.Credentials{}, logger)
	assert.ErrorIs(t, err, humanize.ErrUnknownPolicy)

	cfg.Style = humanize.PolicyProfessional
	cfg.Images.Providers = []string{"flickr"}
	_, err = newWriter(cfg, types.Credentials{}, logger)
	assert.Error(t, err)
}

func TestPolicyWriterLoadsPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
policies:
  - name: newsletter
    base: true-human
    starter_probability: 0
`), 0o644))

	w, err := policyWriter(types.Config{Style: "newsletter", PolicyFile: path})
	require.NoError(t, err)
	p, err := w.Policies.Lookup("newsletter")
	require.NoError(t, err)
	assert.Zero(t, p.StarterProbability)

	_, err = policyWriter(types.Config{Style: "professional", PolicyFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func fixedWriter() *article.Writer {
	return &article.Writer{
		Now:    func() time.Time { return time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC) },
		Logger: logger,
	}
}

func TestGenerateArticle(t *testing.T) {
	seed := uint64(11)
	var out bytes.Buffer
	art, err := generateArticle(context.Background(),
		strings.NewReader(`{"topic": "Iced Coffee", "hTags": ["Why It Matters", "How To Make It"], "numImages": 2}`),
		&out, fixedWriter(), "", &seed)
	require.NoError(t, err)

	var got types.Article
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, art, got)
	assert.Equal(t, "Iced Coffee", got.Title)
	assert.Equal(t, "iced-coffee", got.SEO.Slug)
	assert.Equal(t, article.GeneratedByFallback, got.GeneratedBy)
	assert.Len(t, got.Images, 2)
	assert.Equal(t, 2, strings.Count(got.TOC, "<li>"))
	assert.Contains(t, out.String(), `<article class="blog-post"`, "HTML is not escaped")
}

func TestGenerateArticleStyleOverride(t *testing.T) {
	var out bytes.Buffer
	art, err := generateArticle(context.Background(), strings.NewReader(`{"topic": "Tea", "style": "professional"}`), &out, fixedWriter(), "social", nil)
	require.NoError(t, err)
	assert.Equal(t, humanize.PolicySocial, art.Style)
}

func TestGenerateArticleMalformedInputUsesDefaults(t *testing.T) {
	for _, in := range []string{"", "  \n", `{"topic": `, `{"numImages": "four"}`} {
		var out bytes.Buffer
		art, err := generateArticle(context.Background(), strings.NewReader(in), &out, fixedWriter(), "", nil)
		require.NoError(t, err, in)
		assert.Equal(t, types.DefaultTopic, art.Title, in)
		assert.Len(t, art.Images, types.DefaultNumImages, in)

		var got map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &got), in)
		assert.NotContains(t, got, "error")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("stdin closed") }

func TestGenerateArticleReadError(t *testing.T) {
	var out bytes.Buffer
	_, err := generateArticle(context.Background(), failingReader{}, &out, fixedWriter(), "", nil)
	require.Error(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Contains(t, body["error"], "stdin closed")
}

func TestHumanizeText(t *testing.T) {
	seed := uint64(4)
	var out bytes.Buffer
	err := humanizeText(strings.NewReader("## Setup\nWe utilize the grinder."), &out, fixedWriter(), "professional", &seed)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "## Setup {#setup}\n\n"), out.String())
	assert.Contains(t, out.String(), "use the grinder")
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestUniqueName(t *testing.T) {
	used := map[string]int{}
	assert.Equal(t, "iced-coffee", uniqueName(used, "iced-coffee"))
	assert.Equal(t, "iced-coffee-2", uniqueName(used, "iced-coffee"))
	assert.Equal(t, "article", uniqueName(used, ""))
	assert.Equal(t, "article-2", uniqueName(used, ""))
}

func TestCredentialNames(t *testing.T) {
	assert.Empty(t, credentialNames(types.Credentials{OllamaHost: "http://localhost:11434"}))
	assert.Equal(t, []string{"gemini", "pexels"}, credentialNames(types.Credentials{GeminiAPIKey: "g", PexelsAPIKey: "p"}))
}

func TestLoadCredentialsStartupFailure(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GEMINI_API_KEY='unterminated\n"), 0o644))

	tests := []struct {
		name      string
		wantError bool
	}{
		{"generate", true},
		{"humanize", false},
		{"serve", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := &cobra.Command{Use: tt.name}
			cmd.SetOut(&out)

			err := loadCredentials(cmd, t.TempDir(), envFile)
			require.Error(t, err)
			assert.Contains(t, err.Error(), ".env")

			if !tt.wantError {
				assert.Empty(t, out.String())
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(out.Bytes(), &body))
			assert.Equal(t, err.Error(), body["error"])
		})
	}
}

func TestLoadCredentialsMissingSources(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{Use: "generate"}
	cmd.SetOut(&out)

	dir := t.TempDir()
	require.NoError(t, loadCredentials(cmd, filepath.Join(dir, "no-secrets"), filepath.Join(dir, "no.env")))
	assert.Empty(t, out.String())
}

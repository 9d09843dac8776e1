// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "gemini-api-key", "  gk_abc123  \n")
				writeFile(t, dir, "pexels-api-key", "px_xyz789")
				writeFile(t, dir, "ollama-host", "http://gpu-box:11434\n")
				return dir
			},
			want: map[string]string{
				"gemini-api-key": "gk_abc123",
				"pexels-api-key": "px_xyz789",
				"ollama-host":    "http://gpu-box:11434",
			},
		},
		{
			name: "uses the first line that is not a comment",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "openai-api-key", "# project key, rotated monthly\n\nsk-live-1\nsk-old-0\n")
				writeFile(t, dir, "serpapi-api-key", "# nothing here yet\n")
				return dir
			},
			want: map[string]string{
				"openai-api-key": "sk-live-1",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "anthropic-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{
				"anthropic-api-key": "valid-key",
			},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, "serpapi-api-key", "sp_real")
				return dir
			},
			want: map[string]string{
				"serpapi-api-key": "sp_real",
			},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "anthropic-api-key", "ak_123")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{
				"anthropic-api-key": "ak_123",
			},
		},
		{
			name: "returns empty map for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read any file")
	}
	dir := t.TempDir()
	writeFile(t, dir, "good-key", "value123")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	// The good file should still be returned; the bad file is skipped with a warning.
	assert.Equal(t, "value123", got["good-key"])
	_, hasBad := got["bad-key"]
	assert.False(t, hasBad, "unreadable file should not appear in result")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "PEXELS_API_KEY", "SERPAPI_API_KEY", "OLLAMA_HOST"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestCredentialsPrecedence(t *testing.T) {
	clearCredentialEnv(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	writeFile(t, dir, ".env", "GEMINI_API_KEY=from-dotenv\nPEXELS_API_KEY=from-dotenv\nSERPAPI_API_KEY=from-dotenv\n")

	secretsDir := filepath.Join(dir, "secrets")
	require.NoError(t, os.Mkdir(secretsDir, 0o755))
	writeFile(t, secretsDir, "gemini-api-key", "from-file")

	t.Setenv("PEXELS_API_KEY", "from-env")

	c, err := Credentials(secretsDir, envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-file", c.GeminiAPIKey)
	assert.Equal(t, "from-env", c.PexelsAPIKey)
	assert.Equal(t, "from-dotenv", c.SerpAPIKey)
	assert.Empty(t, c.OpenAIAPIKey)
	assert.Equal(t, "http://localhost:11434", c.OllamaHost)
}

func TestCredentialsMissingSources(t *testing.T) {
	clearCredentialEnv(t)

	dir := t.TempDir()
	c, err := Credentials(filepath.Join(dir, "none"), filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Empty(t, c.GeminiAPIKey)
	assert.Equal(t, "http://localhost:11434", c.OllamaHost)
}

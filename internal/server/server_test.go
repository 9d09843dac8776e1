// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/internal/archive"
	"github.com/pdiddy/content-engine/internal/article"
	"github.com/pdiddy/content-engine/internal/generate"
	"github.com/pdiddy/content-engine/internal/server"
	"github.com/pdiddy/content-engine/pkg/types"
)

type stubText struct{}

func (stubText) Generate(context.Context, generate.Request) generate.Result {
	return generate.Success{Text: "Iced coffee is easy.\n\nPour it over ice.", Backend: "stub"}
}

func testServer(t *testing.T, withArchive bool) *server.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := &article.Writer{
		Text:   stubText{},
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Logger: logger,
	}

	var store server.Archive
	if withArchive {
		s, err := archive.Open(filepath.Join(t.TempDir(), "content.db"))
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		store = s
	}
	return server.New(types.ServerConfig{Mode: gin.TestMode}, w, store, logger)
}

func do(t *testing.T, srv *server.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := do(t, testServer(t, false), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestWriteArticle(t *testing.T) {
	srv := testServer(t, true)
	rec := do(t, srv, http.MethodPost, "/api/v1/articles",
		`{"topic": "Iced Coffee", "hTags": ["Why It Matters", "How To Make It"], "numImages": 0, "seed": 3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var art types.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &art))
	assert.Equal(t, "Iced Coffee", art.Title)
	assert.Equal(t, "iced-coffee", art.SEO.Slug)
	assert.Len(t, art.Headings, 2)
	assert.Equal(t, "stub", art.GeneratedBy)

	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/api/v1/articles/"), loc)

	rec = do(t, srv, http.MethodGet, loc, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var e archive.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "iced-coffee", e.Slug)
	require.NotNil(t, e.Article)
	assert.Equal(t, art.Content, e.Article.Content)

	rec = do(t, srv, http.MethodGet, "/api/v1/articles/iced-coffee", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWriteArticleBadJSON(t *testing.T) {
	rec := do(t, testServer(t, false), http.MethodPost, "/api/v1/articles", `{"topic": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestGetArticleNotFound(t *testing.T) {
	for _, withArchive := range []bool{true, false} {
		rec := do(t, testServer(t, withArchive), http.MethodGet, "/api/v1/articles/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "article not found")
	}
}

func TestHumanizeEndpoint(t *testing.T) {
	srv := testServer(t, false)

	rec := do(t, srv, http.MethodPost, "/api/v1/humanize", `{"text": "We utilize tools daily.", "seed": 1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp server.HumanizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Text, "use tools")

	rec = do(t, srv, http.MethodPost, "/api/v1/humanize", `{"style": "ultra"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

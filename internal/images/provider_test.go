// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

type stubProvider struct {
	name  string
	imgs  []types.ImageRef
	err   error
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(_ context.Context, _ string, _ int) ([]types.ImageRef, error) {
	s.calls++
	return s.imgs, s.err
}

func TestChainStopsAtFirstSuccess(t *testing.T) {
	failing := &stubProvider{name: "a", err: errors.New("boom")}
	good := &stubProvider{name: "b", imgs: []types.ImageRef{{URL: "https://b/1"}, {URL: "https://b/2"}}}
	unused := &stubProvider{name: "c", imgs: []types.ImageRef{{URL: "https://c/1"}}}

	c := &Chain{Providers: []Provider{failing, good, unused}}
	got := c.Find(context.Background(), "Iced Coffee", 2)

	require.Len(t, got, 2)
	assert.Equal(t, "https://b/1", got[0].URL)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, good.calls)
	assert.Equal(t, 0, unused.calls)
}

func TestChainSkipsEmptyAndUnusableResults(t *testing.T) {
	empty := &stubProvider{name: "empty"}
	junk := &stubProvider{name: "junk", imgs: []types.ImageRef{{URL: "data:image/png;base64,xx"}}}
	good := &stubProvider{name: "good", imgs: []types.ImageRef{{URL: "https://good/1"}}}

	c := &Chain{Providers: []Provider{empty, junk, good}}
	got := c.Find(context.Background(), "tea", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "https://good/1", got[0].URL)
}

func TestChainPadsWithPlaceholders(t *testing.T) {
	good := &stubProvider{name: "good", imgs: []types.ImageRef{{URL: "https://good/1"}}}
	c := &Chain{Providers: []Provider{good}}

	got := c.Find(context.Background(), "tea", 3)
	require.Len(t, got, 3)
	assert.Equal(t, "https://good/1", got[0].URL)
	assert.Equal(t, Placeholders("tea", 1, 2), got[1:])
}

func TestChainAllFailUsesDeterministicPlaceholders(t *testing.T) {
	c := &Chain{Providers: []Provider{&stubProvider{name: "a", err: errors.New("down")}}}

	first := c.Find(context.Background(), "Iced Coffee", 4)
	second := (&Chain{}).Find(context.Background(), "Iced Coffee", 4)

	require.Len(t, first, 4)
	assert.Equal(t, first, second)
	seen := map[string]bool{}
	for _, img := range first {
		assert.True(t, strings.HasPrefix(img.URL, "https://picsum.photos/seed/"))
		assert.True(t, strings.HasSuffix(img.URL, "/800/600"))
		seen[img.URL] = true
	}
	assert.Len(t, seen, 4, "placeholder URLs differ per index")
	assert.NotEqual(t, first, Placeholders("Hot Coffee", 0, 4))
	assert.Nil(t, c.Find(context.Background(), "x", 0))
}

func TestChainTimeout(t *testing.T) {
	slow := providerFunc(func(ctx context.Context) ([]types.ImageRef, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	c := &Chain{Providers: []Provider{slow}, Timeout: 10 * time.Millisecond}
	got := c.Find(context.Background(), "tea", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Picsum Photos", got[0].SourceAttribution)
}

type providerFunc func(ctx context.Context) ([]types.ImageRef, error)

func (f providerFunc) Name() string { return "func" }

func (f providerFunc) Search(ctx context.Context, _ string, _ int) ([]types.ImageRef, error) {
	return f(ctx)
}

func TestOptimizeQuery(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"Iced Coffee", "iced,coffee"},
		{"The Ultimate Guide to Iced Coffee", "iced,coffee"},
		{"Best Hiking Trails in Colorado for Beginners Today", "hiking,trails,colorado,beginners"},
		{"How to Go", "how,to,go"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			assert.Equal(t, tt.want, OptimizeQuery(tt.topic))
		})
	}
}

func TestSerpAPIProvider(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "google_images", r.URL.Query().Get("engine"))
		assert.Equal(t, "secret", r.URL.Query().Get("api_key"))
		fmt.Fprint(w, `{"images_results":[
			{"original":"https://x/1.jpg","title":"One","source":"example.com"},
			{"thumbnail":"https://x/2-thumb.jpg","title":"Two"},
			{"title":"no url"},
			{"original":"https://x/3.jpg","title":"Three"}
		]}`)
	}))
	defer ts.Close()

	old := serpAPIBase
	serpAPIBase = ts.URL
	defer func() { serpAPIBase = old }()

	p := &SerpAPIProvider{Client: ts.Client(), APIKey: "secret"}
	got, err := p.Search(context.Background(), "iced,coffee", 2)
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "q=iced+coffee")
	require.Len(t, got, 2)
	assert.Equal(t, types.ImageRef{URL: "https://x/1.jpg", AltText: "One", Caption: "One", SourceAttribution: "example.com"}, got[0])
	assert.Equal(t, "https://x/2-thumb.jpg", got[1].URL)
	assert.Equal(t, "Google Images", got[1].SourceAttribution)
}

func TestSerpAPIProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{"http error", http.StatusUnauthorized, `{}`, "HTTP 401"},
		{"api error", http.StatusOK, `{"error":"Invalid API key"}`, "Invalid API key"},
		{"malformed", http.StatusOK, `{not json`, "parsing SerpApi response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			old := serpAPIBase
			serpAPIBase = ts.URL
			defer func() { serpAPIBase = old }()

			p := &SerpAPIProvider{Client: ts.Client(), APIKey: "k"}
			_, err := p.Search(context.Background(), "tea", 2)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPexelsProvider(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pk", r.Header.Get("Authorization"))
		assert.Equal(t, "landscape", r.URL.Query().Get("orientation"))
		assert.Equal(t, "3", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, `{"photos":[
			{"alt":"Iced coffee glass","photographer":"Ana","src":{"original":"https://p/1o.jpg","large":"https://p/1l.jpg"}},
			{"alt":"Beans","photographer":"Ben","src":{"original":"https://p/2o.jpg"}}
		]}`)
	}))
	defer ts.Close()

	old := pexelsAPIBase
	pexelsAPIBase = ts.URL
	defer func() { pexelsAPIBase = old }()

	p := &PexelsProvider{Client: ts.Client(), APIKey: "pk"}
	got, err := p.Search(context.Background(), "iced,coffee", 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://p/1l.jpg", got[0].URL)
	assert.Equal(t, "Photo by Ana on Pexels", got[0].SourceAttribution)
	assert.Equal(t, "https://p/2o.jpg", got[1].URL)
}

func TestScrapeProvider(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "isch", r.URL.Query().Get("tbm"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		fmt.Fprint(w, `<html><body>
			<img src="https://logo/logo.png" alt="logo">
			<img src="data:image/gif;base64,R0lG" data-src="https://s/1.jpg" alt="First">
			<img src="/relative.png">
			<img src="https://s/2.jpg">
			<img src="https://s/3.jpg" alt="Third">
		</body></html>`)
	}))
	defer ts.Close()

	old := scrapeBase
	scrapeBase = ts.URL
	defer func() { scrapeBase = old }()

	p := NewScrapeProvider(ts.Client(), types.HTTPConfig{}, 0)
	got, err := p.Search(context.Background(), "iced,coffee", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.ImageRef{URL: "https://s/1.jpg", AltText: "First", SourceAttribution: "Google Images"}, got[0])
	assert.Equal(t, "https://s/2.jpg", got[1].URL)
	assert.Equal(t, "iced,coffee", got[1].AltText)
}

func TestScrapeProviderRateLimitHonorsContext(t *testing.T) {
	p := NewScrapeProvider(http.DefaultClient, types.HTTPConfig{}, 0.001)
	p.limiter.Allow() // spend the only token

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Search(ctx, "tea", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scrape rate limit")
}

func TestNewChain(t *testing.T) {
	cfg := types.ImageConfig{Providers: []string{"serpapi", "pexels", "scrape"}}

	c, err := NewChain(cfg, types.Credentials{PexelsAPIKey: "pk"}, nil)
	require.NoError(t, err)
	var names []string
	for _, p := range c.Providers {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"pexels", "scrape"}, names)

	_, err = NewChain(types.ImageConfig{Providers: []string{"flickr"}}, types.Credentials{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown image provider "flickr"`)
}

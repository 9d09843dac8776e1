// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

// scrapeBase is the Google Images results page. Declared as a var so tests
// can substitute an httptest server.
var scrapeBase = "https://www.google.com/search"

// browserUserAgent is sent when no user agent is configured; the results
// page serves no images to unknown clients.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// ScrapeProvider reads image URLs from the Google Images results page.
// Requests are rate limited; the limiter is shared by every call on the
// same provider.
type ScrapeProvider struct {
	Client  *http.Client
	HTTP    types.HTTPConfig
	limiter *rate.Limiter
}

// NewScrapeProvider returns a provider allowing perSecond requests per
// second. A non-positive rate disables limiting.
func NewScrapeProvider(client *http.Client, cfg types.HTTPConfig, perSecond float64) *ScrapeProvider {
	lim := rate.NewLimiter(rate.Inf, 1)
	if perSecond > 0 {
		lim = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return &ScrapeProvider{Client: client, HTTP: cfg, limiter: lim}
}

// Name returns the provider identifier.
func (p *ScrapeProvider) Name() string { return "scrape" }

// Search returns up to count images from the results page. The first
// <img> is the site logo and is skipped.
func (p *ScrapeProvider) Search(ctx context.Context, query string, count int) ([]types.ImageRef, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("scrape rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", strings.ReplaceAll(query, ",", " "))
	params.Set("tbm", "isch")

	ua := p.HTTP.UserAgent
	if ua == "" {
		ua = browserUserAgent
	}
	body, err := httputil.Get(ctx, p.Client, "Google Images", scrapeBase+"?"+params.Encode(),
		http.Header{"User-Agent": {ua}}, p.HTTP.MaxRetries)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing Google Images page: %w", err)
	}

	var out []types.ImageRef
	doc.Find("img").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i == 0 {
			return true
		}
		src, _ := s.Attr("src")
		if !strings.HasPrefix(src, "http") {
			src, _ = s.Attr("data-src")
		}
		if !strings.HasPrefix(src, "http") {
			return true
		}
		alt := strings.TrimSpace(s.AttrOr("alt", ""))
		if alt == "" {
			alt = query
		}
		out = append(out, types.ImageRef{URL: src, AltText: alt, SourceAttribution: "Google Images"})
		return len(out) < count
	})
	return out, nil
}

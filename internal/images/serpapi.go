// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/content-engine/internal/httputil"
	"github.com/pdiddy/content-engine/pkg/types"
)

// serpAPIBase is the SerpApi search endpoint. Declared as a var so tests
// can substitute an httptest server.
var serpAPIBase = "https://serpapi.com/search"

// SerpAPIProvider queries Google Images through SerpApi.
type SerpAPIProvider struct {
	Client *http.Client
	APIKey string
	HTTP   types.HTTPConfig
}

// Name returns the provider identifier.
func (p *SerpAPIProvider) Name() string { return "serpapi" }

// Search returns up to count images for query.
func (p *SerpAPIProvider) Search(ctx context.Context, query string, count int) ([]types.ImageRef, error) {
	params := url.Values{}
	params.Set("engine", "google_images")
	params.Set("q", strings.ReplaceAll(query, ",", " "))
	params.Set("api_key", p.APIKey)
	params.Set("num", strconv.Itoa(count))
	params.Set("ijn", "0")

	body, err := httputil.Get(ctx, p.Client, "SerpApi", serpAPIBase+"?"+params.Encode(),
		http.Header{"User-Agent": {p.HTTP.UserAgent}}, p.HTTP.MaxRetries)
	if err != nil {
		return nil, err
	}

	var resp serpAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing SerpApi response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("SerpApi: %s", resp.Error)
	}

	var out []types.ImageRef
	for _, r := range resp.ImagesResults {
		if len(out) == count {
			break
		}
		u := r.Original
		if u == "" {
			u = r.Thumbnail
		}
		if u == "" {
			continue
		}
		source := r.Source
		if source == "" {
			source = "Google Images"
		}
		out = append(out, types.ImageRef{
			URL:               u,
			AltText:           strings.TrimSpace(r.Title),
			Caption:           strings.TrimSpace(r.Title),
			SourceAttribution: source,
		})
	}
	return out, nil
}

type serpAPIResponse struct {
	Error         string `json:"error"`
	ImagesResults []struct {
		Original  string `json:"original"`
		Thumbnail string `json:"thumbnail"`
		Title     string `json:"title"`
		Source    string `json:"source"`
	} `json:"images_results"`
}

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

// pexelsAPIBase is the Pexels photo search endpoint. Declared as a var so
// tests can substitute an httptest server.
var pexelsAPIBase = "https://api.pexels.com/v1/search"

// PexelsProvider queries the Pexels photo API.
type PexelsProvider struct {
	Client *http.Client
	APIKey string
	HTTP   types.HTTPConfig
}

// Name returns the provider identifier.
func (p *PexelsProvider) Name() string { return "pexels" }

// Search returns up to count landscape photos for query.
func (p *PexelsProvider) Search(ctx context.Context, query string, count int) ([]types.ImageRef, error) {
	params := url.Values{}
	params.Set("query", strings.ReplaceAll(query, ",", " "))
	params.Set("per_page", strconv.Itoa(count))
	params.Set("orientation", "landscape")

	header := http.Header{
		"Authorization": {p.APIKey},
		"User-Agent":    {p.HTTP.UserAgent},
	}
	body, err := httputil.Get(ctx, p.Client, "Pexels", pexelsAPIBase+"?"+params.Encode(), header, p.HTTP.MaxRetries)
	if err != nil {
		return nil, err
	}

	var resp pexelsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing Pexels response: %w", err)
	}

	var out []types.ImageRef
	for _, ph := range resp.Photos {
		if len(out) == count {
			break
		}
		u := ph.Src.Large
		if u == "" {
			u = ph.Src.Original
		}
		if u == "" {
			continue
		}
		out = append(out, types.ImageRef{
			URL:               u,
			AltText:           strings.TrimSpace(ph.Alt),
			Caption:           strings.TrimSpace(ph.Alt),
			SourceAttribution: "Photo by " + ph.Photographer + " on Pexels",
		})
	}
	return out, nil
}

type pexelsResponse struct {
	Photos []struct {
		Alt          string `json:"alt"`
		Photographer string `json:"photographer"`
		Src          struct {
			Original string `json:"original"`
			Large    string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

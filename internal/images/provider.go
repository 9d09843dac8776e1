// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images finds images for a topic and interleaves them with the
// body of an article.
package images

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/content-engine/pkg/types"
)

// ErrNoResults is returned by a provider that answered but found nothing.
var ErrNoResults = errors.New("no images found")

// Provider searches one image source.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, count int) ([]types.ImageRef, error)
}

// Chain tries providers in order and stops at the first that returns at
// least one image. Providers are never queried concurrently. When every
// provider fails, or the winner returns fewer than requested, the result
// is padded with Placeholders so Find always yields count images.
type Chain struct {
	Providers []Provider

	// Timeout bounds each provider call. Zero means no extra bound.
	Timeout time.Duration

	Logger *slog.Logger
}

// Find returns exactly count images for topic.
func (c *Chain) Find(ctx context.Context, topic string, count int) []types.ImageRef {
	if count <= 0 {
		return nil
	}
	log := c.logger()
	query := OptimizeQuery(topic)

	var found []types.ImageRef
	for _, p := range c.Providers {
		imgs, err := c.search(ctx, p, query, count)
		if err != nil {
			log.Warn("image provider failed", "provider", p.Name(), "error", err)
			continue
		}
		found = imgs
		log.Info("images found", "provider", p.Name(), "count", len(imgs))
		break
	}

	if len(found) > count {
		found = found[:count]
	}
	if missing := count - len(found); missing > 0 {
		if len(found) == 0 {
			log.Info("using placeholder images", "topic", topic)
		}
		found = append(found, Placeholders(topic, len(found), missing)...)
	}
	return found
}

func (c *Chain) search(ctx context.Context, p Provider, query string, count int) ([]types.ImageRef, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	imgs, err := p.Search(ctx, query, count)
	if err != nil {
		return nil, err
	}
	imgs = usable(imgs)
	if len(imgs) == 0 {
		return nil, ErrNoResults
	}
	return imgs, nil
}

// usable drops results without an http(s) URL.
func usable(imgs []types.ImageRef) []types.ImageRef {
	out := imgs[:0]
	for _, img := range imgs {
		if strings.HasPrefix(img.URL, "http://") || strings.HasPrefix(img.URL, "https://") {
			out = append(out, img)
		}
	}
	return out
}

func (c *Chain) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// NewChain builds providers by name from cfg. Unknown names are an
// error; providers missing their API key are skipped with a warning.
func NewChain(cfg types.ImageConfig, creds types.Credentials, logger *slog.Logger) (*Chain, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client := &http.Client{Timeout: cfg.Timeout}

	c := &Chain{Timeout: cfg.Timeout, Logger: logger}
	for _, name := range cfg.Providers {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "serpapi":
			if creds.SerpAPIKey == "" {
				logger.Warn("skipping image provider without API key", "provider", name)
				continue
			}
			c.Providers = append(c.Providers, &SerpAPIProvider{Client: client, APIKey: creds.SerpAPIKey, HTTP: cfg.HTTPConfig})
		case "pexels":
			if creds.PexelsAPIKey == "" {
				logger.Warn("skipping image provider without API key", "provider", name)
				continue
			}
			c.Providers = append(c.Providers, &PexelsProvider{Client: client, APIKey: creds.PexelsAPIKey, HTTP: cfg.HTTPConfig})
		case "scrape":
			c.Providers = append(c.Providers, NewScrapeProvider(client, cfg.HTTPConfig, cfg.ScrapeRate))
		default:
			return nil, fmt.Errorf("unknown image provider %q", name)
		}
	}
	return c, nil
}

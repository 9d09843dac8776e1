// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/pdiddy/content-engine/internal/archive"
	"github.com/pdiddy/content-engine/internal/article"
	"github.com/pdiddy/content-engine/internal/generate"
	"github.com/pdiddy/content-engine/internal/humanize"
	"github.com/pdiddy/content-engine/internal/images"
	"github.com/pdiddy/content-engine/pkg/types"
)

const defaultUserAgent = "content-engine/0.1"

func setDefaults(v *viper.Viper) {
	v.SetDefault("style", humanize.PolicyProfessional)
	v.SetDefault("policy_file", "")
	v.SetDefault("meta_truncation", string(types.TruncateHard))

	v.SetDefault("generation.timeout", "60s")
	v.SetDefault("generation.user_agent", defaultUserAgent)
	v.SetDefault("generation.max_retries", 2)

	v.SetDefault("images.timeout", "15s")
	v.SetDefault("images.user_agent", defaultUserAgent)
	v.SetDefault("images.max_retries", 2)
	v.SetDefault("images.providers", []string{"serpapi", "pexels", "scrape"})
	v.SetDefault("images.scrape_rate", 0.5)

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.path", "content.db")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
}

// loadConfig decodes v into a Config and checks the enumerated fields.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	switch cfg.MetaTruncation {
	case types.TruncateHard, types.TruncateWord:
	default:
		return types.Config{}, fmt.Errorf("meta_truncation must be %q or %q, got %q", types.TruncateHard, types.TruncateWord, cfg.MetaTruncation)
	}
	return cfg, nil
}

// policyWriter returns a Writer with the configured policies and no
// network collaborators.
func policyWriter(cfg types.Config) (*article.Writer, error) {
	reg := humanize.DefaultRegistry()
	if cfg.PolicyFile != "" {
		if err := reg.LoadFile(cfg.PolicyFile); err != nil {
			return nil, err
		}
	}
	if _, err := reg.Lookup(cfg.Style); err != nil {
		return nil, fmt.Errorf("default style: %w", err)
	}
	return &article.Writer{
		Policies:       reg,
		DefaultStyle:   cfg.Style,
		MetaTruncation: cfg.MetaTruncation,
		Logger:         logger,
	}, nil
}

// newWriter adds the generation and image chains to a policyWriter.
func newWriter(cfg types.Config, creds types.Credentials, logger *slog.Logger) (*article.Writer, error) {
	w, err := policyWriter(cfg)
	if err != nil {
		return nil, err
	}
	w.Logger = logger

	text, err := generate.NewChain(cfg.Generation, creds, logger)
	if err != nil {
		return nil, err
	}
	if len(text.Backends) == 0 {
		logger.Warn("no generation backends available, articles will use fallback text")
	}
	w.Text = text

	imgs, err := images.NewChain(cfg.Images, creds, logger)
	if err != nil {
		return nil, err
	}
	w.Images = imgs
	return w, nil
}

// setup loads the global configuration and builds a Writer from it.
func setup() (types.Config, *article.Writer, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return types.Config{}, nil, err
	}
	w, err := newWriter(cfg, creds, logger)
	if err != nil {
		return types.Config{}, nil, err
	}
	return cfg, w, nil
}

func openArchive(cfg types.ArchiveConfig) (*archive.Store, error) {
	store, err := archive.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", cfg.Path, err)
	}
	return store, nil
}

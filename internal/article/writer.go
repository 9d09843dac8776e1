// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package article turns a Request into a finished Article: it generates
// the text, finds its outline, humanizes it under a policy, places images
// and assembles the final markup with its SEO and structured data.
package article

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/pdiddy/content-engine/internal/assemble"
	"github.com/pdiddy/content-engine/internal/generate"
	"github.com/pdiddy/content-engine/internal/humanize"
	"github.com/pdiddy/content-engine/internal/images"
	"github.com/pdiddy/content-engine/internal/outline"
	"github.com/pdiddy/content-engine/internal/segment"
	"github.com/pdiddy/content-engine/pkg/types"
)

// GeneratedByFallback marks an article built from static fallback text.
const GeneratedByFallback = "fallback"

// TextGenerator produces raw article text. *generate.Chain implements it.
type TextGenerator interface {
	Generate(ctx context.Context, req generate.Request) generate.Result
}

// ImageFinder returns exactly count images for a topic. *images.Chain
// implements it.
type ImageFinder interface {
	Find(ctx context.Context, topic string, count int) []types.ImageRef
}

// Writer produces articles. A Writer holds no per-request state and may
// be shared across goroutines as long as its collaborators can.
type Writer struct {
	Text   TextGenerator
	Images ImageFinder

	// Policies resolves style names. Nil means the built-in policies.
	Policies *humanize.Registry

	// DefaultStyle is used when a request names no style.
	DefaultStyle string

	// Injector replaces the noise injector of policies that allow errors.
	Injector humanize.Injector

	MetaTruncation types.MetaTruncation

	// Now returns the publication time. Nil means time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// Write builds one article. Upstream failures never surface as errors:
// text falls back to static content and images to placeholders. An error
// is returned only when a policy cannot be built.
func (w *Writer) Write(ctx context.Context, req types.Request) (types.Article, error) {
	req = req.Normalize()
	log := w.logger().With("topic", req.Topic)

	policy, err := w.policy(req.Style, log)
	if err != nil {
		return types.Article{}, err
	}
	pipeline, err := humanize.Build(policy, humanize.Options{Injector: w.Injector})
	if err != nil {
		return types.Article{}, err
	}
	seed := seedFor(req)
	log.Debug("humanization seed", "seed", seed)
	st := humanize.NewState(seed)

	requested := outline.FromTexts(req.HTags)
	raw, generatedBy := w.generate(ctx, req, policy, requested, st, log)

	sections := w.sections(req.Topic, raw, requested, st)
	sections = pipeline.Run(sections, st)
	headings := types.Headings(sections)
	log.Info("humanized content", "policy", policy.Name, "passes", strings.Join(pipeline.Names(), ","), "headings", len(headings))

	imgs := w.findImages(ctx, req.Topic, req.Images())
	blocks := images.Place(types.Blocks(sections), imgs, policy.ImageMode, policy.LeftoverImages)
	body, err := assemble.Body(blocks)
	if err != nil {
		return types.Article{}, err
	}

	now := w.now()
	toc := outline.BuildTOC(headings)
	seo := assemble.SEO(req.Topic, req.Keywords, now.Year(), w.MetaTruncation)

	return types.Article{
		Title: req.Topic,
		Content: assemble.Assemble(assemble.Document{
			Title:      req.Topic,
			TOC:        toc,
			Body:       body,
			References: req.References,
			Published:  now,
		}),
		Images:      imgs,
		SEO:         seo,
		Schema:      assemble.Schema(req.Topic, seo.MetaDescription, seo.Slug, headings, req.EEAT, now),
		TOC:         toc,
		Keywords:    nonNil(req.Keywords),
		References:  nonNil(req.References),
		Headings:    nonNilHeadings(headings),
		Style:       policy.Name,
		WordCount:   wordCount(sections),
		GeneratedBy: generatedBy,
	}, nil
}

// generate returns raw text from the generator, or fallback text built
// on the requested headings (or a synthesized skeleton).
func (w *Writer) generate(ctx context.Context, req types.Request, policy types.Policy, requested []types.Heading, st *humanize.State, log *slog.Logger) (string, string) {
	if w.Text != nil {
		prompt, err := generate.Prompt(policy.PromptStyle, generate.PromptData{
			Topic:        req.Topic,
			WordCount:    req.WordCount,
			Tone:         req.Tone,
			Audience:     req.TargetAudience,
			Headings:     req.HTags,
			Keywords:     req.Keywords,
			IncludeStats: req.IncludeStats,
			Author:       req.EEAT,
		})
		if err != nil {
			log.Warn("rendering prompt failed", "error", err)
		} else {
			switch res := w.Text.Generate(ctx, generate.Request{Prompt: prompt, Sampling: policy.Sampling}).(type) {
			case generate.Success:
				return res.Text, res.Backend
			case generate.Failure:
				log.Warn("text generation failed, using fallback content", "reason", res.Error())
			}
		}
	}

	headings := requested
	if len(headings) == 0 {
		headings = outline.Skeleton(req.Topic, st.Rand)
	}
	return generate.Fallback(req.Topic, headings), GeneratedByFallback
}

// sections splits raw text into sections. Requested headings are kept
// when the text already carries the same number of level-2 headings;
// otherwise the paragraphs are spread across them. Text without headings
// and no requested headings gets a synthesized skeleton.
func (w *Writer) sections(topic, raw string, requested []types.Heading, st *humanize.State) []types.Section {
	d := outline.Parse(raw)

	if len(requested) > 0 {
		if d.Marked && countLevel(d.Headings(), 2) == len(requested) {
			return d.Sections
		}
		return outline.Distribute(d.Paragraphs(), requested)
	}
	if d.Marked {
		return d.Sections
	}
	return outline.Distribute(d.Paragraphs(), outline.Skeleton(topic, st.Rand))
}

func (w *Writer) findImages(ctx context.Context, topic string, n int) []types.ImageRef {
	if n <= 0 {
		return []types.ImageRef{}
	}
	if w.Images == nil {
		return images.Placeholders(topic, 0, n)
	}
	return w.Images.Find(ctx, topic, n)
}

// policy resolves a style name. An unknown style falls back to the
// default style with a warning.
func (w *Writer) policy(style string, log *slog.Logger) (types.Policy, error) {
	reg := w.Policies
	if reg == nil {
		reg = humanize.DefaultRegistry()
	}
	def := w.DefaultStyle
	if def == "" {
		def = humanize.PolicyProfessional
	}
	if style == "" {
		style = def
	}
	p, err := reg.Lookup(style)
	if errors.Is(err, humanize.ErrUnknownPolicy) && style != def {
		log.Warn("unknown style, using default", "style", style, "default", def)
		return reg.Lookup(def)
	}
	return p, err
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

func (w *Writer) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// seedFor returns the request's seed, or a fresh random one.
func seedFor(req types.Request) uint64 {
	if req.Seed != nil {
		return *req.Seed
	}
	return rand.Uint64()
}

func countLevel(hs []types.Heading, level int) int {
	n := 0
	for _, h := range hs {
		if h.Level == level {
			n++
		}
	}
	return n
}

func wordCount(sections []types.Section) int {
	n := 0
	for _, s := range sections {
		for _, p := range s.Paragraphs {
			n += segment.WordCount(p)
		}
	}
	return n
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilHeadings(hs []types.Heading) []types.Heading {
	if hs == nil {
		return []types.Heading{}
	}
	return hs
}

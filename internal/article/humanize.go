// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package article

import (
	"strings"

	"github.com/pdiddy/content-engine/internal/humanize"
	"github.com/pdiddy/content-engine/internal/outline"
	"github.com/pdiddy/content-engine/internal/segment"
	"github.com/pdiddy/content-engine/pkg/types"
)

// Humanize rewrites existing text under the named style. Markdown or
// HTML headings in the input are kept and returned as markdown headings;
// everything else comes back as plain paragraphs. A nil seed draws a
// fresh one.
func (w *Writer) Humanize(text, style string, seed *uint64) (string, error) {
	policy, err := w.policy(style, w.logger())
	if err != nil {
		return "", err
	}
	pipeline, err := humanize.Build(policy, humanize.Options{Injector: w.Injector})
	if err != nil {
		return "", err
	}
	st := humanize.NewState(seedFor(types.Request{Seed: seed}))

	sections := pipeline.Run(outline.Parse(text).Sections, st)
	return Markdown(sections), nil
}

// Markdown renders sections as markdown: each heading as ## or ### with
// its anchor id, paragraphs separated by blank lines.
func Markdown(sections []types.Section) string {
	var blocks []string
	for _, s := range sections {
		if h := s.Heading; h != nil {
			blocks = append(blocks, strings.Repeat("#", max(h.Level, 2))+" "+h.Text+" {#"+h.AnchorID+"}")
		}
		blocks = append(blocks, s.Paragraphs...)
	}
	return segment.JoinParagraphs(blocks)
}

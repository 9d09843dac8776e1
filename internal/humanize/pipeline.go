// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package humanize rewrites generated prose so it reads less uniformly.
// The rewrite is a sequence of named passes (phrase filtering, structure
// variation, lexical simplification, filler insertion and, for policies
// that allow it, typo noise). Every pass draws randomness from the State
// it is given, so a fixed seed reproduces the output exactly.
package humanize

import (
	"fmt"
	"strings"

	"github.com/pdiddy/content-engine/internal/segment"
	"github.com/pdiddy/content-engine/pkg/types"
)

// Pass names, in pipeline order.
const (
	PassNormalize = "normalize"
	PassPhrases   = "phrases"
	PassStructure = "structure"
	PassLexical   = "lexical"
	PassFillers   = "fillers"
	PassErrors    = "errors"
	PassCap       = "cap"
	PassCleanup   = "cleanup"
)

// Pass is one named step. Apply receives the paragraphs of one section
// and returns the rewritten paragraphs.
type Pass struct {
	Name  string
	Apply func(paragraphs []string, st *State) []string
}

// Pipeline is an ordered list of passes built from a policy.
type Pipeline struct {
	Policy types.Policy
	Passes []Pass
}

// Options customizes pipeline construction.
type Options struct {
	// Injector replaces the default noise injector. It is consulted only
	// when the policy allows error injection.
	Injector Injector
}

// Build assembles the passes for policy. The error pass is added only
// when the policy sets AllowErrorInjection.
func Build(policy types.Policy, opts Options) (*Pipeline, error) {
	filter, err := NewFilter(policy.PhraseRules)
	if err != nil {
		return nil, fmt.Errorf("building %s pipeline: %w", policy.Name, err)
	}
	// Recounts every rule over the finished text. Later passes can insert
	// or join text into a match the phrases pass never saw.
	capFilter, err := newFilter(policy.PhraseRules, "cap:")
	if err != nil {
		return nil, fmt.Errorf("building %s pipeline: %w", policy.Name, err)
	}
	simplifier := NewSimplifier(policy.Synonyms)
	vary := VaryConfigFor(policy)
	fillers := FillerConfig{
		Starters:           policy.Starters,
		Fillers:            policy.Fillers,
		StarterProbability: policy.StarterProbability,
		FillerProbability:  policy.FillerProbability,
		MaxRepeats:         policy.MaxFillerRepeats,
		Phrases:            filter,
	}

	p := &Pipeline{Policy: policy}
	p.Passes = append(p.Passes,
		eachParagraph(PassNormalize, func(s string, _ *State) string { return NormalizeUnicode(s) }),
		eachParagraph(PassPhrases, func(s string, st *State) string { return filter.Apply(s, st.Tracker) }),
		Pass{Name: PassStructure, Apply: func(paras []string, st *State) []string {
			return Vary(paras, st.Rand, vary)
		}},
		eachParagraph(PassLexical, func(s string, _ *State) string { return simplifier.Simplify(s) }),
	)
	if len(fillers.Starters) > 0 || len(fillers.Fillers) > 0 {
		p.Passes = append(p.Passes, eachParagraph(PassFillers, func(s string, st *State) string {
			return InjectFillers(s, st, fillers)
		}))
	}
	if policy.AllowErrorInjection {
		injector := opts.Injector
		if injector == nil {
			injector = NewNoiseInjector(policy.ErrorRates)
		}
		p.Passes = append(p.Passes, eachParagraph(PassErrors, func(s string, st *State) string {
			return InjectErrors(s, policy, injector, st.Rand)
		}))
	}
	p.Passes = append(p.Passes, eachParagraph(PassCap, func(s string, st *State) string {
		return capFilter.Apply(CleanArtifacts(s), st.Tracker)
	}))
	p.Passes = append(p.Passes, eachParagraph(PassCleanup, func(s string, _ *State) string { return CleanArtifacts(s) }))
	return p, nil
}

// Names lists the pass names in order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.Passes))
	for i, pass := range p.Passes {
		names[i] = pass.Name
	}
	return names
}

// Run applies every pass to every section, pass by pass, so caps tracked
// in st hold in document order. Headings are never rewritten. Paragraphs
// emptied by a pass are dropped.
func (p *Pipeline) Run(sections []types.Section, st *State) []types.Section {
	out := make([]types.Section, len(sections))
	for i, s := range sections {
		out[i] = types.Section{Heading: s.Heading, Paragraphs: append([]string(nil), s.Paragraphs...)}
	}
	for _, pass := range p.Passes {
		for i := range out {
			out[i].Paragraphs = dropEmpty(pass.Apply(out[i].Paragraphs, st))
		}
	}
	return out
}

// Text humanizes free text: it is segmented into paragraphs, run as one
// section and joined again.
func (p *Pipeline) Text(text string, st *State) string {
	sections := p.Run([]types.Section{{Paragraphs: segment.Paragraphs(text)}}, st)
	return segment.JoinParagraphs(sections[0].Paragraphs)
}

func eachParagraph(name string, fn func(string, *State) string) Pass {
	return Pass{Name: name, Apply: func(paras []string, st *State) []string {
		out := make([]string, len(paras))
		for i, s := range paras {
			out[i] = fn(s, st)
		}
		return out
	}}
}

func dropEmpty(paras []string) []string {
	out := paras[:0]
	for _, s := range paras {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

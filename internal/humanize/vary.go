// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package humanize

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/content-engine/internal/segment"
	"github.com/pdiddy/content-engine/pkg/types"
)

// VaryConfig holds the structure-variation parameters. Zero thresholds
// fall back to the defaults below.
type VaryConfig struct {
	MergeProbability   float64
	MergeMaxSentences  int
	SplitProbability   float64
	SplitThreshold     int
	CombineProbability float64
	CombineMaxWords    int
	CombinedMaxWords   int
}

const (
	defaultSplitThreshold   = 8
	defaultCombineMaxWords  = 8
	defaultCombinedMaxWords = 20
)

// VaryConfigFor extracts the structure parameters from a policy.
func VaryConfigFor(p types.Policy) VaryConfig {
	return VaryConfig{
		MergeProbability:   p.MergeProbability,
		MergeMaxSentences:  p.MergeMaxSentences,
		SplitProbability:   p.SplitProbability,
		SplitThreshold:     p.SplitThreshold,
		CombineProbability: p.CombineProbability,
		CombineMaxWords:    p.CombineMaxWords,
		CombinedMaxWords:   p.CombinedMaxWords,
	}
}

func (c VaryConfig) withDefaults() VaryConfig {
	if c.SplitThreshold <= 0 {
		c.SplitThreshold = defaultSplitThreshold
	}
	if c.CombineMaxWords <= 0 {
		c.CombineMaxWords = defaultCombineMaxWords
	}
	if c.CombinedMaxWords <= 0 {
		c.CombinedMaxWords = defaultCombinedMaxWords
	}
	return c
}

// Vary merges, splits and combines with probabilities from cfg, drawing
// every decision from rng. The same seed and input give the same output.
func Vary(paragraphs []string, rng *rand.Rand, cfg VaryConfig) []string {
	cfg = cfg.withDefaults()
	out := MergeParagraphs(paragraphs, rng, cfg.MergeProbability, cfg.MergeMaxSentences)
	out = SplitParagraphs(out, rng, cfg.SplitProbability, cfg.SplitThreshold)
	for i, p := range out {
		out[i] = CombineSentences(p, rng, cfg.CombineProbability, cfg.CombineMaxWords, cfg.CombinedMaxWords)
	}
	return out
}

// MergeParagraphs scans adjacent pairs left to right and joins each pair
// with probability p. A merged pair is consumed, so no paragraph takes
// part in two merges. When maxSentences is positive only pairs in which
// both paragraphs have at most that many sentences are eligible.
func MergeParagraphs(paragraphs []string, rng *rand.Rand, p float64, maxSentences int) []string {
	out := make([]string, 0, len(paragraphs))
	for i := 0; i < len(paragraphs); i++ {
		if i+1 < len(paragraphs) && mergeable(paragraphs[i], paragraphs[i+1], maxSentences) && rng.Float64() < p {
			out = append(out, paragraphs[i]+" "+paragraphs[i+1])
			i++
			continue
		}
		out = append(out, paragraphs[i])
	}
	return out
}

func mergeable(a, b string, maxSentences int) bool {
	if maxSentences <= 0 {
		return true
	}
	return len(segment.Sentences(a)) <= maxSentences && len(segment.Sentences(b)) <= maxSentences
}

// SplitParagraphs splits each paragraph holding more than threshold
// sentences at its middle sentence with probability p. The second half
// starts with a capital letter.
func SplitParagraphs(paragraphs []string, rng *rand.Rand, p float64, threshold int) []string {
	out := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		sentences := segment.Sentences(para)
		if len(sentences) > threshold && rng.Float64() < p {
			mid := len(sentences) / 2
			out = append(out,
				segment.JoinSentences(sentences[:mid]),
				capitalizeFirst(segment.JoinSentences(sentences[mid:])))
			continue
		}
		out = append(out, para)
	}
	return out
}

// CombineSentences joins a sentence shorter than maxWords with the next
// one using a comma, with probability p, when the joined sentence has at
// most combinedMax words.
func CombineSentences(paragraph string, rng *rand.Rand, p float64, maxWords, combinedMax int) string {
	sentences := segment.Sentences(paragraph)
	if len(sentences) < 2 {
		return paragraph
	}
	out := make([]string, 0, len(sentences))
	for i := 0; i < len(sentences); i++ {
		cur := sentences[i]
		if i+1 < len(sentences) {
			next := sentences[i+1]
			cw, nw := segment.WordCount(cur), segment.WordCount(next)
			if cw < maxWords && cw+nw <= combinedMax && endsWithPeriod(cur) && rng.Float64() < p {
				out = append(out, strings.TrimRight(cur, ".")+", "+lowerFirst(next))
				i++
				continue
			}
		}
		out = append(out, cur)
	}
	return segment.JoinSentences(out)
}

// endsWithPeriod reports whether s ends in a plain period; questions and
// exclamations are never folded into a comma join.
func endsWithPeriod(s string) bool {
	return strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "..")
}

// lowerFirst lower-cases the first letter of s unless the first word is
// "I", an "I'" contraction or an all-caps token such as an acronym.
func lowerFirst(s string) string {
	word, _, _ := strings.Cut(s, " ")
	if word == "I" || strings.HasPrefix(word, "I'") || isAllCaps(word) {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func isAllCaps(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 1
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package humanize

import (
	"strings"

	"github.com/pdiddy/content-engine/internal/segment"
)

// FillerConfig controls casual starter and filler insertion.
type FillerConfig struct {
	Starters           []string
	Fillers            []string
	StarterProbability float64
	FillerProbability  float64

	// MaxRepeats caps each starter or filler per document (default 2).
	MaxRepeats int

	// Phrases, when set, vetoes insertions that would exceed a phrase
	// rule's cap and charges the rules an insertion matches.
	Phrases *PhraseFilter
}

const defaultMaxFillerRepeats = 2

// InjectFillers prefixes some sentences with a conversational starter and
// drops a filler into some longer ones. Every phrase is capped per
// document through tracker.
func InjectFillers(paragraph string, st *State, cfg FillerConfig) string {
	if cfg.MaxRepeats <= 0 {
		cfg.MaxRepeats = defaultMaxFillerRepeats
	}
	sentences := segment.Sentences(paragraph)
	for i, s := range sentences {
		if len(cfg.Starters) > 0 && st.Rand.Float64() < cfg.StarterProbability {
			s = addStarter(s, st, cfg)
		}
		if len(cfg.Fillers) > 0 && st.Rand.Float64() < cfg.FillerProbability {
			s = addFiller(s, st, cfg)
		}
		sentences[i] = s
	}
	return segment.JoinSentences(sentences)
}

func addStarter(s string, st *State, cfg FillerConfig) string {
	first, _, _ := strings.Cut(s, " ")
	first = strings.ToLower(strings.TrimRight(first, ",.!?"))
	for _, starter := range cfg.Starters {
		head, _, _ := strings.Cut(strings.ToLower(starter), " ")
		if first == strings.TrimRight(head, ",") {
			return s
		}
	}
	starter := cfg.Starters[st.Rand.IntN(len(cfg.Starters))]
	prefix := strings.TrimRight(starter, ", ") + ", "
	if !admit("starter:"+starter, prefix, st, cfg) {
		return s
	}
	return prefix + lowerFirst(s)
}

func addFiller(s string, st *State, cfg FillerConfig) string {
	words := strings.Fields(s)
	if len(words) <= 5 {
		return s
	}
	filler := cfg.Fillers[st.Rand.IntN(len(cfg.Fillers))]
	if !admit("filler:"+filler, filler, st, cfg) {
		return s
	}
	pos := 2 + st.Rand.IntN(len(words)-3)
	out := make([]string, 0, len(words)+1)
	out = append(out, words[:pos]...)
	out = append(out, filler)
	out = append(out, words[pos:]...)
	return strings.Join(out, " ")
}

// admit checks the per-phrase repeat cap for key and the phrase rules for
// the inserted text, and records the insertion when both allow it.
func admit(key, inserted string, st *State, cfg FillerConfig) bool {
	if st.Tracker.Count(key) >= cfg.MaxRepeats {
		return false
	}
	if !cfg.Phrases.Admit(inserted, st.Tracker) {
		return false
	}
	st.Tracker.Add(key, 1)
	return true
}

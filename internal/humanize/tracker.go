// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package humanize

import (
	"math/rand/v2"
	"strings"
)

// Tracker counts phrases already emitted in one document. It caps phrase
// repetition across paragraphs and sections and must not outlive the
// document it was created for.
type Tracker struct {
	counts map[string]int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{counts: make(map[string]int)}
}

// Count reports how many times key has been recorded.
func (t *Tracker) Count(key string) int {
	return t.counts[normalizeKey(key)]
}

// Add records n more emissions of key.
func (t *Tracker) Add(key string, n int) {
	if n <= 0 {
		return
	}
	t.counts[normalizeKey(key)] += n
}

// Allow records one emission of key and reports true when the count was
// still below limit. A false return records nothing.
func (t *Tracker) Allow(key string, limit int) bool {
	k := normalizeKey(key)
	if t.counts[k] >= limit {
		return false
	}
	t.counts[k]++
	return true
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// State is the per-document context threaded through every pass: the
// random source and the emission tracker.
type State struct {
	Rand    *rand.Rand
	Tracker *Tracker
}

// NewState returns a fresh state seeded with seed.
func NewState(seed uint64) *State {
	return &State{
		Rand:    NewRand(seed),
		Tracker: NewTracker(),
	}
}

// NewRand returns a deterministic random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package humanize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/pkg/types"
)

func TestInjectFillersCapsStarters(t *testing.T) {
	st := NewState(1)
	cfg := FillerConfig{Starters: []string{"Look"}, StarterProbability: 1, MaxRepeats: 2}

	got := InjectFillers("The sun is out. We go now. It is warm. Birds sing.", st, cfg)

	assert.Equal(t, "Look, the sun is out. Look, we go now. It is warm. Birds sing.", got)
	assert.Equal(t, 2, st.Tracker.Count("starter:Look"))
}

func TestInjectFillersCapHoldsAcrossParagraphs(t *testing.T) {
	st := NewState(1)
	cfg := FillerConfig{Starters: []string{"Look"}, StarterProbability: 1, MaxRepeats: 1}

	first := InjectFillers("The sun is out.", st, cfg)
	second := InjectFillers("The moon is up.", st, cfg)

	assert.Equal(t, "Look, the sun is out.", first)
	assert.Equal(t, "The moon is up.", second)
}

func TestInjectFillersSkipsExistingStarter(t *testing.T) {
	st := NewState(1)
	cfg := FillerConfig{Starters: []string{"Look"}, StarterProbability: 1}
	assert.Equal(t, "Look, it works.", InjectFillers("Look, it works.", st, cfg))
}

func TestInjectFillersMidSentence(t *testing.T) {
	st := NewState(3)
	cfg := FillerConfig{Fillers: []string{"you know"}, FillerProbability: 1}

	got := InjectFillers("We brew the coffee slowly every single morning.", st, cfg)

	assert.Contains(t, got, " you know ")
	assert.True(t, strings.HasPrefix(got, "We brew "))
	assert.Equal(t, 10, len(strings.Fields(got)))
}

func TestInjectFillersLeavesShortSentences(t *testing.T) {
	st := NewState(3)
	cfg := FillerConfig{Fillers: []string{"you know"}, FillerProbability: 1}
	assert.Equal(t, "Too short here.", InjectFillers("Too short here.", st, cfg))
}

func TestInjectFillersRespectsPhraseRules(t *testing.T) {
	phrases, err := NewFilter([]types.PhraseRule{{Pattern: `\blook,`, Regex: true, MaxOccurrences: 1}})
	require.NoError(t, err)

	st := NewState(1)
	st.Tracker.Add("rule:"+`\blook,`, 1)
	cfg := FillerConfig{Starters: []string{"Look"}, StarterProbability: 1, MaxRepeats: 5, Phrases: phrases}

	assert.Equal(t, "The sun is out. We go now.", InjectFillers("The sun is out. We go now.", st, cfg))
	assert.Zero(t, st.Tracker.Count("starter:Look"))
}

func TestPhraseFilterAdmit(t *testing.T) {
	f, err := NewFilter([]types.PhraseRule{{Pattern: "I mean", WholeWord: true, MaxOccurrences: 2}})
	require.NoError(t, err)

	tr := NewTracker()
	assert.True(t, f.Admit("I mean", tr))
	assert.True(t, f.Admit("i mean", tr))
	assert.False(t, f.Admit("I mean", tr))
	assert.True(t, f.Admit("you know", tr))
	assert.Equal(t, 2, tr.Count("rule:I mean"))

	var none *PhraseFilter
	assert.True(t, none.Admit("anything", tr))
}

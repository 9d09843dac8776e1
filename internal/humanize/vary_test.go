// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package humanize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var sampleParagraphs = []string{
	"Iced coffee is simple. It needs good beans. Cold water helps. Patience matters most.",
	"Start with a coarse grind. Steep it overnight. Strain it well. Serve it over ice. Add milk if you like. Stir it gently. Taste it first. Adjust the ratio. Enjoy the result.",
	"Short one.",
	"Another short one. With two sentences.",
}

func TestVaryDeterministicForSeed(t *testing.T) {
	cfg := VaryConfig{MergeProbability: 0.4, SplitProbability: 0.5, CombineProbability: 0.3}

	first := Vary(append([]string(nil), sampleParagraphs...), NewRand(42), cfg)
	second := Vary(append([]string(nil), sampleParagraphs...), NewRand(42), cfg)

	assert.Equal(t, first, second)
}

func TestMergeParagraphs(t *testing.T) {
	in := []string{"A.", "B.", "C."}

	assert.Equal(t, []string{"A. B.", "C."}, MergeParagraphs(in, NewRand(1), 1, 0))
	assert.Equal(t, in, MergeParagraphs(in, NewRand(1), 0, 0))
}

func TestMergeParagraphsConsumesPairs(t *testing.T) {
	in := []string{"A.", "B.", "C.", "D."}
	got := MergeParagraphs(in, NewRand(7), 1, 0)
	assert.Equal(t, []string{"A. B.", "C. D."}, got)
}

func TestMergeParagraphsMaxSentences(t *testing.T) {
	in := []string{"One. Two. Three.", "Four.", "Five."}
	got := MergeParagraphs(in, NewRand(1), 1, 2)
	assert.Equal(t, []string{"One. Two. Three.", "Four. Five."}, got)
}

func TestSplitParagraphs(t *testing.T) {
	in := []string{"First one. Second one. third one. Fourth one.", "Keep me. Whole."}
	got := SplitParagraphs(in, NewRand(1), 1, 3)
	assert.Equal(t, []string{"First one. Second one.", "Third one. Fourth one.", "Keep me. Whole."}, got)

	assert.Equal(t, in, SplitParagraphs(in, NewRand(1), 0, 3))
}

func TestCombineSentences(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		combinedMax int
		want        string
	}{
		{"joins short pair", "It is hot. We drink iced coffee.", 20, "It is hot, we drink iced coffee."},
		{"keeps I capitalized", "It rains. I stay in.", 20, "It rains, I stay in."},
		{"keeps acronym", "We tested it. NASA agreed.", 20, "We tested it, NASA agreed."},
		{"respects combined max", "It is hot. We drink iced coffee.", 5, "It is hot. We drink iced coffee."},
		{"skips questions", "Is it hot? We think so.", 20, "Is it hot? We think so."},
		{"single sentence", "Only one here.", 20, "Only one here."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CombineSentences(tt.in, NewRand(3), 1, 8, tt.combinedMax))
		})
	}
}

func TestCombineSentencesConsumesPair(t *testing.T) {
	got := CombineSentences("One. Two. Three.", NewRand(3), 1, 8, 20)
	assert.Equal(t, "One, two. Three.", got)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package humanize

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-engine/pkg/types"
)

func countMatches(t *testing.T, pattern, text string) int {
	t.Helper()
	return len(regexp.MustCompile("(?i)"+pattern).FindAllStringIndex(text, -1))
}

func TestFilterPhraseCap(t *testing.T) {
	text := "Honestly it works. I mean, honestly, it does. Honestly? Yes. HONESTLY."
	for _, n := range []int{0, 1, 2, 3, 10} {
		t.Run(fmt.Sprintf("max=%d", n), func(t *testing.T) {
			got, err := Filter(text, []types.PhraseRule{{Pattern: "honestly", WholeWord: true, MaxOccurrences: n}})
			require.NoError(t, err)
			assert.LessOrEqual(t, countMatches(t, `\bhonestly\b`, got), n)
		})
	}
}

func TestFilterKeepsFirstMatches(t *testing.T) {
	text := "Honestly a is fine. Honestly b is fine. Honestly c is fine."
	got, err := Filter(text, []types.PhraseRule{{Pattern: "honestly", WholeWord: true, MaxOccurrences: 1}})
	require.NoError(t, err)
	assert.Equal(t, "Honestly a is fine. B is fine. C is fine.", got)
}

func TestFilterRemovesJoinedMatches(t *testing.T) {
	// Deleting the inner "ab" joins the outer letters into a new "ab".
	got, err := Filter("aabb", []types.PhraseRule{{Pattern: "ab", MaxOccurrences: 0}})
	require.NoError(t, err)
	assert.Equal(t, 0, countMatches(t, "ab", got))
}

func TestFilterBannedEndings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"closing offer", "Coffee is great. Let me know if you have questions! Enjoy it.", "Coffee is great. Enjoy it."},
		{"hope this helps", "Brew it cold. Hope this helps.", "Brew it cold."},
		{"intro", "In this article, we will explore coffee. Coffee is good.", "Coffee is good."},
		{"untouched", "Nothing to see here.", "Nothing to see here."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(tt.in, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterReplacement(t *testing.T) {
	rules := []types.PhraseRule{{Pattern: `\bhowever,`, Regex: true, Replacement: "but"}}

	got, err := Filter("However, it works.", rules)
	require.NoError(t, err)
	assert.Equal(t, "But it works.", got)

	got, err = Filter("It is slow. however, it works.", rules)
	require.NoError(t, err)
	assert.Equal(t, "It is slow. but it works.", got)
}

func TestFilterDeletionCapitalizesSentence(t *testing.T) {
	rules := []types.PhraseRule{{Pattern: `\bin conclusion,\s*`, Regex: true}}
	got, err := Filter("Cold brew wins. In conclusion, coffee is great.", rules)
	require.NoError(t, err)
	assert.Equal(t, "Cold brew wins. Coffee is great.", got)
}

func TestFilterInvalidRegex(t *testing.T) {
	_, err := Filter("text", []types.PhraseRule{{Pattern: "(unclosed", Regex: true}})
	assert.Error(t, err)
}

func TestPhraseFilterSharesCapAcrossParagraphs(t *testing.T) {
	f, err := NewFilter([]types.PhraseRule{{Pattern: "basically", WholeWord: true, MaxOccurrences: 1}})
	require.NoError(t, err)

	tr := NewTracker()
	first := f.Apply("It is basically done.", tr)
	second := f.Apply("We basically agree.", tr)

	assert.Equal(t, "It is basically done.", first)
	assert.Equal(t, "We agree.", second)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package humanize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/content-engine/pkg/types"
)

// bannedEndings are meta-commentary sentences that never survive
// filtering, whatever the policy.
var bannedEndings = []types.PhraseRule{
	{Pattern: `\b(?:let me know|feel free to|hope this helps|if you have any (?:other |more )?questions|don't hesitate to|happy reading)[^.!?\n]*[.!?]`, Regex: true},
	{Pattern: `^(?:in this (?:article|post|guide)|let's (?:explore|dive in)|today,? we(?:'ll| will)|this (?:article|post|guide) will)[^.!?\n]*[.!?]`, Regex: true},
	{Pattern: `\bas an ai(?: language model)?\b[^.!?\n]*[.!?]`, Regex: true},
}

// BannedEndings returns the unconditional meta-commentary rules.
func BannedEndings() []types.PhraseRule {
	out := make([]types.PhraseRule, len(bannedEndings))
	copy(out, bannedEndings)
	return out
}

type compiledRule struct {
	rule types.PhraseRule
	re   *regexp.Regexp
	key  string
}

// PhraseFilter applies an ordered list of phrase rules, banned endings first.
type PhraseFilter struct {
	rules []compiledRule
}

// NewFilter compiles rules. Rules with an empty pattern are ignored.
func NewFilter(rules []types.PhraseRule) (*PhraseFilter, error) {
	return newFilter(rules, "rule:")
}

// newFilter compiles rules whose tracker keys start with prefix. Filters
// with different prefixes keep separate counts in one tracker.
func newFilter(rules []types.PhraseRule, prefix string) (*PhraseFilter, error) {
	all := append(BannedEndings(), rules...)
	f := &PhraseFilter{}
	for _, r := range all {
		if strings.TrimSpace(r.Pattern) == "" {
			continue
		}
		expr := r.Pattern
		if !r.Regex {
			expr = regexp.QuoteMeta(expr)
			if r.WholeWord {
				expr = `\b` + expr + `\b`
			}
		}
		re, err := regexp.Compile("(?im)" + expr)
		if err != nil {
			return nil, fmt.Errorf("compiling phrase rule %q: %w", r.Pattern, err)
		}
		if r.MaxOccurrences < 0 {
			r.MaxOccurrences = 0
		}
		f.rules = append(f.rules, compiledRule{rule: r, re: re, key: prefix + r.Pattern})
	}
	return f, nil
}

// Filter removes banned endings and enforces rules on a single text.
// Nothing is remembered between calls.
func Filter(text string, rules []types.PhraseRule) (string, error) {
	f, err := NewFilter(rules)
	if err != nil {
		return "", err
	}
	return f.Apply(text, NewTracker()), nil
}

// Apply enforces every rule on text. Matches already recorded in tracker
// count against each rule's cap, so applying the filter paragraph by
// paragraph with one tracker caps the whole document.
func (f *PhraseFilter) Apply(text string, tracker *Tracker) string {
	for _, r := range f.rules {
		budget := r.rule.MaxOccurrences - tracker.Count(r.key)
		if budget < 0 {
			budget = 0
		}
		var kept int
		text, kept = applyRule(text, r, budget)
		tracker.Add(r.key, kept)
	}
	return text
}

// Admit reports whether phrase can be added to the document without
// pushing any rule past its cap, and when it can, charges every matching
// rule in tracker. A nil filter admits everything.
func (f *PhraseFilter) Admit(phrase string, tracker *Tracker) bool {
	if f == nil {
		return true
	}
	type charge struct {
		key string
		n   int
	}
	var charges []charge
	for _, r := range f.rules {
		n := len(matchIndexes(r.re, phrase))
		if n == 0 {
			continue
		}
		if tracker.Count(r.key)+n > r.rule.MaxOccurrences {
			return false
		}
		charges = append(charges, charge{r.key, n})
	}
	for _, c := range charges {
		tracker.Add(c.key, c.n)
	}
	return true
}

// applyRule keeps the first keep matches of r and replaces the rest. The
// excess matches are located against the text as it stood before the
// pass and rewritten from the rightmost to the leftmost so earlier offsets
// stay valid. Deleting a match can join text into a new match, so the
// pass repeats until the cap holds. Only the first pass substitutes the
// replacement; later passes delete.
func applyRule(text string, r compiledRule, keep int) (string, int) {
	replacement := r.rule.Replacement
	for {
		locs := matchIndexes(r.re, text)
		if len(locs) <= keep {
			return text, len(locs)
		}
		excess := locs[keep:]
		for i := len(excess) - 1; i >= 0; i-- {
			start, end := excess[i][0], excess[i][1]
			repl := matchCase(text[start:end], replacement)
			rest := text[end:]
			if repl == "" {
				rest = strings.TrimLeft(rest, " \t")
				if atSentenceStart(text, start) {
					rest = capitalizeFirst(rest)
				}
			}
			text = text[:start] + repl + rest
		}
		text = tidySpacing(text)
		replacement = ""
	}
}

// matchIndexes returns the non-empty matches of re in text.
func matchIndexes(re *regexp.Regexp, text string) [][]int {
	var out [][]int
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[1] > loc[0] {
			out = append(out, loc)
		}
	}
	return out
}

// matchCase capitalizes repl when the text it replaces starts upper-case.
func matchCase(matched, repl string) string {
	if repl == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(matched)
	if unicode.IsUpper(r) {
		return capitalizeFirst(repl)
	}
	return repl
}

// atSentenceStart reports whether position i begins a sentence or line.
func atSentenceStart(text string, i int) bool {
	prefix := strings.TrimRight(text[:i], " \t")
	if prefix == "" || strings.HasSuffix(prefix, "\n") {
		return true
	}
	last, _ := utf8.DecodeLastRuneInString(prefix)
	return last == '.' || last == '!' || last == '?'
}

var (
	multiSpace       = regexp.MustCompile(`[ \t]{2,}`)
	spaceBeforePunct = regexp.MustCompile(`[ \t]+([,.;:!?])`)
	lineEdgeSpace    = regexp.MustCompile(`(?m)^[ \t]+|[ \t]+$`)
	leadingPunct     = regexp.MustCompile(`(?m)^[,;:][ \t]*`)
)

// tidySpacing repairs the gaps left by deletions without touching line breaks.
func tidySpacing(text string) string {
	text = multiSpace.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = leadingPunct.ReplaceAllString(text, "")
	text = lineEdgeSpace.ReplaceAllString(text, "")
	return text
}

// capitalizeFirst upper-cases the first letter of s, skipping leading non-letters.
func capitalizeFirst(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) {
			if unicode.IsUpper(r) {
				return s
			}
			return s[:i] + string(unicode.ToUpper(r)) + s[i+utf8.RuneLen(r):]
		}
		if !unicode.IsSpace(r) && r != '"' && r != '\'' && r != '(' {
			return s
		}
	}
	return s
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package humanize

import (
	"regexp"
	"sort"
	"strings"
)

type synonymRule struct {
	re   *regexp.Regexp
	repl string
}

// Simplifier replaces formal words and phrases with casual ones. Matching
// is case-insensitive and bounded by word boundaries, so a key never
// matches inside a longer token ("utilize" leaves "utilized" alone).
type Simplifier struct {
	rules []synonymRule
}

// NewSimplifier compiles a synonym table. Longer keys are applied first so
// multi-word phrases win over their parts; ties are ordered alphabetically.
func NewSimplifier(synonyms map[string]string) *Simplifier {
	keys := make([]string, 0, len(synonyms))
	for k := range synonyms {
		if strings.TrimSpace(k) != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	s := &Simplifier{rules: make([]synonymRule, 0, len(keys))}
	for _, k := range keys {
		s.rules = append(s.rules, synonymRule{
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(k) + `\b`),
			repl: synonyms[k],
		})
	}
	return s
}

// Simplify applies every rule to text.
func (s *Simplifier) Simplify(text string) string {
	for _, r := range s.rules {
		text = r.re.ReplaceAllStringFunc(text, func(m string) string {
			return matchCase(m, r.repl)
		})
	}
	return text
}

// Simplify is a convenience for a single text and table.
func Simplify(text string, synonyms map[string]string) string {
	return NewSimplifier(synonyms).Simplify(text)
}

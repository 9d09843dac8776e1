// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package humanize

import (
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/pdiddy/content-engine/pkg/types"
)

// Injector adds typo-like noise to a paragraph. It is only ever called for
// policies with AllowErrorInjection set.
type Injector interface {
	Inject(text string, rng *rand.Rand) string
}

// DefaultErrorRates are the per-word and per-mark noise probabilities.
var DefaultErrorRates = types.ErrorRates{
	Transpose:  0.03,
	Lowercase:  0.02,
	DropPeriod: 0.01,
	DropComma:  0.05,
}

// NoiseInjector swaps adjacent letters, drops capitals, periods and commas.
type NoiseInjector struct {
	Rates types.ErrorRates
}

// NewNoiseInjector returns an injector using rates, or the defaults when rates is zero.
func NewNoiseInjector(rates types.ErrorRates) *NoiseInjector {
	if rates == (types.ErrorRates{}) {
		rates = DefaultErrorRates
	}
	return &NoiseInjector{Rates: rates}
}

// Inject applies the noise operations word by word. Line breaks inside
// text are preserved.
func (n *NoiseInjector) Inject(text string, rng *rand.Rand) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = n.injectLine(line, rng)
	}
	return strings.Join(lines, "\n")
}

func (n *NoiseInjector) injectLine(line string, rng *rand.Rand) string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return line
	}
	for i, w := range words {
		if rng.Float64() < n.Rates.Transpose {
			w = transposeLetters(w, rng)
		}
		if i > 0 && rng.Float64() < n.Rates.Lowercase {
			w = downgradeCapital(w)
		}
		if strings.HasSuffix(w, ".") && !strings.HasSuffix(w, "..") && rng.Float64() < n.Rates.DropPeriod {
			w = strings.TrimSuffix(w, ".")
		}
		if strings.HasSuffix(w, ",") && rng.Float64() < n.Rates.DropComma {
			w = strings.TrimSuffix(w, ",")
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

// transposeLetters swaps one pair of adjacent letters in a word longer
// than three characters.
func transposeLetters(w string, rng *rand.Rand) string {
	runes := []rune(w)
	if len(runes) <= 3 {
		return w
	}
	var pairs []int
	for i := 0; i+1 < len(runes); i++ {
		if unicode.IsLetter(runes[i]) && unicode.IsLetter(runes[i+1]) && runes[i] != runes[i+1] {
			pairs = append(pairs, i)
		}
	}
	if len(pairs) == 0 {
		return w
	}
	i := pairs[rng.IntN(len(pairs))]
	runes[i], runes[i+1] = runes[i+1], runes[i]
	return string(runes)
}

// downgradeCapital lower-cases a capitalized word. Acronyms and "I" are left alone.
func downgradeCapital(w string) string {
	runes := []rune(w)
	if len(runes) < 2 || !unicode.IsUpper(runes[0]) || isAllCaps(w) {
		return w
	}
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// InjectErrors runs injector over text only when the policy allows it.
// Under any other policy the text is returned untouched.
func InjectErrors(text string, policy types.Policy, injector Injector, rng *rand.Rand) string {
	if !policy.AllowErrorInjection || injector == nil {
		return text
	}
	return injector.Inject(text, rng)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package humanize

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// punctuationMap folds typographic punctuation that generators favour into plain ASCII.
var punctuationMap = map[rune]rune{
	'\u2018': '\'', '\u2019': '\'', '\u201a': '\'', '\u2032': '\'',
	'\u201c': '"', '\u201d': '"', '\u201e': '"', '\u2033': '"',
	'\u2013': '-', '\u2014': '-', '\u2015': '-', '\u2212': '-',
	'\u00a0': ' ', '\u2007': ' ', '\u202f': ' ', '\u3000': ' ',
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff', '\u00ad':
		return true
	}
	return false
}

// NormalizeUnicode folds quotes, dashes and odd spaces to ASCII, removes
// zero-width characters and applies NFKC.
func NormalizeUnicode(text string) string {
	t := transform.Chain(
		runes.Remove(runes.Predicate(isZeroWidth)),
		runes.Map(func(r rune) rune {
			if m, ok := punctuationMap[r]; ok {
				return m
			}
			return r
		}),
		norm.NFKC,
	)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

var (
	repeatedDots  = regexp.MustCompile(`\.{2,}`)
	repeatedBangs = regexp.MustCompile(`!{2,}`)
	repeatedQs    = regexp.MustCompile(`\?{2,}`)
	repeatedComma = regexp.MustCompile(`,{2,}`)
	missingSpace  = regexp.MustCompile(`([,;])([A-Za-z])`)
)

// CleanArtifacts collapses repeated punctuation and stray spacing left by
// earlier passes.
func CleanArtifacts(text string) string {
	text = repeatedDots.ReplaceAllString(text, ".")
	text = repeatedBangs.ReplaceAllString(text, "!")
	text = repeatedQs.ReplaceAllString(text, "?")
	text = repeatedComma.ReplaceAllString(text, ",")
	text = missingSpace.ReplaceAllString(text, "$1 $2")
	text = tidySpacing(text)
	return strings.TrimSpace(text)
}

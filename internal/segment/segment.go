// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment splits prose into paragraphs, sentences and words. It
// works on surface punctuation only and never fails: empty input yields
// empty output.
package segment

import (
	"regexp"
	"strings"
)

// paragraphBreak matches two or more line breaks, allowing whitespace-only lines between them.
var paragraphBreak = regexp.MustCompile(`\r?\n(?:[ \t]*\r?\n)+`)

// sentenceEnd matches a run of terminal punctuation followed by whitespace.
// Group 1 is the whitespace so the punctuation stays with its sentence.
var sentenceEnd = regexp.MustCompile(`[.!?]+(\s+)`)

// Paragraphs splits text at blank lines and returns the trimmed, non-empty paragraphs.
func Paragraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Sentences splits a paragraph into sentences. A paragraph without
// terminal punctuation is returned as a single sentence.
func Sentences(paragraph string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringSubmatchIndex(paragraph, -1) {
		if s := strings.TrimSpace(paragraph[start:loc[2]]); s != "" {
			out = append(out, s)
		}
		start = loc[3]
	}
	if s := strings.TrimSpace(paragraph[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// Words splits text on whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// JoinParagraphs is the inverse of Paragraphs.
func JoinParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, "\n\n")
}

// JoinSentences joins sentences with a single space.
func JoinSentences(sentences []string) string {
	return strings.Join(sentences, " ")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/content-engine/pkg/types"
)

const (
	// MaxSlugLength bounds the slug in bytes; slugs are ASCII.
	MaxSlugLength = 50

	// MaxMetaDescription bounds the meta description in characters.
	MaxMetaDescription = 155
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slug derives the URL slug for topic: lowercase, non-alphanumeric runs
// become one hyphen, hyphens are trimmed from both ends, and the result
// is cut to MaxSlugLength. Trimming again after the cut keeps
// Slug(Slug(s)) == Slug(s).
func Slug(topic string) string {
	s := strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(topic), "-"), "-")
	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}
	return s
}

// MetaDescription returns the templated description for topic cut to
// MaxMetaDescription characters. TruncateHard cuts at the limit even
// mid-word; TruncateWord backs up to the last space.
func MetaDescription(topic string, year int, mode types.MetaTruncation) string {
	full := fmt.Sprintf("Complete guide to %s. Expert insights, practical tips, and real-world examples. Updated for %d.",
		strings.TrimSpace(topic), year)
	return truncate(full, MaxMetaDescription, mode)
}

func truncate(s string, limit int, mode types.MetaTruncation) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	cut := string(r[:limit])
	if mode != types.TruncateWord {
		return cut
	}
	// r[limit] is the first dropped rune; a space there means the cut
	// already falls on a word boundary.
	if r[limit] != ' ' {
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, " ,;:-")
}

// SEO builds the metadata record. The focus keyword is the first keyword,
// or the topic when there are none.
func SEO(topic string, keywords []string, year int, mode types.MetaTruncation) types.SEOMetadata {
	var kws []string
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			kws = append(kws, k)
		}
	}
	md := types.SEOMetadata{
		Slug:            Slug(topic),
		MetaDescription: MetaDescription(topic, year, mode),
		Keywords:        topic,
		FocusKeyword:    topic,
	}
	if len(kws) > 0 {
		md.Keywords = strings.Join(kws, ", ")
		md.FocusKeyword = kws[0]
	}
	return md
}

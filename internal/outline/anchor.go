// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/content-engine/pkg/types"
)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// fallbackAnchor is used when a heading has no ASCII letters or digits.
const fallbackAnchor = "section"

// AnchorID derives the anchor for a heading: lowercase, every run of
// characters outside a-z and 0-9 becomes one hyphen, and leading and
// trailing hyphens are trimmed. AnchorID(AnchorID(s)) == AnchorID(s).
func AnchorID(text string) string {
	id := strings.Trim(nonAlnumRun.ReplaceAllString(strings.ToLower(text), "-"), "-")
	if id == "" {
		return fallbackAnchor
	}
	return id
}

// NewHeading builds a heading with its anchor derived from text.
func NewHeading(level int, text string) types.Heading {
	text = strings.TrimSpace(text)
	return types.Heading{Level: level, Text: text, AnchorID: AnchorID(text)}
}

// reservedAnchors are ids the assembled page already uses outside the
// headings.
var reservedAnchors = []string{types.ReferencesAnchor}

// Uniquify makes anchor ids unique in document order by suffixing
// repeats with -2, -3 and so on. Reserved ids count as already taken.
// Headings are updated in place.
func Uniquify(headings []*types.Heading) {
	seen := make(map[string]bool)
	for _, id := range reservedAnchors {
		seen[id] = true
	}
	for _, h := range headings {
		base := AnchorID(h.AnchorID)
		id := base
		for n := 2; seen[id]; n++ {
			id = fmt.Sprintf("%s-%d", base, n)
		}
		seen[id] = true
		h.AnchorID = id
	}
}

// UniquifySections applies Uniquify to the headings of sections.
func UniquifySections(sections []types.Section) {
	var hs []*types.Heading
	for i := range sections {
		if sections[i].Heading != nil {
			hs = append(hs, sections[i].Heading)
		}
	}
	Uniquify(hs)
}

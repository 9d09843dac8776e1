// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import "strings"

// queryStopWords are generic or non-visual words that make image searches worse.
var queryStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "about": true, "how": true,
	"what": true, "why": true, "when": true, "guide": true, "tips": true,
	"best": true, "top": true, "ultimate": true, "complete": true,
	"introduction": true,
}

const maxQueryWords = 4

// OptimizeQuery reduces a topic to at most four comma-separated visual
// keywords. Stop words and words of two letters or fewer are removed;
// if nothing survives, the first three words are used as-is.
func OptimizeQuery(topic string) string {
	words := strings.Fields(strings.ToLower(topic))
	var kept []string
	for _, w := range words {
		if len([]rune(w)) > 2 && !queryStopWords[w] {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		kept = words[:min(3, len(words))]
	}
	if len(kept) > maxQueryWords {
		kept = kept[:maxQueryWords]
	}
	return strings.Join(kept, ",")
}

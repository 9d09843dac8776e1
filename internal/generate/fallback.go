// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"strings"

	"github.com/pdiddy/content-engine/pkg/types"
)

// fallbackSentences are rotated through the sections of fallback content.
var fallbackSentences = []string{
	"%s is worth a closer look, and this section covers the basics.",
	"There is more to %s than most people expect at first.",
	"A few practical details about %s make a real difference.",
	"People new to %s tend to run into the same handful of questions.",
	"Getting %s right mostly comes down to paying attention to the small things.",
	"Here is what matters most about %s in day-to-day use.",
}

// Fallback returns static markdown used when every backend failed. Each
// heading gets one short paragraph; with no headings the content is three
// plain paragraphs. The result is never empty.
func Fallback(topic string, headings []types.Heading) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = types.DefaultTopic
	}

	var b strings.Builder
	if len(headings) == 0 {
		for i := 0; i < 3; i++ {
			if i > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, fallbackSentences[i], topic)
		}
		return b.String()
	}

	for i, h := range headings {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s %s {#%s}\n\n", strings.Repeat("#", max(h.Level, 2)), h.Text, h.AnchorID)
		fmt.Fprintf(&b, fallbackSentences[i%len(fallbackSentences)], topic)
	}
	return b.String()
}

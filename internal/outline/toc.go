// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"html"
	"strings"

	"github.com/pdiddy/content-engine/pkg/types"
)

// BuildTOC renders an ordered list linking to every heading. Level-3
// headings nest under the preceding level-2 entry. Each href is
// "#"+AnchorID of exactly one heading. No headings renders nothing.
func BuildTOC(headings []types.Heading) string {
	if len(headings) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<nav class="table-of-contents" aria-label="Table of Contents">`)
	b.WriteString("\n<h2>Table of Contents</h2>\n<ol>\n")

	open := false   // an <li> for a level-2 entry is open
	nested := false // a nested <ol> is open inside it
	for _, h := range headings {
		link := `<a href="#` + html.EscapeString(h.AnchorID) + `">` + html.EscapeString(h.Text) + `</a>`
		if h.Level == 3 && open {
			if !nested {
				b.WriteString("\n<ol>\n")
				nested = true
			}
			b.WriteString("<li>" + link + "</li>\n")
			continue
		}
		if nested {
			b.WriteString("</ol>\n")
			nested = false
		}
		if open {
			b.WriteString("</li>\n")
		}
		b.WriteString("<li>" + link)
		open = true
	}
	if nested {
		b.WriteString("</ol>\n")
	}
	if open {
		b.WriteString("</li>\n")
	}
	b.WriteString("</ol>\n</nav>")
	return b.String()
}

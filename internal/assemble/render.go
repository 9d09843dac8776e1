// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble renders the article body and wraps it with the table
// of contents and references, and derives the SEO and structured-data
// records that accompany it.
package assemble

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/pdiddy/content-engine/pkg/types"
)

// markdown renders paragraph text. Raw HTML in paragraphs is not passed
// through.
var markdown = goldmark.New()

// Body renders a block stream as HTML. Paragraph text is read as inline
// markdown; headings carry their anchor id.
func Body(blocks []types.Block) (string, error) {
	var b strings.Builder
	for _, blk := range blocks {
		switch blk.Kind {
		case types.ParagraphBlock:
			var buf bytes.Buffer
			if err := markdown.Convert([]byte(blk.Text), &buf); err != nil {
				return "", fmt.Errorf("rendering paragraph: %w", err)
			}
			b.WriteString(strings.TrimSpace(buf.String()))
		case types.HeadingBlock:
			b.WriteString(headingHTML(blk.Heading))
		case types.ImageBlock:
			b.WriteString(figureHTML(blk.Image))
		default:
			return "", fmt.Errorf("unknown block kind %s", blk.Kind)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func headingHTML(h types.Heading) string {
	level := h.Level
	if level != 3 {
		level = 2
	}
	return fmt.Sprintf(`<h%d id="%s">%s</h%d>`, level, html.EscapeString(h.AnchorID), html.EscapeString(h.Text), level)
}

func figureHTML(img types.ImageRef) string {
	var b strings.Builder
	b.WriteString(`<figure class="article-image">` + "\n")
	fmt.Fprintf(&b, `<img src="%s" alt="%s" loading="lazy">`+"\n", html.EscapeString(img.URL), html.EscapeString(img.AltText))
	if img.Caption != "" || img.SourceAttribution != "" {
		b.WriteString("<figcaption>")
		b.WriteString(html.EscapeString(img.Caption))
		if img.SourceAttribution != "" {
			if img.Caption != "" {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, `<span class="image-credit">%s</span>`, html.EscapeString(img.SourceAttribution))
		}
		b.WriteString("</figcaption>\n")
	}
	b.WriteString("</figure>")
	return b.String()
}

// References renders the references section. Only http and https URLs
// are listed; with none the section is omitted.
func References(refs []string) string {
	var items []string
	for _, r := range refs {
		r = strings.TrimSpace(r)
		if !strings.HasPrefix(r, "http://") && !strings.HasPrefix(r, "https://") {
			continue
		}
		u := html.EscapeString(r)
		items = append(items, fmt.Sprintf(`<li><a href="%s" target="_blank" rel="noopener noreferrer">%s</a></li>`, u, u))
	}
	if len(items) == 0 {
		return ""
	}
	return `<section id="` + types.ReferencesAnchor + `" class="references">` + "\n" +
		"<h2>References and Sources</h2>\n<ol>\n" +
		strings.Join(items, "\n") +
		"\n</ol>\n</section>"
}

// Document is the input to Assemble.
type Document struct {
	Title      string
	TOC        string
	Body       string
	References []string
	Published  time.Time
}

// Assemble wraps the table of contents, body and references in a single
// article element.
func Assemble(doc Document) string {
	var b strings.Builder
	b.WriteString(`<article class="blog-post" itemscope itemtype="https://schema.org/Article">` + "\n")
	fmt.Fprintf(&b, `<meta itemprop="headline" content="%s">`+"\n", html.EscapeString(doc.Title))
	if !doc.Published.IsZero() {
		fmt.Fprintf(&b, `<meta itemprop="datePublished" content="%s">`+"\n", doc.Published.UTC().Format(time.RFC3339))
	}
	if doc.TOC != "" {
		b.WriteString(doc.TOC + "\n")
	}
	b.WriteString(`<div class="post-content" itemprop="articleBody">` + "\n")
	b.WriteString(doc.Body)
	b.WriteString("</div>\n")
	if refs := References(doc.References); refs != "" {
		b.WriteString(refs + "\n")
	}
	b.WriteString("</article>")
	return b.String()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline finds the heading structure of generated content,
// synthesizes one when the generator supplied none, and renders the
// table of contents that links to it.
package outline

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/content-engine/internal/segment"
	"github.com/pdiddy/content-engine/pkg/types"
)

var (
	htmlHeadingMarker     = regexp.MustCompile(`(?i)<h[23][\s>]`)
	htmlBlockMarker       = regexp.MustCompile(`(?i)<(?:p|div|section|article|ul|ol)[\s>]`)
	markdownHeadingMarker = regexp.MustCompile(`(?m)^#{2,3}[ \t]+\S`)
	markdownHeading       = regexp.MustCompile(`^(#{1,6})[ \t]+(.*?)(?:[ \t]*\{#([^}]+)\})?[ \t]*#*[ \t]*$`)
	fenceLine             = regexp.MustCompile("(?m)^[ \t]*```[a-zA-Z]*[ \t]*\r?\n?")
)

// Draft is generated content split into sections.
type Draft struct {
	Sections []types.Section

	// Marked reports whether the content carried its own heading markers.
	Marked bool
}

// Headings returns the draft's headings in document order.
func (d Draft) Headings() []types.Heading {
	return types.Headings(d.Sections)
}

// Paragraphs returns every paragraph of the draft in document order.
func (d Draft) Paragraphs() []string {
	var out []string
	for _, s := range d.Sections {
		out = append(out, s.Paragraphs...)
	}
	return out
}

// Parse splits raw generator output into sections. HTML <h2>/<h3>
// markers are preferred, then markdown ##/### markers; anything else is
// read as plain paragraphs in one unheaded section. Code fences wrapping
// the output are removed first. Anchor ids are unique in the result.
func Parse(raw string) Draft {
	raw = StripFences(raw)

	var d Draft
	switch {
	case htmlHeadingMarker.MatchString(raw):
		d = parseHTML(raw)
	case markdownHeadingMarker.MatchString(raw):
		d = parseMarkdown(raw)
	case htmlBlockMarker.MatchString(raw):
		d = parseHTML(raw)
	default:
		d = Draft{Sections: []types.Section{{Paragraphs: segment.Paragraphs(raw)}}}
	}
	d.Sections = compact(d.Sections)
	UniquifySections(d.Sections)
	return d
}

// ExtractHeadings returns the headings carried by markup, or none when it
// has no heading markers.
func ExtractHeadings(markup string) []types.Heading {
	return Parse(markup).Headings()
}

// StripFences removes markdown code-fence lines such as ```html.
func StripFences(raw string) string {
	return strings.TrimSpace(fenceLine.ReplaceAllString(raw, ""))
}

// sectionBuilder accumulates sections while walking content in order.
type sectionBuilder struct {
	sections []types.Section
	marked   bool
}

func (b *sectionBuilder) heading(level int, text, id string) {
	text = collapseSpace(text)
	if text == "" {
		return
	}
	h := NewHeading(level, text)
	if id = strings.TrimSpace(id); id != "" {
		h.AnchorID = AnchorID(id)
	}
	b.sections = append(b.sections, types.Section{Heading: &h})
	b.marked = true
}

func (b *sectionBuilder) paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if len(b.sections) == 0 {
		b.sections = append(b.sections, types.Section{})
	}
	last := &b.sections[len(b.sections)-1]
	last.Paragraphs = append(last.Paragraphs, text)
}

func (b *sectionBuilder) draft() Draft {
	return Draft{Sections: b.sections, Marked: b.marked}
}

func parseHTML(raw string) Draft {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return Draft{Sections: []types.Section{{Paragraphs: segment.Paragraphs(raw)}}}
	}
	var b sectionBuilder
	walkHTML(&b, doc.Find("body"))
	return b.draft()
}

func walkHTML(b *sectionBuilder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		switch name := goquery.NodeName(s); name {
		case "h2", "h3":
			id, _ := s.Attr("id")
			level := 2
			if name == "h3" {
				level = 3
			}
			b.heading(level, s.Text(), id)
		case "h1", "script", "style", "nav", "figure", "img", "table", "#comment":
		case "ul", "ol":
			s.Find("li").Each(func(_ int, li *goquery.Selection) {
				b.paragraph(collapseSpace(li.Text()))
			})
		case "div", "section", "article", "main", "header", "footer":
			walkHTML(b, s)
		case "#text":
			for _, p := range segment.Paragraphs(s.Text()) {
				b.paragraph(collapseSpace(p))
			}
		default:
			b.paragraph(collapseSpace(s.Text()))
		}
	})
}

func parseMarkdown(raw string) Draft {
	var b sectionBuilder
	var buf []string
	flush := func() {
		for _, p := range segment.Paragraphs(strings.Join(buf, "\n")) {
			b.paragraph(p)
		}
		buf = buf[:0]
	}
	for _, line := range strings.Split(raw, "\n") {
		m := markdownHeading.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			buf = append(buf, line)
			continue
		}
		flush()
		switch len(m[1]) {
		case 2, 3:
			b.heading(len(m[1]), m[2], m[3])
		case 1:
			// The title comes from the topic; a leading # line is dropped.
		default:
			b.paragraph(m[2])
		}
	}
	flush()
	return b.draft()
}

// Distribute spreads paragraphs across headings in order: heading k owns
// paragraphs [k*m/n, (k+1)*m/n) for m paragraphs and n headings. With no
// headings the result is a single unheaded section.
func Distribute(paragraphs []string, headings []types.Heading) []types.Section {
	if len(headings) == 0 {
		return []types.Section{{Paragraphs: append([]string(nil), paragraphs...)}}
	}
	m, n := len(paragraphs), len(headings)
	out := make([]types.Section, n)
	for k := range headings {
		h := headings[k]
		out[k] = types.Section{
			Heading:    &h,
			Paragraphs: append([]string(nil), paragraphs[k*m/n:(k+1)*m/n]...),
		}
	}
	UniquifySections(out)
	return out
}

// compact drops unheaded sections that hold no paragraphs.
func compact(sections []types.Section) []types.Section {
	out := sections[:0]
	for _, s := range sections {
		if s.Heading == nil && len(s.Paragraphs) == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

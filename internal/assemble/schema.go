// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"fmt"
	"time"

	"github.com/pdiddy/content-engine/pkg/types"
)

// MaxArticleSections bounds the section titles listed in structured data.
const MaxArticleSections = 5

const (
	defaultAuthorName  = "Expert Author"
	defaultAuthorTitle = "Industry Expert"
	publisherName      = "Content Engine"
)

// Schema builds the schema.org Article record. Sections lists the first
// MaxArticleSections level-2 heading texts.
func Schema(topic, description, slug string, headings []types.Heading, author types.AuthorInfo, now time.Time) types.StructuredData {
	sections := []string{}
	for _, h := range headings {
		if h.Level != 2 {
			continue
		}
		if len(sections) == MaxArticleSections {
			break
		}
		sections = append(sections, h.Text)
	}

	person := types.Person{
		Type:     "Person",
		Name:     defaultAuthorName,
		JobTitle: defaultAuthorTitle,
	}
	if author.AuthorName != "" {
		person.Name = author.AuthorName
	}
	if author.Credentials != "" {
		person.JobTitle = author.Credentials
	}
	if author.ExperienceYears > 0 {
		person.Description = fmt.Sprintf("%d years of experience", author.ExperienceYears)
	}

	ts := now.UTC().Format(time.RFC3339)
	return types.StructuredData{
		Context:          "https://schema.org",
		Type:             "Article",
		Headline:         topic,
		Description:      description,
		Author:           person,
		Publisher:        types.Publisher{Type: "Organization", Name: publisherName},
		DatePublished:    ts,
		DateModified:     ts,
		MainEntityOfPage: types.WebPage{Type: "WebPage", ID: "#" + slug},
		ArticleSection:   sections,
		InLanguage:       "en-US",
		IsFamilyFriendly: true,
	}
}

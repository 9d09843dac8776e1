// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Request is the JSON object read by the generate command and the
// article endpoint. Zero values are replaced by defaults in Normalize.
type Request struct {
	Topic          string     `json:"topic" yaml:"topic"`
	HTags          []string   `json:"hTags,omitempty" yaml:"hTags,omitempty"`
	Keywords       []string   `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	References     []string   `json:"references,omitempty" yaml:"references,omitempty"`
	WordCount      int        `json:"wordCount,omitempty" yaml:"wordCount,omitempty"`
	NumImages      *int       `json:"numImages,omitempty" yaml:"numImages,omitempty"`
	Tone           string     `json:"tone,omitempty" yaml:"tone,omitempty"`
	TargetAudience string     `json:"targetAudience,omitempty" yaml:"targetAudience,omitempty"`
	IncludeStats   bool       `json:"includeStats,omitempty" yaml:"includeStats,omitempty"`
	Style          string     `json:"style,omitempty" yaml:"style,omitempty"`
	Seed           *uint64    `json:"seed,omitempty" yaml:"seed,omitempty"`
	EEAT           AuthorInfo `json:"eeat,omitempty" yaml:"eeat,omitempty"`
}

// Request defaults.
const (
	DefaultTopic          = "technology"
	DefaultWordCount      = 900
	DefaultNumImages      = 4
	DefaultTone           = "professional"
	DefaultTargetAudience = "general"
)

// Normalize fills every unset field with its default. NumImages keeps an
// explicit zero so callers can ask for no images.
func (r Request) Normalize() Request {
	if r.Topic == "" {
		r.Topic = DefaultTopic
	}
	if r.WordCount <= 0 {
		r.WordCount = DefaultWordCount
	}
	if r.NumImages == nil || *r.NumImages < 0 {
		n := DefaultNumImages
		r.NumImages = &n
	}
	if r.Tone == "" {
		r.Tone = DefaultTone
	}
	if r.TargetAudience == "" {
		r.TargetAudience = DefaultTargetAudience
	}
	return r
}

// Images returns the requested image count, or the default when unset.
func (r Request) Images() int {
	if r.NumImages == nil {
		return DefaultNumImages
	}
	return *r.NumImages
}

// AuthorInfo carries the experience and expertise signals used in the
// structured-data author record.
type AuthorInfo struct {
	AuthorName      string `json:"authorName,omitempty" yaml:"authorName,omitempty"`
	Credentials     string `json:"credentials,omitempty" yaml:"credentials,omitempty"`
	ExperienceYears int    `json:"experienceYears,omitempty" yaml:"experienceYears,omitempty"`
}

// Article is the JSON object written by the generate command.
type Article struct {
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	Images      []ImageRef     `json:"images"`
	SEO         SEOMetadata    `json:"seo"`
	Schema      StructuredData `json:"schema"`
	TOC         string         `json:"toc"`
	Keywords    []string       `json:"keywords"`
	References  []string       `json:"references"`
	Headings    []Heading      `json:"headings"`
	Style       string         `json:"style"`
	WordCount   int            `json:"wordCount"`
	GeneratedBy string         `json:"generatedBy"`
}

// SEOMetadata holds the search-engine fields derived from the topic and keywords.
type SEOMetadata struct {
	Slug            string `json:"slug"`
	MetaDescription string `json:"metaDescription"`
	Keywords        string `json:"keywords"`
	FocusKeyword    string `json:"focusKeyword"`
}

// StructuredData is a schema.org Article record.
type StructuredData struct {
	Context          string    `json:"@context"`
	Type             string    `json:"@type"`
	Headline         string    `json:"headline"`
	Description      string    `json:"description"`
	Author           Person    `json:"author"`
	Publisher        Publisher `json:"publisher"`
	DatePublished    string    `json:"datePublished"`
	DateModified     string    `json:"dateModified"`
	MainEntityOfPage WebPage   `json:"mainEntityOfPage"`
	ArticleSection   []string  `json:"articleSection"`
	InLanguage       string    `json:"inLanguage"`
	IsFamilyFriendly bool      `json:"isFamilyFriendly"`
}

// Person is the schema.org author record.
type Person struct {
	Type        string `json:"@type"`
	Name        string `json:"name"`
	JobTitle    string `json:"jobTitle"`
	Description string `json:"description,omitempty"`
}

// Publisher is the schema.org publishing organization.
type Publisher struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// WebPage is the schema.org main entity reference.
type WebPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

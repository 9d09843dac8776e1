// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Heading is a level-2 or level-3 section heading. AnchorID links the
// table of contents to the rendered heading and is unique per document.
type Heading struct {
	Level    int    `json:"level" yaml:"level"`
	Text     string `json:"text" yaml:"text"`
	AnchorID string `json:"anchorId" yaml:"anchorId"`
}

// ReferencesAnchor is the id of the references section appended to every
// article that cites sources. No heading may take it.
const ReferencesAnchor = "references"

// ImageRef is an image returned by an image provider. It is not modified
// after placement.
type ImageRef struct {
	URL               string `json:"url" yaml:"url"`
	AltText           string `json:"alt" yaml:"alt"`
	Caption           string `json:"caption,omitempty" yaml:"caption,omitempty"`
	SourceAttribution string `json:"source" yaml:"source"`
}

// Section is a heading and the paragraphs beneath it. The leading section
// of a document may have no heading.
type Section struct {
	Heading    *Heading `json:"heading,omitempty" yaml:"heading,omitempty"`
	Paragraphs []string `json:"paragraphs" yaml:"paragraphs"`
}

// Headings returns the headings of sections in document order.
func Headings(sections []Section) []Heading {
	var out []Heading
	for _, s := range sections {
		if s.Heading != nil {
			out = append(out, *s.Heading)
		}
	}
	return out
}

// BlockKind identifies the content of a Block.
type BlockKind int

const (
	ParagraphBlock BlockKind = iota
	HeadingBlock
	ImageBlock
)

func (k BlockKind) String() string {
	switch k {
	case ParagraphBlock:
		return "paragraph"
	case HeadingBlock:
		return "heading"
	case ImageBlock:
		return "image"
	default:
		return "unknown"
	}
}

// Block is one element of the flattened body stream.
type Block struct {
	Kind    BlockKind
	Text    string
	Heading Heading
	Image   ImageRef
}

// Blocks flattens sections into a body stream of heading and paragraph blocks.
func Blocks(sections []Section) []Block {
	var out []Block
	for _, s := range sections {
		if s.Heading != nil {
			out = append(out, Block{Kind: HeadingBlock, Heading: *s.Heading})
		}
		for _, p := range s.Paragraphs {
			out = append(out, Block{Kind: ParagraphBlock, Text: p})
		}
	}
	return out
}

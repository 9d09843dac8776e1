// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PhraseRule limits how often a pattern may appear in a document.
// MaxOccurrences of zero removes every match.
type PhraseRule struct {
	// Pattern is a literal phrase, or a regular expression when Regex is set.
	// Matching is always case-insensitive.
	Pattern string `json:"pattern" yaml:"pattern"`
	Regex   bool   `json:"regex,omitempty" yaml:"regex,omitempty"`

	// WholeWord wraps a literal pattern in word boundaries.
	WholeWord bool `json:"whole_word,omitempty" yaml:"whole_word,omitempty"`

	MaxOccurrences int `json:"max_occurrences" yaml:"max_occurrences"`

	// Replacement is substituted for removed matches. Empty deletes them.
	Replacement string `json:"replacement,omitempty" yaml:"replacement,omitempty"`
}

// ImageMode selects how images are interleaved with the body.
type ImageMode string

const (
	// ImagesByInterval spaces images evenly between paragraphs.
	ImagesByInterval ImageMode = "interval"
	// ImagesByHeading places one image after each heading.
	ImagesByHeading ImageMode = "heading"
)

// LeftoverPolicy decides what happens to images that find no slot.
type LeftoverPolicy string

const (
	LeftoverDrop   LeftoverPolicy = "drop"
	LeftoverAppend LeftoverPolicy = "append"
)

// PromptStyle selects the prompt template sent to the text generator.
type PromptStyle string

const (
	PromptProfessional PromptStyle = "professional"
	PromptCasual       PromptStyle = "casual"
	PromptSocial       PromptStyle = "social"
)

// Sampling holds the generation parameters sent with each prompt.
type Sampling struct {
	Temperature     float64 `json:"temperature" yaml:"temperature"`
	TopK            int     `json:"top_k" yaml:"top_k"`
	TopP            float64 `json:"top_p" yaml:"top_p"`
	MaxOutputTokens int     `json:"max_output_tokens" yaml:"max_output_tokens"`
}

// ErrorRates are per-word or per-mark probabilities used by the noise injector.
type ErrorRates struct {
	Transpose  float64 `json:"transpose" yaml:"transpose"`
	Lowercase  float64 `json:"lowercase" yaml:"lowercase"`
	DropPeriod float64 `json:"drop_period" yaml:"drop_period"`
	DropComma  float64 `json:"drop_comma" yaml:"drop_comma"`
}

// Policy is a named configuration of the humanization and assembly
// pipeline. Every style variant is a Policy value, not a code path.
type Policy struct {
	Name      string `json:"name" yaml:"name"`
	ToneLabel string `json:"tone_label" yaml:"tone_label"`

	// AllowErrorInjection enables the noise pass. It must be false for
	// professional output.
	AllowErrorInjection bool       `json:"allow_error_injection" yaml:"allow_error_injection"`
	ErrorRates          ErrorRates `json:"error_rates" yaml:"error_rates"`

	PhraseRules []PhraseRule      `json:"phrase_rules" yaml:"phrase_rules"`
	Synonyms    map[string]string `json:"synonyms" yaml:"synonyms"`

	MergeProbability   float64 `json:"merge_probability" yaml:"merge_probability"`
	MergeMaxSentences  int     `json:"merge_max_sentences" yaml:"merge_max_sentences"`
	SplitProbability   float64 `json:"split_probability" yaml:"split_probability"`
	SplitThreshold     int     `json:"split_threshold" yaml:"split_threshold"`
	CombineProbability float64 `json:"combine_probability" yaml:"combine_probability"`
	CombineMaxWords    int     `json:"combine_max_words" yaml:"combine_max_words"`
	CombinedMaxWords   int     `json:"combined_max_words" yaml:"combined_max_words"`

	Starters           []string `json:"starters,omitempty" yaml:"starters,omitempty"`
	Fillers            []string `json:"fillers,omitempty" yaml:"fillers,omitempty"`
	StarterProbability float64  `json:"starter_probability" yaml:"starter_probability"`
	FillerProbability  float64  `json:"filler_probability" yaml:"filler_probability"`
	MaxFillerRepeats   int      `json:"max_filler_repeats" yaml:"max_filler_repeats"`

	ImageMode      ImageMode      `json:"image_mode" yaml:"image_mode"`
	LeftoverImages LeftoverPolicy `json:"leftover_images" yaml:"leftover_images"`

	PromptStyle PromptStyle `json:"prompt_style" yaml:"prompt_style"`
	Sampling    Sampling    `json:"sampling" yaml:"sampling"`
}

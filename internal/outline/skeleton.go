// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"math/rand/v2"
	"strings"

	"github.com/pdiddy/content-engine/pkg/types"
)

// SkeletonSize is the number of headings in a synthesized outline.
const SkeletonSize = 6

// Category is a coarse topic classification used to pick heading templates.
type Category string

const (
	CategoryTravel  Category = "travel"
	CategoryFood    Category = "food"
	CategoryProduct Category = "product"
	CategoryHowTo   Category = "howto"
	CategoryGeneral Category = "general"
)

// categoryWords are checked in order; the first category with a matching
// topic word wins.
var categoryWords = []struct {
	category Category
	words    []string
}{
	{CategoryTravel, []string{"travel", "visit", "place", "destination", "trip", "vacation", "city", "country", "island", "beach", "hotel"}},
	{CategoryFood, []string{"food", "restaurant", "eat", "cafe", "coffee", "dining", "cuisine", "dish", "meal", "recipe", "drink"}},
	{CategoryProduct, []string{"best", "top", "review", "product", "buy", "shop", "purchase", "gear", "vs"}},
	{CategoryHowTo, []string{"how", "guide", "tips", "ways", "steps", "learn"}},
}

// skeletons hold heading templates per category. {topic} is the full
// topic and {subject} its last word.
var skeletons = map[Category][][SkeletonSize]string{
	CategoryTravel: {
		{"Why {topic} Caught My Attention", "Planning Your {subject} Experience", "The Best Things About {topic}", "What Makes {topic} Stand Out", "Insider Tips for {topic}", "My Honest Take on {topic}"},
		{"Discovering {topic}", "What You Should Know Before Visiting", "Top Experiences in {topic}", "Hidden Gems I Found", "Practical Advice for Travelers", "Would I Recommend {topic}?"},
	},
	CategoryFood: {
		{"Why I'm Talking About {topic}", "What Makes {topic} Special", "My Favorite {subject} Picks", "The Overall Experience", "Is {topic} Worth Your Money?", "My Final Thoughts"},
		{"Exploring {topic}", "What Sets {topic} Apart", "Top Recommendations", "The Atmosphere and Vibe", "Value for Money", "My Verdict"},
	},
	CategoryProduct: {
		{"Why I Created This {topic} Guide", "Understanding {topic}", "Top {subject} Options", "What to Look For", "Common Buying Mistakes", "My Recommendations"},
		{"Everything About {topic}", "Key Features to Consider", "Best {subject} Choices", "How to Choose Wisely", "What to Avoid", "Final Advice"},
	},
	CategoryHowTo: {
		{"Getting Started With {topic}", "The Fundamentals", "Step-by-Step Process", "Common Challenges", "Pro Tips and Tricks", "Wrapping Up"},
		{"Understanding {topic}", "The Basics Explained", "Practical Implementation", "What to Watch Out For", "Advanced Strategies", "Final Thoughts"},
	},
	CategoryGeneral: {
		{"Introduction to {topic}", "Key Aspects of {topic}", "What Works Best", "Common Mistakes", "My Recommendations", "Wrapping Up"},
		{"Getting to Know {topic}", "Why {topic} Matters", "What I Learned", "Things to Avoid", "Practical Advice", "Final Thoughts"},
	},
}

// Classify returns the category for a topic by whole-word matching.
func Classify(topic string) Category {
	words := strings.FieldsFunc(strings.ToLower(topic), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	for _, c := range categoryWords {
		for _, w := range words {
			for _, cw := range c.words {
				if w == cw {
					return c.category
				}
			}
		}
	}
	return CategoryGeneral
}

// Skeleton synthesizes SkeletonSize level-2 headings for topic. The
// template variant is drawn from rng.
func Skeleton(topic string, rng *rand.Rand) []types.Heading {
	topic = strings.TrimSpace(topic)
	subject := topic
	if fields := strings.Fields(topic); len(fields) > 0 {
		subject = fields[len(fields)-1]
	}

	variants := skeletons[Classify(topic)]
	tmpl := variants[rng.IntN(len(variants))]

	r := strings.NewReplacer("{topic}", topic, "{subject}", subject)
	out := make([]types.Heading, 0, SkeletonSize)
	for _, t := range tmpl {
		out = append(out, NewHeading(2, r.Replace(t)))
	}
	return out
}

// FromTexts builds level-2 headings from caller-supplied heading texts,
// skipping blanks.
func FromTexts(texts []string) []types.Heading {
	var out []types.Heading
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			out = append(out, NewHeading(2, t))
		}
	}
	return out
}

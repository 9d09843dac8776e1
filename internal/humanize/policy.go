// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package humanize

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-engine/pkg/types"
)

// Built-in policy names.
const (
	PolicyProfessional = "professional"
	PolicyUltra        = "ultra"
	PolicyTrueHuman    = "true-human"
	PolicySocial       = "social"
)

// ErrUnknownPolicy is returned by Lookup for a name with no policy.
var ErrUnknownPolicy = errors.New("unknown policy")

var policyAliases = map[string]string{
	"maximal":     PolicyUltra,
	"ultra-human": PolicyUltra,
	"true_human":  PolicyTrueHuman,
	"truehuman":   PolicyTrueHuman,
	"pro":         PolicyProfessional,
}

// formalTransitions swap stiff connectives for plain ones.
var formalTransitions = []types.PhraseRule{
	{Pattern: `\bhowever,`, Regex: true, Replacement: "but"},
	{Pattern: `\bmoreover,`, Regex: true, Replacement: "also,"},
	{Pattern: `\bfurthermore,`, Regex: true, Replacement: "plus,"},
	{Pattern: `\btherefore,`, Regex: true, Replacement: "so"},
	{Pattern: `\bconsequently,`, Regex: true, Replacement: "as a result,"},
	{Pattern: `\bnevertheless,`, Regex: true, Replacement: "still,"},
	{Pattern: `\badditionally,`, Regex: true, Replacement: "also,"},
}

// summaryOpeners are wrap-up phrases removed from the start of a sentence.
var summaryOpeners = []types.PhraseRule{
	{Pattern: `\b(?:in conclusion|to sum up|in summary|to summarize|all in all),\s*`, Regex: true},
}

// aiCliches are stock phrases removed outright.
var aiCliches = []types.PhraseRule{
	{Pattern: `\bit(?:'s| is) (?:worth noting|important to note) that\s*`, Regex: true},
	{Pattern: `\bin today's (?:fast-paced|digital|modern) (?:world|age|landscape),?\s*`, Regex: true},
	{Pattern: `\bwhen it comes to\b`, Regex: true, Replacement: "with"},
	{Pattern: `\b(?:aforementioned|heretofore|henceforth|whereby|wherein)\b`, Regex: true},
}

// fillerCaps keep casual fillers from piling up.
var fillerCaps = []types.PhraseRule{
	{Pattern: "pretty much", WholeWord: true, MaxOccurrences: 2},
	{Pattern: "I mean", WholeWord: true, MaxOccurrences: 2},
	{Pattern: `\bhonestly,`, Regex: true, MaxOccurrences: 2},
	{Pattern: `\byou know,`, Regex: true, MaxOccurrences: 2},
	{Pattern: `\bbasically,`, Regex: true, MaxOccurrences: 2},
	{Pattern: `\blike,`, Regex: true, MaxOccurrences: 2},
	{Pattern: `\blook,`, Regex: true, MaxOccurrences: 2},
	{Pattern: `\bdude,`, Regex: true, MaxOccurrences: 1},
}

// formalSynonyms replace formal vocabulary with plain words.
var formalSynonyms = map[string]string{
	"utilize":       "use",
	"commence":      "start",
	"terminate":     "end",
	"approximately": "about",
	"numerous":      "many",
	"demonstrate":   "show",
	"facilitate":    "help",
	"implement":     "use",
	"leverage":      "use",
	"optimize":      "improve",
	"paradigm":      "model",
	"synergize":     "work together",
	"streamline":    "simplify",

	"in order to":           "to",
	"due to the fact that":  "because",
	"in spite of":           "despite",
	"with regard to":        "about",
	"in the event that":     "if",
	"at this point in time": "now",
}

// casualSynonyms go further than formalSynonyms for conversational styles.
var casualSynonyms = map[string]string{
	"purchase":      "buy",
	"acquire":       "get",
	"obtain":        "get",
	"provide":       "give",
	"assist":        "help",
	"require":       "need",
	"indicate":      "show",
	"inform":        "tell",
	"examine":       "look at",
	"evaluate":      "check",
	"determine":     "figure out",
	"establish":     "set up",
	"construct":     "build",
	"delve into":    "dig into",
	"robust":        "solid",
	"seamless":      "smooth",
	"cutting-edge":  "new",
	"comprehensive": "full",
	"crucial":       "key",
	"enhance":       "boost",
}

// contractions fold common pairs the way people type them.
var contractions = map[string]string{
	"do not":     "don't",
	"does not":   "doesn't",
	"did not":    "didn't",
	"cannot":     "can't",
	"could not":  "couldn't",
	"would not":  "wouldn't",
	"should not": "shouldn't",
	"will not":   "won't",
	"is not":     "isn't",
	"are not":    "aren't",
	"was not":    "wasn't",
	"were not":   "weren't",
	"have not":   "haven't",
	"has not":    "hasn't",
	"it is":      "it's",
	"that is":    "that's",
	"there is":   "there's",
	"you are":    "you're",
	"they are":   "they're",
	"we are":     "we're",
	"I am":       "I'm",
	"you will":   "you'll",
	"I will":     "I'll",
	"we will":    "we'll",
}

var casualStarters = []string{
	"Look", "So", "Now", "Plus", "Honestly", "Real talk",
	"Here's the thing", "Thing is", "Point is",
}

var casualFillers = []string{
	"you know", "I mean", "honestly", "really", "actually",
	"basically", "pretty much", "kind of", "sort of",
}

func concatRules(groups ...[]types.PhraseRule) []types.PhraseRule {
	var out []types.PhraseRule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func mergeMaps(ms ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range ms {
		maps.Copy(out, m)
	}
	return out
}

func builtinPolicies() map[string]types.Policy {
	return map[string]types.Policy{
		PolicyProfessional: {
			Name:               PolicyProfessional,
			ToneLabel:          "professional",
			PhraseRules:        concatRules(formalTransitions, summaryOpeners, aiCliches),
			Synonyms:           mergeMaps(formalSynonyms),
			MergeProbability:   0.4,
			MergeMaxSentences:  2,
			SplitProbability:   0.5,
			SplitThreshold:     8,
			CombineProbability: 0.3,
			CombineMaxWords:    8,
			CombinedMaxWords:   20,
			ImageMode:          types.ImagesByHeading,
			LeftoverImages:     types.LeftoverDrop,
			PromptStyle:        types.PromptProfessional,
			Sampling:           types.Sampling{Temperature: 0.85, TopK: 50, TopP: 0.92, MaxOutputTokens: 2400},
		},
		PolicyUltra: {
			Name:                PolicyUltra,
			ToneLabel:           "casual",
			AllowErrorInjection: true,
			ErrorRates:          DefaultErrorRates,
			PhraseRules:         concatRules(formalTransitions, summaryOpeners, aiCliches, fillerCaps),
			Synonyms:            mergeMaps(formalSynonyms, casualSynonyms, contractions),
			MergeProbability:    0.4,
			SplitProbability:    0.5,
			SplitThreshold:      8,
			CombineProbability:  0.3,
			CombineMaxWords:     8,
			CombinedMaxWords:    20,
			Starters:            slices.Clone(casualStarters),
			Fillers:             slices.Clone(casualFillers),
			StarterProbability:  0.15,
			FillerProbability:   0.2,
			MaxFillerRepeats:    2,
			ImageMode:           types.ImagesByHeading,
			LeftoverImages:      types.LeftoverDrop,
			PromptStyle:         types.PromptCasual,
			Sampling:            types.Sampling{Temperature: 0.95, TopK: 64, TopP: 0.95, MaxOutputTokens: 8000},
		},
		PolicyTrueHuman: {
			Name:               PolicyTrueHuman,
			ToneLabel:          "conversational",
			PhraseRules:        concatRules(formalTransitions, summaryOpeners, aiCliches, fillerCaps),
			Synonyms:           mergeMaps(formalSynonyms, casualSynonyms, contractions),
			MergeProbability:   0.3,
			SplitProbability:   0.5,
			SplitThreshold:     8,
			CombineProbability: 0.3,
			CombineMaxWords:    8,
			CombinedMaxWords:   20,
			Starters:           slices.Clone(casualStarters),
			Fillers:            slices.Clone(casualFillers),
			StarterProbability: 0.1,
			FillerProbability:  0.1,
			MaxFillerRepeats:   2,
			ImageMode:          types.ImagesByInterval,
			LeftoverImages:     types.LeftoverDrop,
			PromptStyle:        types.PromptCasual,
			Sampling:           types.Sampling{Temperature: 0.9, TopK: 40, TopP: 0.95, MaxOutputTokens: 4096},
		},
		PolicySocial: {
			Name:               PolicySocial,
			ToneLabel:          "friendly",
			PhraseRules:        concatRules(formalTransitions, summaryOpeners, aiCliches, fillerCaps),
			Synonyms:           mergeMaps(formalSynonyms, casualSynonyms, contractions),
			SplitProbability:   1,
			SplitThreshold:     3,
			Starters:           slices.Clone(casualStarters),
			StarterProbability: 0.1,
			MaxFillerRepeats:   1,
			ImageMode:          types.ImagesByInterval,
			LeftoverImages:     types.LeftoverAppend,
			PromptStyle:        types.PromptSocial,
			Sampling:           types.Sampling{Temperature: 0.9, TopK: 40, TopP: 0.95, MaxOutputTokens: 1024},
		},
	}
}

// Registry holds the named policies available to a process.
type Registry struct {
	policies map[string]types.Policy
}

// DefaultRegistry returns a registry holding the built-in policies.
func DefaultRegistry() *Registry {
	return &Registry{policies: builtinPolicies()}
}

// Lookup returns a copy of the named policy. Names are case-insensitive
// and a few aliases ("maximal") are accepted.
func (r *Registry) Lookup(name string) (types.Policy, error) {
	key := canonicalName(name)
	p, ok := r.policies[key]
	if !ok {
		return types.Policy{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownPolicy, name, strings.Join(r.Names(), ", "))
	}
	return clonePolicy(p), nil
}

// Names returns the sorted policy names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.policies))
	for n := range r.policies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Set adds or replaces a policy.
func (r *Registry) Set(p types.Policy) {
	p.Name = canonicalName(p.Name)
	r.policies[p.Name] = clonePolicy(p)
}

// policyFile is the YAML layout of a policy override file. Each entry
// starts from the policy named by base (or by name when it already
// exists) and overrides only the fields it sets.
type policyFile struct {
	Policies []yaml.Node `yaml:"policies"`
}

type policyHeader struct {
	Name string `yaml:"name"`
	Base string `yaml:"base"`
}

// LoadFile reads policy overrides from a YAML file.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading policy file %s: %w", path, err)
	}
	return r.Load(data)
}

// Load applies policy overrides from YAML data.
func (r *Registry) Load(data []byte) error {
	var f policyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing policy file: %w", err)
	}
	for i := range f.Policies {
		node := &f.Policies[i]
		var h policyHeader
		if err := node.Decode(&h); err != nil {
			return fmt.Errorf("parsing policy %d: %w", i, err)
		}
		if h.Name == "" {
			return fmt.Errorf("policy %d: name is required", i)
		}

		var p types.Policy
		baseName := h.Base
		if baseName == "" {
			baseName = h.Name
		}
		if base, err := r.Lookup(baseName); err == nil {
			p = base
		} else if h.Base != "" {
			return fmt.Errorf("policy %s: %w", h.Name, err)
		}
		if err := node.Decode(&p); err != nil {
			return fmt.Errorf("decoding policy %s: %w", h.Name, err)
		}
		p.Name = h.Name
		r.Set(p)
	}
	return nil
}

func canonicalName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := policyAliases[key]; ok {
		return alias
	}
	return key
}

func clonePolicy(p types.Policy) types.Policy {
	p.PhraseRules = slices.Clone(p.PhraseRules)
	p.Synonyms = maps.Clone(p.Synonyms)
	p.Starters = slices.Clone(p.Starters)
	p.Fillers = slices.Clone(p.Fillers)
	return p
}

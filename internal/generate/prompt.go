// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/content-engine/pkg/types"
)

// PromptData is the input to every prompt template.
type PromptData struct {
	Topic        string
	WordCount    int
	Tone         string
	Audience     string
	Headings     []string
	Keywords     []string
	IncludeStats bool
	Author       types.AuthorInfo
}

var promptFuncs = template.FuncMap{
	"join": strings.Join,
}

// professionalPromptTmpl asks for clean, error-free prose in markdown
// sections.
var professionalPromptTmpl = template.Must(template.New("professional").Funcs(promptFuncs).Parse(`Write a {{.WordCount}}-word article about: {{.Topic}}

Audience: {{.Audience}}
Tone: {{.Tone}}, professional but approachable

WRITING STYLE:
- Write naturally, as if explaining to a colleague.
- Vary sentence length. Mix 5-word and 25-word sentences.
- Use active voice and contractions (it's, don't, can't).
- Prefer simple words over complex ones.
- Use specific examples over generic statements.

AVOID:
- Formulaic transitions (However, Moreover, Furthermore).
- Openers like "In this article" or "Let's explore".
- Summaries, dramatic conclusions and calls to action.
- Words like delve, leverage, robust, comprehensive, seamless, utilize.
{{- if .IncludeStats}}

Include two or three concrete statistics with their source named in the sentence.
{{- end}}
{{- if .Keywords}}

Mention these keywords where they fit naturally: {{join .Keywords ", "}}
{{- end}}
{{- if .Author.AuthorName}}

Write from the perspective of {{.Author.AuthorName}}{{if .Author.Credentials}}, {{.Author.Credentials}}{{end}}{{if .Author.ExperienceYears}}, with {{.Author.ExperienceYears}} years of experience{{end}}. Draw on first-hand experience.
{{- end}}

STRUCTURE:
{{- if .Headings}}
Use exactly these section headings, in this order, as markdown level-2 headings:
{{- range .Headings}}
## {{.}}
{{- end}}
{{- else}}
Organize the article into five or six sections with markdown level-2 headings (## Heading).
{{- end}}
Write paragraphs of two to six sentences separated by blank lines. No bullet lists, no bold text.

Write the article now. Start directly with the content.`))

// casualPromptTmpl asks for conversational, first-person prose.
var casualPromptTmpl = template.Must(template.New("casual").Funcs(promptFuncs).Parse(`Write a blog post about "{{.Topic}}" in a completely natural, human way. Aim for about {{.WordCount}} words for a {{.Audience}} audience. Tone: {{.Tone}}.

RULES:
1. Write like talking to a friend. Use "I", "you", "we".
2. Paragraphs of three to five sentences. Mix short and long. Fragments are fine.
3. Share specific stories and examples, not generic claims.
4. Use contractions. Start some sentences with And, But, So.
5. Say "really good" not "excellent", "pretty cool" not "remarkable".
6. Never use: delve, dive into, landscape, robust, comprehensive, leverage, seamless, utilize, furthermore, moreover, in conclusion.
7. No lists, no bold text, no asterisks.
{{- if .Keywords}}
8. Mention these naturally: {{join .Keywords ", "}}
{{- end}}

SECTIONS (write each as a markdown level-2 heading, then the paragraphs):
{{- if .Headings}}
{{- range .Headings}}
## {{.}}
{{- end}}
{{- else}}
- why this topic matters to you
- the main things to know
- the best options or ideas
- practical tips for getting started
- common mistakes
- final thoughts
{{- end}}
{{- if .IncludeStats}}

Drop in a couple of real numbers where they help, and say where they come from.
{{- end}}

Write the full post now.`))

// socialPromptTmpl asks for a short post made of one-line paragraphs.
var socialPromptTmpl = template.Must(template.New("social").Funcs(promptFuncs).Parse(`Write a social media post about "{{.Topic}}" for a {{.Audience}} audience. Tone: {{.Tone}}.

- Keep it under {{.WordCount}} words.
- One or two sentences per line, with a blank line between lines.
- Sound like a real person sharing something they care about. No corporate voice.
- No hashtags in the middle of sentences. At most three hashtags on the last line.
- Do not start with "Did you know" or "Are you".
{{- if .Keywords}}
- Work in: {{join .Keywords ", "}}
{{- end}}

Write the post now.`))

// Prompt renders the template for style.
func Prompt(style types.PromptStyle, data PromptData) (string, error) {
	var tmpl *template.Template
	switch style {
	case types.PromptProfessional, "":
		tmpl = professionalPromptTmpl
	case types.PromptCasual:
		tmpl = casualPromptTmpl
	case types.PromptSocial:
		tmpl = socialPromptTmpl
	default:
		return "", fmt.Errorf("unknown prompt style %q", style)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"text/template"

	"github.com/akhsjain/tech-blogs/pkg/types"
)

// Preset pairs a prompt template with the model it was written for.
type Preset struct {
	Name     string
	Provider types.Provider
	Model    string
	Template *template.Template
}

// DefaultPreset is used when no preset is configured.
const DefaultPreset = "deep-dive"

var deepDiveTmpl = template.Must(template.New("deep-dive").Parse(`
You are a senior backend engineer writing a deep technical Medium article.

Topic: {{.Topic}}

Audience:
- Experienced software engineers (3–10 years)
- Backend / System design focused

Guidelines:
- Start with a real-world problem that engineers face
- Build a mental model before details
- Explain internals step-by-step
- Include at least 1 realistic production example
- Explicitly call out tradeoffs and limitations
- Avoid textbook definitions
- No marketing or generic AI tone

Structure:
1. Why this problem exists
2. Core concept (mental model)
3. Internal mechanics
4. Real-world example
5. Common misconceptions
6. Tradeoffs & when NOT to use it
7. Interview perspective

End with:
- Key takeaways (bullets)
- 3 system design interview questions

Length: 1200–1500 words`))

var quickReadTmpl = template.Must(template.New("quick-read").Parse(`
You are a staff engineer writing a practical blog post for working developers.

Topic: {{.Topic}}

Audience:
- Software engineers who want to apply this at work this week

Guidelines:
- Open with a concrete production incident or bottleneck
- Explain the idea in plain language before any jargon
- Show one realistic code or configuration example
- Name the tradeoffs and the cases where it backfires
- No filler, no marketing tone

Structure:
1. The problem
2. How it works
3. Example
4. Pitfalls
5. When to reach for something else

End with a short checklist for readers.

Length: 700–900 words`))

var presets = map[string]Preset{
	"deep-dive": {
		Name:     "deep-dive",
		Provider: types.ProviderGroq,
		Model:    "llama-3.1-8b-instant",
		Template: deepDiveTmpl,
	},
	"quick-read": {
		Name:     "quick-read",
		Provider: types.ProviderGroq,
		Model:    "llama-3.3-70b-versatile",
		Template: quickReadTmpl,
	},
}

// LookupPreset returns the named preset. An empty name selects DefaultPreset.
func LookupPreset(name string) (Preset, error) {
	if name == "" {
		name = DefaultPreset
	}
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (valid: %v)", name, PresetNames())
	}
	return p, nil
}

// PresetNames lists the built-in presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadTemplate parses a prompt template file. The template receives
// {{.Topic}} and nothing else.
func LoadTemplate(path string) (*template.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prompt template: %w", err)
	}
	tmpl, err := template.New(path).Option("missingkey=error").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing prompt template %s: %w", path, err)
	}
	return tmpl, nil
}

// RenderPrompt executes tmpl for topic.
func RenderPrompt(tmpl *template.Template, topic types.Topic) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Topic string }{Topic: topic}); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package findings

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/researcher-agent/pkg/types"
)

// findingsPromptTmpl is the research-assistant prompt. The 300-word bound is a
// soft contract carried by the prompt, not validated afterwards.
var findingsPromptTmpl = template.Must(template.New("findings").Parse(`You are a research assistant. Summarize findings for the research plan below in 2-3 short paragraphs, under 300 words. Focus on crisp facts, key points, and useful takeaways. No fluff. Include bulleted lists if helpful.

Topic: {{.Topic}}
Search queries:
{{- range .Queries}}
- {{.}}
{{- end}}
Focus areas:
{{- range .FocusAreas}}
- {{.}}
{{- end}}

Provide concise findings.
`))

// renderPrompt executes the findings prompt template for a plan.
func renderPrompt(p *types.ResearchPlan) (string, error) {
	var buf bytes.Buffer
	if err := findingsPromptTmpl.Execute(&buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/researcher-agent/pkg/types"
)

// reportPromptTmpl is the senior-researcher prompt. It asks for a Markdown
// document with a title, section headings, and a Sources section so the
// outline and source list can be derived from the result.
var reportPromptTmpl = template.Must(template.New("report").Parse(`You are a senior researcher. Using the notes below, write a comprehensive Markdown report (at least 1000 words, target 5-10 pages). Include:
- A clear title as a top-level heading (# Title)
- Well-structured section headings (## Section)
- Evidence-backed points under each section
- A "## Sources" section at the end listing each source on its own bullet

Topic: {{.Plan.Topic}}

Focus areas:
{{- range .Plan.FocusAreas}}
- {{.}}
{{- end}}

Research notes:
{{.Findings.Summary}}

Write the full report now.
`))

// promptData carries the plan and findings into the template.
type promptData struct {
	Plan     *types.ResearchPlan
	Findings *types.Findings
}

// renderPrompt executes the report prompt template.
func renderPrompt(p *types.ResearchPlan, f *types.Findings) (string, error) {
	var buf bytes.Buffer
	if err := reportPromptTmpl.Execute(&buf, promptData{Plan: p, Findings: f}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package critique

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/researcher-agent/pkg/types"
)

// critiquePromptTmpl is the critical-reviewer prompt. It bounds the review at
// 400 words and asks for pure JSON so the critique can be parsed.
var critiquePromptTmpl = template.Must(template.New("critique").Parse(`You are a critical reviewer. Review the report below for clarity, structure, depth, coverage, and factual balance, in at most 400 words total.

Respond with pure JSON only, with exactly these keys:
- "issues": problems you found, one string each (array, may be empty)
- "suggestions": concrete improvements, one string each (array, may be empty)

Do not add commentary outside the JSON.

Report:
{{.Markdown}}
`))

// renderPrompt executes the critique prompt template for a report.
func renderPrompt(r *types.Report) (string, error) {
	var buf bytes.Buffer
	if err := critiquePromptTmpl.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

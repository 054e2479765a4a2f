// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"bytes"
	"text/template"
)

// planPromptTmpl is the coordinator prompt. It asks for pure JSON matching the
// ResearchPlan shape; commentary outside the JSON is tolerated by the parser
// but discouraged here.
var planPromptTmpl = template.Must(template.New("plan").Parse(`You are the research coordinator. Given a topic, produce a research plan as pure JSON only.

The JSON object must have exactly these keys:
- "topic": a clear restatement of the topic (string)
- "queries": 3-5 search queries, most important first (array of strings)
- "focus_areas": 3-5 key aspects the research should cover (array of strings)

Do not add commentary outside the JSON.

Topic: {{.Topic}}
`))

// renderPrompt executes the plan prompt template for a topic.
func renderPrompt(topic string) (string, error) {
	var buf bytes.Buffer
	if err := planPromptTmpl.Execute(&buf, struct{ Topic string }{Topic: topic}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

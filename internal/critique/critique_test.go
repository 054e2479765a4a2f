package critique

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/researcher-agent/internal/agent"
	"github.com/pdiddy/researcher-agent/pkg/types"
)

type staticBackend struct {
	response string
	err      error
	prompts  []string
}

func (b *staticBackend) Generate(_ context.Context, prompt string) (string, error) {
	b.prompts = append(b.prompts, prompt)
	if b.err != nil {
		return "", b.err
	}
	return b.response, nil
}

func testReport() *types.Report {
	return &types.Report{
		Title:    "T",
		Markdown: "# T\n\n## Body\n\nText.",
	}
}

func TestGenerate_ParsesCritique(t *testing.T) {
	b := &staticBackend{response: "```json\n" +
		`{"issues": ["thin coverage of costs"], "suggestions": ["add a cost section", "cite primary data"]}` +
		"\n```"}
	g := NewGenerator(b)

	c, err := g.Generate(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(c.Issues, []string{"thin coverage of costs"}) {
		t.Errorf("Issues = %v", c.Issues)
	}
	if len(c.Suggestions) != 2 {
		t.Errorf("Suggestions = %v", c.Suggestions)
	}
}

func TestGenerate_EmptyListsAreValid(t *testing.T) {
	b := &staticBackend{response: `{"issues": [], "suggestions": []}`}
	g := NewGenerator(b)

	c, err := g.Generate(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if c.Issues == nil || len(c.Issues) != 0 {
		t.Errorf("Issues = %#v, want empty non-nil", c.Issues)
	}
	if c.Suggestions == nil || len(c.Suggestions) != 0 {
		t.Errorf("Suggestions = %#v, want empty non-nil", c.Suggestions)
	}
}

func TestGenerate_DropsBlankItems(t *testing.T) {
	b := &staticBackend{response: `{"issues": [" a ", "", "b"], "suggestions": ["  "]}`}
	g := NewGenerator(b)

	c, err := g.Generate(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(c.Issues, []string{"a", "b"}) {
		t.Errorf("Issues = %v", c.Issues)
	}
	if len(c.Suggestions) != 0 {
		t.Errorf("Suggestions = %v", c.Suggestions)
	}
}

func TestGenerate_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose only", "The report looks fine to me overall."},
		{"broken JSON", `{"issues": ["a"],`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(&staticBackend{response: tt.response})
			_, err := g.Generate(context.Background(), testReport())
			if !agent.IsMalformed(err) {
				t.Fatalf("want malformed-response error, got %v", err)
			}
		})
	}
}

func TestGenerate_PromptCarriesReport(t *testing.T) {
	b := &staticBackend{response: `{"issues": [], "suggestions": []}`}
	g := NewGenerator(b)

	if _, err := g.Generate(context.Background(), testReport()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(b.prompts[0], "## Body") {
		t.Error("prompt does not include the report markdown")
	}
}

func TestGenerate_NilReport(t *testing.T) {
	g := NewGenerator(&staticBackend{response: "{}"})
	if _, err := g.Generate(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil report")
	}
}

func TestGenerate_UpstreamError(t *testing.T) {
	g := NewGenerator(&staticBackend{err: &agent.UpstreamError{Status: 401, Message: "bad key"}})
	_, err := g.Generate(context.Background(), testReport())
	if !agent.IsUpstream(err) {
		t.Fatalf("want upstream error, got %v", err)
	}
}

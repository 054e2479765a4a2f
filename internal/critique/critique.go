// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package critique reviews the generated report via one model call. The model
// is asked for strict JSON with issues and suggestions; a response that does
// not parse as JSON is a malformed-response error. Empty issue or suggestion
// lists are valid; a clean report earns an empty critique.
package critique

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/researcher-agent/internal/agent"
	"github.com/pdiddy/researcher-agent/internal/textutil"
	"github.com/pdiddy/researcher-agent/pkg/types"
)

// Generator produces critiques.
type Generator struct {
	backend agent.Backend
}

// NewGenerator returns a Generator that calls backend.
func NewGenerator(backend agent.Backend) *Generator {
	return &Generator{backend: backend}
}

// Generate requests a critique of the report.
func (g *Generator) Generate(ctx context.Context, r *types.Report) (*types.Critique, error) {
	if r == nil {
		return nil, fmt.Errorf("report is nil")
	}

	prompt, err := renderPrompt(r)
	if err != nil {
		return nil, fmt.Errorf("rendering critique prompt: %w", err)
	}

	raw, err := g.backend.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseCritique(raw)
}

// parseCritique extracts the critique JSON from a raw model response. Blank
// items are dropped; nil slices become empty so downstream display and export
// always see sequences.
func parseCritique(raw string) (*types.Critique, error) {
	payload, ok := textutil.ExtractJSON(raw)
	if !ok {
		return nil, agent.Malformed("no JSON object in critique response", raw, nil)
	}

	var c types.Critique
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return nil, agent.Malformed("critique JSON does not parse", raw, err)
	}

	c.Issues = compact(c.Issues)
	c.Suggestions = compact(c.Suggestions)
	return &c, nil
}

// compact trims items and drops blanks, always returning a non-nil slice.
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan turns a topic into a structured research plan via one model
// call. The model is asked for strict JSON; the response is validated against
// the plan shape on receipt and any deviation is a malformed-response error,
// never silently repaired.
package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/researcher-agent/internal/agent"
	"github.com/pdiddy/researcher-agent/internal/textutil"
	"github.com/pdiddy/researcher-agent/pkg/types"
)

const (
	// minItems and maxItems bound the query and focus-area counts.
	minItems = 3
	maxItems = 5
)

// Generator produces research plans.
type Generator struct {
	backend agent.Backend
}

// NewGenerator returns a Generator that calls backend.
func NewGenerator(backend agent.Backend) *Generator {
	return &Generator{backend: backend}
}

// Generate requests a plan for topic and validates the returned JSON.
func (g *Generator) Generate(ctx context.Context, topic string) (*types.ResearchPlan, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic is empty")
	}

	prompt, err := renderPrompt(topic)
	if err != nil {
		return nil, fmt.Errorf("rendering plan prompt: %w", err)
	}

	raw, err := g.backend.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parsePlan(raw)
}

// parsePlan extracts and validates the plan JSON from a raw model response.
func parsePlan(raw string) (*types.ResearchPlan, error) {
	payload, ok := textutil.ExtractJSON(raw)
	if !ok {
		return nil, agent.Malformed("no JSON object in plan response", raw, nil)
	}

	var p types.ResearchPlan
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, agent.Malformed("plan JSON does not parse", raw, err)
	}

	if err := validate(&p); err != nil {
		return nil, agent.Malformed(err.Error(), raw, nil)
	}
	return &p, nil
}

// validate checks the plan invariants: non-empty topic, 3-5 non-empty queries,
// 3-5 non-empty focus areas.
func validate(p *types.ResearchPlan) error {
	if strings.TrimSpace(p.Topic) == "" {
		return fmt.Errorf("plan is missing topic")
	}
	if err := checkItems("queries", p.Queries); err != nil {
		return err
	}
	return checkItems("focus_areas", p.FocusAreas)
}

func checkItems(field string, items []string) error {
	if len(items) < minItems || len(items) > maxItems {
		return fmt.Errorf("plan has %d %s, want %d-%d", len(items), field, minItems, maxItems)
	}
	for i, item := range items {
		if strings.TrimSpace(item) == "" {
			return fmt.Errorf("plan %s[%d] is empty", field, i)
		}
	}
	return nil
}

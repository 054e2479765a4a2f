// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package findings summarizes a research plan into concise prose via one model
// call. The response is plain text, so there is no structural parsing and no
// malformed-response condition; only upstream failures are possible.
package findings

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/researcher-agent/internal/agent"
	"github.com/pdiddy/researcher-agent/pkg/types"
)

// Generator produces findings summaries.
type Generator struct {
	backend agent.Backend
}

// NewGenerator returns a Generator that calls backend.
func NewGenerator(backend agent.Backend) *Generator {
	return &Generator{backend: backend}
}

// Generate requests a findings summary for the plan.
func (g *Generator) Generate(ctx context.Context, p *types.ResearchPlan) (*types.Findings, error) {
	if p == nil {
		return nil, fmt.Errorf("plan is nil")
	}

	prompt, err := renderPrompt(p)
	if err != nil {
		return nil, fmt.Errorf("rendering findings prompt: %w", err)
	}

	text, err := g.backend.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &types.Findings{Summary: strings.TrimSpace(text)}, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes the long-form research document via one model call.
// The model returns Markdown; the title, outline, and source list are derived
// structurally from it. The 1000-word minimum is a soft contract carried by
// the prompt; nothing here rejects a short report.
package report

import (
	"context"
	"fmt"

	"github.com/pdiddy/researcher-agent/internal/agent"
	"github.com/pdiddy/researcher-agent/pkg/types"
)

// Generator produces reports.
type Generator struct {
	backend agent.Backend
}

// NewGenerator returns a Generator that calls backend.
func NewGenerator(backend agent.Backend) *Generator {
	return &Generator{backend: backend}
}

// Generate requests the full report for a plan and its findings.
func (g *Generator) Generate(ctx context.Context, p *types.ResearchPlan, f *types.Findings) (*types.Report, error) {
	if p == nil {
		return nil, fmt.Errorf("plan is nil")
	}
	if f == nil {
		return nil, fmt.Errorf("findings are nil")
	}

	prompt, err := renderPrompt(p, f)
	if err != nil {
		return nil, fmt.Errorf("rendering report prompt: %w", err)
	}

	markdown, err := g.backend.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r := &types.Report{
		Markdown: markdown,
		Title:    extractTitle(markdown),
		Outline:  extractOutline(markdown),
		Sources:  extractSources(markdown),
	}
	if r.Title == "" {
		r.Title = p.Topic
	}
	return r, nil
}

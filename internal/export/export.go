// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes session artifacts to disk: the report and critique as
// Markdown documents named after the topic, the plan as YAML, and the whole
// session as a YAML snapshot. Only stages present in the state are written.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/researcher-agent/internal/textutil"
	"github.com/pdiddy/researcher-agent/pkg/types"
)

const sessionFile = "session.yaml"

// WriteAll writes every available artifact for state into dir, creating it if
// needed, and returns the paths written.
func WriteAll(dir string, state types.SessionState) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	slug := textutil.TitleSlug(state.Topic)
	var paths []string

	write := func(name string, data []byte) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		paths = append(paths, path)
		return nil
	}

	if state.Plan != nil {
		data, err := yaml.Marshal(state.Plan)
		if err != nil {
			return paths, fmt.Errorf("marshaling plan: %w", err)
		}
		if err := write(slug+"_Plan.yaml", data); err != nil {
			return paths, err
		}
	}

	if state.Findings != nil {
		if err := write(slug+"_Findings.md", []byte(state.Findings.Summary+"\n")); err != nil {
			return paths, err
		}
	}

	if state.Report != nil {
		if err := write(slug+".md", []byte(state.Report.Markdown)); err != nil {
			return paths, err
		}
	}

	if state.Critique != nil {
		if err := write(slug+"_Critique.md", []byte(critiqueMarkdown(state.Critique))); err != nil {
			return paths, err
		}
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return paths, fmt.Errorf("marshaling session: %w", err)
	}
	if err := write(sessionFile, data); err != nil {
		return paths, err
	}

	return paths, nil
}

// critiqueMarkdown renders a critique as a Markdown document.
func critiqueMarkdown(c *types.Critique) string {
	var b strings.Builder
	b.WriteString("# Critique\n\n## Issues\n\n")
	writeList(&b, c.Issues)
	b.WriteString("\n## Suggestions\n\n")
	writeList(&b, c.Suggestions)
	return b.String()
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("None.\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import "strings"

// extractTitle returns the text of the first top-level heading, or "".
func extractTitle(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") && !strings.HasPrefix(trimmed, "## ") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		}
	}
	return ""
}

// extractOutline returns the section headings (## and ###) in document order.
func extractOutline(markdown string) []string {
	var outline []string
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if isHeading(trimmed) {
			outline = append(outline, stripHeadingPrefix(trimmed))
		}
	}
	return outline
}

// isHeading returns true if the line starts with ## or ###.
func isHeading(line string) bool {
	return strings.HasPrefix(line, "## ") || strings.HasPrefix(line, "### ")
}

// stripHeadingPrefix removes the leading # characters and whitespace.
func stripHeadingPrefix(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "#"))
}

// extractSources collects the list entries under a "Sources" (or "References")
// heading, deduplicated in first-seen order. An empty result is fine: source
// mentions are requested by the prompt, not guaranteed.
func extractSources(markdown string) []string {
	lines := strings.Split(markdown, "\n")

	inSources := false
	seen := make(map[string]bool)
	var sources []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if isHeading(trimmed) || strings.HasPrefix(trimmed, "# ") {
			heading := strings.ToLower(stripHeadingPrefix(trimmed))
			inSources = heading == "sources" || heading == "references"
			continue
		}
		if !inSources {
			continue
		}

		entry := listEntry(trimmed)
		if entry == "" || seen[entry] {
			continue
		}
		seen[entry] = true
		sources = append(sources, entry)
	}
	return sources
}

// listEntry strips a bullet or ordinal prefix from a list line. Returns ""
// for non-list lines.
func listEntry(line string) string {
	for _, prefix := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	// Ordinal entries: "1. text", "12. text".
	dot := strings.Index(line, ". ")
	if dot > 0 && dot <= 3 && isDigits(line[:dot]) {
		return strings.TrimSpace(line[dot+2:])
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

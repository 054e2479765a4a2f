// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textutil provides text helpers shared across stages: extracting a
// JSON object from freeform model output, word counting for the soft length
// contracts, and filename slugs for exported artifacts.
package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

// fencePattern matches a JSON object inside a Markdown code fence, with or
// without a "json" language tag.
var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// bracePattern matches the outermost {...} block in freeform text.
var bracePattern = regexp.MustCompile(`(?s)(\{.*\})`)

// ExtractJSON pulls a JSON object out of a freeform model response. Models
// frequently wrap JSON in code fences or surround it with commentary despite
// instructions not to. It tries a fenced block first, then the first brace
// block. Returns false when no candidate object is found.
func ExtractJSON(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := bracePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// CountWords counts whitespace-separated tokens in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// TitleSlug converts a topic into an export filename stem: each word
// capitalized, words joined by underscores, path-hostile characters dropped
// (e.g. "renewable energy policy" becomes "Renewable_Energy_Policy").
func TitleSlug(topic string) string {
	var words []string
	for _, w := range strings.Fields(topic) {
		w = strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
				return r
			}
			return -1
		}, w)
		if w == "" {
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words = append(words, string(runes))
	}
	if len(words) == 0 {
		return "Report"
	}
	return strings.Join(words, "_")
}

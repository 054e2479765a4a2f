package textutil

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "fenced with language tag",
			text: "Here is the plan:\n```json\n{\"topic\": \"x\"}\n```\nDone.",
			want: `{"topic": "x"}`,
			ok:   true,
		},
		{
			name: "fenced without language tag",
			text: "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
			ok:   true,
		},
		{
			name: "fenced with nested object",
			text: "```json\n{\"a\": {\"b\": 2}}\n```",
			want: `{"a": {"b": 2}}`,
			ok:   true,
		},
		{
			name: "bare object",
			text: `{"topic": "x", "queries": []}`,
			want: `{"topic": "x", "queries": []}`,
			ok:   true,
		},
		{
			name: "object with surrounding prose",
			text: "Sure! {\"a\": 1} Hope that helps.",
			want: `{"a": 1}`,
			ok:   true,
		},
		{
			name: "no object",
			text: "I could not produce a plan.",
			ok:   false,
		},
		{
			name: "empty",
			text: "",
			ok:   false,
		},
		{
			name: "whitespace only",
			text: "  \n\t ",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.text)
			if ok != tt.ok {
				t.Fatalf("ExtractJSON(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"two words", 2},
		{"spread\nacross\nlines and   spaces", 5},
	}
	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestTitleSlug(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"renewable energy policy", "Renewable_Energy_Policy"},
		{"already Capitalized", "Already_Capitalized"},
		{"what's next?", "Whats_Next"},
		{"a/b testing", "Ab_Testing"},
		{"", "Report"},
		{"???", "Report"},
	}
	for _, tt := range tests {
		if got := TitleSlug(tt.topic); got != tt.want {
			t.Errorf("TitleSlug(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

package vision

import (
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"whitespace only", "  \n\t ", ""},
		{"leading fence only", "```json\n{\"a\":1}", `{"a":1}`},
		{"trailing fence only", "{\"a\":1}\n```", `{"a":1}`},
		{"plain text untouched", "not json at all", "not json at all"},
		{"surrounding whitespace", "  \n```json\n{\"a\": null}\n```  \n", `{"a": null}`},
		{"stacked json fences", "```json```json", ""},
		{"bare fence then json fence", "``````json", ""},
		{"nested fences around payload", "```\n```json\n{\"a\":1}\n```\n```", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\":1}\n```",
		"```\nplain\n```",
		`{"a":1}`,
		"",
		"   text with spaces   ",
		"``` incomplete",
		"```json```json",
		"``````json",
		"```\n```json\n{\"a\":1}\n```\n```",
		"``` ``` ```",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

package vision

import (
	"strings"
)

// Sanitize strips a markdown code fence wrapped around model output so the
// remaining text can be fed to a JSON decoder. Text without a fence passes
// through untouched. Sanitize is total and idempotent.
func Sanitize(text string) string {
	cleaned := strings.TrimSpace(text)

	// Strip repeatedly until the string stops changing, so stacked fence
	// markers cannot survive a single pass.
	for {
		prev := cleaned

		if strings.HasPrefix(cleaned, "```json") {
			cleaned = strings.TrimPrefix(cleaned, "```json")
		} else if strings.HasPrefix(cleaned, "```") {
			cleaned = strings.TrimPrefix(cleaned, "```")
		}

		if strings.HasSuffix(cleaned, "```") {
			cleaned = strings.TrimSuffix(cleaned, "```")
		}

		cleaned = strings.TrimSpace(cleaned)
		if cleaned == prev {
			return cleaned
		}
	}
}

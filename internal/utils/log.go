package utils

import (
	"strings"
	"unicode"
)

// TruncateForLog flattens s onto a single line and cuts it to limit runes,
// appending an ellipsis when truncated. Prompts, model output and response
// bodies are multi-line, and previews must not break console log entries.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	var b strings.Builder
	n := 0
	space := false

	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			if n == limit {
				return b.String() + "..."
			}
			b.WriteByte(' ')
			n++
			space = false
		}
		if n == limit {
			return b.String() + "..."
		}
		b.WriteRune(r)
		n++
	}

	return b.String()
}

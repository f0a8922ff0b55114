package llm

import "strings"

// ExtractJSON returns the substring of raw most likely to be a single JSON
// object. Models routinely wrap JSON in markdown fences or surround it with
// prose; fences are stripped first, then a brace-depth scan from the first
// "{" finds the balanced object. Brace counting rather than regex is required
// to handle nested objects and arrays inside the payload.
//
// If no object can be located the trimmed input is returned unchanged and the
// caller's subsequent parse surfaces the failure.
func ExtractJSON(raw string) string {
	text := strings.TrimSpace(raw)

	if inner, ok := fencedBlock(text, "```json"); ok {
		text = inner
	} else if inner, ok := fencedBlock(text, "```"); ok {
		text = inner
	}

	start := strings.Index(text, "{")
	if start < 0 {
		return text
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	// No matching close brace; return from the first brace to end so the
	// parse error points at the truncated payload.
	return text[start:]
}

// fencedBlock returns the interior of the first fenced code block opened by
// marker, if one exists.
func fencedBlock(text, marker string) (string, bool) {
	start := strings.Index(text, marker)
	if start < 0 {
		return "", false
	}
	inner := text[start+len(marker):]
	// Skip a language identifier line for bare ``` fences
	if marker == "```" {
		if idx := strings.Index(inner, "\n"); idx >= 0 {
			firstLine := strings.TrimSpace(inner[:idx])
			if firstLine != "" && len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {") {
				inner = inner[idx+1:]
			}
		}
	}
	end := strings.Index(inner, "```")
	if end < 0 {
		return strings.TrimSpace(inner), true
	}
	return strings.TrimSpace(inner[:end]), true
}

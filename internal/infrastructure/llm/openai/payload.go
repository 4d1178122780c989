package openai

import "strings"

// Models wrap JSON in markdown fences or prose more often than not. Recovery
// order: fenced ```json block, then outermost delimiter pair, then the raw
// text as a last resort.
func extractJSONObject(raw string) string {
	return extractJSONPayload(raw, "{", "}")
}

func extractJSONArray(raw string) string {
	return extractJSONPayload(raw, "[", "]")
}

func extractJSONPayload(raw, opening, closing string) string {
	if idx := strings.Index(raw, "```json"); idx >= 0 {
		rest := raw[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
	}

	start := strings.Index(raw, opening)
	end := strings.LastIndex(raw, closing)
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

package util

import "strings"

// TruncateRunes shortens s to at most max runes, cutting at a rune boundary.
// Used to cap transcript length before prompting the LLM.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// NormalizeSpace collapses runs of whitespace into single spaces and trims
// the result. Transcription backends pad output with uneven spacing.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

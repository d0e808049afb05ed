package util

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// noiseAnnotationRegex matches bracketed or parenthesized annotations
	// that whisper emits for non-speech audio: [BLANK_AUDIO], [ Silence ],
	// (wind blowing), *music*.
	noiseAnnotationRegex = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)|\*[^*]*\*`)
)

// SanitizeString trims whitespace and removes control characters from s.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// SanitizeEnvValue cleans an environment variable value by removing surrounding
// quotes and trimming whitespace.
func SanitizeEnvValue(s string) string {
	s = strings.TrimSpace(s)
	// Strip matching surrounding quotes (single or double).
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}

// StripNoiseAnnotations removes whisper's non-speech annotations from a
// transcript. A transcript that is nothing but annotations becomes empty.
func StripNoiseAnnotations(s string) string {
	return NormalizeSpace(noiseAnnotationRegex.ReplaceAllString(s, " "))
}

// SanitizeFilename reduces s to a string safe to use as a file name:
// path separators and control characters are replaced with '-'.
func SanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '-'
		case unicode.IsControl(r):
			return '-'
		default:
			return r
		}
	}, s)
}

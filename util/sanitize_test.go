package util

import (
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"removes control chars", "hello\x00world", "helloworld"},
		{"removes tabs and newlines", "line1\n\tline2", "line1line2"},
		{"empty string", "", ""},
		{"no changes needed", "clean", "clean"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeString(tc.input)
			if got != tc.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeEnvValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips double quotes", `"value"`, "value"},
		{"strips single quotes", `'value'`, "value"},
		{"trims whitespace", "  value  ", "value"},
		{"strips quotes and trims", `  "value"  `, "value"},
		{"no quotes", "value", "value"},
		{"empty string", "", ""},
		{"mismatched quotes", `"value'`, `"value'`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeEnvValue(tc.input)
			if got != tc.want {
				t.Errorf("SanitizeEnvValue(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestStripNoiseAnnotations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"blank audio only", "[BLANK_AUDIO]", ""},
		{"silence marker", "[ Silence ]", ""},
		{"parenthesized noise", "(wind blowing)", ""},
		{"starred noise", "*music*", ""},
		{"annotation before speech", "[BLANK_AUDIO] hello world", "hello world"},
		{"annotation between speech", "hello [coughs] world", "hello world"},
		{"plain transcript untouched", "hello world", "hello world"},
		{"multiple annotations", "[a] (b) *c*", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := StripNoiseAnnotations(tc.input)
			if got != tc.want {
				t.Errorf("StripNoiseAnnotations(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"path separator", "ggml/base.bin", "ggml-base.bin"},
		{"backslash", `a\b`, "a-b"},
		{"colon", "a:b", "a-b"},
		{"control char", "a\x00b", "a-b"},
		{"clean name", "ggml-base.en.bin", "ggml-base.en.bin"},
		{"trims space", "  name  ", "name"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeFilename(tc.input)
			if got != tc.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

package vad

import "testing"

func TestCombineTranscripts(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{
			name:  "empty",
			parts: nil,
			want:  "",
		},
		{
			name:  "single part",
			parts: []string{"hello world"},
			want:  "hello world",
		},
		{
			name:  "disjoint parts joined with a space",
			parts: []string{"first thought", "second thought"},
			want:  "first thought second thought",
		},
		{
			name:  "boundary overlap dropped",
			parts: []string{"we should meet on", "on friday afternoon"},
			want:  "we should meet on friday afternoon",
		},
		{
			name:  "multi word overlap",
			parts: []string{"send it to the whole", "to the whole team please"},
			want:  "send it to the whole team please",
		},
		{
			name:  "contained part skipped",
			parts: []string{"the quick brown fox", "brown fox"},
			want:  "the quick brown fox",
		},
		{
			name:  "whitespace only parts skipped",
			parts: []string{"hello", "   ", "world"},
			want:  "hello world",
		},
		{
			name:  "parts trimmed before joining",
			parts: []string{"  hello  ", "  world  "},
			want:  "hello world",
		},
		{
			name:  "duplicate part skipped",
			parts: []string{"same words", "same words"},
			want:  "same words",
		},
		{
			name:  "three parts with overlaps",
			parts: []string{"one two three", "three four five", "five six"},
			want:  "one two three four five six",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CombineTranscripts(tt.parts); got != tt.want {
				t.Fatalf("CombineTranscripts(%q) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestCombineTranscripts_OverlapBounded(t *testing.T) {
	// Overlaps longer than the 64-byte search bound are not detected; the
	// parts join with a separator instead.
	long := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaab"
	got := CombineTranscripts([]string{"x " + long, long + " y"})
	if want := "x " + long + " " + long + " y"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCombineTranscripts_MultibyteBoundary(t *testing.T) {
	got := CombineTranscripts([]string{"café au", "au lait"})
	if got != "café au lait" {
		t.Fatalf("got %q", got)
	}
}

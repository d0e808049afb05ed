package vad

import "strings"

// maxOverlap bounds how many bytes of overlap the join looks for between
// consecutive chunk transcripts.
const maxOverlap = 64

// CombineTranscripts merges per-chunk transcripts in order. Consecutive
// chunks often share a few words around the boundary, so the join drops the
// longest prefix of the next part (up to maxOverlap bytes, cut at a
// character boundary) that the accumulated text already ends with. Parts
// wholly contained in the accumulated text are skipped.
func CombineTranscripts(parts []string) string {
	var acc strings.Builder
	for _, part := range parts {
		mergeWithOverlap(&acc, part)
	}
	return acc.String()
}

func mergeWithOverlap(acc *strings.Builder, next string) {
	next = strings.TrimSpace(next)
	if next == "" {
		return
	}
	current := acc.String()
	if strings.Contains(current, next) {
		return
	}

	limit := len(next)
	if len(current) < limit {
		limit = len(current)
	}
	if limit > maxOverlap {
		limit = maxOverlap
	}

	overlap := 0
	for i := range next {
		if i == 0 || i > limit {
			continue
		}
		if strings.HasSuffix(current, next[:i]) {
			overlap = i
		}
	}

	if overlap == 0 && current != "" {
		acc.WriteByte(' ')
	}
	acc.WriteString(next[overlap:])
}

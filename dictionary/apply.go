package dictionary

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// span is one accepted replacement range over the original text.
type span struct {
	start, end  int
	replacement string
}

// Apply substitutes the rules into text. Longer patterns are tried first so
// "open a i" beats "a i"; matches are collected against the original text
// and never overlap, so a replacement is never re-matched by another rule.
func Apply(text string, rules []Rule) string {
	if text == "" || len(rules) == 0 {
		return text
	}

	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Pattern) > len(ordered[j].Pattern)
	})

	haystack := fold(text)
	var spans []span
	for _, rule := range ordered {
		needle := fold(rule.Pattern)
		if needle == "" {
			continue
		}
		from := 0
		for {
			i := strings.Index(haystack[from:], needle)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(needle)
			from = start + 1
			if rule.Scope == ScopeWord && !atWordBoundary(text, start, end) {
				continue
			}
			if overlaps(spans, start, end) {
				continue
			}
			spans = append(spans, span{start: start, end: end, replacement: rule.Replacement})
		}
	}
	if len(spans) == 0 {
		return text
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	var out strings.Builder
	out.Grow(len(text))
	last := 0
	for _, s := range spans {
		out.WriteString(text[last:s.start])
		out.WriteString(s.replacement)
		last = s.end
	}
	out.WriteString(text[last:])
	return out.String()
}

// fold lowercases s for matching. Lowercasing that changes the byte length
// (rare, e.g. İ) would break span offsets, so such text is matched
// case-sensitively instead.
func fold(s string) string {
	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		return s
	}
	return lower
}

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && s.start < end {
			return true
		}
	}
	return false
}

// atWordBoundary reports whether text[start:end] is delimited by non-word
// characters (or the text edges) on both sides.
func atWordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

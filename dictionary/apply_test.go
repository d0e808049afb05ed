package dictionary

import "testing"

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		rules []Rule
		want  string
	}{
		{
			name:  "no rules is identity",
			text:  "hello world",
			rules: nil,
			want:  "hello world",
		},
		{
			name:  "word typo fixed",
			text:  "i saw teh cat",
			rules: []Rule{{Pattern: "teh", Replacement: "the", Scope: ScopeWord}},
			want:  "i saw the cat",
		},
		{
			name:  "word scope ignores partial words",
			text:  "the tether held",
			rules: []Rule{{Pattern: "teh", Replacement: "the", Scope: ScopeWord}},
			want:  "the tether held",
		},
		{
			name:  "phrase scope matches inside words",
			text:  "the tehther held",
			rules: []Rule{{Pattern: "teh", Replacement: "te", Scope: ScopePhrase}},
			want:  "the tether held",
		},
		{
			name:  "case insensitive match",
			text:  "Teh cat and TEH dog",
			rules: []Rule{{Pattern: "teh", Replacement: "the", Scope: ScopeWord}},
			want:  "the cat and the dog",
		},
		{
			name:  "replacement inserted verbatim",
			text:  "send it to acme corp",
			rules: []Rule{{Pattern: "acme corp", Replacement: "ACME Corp.", Scope: ScopePhrase}},
			want:  "send it to ACME Corp.",
		},
		{
			name: "longest pattern wins",
			text: "open a i settings",
			rules: []Rule{
				{Pattern: "a i", Replacement: "AI", Scope: ScopePhrase},
				{Pattern: "open a i", Replacement: "open AI console", Scope: ScopePhrase},
			},
			want: "open AI console settings",
		},
		{
			name: "replacement output is not rematched",
			text: "say abc",
			rules: []Rule{
				{Pattern: "abc", Replacement: "xyz", Scope: ScopeWord},
				{Pattern: "xyz", Replacement: "abc", Scope: ScopeWord},
			},
			want: "say xyz",
		},
		{
			name: "overlapping match yields to the longer pattern",
			text: "one two three",
			rules: []Rule{
				{Pattern: "one two", Replacement: "1-2", Scope: ScopePhrase},
				{Pattern: "two three", Replacement: "2-3", Scope: ScopePhrase},
			},
			want: "one 2-3",
		},
		{
			name:  "multiple occurrences all replaced",
			text:  "teh one and teh other",
			rules: []Rule{{Pattern: "teh", Replacement: "the", Scope: ScopeWord}},
			want:  "the one and the other",
		},
		{
			name:  "word boundary at punctuation",
			text:  "was it teh? yes, teh.",
			rules: []Rule{{Pattern: "teh", Replacement: "the", Scope: ScopeWord}},
			want:  "was it the? yes, the.",
		},
		{
			name:  "underscore counts as a word character",
			text:  "call foo_teh now",
			rules: []Rule{{Pattern: "teh", Replacement: "the", Scope: ScopeWord}},
			want:  "call foo_teh now",
		},
		{
			name:  "empty text",
			text:  "",
			rules: []Rule{{Pattern: "teh", Replacement: "the", Scope: ScopeWord}},
			want:  "",
		},
		{
			name:  "multi word phrase at word boundaries",
			text:  "ping the on call engineer",
			rules: []Rule{{Pattern: "on call", Replacement: "on-call", Scope: ScopeWord}},
			want:  "ping the on-call engineer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(tt.text, tt.rules); got != tt.want {
				t.Fatalf("Apply(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestApply_DoesNotMutateRuleOrder(t *testing.T) {
	rules := []Rule{
		{Pattern: "a", Replacement: "1", Scope: ScopePhrase},
		{Pattern: "bb", Replacement: "22", Scope: ScopePhrase},
	}
	Apply("a bb", rules)
	if rules[0].Pattern != "a" || rules[1].Pattern != "bb" {
		t.Fatalf("rule slice reordered: %v", rules)
	}
}

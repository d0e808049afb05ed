package dictionary

import (
	"fmt"
	"strings"
)

// Rule scopes.
const (
	// ScopeWord matches the pattern only at word boundaries.
	ScopeWord = "word"
	// ScopePhrase matches the pattern anywhere in the text.
	ScopePhrase = "phrase"
)

// Rule is one substitution. Matching is case-insensitive; the replacement
// is inserted verbatim.
type Rule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
	Scope       string `yaml:"scope,omitempty"`
}

// normalize trims the pattern, fills the default scope, and rejects rules
// that can never match safely.
func (r *Rule) normalize(index int) error {
	r.Pattern = strings.TrimSpace(r.Pattern)
	if r.Pattern == "" {
		return fmt.Errorf("rule %d: pattern must not be empty", index)
	}
	switch r.Scope {
	case "":
		r.Scope = ScopeWord
	case ScopeWord, ScopePhrase:
	default:
		return fmt.Errorf("rule %d: scope must be %q or %q (got: %q)", index, ScopeWord, ScopePhrase, r.Scope)
	}
	return nil
}

// ruleFile is the on-disk shape of dictionary.yaml.
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

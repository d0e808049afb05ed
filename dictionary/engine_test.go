package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/kbukum/voxd/errors"
	"github.com/kbukum/voxd/logger"
)

func writeDict(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), Filename)
	if err := os.WriteFile(path, []byte(content), 0o640); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEngine_LoadAndApply(t *testing.T) {
	path := writeDict(t, `
rules:
  - pattern: teh
    replacement: the
  - pattern: vox d
    replacement: voxd
    scope: phrase
`)
	e := NewEngine(path, logger.NewDefault("test"))
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := e.Apply("i saw teh cat"); got != "i saw the cat" {
		t.Fatalf("Apply = %q", got)
	}
	if n := len(e.Rules()); n != 2 {
		t.Fatalf("rules = %d, want 2", n)
	}
}

func TestEngine_DefaultScopeIsWord(t *testing.T) {
	path := writeDict(t, `
rules:
  - pattern: teh
    replacement: the
`)
	e := NewEngine(path, logger.NewDefault("test"))
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := e.Apply("the tether held"); got != "the tether held" {
		t.Fatalf("default scope matched inside a word: %q", got)
	}
}

func TestEngine_MissingFileSeedsSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), Filename)
	e := NewEngine(path, logger.NewDefault("test"))
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("sample file not written: %v", err)
	}
	// The seeded sample itself must parse and apply.
	if got := e.Apply("i saw teh cat"); got != "i saw the cat" {
		t.Fatalf("Apply with seeded sample = %q", got)
	}
}

func TestEngine_InvalidRuleRejectsWholeFile(t *testing.T) {
	path := writeDict(t, `
rules:
  - pattern: teh
    replacement: the
  - pattern: ""
    replacement: broken
`)
	e := NewEngine(path, logger.NewDefault("test"))
	err := e.Load()
	if !apperrors.HasCode(err, apperrors.ErrCodeDictionaryLoad) {
		t.Fatalf("load = %v, want dictionary load error", err)
	}
	// The valid rule must not survive a partial load.
	if got := e.Apply("i saw teh cat"); got != "i saw teh cat" {
		t.Fatalf("Apply after a rejected load = %q, want the identity", got)
	}
}

func TestEngine_BadScopeRejectsWholeFile(t *testing.T) {
	path := writeDict(t, `
rules:
  - pattern: teh
    replacement: the
    scope: sentence
`)
	e := NewEngine(path, logger.NewDefault("test"))
	if err := e.Load(); !apperrors.HasCode(err, apperrors.ErrCodeDictionaryLoad) {
		t.Fatalf("load = %v, want dictionary load error", err)
	}
}

func TestEngine_MalformedYAMLRejects(t *testing.T) {
	path := writeDict(t, "rules: [what")
	e := NewEngine(path, logger.NewDefault("test"))
	if err := e.Load(); !apperrors.HasCode(err, apperrors.ErrCodeDictionaryLoad) {
		t.Fatalf("load = %v, want dictionary load error", err)
	}
}

func TestEngine_ReloadReplacesRules(t *testing.T) {
	path := writeDict(t, `
rules:
  - pattern: teh
    replacement: the
`)
	e := NewEngine(path, logger.NewDefault("test"))
	if err := e.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := os.WriteFile(path, []byte(`
rules:
  - pattern: cat
    replacement: dog
`), 0o640); err != nil {
		t.Fatal(err)
	}
	if err := e.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if got := e.Apply("teh cat"); got != "teh dog" {
		t.Fatalf("Apply after reload = %q", got)
	}
}

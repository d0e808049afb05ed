// Package dictionary applies user-defined text substitutions to
// transcripts: spoken shorthand, recurring typos, and casing fixes, loaded
// from a YAML rule file in the config directory.
package dictionary

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	apperrors "github.com/kbukum/voxd/errors"
	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/storage"
)

// Filename is the dictionary file name under the config directory.
const Filename = "dictionary.yaml"

// sampleFile is written on first run so users have a schema to edit.
const sampleFile = `# voxd substitution rules, applied to every transcript.
# Longer patterns win; matching is case-insensitive.
# scope: word (default) matches whole words only; phrase matches anywhere.
rules:
  - pattern: teh
    replacement: the
  - pattern: vox d
    replacement: voxd
    scope: phrase
`

// Path returns the dictionary location under the user config directory.
func Path() string {
	return filepath.Join(storage.ConfigDir(), Filename)
}

// Engine applies the user dictionary to transcripts. A load failure leaves
// the engine running with an empty rule set; substitution never fails a
// dictation cycle.
type Engine struct {
	path string
	log  *logger.Logger

	mu    sync.RWMutex
	rules []Rule
}

// NewEngine creates an engine over the dictionary file at path. Call Load
// to read the rules.
func NewEngine(path string, log *logger.Logger) *Engine {
	return &Engine{path: path, log: log.WithComponent("dictionary")}
}

// Load reads and validates the rule file. A missing file is seeded with a
// commented sample. Any invalid rule rejects the whole file: the engine
// swaps in an empty rule set and returns the load error for reporting,
// while Apply keeps working as the identity function.
func (e *Engine) Load() error {
	data, err := os.ReadFile(e.path)
	if os.IsNotExist(err) {
		if werr := storage.WriteFileAtomic(e.path, []byte(sampleFile), 0o640); werr != nil {
			e.log.Warn("Could not seed dictionary file", map[string]interface{}{
				"path":  e.path,
				"error": werr.Error(),
			})
		}
		data = []byte(sampleFile)
		err = nil
	}
	if err != nil {
		e.swap(nil)
		return apperrors.DictionaryLoad(e.path, err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		e.swap(nil)
		e.log.Warn("Dictionary file rejected", map[string]interface{}{
			"path":  e.path,
			"error": err.Error(),
		})
		return apperrors.DictionaryLoad(e.path, err)
	}
	for i := range file.Rules {
		if err := file.Rules[i].normalize(i); err != nil {
			e.swap(nil)
			e.log.Warn("Dictionary file rejected", map[string]interface{}{
				"path":  e.path,
				"error": err.Error(),
			})
			return apperrors.DictionaryLoad(e.path, err)
		}
	}

	e.swap(file.Rules)
	e.log.Info("Dictionary loaded", map[string]interface{}{
		"path":  e.path,
		"rules": len(file.Rules),
	})
	return nil
}

// Rules returns a copy of the active rule set.
func (e *Engine) Rules() []Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Apply substitutes the active rules into text.
func (e *Engine) Apply(text string) string {
	e.mu.RLock()
	rules := e.rules
	e.mu.RUnlock()
	return Apply(text, rules)
}

func (e *Engine) swap(rules []Rule) {
	e.mu.Lock()
	e.rules = rules
	e.mu.Unlock()
}

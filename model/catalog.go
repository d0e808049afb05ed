package model

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/voxd/storage"
	"github.com/kbukum/voxd/validation"
)

// CatalogFilename is the catalog override file name under the config
// directory.
const CatalogFilename = "models.yaml"

// downloadBase is where the stock ggml conversions of the whisper models
// are published.
const downloadBase = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/"

// CatalogPath returns the override file location under the user config
// directory.
func CatalogPath() string {
	return filepath.Join(storage.ConfigDir(), CatalogFilename)
}

// Info describes one downloadable model. The validate tags apply to
// user-supplied catalog entries.
type Info struct {
	// ID is the catalog key, e.g. "base.en" or "large-v3".
	ID string `yaml:"id" json:"id" validate:"required"`
	// DisplayName is the human-readable name shown in the GUI.
	DisplayName string `yaml:"display_name" json:"display_name"`
	// SizeLabel is an approximate size shown before downloading.
	SizeLabel string `yaml:"size_label" json:"size_label"`
	// URL is the download location.
	URL string `yaml:"url" json:"url" validate:"omitempty,url"`
	// SHA256 optionally pins the file digest. Empty skips digest
	// verification.
	SHA256 string `yaml:"sha256,omitempty" json:"sha256,omitempty" validate:"omitempty,len=64,hexadecimal"`
}

// Filename returns the on-disk file name for the model.
func (i Info) Filename() string {
	return "ggml-" + i.ID + ".bin"
}

func builtin(id, display, size string) Info {
	return Info{
		ID:          id,
		DisplayName: display,
		SizeLabel:   size,
		URL:         downloadBase + "ggml-" + id + ".bin",
	}
}

// builtinCatalog lists the stock whisper.cpp models, smallest first.
var builtinCatalog = []Info{
	builtin("tiny", "Tiny (multilingual)", "75 MiB"),
	builtin("tiny.en", "Tiny (English)", "75 MiB"),
	builtin("base", "Base (multilingual)", "142 MiB"),
	builtin("base.en", "Base (English)", "142 MiB"),
	builtin("small", "Small (multilingual)", "466 MiB"),
	builtin("small.en", "Small (English)", "466 MiB"),
	builtin("small.en-q5_1", "Small (English, quantized)", "181 MiB"),
	builtin("medium", "Medium (multilingual)", "1.5 GiB"),
	builtin("medium.en", "Medium (English)", "1.5 GiB"),
	builtin("medium.en-q5_0", "Medium (English, quantized)", "514 MiB"),
	builtin("large-v3", "Large v3 (multilingual)", "2.9 GiB"),
	builtin("large-v3-q5_0", "Large v3 (quantized)", "1.1 GiB"),
	builtin("large-v3-turbo", "Large v3 Turbo", "1.5 GiB"),
	builtin("large-v3-turbo-q5_0", "Large v3 Turbo (quantized)", "547 MiB"),
}

// Catalog is the ordered set of known models: the built-ins plus any
// user-defined entries, with user entries able to override URLs and pin
// digests.
type Catalog struct {
	models []Info
	index  map[string]int
}

type catalogFile struct {
	Models []Info `yaml:"models"`
}

// LoadCatalog builds the catalog, merging overrides from the file at path.
// A missing file yields the built-in catalog; a malformed one is an error so
// a typo cannot silently drop a digest pin.
func LoadCatalog(path string) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int)}
	for _, m := range builtinCatalog {
		c.add(m)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("model: read catalog %s: %w", path, err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("model: parse catalog %s: %w", path, err)
	}
	for _, m := range file.Models {
		if err := validation.Validate(m); err != nil {
			return nil, fmt.Errorf("model: catalog %s entry %q: %w", path, m.ID, err)
		}
		c.add(m)
	}
	return c, nil
}

// add inserts or overrides an entry. Overrides keep built-in fields the
// user left empty, so a bare id+sha256 entry just pins the digest.
func (c *Catalog) add(m Info) {
	if i, ok := c.index[m.ID]; ok {
		cur := c.models[i]
		if m.DisplayName != "" {
			cur.DisplayName = m.DisplayName
		}
		if m.SizeLabel != "" {
			cur.SizeLabel = m.SizeLabel
		}
		if m.URL != "" {
			cur.URL = m.URL
		}
		if m.SHA256 != "" {
			cur.SHA256 = m.SHA256
		}
		c.models[i] = cur
		return
	}
	if m.URL == "" {
		m.URL = downloadBase + m.Filename()
	}
	if m.DisplayName == "" {
		m.DisplayName = m.ID
	}
	c.index[m.ID] = len(c.models)
	c.models = append(c.models, m)
}

// Get returns the entry for id.
func (c *Catalog) Get(id string) (Info, bool) {
	i, ok := c.index[id]
	if !ok {
		return Info{}, false
	}
	return c.models[i], true
}

// List returns all entries in catalog order.
func (c *Catalog) List() []Info {
	out := make([]Info, len(c.models))
	copy(out, c.models)
	return out
}

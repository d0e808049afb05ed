package main

import (
	"context"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/voxd/audio"
	"github.com/kbukum/voxd/config"
	"github.com/kbukum/voxd/dictionary"
	apperrors "github.com/kbukum/voxd/errors"
	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/sound"
)

// hotApply names the components that pick up settings changes without a
// restart. Everything else (backends, server bind, hotkeys) applies on the
// next start; Update logs that.
type hotApply struct {
	engine *audio.Engine
	sounds *sound.Worker
	dict   *dictionary.Engine
}

// settingsStore backs the control API's settings surface: it validates and
// atomically persists the full config document and hot-applies what it can.
type settingsStore struct {
	store *config.Store
	apply hotApply
	log   *logger.Logger

	mu      sync.Mutex
	current Config
}

func newSettingsStore(store *config.Store, cfg Config, apply hotApply, log *logger.Logger) *settingsStore {
	return &settingsStore{
		store:   store,
		apply:   apply,
		log:     log.WithComponent("settings"),
		current: cfg,
	}
}

// Current returns the active configuration as a generic document keyed by
// the yaml field names, so the API serves the same shape the file holds.
func (s *settingsStore) Current() (any, error) {
	s.mu.Lock()
	cfg := s.current
	s.mu.Unlock()
	return toDocument(&cfg)
}

// Update parses, validates, saves, and hot-applies a new configuration.
// Validation failures surface as 400s; nothing is persisted on failure.
func (s *settingsStore) Update(_ context.Context, raw []byte) (any, error) {
	var next Config
	if err := yaml.Unmarshal(raw, &next); err != nil {
		return nil, apperrors.Validation("settings document is not valid YAML/JSON: " + err.Error())
	}
	next.ApplyDefaults()
	if err := next.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if err := s.store.Save(&next); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	s.applyLive(&next)
	s.log.Info("Settings saved; transcription, server, and hotkey changes take effect on restart", map[string]interface{}{
		"path": s.store.Path(),
	})
	return toDocument(&next)
}

// Open hands the config file to the desktop editor.
func (s *settingsStore) Open(ctx context.Context) error {
	return s.store.Open(ctx)
}

func (s *settingsStore) applyLive(cfg *Config) {
	if s.apply.engine != nil {
		s.apply.engine.SetGain(cfg.Audio.Gain)
	}
	if s.apply.sounds != nil {
		if cfg.Sound.Enabled != nil {
			s.apply.sounds.SetEnabled(*cfg.Sound.Enabled)
		}
		s.apply.sounds.SetVolume(cfg.Sound.Volume)
	}
	if s.apply.dict != nil {
		if err := s.apply.dict.Load(); err != nil {
			s.log.Warn("Dictionary reload after settings save failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

func toDocument(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

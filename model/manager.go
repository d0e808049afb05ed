// Package model manages the local whisper model store: the catalog of
// downloadable models, resumable downloads with verification, and the
// readiness gate the transcription stage consults before every cycle.
package model

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/kbukum/voxd/component"
	apperrors "github.com/kbukum/voxd/errors"
	"github.com/kbukum/voxd/httpclient"
	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/observability"
	"github.com/kbukum/voxd/resilience"
	"github.com/kbukum/voxd/sse"
	"github.com/kbukum/voxd/storage"
)

// DefaultDir returns where model files live.
func DefaultDir() string {
	return filepath.Join(storage.DataDir(), "models")
}

// Config holds model store settings.
type Config struct {
	// Dir is the model directory.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Model is the active model id the daemon transcribes with.
	Model string `yaml:"model" mapstructure:"model"`

	// MaxConcurrent caps simultaneous downloads.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// ApplyDefaults applies default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Dir == "" {
		c.Dir = DefaultDir()
	}
	if c.Model == "" {
		c.Model = "base.en"
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 2
	}
}

// Validate validates the model configuration.
func (c *Config) Validate() error {
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("model: max_concurrent must be at least 1")
	}
	return nil
}

type task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager owns the model directory. It implements component.Component; a
// second download request for an id already in flight joins the running
// task instead of starting another.
type Manager struct {
	cfg       Config
	catalog   *Catalog
	client    *httpclient.Adapter
	bulkhead  *resilience.Bulkhead
	broadcast sse.Broadcaster
	metrics   *observability.Metrics
	notify    func(title, message string)
	log       *logger.Logger

	mu       sync.Mutex
	statuses map[string]*Status
	tasks    map[string]*task
	wg       sync.WaitGroup
}

// NewManager creates a manager over the catalog. broadcast may be nil to
// disable push updates.
func NewManager(cfg Config, catalog *Catalog, broadcast sse.Broadcaster, metrics *observability.Metrics, log *logger.Logger) (*Manager, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, ok := catalog.Get(cfg.Model); !ok {
		return nil, fmt.Errorf("model: active model %q is not in the catalog", cfg.Model)
	}

	client, err := httpclient.New(httpclient.Config{
		Name:    "model-download",
		Timeout: 30 * time.Second, // connection setup; streaming is ctx-bound
	})
	if err != nil {
		return nil, fmt.Errorf("model: create download client: %w", err)
	}

	return &Manager{
		cfg:       cfg,
		catalog:   catalog,
		client:    client,
		broadcast: broadcast,
		metrics:   metrics,
		log:       log.WithComponent("model"),
		notify: func(title, message string) {
			_ = beeep.Notify(title, message, "")
		},
		bulkhead: resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          "model-download",
			MaxConcurrent: cfg.MaxConcurrent,
			MaxWait:       time.Hour, // queue, don't reject
		}),
		statuses: make(map[string]*Status),
		tasks:    make(map[string]*task),
	}, nil
}

// Name implements component.Component.
func (m *Manager) Name() string { return "model-manager" }

// Start scans the model directory and seeds the status table.
func (m *Manager) Start(_ context.Context) error {
	if err := os.MkdirAll(m.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("model: create dir: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, info := range m.catalog.List() {
		st := m.scanLocked(info)
		m.statuses[info.ID] = &st
	}
	m.log.Info("Model store ready", map[string]interface{}{
		"dir":    m.cfg.Dir,
		"active": m.cfg.Model,
	})
	return nil
}

// Stop cancels running downloads and waits for them to wind down.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	for _, t := range m.tasks {
		t.cancel()
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Health reports degraded when the active model is not ready.
func (m *Manager) Health(_ context.Context) component.Health {
	h := component.Health{Name: m.Name(), Status: component.StatusHealthy}
	if err := m.EnsureReady(context.Background(), m.cfg.Model); err != nil {
		h.Status = component.StatusDegraded
		h.Message = fmt.Sprintf("active model %q not ready", m.cfg.Model)
	}
	return h
}

// Describe implements component.Describable.
func (m *Manager) Describe() component.Description {
	return component.Description{
		Name:    "Model Store",
		Type:    "models",
		Details: fmt.Sprintf("dir=%s model=%s", m.cfg.Dir, m.cfg.Model),
	}
}

// ActiveModel returns the configured model id.
func (m *Manager) ActiveModel() string { return m.cfg.Model }

// Path returns where the model file lives (or would live).
func (m *Manager) Path(id string) (string, error) {
	info, ok := m.catalog.Get(id)
	if !ok {
		return "", apperrors.NotFound("model", id)
	}
	return filepath.Join(m.cfg.Dir, info.Filename()), nil
}

// EnsureReady is the transcription readiness gate: nil iff the model file
// is present and verified.
func (m *Manager) EnsureReady(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.statuses[id]
	if !ok || st.State != StateReady {
		return apperrors.ModelNotReady(id)
	}
	return nil
}

// List returns every catalog entry with its current state, catalog order.
func (m *Manager) List() []Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Status, 0, len(m.catalog.List()))
	for _, info := range m.catalog.List() {
		if st, ok := m.statuses[info.ID]; ok {
			out = append(out, *st)
		} else {
			out = append(out, m.scanLocked(info))
		}
	}
	return out
}

// Download starts fetching the model in the background. A request for an id
// already downloading is a no-op join.
func (m *Manager) Download(id string) error {
	info, ok := m.catalog.Get(id)
	if !ok {
		return apperrors.NotFound("model", id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, running := m.tasks[id]; running {
		return nil
	}
	if st, ok := m.statuses[id]; ok && st.State == StateReady {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel, done: make(chan struct{})}
	m.tasks[id] = t
	m.setStatusLocked(id, func(st *Status) {
		st.State = StateDownloading
		st.Percent = 0
		st.Error = ""
	})

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer close(t.done)
		defer cancel()
		m.runDownload(ctx, info)
		m.mu.Lock()
		delete(m.tasks, id)
		m.mu.Unlock()
	}()
	return nil
}

// Cancel stops a running download. Partial data stays on disk for resume.
func (m *Manager) Cancel(id string) error {
	m.mu.Lock()
	t, running := m.tasks[id]
	m.mu.Unlock()
	if !running {
		return apperrors.NotFound("download", id)
	}
	t.cancel()
	<-t.done
	return nil
}

// Delete removes the model file and any partial data.
func (m *Manager) Delete(id string) error {
	info, ok := m.catalog.Get(id)
	if !ok {
		return apperrors.NotFound("model", id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, running := m.tasks[id]; running {
		return apperrors.Busy("downloading")
	}
	path := filepath.Join(m.cfg.Dir, info.Filename())
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	os.Remove(path + partialSuffix)
	m.setStatusLocked(id, func(st *Status) {
		st.State = StateNotPresent
		st.Percent = 0
		st.Bytes = 0
		st.Error = ""
	})
	return nil
}

func (m *Manager) runDownload(ctx context.Context, info Info) {
	finalPath := filepath.Join(m.cfg.Dir, info.Filename())

	err := m.bulkhead.Execute(ctx, func() error {
		lastLogged := -10
		onProgress := func(fetched, total int64) {
			percent := -1
			if total > 0 {
				percent = int(fetched * 100 / total)
			}
			m.mu.Lock()
			m.setStatusLocked(info.ID, func(st *Status) {
				st.Bytes = fetched
				st.Total = total
				st.Percent = percent
			})
			m.mu.Unlock()
			if percent >= lastLogged+10 {
				lastLogged = percent - percent%10
				m.log.Info("Download progress", map[string]interface{}{
					"model":   info.ID,
					"percent": percent,
					"bytes":   fetched,
				})
			}
		}

		if err := m.fetch(ctx, info, finalPath, onProgress); err != nil {
			return err
		}

		m.mu.Lock()
		m.setStatusLocked(info.ID, func(st *Status) { st.State = StateVerifying })
		m.mu.Unlock()
		return finalize(finalPath+partialSuffix, finalPath, info)
	})

	m.mu.Lock()
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeCancelled) {
			m.setStatusLocked(info.ID, func(st *Status) {
				*st = m.scanLocked(mustInfo(m.catalog, info.ID))
			})
			m.mu.Unlock()
			m.log.Info("Download cancelled", map[string]interface{}{"model": info.ID})
			return
		}
		m.setStatusLocked(info.ID, func(st *Status) {
			st.State = StateFailed
			st.Error = err.Error()
		})
		m.mu.Unlock()
		m.log.Error("Download failed", map[string]interface{}{
			"model": info.ID,
			"error": err.Error(),
		})
		m.notify("voxd", fmt.Sprintf("Download of model %q failed.", info.ID))
		return
	}
	m.setStatusLocked(info.ID, func(st *Status) {
		st.State = StateReady
		st.Percent = 100
		st.Error = ""
	})
	m.mu.Unlock()
	m.log.Info("Model ready", map[string]interface{}{"model": info.ID})
}

// scanLocked derives a model's state from the files on disk.
func (m *Manager) scanLocked(info Info) Status {
	st := Status{
		ID:          info.ID,
		DisplayName: info.DisplayName,
		SizeLabel:   info.SizeLabel,
		State:       StateNotPresent,
	}
	path := filepath.Join(m.cfg.Dir, info.Filename())
	if fi, err := os.Stat(path); err == nil && fi.Size() > 0 {
		if verify(path, info) == nil {
			st.State = StateReady
			st.Bytes = fi.Size()
			st.Total = fi.Size()
			st.Percent = 100
		} else {
			st.State = StateFailed
			st.Error = "model file failed verification"
		}
	}
	return st
}

// setStatusLocked mutates a model's status and pushes the update. Caller
// holds m.mu.
func (m *Manager) setStatusLocked(id string, mutate func(*Status)) {
	st, ok := m.statuses[id]
	if !ok {
		info, _ := m.catalog.Get(id)
		scanned := m.scanLocked(info)
		st = &scanned
		m.statuses[id] = st
	}
	mutate(st)
	m.push(*st)
}

// push sends a download event to SSE subscribers.
func (m *Manager) push(st Status) {
	if m.broadcast == nil {
		return
	}
	m.broadcast.BroadcastToPattern("*", sse.Envelope("download", st))
}

func mustInfo(c *Catalog, id string) Info {
	info, _ := c.Get(id)
	return info
}

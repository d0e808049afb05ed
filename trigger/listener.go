// Package trigger turns hotkeys and POSIX signals into pipeline events.
// All sources share one debouncer, so a key held down or a bar double-click
// starts a single dictation cycle.
package trigger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.design/x/hotkey"

	"github.com/kbukum/voxd/component"
	"github.com/kbukum/voxd/logger"
)

// Actions is the slice of the pipeline the listener drives.
type Actions interface {
	Toggle(source string)
	OpenSettings(source string)
}

// Config holds trigger settings.
type Config struct {
	// Toggle is the dictation hotkey.
	Toggle string `yaml:"toggle" mapstructure:"toggle"`

	// Settings optionally binds a second hotkey that opens the settings
	// surface. Empty disables it.
	Settings string `yaml:"settings" mapstructure:"settings"`

	// Debounce is the minimum spacing between accepted trigger events.
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// ApplyDefaults applies default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Toggle == "" {
		c.Toggle = "ctrl+alt+d"
	}
	if c.Debounce == 0 {
		c.Debounce = DefaultDebounce
	}
}

// Validate validates the trigger configuration. Hotkey parse errors fail
// startup; a daemon with an unreachable trigger is useless.
func (c *Config) Validate() error {
	if _, err := ParseSpec(c.Toggle); err != nil {
		return err
	}
	if c.Settings != "" {
		if _, err := ParseSpec(c.Settings); err != nil {
			return err
		}
	}
	if c.Debounce < 0 {
		return fmt.Errorf("trigger: debounce must not be negative")
	}
	return nil
}

// binding abstracts a registered hotkey so tests can inject a fake.
type binding interface {
	Register() error
	Unregister() error
	Keydown() <-chan hotkey.Event
}

// Listener registers the hotkeys on a dedicated goroutine per binding and
// forwards accepted events to the pipeline. It implements
// component.Component.
type Listener struct {
	cfg      Config
	actions  Actions
	debounce *Debouncer
	log      *logger.Logger

	newBinding func(Spec) binding

	mu       sync.Mutex
	bindings []binding
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	degraded bool
}

// NewListener creates a listener. The shared debouncer also gates toggles
// arriving over signals and the control API.
func NewListener(cfg Config, actions Actions, debounce *Debouncer, log *logger.Logger) (*Listener, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Listener{
		cfg:      cfg,
		actions:  actions,
		debounce: debounce,
		log:      log.WithComponent("trigger"),
		newBinding: func(s Spec) binding {
			return hotkey.New(s.Mods, s.Key)
		},
	}, nil
}

// Name implements component.Component.
func (l *Listener) Name() string { return "trigger" }

// Start registers the hotkeys. A registration failure (headless session,
// another client holding the combination) degrades the component instead of
// failing startup: signals and the control API still work.
func (l *Listener) Start(_ context.Context) error {
	ctx, cancel := context.WithCancel(context.Background())

	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancel = cancel

	toggleSpec, _ := ParseSpec(l.cfg.Toggle)
	l.watch(ctx, toggleSpec, func() { l.Toggle("hotkey") })

	if l.cfg.Settings != "" {
		settingsSpec, _ := ParseSpec(l.cfg.Settings)
		l.watch(ctx, settingsSpec, func() { l.OpenSettings("hotkey") })
	}
	return nil
}

// watch registers one binding and pumps its keydown events. Caller holds
// l.mu.
func (l *Listener) watch(ctx context.Context, spec Spec, fire func()) {
	b := l.newBinding(spec)
	if err := b.Register(); err != nil {
		l.degraded = true
		l.log.Warn("Could not register hotkey; signal and API triggers remain available", map[string]interface{}{
			"hotkey": spec.String(),
			"error":  err.Error(),
		})
		return
	}
	l.bindings = append(l.bindings, b)
	l.log.Info("Hotkey registered", map[string]interface{}{"hotkey": spec.String()})

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-b.Keydown():
				fire()
			}
		}
	}()
}

// Stop unregisters the hotkeys and waits for the event pumps to exit.
func (l *Listener) Stop(_ context.Context) error {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	bindings := l.bindings
	l.bindings = nil
	l.mu.Unlock()

	for _, b := range bindings {
		_ = b.Unregister()
	}
	l.wg.Wait()
	return nil
}

// Health reports degraded when a hotkey could not be registered.
func (l *Listener) Health(_ context.Context) component.Health {
	l.mu.Lock()
	defer l.mu.Unlock()
	h := component.Health{Name: l.Name(), Status: component.StatusHealthy}
	if l.degraded {
		h.Status = component.StatusDegraded
		h.Message = "hotkey registration failed"
	}
	return h
}

// Describe implements component.Describable.
func (l *Listener) Describe() component.Description {
	return component.Description{
		Name:    "Trigger",
		Type:    "trigger",
		Details: "hotkey=" + l.cfg.Toggle,
	}
}

// Toggle forwards a debounced toggle to the pipeline. Signal handlers and
// the control API call this so every source shares one debounce window.
func (l *Listener) Toggle(source string) {
	if !l.debounce.Allow() {
		l.log.Debug("Trigger dropped by debounce", map[string]interface{}{"source": source})
		return
	}
	l.actions.Toggle(source)
}

// OpenSettings forwards a settings-open request to the pipeline.
func (l *Listener) OpenSettings(source string) {
	l.actions.OpenSettings(source)
}

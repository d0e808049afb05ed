package trigger

import (
	"sync"
	"time"
)

// DefaultDebounce is the minimum spacing between accepted trigger events.
// Key-repeat and double-fired signals inside this window are dropped.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer drops events that arrive too soon after the last accepted one.
// One instance is shared by every trigger source (hotkey, signals, API)
// so rapid mixed-source toggles collapse into one.
type Debouncer struct {
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewDebouncer creates a debouncer with the given window. A zero window
// accepts everything.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window, now: time.Now}
}

// Allow reports whether an event arriving now should be acted on, and
// marks it accepted if so.
func (d *Debouncer) Allow() bool {
	if d.window <= 0 {
		return true
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	if now.Sub(d.last) < d.window {
		return false
	}
	d.last = now
	return true
}

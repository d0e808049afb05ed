package status

import (
	"encoding/json"
	"path/filepath"
	"sync"

	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/pipeline"
	"github.com/kbukum/voxd/sse"
	"github.com/kbukum/voxd/storage"
)

// Filename is the status document name under the runtime directory.
const Filename = "status.json"

// Path returns the status document location.
func Path() string {
	return filepath.Join(storage.RuntimeDir(), Filename)
}

// Publisher writes the status document on every pipeline transition. Writes
// are atomic, so a reader polling the file never sees a torn document.
// Publication failures are logged and absorbed; status is advisory and must
// never fail a dictation cycle.
type Publisher struct {
	path string
	log  *logger.Logger

	mu        sync.RWMutex
	model     string
	broadcast sse.Broadcaster
	current   Snapshot
}

var _ pipeline.StatusPublisher = (*Publisher)(nil)

// NewPublisher creates a publisher writing to path. broadcast may be nil.
func NewPublisher(path string, broadcast sse.Broadcaster, log *logger.Logger) *Publisher {
	p := &Publisher{
		path:      path,
		log:       log.WithComponent("status"),
		broadcast: broadcast,
	}
	p.current = For(pipeline.StateIdle, "", "")
	return p
}

// SetModel sets the model name shown in tooltips.
func (p *Publisher) SetModel(model string) {
	p.mu.Lock()
	p.model = model
	p.mu.Unlock()
}

// Current returns the most recently published snapshot.
func (p *Publisher) Current() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Publish writes the snapshot for st and mirrors it to SSE subscribers.
func (p *Publisher) Publish(st pipeline.State, failure string) {
	p.mu.Lock()
	snap := For(st, p.model, failure)
	p.current = snap
	broadcast := p.broadcast
	p.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		p.log.Error("Could not encode status snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := storage.WriteFileAtomic(p.path, data, 0o644); err != nil {
		p.log.Warn("Could not write status document", map[string]interface{}{
			"path":  p.path,
			"error": err.Error(),
		})
	}

	if broadcast != nil {
		broadcast.BroadcastToPattern("*", sse.Envelope("status", snap))
	}
}

package vad

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/voxd/audio"
	"github.com/kbukum/voxd/logger"
)

// SampleSource exposes the live capture buffer. Since returns the samples
// appended after offset and the new total; a total below offset means a new
// capture session started.
type SampleSource interface {
	Since(offset int) ([]float32, int)
}

// Monitor polls the capture buffer while recording and raises auto-stop and
// chunk-boundary callbacks. One Monitor serves the daemon; Start and Stop
// bracket each recording session.
type Monitor struct {
	cfg     Config
	src     SampleSource
	log     *logger.Logger
	chunked bool

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMonitor creates a silence monitor over the given sample source.
// cfg must have defaults applied. chunked enables long-form boundaries.
func NewMonitor(cfg Config, src SampleSource, log *logger.Logger, chunked bool) *Monitor {
	return &Monitor{
		cfg:     cfg,
		src:     src,
		log:     log.WithComponent("vad"),
		chunked: chunked,
	}
}

// Start begins watching the capture buffer. autoStop fires at most once per
// session; chunk fires on every boundary in long-form mode and receives the
// chunk's samples. Both run on the monitor goroutine.
func (m *Monitor) Start(ctx context.Context, autoStop func(reason string), chunk func(samples []float32, reason string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.wg.Add(1)
	go m.watch(runCtx, autoStop, chunk)
}

// Stop ends the watch and waits for the monitor goroutine to exit, so no
// callback can fire after Stop returns.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	m.wg.Wait()
}

func (m *Monitor) watch(ctx context.Context, autoStop func(string), chunk func([]float32, string)) {
	defer m.wg.Done()

	det := newDetector(m.cfg, m.chunked)
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	offset := 0
	chunkStart := 0
	m.log.Debug("Silence monitor started", map[string]interface{}{
		"preset":    m.cfg.Preset,
		"threshold": m.cfg.Threshold,
		"chunked":   m.chunked,
	})

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		window, total := m.src.Since(offset)
		if total < offset {
			// New capture session; the controller will restart us.
			return
		}
		offset = total
		if len(window) == 0 {
			continue
		}
		dt := time.Duration(len(window)) * time.Second / audio.TargetRate

		decision, reason := det.observe(window, dt)
		switch decision {
		case decideContinue:

		case decideSplit:
			samples, _ := m.src.Since(chunkStart)
			boundary := chunkStart + len(samples)
			chunkStart = boundary
			offset = boundary
			m.log.Debug("Chunk boundary", map[string]interface{}{
				"reason":  reason,
				"samples": len(samples),
			})
			if chunk != nil {
				chunk(samples, reason)
			}

		case decideSkip:
			samples, _ := m.src.Since(chunkStart)
			chunkStart += len(samples)
			offset = chunkStart
			m.log.Debug("Dropping silence-only chunk", map[string]interface{}{
				"reason":  reason,
				"samples": len(samples),
			})

		case decideAutoStop:
			m.log.Info("Auto-stop", map[string]interface{}{"reason": reason})
			if autoStop != nil {
				autoStop(reason)
			}
			return
		}
	}
}

package audio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gordonklaus/portaudio"

	"github.com/kbukum/voxd/component"
	apperrors "github.com/kbukum/voxd/errors"
	"github.com/kbukum/voxd/logger"
)

// DefaultNoiseFloor matches the normal silence-detection preset. The
// pipeline overrides it with the configured threshold at wiring time.
const DefaultNoiseFloor = 0.005

// Engine owns the PortAudio runtime and runs capture sessions. It implements
// component.Component: Start and Stop manage the PortAudio lifecycle while
// StartCapture and StopCapture bound a single recording.
//
// Each capture session gets a fresh session number. A read loop from a
// previous session that is still draining discards its frames once the
// number moves on.
type Engine struct {
	cfg Config
	log *logger.Logger

	session     atomic.Uint64
	gainBits    atomic.Uint32
	floorBits   atomic.Uint32
	initialized atomic.Bool

	mu        sync.Mutex
	stream    *portaudio.Stream
	stopCh    chan struct{}
	buf       []float32
	id        string
	device    string
	startedAt time.Time
	wg        sync.WaitGroup
}

var (
	_ component.Component   = (*Engine)(nil)
	_ component.Describable = (*Engine)(nil)
)

// NewEngine creates the audio engine. cfg must have defaults applied.
func NewEngine(cfg Config, log *logger.Logger) *Engine {
	e := &Engine{
		cfg: cfg,
		log: log.WithComponent("audio"),
	}
	e.SetGain(cfg.Gain)
	e.SetNoiseFloor(DefaultNoiseFloor)
	return e
}

// Name returns the component name.
func (e *Engine) Name() string { return "audio" }

// Start initializes PortAudio and logs the available input devices.
func (e *Engine) Start(ctx context.Context) error {
	if e.initialized.Load() {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	e.initialized.Store(true)

	devices, err := portaudio.Devices()
	if err != nil {
		e.log.Warn("Could not enumerate audio devices", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	inputs := 0
	for i, d := range devices {
		if d.MaxInputChannels == 0 {
			continue
		}
		inputs++
		e.log.Debug("Input device", map[string]interface{}{
			"index":    i,
			"name":     d.Name,
			"channels": d.MaxInputChannels,
			"rate":     d.DefaultSampleRate,
		})
	}
	e.log.Info("Audio engine started", map[string]interface{}{
		"input_devices": inputs,
	})
	return nil
}

// Stop aborts any running capture and shuts down PortAudio.
func (e *Engine) Stop(ctx context.Context) error {
	e.abortCapture()
	if e.initialized.CompareAndSwap(true, false) {
		if err := portaudio.Terminate(); err != nil {
			return fmt.Errorf("portaudio terminate: %w", err)
		}
	}
	return nil
}

// Health reports whether the engine can capture.
func (e *Engine) Health(ctx context.Context) component.Health {
	if !e.initialized.Load() {
		return component.Health{
			Name:    e.Name(),
			Status:  component.StatusUnhealthy,
			Message: "portaudio not initialized",
		}
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return component.Health{
			Name:    e.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("device enumeration: %v", err),
		}
	}
	def, _ := portaudio.DefaultInputDevice()
	dev, _ := pickDevice(devices, def, e.cfg.DeviceIndex, e.cfg.Device)
	if dev == nil {
		return component.Health{
			Name:    e.Name(),
			Status:  component.StatusDegraded,
			Message: "no capture device",
		}
	}
	return component.Health{
		Name:    e.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("device=%s", dev.Name),
	}
}

// Describe returns summary info for the bootstrap display.
func (e *Engine) Describe() component.Description {
	target := "default"
	if e.cfg.DeviceIndex != nil {
		target = fmt.Sprintf("#%d", *e.cfg.DeviceIndex)
	} else if e.cfg.Device != "" {
		target = e.cfg.Device
	}
	return component.Description{
		Name:    "Audio Capture",
		Type:    "audio",
		Details: fmt.Sprintf("device=%s gain=%.2f rate=%d", target, e.Gain(), TargetRate),
	}
}

// SetGain updates the input gain applied to captured samples. Safe to call
// while a capture is running.
func (e *Engine) SetGain(gain float64) {
	e.gainBits.Store(math.Float32bits(float32(gain)))
}

// Gain returns the current input gain.
func (e *Engine) Gain() float64 {
	return float64(math.Float32frombits(e.gainBits.Load()))
}

// SetNoiseFloor updates the level below which a recording counts as silent.
func (e *Engine) SetNoiseFloor(level float64) {
	e.floorBits.Store(math.Float32bits(float32(level)))
}

func (e *Engine) noiseFloor() float32 {
	return math.Float32frombits(e.floorBits.Load())
}

// Capturing reports whether a capture session is running.
func (e *Engine) Capturing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stream != nil
}

// Since returns a copy of the samples captured after offset and the new
// total count. The silence monitor polls it without interrupting the
// stream. A total smaller than offset means a new session started and the
// caller should reset.
func (e *Engine) Since(offset int) ([]float32, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.buf)
	if offset < 0 || offset >= n {
		return nil, n
	}
	out := make([]float32, n-offset)
	copy(out, e.buf[offset:])
	return out, n
}

// StartCapture opens the input stream and begins buffering samples.
func (e *Engine) StartCapture(ctx context.Context) error {
	if !e.initialized.Load() {
		return apperrors.CaptureFailed(fmt.Errorf("audio engine not started"))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stream != nil {
		return apperrors.CaptureFailed(fmt.Errorf("capture already running"))
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return apperrors.CaptureFailed(err)
	}
	def, _ := portaudio.DefaultInputDevice()
	dev, rule := pickDevice(devices, def, e.cfg.DeviceIndex, e.cfg.Device)
	if dev == nil {
		return apperrors.CaptureFailed(fmt.Errorf("no input device available"))
	}
	if (e.cfg.DeviceIndex != nil || e.cfg.Device != "") && rule != "index" && rule != "name" {
		e.log.Warn("Configured audio device not found, falling back", map[string]interface{}{
			logger.FieldDevice: e.cfg.Device,
			"selected":         dev.Name,
		})
	}

	channels := dev.MaxInputChannels
	if channels > 2 {
		channels = 2
	}
	rate := int(dev.DefaultSampleRate)
	if rate <= 0 {
		rate = TargetRate
	}
	frames := rate / 20 // 50 ms blocks
	in := make([]float32, frames*channels)

	params := portaudio.HighLatencyParameters(dev, nil)
	params.Input.Channels = channels
	params.SampleRate = float64(rate)
	params.FramesPerBuffer = frames

	stream, err := portaudio.OpenStream(params, in)
	if err != nil {
		return apperrors.CaptureFailed(err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return apperrors.CaptureFailed(err)
	}

	session := e.session.Add(1)
	e.stream = stream
	e.stopCh = make(chan struct{})
	e.buf = make([]float32, 0, TargetRate*8)
	e.id = uuid.NewString()
	e.device = dev.Name
	e.startedAt = time.Now()

	e.wg.Add(1)
	go e.readLoop(stream, in, channels, rate, session, e.stopCh)

	e.log.Info("Capture started", map[string]interface{}{
		logger.FieldDevice: dev.Name,
		"selection":        rule,
		"native_rate":      rate,
		"channels":         channels,
		"session":          session,
	})
	return nil
}

// readLoop drains the stream in 50 ms blocks, converting each block to the
// working format before appending it to the session buffer.
func (e *Engine) readLoop(stream *portaudio.Stream, in []float32, channels, rate int, session uint64, stop <-chan struct{}) {
	defer e.wg.Done()

	mono := make([]float32, 0, len(in)/channels+1)
	resampled := make([]float32, 0, len(in)/channels+1)
	for {
		select {
		case <-stop:
			return
		default:
		}

		if err := stream.Read(); err != nil {
			if e.session.Load() != session {
				return
			}
			// Overflows drop a block but the stream keeps going.
			e.log.Debug("Stream read failed", map[string]interface{}{
				"error": err.Error(),
			})
			time.Sleep(50 * time.Millisecond)
			continue
		}
		if e.session.Load() != session {
			return
		}

		mono = downmixMono(in, channels, mono[:0])
		applyGain(mono, math.Float32frombits(e.gainBits.Load()))
		out := mono
		if rate != TargetRate {
			resampled = resampleLinear(mono, rate, TargetRate, resampled[:0])
			out = resampled
		}

		e.mu.Lock()
		if e.session.Load() == session {
			e.buf = append(e.buf, out...)
		}
		e.mu.Unlock()
	}
}

// StopCapture ends the session and returns the finished recording. The
// sample buffer hands over to the caller; the engine keeps nothing.
func (e *Engine) StopCapture() (*Recording, error) {
	e.mu.Lock()
	stream := e.stream
	stopCh := e.stopCh
	e.stream = nil
	e.stopCh = nil
	e.mu.Unlock()

	if stream == nil {
		return nil, apperrors.CaptureFailed(fmt.Errorf("no capture in progress"))
	}

	// Invalidate the session before joining so a read that is mid-flight
	// drops its final block instead of appending after the handover.
	e.session.Add(1)
	close(stopCh)
	e.wg.Wait()
	if err := stream.Stop(); err != nil {
		e.log.Warn("Stream stop failed", map[string]interface{}{"error": err.Error()})
	}
	if err := stream.Close(); err != nil {
		e.log.Warn("Stream close failed", map[string]interface{}{"error": err.Error()})
	}

	e.mu.Lock()
	samples := e.buf
	e.buf = nil
	rec := &Recording{
		ID:         e.id,
		Device:     e.device,
		SampleRate: TargetRate,
		Samples:    samples,
		Started:    e.startedAt,
		Duration:   time.Duration(len(samples)) * time.Second / TargetRate,
	}
	e.mu.Unlock()

	if err := rec.guard(e.cfg.MinDuration, e.noiseFloor()); err != nil {
		e.log.Info("Recording discarded", map[string]interface{}{
			"session_id": rec.ID,
			"duration":   rec.Duration.String(),
		})
		return nil, err
	}

	e.log.Info("Capture stopped", map[string]interface{}{
		"session_id": rec.ID,
		"duration":   rec.Duration.String(),
		"samples":    len(rec.Samples),
	})
	return rec, nil
}

// abortCapture tears down a running capture without producing a recording.
func (e *Engine) abortCapture() {
	e.mu.Lock()
	stream := e.stream
	stopCh := e.stopCh
	e.stream = nil
	e.stopCh = nil
	e.buf = nil
	e.mu.Unlock()

	if stream == nil {
		return
	}
	e.session.Add(1)
	close(stopCh)
	e.wg.Wait()
	_ = stream.Stop()
	_ = stream.Close()
	e.log.Debug("Capture aborted")
}

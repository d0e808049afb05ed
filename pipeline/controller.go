package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kbukum/voxd/component"
	apperrors "github.com/kbukum/voxd/errors"
	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/observability"
)

// loopCueKey identifies the processing loop cue so start and stop pair up.
const loopCueKey = "cycle"

// Controller owns the pipeline state and runs the orchestration loop. All
// events — hotkey, signals, API calls, silence-monitor auto-stops, stage
// completions — are serialized through one channel, so no mutex guards the
// state and no two transitions are ever in flight.
//
// Stage work (transcription, refinement, delivery) runs in its own
// goroutine and reports back through the same channel, keeping the loop
// responsive to triggers while inference is in flight.
type Controller struct {
	cfg     Config
	ports   Ports
	log     *logger.Logger
	metrics *observability.Metrics

	events chan Event
	stop   chan struct{}
	wg     sync.WaitGroup

	// state mirrors the loop-owned state for cheap external reads.
	state    atomic.Int32
	rejected atomic.Uint64
	cycles   atomic.Uint64

	// Loop-local fields, touched only by the run goroutine.
	runCtx   context.Context
	cancel   context.CancelFunc
	chunks   *chunkQueue
	cycleObs *observability.CycleObservation
	cycleCtx context.Context
	lastErr  string
}

var (
	_ component.Component   = (*Controller)(nil)
	_ component.Describable = (*Controller)(nil)
)

// NewController creates the orchestrator. cfg must have defaults applied;
// metrics may be nil.
func NewController(cfg Config, ports Ports, log *logger.Logger, metrics *observability.Metrics) *Controller {
	return &Controller{
		cfg:     cfg,
		ports:   ports,
		log:     log.WithComponent("pipeline"),
		metrics: metrics,
		events:  make(chan Event, 16),
		stop:    make(chan struct{}),
	}
}

// Name returns the component name.
func (c *Controller) Name() string { return "pipeline" }

// Start launches the orchestration loop.
func (c *Controller) Start(ctx context.Context) error {
	c.runCtx, c.cancel = context.WithCancel(context.Background())
	c.wg.Add(1)
	go c.run()
	c.publish(StateIdle, "")
	c.log.Info("Pipeline ready")
	return nil
}

// Stop shuts the loop down, cancelling any in-flight transcription. This is
// the only path that cancels a running stage.
func (c *Controller) Stop(ctx context.Context) error {
	c.cancel()
	close(c.stop)
	c.wg.Wait()
	if State(c.state.Load()) == StateRecording {
		c.ports.Monitor.Stop()
		if _, err := c.ports.Capture.StopCapture(); err != nil && !apperrors.HasCode(err, apperrors.ErrCodeEmptyAudio) {
			c.log.Warn("Capture stop during shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return nil
}

// Health reports the loop state.
func (c *Controller) Health(ctx context.Context) component.Health {
	select {
	case <-c.stop:
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "stopped"}
	default:
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusHealthy,
			Message: fmt.Sprintf("state=%s", State(c.state.Load())),
		}
	}
}

// Describe returns summary info for the bootstrap display.
func (c *Controller) Describe() component.Description {
	mode := "single-shot"
	if c.cfg.Chunked {
		mode = "long-form"
	}
	refine := "off"
	if c.ports.Refine != nil {
		refine = "on"
	}
	return component.Description{
		Name:    "Dictation Pipeline",
		Type:    "pipeline",
		Details: fmt.Sprintf("mode=%s refine=%s", mode, refine),
	}
}

// CurrentState returns the pipeline state as last published by the loop.
func (c *Controller) CurrentState() State { return State(c.state.Load()) }

// Cycles returns how many cycles have completed or failed.
func (c *Controller) Cycles() uint64 { return c.cycles.Load() }

// Toggle requests start-or-stop of a recording. Always accepted onto the
// mailbox; the loop decides. source names the trigger for logging.
func (c *Controller) Toggle(source string) {
	c.enqueue(Event{Kind: EventToggle, Source: source})
}

// TryToggle is Toggle with a busy check for API callers that want a 409
// instead of a silent no-op. The check reads the mirrored state, so a
// racing event may still see the toggle rejected by the loop.
func (c *Controller) TryToggle(source string) error {
	if st := State(c.state.Load()); st.Busy() {
		return apperrors.Busy(st.String())
	}
	c.Toggle(source)
	return nil
}

// OpenSettings opens the settings file. Accepted in any state.
func (c *Controller) OpenSettings(source string) {
	c.enqueue(Event{Kind: EventOpenSettings, Source: source})
}

func (c *Controller) autoStop(reason string) {
	c.enqueue(Event{Kind: EventAutoStop, Source: "vad: " + reason})
}

func (c *Controller) enqueue(ev Event) {
	select {
	case c.events <- ev:
	case <-c.stop:
	}
}

// run is the orchestration loop. It owns the State value.
func (c *Controller) run() {
	defer c.wg.Done()

	state := StateIdle
	for {
		select {
		case <-c.stop:
			return
		case ev := <-c.events:
			next := Next(state, ev)
			if next.State != state {
				c.log.Debug("Transition", map[string]interface{}{
					logger.FieldState: next.State.String(),
					"from":            state.String(),
					"event":           ev.Kind.String(),
					"source":          ev.Source,
				})
			}
			state = next.State
			c.state.Store(int32(state))
			for _, action := range next.Actions {
				c.execute(action, ev)
			}
		}
	}
}

// execute performs one entry action. Long-running work is spawned; only
// stage kickoff happens on the loop goroutine.
func (c *Controller) execute(action Action, ev Event) {
	switch action {
	case ActionStartRecording:
		c.startRecording(ev)
	case ActionBeginProcessing:
		c.beginProcessing(ev)
	case ActionBeginPostProcess:
		c.beginPostProcess(ev.Text)
	case ActionBeginDeliver:
		c.beginDeliver(ev.Text)
	case ActionFinishCycle:
		c.finishCycle(ev)
	case ActionFail:
		c.fail(ev.Err)
	case ActionReset:
		c.lastErr = ""
		c.publish(StateIdle, "")
	case ActionOpenSettings:
		c.openSettings(ev)
	case ActionRejectToggle:
		c.rejected.Add(1)
		c.log.Debug("Toggle rejected mid-cycle", map[string]interface{}{
			logger.FieldState: State(c.state.Load()).String(),
			"source":          ev.Source,
			"rejected_total":  c.rejected.Load(),
		})
	}
}

func (c *Controller) startRecording(ev Event) {
	ctx, obs := observability.StartCycle(c.runCtx, c.cycles.Load()+1, c.metrics)
	c.cycleCtx, c.cycleObs = ctx, obs
	c.lastErr = ""

	if err := c.ports.Capture.StartCapture(c.cycleCtx); err != nil {
		c.enqueue(Event{Kind: eventCaptureError, Err: err})
		return
	}

	if c.cfg.Chunked {
		c.chunks = newChunkQueue(c.cfg.ChunkWorkers, c.ports.Transcribe.TranscribeSamples, c.log)
		c.ports.Monitor.Start(c.cycleCtx, c.autoStop, func(samples []float32, reason string) {
			c.chunks.Enqueue(c.cycleCtx, samples)
		})
	} else {
		c.chunks = nil
		c.ports.Monitor.Start(c.cycleCtx, c.autoStop, nil)
	}

	c.ports.Cues.Play("start")
	c.publish(StateRecording, "")
	c.log.Info("Recording started", map[string]interface{}{"source": ev.Source})
}

// beginProcessing runs on the loop goroutine: capture must be fully stopped
// before the transition completes so buffer ownership transfers cleanly.
func (c *Controller) beginProcessing(ev Event) {
	c.ports.Monitor.Stop()
	rec, err := c.ports.Capture.StopCapture()

	c.ports.Cues.StartLoop(loopCueKey, "processing", c.cfg.LoopCueGap)
	c.publish(StateProcessing, "")

	if err != nil {
		c.enqueue(Event{Kind: eventTranscript, Err: err})
		return
	}

	ctx := c.cycleCtx
	chunks := c.chunks
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		start := time.Now()
		var text string
		var terr error
		if chunks != nil {
			if tail := rec.Samples[min(chunks.Consumed(), len(rec.Samples)):]; len(tail) > 0 {
				chunks.Enqueue(ctx, tail)
			}
			text, terr = chunks.Drain(ctx)
		} else {
			text, terr = c.ports.Transcribe.Transcribe(ctx, rec)
		}
		if terr == nil {
			c.log.Info("Transcription complete", map[string]interface{}{
				"chars":               len(text),
				logger.FieldDuration:  time.Since(start).Milliseconds(),
				"recording_duration": rec.Duration.String(),
			})
		}
		c.enqueue(Event{Kind: eventTranscript, Text: text, Err: terr})
	}()
}

func (c *Controller) beginPostProcess(text string) {
	c.publish(StatePostProcessing, "")

	ctx := c.cycleCtx
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		out := c.ports.Substitute.Apply(text)
		if c.ports.Refine != nil {
			refined, ok := c.ports.Refine.Refine(ctx, out)
			if ok {
				out = refined
			}
		}
		c.enqueue(Event{Kind: eventRefined, Text: out})
	}()
}

func (c *Controller) beginDeliver(text string) {
	c.publish(StateDelivering, "")

	ctx := c.cycleCtx
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		// Delivery failures are absorbed: the cycle completes and the
		// text stays recoverable from the log.
		if err := c.ports.Deliver.Deliver(ctx, text); err != nil {
			c.log.Warn("Delivery degraded", map[string]interface{}{
				"error": err.Error(),
				"chars": len(text),
			})
		}
		c.enqueue(Event{Kind: eventDelivered, Text: text})
	}()
}

func (c *Controller) finishCycle(ev Event) {
	c.ports.Cues.StopLoop(loopCueKey)
	c.ports.Cues.Play("complete")
	c.publish(StateIdle, "")
	c.cycles.Add(1)
	if c.cycleObs != nil {
		c.cycleObs.End(c.cycleCtx, "complete", nil)
		c.cycleObs = nil
	}
	c.log.Info("Cycle complete", map[string]interface{}{"chars": len(ev.Text)})
}

func (c *Controller) fail(cause error) {
	c.ports.Cues.StopLoop(loopCueKey)
	c.ports.Cues.Play("fail")

	appErr := apperrors.Wrap(cause)
	c.lastErr = appErr.Message
	c.publish(StateFailed, appErr.Message)
	c.cycles.Add(1)
	if c.cycleObs != nil {
		c.cycleObs.End(c.cycleCtx, "failed", appErr)
		c.cycleObs = nil
	}
	c.log.Error("Cycle failed", map[string]interface{}{
		"code":  string(appErr.Code),
		"error": appErr.Error(),
	})

	// Let the error status stay visible for a moment, then return to idle.
	linger := c.cfg.FailedLinger
	time.AfterFunc(linger, func() {
		c.enqueue(Event{Kind: eventReset})
	})
}

func (c *Controller) openSettings(ev Event) {
	if err := c.ports.Settings.Open(c.runCtx); err != nil {
		c.log.Warn("Could not open settings", map[string]interface{}{
			"error":  err.Error(),
			"source": ev.Source,
		})
		return
	}
	c.log.Info("Settings opened", map[string]interface{}{"source": ev.Source})
}

func (c *Controller) publish(st State, failure string) {
	c.ports.Status.Publish(st, failure)
}

package vad

import (
	"fmt"
	"math"
	"time"
)

// decision is the outcome of observing one window of samples.
type decision int

const (
	// decideContinue keeps recording.
	decideContinue decision = iota
	// decideSplit ends the current chunk; it contains speech.
	decideSplit
	// decideSkip ends the current chunk and drops it as noise.
	decideSkip
	// decideAutoStop ends the whole session.
	decideAutoStop
)

// minSpeechRatio is the fraction of above-threshold windows a chunk needs
// to count as speech rather than noise.
const minSpeechRatio = 0.1

// detector holds the per-session silence bookkeeping. It is deliberately
// free of goroutines and clocks: observe is fed windows with their duration
// and returns a decision, which makes the splitting policy testable as a
// pure sequence.
type detector struct {
	cfg     Config
	chunked bool
	session time.Duration
	chunk   time.Duration
	// silence is the trailing silence within the current chunk; pause is
	// the trailing silence across chunk boundaries, which only speech
	// resets. The session auto-stop watches pause, since a skip or split
	// restarts the chunk bookkeeping.
	silence time.Duration
	pause   time.Duration
	speech  int
	windows int
}

func newDetector(cfg Config, chunked bool) *detector {
	return &detector{cfg: cfg, chunked: chunked}
}

// requiredSilence returns the trailing silence that ends a chunk. The
// requirement shrinks as the chunk grows so long dictation flushes
// promptly: three quarters of the base past half the chunk cap, half the
// base past 80 % of it.
func (d *detector) requiredSilence() time.Duration {
	base := d.cfg.Silence
	switch {
	case d.chunk >= d.cfg.MaxChunk*8/10:
		return base / 2
	case d.chunk >= d.cfg.MaxChunk/2:
		return base * 3 / 4
	default:
		return base
	}
}

// hasSpeech reports whether the current chunk's above-threshold window
// ratio clears the noise bar.
func (d *detector) hasSpeech() bool {
	if d.windows == 0 {
		return false
	}
	return float64(d.speech)/float64(d.windows) > minSpeechRatio
}

// resetChunk starts chunk bookkeeping over after a split or skip.
func (d *detector) resetChunk() {
	d.chunk = 0
	d.silence = 0
	d.speech = 0
	d.windows = 0
}

// observe consumes one window of samples covering dt of audio and decides
// whether to keep going, split, skip, or stop the session.
func (d *detector) observe(window []float32, dt time.Duration) (decision, string) {
	d.session += dt
	d.chunk += dt
	d.windows++

	level := rms(window)
	if level > float32(d.cfg.Threshold) {
		d.speech++
		d.silence = 0
		d.pause = 0
	} else {
		d.silence += dt
		d.pause += dt
	}

	// The hard session cap always wins.
	if d.session >= d.cfg.MaxSession {
		return decideAutoStop, fmt.Sprintf("session cap %s reached", d.cfg.MaxSession)
	}

	required := d.requiredSilence()
	if d.silence >= required && d.chunk >= d.cfg.MinChunk {
		if d.chunked {
			reason := fmt.Sprintf("%s silence after %s", d.silence.Round(100*time.Millisecond), d.chunk.Round(100*time.Millisecond))
			if !d.hasSpeech() {
				d.resetChunk()
				return decideSkip, reason
			}
			d.resetChunk()
			return decideSplit, reason
		}
		// Single-shot mode: a completed pause stops the session once
		// auto-stop is on. A session that never contained speech still
		// stops; the transcription stage reports it as empty audio.
		if d.autoStopEnabled() {
			return decideAutoStop, fmt.Sprintf("%s silence after %s", d.silence.Round(100*time.Millisecond), d.chunk.Round(100*time.Millisecond))
		}
	}

	// Long-form mode keeps recording through pauses; only a much longer
	// silence ends the session.
	if d.chunked && d.autoStopEnabled() && d.pause >= d.cfg.AutoStopSilence {
		return decideAutoStop, fmt.Sprintf("%s silence", d.pause.Round(time.Second))
	}

	// Force a chunk boundary at the chunk cap in long-form mode.
	if d.chunked && d.chunk >= d.cfg.MaxChunk {
		reason := fmt.Sprintf("chunk cap %s reached", d.cfg.MaxChunk)
		if !d.hasSpeech() {
			d.resetChunk()
			return decideSkip, reason
		}
		d.resetChunk()
		return decideSplit, reason
	}

	return decideContinue, ""
}

func (d *detector) autoStopEnabled() bool {
	return d.cfg.AutoStop == nil || *d.cfg.AutoStop
}

// rms computes the root mean square of a sample window.
func rms(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return float32(math.Sqrt(sum / float64(len(samples))))
}

package vad

import (
	"testing"
	"time"
)

const windowDt = 100 * time.Millisecond

// window builds a 100 ms window of constant amplitude, so its RMS equals
// the amplitude exactly.
func window(amplitude float32) []float32 {
	w := make([]float32, 1600)
	for i := range w {
		w[i] = amplitude
	}
	return w
}

// feed drives count windows of the given amplitude through the detector and
// returns the first non-continue decision, or decideContinue if none fired.
func feed(d *detector, amplitude float32, count int) (decision, string) {
	w := window(amplitude)
	for i := 0; i < count; i++ {
		if dec, reason := d.observe(w, windowDt); dec != decideContinue {
			return dec, reason
		}
	}
	return decideContinue, ""
}

func normalConfig() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

func TestDetector_SingleShotStopsAfterPause(t *testing.T) {
	d := newDetector(normalConfig(), false)

	// 3 s of speech, then silence. The base 2 s silence window applies.
	if dec, _ := feed(d, 0.1, 30); dec != decideContinue {
		t.Fatalf("stopped during speech: %v", dec)
	}
	if dec, _ := feed(d, 0, 19); dec != decideContinue {
		t.Fatalf("stopped before the silence window elapsed: %v", dec)
	}
	dec, reason := feed(d, 0, 1)
	if dec != decideAutoStop {
		t.Fatalf("decision = %v after 2s silence, want auto-stop", dec)
	}
	if reason == "" {
		t.Fatal("auto-stop carried no reason")
	}
}

func TestDetector_SingleShotWaitsForMinChunk(t *testing.T) {
	d := newDetector(normalConfig(), false)

	// Half a second of speech, then silence. The 2 s silence window
	// completes at 2.5 s of recording, but nothing stops before the 3 s
	// minimum chunk duration.
	feed(d, 0.1, 5)
	if dec, _ := feed(d, 0, 24); dec != decideContinue {
		t.Fatalf("stopped before min_chunk: %v", dec)
	}
	// One more silent window crosses min_chunk with silence satisfied.
	if dec, _ := feed(d, 0, 1); dec != decideAutoStop {
		t.Fatalf("decision = %v at min_chunk with 2s silence, want auto-stop", dec)
	}
}

func TestDetector_SingleShotAutoStopDisabled(t *testing.T) {
	cfg := normalConfig()
	disabled := false
	cfg.AutoStop = &disabled
	d := newDetector(cfg, false)

	feed(d, 0.1, 30)
	if dec, _ := feed(d, 0, 300); dec != decideContinue {
		t.Fatalf("stopped on silence with auto-stop disabled: %v", dec)
	}
}

func TestDetector_SessionCapAlwaysWins(t *testing.T) {
	cfg := normalConfig()
	disabled := false
	cfg.AutoStop = &disabled
	d := newDetector(cfg, false)

	// Continuous speech with auto-stop off still ends at the session cap.
	dec, reason := feed(d, 0.1, 1200)
	if dec != decideAutoStop {
		t.Fatalf("decision = %v at the 120s cap, want auto-stop", dec)
	}
	if reason != "session cap 2m0s reached" {
		t.Fatalf("reason = %q", reason)
	}
}

func TestDetector_ChunkedSplitsOnPause(t *testing.T) {
	d := newDetector(normalConfig(), true)

	feed(d, 0.1, 30)
	dec, _ := feed(d, 0, 20)
	if dec != decideSplit {
		t.Fatalf("decision = %v after a pause with speech, want split", dec)
	}
}

func TestDetector_ChunkedSkipsSilenceOnlyChunk(t *testing.T) {
	d := newDetector(normalConfig(), true)

	// Pure silence reaches min_chunk with no speech windows at all.
	dec, _ := feed(d, 0, 30)
	if dec != decideSkip {
		t.Fatalf("decision = %v for a silence-only chunk, want skip", dec)
	}
}

func TestDetector_ChunkedSpeechRatioBelowBarSkips(t *testing.T) {
	d := newDetector(normalConfig(), true)

	// 2 speech windows out of 30 is under the 10 % speech bar.
	feed(d, 0.1, 2)
	dec, _ := feed(d, 0, 28)
	if dec != decideSkip {
		t.Fatalf("decision = %v for a mostly-silent chunk, want skip", dec)
	}
}

func TestDetector_TieredSilenceShrinks(t *testing.T) {
	cfg := normalConfig()
	d := newDetector(cfg, true)

	// Past half the 30 s chunk cap the requirement drops to 1.5 s.
	feed(d, 0.1, 150)
	if got, want := d.requiredSilence(), 1500*time.Millisecond; got != want {
		t.Fatalf("required silence at 15s = %s, want %s", got, want)
	}

	// Past 80 % it halves.
	feed(d, 0.1, 90)
	if got, want := d.requiredSilence(), time.Second; got != want {
		t.Fatalf("required silence at 24s = %s, want %s", got, want)
	}

	// 1 s of silence now ends the chunk; the base 2 s would not have.
	dec, _ := feed(d, 0, 10)
	if dec != decideSplit {
		t.Fatalf("decision = %v with the halved silence window, want split", dec)
	}
}

func TestDetector_ChunkedForcedSplitAtChunkCap(t *testing.T) {
	cfg := normalConfig()
	d := newDetector(cfg, true)

	// Alternate speech and short silences so no pause ever completes,
	// then verify the chunk cap forces the boundary.
	for i := 0; i < 100; i++ {
		if dec, _ := feed(d, 0.1, 2); dec != decideContinue {
			t.Fatalf("unexpected decision during alternation: %v", dec)
		}
		if dec, reason := feed(d, 0, 1); dec != decideContinue {
			if dec != decideSplit {
				t.Fatalf("decision = %v, want split (%s)", dec, reason)
			}
			if d.session >= cfg.MaxChunk {
				return
			}
			t.Fatalf("split before the chunk cap at %s (%s)", d.session, reason)
		}
	}
	t.Fatal("chunk cap never forced a split")
}

func TestDetector_ChunkedProlongedSilenceStopsSession(t *testing.T) {
	d := newDetector(normalConfig(), true)

	feed(d, 0.1, 30)
	deadline := 1200
	for i := 0; i < deadline; i++ {
		dec, _ := d.observe(window(0), windowDt)
		switch dec {
		case decideAutoStop:
			// Trailing silence survives the intermediate skips and
			// splits, so 10 s of quiet ends the session.
			elapsed := time.Duration(i+1) * windowDt
			if elapsed < 10*time.Second || elapsed > 11*time.Second {
				t.Fatalf("session stopped after %s of silence, want about 10s", elapsed)
			}
			return
		case decideContinue, decideSplit, decideSkip:
		}
	}
	t.Fatal("prolonged silence never stopped the session")
}

func TestDetector_SilenceResetOnSpeech(t *testing.T) {
	d := newDetector(normalConfig(), false)

	// Silence almost completes, speech interrupts, the timer restarts.
	feed(d, 0.1, 30)
	feed(d, 0, 19)
	feed(d, 0.1, 1)
	if dec, _ := feed(d, 0, 19); dec != decideContinue {
		t.Fatalf("stopped with a freshly reset silence timer: %v", dec)
	}
	if dec, _ := feed(d, 0, 1); dec != decideAutoStop {
		t.Fatalf("silence window did not complete after the reset")
	}
}

func TestRMS(t *testing.T) {
	if got := rms(nil); got != 0 {
		t.Fatalf("rms(nil) = %g", got)
	}
	if got := rms([]float32{0.5, 0.5, 0.5, 0.5}); got < 0.499 || got > 0.501 {
		t.Fatalf("rms of constant 0.5 = %g", got)
	}
	if got := rms([]float32{-0.5, 0.5, -0.5, 0.5}); got < 0.499 || got > 0.501 {
		t.Fatalf("rms must be sign-insensitive, got %g", got)
	}
}

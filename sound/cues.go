// Package sound plays the pipeline's transition cues. A worker goroutine
// owns playback; cue files are user-provided or synthesized beeps, and
// playback shells out to whichever system player is installed.
package sound

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/kbukum/voxd/audio"
)

// Cue kinds, in the order the pipeline fires them.
const (
	CueStart      = "start"
	CueProcessing = "processing"
	CueComplete   = "complete"
	CueFail       = "fail"
)

// cueTones maps each kind to its beep frequency. Rising tones for activity,
// a low tone for failure.
var cueTones = map[string]float64{
	CueStart:      880,
	CueProcessing: 440,
	CueComplete:   660,
	CueFail:       220,
}

const (
	beepRate     = 44100
	beepDuration = 150 * time.Millisecond
	beepGain     = 0.35
	beepFade     = 5 * time.Millisecond
)

// synthesizeBeep renders a sine tone with short fades so playback does not
// click at the edges.
func synthesizeBeep(freq float64) []float32 {
	n := int(beepRate * beepDuration.Seconds())
	fade := int(beepRate * beepFade.Seconds())
	samples := make([]float32, n)
	for i := range samples {
		env := 1.0
		if i < fade {
			env = float64(i) / float64(fade)
		} else if n-1-i < fade {
			env = float64(n-1-i) / float64(fade)
		}
		t := float64(i) / beepRate
		samples[i] = float32(beepGain * env * math.Sin(2*math.Pi*freq*t))
	}
	return samples
}

// EnsureCueFiles resolves every cue kind to a playable file: the override
// from cfg.Files when it exists, otherwise a beep synthesized once into
// dir. Returns kind to path.
func EnsureCueFiles(dir string, overrides map[string]string) (map[string]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("sound: create cue directory: %w", err)
	}

	files := make(map[string]string, len(cueTones))
	for kind, freq := range cueTones {
		if override := overrides[kind]; override != "" {
			if _, err := os.Stat(override); err == nil {
				files[kind] = override
				continue
			}
		}
		path := filepath.Join(dir, kind+".wav")
		if _, err := os.Stat(path); err != nil {
			if werr := audio.WriteWAV(path, synthesizeBeep(freq), beepRate); werr != nil {
				return nil, fmt.Errorf("sound: synthesize %s cue: %w", kind, werr)
			}
		}
		files[kind] = path
	}
	return files, nil
}

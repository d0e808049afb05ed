package audio

import (
	"time"

	apperrors "github.com/kbukum/voxd/errors"
)

// TargetRate is the sample rate the pipeline works in. Whisper models
// expect 16 kHz mono input.
const TargetRate = 16000

// Recording is a finished capture session in the working format.
type Recording struct {
	ID         string
	Device     string
	SampleRate int
	Samples    []float32
	Started    time.Time
	Duration   time.Duration
}

// guard rejects recordings too short or too quiet to transcribe.
func (r *Recording) guard(minDuration time.Duration, floor float32) error {
	if r.Duration < minDuration {
		return apperrors.EmptyAudio().
			WithDetail("duration", r.Duration.String()).
			WithDetail("min_duration", minDuration.String())
	}
	for _, s := range r.Samples {
		if s > floor || s < -floor {
			return nil
		}
	}
	return apperrors.EmptyAudio().WithDetail("reason", "no sample above noise floor")
}

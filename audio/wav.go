package audio

import (
	"fmt"
	"os"
	"path/filepath"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes float32 samples as a 16-bit PCM mono WAV file.
// Samples outside [-1, 1] are clamped.
func WriteWAV(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		data[i] = int(s * 32767)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("close wav: %w", err)
	}
	return f.Close()
}

// SaveRecording writes rec into dir as voxd-<id>.wav and returns the path.
func SaveRecording(rec *Recording, dir string) (string, error) {
	path := filepath.Join(dir, "voxd-"+rec.ID+".wav")
	if err := WriteWAV(path, rec.Samples, rec.SampleRate); err != nil {
		return "", err
	}
	return path, nil
}

package audio

import (
	"math"
	"testing"
)

func floatsClose(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-6 {
			return false
		}
	}
	return true
}

func TestDownmixMono(t *testing.T) {
	t.Run("mono passes through", func(t *testing.T) {
		in := []float32{0.1, 0.2, 0.3}
		got := downmixMono(in, 1, nil)
		if !floatsClose(got, in) {
			t.Errorf("expected %v, got %v", in, got)
		}
	})

	t.Run("stereo averages channel pairs", func(t *testing.T) {
		in := []float32{0.2, 0.4, -0.5, 0.5}
		got := downmixMono(in, 2, nil)
		want := []float32{0.3, 0}
		if !floatsClose(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("four channels average per frame", func(t *testing.T) {
		in := []float32{1, 1, 1, 1, 0, 0.5, 0.5, 1}
		got := downmixMono(in, 4, nil)
		want := []float32{1, 0.5}
		if !floatsClose(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("appends to existing slice", func(t *testing.T) {
		out := []float32{9}
		got := downmixMono([]float32{0.5, 0.5}, 2, out)
		want := []float32{9, 0.5}
		if !floatsClose(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

func TestResampleLinear(t *testing.T) {
	t.Run("same rate passes through", func(t *testing.T) {
		in := []float32{1, 2, 3}
		got := resampleLinear(in, 16000, 16000, nil)
		if !floatsClose(got, in) {
			t.Errorf("expected %v, got %v", in, got)
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		got := resampleLinear(nil, 48000, 16000, nil)
		if len(got) != 0 {
			t.Errorf("expected empty, got %v", got)
		}
	})

	t.Run("2 to 1 picks every other sample", func(t *testing.T) {
		in := []float32{0, 1, 2, 3, 4, 5, 6, 7}
		got := resampleLinear(in, 32000, 16000, nil)
		want := []float32{0, 2, 4, 6}
		if !floatsClose(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("3 to 1 picks every third sample", func(t *testing.T) {
		in := []float32{3, 3, 3, 9, 9, 9}
		got := resampleLinear(in, 48000, 16000, nil)
		want := []float32{3, 9}
		if !floatsClose(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("upsampling interpolates midpoints", func(t *testing.T) {
		in := []float32{0, 1}
		got := resampleLinear(in, 8000, 16000, nil)
		want := []float32{0, 0.5, 1, 1}
		if !floatsClose(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

func TestApplyGain(t *testing.T) {
	t.Run("unity gain leaves samples alone", func(t *testing.T) {
		in := []float32{0.1, -0.2, 0.3}
		applyGain(in, 1.0)
		if !floatsClose(in, []float32{0.1, -0.2, 0.3}) {
			t.Errorf("samples changed under unity gain: %v", in)
		}
	})

	t.Run("near-unity gain is skipped", func(t *testing.T) {
		in := []float32{0.5}
		applyGain(in, 1.0000001)
		if in[0] != 0.5 {
			t.Errorf("expected 0.5, got %v", in[0])
		}
	})

	t.Run("doubles samples", func(t *testing.T) {
		in := []float32{0.1, -0.25}
		applyGain(in, 2.0)
		if !floatsClose(in, []float32{0.2, -0.5}) {
			t.Errorf("expected doubled samples, got %v", in)
		}
	})

	t.Run("attenuates samples", func(t *testing.T) {
		in := []float32{0.8}
		applyGain(in, 0.5)
		if !floatsClose(in, []float32{0.4}) {
			t.Errorf("expected halved samples, got %v", in)
		}
	})
}

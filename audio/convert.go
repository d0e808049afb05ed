package audio

// gainEpsilon is the deviation from unity below which gain is a no-op.
const gainEpsilon = 1e-6

// downmixMono averages interleaved channels into mono, appending to out.
func downmixMono(in []float32, channels int, out []float32) []float32 {
	if channels <= 1 {
		return append(out, in...)
	}
	frames := len(in) / channels
	for f := 0; f < frames; f++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += in[f*channels+c]
		}
		out = append(out, sum/float32(channels))
	}
	return out
}

// resampleLinear converts samples from srcRate to dstRate by linear
// interpolation, appending to out.
func resampleLinear(in []float32, srcRate, dstRate int, out []float32) []float32 {
	if srcRate == dstRate || len(in) == 0 {
		return append(out, in...)
	}
	ratio := float64(srcRate) / float64(dstRate)
	n := int(float64(len(in)) / ratio)
	for i := 0; i < n; i++ {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx+1 >= len(in) {
			out = append(out, in[len(in)-1])
			continue
		}
		frac := float32(pos - float64(idx))
		out = append(out, in[idx]*(1-frac)+in[idx+1]*frac)
	}
	return out
}

// applyGain scales samples in place. Unity gain is skipped.
func applyGain(samples []float32, gain float32) {
	if diff := gain - 1.0; diff < gainEpsilon && diff > -gainEpsilon {
		return
	}
	for i := range samples {
		samples[i] *= gain
	}
}

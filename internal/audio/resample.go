package audio

import "math"

// downmix averages interleaved multi-channel samples into mono. No
// third-party DSP library is wired here: no such library appears anywhere
// in the example pack, so this and resample below are the one justified
// stdlib-only (math) piece of the Preprocessor.
func downmix(samples []float32, channels int) []float32 {
	if channels <= 1 {
		return samples
	}
	frames := len(samples) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += samples[i*channels+c]
		}
		out[i] = sum / float32(channels)
	}
	return out
}

// resampleLinear resamples mono samples from srcRate to dstRate using
// linear interpolation. Spec §4.3 permits "polyphase or cubic"; linear is
// the simplest member of that family and is adequate given the core never
// judges audio fidelity itself, only downstream token alignment.
func resampleLinear(samples []float32, srcRate, dstRate int) []float32 {
	if srcRate == dstRate || len(samples) == 0 {
		return samples
	}
	ratio := float64(dstRate) / float64(srcRate)
	outLen := int(math.Round(float64(len(samples)) * ratio))
	if outLen <= 0 {
		return nil
	}
	out := make([]float32, outLen)
	step := float64(srcRate) / float64(dstRate)
	for i := 0; i < outLen; i++ {
		srcPos := float64(i) * step
		idx := int(srcPos)
		frac := srcPos - float64(idx)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		out[i] = samples[idx]*float32(1-frac) + samples[idx+1]*float32(frac)
	}
	return out
}

// normalizePeak scales samples so the peak amplitude reaches targetDBFS,
// leaving silence untouched.
func normalizePeak(samples []float32, targetDBFS float64) []float32 {
	var peak float32
	for _, s := range samples {
		if a := float32(math.Abs(float64(s))); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		return samples
	}
	targetLinear := float32(math.Pow(10, targetDBFS/20))
	gain := targetLinear / peak
	out := make([]float32, len(samples))
	for i, s := range samples {
		v := s * gain
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		out[i] = v
	}
	return out
}

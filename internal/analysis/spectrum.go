package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// SpectrumPoint is one bin of a one-sided power spectrum.
type SpectrumPoint struct {
	Frequency float64
	Power     float64
}

// PowerSpectrum returns the one-sided power spectrum of a waveform. Bin
// spacing is sampleRate/len(samples); go-dsp handles arbitrary lengths, so
// no padding is required.
func PowerSpectrum(w Waveform) []SpectrumPoint {
	n := len(w.Samples)
	if n == 0 || w.SampleRate <= 0 {
		return nil
	}
	spec := fft.FFTReal(w.Samples)
	bins := n/2 + 1

	out := make([]SpectrumPoint, bins)
	norm := float64(n) * float64(n)
	for k := 0; k < bins; k++ {
		mag := cmplx.Abs(spec[k])
		out[k] = SpectrumPoint{
			Frequency: float64(k) * w.SampleRate / float64(n),
			Power:     mag * mag / norm,
		}
	}
	return out
}

// DominantFrequency returns the frequency of the strongest non-DC bin, or
// zero for an empty or flat spectrum.
func DominantFrequency(spectrum []SpectrumPoint) float64 {
	best := -1
	for i := 1; i < len(spectrum); i++ {
		if best < 0 || spectrum[i].Power > spectrum[best].Power {
			best = i
		}
	}
	if best < 0 || spectrum[best].Power == 0 {
		return 0
	}
	return spectrum[best].Frequency
}

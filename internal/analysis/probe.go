package analysis

import (
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

// Waveform is a uniformly sampled time series at a fixed field point.
type Waveform struct {
	X, Y       float64
	SampleRate float64
	Samples    []float64
}

// Probe records the pressure at (x, y) for the given duration at sampleRate
// samples per unit time. A 40 kHz scene needs a rate comfortably above
// 80 kHz to stay unaliased.
func Probe(s *scene.Scene, x, y, duration, sampleRate float64) Waveform {
	w := Waveform{X: x, Y: y, SampleRate: sampleRate}
	if duration <= 0 || sampleRate <= 0 {
		return w
	}
	snap := s.Snapshot()
	arrays := cloneArrays(snap)

	n := int(duration * sampleRate)
	if n < 1 {
		n = 1
	}
	w.Samples = make([]float64, n)
	for i := range w.Samples {
		t := float64(i) / sampleRate
		sum := 0.0
		for _, a := range arrays {
			sum += a.FieldAt(x, y, t)
		}
		w.Samples[i] = sum
	}
	return w
}

package analysis

import (
	"math"
	"testing"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

func TestPowerSpectrumPeak(t *testing.T) {
	// 100 cycles over 1024 samples at rate 1024: the peak lands exactly
	// on bin 100.
	w := Waveform{SampleRate: 1024, Samples: make([]float64, 1024)}
	for i := range w.Samples {
		w.Samples[i] = math.Cos(2 * math.Pi * 100 * float64(i) / 1024)
	}

	spec := PowerSpectrum(w)
	if len(spec) != 513 {
		t.Fatalf("expected 513 bins, got %d", len(spec))
	}

	if got := DominantFrequency(spec); math.Abs(got-100) > 1e-9 {
		t.Errorf("expected dominant frequency 100, got %v", got)
	}
}

func TestPowerSpectrumEmpty(t *testing.T) {
	if got := PowerSpectrum(Waveform{}); got != nil {
		t.Errorf("expected nil spectrum, got %v", got)
	}
	if got := DominantFrequency(nil); got != 0 {
		t.Errorf("expected 0 for empty spectrum, got %v", got)
	}
}

func TestProbeRecordsCarrier(t *testing.T) {
	s := scene.New()
	s.Add(phased.NewDefault())

	// 800 samples at 400 kHz capture exactly 80 carrier cycles, so the
	// 40 kHz line lands on a bin with no leakage.
	w := Probe(s, 0, 0.05, 0.002, 400000)
	if len(w.Samples) != 800 {
		t.Fatalf("expected 800 samples, got %d", len(w.Samples))
	}

	got := DominantFrequency(PowerSpectrum(w))
	if math.Abs(got-40000) > 500 {
		t.Errorf("expected carrier near 40 kHz, got %v", got)
	}
}

func TestProbeInvalidArgs(t *testing.T) {
	s := scene.New()
	if w := Probe(s, 0, 0, 0, 1000); len(w.Samples) != 0 {
		t.Errorf("expected no samples for zero duration, got %d", len(w.Samples))
	}
	if w := Probe(s, 0, 0, 1, 0); len(w.Samples) != 0 {
		t.Errorf("expected no samples for zero rate, got %d", len(w.Samples))
	}
}

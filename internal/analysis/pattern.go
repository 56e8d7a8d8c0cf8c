package analysis

import (
	"math"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

// PatternPoint is one sample of a beam-pattern sweep.
type PatternPoint struct {
	AngleDeg  float64
	Intensity float64
}

// PatternSeries sweeps a single array's normalized beam pattern from one
// bearing to another in fixed steps. Both endpoints are included.
func PatternSeries(a *phased.Array, fromDeg, toDeg, stepDeg float64) []PatternPoint {
	return sweep(fromDeg, toDeg, stepDeg, a.BeamPattern)
}

// ScenePatternSeries sweeps the composite pattern of every enabled array.
func ScenePatternSeries(s *scene.Scene, fromDeg, toDeg, stepDeg float64) []PatternPoint {
	return sweep(fromDeg, toDeg, stepDeg, s.BeamPattern)
}

func sweep(fromDeg, toDeg, stepDeg float64, eval func(float64) float64) []PatternPoint {
	if stepDeg <= 0 {
		stepDeg = 1
	}
	if toDeg < fromDeg {
		fromDeg, toDeg = toDeg, fromDeg
	}
	n := int(math.Floor((toDeg-fromDeg)/stepDeg)) + 1
	out := make([]PatternPoint, 0, n+1)
	for i := 0; i < n; i++ {
		deg := fromDeg + float64(i)*stepDeg
		out = append(out, PatternPoint{AngleDeg: deg, Intensity: eval(deg)})
	}
	if last := out[len(out)-1].AngleDeg; toDeg-last > 1e-9 {
		out = append(out, PatternPoint{AngleDeg: toDeg, Intensity: eval(toDeg)})
	}
	return out
}

// Intensities strips a series to its intensity values, the form the ascii
// plotters take.
func Intensities(series []PatternPoint) []float64 {
	out := make([]float64, len(series))
	for i, p := range series {
		out[i] = p.Intensity
	}
	return out
}

// LobeMetrics summarizes a beam-pattern sweep.
type LobeMetrics struct {
	PeakAngleDeg float64
	PeakValue    float64

	// BeamwidthDeg is the -3 dB (half-power) width of the main lobe,
	// interpolated between samples. Zero if a crossing never occurs
	// inside the sweep.
	BeamwidthDeg float64

	// SidelobeDB is the level of the strongest lobe outside the main
	// lobe, in dB relative to the peak. Zero value means no side lobe
	// was found inside the sweep.
	SidelobeDB       float64
	SidelobeAngleDeg float64
	HasSidelobe      bool
}

// Lobes computes peak, half-power beamwidth, and worst side-lobe level from
// a sweep. The sweep should cover the main lobe with a few tenths of a
// degree of resolution for the interpolation to be meaningful.
func Lobes(series []PatternPoint) LobeMetrics {
	var m LobeMetrics
	if len(series) == 0 {
		return m
	}

	peak := 0
	for i, p := range series {
		if p.Intensity > series[peak].Intensity {
			peak = i
		}
	}
	m.PeakAngleDeg = series[peak].AngleDeg
	m.PeakValue = series[peak].Intensity
	if m.PeakValue <= 0 {
		return m
	}

	half := m.PeakValue / 2
	left := crossing(series, peak, -1, half)
	right := crossing(series, peak, +1, half)
	if !math.IsNaN(left) && !math.IsNaN(right) {
		m.BeamwidthDeg = right - left
	}

	// Main lobe extends to the first minimum on each side. A side only
	// holds lobes if that minimum actually dips below half power; a flat
	// or truncated pattern has no resolvable lobe structure there.
	lo := firstMinimum(series, peak, -1)
	hi := firstMinimum(series, peak, +1)
	best := -1
	for i, p := range series {
		leftSide := i < lo && series[lo].Intensity <= half
		rightSide := i > hi && series[hi].Intensity <= half
		if !leftSide && !rightSide {
			continue
		}
		if best < 0 || p.Intensity > series[best].Intensity {
			best = i
		}
	}
	if best >= 0 && series[best].Intensity > 0 {
		m.HasSidelobe = true
		m.SidelobeAngleDeg = series[best].AngleDeg
		m.SidelobeDB = 10 * math.Log10(series[best].Intensity/m.PeakValue)
	}
	return m
}

// crossing walks from the peak in direction dir until the series drops
// through the threshold and returns the interpolated angle, or NaN if the
// sweep ends first.
func crossing(series []PatternPoint, peak, dir int, threshold float64) float64 {
	for i := peak; i+dir >= 0 && i+dir < len(series); i += dir {
		a, b := series[i], series[i+dir]
		if b.Intensity <= threshold {
			if a.Intensity == b.Intensity {
				return b.AngleDeg
			}
			frac := (a.Intensity - threshold) / (a.Intensity - b.Intensity)
			return a.AngleDeg + frac*(b.AngleDeg-a.AngleDeg)
		}
	}
	return math.NaN()
}

// firstMinimum walks from the peak in direction dir and returns the index
// of the first local minimum, or the end of the series.
func firstMinimum(series []PatternPoint, peak, dir int) int {
	i := peak
	for i+dir >= 0 && i+dir < len(series) {
		if series[i+dir].Intensity > series[i].Intensity {
			break
		}
		i += dir
	}
	return i
}

package analysis

import (
	"math"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

// minRowsPerWorker keeps goroutine overhead below the per-row field cost.
const minRowsPerWorker = 8

// FieldSample is a rasterized view of the scene field over the settings
// viewport. Row 0 is the top of the viewport (largest y), matching how the
// terminal and SVG renderers draw.
type FieldSample struct {
	Width  int
	Height int

	// Values holds one sample per cell, row-major from the top-left. In
	// pressure mode they are instantaneous signed pressures; in intensity
	// mode, time-averaged |phasor|^2.
	Values []float64

	Mode         scene.DisplayMode
	DynamicRange float64

	// MaxAbs is the largest |value| in the grid, the normalization
	// reference for both display modes.
	MaxAbs float64

	// Viewport mapping: world coordinates of cell centers.
	X0, Y0 float64 // top-left cell center
	DX, DY float64 // per-cell steps; DY is negative (rows go down in y)
}

// At returns the raw sample of cell (ix, iy).
func (f *FieldSample) At(ix, iy int) float64 {
	return f.Values[iy*f.Width+ix]
}

// WorldAt returns the world position of cell (ix, iy)'s center.
func (f *FieldSample) WorldAt(ix, iy int) (x, y float64) {
	return f.X0 + float64(ix)*f.DX, f.Y0 + float64(iy)*f.DY
}

// Normalized maps cell (ix, iy) to [0, 1] for display. Pressure mode is a
// signed linear map with 0.5 at zero pressure; intensity mode is a dB map
// clipped to the configured dynamic range below the grid peak.
func (f *FieldSample) Normalized(ix, iy int) float64 {
	v := f.At(ix, iy)
	if f.MaxAbs == 0 {
		return 0
	}
	if f.Mode == scene.DisplayIntensity {
		return DBNormalize(v, f.MaxAbs, f.DynamicRange)
	}
	return 0.5 + v/(2*f.MaxAbs)
}

// DBNormalize maps a non-negative value to [0, 1] on a decibel scale: 1 at
// ref, 0 at dynamicRange dB below ref or deeper.
func DBNormalize(v, ref, dynamicRange float64) float64 {
	if v <= 0 || ref <= 0 || dynamicRange <= 0 {
		return 0
	}
	db := 10 * math.Log10(v/ref)
	if db < -dynamicRange {
		return 0
	}
	return (db + dynamicRange) / dynamicRange
}

// SampleField rasterizes the scene field on a w x h grid over the settings
// viewport at time t. The scene is snapshotted once and evaluated on warmed
// clones, so sampling holds no lock while the workers run.
func SampleField(s *scene.Scene, w, h int, t float64) *FieldSample {
	snap := s.Snapshot()
	return SampleSnapshot(snap, w, h, t)
}

// SampleSnapshot rasterizes an already-captured scene snapshot.
func SampleSnapshot(snap scene.Snapshot, w, h int, t float64) *FieldSample {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	set := snap.Settings

	f := &FieldSample{
		Width:        w,
		Height:       h,
		Values:       make([]float64, w*h),
		Mode:         set.DisplayMode,
		DynamicRange: set.DynamicRange,
		DX:           set.FieldWidth / float64(w),
		DY:           -set.FieldHeight / float64(h),
	}
	f.X0 = set.FieldCenterX - set.FieldWidth/2 + f.DX/2
	f.Y0 = set.FieldCenterY + set.FieldHeight/2 + f.DY/2

	arrays := cloneArrays(snap)

	ParallelFor(h, minRowsPerWorker, func(start, end int) {
		for iy := start; iy < end; iy++ {
			y := f.Y0 + float64(iy)*f.DY
			for ix := 0; ix < w; ix++ {
				x := f.X0 + float64(ix)*f.DX
				f.Values[iy*w+ix] = evalCell(arrays, set.DisplayMode, x, y, t)
			}
		}
	})

	for _, v := range f.Values {
		if a := math.Abs(v); a > f.MaxAbs {
			f.MaxAbs = a
		}
	}
	return f
}

// cloneArrays rebuilds the snapshot's arrays as private copies and warms
// their element caches, after which concurrent reads are safe.
func cloneArrays(snap scene.Snapshot) []*phased.Array {
	arrays := make([]*phased.Array, 0, len(snap.Arrays))
	for _, as := range snap.Arrays {
		a := phased.New(as.Config)
		a.ElementData()
		arrays = append(arrays, a)
	}
	return arrays
}

func evalCell(arrays []*phased.Array, mode scene.DisplayMode, x, y, t float64) float64 {
	if mode == scene.DisplayIntensity {
		var re, im float64
		for _, a := range arrays {
			r, i := a.FieldPhasor(x, y)
			re += r
			im += i
		}
		return re*re + im*im
	}
	sum := 0.0
	for _, a := range arrays {
		sum += a.FieldAt(x, y, t)
	}
	return sum
}

// DepthProfile samples the steady-state field magnitude along the
// horizontal line y = profileDepth across the viewport width, n points
// wide. Renderers plot it as the 1-D aside to the 2-D map.
func DepthProfile(s *scene.Scene, n int) []float64 {
	if n < 2 {
		n = 2
	}
	snap := s.Snapshot()
	set := snap.Settings
	arrays := cloneArrays(snap)

	out := make([]float64, n)
	x0 := set.FieldCenterX - set.FieldWidth/2
	dx := set.FieldWidth / float64(n-1)
	for i := range out {
		x := x0 + float64(i)*dx
		var re, im float64
		for _, a := range arrays {
			r, q := a.FieldPhasor(x, set.ProfileDepth)
			re += r
			im += q
		}
		out[i] = math.Sqrt(re*re + im*im)
	}
	return out
}

package viz

import "math"

// TrigTable provides precomputed sin/cos values for fast lookup, with linear
// interpolation between entries. The live field renderer evaluates one
// cosine per element per braille dot per frame, which is where exact
// math.Cos starts to dominate the frame budget.
type TrigTable struct {
	sin []float64
	cos []float64
	n   int
}

// Default table shared by the renderers (4096 entries = ~0.0015 rad
// resolution, a few 1e-7 after interpolation).
var DefaultTrigTable = NewTrigTable(4096)

// NewTrigTable creates a precomputed trig lookup table with n entries over
// one full turn.
func NewTrigTable(n int) *TrigTable {
	t := &TrigTable{
		sin: make([]float64, n),
		cos: make([]float64, n),
		n:   n,
	}

	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * math.Pi / float64(n)
		t.sin[i] = math.Sin(angle)
		t.cos[i] = math.Cos(angle)
	}

	return t
}

// Sin returns approximate sin using table lookup with interpolation.
func (t *TrigTable) Sin(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	frac := idx - float64(i)

	i0 := i % t.n
	i1 := (i + 1) % t.n

	return t.sin[i0]*(1-frac) + t.sin[i1]*frac
}

// Cos returns approximate cos using table lookup with interpolation.
func (t *TrigTable) Cos(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	frac := idx - float64(i)

	i0 := i % t.n
	i1 := (i + 1) % t.n

	return t.cos[i0]*(1-frac) + t.cos[i1]*frac
}

// SinCos returns both sin and cos from a single normalization, for the
// phasor accumulation in intensity rendering.
func (t *TrigTable) SinCos(x float64) (sin, cos float64) {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	frac := idx - float64(i)

	i0 := i % t.n
	i1 := (i + 1) % t.n

	sin = t.sin[i0]*(1-frac) + t.sin[i1]*frac
	cos = t.cos[i0]*(1-frac) + t.cos[i1]*frac
	return
}

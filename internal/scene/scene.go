// Package scene holds the simulation scene: a registry of phased arrays with
// shared settings, plus the aggregate field and beam evaluators that sum over
// every enabled array.
//
// The scene guards its state with one coarse RWMutex so the HTTP surface and
// the interactive views can share it. Arrays themselves are not thread-safe;
// concurrent callers mutate them through [Scene.Modify], which runs under the
// scene lock. Renderers take a [Snapshot] and work on the copy.
package scene

import (
	"errors"
	"sync"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
)

// ErrArrayNotFound indicates a lookup for an id the scene does not hold.
var ErrArrayNotFound = errors.New("scene: array not found")

// Scene owns the array registry and the scene-wide settings. Array ids are
// allocated by the scene, grow monotonically, and are only rewound by Clear.
type Scene struct {
	mu       sync.RWMutex
	arrays   map[int]*phased.Array
	order    []int
	nextID   int
	settings Settings
}

// New returns an empty scene with default settings.
func New() *Scene {
	return &Scene{
		arrays:   make(map[int]*phased.Array),
		nextID:   1,
		settings: DefaultSettings(),
	}
}

// Add registers an array, syncs its speed of sound to the scene medium, and
// returns the assigned id. The sync happens only at insertion; the array may
// diverge afterwards.
func (s *Scene) Add(a *phased.Array) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.SetSpeedOfSound(s.settings.SpeedOfSound)
	id := s.nextID
	s.nextID++
	s.arrays[id] = a
	s.order = append(s.order, id)
	return id
}

// AddConfig builds an array from a parameter record and registers it.
func (s *Scene) AddConfig(cfg phased.Config) int {
	return s.Add(phased.New(cfg))
}

// Array returns the array with the given id. The pointer is shared with the
// scene: single-goroutine callers may use it directly, concurrent callers
// must go through Modify.
func (s *Scene) Array(id int) (*phased.Array, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.arrays[id]
	return a, ok
}

// ArrayConfig returns a copy of the parameter record for the given id.
func (s *Scene) ArrayConfig(id int) (phased.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.arrays[id]
	if !ok {
		return phased.Config{}, ErrArrayNotFound
	}
	return a.Config(), nil
}

// Modify runs fn on the array with the given id under the scene lock.
func (s *Scene) Modify(id int, fn func(*phased.Array)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.arrays[id]
	if !ok {
		return ErrArrayNotFound
	}
	fn(a)
	return nil
}

// SetParam sets a named numeric parameter on one array.
func (s *Scene) SetParam(id int, name string, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.arrays[id]
	if !ok {
		return ErrArrayNotFound
	}
	return a.SetParam(name, value)
}

// Remove drops an array. Removing does not rewind the id allocator.
func (s *Scene) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.arrays[id]; !ok {
		return ErrArrayNotFound
	}
	delete(s.arrays, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear drops every array and resets the id allocator. This is the only
// operation that rewinds ids.
func (s *Scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.arrays = make(map[int]*phased.Array)
	s.order = nil
	s.nextID = 1
}

// Len returns the number of registered arrays.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.arrays)
}

// IDs returns the array ids in insertion order.
func (s *Scene) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Settings returns the current scene settings.
func (s *Scene) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetSettings replaces the scene settings after sanitizing them. The medium
// speed is not pushed to existing arrays; it applies to later insertions.
func (s *Scene) SetSettings(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = sanitizeSettings(settings)
}

// ElementData returns the element snapshot of one array.
func (s *Scene) ElementData(id int) ([]phased.ElementData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.arrays[id]
	if !ok {
		return nil, ErrArrayNotFound
	}
	return a.ElementData(), nil
}

// FieldAt returns the instantaneous pressure at (x, y): the sum of every
// enabled array's field. Disabled arrays contribute zero.
func (s *Scene) FieldAt(x, y, t float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := 0.0
	for _, id := range s.order {
		sum += s.arrays[id].FieldAt(x, y, t)
	}
	return sum
}

// FieldPhasor returns the steady-state complex field amplitude at (x, y)
// summed over enabled arrays.
func (s *Scene) FieldPhasor(x, y float64) (re, im float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		r, i := s.arrays[id].FieldPhasor(x, y)
		re += r
		im += i
	}
	return re, im
}

// BeamResponse returns the raw composite far-field response: the sum of
// every enabled array's response at the given bearing.
func (s *Scene) BeamResponse(angleDeg float64) (re, im float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beamResponseLocked(angleDeg)
}

func (s *Scene) beamResponseLocked(angleDeg float64) (re, im float64) {
	for _, id := range s.order {
		a := s.arrays[id]
		if !a.Enabled() {
			continue
		}
		r, i := a.BeamResponse(angleDeg)
		re += r
		im += i
	}
	return re, im
}

// BeamPattern returns the combined normalized intensity at a bearing:
// |sum of responses|^2 / (sum of n_i*amp_i)^2, over enabled arrays only, so
// coherent addition of identical arrays still peaks at 1.0.
func (s *Scene) BeamPattern(angleDeg float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	norm := 0.0
	for _, id := range s.order {
		a := s.arrays[id]
		if !a.Enabled() {
			continue
		}
		cfg := a.Config()
		norm += float64(cfg.NumElements) * cfg.Amplitude
	}
	if norm == 0 {
		return 0
	}
	re, im := s.beamResponseLocked(angleDeg)
	return (re*re + im*im) / (norm * norm)
}

// ArraySnapshot is one array's state frozen for rendering.
type ArraySnapshot struct {
	ID       int
	Config   phased.Config
	Elements []phased.ElementData
}

// Snapshot is an immutable copy of the scene state.
type Snapshot struct {
	Settings Settings
	Arrays   []ArraySnapshot
}

// Snapshot freezes the whole scene for a renderer: settings plus per-array
// config and element data, in insertion order. The copy is independent of
// the live scene.
func (s *Scene) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Settings: s.settings}
	for _, id := range s.order {
		a := s.arrays[id]
		snap.Arrays = append(snap.Arrays, ArraySnapshot{
			ID:       id,
			Config:   a.Config(),
			Elements: a.ElementData(),
		})
	}
	return snap
}

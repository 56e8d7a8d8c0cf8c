// Package phased implements the continuous-wave phased-array model: element
// layout, per-element phase delays, acoustic field superposition, and
// far-field beam patterns.
//
// The package centers on a single entity type:
//
//   - [Config]: the serializable parameter record, with [DefaultConfig]
//   - [Array]: the array entity; setters clamp out-of-range values instead
//     of rejecting them and invalidate the cached element layout
//   - [ElementData]: per-element snapshot (position, phase, amplitude)
//
// Evaluators on [Array]:
//
//   - [Array.ElementData]: world-space element snapshots
//   - [Array.FieldAt] / [Array.FieldPhasor]: pressure field at a point
//   - [Array.BeamPattern] / [Array.BeamResponse]: far-field directivity
//
// Angles in Config are bearings in degrees measured from the +Y axis toward
// +X; broadside of an unrotated array points along +Y. Units are otherwise
// caller-defined: any consistent set works, and the defaults read as SI
// (a 40 kHz source in air at 343 m/s).
//
// # Thread Safety
//
// Array instances are NOT thread-safe. Share them behind a lock (as the
// scene package does) or hand each goroutine its own copy via New(a.Config()).
package phased

// Package analysis derives renderer- and report-facing data from the core
// evaluators: rasterized field grids, beam-pattern series with lobe metrics,
// and probe waveforms with power spectra.
//
//   - [SampleField]: rasterize the scene field over the viewport
//   - [PatternSeries] / [ScenePatternSeries]: beam pattern sweeps
//   - [Lobes]: peak, -3 dB beamwidth, and side-lobe level of a sweep
//   - [Probe]: time-domain waveform at a field point
//   - [PowerSpectrum] / [DominantFrequency]: spectral view of a waveform
//   - [DepthProfile]: field magnitude along a horizontal cut
//
// Grid sampling clones the scene's arrays once and fans rows out over
// [ParallelFor] workers, so a render never holds the scene lock.
package analysis

// Package viz renders the simulation scene in the terminal.
//
// The live view is a Bubble Tea program showing the acoustic field as a
// colored heatmap (or the composite beam pattern as a braille polar plot)
// next to a stats panel with beam metrics and editable array parameters:
//
//   - [Model] / [RunLive]: the interactive TUI
//   - [RenderHeatmap]: theme-ramp field raster
//   - [Canvas]: braille pixel canvas, used by the polar pattern plot
//   - [TrigTable]: shared sin/cos lookup for the frame loop
//
// Rendering uses [FieldRenderer], a lookup-table approximation of the exact
// evaluators; exports and the HTTP surface stay on the exact path.
package viz

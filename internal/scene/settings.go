package scene

// DisplayMode selects what a field renderer maps to brightness.
type DisplayMode string

const (
	// DisplayPressure renders the instantaneous signed pressure.
	DisplayPressure DisplayMode = "pressure"

	// DisplayIntensity renders time-averaged intensity on a dB scale.
	DisplayIntensity DisplayMode = "intensity"
)

// Settings is the scene-wide configuration shared by every renderer: the
// propagation medium, the viewport of the sampled field, and display
// preferences. Renderers consume it; the core evaluators only read
// SpeedOfSound (at array insertion) and leave the rest untouched.
type Settings struct {
	SpeedOfSound float64
	FieldWidth   float64
	FieldHeight  float64
	FieldCenterX float64
	FieldCenterY float64
	DisplayMode  DisplayMode
	DynamicRange float64
	ProfileDepth float64
	TimeScale    float64
}

// DefaultSettings frames the default array: a 0.4 x 0.3 window whose lower
// edge sits just behind the array line at y = -0.1.
func DefaultSettings() Settings {
	return Settings{
		SpeedOfSound: 343,
		FieldWidth:   0.4,
		FieldHeight:  0.3,
		FieldCenterX: 0,
		FieldCenterY: 0.05,
		DisplayMode:  DisplayPressure,
		DynamicRange: 40,
		ProfileDepth: 0.1,
		TimeScale:    1,
	}
}

// sanitizeSettings fills non-physical values from the defaults, mirroring
// the clamp-never-reject policy of the array setters.
func sanitizeSettings(s Settings) Settings {
	def := DefaultSettings()
	if !(s.SpeedOfSound > 0) {
		s.SpeedOfSound = def.SpeedOfSound
	}
	if !(s.FieldWidth > 0) {
		s.FieldWidth = def.FieldWidth
	}
	if !(s.FieldHeight > 0) {
		s.FieldHeight = def.FieldHeight
	}
	if !(s.DynamicRange > 0) {
		s.DynamicRange = def.DynamicRange
	}
	if !(s.ProfileDepth > 0) {
		s.ProfileDepth = def.ProfileDepth
	}
	if s.DisplayMode != DisplayIntensity {
		s.DisplayMode = DisplayPressure
	}
	if !(s.TimeScale > 0) {
		s.TimeScale = def.TimeScale
	}
	return s
}

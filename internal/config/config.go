// Package config defines the YAML scenario format: scene settings plus a
// list of array definitions. Loading overlays the file onto defaults, so a
// scenario only states what differs from the stock setup.
package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/geom"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

// Scenario is a complete serializable scene description.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Settings    SettingsConfig `yaml:"settings"`
	Arrays      []ArrayConfig  `yaml:"arrays"`
}

// SettingsConfig mirrors scene.Settings in serialized form.
type SettingsConfig struct {
	SpeedOfSound float64 `yaml:"speed_of_sound"`
	FieldWidth   float64 `yaml:"field_width"`
	FieldHeight  float64 `yaml:"field_height"`
	FieldCenterX float64 `yaml:"field_center_x"`
	FieldCenterY float64 `yaml:"field_center_y"`
	DisplayMode  string  `yaml:"display_mode"`
	DynamicRange float64 `yaml:"dynamic_range"`
	ProfileDepth float64 `yaml:"profile_depth"`
	TimeScale    float64 `yaml:"time_scale"`
}

// ArrayConfig mirrors phased.Config in serialized form. A focal_distance of
// zero (or anything non-positive) means far field; the array clamps restore
// +Inf on load, so the round trip is exact.
type ArrayConfig struct {
	NumElements     int     `yaml:"num_elements"`
	Pitch           float64 `yaml:"pitch"`
	Frequency       float64 `yaml:"frequency"`
	SteeringAngle   float64 `yaml:"steering_angle"`
	PositionX       float64 `yaml:"position_x"`
	PositionY       float64 `yaml:"position_y"`
	Geometry        string  `yaml:"geometry"`
	CurvatureRadius float64 `yaml:"curvature_radius"`
	Orientation     float64 `yaml:"orientation"`
	FocalDistance   float64 `yaml:"focal_distance"`
	Amplitude       float64 `yaml:"amplitude"`
	SpeedOfSound    float64 `yaml:"speed_of_sound"`
	Enabled         bool    `yaml:"enabled"`
}

// UnmarshalYAML fills an array entry from defaults before decoding, so list
// items behave like the top-level overlay: omitted keys keep their default,
// including enabled: true.
func (c *ArrayConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain ArrayConfig
	out := plain(DefaultArrayConfig())
	if err := value.Decode(&out); err != nil {
		return err
	}
	*c = ArrayConfig(out)
	return nil
}

// DefaultArrayConfig is the serialized form of phased.DefaultConfig.
func DefaultArrayConfig() ArrayConfig {
	return ArrayFromPhased(phased.DefaultConfig())
}

// DefaultScenario is a single stock array in the default viewport.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:        "default",
		Description: "single 16-element linear array, unsteered",
		Settings:    SettingsFromScene(scene.DefaultSettings()),
		Arrays:      []ArrayConfig{DefaultArrayConfig()},
	}
}

// Load reads a scenario file, overlaying it onto DefaultScenario.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// Save writes a scenario file.
func (s *Scenario) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply replaces the contents of a scene with this scenario: settings first,
// then arrays in file order.
func (s *Scenario) Apply(sc *scene.Scene) {
	sc.Clear()
	sc.SetSettings(s.Settings.ToScene())
	for _, ac := range s.Arrays {
		sc.AddConfig(ac.ToPhased())
	}
}

// ToPhased converts a serialized array record into core parameters. The
// result still passes through the array clamps in phased.New.
func (c ArrayConfig) ToPhased() phased.Config {
	return phased.Config{
		NumElements:     c.NumElements,
		Pitch:           c.Pitch,
		Frequency:       c.Frequency,
		SteeringAngle:   c.SteeringAngle,
		Position:        geom.Vec2{X: c.PositionX, Y: c.PositionY},
		Geometry:        phased.Geometry(c.Geometry),
		CurvatureRadius: c.CurvatureRadius,
		Orientation:     c.Orientation,
		FocalDistance:   c.FocalDistance,
		Amplitude:       c.Amplitude,
		SpeedOfSound:    c.SpeedOfSound,
		Enabled:         c.Enabled,
	}
}

// ArrayFromPhased converts core parameters into the serialized form,
// encoding a far-field focus as zero.
func ArrayFromPhased(cfg phased.Config) ArrayConfig {
	focal := cfg.FocalDistance
	if math.IsInf(focal, 1) {
		focal = 0
	}
	return ArrayConfig{
		NumElements:     cfg.NumElements,
		Pitch:           cfg.Pitch,
		Frequency:       cfg.Frequency,
		SteeringAngle:   cfg.SteeringAngle,
		PositionX:       cfg.Position.X,
		PositionY:       cfg.Position.Y,
		Geometry:        string(cfg.Geometry),
		CurvatureRadius: cfg.CurvatureRadius,
		Orientation:     cfg.Orientation,
		FocalDistance:   focal,
		Amplitude:       cfg.Amplitude,
		SpeedOfSound:    cfg.SpeedOfSound,
		Enabled:         cfg.Enabled,
	}
}

// ToScene converts serialized settings into scene settings.
func (c SettingsConfig) ToScene() scene.Settings {
	return scene.Settings{
		SpeedOfSound: c.SpeedOfSound,
		FieldWidth:   c.FieldWidth,
		FieldHeight:  c.FieldHeight,
		FieldCenterX: c.FieldCenterX,
		FieldCenterY: c.FieldCenterY,
		DisplayMode:  scene.DisplayMode(c.DisplayMode),
		DynamicRange: c.DynamicRange,
		ProfileDepth: c.ProfileDepth,
		TimeScale:    c.TimeScale,
	}
}

// SettingsFromScene converts scene settings into the serialized form.
func SettingsFromScene(s scene.Settings) SettingsConfig {
	return SettingsConfig{
		SpeedOfSound: s.SpeedOfSound,
		FieldWidth:   s.FieldWidth,
		FieldHeight:  s.FieldHeight,
		FieldCenterX: s.FieldCenterX,
		FieldCenterY: s.FieldCenterY,
		DisplayMode:  string(s.DisplayMode),
		DynamicRange: s.DynamicRange,
		ProfileDepth: s.ProfileDepth,
		TimeScale:    s.TimeScale,
	}
}

// SnapshotScenario captures a live scene as a scenario, the inverse of
// Apply. Used by the run store and the export commands.
func SnapshotScenario(name, description string, sc *scene.Scene) *Scenario {
	snap := sc.Snapshot()
	out := &Scenario{
		Name:        name,
		Description: description,
		Settings:    SettingsFromScene(snap.Settings),
	}
	for _, as := range snap.Arrays {
		out.Arrays = append(out.Arrays, ArrayFromPhased(as.Config))
	}
	return out
}

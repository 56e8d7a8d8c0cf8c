package server

import (
	"math"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/geom"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

// ArrayDTO is the JSON form of an array. FocalDistance uses the serialized
// convention: zero means far field, since JSON cannot carry +Inf. The array
// clamps coerce zero back to +Inf on the way in, so the round trip is exact.
type ArrayDTO struct {
	ID              int     `json:"id,omitempty"`
	NumElements     int     `json:"num_elements"`
	Pitch           float64 `json:"pitch"`
	Frequency       float64 `json:"frequency"`
	SteeringAngle   float64 `json:"steering_angle"`
	PositionX       float64 `json:"position_x"`
	PositionY       float64 `json:"position_y"`
	Geometry        string  `json:"geometry"`
	CurvatureRadius float64 `json:"curvature_radius"`
	Orientation     float64 `json:"orientation"`
	FocalDistance   float64 `json:"focal_distance"`
	Amplitude       float64 `json:"amplitude"`
	SpeedOfSound    float64 `json:"speed_of_sound"`
	Enabled         bool    `json:"enabled"`
}

func arrayDTO(id int, cfg phased.Config) ArrayDTO {
	focal := cfg.FocalDistance
	if math.IsInf(focal, 1) {
		focal = 0
	}
	return ArrayDTO{
		ID:              id,
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

func (d ArrayDTO) toConfig() phased.Config {
	return phased.Config{
		NumElements:     d.NumElements,
		Pitch:           d.Pitch,
		Frequency:       d.Frequency,
		SteeringAngle:   d.SteeringAngle,
		Position:        geom.Vec2{X: d.PositionX, Y: d.PositionY},
		Geometry:        phased.Geometry(d.Geometry),
		CurvatureRadius: d.CurvatureRadius,
		Orientation:     d.Orientation,
		FocalDistance:   d.FocalDistance,
		Amplitude:       d.Amplitude,
		SpeedOfSound:    d.SpeedOfSound,
		Enabled:         d.Enabled,
	}
}

// SettingsDTO is the JSON form of the scene settings.
type SettingsDTO struct {
	SpeedOfSound float64 `json:"speed_of_sound"`
	FieldWidth   float64 `json:"field_width"`
	FieldHeight  float64 `json:"field_height"`
	FieldCenterX float64 `json:"field_center_x"`
	FieldCenterY float64 `json:"field_center_y"`
	DisplayMode  string  `json:"display_mode"`
	DynamicRange float64 `json:"dynamic_range"`
	ProfileDepth float64 `json:"profile_depth"`
	TimeScale    float64 `json:"time_scale"`
}

func settingsDTO(s scene.Settings) SettingsDTO {
	return SettingsDTO{
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

// ElementDTO is the JSON form of one element snapshot entry.
type ElementDTO struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Phase     float64 `json:"phase"`
	Amplitude float64 `json:"amplitude"`
}

func elementDTOs(elems []phased.ElementData) []ElementDTO {
	out := make([]ElementDTO, len(elems))
	for i, e := range elems {
		out[i] = ElementDTO{X: e.X, Y: e.Y, Phase: e.Phase, Amplitude: e.Amplitude}
	}
	return out
}

// SceneDTO is the response body of GET /api/scene.
type SceneDTO struct {
	Settings SettingsDTO `json:"settings"`
	Arrays   []ArrayDTO  `json:"arrays"`
}

// PatternPointDTO is one sample of a beam-pattern sweep response.
type PatternPointDTO struct {
	AngleDeg  float64 `json:"angle_deg"`
	Intensity float64 `json:"intensity"`
}

// FieldGridDTO is the response body of GET /api/field/grid.
type FieldGridDTO struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Time   float64   `json:"time"`
	Mode   string    `json:"mode"`
	MaxAbs float64   `json:"max_abs"`
	Values []float64 `json:"values"`
}

type errorBody struct {
	Error string `json:"error"`
}

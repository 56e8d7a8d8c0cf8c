package config

import "sort"

var Presets = buildPresets()

func buildPresets() map[string]*Scenario {
	settings := DefaultScenario().Settings

	steered := DefaultArrayConfig()
	steered.NumElements = 11
	steered.Pitch = 0.0042875 // half a wavelength at 40 kHz in air
	steered.SteeringAngle = 30

	focused := DefaultArrayConfig()
	focused.NumElements = 32
	focused.Pitch = 0.004
	focused.FocalDistance = 0.08

	focusedSettings := settings
	focusedSettings.DisplayMode = "intensity"

	curved := DefaultArrayConfig()
	curved.NumElements = 24
	curved.Pitch = 0.004
	curved.Geometry = "curved"
	curved.CurvatureRadius = 0.06

	left := DefaultArrayConfig()
	left.PositionX = -0.08
	left.Orientation = 25

	right := DefaultArrayConfig()
	right.PositionX = 0.08
	right.Orientation = 335

	grating := DefaultArrayConfig()
	grating.NumElements = 8
	grating.Pitch = 0.012 // well past a wavelength: aliased lobes appear

	gratingSettings := settings
	gratingSettings.DisplayMode = "intensity"
	gratingSettings.DynamicRange = 30

	return map[string]*Scenario{
		"steered": {
			Name:        "steered",
			Description: "11-element half-wavelength array steered 30 degrees",
			Settings:    settings,
			Arrays:      []ArrayConfig{steered},
		},
		"focused": {
			Name:        "focused",
			Description: "32-element array focused 8 cm in front of the aperture",
			Settings:    focusedSettings,
			Arrays:      []ArrayConfig{focused},
		},
		"curved": {
			Name:        "curved",
			Description: "24-element convex arc fanning a wide sector",
			Settings:    settings,
			Arrays:      []ArrayConfig{curved},
		},
		"crossfire": {
			Name:        "crossfire",
			Description: "two tilted arrays whose beams cross mid-field",
			Settings:    settings,
			Arrays:      []ArrayConfig{left, right},
		},
		"grating": {
			Name:        "grating",
			Description: "coarse 1.4-wavelength pitch showing grating lobes",
			Settings:    gratingSettings,
			Arrays:      []ArrayConfig{grating},
		},
	}
}

func GetPreset(name string) *Scenario {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the TUI. Ramp is the five-stop
// intensity gradient used for field heatmaps, darkest to brightest.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Ramp       [5]lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Primary:    lipgloss.Color("#ff00ff"), // Magenta
		Secondary:  lipgloss.Color("#00ffff"), // Cyan
		Accent:     lipgloss.Color("#ffff00"), // Yellow
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Success:    lipgloss.Color("#00ff00"),
		Warning:    lipgloss.Color("#ff8800"),
		Error:      lipgloss.Color("#ff0000"),
		Ramp: [5]lipgloss.Color{
			"#1a0033", "#660099", "#cc00cc", "#ff00ff", "#ffccff",
		},
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // Green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Success:    lipgloss.Color("#88ff88"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
		Ramp: [5]lipgloss.Color{
			"#002200", "#005500", "#009900", "#00dd00", "#aaffaa",
		},
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Success:    lipgloss.Color("#00ff00"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
		Ramp: [5]lipgloss.Color{
			"#222222", "#555555", "#888888", "#cccccc", "#ffffff",
		},
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"), // Ocean blue
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Success:    lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff4444"),
		Ramp: [5]lipgloss.Color{
			"#001a33", "#004466", "#0077be", "#00c0e0", "#ccf2ff",
		},
	}

	// Classic acoustic-camera heat ramp: black body up through red and
	// yellow to white.
	ThemeThermal = Theme{
		Name:       "thermal",
		Primary:    lipgloss.Color("#ff6600"),
		Secondary:  lipgloss.Color("#ffcc00"),
		Accent:     lipgloss.Color("#ffffff"),
		Background: lipgloss.Color("#0d0500"),
		Text:       lipgloss.Color("#fff5e0"),
		Muted:      lipgloss.Color("#885533"),
		Success:    lipgloss.Color("#5fd068"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff3322"),
		Ramp: [5]lipgloss.Color{
			"#1a0500", "#991100", "#ff6600", "#ffcc00", "#ffffff",
		},
	}

	// Default theme
	CurrentTheme = ThemeThermal

	// All available themes
	Themes = []Theme{
		ThemeThermal,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeThermal
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one, wrapping around.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/analysis"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

const (
	fieldCols = 76
	fieldRows = 22
	fps       = 30
)

// ViewMode selects the main panel content.
type ViewMode int

const (
	ViewField ViewMode = iota
	ViewPattern
)

type TickMsg time.Time

// Model is the live TUI: it owns the animation clock and drives the scene's
// field time, while every physics query goes through the scene itself.
type Model struct {
	scene    *scene.Scene
	scenario string

	t       float64
	running bool
	view    ViewMode

	canvas *Canvas

	ids           []int
	selectedArray int
	paramKeys     []string
	selectedParam int

	showHelp bool
}

// NewModel builds the live view over a scene. The scenario name is only a
// label in the header.
func NewModel(sc *scene.Scene, scenario string) Model {
	keys := make([]string, 0)
	if ids := sc.IDs(); len(ids) > 0 {
		if a, ok := sc.Array(ids[0]); ok {
			for k := range a.Params() {
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)

	return Model{
		scene:     sc,
		scenario:  scenario,
		running:   true,
		canvas:    NewCanvas(fieldCols, fieldRows),
		ids:       sc.IDs(),
		paramKeys: keys,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input and advances the animation clock.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.t = 0
		case "v":
			if m.view == ViewField {
				m.view = ViewPattern
			} else {
				m.view = ViewField
			}
		case "a":
			if len(m.ids) > 0 {
				m.selectedArray = (m.selectedArray + 1) % len(m.ids)
			}
		case "tab":
			if len(m.paramKeys) > 0 {
				m.selectedParam = (m.selectedParam + 1) % len(m.paramKeys)
			}
		case "up", "k":
			m.adjustParam(+1)
		case "down", "j":
			m.adjustParam(-1)
		case "left":
			m.nudgeSteering(-2)
		case "right":
			m.nudgeSteering(+2)
		case "g":
			m.toggleGeometry()
		case "d":
			m.toggleDisplayMode()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.t += m.frameStep()
		}
		return m, tick()
	}
	return m, nil
}

// frameStep advances the field clock by one carrier period per second of
// wall time at TimeScale 1, so the wave visibly crawls instead of strobing.
func (m *Model) frameStep() float64 {
	freq := phased.DefaultConfig().Frequency
	if cfg, ok := m.selectedConfig(); ok {
		freq = cfg.Frequency
	}
	return m.scene.Settings().TimeScale / freq / fps
}

func (m *Model) selectedID() (int, bool) {
	if m.selectedArray >= len(m.ids) {
		return 0, false
	}
	return m.ids[m.selectedArray], true
}

func (m *Model) selectedConfig() (phased.Config, bool) {
	id, ok := m.selectedID()
	if !ok {
		return phased.Config{}, false
	}
	cfg, err := m.scene.ArrayConfig(id)
	return cfg, err == nil
}

// adjustParam nudges the selected parameter: one element at a time for the
// count, additive steps for angles and positions, multiplicative for the
// scale-free rest. The array's own clamps bound everything.
func (m *Model) adjustParam(dir int) {
	if len(m.paramKeys) == 0 {
		return
	}
	id, ok := m.selectedID()
	if !ok {
		return
	}
	key := m.paramKeys[m.selectedParam]
	cfg, ok := m.selectedConfig()
	if !ok {
		return
	}
	val := phased.New(cfg).Params()[key]

	switch key {
	case "numElements":
		val += float64(dir)
	case "steeringAngle", "orientation":
		val += float64(dir) * 2
	case "positionX", "positionY":
		val += float64(dir) * 0.005
	case "focalDistance":
		if val == 0 {
			// Far field: stepping down drops into focus at a handy
			// default; stepping up stays far field.
			if dir < 0 {
				val = 0.1
			}
		} else {
			val *= 1 + 0.05*float64(dir)
		}
	default:
		val *= 1 + 0.05*float64(dir)
	}
	_ = m.scene.SetParam(id, key, val)
}

func (m *Model) nudgeSteering(deltaDeg float64) {
	id, ok := m.selectedID()
	if !ok {
		return
	}
	if cfg, ok := m.selectedConfig(); ok {
		_ = m.scene.SetParam(id, "steeringAngle", cfg.SteeringAngle+deltaDeg)
	}
}

func (m *Model) toggleGeometry() {
	id, ok := m.selectedID()
	if !ok {
		return
	}
	_ = m.scene.Modify(id, func(a *phased.Array) {
		if a.Config().Geometry == phased.GeometryLinear {
			a.SetGeometry(phased.GeometryCurved)
		} else {
			a.SetGeometry(phased.GeometryLinear)
		}
	})
}

func (m *Model) toggleDisplayMode() {
	set := m.scene.Settings()
	if set.DisplayMode == scene.DisplayPressure {
		set.DisplayMode = scene.DisplayIntensity
	} else {
		set.DisplayMode = scene.DisplayPressure
	}
	m.scene.SetSettings(set)
}

// View renders one frame.
func (m Model) View() string {
	snap := m.scene.Snapshot()

	var mainPanel string
	if m.view == ViewField {
		mainPanel = RenderHeatmap(snap, fieldCols, fieldRows, m.t).Render()
	} else {
		m.canvas.Clear()
		series := analysis.ScenePatternSeries(m.scene, -90, 90, 0.5)
		DrawPolar(m.canvas, series, snap.Settings.DynamicRange)
		mainPanel = GraphStyle.Render(m.canvas.String())
	}

	stats := m.renderStats(snap)

	view := lipgloss.JoinHorizontal(lipgloss.Top,
		CanvasPanel.Render(mainPanel),
		StatsPanel.Render(stats),
	)
	if m.showHelp {
		return helpOverlay + "\n" + view
	}
	return view
}

func (m Model) renderStats(snap scene.Snapshot) string {
	var s strings.Builder

	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.scenario)) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(LabelStyle.Render("Time") + ValueStyle.Render(fmt.Sprintf("%.2f µs", m.t*1e6)) + "\n")
	s.WriteString(LabelStyle.Render("Mode") + ValueStyle.Render(string(snap.Settings.DisplayMode)) + "\n")
	s.WriteString(LabelStyle.Render("Theme") + ValueStyle.Render(CurrentTheme.Name) + "\n")

	// Beam metrics of the whole scene over the steerable range.
	series := analysis.ScenePatternSeries(m.scene, -90, 90, 0.5)
	lobes := analysis.Lobes(series)
	s.WriteString("\n" + HeaderStyle.Render("BEAM") + "\n")
	s.WriteString(LabelStyle.Render("Peak") + ValueStyle.Render(fmt.Sprintf("%.1f°", lobes.PeakAngleDeg)) + "\n")
	if lobes.BeamwidthDeg > 0 {
		s.WriteString(LabelStyle.Render("-3 dB width") + ValueStyle.Render(fmt.Sprintf("%.1f°", lobes.BeamwidthDeg)) + "\n")
	}
	if lobes.HasSidelobe {
		s.WriteString(LabelStyle.Render("Sidelobe") + ValueStyle.Render(fmt.Sprintf("%.1f dB", lobes.SidelobeDB)) + "\n")
	}

	// Depth profile inset.
	profile := analysis.DepthProfile(m.scene, 34)
	s.WriteString("\n" + HeaderStyle.Render("PROFILE") + "\n")
	s.WriteString(SparklineChart(profile, 34) + "\n")
	chart := asciigraph.Plot(profile, asciigraph.Height(4), asciigraph.Width(30))
	s.WriteString(GraphStyle.Render(chart) + "\n")

	// Array selector and parameters.
	s.WriteString("\n" + HeaderStyle.Render("ARRAYS") + "\n")
	for i, as := range snap.Arrays {
		label := fmt.Sprintf("array %d  %s  n=%d", as.ID, as.Config.Geometry, as.Config.NumElements)
		if !as.Config.Enabled {
			label += "  (off)"
		}
		if i == m.selectedArray {
			s.WriteString(ActiveParamStyle.Render("> "+label) + "\n")
		} else {
			s.WriteString("  " + LabelStyle.Render(label) + "\n")
		}
	}

	if cfg, ok := m.selectedConfig(); ok {
		params := phased.New(cfg).Params()
		s.WriteString("\n" + HeaderStyle.Render("PARAMETERS") + "\n")
		for i, k := range m.paramKeys {
			line := fmt.Sprintf("%-16s %.4g", k, params[k])
			if i == m.selectedParam {
				s.WriteString(ActiveParamStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + LabelStyle.Render(line) + "\n")
			}
		}
	}

	s.WriteString(HelpStyle.Render("\nSP:Pause R:Rewind V:View A:Array\nTab:Param ↑↓:Tune ←→:Steer\nG:Geometry D:Display T:Theme ?:Help Q:Quit"))
	return s.String()
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume animation   ║
║  R        - Rewind field time to 0   ║
║  V        - Field / pattern view     ║
║  A        - Select next array        ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  Left/Rt  - Steer beam -/+ 2°        ║
║  G        - Toggle linear/curved     ║
║  D        - Pressure/intensity mode  ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunLive starts the live view over the given scene.
func RunLive(sc *scene.Scene, scenario string) error {
	_, err := tea.NewProgram(NewModel(sc, scenario), tea.WithAltScreen()).Run()
	return err
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/analysis"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/config"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/export"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/geom"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/logging"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/optim"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/server"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/storage"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/viz"
)

var (
	dataDir    string
	configFile string
	scenario   string

	arrayID int

	fromDeg float64
	toDeg   float64
	stepDeg float64

	probeX   float64
	probeY   float64
	fieldT   float64
	duration float64
	rate     float64

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	focusX     float64
	focusY     float64
	focusSteps int

	gridW int
	gridH int

	outPath    string
	exportKind string

	serveAddr string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "beamsim",
		Short: "continuous-wave phased-array simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".beamsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&scenario, "scenario", "", "built-in scenario name")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.GetPreset(name).Description)
			}
			return w.Flush()
		},
	}

	elementsCmd := &cobra.Command{
		Use:   "elements",
		Short: "print element layout and phase delays",
		RunE:  printElements,
	}

	beamCmd := &cobra.Command{
		Use:   "beam",
		Short: "plot a beam pattern sweep",
		RunE:  plotBeam,
	}
	beamCmd.Flags().IntVar(&arrayID, "id", 0, "array id (0 = composite scene pattern)")
	beamCmd.Flags().Float64Var(&fromDeg, "from", -90, "sweep start angle (degrees)")
	beamCmd.Flags().Float64Var(&toDeg, "to", 90, "sweep end angle (degrees)")
	beamCmd.Flags().Float64Var(&stepDeg, "step", 0.5, "sweep step (degrees)")

	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "evaluate the field at a point",
		RunE:  evalField,
	}
	fieldCmd.Flags().Float64Var(&probeX, "x", 0, "x coordinate")
	fieldCmd.Flags().Float64Var(&probeY, "y", 0.05, "y coordinate")
	fieldCmd.Flags().Float64Var(&fieldT, "t", 0, "time")

	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "record a waveform at a point and show its spectrum",
		RunE:  probePoint,
	}
	probeCmd.Flags().Float64Var(&probeX, "x", 0, "x coordinate")
	probeCmd.Flags().Float64Var(&probeY, "y", 0.05, "y coordinate")
	probeCmd.Flags().Float64Var(&duration, "duration", 0.002, "record duration")
	probeCmd.Flags().Float64Var(&rate, "rate", 400000, "sample rate")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one array parameter and tabulate beam metrics",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&arrayID, "id", 1, "array id")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "pitch", "parameter name")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.002, "start value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.012, "end value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 11, "number of values")

	focusCmd := &cobra.Command{
		Use:   "focus",
		Short: "search steering and focal distance for a target point",
		RunE:  runFocus,
	}
	focusCmd.Flags().IntVar(&arrayID, "id", 1, "array id")
	focusCmd.Flags().Float64Var(&focusX, "x", 0.05, "target x")
	focusCmd.Flags().Float64Var(&focusY, "y", 0.05, "target y")
	focusCmd.Flags().IntVar(&focusSteps, "steps", 25, "grid resolution per axis")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "sample the scene and persist the run",
		RunE:  runSample,
	}
	runCmd.Flags().IntVar(&gridW, "width", 128, "field grid width")
	runCmd.Flags().IntVar(&gridH, "height", 96, "field grid height")
	runCmd.Flags().Float64Var(&fieldT, "t", 0, "sample time")
	runCmd.Flags().Float64Var(&stepDeg, "step", 0.5, "pattern sweep step (degrees)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list persisted runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a persisted run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "export the scene as SVG",
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&exportKind, "kind", "heatmap", "heatmap or pattern")
	exportSVGCmd.Flags().StringVar(&outPath, "out", "", "output path (default <kind>.svg)")
	exportSVGCmd.Flags().IntVar(&gridW, "width", 192, "heatmap grid width")
	exportSVGCmd.Flags().IntVar(&gridH, "height", 144, "heatmap grid height")
	exportSVGCmd.Flags().Float64Var(&fieldT, "t", 0, "sample time")
	exportSVGCmd.Flags().Float64Var(&stepDeg, "step", 0.5, "pattern sweep step (degrees)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "export scene data as CSV",
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&exportKind, "kind", "elements", "elements, pattern, or field")
	exportCSVCmd.Flags().StringVar(&outPath, "out", "", "output path (default stdout)")
	exportCSVCmd.Flags().IntVar(&gridW, "width", 64, "field grid width")
	exportCSVCmd.Flags().IntVar(&gridH, "height", 48, "field grid height")
	exportCSVCmd.Flags().Float64Var(&fieldT, "t", 0, "sample time")
	exportCSVCmd.Flags().Float64Var(&stepDeg, "step", 0.5, "pattern sweep step (degrees)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, name, err := loadScene()
			if err != nil {
				return err
			}
			return viz.RunLive(sc, name)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the scene API over HTTP",
		RunE:  serveAPI,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")

	rootCmd.AddCommand(scenariosCmd, elementsCmd, beamCmd, fieldCmd, probeCmd,
		sweepCmd, focusCmd, runCmd, listCmd, showCmd, exportSVGCmd, exportCSVCmd,
		liveCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScene builds the working scene: an explicit config file wins, then a
// named built-in scenario, then the default single array.
func loadScene() (*scene.Scene, string, error) {
	sc := scene.New()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("load %s: %w", configFile, err)
		}
		loaded.Apply(sc)
		return sc, loaded.Name, nil
	}

	if scenario != "" {
		preset := config.GetPreset(scenario)
		if preset == nil {
			return nil, "", fmt.Errorf("unknown scenario %q (try: %s)",
				scenario, strings.Join(config.ListPresets(), ", "))
		}
		preset.Apply(sc)
		return sc, preset.Name, nil
	}

	config.DefaultScenario().Apply(sc)
	return sc, "default", nil
}

func printElements(cmd *cobra.Command, args []string) error {
	sc, _, err := loadScene()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "array\telement\tx\ty\tphase\tamplitude")
	snap := sc.Snapshot()
	for _, as := range snap.Arrays {
		for i, e := range as.Elements {
			fmt.Fprintf(w, "%d\t%d\t%.6f\t%.6f\t%.4f\t%.2f\n",
				as.ID, i, e.X, e.Y, e.Phase, e.Amplitude)
		}
	}
	return w.Flush()
}

func plotBeam(cmd *cobra.Command, args []string) error {
	sc, name, err := loadScene()
	if err != nil {
		return err
	}

	series, err := beamSeries(sc)
	if err != nil {
		return err
	}

	chart := asciigraph.Plot(analysis.Intensities(series),
		asciigraph.Height(14), asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("%s: beam pattern %.0f..%.0f deg", name, fromDeg, toDeg)))
	fmt.Println(chart)

	lobes := analysis.Lobes(series)
	fmt.Printf("\npeak %.2f at %.1f deg", lobes.PeakValue, lobes.PeakAngleDeg)
	if lobes.BeamwidthDeg > 0 {
		fmt.Printf(", -3 dB width %.1f deg", lobes.BeamwidthDeg)
	}
	if lobes.HasSidelobe {
		fmt.Printf(", sidelobe %.1f dB at %.1f deg", lobes.SidelobeDB, lobes.SidelobeAngleDeg)
	}
	fmt.Println()
	return nil
}

func beamSeries(sc *scene.Scene) ([]analysis.PatternPoint, error) {
	if arrayID == 0 {
		return analysis.ScenePatternSeries(sc, fromDeg, toDeg, stepDeg), nil
	}
	a, ok := sc.Array(arrayID)
	if !ok {
		return nil, fmt.Errorf("no array with id %d", arrayID)
	}
	return analysis.PatternSeries(a, fromDeg, toDeg, stepDeg), nil
}

func evalField(cmd *cobra.Command, args []string) error {
	sc, _, err := loadScene()
	if err != nil {
		return err
	}
	v := sc.FieldAt(probeX, probeY, fieldT)
	re, im := sc.FieldPhasor(probeX, probeY)
	fmt.Printf("field(%g, %g, t=%g) = %.6f\n", probeX, probeY, fieldT, v)
	fmt.Printf("intensity(%g, %g) = %.6f\n", probeX, probeY, re*re+im*im)
	return nil
}

func probePoint(cmd *cobra.Command, args []string) error {
	sc, _, err := loadScene()
	if err != nil {
		return err
	}

	wave := analysis.Probe(sc, probeX, probeY, duration, rate)
	if len(wave.Samples) == 0 {
		return fmt.Errorf("empty probe: duration %g at rate %g", duration, rate)
	}

	show := wave.Samples
	if len(show) > 400 {
		show = show[:400]
	}
	fmt.Println(asciigraph.Plot(show,
		asciigraph.Height(10), asciigraph.Width(72),
		asciigraph.Caption(fmt.Sprintf("waveform at (%g, %g)", probeX, probeY))))

	spectrum := analysis.PowerSpectrum(wave)
	powers := make([]float64, len(spectrum))
	for i, p := range spectrum {
		powers[i] = p.Power
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(powers,
		asciigraph.Height(8), asciigraph.Width(72),
		asciigraph.Caption("power spectrum")))
	fmt.Printf("\ndominant frequency: %.0f\n", analysis.DominantFrequency(spectrum))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	sc, _, err := loadScene()
	if err != nil {
		return err
	}
	cfg, err := sc.ArrayConfig(arrayID)
	if err != nil {
		return fmt.Errorf("no array with id %d", arrayID)
	}

	points, err := optim.RunSweep(context.Background(), cfg, &optim.ParameterSweep{
		ParamName: sweepParam,
		Min:       sweepMin,
		Max:       sweepMax,
		NumSteps:  sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tpeak_deg\twidth_deg\tsidelobe_db\n", sweepParam)
	for _, p := range points {
		sll := "-"
		if p.Metrics.HasSidelobe {
			sll = fmt.Sprintf("%.1f", p.Metrics.SidelobeDB)
		}
		fmt.Fprintf(w, "%.5g\t%.1f\t%.1f\t%s\n",
			p.Value, p.Metrics.PeakAngleDeg, p.Metrics.BeamwidthDeg, sll)
	}
	return w.Flush()
}

func runFocus(cmd *cobra.Command, args []string) error {
	sc, _, err := loadScene()
	if err != nil {
		return err
	}
	cfg, err := sc.ArrayConfig(arrayID)
	if err != nil {
		return fmt.Errorf("no array with id %d", arrayID)
	}

	result, err := optim.FocusSearch(context.Background(), cfg,
		geom.Vec2{X: focusX, Y: focusY}, focusSteps)
	if err != nil {
		return err
	}

	fmt.Printf("target (%g, %g)\n", focusX, focusY)
	fmt.Printf("steering %.1f deg, ", result.SteeringAngle)
	if result.FocalDistance == 0 {
		fmt.Printf("far field")
	} else {
		fmt.Printf("focal distance %.4f", result.FocalDistance)
	}
	fmt.Printf(", intensity %.4f\n", result.Intensity)
	return nil
}

func runSample(cmd *cobra.Command, args []string) error {
	sc, name, err := loadScene()
	if err != nil {
		return err
	}

	field := analysis.SampleField(sc, gridW, gridH, fieldT)
	pattern := analysis.ScenePatternSeries(sc, -90, 90, stepDeg)
	lobes := analysis.Lobes(pattern)

	metrics := map[string]float64{
		"peak_angle_deg": lobes.PeakAngleDeg,
		"peak_value":     lobes.PeakValue,
		"beamwidth_deg":  lobes.BeamwidthDeg,
		"field_max_abs":  field.MaxAbs,
	}
	if lobes.HasSidelobe {
		metrics["sidelobe_db"] = lobes.SidelobeDB
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(name, fieldT, field, pattern, metrics)
	if err != nil {
		return err
	}
	fmt.Printf("saved run %s (%dx%d field, %d pattern samples)\n",
		runID, field.Width, field.Height, len(pattern))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tscenario\ttimestamp\tgrid\tpeak_deg")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.1f\n",
			run.ID, run.Scenario, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.GridWidth, run.GridHeight, run.Metrics["peak_angle_deg"])
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run %s\nscenario %s\nsampled at t=%g (%dx%d grid)\n",
		meta.ID, meta.Scenario, meta.Time, meta.GridWidth, meta.GridHeight)
	for k, v := range meta.Metrics {
		fmt.Printf("  %s = %.4f\n", k, v)
	}

	pattern, err := store.LoadPattern(args[0])
	if err != nil || len(pattern) == 0 {
		return nil
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(analysis.Intensities(pattern),
		asciigraph.Height(12), asciigraph.Width(72),
		asciigraph.Caption("beam pattern")))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	sc, _, err := loadScene()
	if err != nil {
		return err
	}

	var svg string
	switch exportKind {
	case "heatmap":
		field := analysis.SampleField(sc, gridW, gridH, fieldT)
		svg = export.HeatmapSVG(field, sc.Snapshot(), 4)
	case "pattern":
		series := analysis.ScenePatternSeries(sc, -90, 90, stepDeg)
		svg = export.PatternSVG(series, 480, sc.Settings().DynamicRange)
	default:
		return fmt.Errorf("unknown kind %q (heatmap or pattern)", exportKind)
	}

	path := outPath
	if path == "" {
		path = exportKind + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	sc, _, err := loadScene()
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch exportKind {
	case "elements":
		return export.WriteElementsCSV(out, sc.Snapshot())
	case "pattern":
		series := analysis.ScenePatternSeries(sc, -90, 90, stepDeg)
		return export.WritePatternCSV(out, series)
	case "field":
		field := analysis.SampleField(sc, gridW, gridH, fieldT)
		return export.WriteFieldCSV(out, field)
	default:
		return fmt.Errorf("unknown kind %q (elements, pattern, or field)", exportKind)
	}
}

func serveAPI(cmd *cobra.Command, args []string) error {
	sc, name, err := loadScene()
	if err != nil {
		return err
	}

	log := logging.NewFromEnv()
	collector, err := server.NewCollector(nil)
	if err != nil {
		return err
	}

	srv := server.New(sc, log, collector)
	log.Info(context.Background(), "serving scene API",
		logging.String("addr", serveAddr),
		logging.String("scenario", name))
	return http.ListenAndServe(serveAddr, srv.Handler())
}

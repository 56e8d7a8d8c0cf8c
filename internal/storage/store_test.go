package storage

import (
	"math"
	"testing"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/analysis"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

func sampleInputs(t *testing.T) (*analysis.FieldSample, []analysis.PatternPoint) {
	t.Helper()
	s := scene.New()
	id := s.Add(phased.NewDefault())
	a, ok := s.Array(id)
	if !ok {
		t.Fatalf("expected array %d to exist", id)
	}

	field := analysis.SampleField(s, 8, 6, 0)
	pattern := analysis.PatternSeries(a, -90, 90, 5)
	return field, pattern
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	field, pattern := sampleInputs(t)
	metrics := map[string]float64{"peak_angle_deg": 0, "sidelobe_db": -13.2}

	runID, err := store.Save("default", 0.5, field, pattern, metrics)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario != "default" {
		t.Errorf("expected scenario default, got %q", meta.Scenario)
	}
	if meta.GridWidth != 8 || meta.GridHeight != 6 {
		t.Errorf("expected 8x6 grid, got %dx%d", meta.GridWidth, meta.GridHeight)
	}
	if meta.Time != 0.5 {
		t.Errorf("expected time 0.5, got %v", meta.Time)
	}
	if meta.Metrics["sidelobe_db"] != -13.2 {
		t.Errorf("expected sidelobe metric to survive, got %v", meta.Metrics["sidelobe_db"])
	}

	rows, ys, err := store.LoadField(runID)
	if err != nil {
		t.Fatalf("load field failed: %v", err)
	}
	if len(rows) != 6 || len(ys) != 6 {
		t.Fatalf("expected 6 field rows, got %d rows %d ys", len(rows), len(ys))
	}
	if len(rows[0]) != 8 {
		t.Errorf("expected 8 columns, got %d", len(rows[0]))
	}
	// CSV carries 6 decimals, so compare at that precision.
	if got, want := rows[2][3], field.At(3, 2); math.Abs(got-want) > 1e-5 {
		t.Errorf("expected cell (3,2) = %v, got %v", want, got)
	}

	loaded, err := store.LoadPattern(runID)
	if err != nil {
		t.Fatalf("load pattern failed: %v", err)
	}
	if len(loaded) != len(pattern) {
		t.Fatalf("expected %d pattern points, got %d", len(pattern), len(loaded))
	}
	if math.Abs(loaded[0].AngleDeg-(-90)) > 1e-9 {
		t.Errorf("expected first angle -90, got %v", loaded[0].AngleDeg)
	}
}

func TestListSkipsForeignDirectories(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	field, pattern := sampleInputs(t)
	if _, err := store.Save("steered", 0, field, pattern, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := store.Save("steered", 0, nil, pattern, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) < 1 {
		t.Fatalf("expected at least one run, got %d", len(runs))
	}
	for _, run := range runs {
		if run.Scenario != "steered" {
			t.Errorf("expected scenario steered, got %q", run.Scenario)
		}
	}
}

func TestListOnMissingBaseDir(t *testing.T) {
	store := New(t.TempDir() + "/never-created")

	runs, err := store.List()
	if err != nil {
		t.Fatalf("expected missing base dir to list empty, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

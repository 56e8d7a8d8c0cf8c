package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/analysis"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/phased"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

func testScene() *scene.Scene {
	s := scene.New()
	cfg := phased.DefaultConfig()
	cfg.NumElements = 4
	s.AddConfig(cfg)
	return s
}

func TestHeatmapSVGWellFormed(t *testing.T) {
	s := testScene()
	field := analysis.SampleField(s, 16, 12, 0)

	svg := HeatmapSVG(field, s.Snapshot(), 4)
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Errorf("expected XML prolog, got %q", svg[:min(40, len(svg))])
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Errorf("expected closing svg tag")
	}
	if !strings.Contains(svg, "<rect") {
		t.Errorf("expected at least one heatmap cell")
	}
	if !strings.Contains(svg, "<circle") {
		t.Errorf("expected element overlay circles")
	}
}

func TestHeatmapSVGEmptyField(t *testing.T) {
	if svg := HeatmapSVG(nil, scene.Snapshot{}, 4); svg != "" {
		t.Errorf("expected empty output for nil field, got %d bytes", len(svg))
	}
}

func TestPatternSVGWellFormed(t *testing.T) {
	s := testScene()
	a, _ := s.Array(1)
	series := analysis.PatternSeries(a, -90, 90, 1)

	svg := PatternSVG(series, 400, 40)
	if !strings.Contains(svg, "<path") {
		t.Errorf("expected pattern path")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Errorf("expected closing svg tag")
	}
	// 10, 20, 30 dB rings plus the outer circle.
	if got := strings.Count(svg, "<circle"); got != 4 {
		t.Errorf("expected 4 rings for 40 dB range, got %d", got)
	}
}

func TestPatternSVGRingCount(t *testing.T) {
	s := testScene()
	a, _ := s.Array(1)
	series := analysis.PatternSeries(a, -90, 90, 1)

	// Rings sit every 10 dB strictly above the floor; the floor maps to the
	// center, never a zero-radius circle.
	cases := []struct {
		dynamicRange float64
		rings        int
	}{
		{40, 4}, // 10, 20, 30 dB + outer
		{30, 3}, // 10, 20 dB + outer
		{25, 3}, // 10, 20 dB + outer
		{10, 1}, // outer only
	}
	for _, tc := range cases {
		svg := PatternSVG(series, 400, tc.dynamicRange)
		if got := strings.Count(svg, "<circle"); got != tc.rings {
			t.Errorf("range %g dB: expected %d circles, got %d", tc.dynamicRange, tc.rings, got)
		}
		if strings.Contains(svg, `r="0.0"`) {
			t.Errorf("range %g dB: emitted a zero-radius ring", tc.dynamicRange)
		}
	}
}

func TestRampColorEndpoints(t *testing.T) {
	if got := rampColor(0); got != "#1a0500" {
		t.Errorf("expected darkest stop at 0, got %s", got)
	}
	if got := rampColor(1); got != "#ffffff" {
		t.Errorf("expected white at 1, got %s", got)
	}
	if got := rampColor(-5); got != rampColor(0) {
		t.Errorf("expected clamp below zero, got %s", got)
	}
}

func TestWriteElementsCSV(t *testing.T) {
	s := testScene()
	var buf bytes.Buffer
	if err := WriteElementsCSV(&buf, s.Snapshot()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header + 4 element rows, got %d lines", len(lines))
	}
	if lines[0] != "array_id,element,x,y,phase,amplitude" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,0,") {
		t.Errorf("expected first row for array 1 element 0, got %s", lines[1])
	}
}

func TestWritePatternAndFieldCSV(t *testing.T) {
	s := testScene()
	a, _ := s.Array(1)

	var buf bytes.Buffer
	series := analysis.PatternSeries(a, -10, 10, 5)
	if err := WritePatternCSV(&buf, series); err != nil {
		t.Fatalf("pattern write failed: %v", err)
	}
	if got := len(strings.Split(strings.TrimSpace(buf.String()), "\n")); got != len(series)+1 {
		t.Errorf("expected %d pattern lines, got %d", len(series)+1, got)
	}

	buf.Reset()
	field := analysis.SampleField(s, 6, 4, 0)
	if err := WriteFieldCSV(&buf, field); err != nil {
		t.Fatalf("field write failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Errorf("expected header + 4 rows, got %d", len(lines))
	}
	if cols := strings.Count(lines[1], ",") + 1; cols != 7 {
		t.Errorf("expected y + 6 columns, got %d", cols)
	}
}

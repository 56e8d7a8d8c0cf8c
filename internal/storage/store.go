// Package storage persists sampling runs: each run is a directory holding
// metadata.json plus CSV sample files, so results stay inspectable with
// ordinary shell tools.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/analysis"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one persisted sampling run.
type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Time       float64            `json:"time"`
	GridWidth  int                `json:"grid_width"`
	GridHeight int                `json:"grid_height"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory named <scenario>_<unix>: metadata.json, the
// rasterized field as field.csv (one row per grid row, y coordinate first),
// and the beam-pattern sweep as pattern.csv. Either sample may be nil.
func (s *Store) Save(scenario string, t float64, field *analysis.FieldSample, pattern []analysis.PatternPoint, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Time:      t,
		Metrics:   metrics,
	}
	if field != nil {
		meta.GridWidth = field.Width
		meta.GridHeight = field.Height
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if field != nil {
		if err := writeField(filepath.Join(runDir, "field.csv"), field); err != nil {
			return "", err
		}
	}
	if len(pattern) > 0 {
		if err := writePattern(filepath.Join(runDir, "pattern.csv"), pattern); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeField(path string, field *analysis.FieldSample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"y"}
	for ix := 0; ix < field.Width; ix++ {
		x, _ := field.WorldAt(ix, 0)
		header = append(header, strconv.FormatFloat(x, 'f', 6, 64))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for iy := 0; iy < field.Height; iy++ {
		_, y := field.WorldAt(0, iy)
		row := []string{strconv.FormatFloat(y, 'f', 6, 64)}
		for ix := 0; ix < field.Width; ix++ {
			row = append(row, strconv.FormatFloat(field.At(ix, iy), 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writePattern(path string, pattern []analysis.PatternPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"angle_deg", "intensity"}); err != nil {
		return err
	}
	for _, p := range pattern {
		row := []string{
			strconv.FormatFloat(p.AngleDeg, 'f', 6, 64),
			strconv.FormatFloat(p.Intensity, 'f', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns metadata for every run under the base directory. Directories
// without a readable metadata.json are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadField reads back a run's field.csv: the grid values row by row, plus
// the y coordinate of each row. Unparseable cells are skipped rather than
// failing the whole load.
func (s *Store) LoadField(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "field.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	ys := make([]float64, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		y, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		ys = append(ys, y)

		row := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		rows = append(rows, row)
	}

	return rows, ys, nil
}

// LoadPattern reads back a run's pattern.csv.
func (s *Store) LoadPattern(runID string) ([]analysis.PatternPoint, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "pattern.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	out := make([]analysis.PatternPoint, 0, len(records))
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}
		angle, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		val, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		out = append(out, analysis.PatternPoint{AngleDeg: angle, Intensity: val})
	}
	return out, nil
}

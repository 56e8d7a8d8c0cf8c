package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/analysis"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

// WriteElementsCSV writes one row per element across the whole scene:
// owning array id, element index, world position, phase, amplitude.
func WriteElementsCSV(w io.Writer, snap scene.Snapshot) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"array_id", "element", "x", "y", "phase", "amplitude"}); err != nil {
		return err
	}
	for _, as := range snap.Arrays {
		for i, e := range as.Elements {
			row := []string{
				strconv.Itoa(as.ID),
				strconv.Itoa(i),
				strconv.FormatFloat(e.X, 'f', 6, 64),
				strconv.FormatFloat(e.Y, 'f', 6, 64),
				strconv.FormatFloat(e.Phase, 'f', 6, 64),
				strconv.FormatFloat(e.Amplitude, 'f', 6, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePatternCSV writes a beam-pattern sweep as angle/intensity rows.
func WritePatternCSV(w io.Writer, series []analysis.PatternPoint) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"angle_deg", "intensity"}); err != nil {
		return err
	}
	for _, p := range series {
		row := []string{
			strconv.FormatFloat(p.AngleDeg, 'f', 6, 64),
			strconv.FormatFloat(p.Intensity, 'f', 9, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFieldCSV writes a sampled field grid: one row per grid row with the
// row's y coordinate first, matching the run store layout.
func WriteFieldCSV(w io.Writer, field *analysis.FieldSample) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"y"}
	for ix := 0; ix < field.Width; ix++ {
		x, _ := field.WorldAt(ix, 0)
		header = append(header, strconv.FormatFloat(x, 'f', 6, 64))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for iy := 0; iy < field.Height; iy++ {
		_, y := field.WorldAt(0, iy)
		row := []string{strconv.FormatFloat(y, 'f', 6, 64)}
		for ix := 0; ix < field.Width; ix++ {
			row = append(row, strconv.FormatFloat(field.At(ix, iy), 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Package export renders scene samples to SVG and CSV for consumers outside
// the terminal: browsers, papers, spreadsheets.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/analysis"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/geom"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/scene"
)

// heatRamp is the five-stop black-body gradient the SVG heatmap interpolates
// across, matching the terminal thermal theme.
var heatRamp = [5][3]float64{
	{0x1a, 0x05, 0x00},
	{0x99, 0x11, 0x00},
	{0xff, 0x66, 0x00},
	{0xff, 0xcc, 0x00},
	{0xff, 0xff, 0xff},
}

// rampColor maps a normalized [0, 1] value onto the heat ramp.
func rampColor(v float64) string {
	v = geom.Clamp(v, 0, 1)
	pos := v * float64(len(heatRamp)-1)
	i := int(pos)
	if i >= len(heatRamp)-1 {
		c := heatRamp[len(heatRamp)-1]
		return fmt.Sprintf("#%02x%02x%02x", int(c[0]), int(c[1]), int(c[2]))
	}
	frac := pos - float64(i)
	a, b := heatRamp[i], heatRamp[i+1]
	return fmt.Sprintf("#%02x%02x%02x",
		int(a[0]+(b[0]-a[0])*frac),
		int(a[1]+(b[1]-a[1])*frac),
		int(a[2]+(b[2]-a[2])*frac))
}

// HeatmapSVG renders a sampled field as a grid of shaded cells, with the
// scene's elements overlaid as circles. cellPx sets the size of one grid
// cell in SVG pixels.
func HeatmapSVG(field *analysis.FieldSample, snap scene.Snapshot, cellPx float64) string {
	if field == nil || field.Width == 0 || field.Height == 0 {
		return ""
	}
	if cellPx <= 0 {
		cellPx = 4
	}

	width := float64(field.Width) * cellPx
	height := float64(field.Height) * cellPx

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for iy := 0; iy < field.Height; iy++ {
		for ix := 0; ix < field.Width; ix++ {
			v := field.Normalized(ix, iy)
			if v <= 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(ix)*cellPx, float64(iy)*cellPx, cellPx, cellPx, rampColor(v)))
		}
	}

	// Element overlay, one circle per element, in viewport coordinates.
	set := snap.Settings
	sb.WriteString(`<g fill="#00e0ff" stroke="#003344" stroke-width="0.5">
`)
	for _, as := range snap.Arrays {
		for _, e := range as.Elements {
			cx := (e.X - (set.FieldCenterX - set.FieldWidth/2)) / set.FieldWidth * width
			cy := (1 - (e.Y-(set.FieldCenterY-set.FieldHeight/2))/set.FieldHeight) * height
			if cx < 0 || cx > width || cy < 0 || cy > height {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, cellPx*0.4))
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PatternSVG renders a beam-pattern sweep as a polar plot: dB rings every
// 10 dB down to the dynamic range floor, and the pattern as a single path.
func PatternSVG(series []analysis.PatternPoint, size int, dynamicRange float64) string {
	if len(series) < 2 {
		return ""
	}
	if size <= 0 {
		size = 400
	}
	if dynamicRange <= 0 {
		dynamicRange = 40
	}

	s := float64(size)
	cx, cy := s/2, s/2
	radius := s/2 - 20

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="none" stroke="#224455" stroke-width="0.5">
`, size, size, size, size))

	// The floor itself sits at the center, so a ring there would have zero
	// radius.
	for db := 10.0; db < dynamicRange; db += 10 {
		r := radius * (1 - db/dynamicRange)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, r))
	}
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" stroke="#446688"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
<path fill="none" stroke="#ff6600" stroke-width="1.5" d="M`,
		cx, cy, radius,
		cx-radius, cy, cx+radius, cy,
		cx, cy-radius, cx, cy+radius))

	for i, p := range series {
		// Radius on a dB scale: full radius at 0 dB, center at the floor.
		db := -dynamicRange
		if p.Intensity > 0 {
			db = math.Max(10*math.Log10(p.Intensity), -dynamicRange)
		}
		r := radius * (1 + db/dynamicRange)

		// Bearing 0 points up, positive angles toward the right.
		rad := geom.Deg2Rad(p.AngleDeg)
		x := cx + r*math.Sin(rad)
		y := cy - r*math.Cos(rad)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

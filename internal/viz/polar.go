package viz

import (
	"math"

	"github.com/DSPWorks4/Mixer-Beamforming/internal/analysis"
	"github.com/DSPWorks4/Mixer-Beamforming/internal/geom"
)

// DrawPolar plots a beam-pattern sweep on a braille canvas as a polar
// curve: bearing 0 up, radius on a dB scale down to dynamicRange below the
// peak. Grid rings sit every 10 dB.
func DrawPolar(c *Canvas, series []analysis.PatternPoint, dynamicRange float64) {
	if len(series) < 2 {
		return
	}
	if dynamicRange <= 0 {
		dynamicRange = 40
	}

	w, h := c.SubWidth(), c.SubHeight()
	cx, cy := w/2, h-2

	// Braille cells are twice as tall as wide, so the x radius doubles to
	// keep rings round on screen.
	radius := h - 4
	if w/2-2 < radius*2 {
		radius = (w/2 - 2) / 2
	}
	if radius < 4 {
		radius = 4
	}

	for db := 10.0; db <= dynamicRange; db += 10 {
		drawArc(c, cx, cy, radius, 1-db/dynamicRange)
	}
	drawArc(c, cx, cy, radius, 1)

	prevX, prevY := 0, 0
	for i, p := range series {
		db := -dynamicRange
		if p.Intensity > 0 {
			db = math.Max(10*math.Log10(p.Intensity), -dynamicRange)
		}
		frac := 1 + db/dynamicRange

		rad := geom.Deg2Rad(p.AngleDeg)
		x := cx + int(float64(radius*2)*frac*math.Sin(rad))
		y := cy - int(float64(radius)*frac*math.Cos(rad))

		if i > 0 {
			c.DrawLine(prevX, prevY, x, y)
		}
		prevX, prevY = x, y
	}
}

// drawArc traces the upper half-circle at the given radius fraction.
func drawArc(c *Canvas, cx, cy, radius int, frac float64) {
	if frac <= 0 {
		return
	}
	steps := 90
	for i := 0; i <= steps; i++ {
		rad := -math.Pi/2 + math.Pi*float64(i)/float64(steps)
		x := cx + int(float64(radius*2)*frac*math.Sin(rad))
		y := cy - int(float64(radius)*frac*math.Cos(rad))
		c.Set(x, y)
	}
}

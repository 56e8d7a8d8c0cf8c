// Package geom provides the small 2-D vector and angle helpers shared by the
// array model and its renderers.
package geom

import "math"

// Vec2 is a point or displacement in the simulation plane.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) DistanceTo(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Heading returns the unit vector for a bearing measured in degrees from the
// +Y axis toward +X. Heading(0) is broadside (+Y), Heading(90) is +X.
func Heading(deg float64) Vec2 {
	s, c := math.Sincos(Deg2Rad(deg))
	return Vec2{X: s, Y: c}
}

// RotateBearing rotates v so that the local +Y axis maps onto Heading(deg).
// This is the transform that carries array-local coordinates into the world
// frame for an array oriented at the given bearing.
func RotateBearing(v Vec2, deg float64) Vec2 {
	s, c := math.Sincos(Deg2Rad(deg))
	return Vec2{X: v.X*c + v.Y*s, Y: -v.X*s + v.Y*c}
}

// WrapDeg reduces an angle to the interval [0, 360).
func WrapDeg(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// Clamp limits v to the interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

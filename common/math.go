package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	BaseWidth  = 960
	BaseHeight = 640
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// ClampMagnitude scales v down so its length never exceeds max.
func ClampMagnitude(v cp.Vector, max float64) cp.Vector {
	if max <= 0 {
		return cp.Vector{}
	}
	l := v.Length()
	if l <= max || l == 0 {
		return v
	}
	return v.Mult(max / l)
}

// Direction returns the unit vector from a to b, or zero when they coincide.
func Direction(from, to cp.Vector) cp.Vector {
	d := to.Sub(from)
	if d.LengthSq() < 1e-12 {
		return cp.Vector{}
	}
	return d.Normalize()
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

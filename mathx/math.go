package mathx

import "math"

// Small is the magnitude below which a vector is treated as zero.
const Small = 1e-8

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Approach moves current toward target by at most step.
func Approach(current, target, step float64) float64 {
	if step <= 0 {
		return current
	}
	if current < target {
		return math.Min(current+step, target)
	}
	return math.Max(current-step, target)
}

// NormalizeYaw wraps an angle in degrees into (-180, 180].
func NormalizeYaw(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ApproachYaw turns current toward target along the shorter arc by at most
// step degrees.
func ApproachYaw(current, target, step float64) float64 {
	delta := NormalizeYaw(target - current)
	if math.Abs(delta) <= step {
		return NormalizeYaw(target)
	}
	return NormalizeYaw(current + Sign(delta)*step)
}

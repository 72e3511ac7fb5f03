package game

import "math"

// mod is a floored modulo that always returns a value in [0, m).
func mod(v, m float32) float32 {
	r := float32(math.Mod(float64(v), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// clamp32 clamps v to [lo, hi].
func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sqrt32 is a float32 square root.
func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

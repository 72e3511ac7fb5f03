// Package systems contains the pure simulation helpers: vector math,
// steering primitives, and the spatial neighbor grid.
package systems

import "math"

// Vec2 is a 2D vector. All operations return new values; components are
// float32 to match the rest of the simulation state.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Mag returns the magnitude of v.
func (v Vec2) Mag() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// MagSq returns the squared magnitude of v (avoids sqrt in hot paths).
func (v Vec2) MagSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to the zero vector.
func (v Vec2) Normalize() Vec2 {
	mag := v.Mag()
	if mag > 0 {
		return Vec2{v.X / mag, v.Y / mag}
	}
	return Vec2{}
}

// Limit returns v clamped so its magnitude does not exceed max.
func (v Vec2) Limit(max float32) Vec2 {
	if v.Mag() > max {
		return v.Normalize().Scale(max)
	}
	return v
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

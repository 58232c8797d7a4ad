package vmath

import "math"

// Circle is a positioned radius used for overlap and spacing tests
type Circle struct {
	X, Y, R float64
}

// Overlaps reports circle-circle contact, inclusive of touching edges
// Squared-distance form avoids sqrt on the per-tick hot path
func Overlaps(a, b Circle) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	rs := a.R + b.R
	return dx*dx+dy*dy <= rs*rs
}

// Separated reports whether the circles keep at least gap between their edges
// Touching at exactly r_a + r_b + gap counts as separated
func Separated(a, b Circle, gap float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) >= a.R+b.R+gap
}

// ClampInside keeps a circle center within [r, w-r] x [r, h-r]
func ClampInside(x, y, r, w, h float64) (float64, float64) {
	return Clamp(x, r, w-r), Clamp(y, r, h-r)
}

package core

import "math"

// Ray is a half-line with a valid parametric interval [MinT, MaxT].
//
// MaxT only ever shrinks while a query is running: every confirmed hit
// writes its distance into MaxT so that later candidates must be closer.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	MinT      float64
	MaxT      float64
	Depth     int // remaining bounce budget
}

// NewRay creates a ray covering [0, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, MinT: 0, MaxT: math.Inf(1)}
}

// NewRayWithDepth creates a ray covering [0, +Inf) with the given bounce budget
func NewRayWithDepth(origin, direction Vec3, depth int) Ray {
	r := NewRay(origin, direction)
	r.Depth = depth
	return r
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Accepts reports whether t lies inside the ray's active interval.
// NaN is never accepted.
func (r Ray) Accepts(t float64) bool {
	return t >= r.MinT && t <= r.MaxT
}

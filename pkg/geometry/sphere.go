package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
	bsdf   material.BSDF
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, bsdf material.BSDF) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		bsdf:   bsdf,
	}
}

// solve returns the discriminant and both roots (t1 <= t2) of
// a*t^2 + b*t + c = 0 for this sphere
func (s *Sphere) solve(ray core.Ray) (discriminant, t1, t2 float64) {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant = b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return discriminant, math.NaN(), math.NaN()
	}

	sqrtD := math.Sqrt(discriminant)
	return discriminant, (-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)
}

// HasIntersection tests if the ray hits the sphere inside [MinT, MaxT] and
// shrinks ray.MaxT to the nearest accepted root
func (s *Sphere) HasIntersection(ray *core.Ray) bool {
	discriminant, t1, t2 := s.solve(*ray)
	if discriminant < 0 {
		return false
	}

	// Try the closer root first
	switch {
	case ray.Accepts(t1):
		ray.MaxT = t1
	case ray.Accepts(t2):
		ray.MaxT = t2
	default:
		return false
	}
	return true
}

// Intersect tests if the ray hits the sphere and fills in the hit data
func (s *Sphere) Intersect(ray *core.Ray) (Intersection, bool) {
	if !s.HasIntersection(ray) {
		return Intersection{}, false
	}

	point := ray.At(ray.MaxT)
	return Intersection{
		T:         ray.MaxT,
		Normal:    point.Subtract(s.Center).Normalize(),
		Primitive: s,
		BSDF:      s.bsdf,
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.BoundingBox {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewBoundingBox(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// BSDF returns the material assigned at construction
func (s *Sphere) BSDF() material.BSDF {
	return s.bsdf
}

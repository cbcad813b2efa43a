package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// EstimateRadiance returns the radiance arriving along ray
	EstimateRadiance(ray core.Ray, sampler core.Sampler) core.Spectrum
}

// Accelerator answers ray queries against scene geometry.
// *geometry.BVHAccel is the production implementation.
type Accelerator interface {
	Intersect(ray *core.Ray) (geometry.Intersection, bool)
	HasIntersection(ray *core.Ray) bool
}

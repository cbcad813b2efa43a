package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Primitive is a piece of geometry the acceleration structure can index.
//
// Both intersection queries take the ray by pointer: a successful test
// shrinks ray.MaxT to the hit distance, even for HasIntersection.
type Primitive interface {
	BoundingBox() core.BoundingBox
	HasIntersection(ray *core.Ray) bool
	Intersect(ray *core.Ray) (Intersection, bool)
	BSDF() material.BSDF
}

// Intersection describes the nearest surface hit found by a query
type Intersection struct {
	T         float64       // Parameter t along the ray
	Normal    core.Vec3     // Unit surface normal at the hit point
	Primitive Primitive     // The primitive that was hit
	BSDF      material.BSDF // Material response at the hit point
}

// Point returns the hit point on ray
func (i Intersection) Point(ray core.Ray) core.Vec3 {
	return ray.At(i.T)
}

package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Triangle represents a single triangle with per-vertex normals
type Triangle struct {
	P1, P2, P3 core.Vec3 // The three vertices
	N1, N2, N3 core.Vec3 // Shading normals at each vertex
	bsdf       material.BSDF
	bbox       core.BoundingBox // Cached bounding box
}

// NewTriangle creates a triangle with explicit vertex normals
func NewTriangle(p1, p2, p3, n1, n2, n3 core.Vec3, bsdf material.BSDF) *Triangle {
	return &Triangle{
		P1:   p1,
		P2:   p2,
		P3:   p3,
		N1:   n1,
		N2:   n2,
		N3:   n3,
		bsdf: bsdf,
		bbox: core.NewBoundingBoxFromPoints(p1, p2, p3),
	}
}

// NewFlatTriangle creates a triangle whose vertex normals all equal the
// geometric normal (p2-p1) x (p3-p1)
func NewFlatTriangle(p1, p2, p3 core.Vec3, bsdf material.BSDF) *Triangle {
	n := p2.Subtract(p1).Cross(p3.Subtract(p1)).Normalize()
	return NewTriangle(p1, p2, p3, n, n, n, bsdf)
}

// barycentric solves for the ray parameter t and the barycentric weights of
// the hit point using two cross products (Moller-Trumbore). A ray parallel to
// the triangle divides by zero and yields non-finite values, which the
// acceptance test in HasIntersection rejects.
func (tr *Triangle) barycentric(ray core.Ray) (t, b1, b2, b3 float64) {
	e2 := tr.P2.Subtract(tr.P1)
	e3 := tr.P3.Subtract(tr.P1)
	s := ray.Origin.Subtract(tr.P1)

	s2 := ray.Direction.Cross(e3)
	s3 := s.Cross(e2)
	denominator := s2.Dot(e2)

	t = s3.Dot(e3) / denominator
	b2 = s2.Dot(s) / denominator
	b3 = s3.Dot(ray.Direction) / denominator
	b1 = 1 - b2 - b3
	return t, b1, b2, b3
}

// insideOpenUnit reports whether w lies in (0, 1). Edge-exact hits are
// rejected and NaN fails every comparison.
func insideOpenUnit(w float64) bool {
	return w > 0 && w < 1
}

// HasIntersection tests if the ray hits the triangle inside [MinT, MaxT] and
// shrinks ray.MaxT to the hit distance
func (tr *Triangle) HasIntersection(ray *core.Ray) bool {
	t, b1, b2, b3 := tr.barycentric(*ray)
	if !insideOpenUnit(b1) || !insideOpenUnit(b2) || !insideOpenUnit(b3) {
		return false
	}
	if !ray.Accepts(t) {
		return false
	}

	ray.MaxT = t
	return true
}

// Intersect tests if the ray hits the triangle and interpolates the shading
// normal from the vertex normals
func (tr *Triangle) Intersect(ray *core.Ray) (Intersection, bool) {
	t, b1, b2, b3 := tr.barycentric(*ray)
	if !insideOpenUnit(b1) || !insideOpenUnit(b2) || !insideOpenUnit(b3) || !ray.Accepts(t) {
		return Intersection{}, false
	}
	ray.MaxT = t

	normal := tr.N1.Multiply(b1).Add(tr.N2.Multiply(b2)).Add(tr.N3.Multiply(b3)).Normalize()
	return Intersection{
		T:         t,
		Normal:    normal,
		Primitive: tr,
		BSDF:      tr.bsdf,
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (tr *Triangle) BoundingBox() core.BoundingBox {
	return tr.bbox
}

// BSDF returns the material shared with the defining mesh
func (tr *Triangle) BSDF() material.BSDF {
	return tr.bsdf
}

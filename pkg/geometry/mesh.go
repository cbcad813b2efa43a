package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Mesh owns vertex data shared by a set of triangles. Triangles are indexed
// by vertex triples and share the mesh's BSDF.
type Mesh struct {
	Positions []core.Vec3
	Normals   []core.Vec3 // Per-vertex shading normals, parallel to Positions
	Indices   []int       // Three vertex indices per triangle
	bsdf      material.BSDF
}

// NewMesh validates the index buffer and creates a mesh. When normals is nil,
// area-weighted vertex normals are computed from the faces.
func NewMesh(positions, normals []core.Vec3, indices []int, bsdf material.BSDF) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("geometry: mesh index count %d is not a multiple of 3", len(indices))
	}
	if normals != nil && len(normals) != len(positions) {
		return nil, fmt.Errorf("geometry: mesh has %d normals for %d positions", len(normals), len(positions))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(positions) {
			return nil, fmt.Errorf("geometry: mesh index %d at %d out of range [0, %d)", idx, i, len(positions))
		}
	}

	m := &Mesh{
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
		bsdf:      bsdf,
	}
	if m.Normals == nil {
		m.Normals = m.vertexNormals()
	}
	return m, nil
}

// vertexNormals accumulates unnormalized face normals (whose length is twice
// the face area) at each vertex
func (m *Mesh) vertexNormals() []core.Vec3 {
	normals := make([]core.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i1, i2, i3 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p1, p2, p3 := m.Positions[i1], m.Positions[i2], m.Positions[i3]
		face := p2.Subtract(p1).Cross(p3.Subtract(p1))
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
		normals[i3] = normals[i3].Add(face)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Primitives creates one Triangle per index triple
func (m *Mesh) Primitives() []Primitive {
	prims := make([]Primitive, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i1, i2, i3 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		prims = append(prims, NewTriangle(
			m.Positions[i1], m.Positions[i2], m.Positions[i3],
			m.Normals[i1], m.Normals[i2], m.Normals[i3],
			m.bsdf,
		))
	}
	return prims
}

// NewQuadMesh creates a flat two-triangle mesh covering the parallelogram
// corner + s*u + t*v, facing normalize(u x v)
func NewQuadMesh(corner, u, v core.Vec3, bsdf material.BSDF) *Mesh {
	n := u.Cross(v).Normalize()
	positions := []core.Vec3{
		corner,
		corner.Add(u),
		corner.Add(u).Add(v),
		corner.Add(v),
	}
	normals := []core.Vec3{n, n, n, n}
	indices := []int{0, 1, 2, 0, 2, 3}
	return &Mesh{Positions: positions, Normals: normals, Indices: indices, bsdf: bsdf}
}

// NewSphereMesh tessellates a sphere into a latitude/longitude grid with
// smooth vertex normals
func NewSphereMesh(center core.Vec3, radius float64, rings, segments int, bsdf material.BSDF) *Mesh {
	rings = max(rings, 2)
	segments = max(segments, 3)

	var positions, normals []core.Vec3
	for r := 0; r <= rings; r++ {
		theta := math.Pi * float64(r) / float64(rings)
		for s := 0; s <= segments; s++ {
			phi := 2 * math.Pi * float64(s) / float64(segments)
			n := core.NewVec3(math.Sin(theta)*math.Cos(phi), math.Cos(theta), math.Sin(theta)*math.Sin(phi))
			positions = append(positions, center.Add(n.Multiply(radius)))
			normals = append(normals, n)
		}
	}

	var indices []int
	stride := segments + 1
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := r*stride + s
			b := a + stride
			// Skip the degenerate triangles at the poles
			if r != 0 {
				indices = append(indices, a, a+1, b)
			}
			if r != rings-1 {
				indices = append(indices, a+1, b+1, b)
			}
		}
	}

	return &Mesh{Positions: positions, Normals: normals, Indices: indices, bsdf: bsdf}
}

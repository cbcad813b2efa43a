package scene

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Primitives   []geometry.Primitive // Objects in the scene
	Lights       []lights.Light       // Lights in the scene
	BVH          *geometry.BVHAccel   // Acceleration structure, built by Preprocess
}

// NewScene creates an empty scene viewed through the given camera
func NewScene(name string, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
	}
}

// Add appends primitives to the scene
func (s *Scene) Add(prims ...geometry.Primitive) {
	s.Primitives = append(s.Primitives, prims...)
}

// AddMesh appends every triangle of a mesh
func (s *Scene) AddMesh(mesh *geometry.Mesh) {
	s.Primitives = append(s.Primitives, mesh.Primitives()...)
}

// AddQuad adds a two-triangle quad spanning corner + s*u + t*v
func (s *Scene) AddQuad(corner, u, v core.Vec3, bsdf material.BSDF) {
	s.AddMesh(geometry.NewQuadMesh(corner, u, v, bsdf))
}

// AddAreaLight adds a rectangular area light together with an emissive quad
// at the same place, so the light is visible to camera and bounce rays.
// Both emit from the u x v side only.
func (s *Scene) AddAreaLight(corner, u, v core.Vec3, radiance core.Spectrum) {
	s.AddQuad(corner, u, v, material.NewOneSidedEmission(radiance))
	s.Lights = append(s.Lights, lights.NewAreaLight(radiance, corner, u, v))
}

// AddLight appends a light that has no geometry
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// PrimitiveCount returns the number of primitives in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Primitives)
}

// Preprocess builds the acceleration structure
func (s *Scene) Preprocess(maxLeafSize int) {
	start := time.Now()
	s.BVH = geometry.NewBVHAccel(s.Primitives, maxLeafSize)

	stats := s.BVH.Stats()
	logger.Infof("%s: built BVH over %d primitives in %s (%d nodes, depth %d)",
		s.Name, stats.Primitives, time.Since(start), stats.TotalNodes, stats.MaxDepth)
}

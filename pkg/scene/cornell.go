package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// cornellCamera looks into the open front of the box
func cornellCamera(aspectRatio float64) geometry.CameraConfig {
	return geometry.CameraConfig{
		Position:    core.NewVec3(0, 1, 3.9), // In front of the open side
		LookAt:      core.NewVec3(0, 1, 0),   // Center of the box
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: aspectRatio,
	}
}

// addCornellBox adds the five walls of a box spanning x,z in [-1,1] and y in [0,2].
// The front (+z) side stays open.
func addCornellBox(s *Scene) {
	white := material.NewDiffuse(core.NewSpectrum(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewSpectrum(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewSpectrum(0.12, 0.45, 0.15))

	// Floor - XZ plane at y=0
	s.AddQuad(core.NewVec3(-1, 0, -1), core.NewVec3(0, 0, 2), core.NewVec3(2, 0, 0), white)
	// Ceiling - XZ plane at y=2
	s.AddQuad(core.NewVec3(-1, 2, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), white)
	// Back wall - XY plane at z=-1
	s.AddQuad(core.NewVec3(-1, 0, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), white)
	// Left wall (red) - YZ plane at x=-1
	s.AddQuad(core.NewVec3(-1, 0, -1), core.NewVec3(0, 2, 0), core.NewVec3(0, 0, 2), red)
	// Right wall (green) - YZ plane at x=1
	s.AddQuad(core.NewVec3(1, 0, -1), core.NewVec3(0, 0, 2), core.NewVec3(0, 2, 0), green)
}

// NewCornellScene creates the Cornell box with a mirror sphere, a diffuse
// sphere and a square area light just below the ceiling
func NewCornellScene(aspectRatio float64) *Scene {
	s := NewScene("cornell", cornellCamera(aspectRatio))
	addCornellBox(s)

	// Light faces down: u x v = -y
	s.AddAreaLight(
		core.NewVec3(-0.25, 1.98, -0.25),
		core.NewVec3(0.5, 0, 0),
		core.NewVec3(0, 0, 0.5),
		core.NewSpectrum(12, 10, 8),
	)

	s.Add(
		geometry.NewSphere(core.NewVec3(-0.45, 0.35, -0.35), 0.35, material.NewMirror(core.NewSpectrum(0.9, 0.9, 0.9))),
		geometry.NewSphere(core.NewVec3(0.45, 0.35, 0.3), 0.35, material.NewDiffuse(core.NewSpectrum(0.73, 0.73, 0.73))),
	)
	return s
}

// NewCornellMeshScene creates the Cornell box around a smooth tessellated
// sphere lit by a point light
func NewCornellMeshScene(aspectRatio float64) *Scene {
	s := NewScene("cornell-mesh", cornellCamera(aspectRatio))
	addCornellBox(s)

	s.AddMesh(geometry.NewSphereMesh(
		core.NewVec3(0, 0.6, -0.2), 0.6, 24, 48,
		material.NewDiffuse(core.NewSpectrum(0.3, 0.45, 0.8)),
	))
	s.AddLight(lights.NewPointLight(core.NewSpectrum(3, 3, 3), core.NewVec3(0, 1.8, 0.4)))
	return s
}

package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewEnclosureScene places the camera inside a uniformly emissive sphere.
// Every camera sample sees the same radiance, so adaptive sampling stops at
// its first check.
func NewEnclosureScene(aspectRatio float64) *Scene {
	s := NewScene("enclosure", geometry.CameraConfig{
		Position:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60.0,
		AspectRatio: aspectRatio,
	})
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 5, material.NewEmission(core.NewSpectrum(0.8, 0.8, 0.8))))
	return s
}

package lights

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DirectionalLight emits parallel rays travelling along Direction
type DirectionalLight struct {
	Radiance  core.Spectrum
	Direction core.Vec3 // Direction the light travels in
}

// NewDirectionalLight creates a new directional light
func NewDirectionalLight(radiance core.Spectrum, direction core.Vec3) *DirectionalLight {
	return &DirectionalLight{Radiance: radiance, Direction: direction.Normalize()}
}

func (dl *DirectionalLight) IsDelta() bool {
	return true
}

func (dl *DirectionalLight) SampleL(point core.Vec3, sampler core.Sampler) LightSample {
	return LightSample{
		Radiance:  dl.Radiance,
		Direction: dl.Direction.Negate(),
		Distance:  math.Inf(1),
		PDF:       1.0,
	}
}

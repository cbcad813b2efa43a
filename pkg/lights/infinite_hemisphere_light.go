package lights

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// InfiniteHemisphereLight is a uniform sky covering the hemisphere around Up
type InfiniteHemisphereLight struct {
	Radiance core.Spectrum
	frame    core.Frame
}

// NewInfiniteHemisphereLight creates a sky emitting radiance from every
// direction in the hemisphere around up
func NewInfiniteHemisphereLight(radiance core.Spectrum, up core.Vec3) *InfiniteHemisphereLight {
	return &InfiniteHemisphereLight{Radiance: radiance, frame: core.NewFrame(up.Normalize())}
}

func (il *InfiniteHemisphereLight) IsDelta() bool {
	return false
}

func (il *InfiniteHemisphereLight) SampleL(point core.Vec3, sampler core.Sampler) LightSample {
	local := core.SampleUniformHemisphere(sampler.Get2D())
	return LightSample{
		Radiance:  il.Radiance,
		Direction: il.frame.ToWorld(local),
		Distance:  math.Inf(1),
		PDF:       core.UniformHemispherePDF,
	}
}

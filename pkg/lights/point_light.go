package lights

import "github.com/df07/go-pathtracer/pkg/core"

// PointLight emits uniformly from a single point
type PointLight struct {
	Radiance core.Spectrum
	Position core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(radiance core.Spectrum, position core.Vec3) *PointLight {
	return &PointLight{Radiance: radiance, Position: position}
}

func (pl *PointLight) IsDelta() bool {
	return true
}

// SampleL returns the single direction toward the light
func (pl *PointLight) SampleL(point core.Vec3, sampler core.Sampler) LightSample {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}
	}

	return LightSample{
		Radiance:  pl.Radiance,
		Direction: toLight.Multiply(1.0 / distance),
		Distance:  distance,
		PDF:       1.0,
	}
}

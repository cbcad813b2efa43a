package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Diffuse represents a perfectly diffuse (Lambertian) surface
type Diffuse struct {
	Albedo core.Spectrum // Reflectance
}

// NewDiffuse creates a new diffuse material
func NewDiffuse(albedo core.Spectrum) *Diffuse {
	return &Diffuse{Albedo: albedo}
}

// F is constant over the hemisphere: albedo / pi
func (d *Diffuse) F(wo, wi core.Vec3) core.Spectrum {
	if core.CosTheta(wi) <= 0 || core.CosTheta(wo) <= 0 {
		return core.Spectrum{}
	}
	return d.Albedo.Multiply(1.0 / math.Pi)
}

// SampleF draws wi from a cosine-weighted hemisphere: pdf = cos(theta) / pi
func (d *Diffuse) SampleF(wo core.Vec3, sampler core.Sampler) (core.Vec3, float64, core.Spectrum) {
	wi := core.SampleCosineHemisphere(sampler.Get2D())
	pdf := core.CosTheta(wi) / math.Pi
	return wi, pdf, d.Albedo.Multiply(1.0 / math.Pi)
}

// Emission is zero for a non-emitting surface
func (d *Diffuse) Emission() core.Spectrum {
	return core.Spectrum{}
}

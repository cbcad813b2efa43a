package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Emission represents a light-emitting surface that does not reflect
type Emission struct {
	Radiance  core.Spectrum // Emitted radiance
	FrontOnly bool          // Emit only on the side the surface normal faces
}

// NewEmission creates an emissive material that radiates from both faces
func NewEmission(radiance core.Spectrum) *Emission {
	return &Emission{Radiance: radiance}
}

// NewOneSidedEmission creates an emissive material that radiates from the
// front face only, matching a rectangular area light
func NewOneSidedEmission(radiance core.Spectrum) *Emission {
	return &Emission{Radiance: radiance, FrontOnly: true}
}

// OneSided reports whether the back face is dark
func (e *Emission) OneSided() bool {
	return e.FrontOnly
}

// F is zero: lights don't reflect, they only emit
func (e *Emission) F(wo, wi core.Vec3) core.Spectrum {
	return core.Spectrum{}
}

// SampleF still returns a valid direction and pdf so callers never divide by
// zero, but the scattering value is zero
func (e *Emission) SampleF(wo core.Vec3, sampler core.Sampler) (core.Vec3, float64, core.Spectrum) {
	wi := core.SampleCosineHemisphere(sampler.Get2D())
	return wi, core.CosTheta(wi) / math.Pi, core.Spectrum{}
}

// Emission returns the emitted radiance
func (e *Emission) Emission() core.Spectrum {
	return e.Radiance
}

package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Mirror represents a perfect specular reflector
type Mirror struct {
	Reflectance core.Spectrum
}

// NewMirror creates a new mirror material
func NewMirror(reflectance core.Spectrum) *Mirror {
	return &Mirror{Reflectance: reflectance}
}

// F is a delta distribution, so evaluating it for an arbitrary pair is zero
func (m *Mirror) F(wo, wi core.Vec3) core.Spectrum {
	return core.Spectrum{}
}

// SampleF returns the mirrored direction with pdf 1. The value is divided by
// |cos(theta)| so the estimator's cosine factor cancels out.
func (m *Mirror) SampleF(wo core.Vec3, sampler core.Sampler) (core.Vec3, float64, core.Spectrum) {
	wi := reflect(wo)
	cosTheta := math.Abs(core.CosTheta(wi))
	if cosTheta == 0 {
		return wi, 1, core.Spectrum{}
	}
	return wi, 1, m.Reflectance.Multiply(1.0 / cosTheta)
}

// Emission is zero for a mirror
func (m *Mirror) Emission() core.Spectrum {
	return core.Spectrum{}
}

// reflect mirrors a local direction about the +Z normal
func reflect(wo core.Vec3) core.Vec3 {
	return core.NewVec3(-wo.X, -wo.Y, wo.Z)
}

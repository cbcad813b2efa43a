package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// BSDF describes how a surface scatters and emits light.
//
// All directions are unit vectors in the local shading frame of the hit
// point, where the surface normal is +Z and both wo and wi point away from
// the surface.
type BSDF interface {
	// F evaluates the scattering function for the pair (wo, wi)
	F(wo, wi core.Vec3) core.Spectrum

	// SampleF draws an incoming direction wi for wo and returns it together
	// with its pdf and the scattering function value for the pair
	SampleF(wo core.Vec3, sampler core.Sampler) (wi core.Vec3, pdf float64, f core.Spectrum)

	// Emission returns the radiance the surface emits on its own
	Emission() core.Spectrum
}

// Sided is implemented by emitters that can radiate from the front face only.
// The front face is the side the geometric normal points to.
type Sided interface {
	OneSided() bool
}

package lights

import "github.com/df07/go-pathtracer/pkg/core"

// Light is a source that can be sampled for direct illumination
type Light interface {
	// IsDelta reports whether the light has zero angular or areal extent
	// (point, directional). Delta lights need exactly one sample per query.
	IsDelta() bool

	// SampleL samples incident radiance arriving at point from the light
	SampleL(point core.Vec3, sampler core.Sampler) LightSample
}

// LightSample contains a sampled light contribution toward a shading point
type LightSample struct {
	Radiance  core.Spectrum // Incident radiance along Direction
	Direction core.Vec3     // Unit direction FROM the shading point TO the light
	Distance  float64       // Distance to the sampled point, +Inf for lights at infinity
	PDF       float64       // Solid-angle density of this sample, 0 when unusable
}

package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// EpsD offsets secondary rays off the surface they leave and shortens shadow
// rays so they stop before the sampled light point
const EpsD = 1e-4

// ContinuationProbability is the Russian roulette survival probability
const ContinuationProbability = 0.65

// Config holds the estimator settings
type Config struct {
	MaxRayDepth            int  // Bounce budget given to camera rays
	SamplesPerAreaLight    int  // Samples per non-delta light per shading point
	DirectHemisphereSample bool // Estimate direct light by hemisphere sampling instead of light sampling
}

// DefaultConfig returns the estimator defaults
func DefaultConfig() Config {
	return Config{
		MaxRayDepth:         5,
		SamplesPerAreaLight: 4,
	}
}

// PathTracer estimates radiance with unidirectional path tracing, direct
// light estimation at every vertex and Russian roulette termination
type PathTracer struct {
	accel  Accelerator
	lights []lights.Light
	config Config
}

// NewPathTracer creates a path tracer over accel lit by sceneLights
func NewPathTracer(accel Accelerator, sceneLights []lights.Light, config Config) *PathTracer {
	if config.SamplesPerAreaLight < 1 {
		config.SamplesPerAreaLight = 1
	}
	return &PathTracer{
		accel:  accel,
		lights: sceneLights,
		config: config,
	}
}

// Config returns the estimator settings
func (pt *PathTracer) Config() Config {
	return pt.config
}

// shadingContext holds per-hit values shared by the estimators
type shadingContext struct {
	point core.Vec3  // World-space hit point
	frame core.Frame // Local frame around the shading normal
	wo    core.Vec3  // Local direction back toward the ray origin
}

func newShadingContext(ray core.Ray, isect geometry.Intersection) shadingContext {
	// Shade the side the ray arrived from
	normal := isect.Normal
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
	}
	frame := core.NewFrame(normal)
	return shadingContext{
		point: ray.At(isect.T),
		frame: frame,
		wo:    frame.ToLocal(ray.Direction.Negate().Normalize()),
	}
}

// spawnRay returns a ray leaving point along direction, nudged off the surface
func spawnRay(point, direction core.Vec3) core.Ray {
	return core.NewRay(point.Add(direction.Multiply(EpsD)), direction)
}

// shadowRay returns a ray from point toward a light sample at distance.
// Both ends of the interval are pulled in by EpsD so neither the surface at
// point nor the emitter at the sampled point counts as an occluder.
func shadowRay(point, direction core.Vec3, distance float64) core.Ray {
	ray := core.NewRay(point, direction)
	ray.MinT = EpsD
	ray.MaxT = distance - EpsD
	return ray
}

// emitted returns the radiance a hit surface sends back along direction.
// One-sided emitters are dark when seen from behind.
func emitted(direction core.Vec3, isect geometry.Intersection) core.Spectrum {
	if sided, ok := isect.BSDF.(material.Sided); ok && sided.OneSided() && isect.Normal.Dot(direction) >= 0 {
		return core.Spectrum{}
	}
	return isect.BSDF.Emission()
}

// ZeroBounceRadiance is the light emitted by the hit surface itself
func (pt *PathTracer) ZeroBounceRadiance(ray core.Ray, isect geometry.Intersection) core.Spectrum {
	return emitted(ray.Direction, isect)
}

// OneBounceRadiance is direct illumination at the hit point
func (pt *PathTracer) OneBounceRadiance(ray core.Ray, isect geometry.Intersection, sampler core.Sampler) core.Spectrum {
	if pt.config.DirectHemisphereSample {
		return pt.EstimateDirectLightingHemisphere(ray, isect, sampler)
	}
	return pt.EstimateDirectLightingImportance(ray, isect, sampler)
}

// EstimateDirectLightingHemisphere samples directions uniformly over the
// hemisphere and gathers emission from whatever they hit. It draws as many
// samples as the light sampling estimator would for area lights.
func (pt *PathTracer) EstimateDirectLightingHemisphere(ray core.Ray, isect geometry.Intersection, sampler core.Sampler) core.Spectrum {
	numSamples := len(pt.lights) * pt.config.SamplesPerAreaLight
	if numSamples == 0 {
		return core.Spectrum{}
	}

	ctx := newShadingContext(ray, isect)
	var total core.Spectrum
	for i := 0; i < numSamples; i++ {
		wi := core.SampleUniformHemisphere(sampler.Get2D())
		sampleRay := spawnRay(ctx.point, ctx.frame.ToWorld(wi))

		hit, ok := pt.accel.Intersect(&sampleRay)
		if !ok {
			continue
		}
		emission := emitted(sampleRay.Direction, hit)
		if emission.IsBlack() {
			continue
		}

		f := isect.BSDF.F(ctx.wo, wi)
		total = total.Add(f.MultiplySpectrum(emission).Multiply(core.CosTheta(wi) / core.UniformHemispherePDF))
	}
	return total.Multiply(1.0 / float64(numSamples))
}

// EstimateDirectLightingImportance samples every light directly, one sample
// for delta lights and SamplesPerAreaLight otherwise. Each light's samples
// are averaged on their own and the per-light averages are summed.
func (pt *PathTracer) EstimateDirectLightingImportance(ray core.Ray, isect geometry.Intersection, sampler core.Sampler) core.Spectrum {
	ctx := newShadingContext(ray, isect)

	var total core.Spectrum
	for _, light := range pt.lights {
		numSamples := pt.config.SamplesPerAreaLight
		if light.IsDelta() {
			numSamples = 1
		}

		var lightTotal core.Spectrum
		for i := 0; i < numSamples; i++ {
			sample := light.SampleL(ctx.point, sampler)
			if sample.PDF <= 0 || sample.Radiance.IsBlack() {
				continue
			}

			wi := ctx.frame.ToLocal(sample.Direction)
			cosTheta := core.CosTheta(wi)
			if cosTheta < 0 {
				continue
			}

			shadow := shadowRay(ctx.point, sample.Direction, sample.Distance)
			if pt.accel.HasIntersection(&shadow) {
				continue
			}

			f := isect.BSDF.F(ctx.wo, wi)
			lightTotal = lightTotal.Add(f.MultiplySpectrum(sample.Radiance).Multiply(cosTheta / sample.PDF))
		}
		total = total.Add(lightTotal.Multiply(1.0 / float64(numSamples)))
	}
	return total
}

// AtLeastOneBounceRadiance is the light reaching the hit point after one or
// more bounces, bounded by ray.Depth. Paths longer than one bounce are
// continued by Russian roulette and reweighted by 1/p.
func (pt *PathTracer) AtLeastOneBounceRadiance(ray core.Ray, isect geometry.Intersection, sampler core.Sampler) core.Spectrum {
	switch {
	case ray.Depth <= 0:
		return pt.ZeroBounceRadiance(ray, isect)
	case ray.Depth == 1:
		return pt.OneBounceRadiance(ray, isect, sampler)
	}

	radiance := pt.OneBounceRadiance(ray, isect, sampler)

	ctx := newShadingContext(ray, isect)
	wi, pdf, f := isect.BSDF.SampleF(ctx.wo, sampler)
	if !core.CoinFlip(sampler, ContinuationProbability) {
		return radiance
	}
	if pdf <= 0 || f.IsBlack() {
		return radiance
	}

	next := spawnRay(ctx.point, ctx.frame.ToWorld(wi))
	next.Depth = ray.Depth - 1

	hit, ok := pt.accel.Intersect(&next)
	if !ok {
		return radiance
	}

	indirect := pt.AtLeastOneBounceRadiance(next, hit, sampler)
	weight := core.CosTheta(wi) / pdf / ContinuationProbability
	return radiance.Add(indirect.MultiplySpectrum(f).Multiply(weight))
}

// EstimateRadiance returns the radiance arriving along a camera ray. A ray
// with no bounce budget sees emission only.
func (pt *PathTracer) EstimateRadiance(ray core.Ray, sampler core.Sampler) core.Spectrum {
	isect, ok := pt.accel.Intersect(&ray)
	if !ok {
		return core.Spectrum{}
	}

	if ray.Depth <= 0 {
		return pt.ZeroBounceRadiance(ray, isect)
	}
	return pt.ZeroBounceRadiance(ray, isect).Add(pt.AtLeastOneBounceRadiance(ray, isect, sampler))
}

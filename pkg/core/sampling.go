package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms.
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a seedable Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewSource(seed))}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// CoinFlip returns true with probability p
func CoinFlip(sampler Sampler, p float64) bool {
	return sampler.Get1D() < p
}

// UniformHemispherePDF is the solid-angle density of SampleUniformHemisphere
const UniformHemispherePDF = 1.0 / (2.0 * math.Pi)

// SampleUniformHemisphere maps a 2D sample to a direction uniformly
// distributed over the +Z hemisphere of the local shading frame
func SampleUniformHemisphere(sample Vec2) Vec3 {
	cosTheta := sample.X
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
}

// SampleCosineHemisphere maps a 2D sample to a cosine-weighted direction over
// the +Z hemisphere of the local shading frame. Its pdf is cos(theta)/pi.
func SampleCosineHemisphere(sample Vec2) Vec3 {
	a := 2.0 * math.Pi * sample.X
	r := math.Sqrt(sample.Y)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	z := math.Sqrt(math.Max(0, 1.0-sample.Y))
	return NewVec3(x, y, z)
}

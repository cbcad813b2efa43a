package lights

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// AreaLight represents a one-sided rectangular emitter spanned by U and V
// from Corner. It emits toward Normal = normalize(U x V).
type AreaLight struct {
	Radiance core.Spectrum
	Corner   core.Vec3
	U, V     core.Vec3
	Normal   core.Vec3
	Area     float64 // Cached area for PDF calculations
}

// NewAreaLight creates a new rectangular area light
func NewAreaLight(radiance core.Spectrum, corner, u, v core.Vec3) *AreaLight {
	cross := u.Cross(v)
	return &AreaLight{
		Radiance: radiance,
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   cross.Normalize(),
		Area:     cross.Length(),
	}
}

func (al *AreaLight) IsDelta() bool {
	return false
}

// SampleL samples a point uniformly on the rectangle and converts the area
// density to solid angle: pdf = distance^2 / (area * |cos(theta_light)|)
func (al *AreaLight) SampleL(point core.Vec3, sampler core.Sampler) LightSample {
	sample := sampler.Get2D()
	samplePoint := al.Corner.Add(al.U.Multiply(sample.X)).Add(al.V.Multiply(sample.Y))

	toLight := samplePoint.Subtract(point)
	distanceSquared := toLight.LengthSquared()
	distance := math.Sqrt(distanceSquared)
	if distance == 0 || al.Area == 0 {
		return LightSample{}
	}
	direction := toLight.Multiply(1.0 / distance)

	// Only the front face emits: the light normal must face the shading point
	cosLight := al.Normal.Dot(direction.Negate())
	if cosLight <= 1e-8 {
		return LightSample{Direction: direction, Distance: distance}
	}

	return LightSample{
		Radiance:  al.Radiance,
		Direction: direction,
		Distance:  distance,
		PDF:       distanceSquared / (al.Area * cosLight),
	}
}

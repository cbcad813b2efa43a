package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Spectrum {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cubed LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB, clamped to [0, 1]
	clamp := func(v float64) float64 { return math.Max(0, math.Min(1, v)) }
	return core.NewSpectrum(
		clamp(+4.0767416621*l_-3.3077115913*m_+0.2309699292*s_),
		clamp(-1.2684380046*l_+2.6097574011*m_-0.3413193965*s_),
		clamp(-0.0041960863*l_-0.7034186147*m_+1.7076147010*s_),
	)
}

// NewSphereGridScene creates a 10x10 grid of spheres on a ground quad under
// a sky and a sun. Every seventh sphere is a mirror.
func NewSphereGridScene(aspectRatio float64) *Scene {
	s := NewScene("sphere-grid", geometry.CameraConfig{
		Position:    core.NewVec3(4.5, 6, 18),    // Back from the grid and slightly above
		LookAt:      core.NewVec3(4.5, 0.8, 4.5), // Center of grid, slightly lower
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: aspectRatio,
	})

	// Ground quad facing +y: u x v = (0,0,40) x (40,0,0) = (0,1600,0)
	s.AddQuad(
		core.NewVec3(-15.5, 0, -15.5),
		core.NewVec3(0, 0, 40),
		core.NewVec3(40, 0, 0),
		material.NewDiffuse(core.NewSpectrum(0.5, 0.5, 0.5)),
	)

	const gridSize = 10
	radius := 0.4
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			center := core.NewVec3(float64(i), radius, float64(j))

			var bsdf material.BSDF
			if (i*gridSize+j)%7 == 0 {
				bsdf = material.NewMirror(core.NewSpectrum(0.85, 0.85, 0.9))
			} else {
				hue := float64(i*gridSize+j) / float64(gridSize*gridSize) * 360
				bsdf = material.NewDiffuse(oklchToRGB(0.7, 0.15, hue))
			}
			s.Add(geometry.NewSphere(center, radius, bsdf))
		}
	}

	s.AddLight(lights.NewInfiniteHemisphereLight(core.NewSpectrum(0.4, 0.55, 0.8), core.NewVec3(0, 1, 0)))
	s.AddLight(lights.NewDirectionalLight(core.NewSpectrum(1.6, 1.5, 1.3), core.NewVec3(-0.4, -1, -0.6)))
	return s
}

package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// floor returns a large two-triangle diffuse quad at y=0 facing +y. Its
// diagonal runs along x=z, so test rays avoid that line.
func floor(albedo float64) []geometry.Primitive {
	mesh := geometry.NewQuadMesh(
		core.NewVec3(-5, 0, -5), core.NewVec3(0, 0, 10), core.NewVec3(10, 0, 0),
		material.NewDiffuse(core.Gray(albedo)),
	)
	return mesh.Primitives()
}

// downRay is a camera ray that hits the floor at (0.1, 0, 0.05)
func downRay(depth int) core.Ray {
	origin := core.NewVec3(0.1, 0.5, 1)
	target := core.NewVec3(0.1, 0, 0.05)
	return core.NewRayWithDepth(origin, target.Subtract(origin).Normalize(), depth)
}

func newTracer(prims []geometry.Primitive, sceneLights []lights.Light, config Config) *PathTracer {
	return NewPathTracer(geometry.NewBVHAccel(prims, geometry.DefaultMaxLeafSize), sceneLights, config)
}

func TestPathTracer_MissIsBlack(t *testing.T) {
	sampler := core.NewSeededSampler(42)
	ray := core.NewRayWithDepth(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), 5)

	empty := newTracer(nil, []lights.Light{lights.NewPointLight(core.Gray(1), core.NewVec3(0, 1, 0))}, DefaultConfig())
	if got := empty.EstimateRadiance(ray, sampler); !got.IsBlack() {
		t.Errorf("Expected black for an empty scene, got %v", got)
	}

	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewEmission(core.Gray(3)))
	pt := newTracer([]geometry.Primitive{sphere}, nil, DefaultConfig())
	if got := pt.EstimateRadiance(ray, sampler); !got.IsBlack() {
		t.Errorf("Expected black for a ray missing all geometry, got %v", got)
	}
}

func TestPathTracer_EmissionCountedOnce(t *testing.T) {
	emission := core.NewSpectrum(1, 2, 3)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewEmission(emission))
	pt := newTracer([]geometry.Primitive{sphere}, nil, DefaultConfig())
	sampler := core.NewSeededSampler(42)

	for _, depth := range []int{0, 1, 2, 5} {
		ray := core.NewRayWithDepth(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), depth)
		got := pt.EstimateRadiance(ray, sampler)
		if diff := cmp.Diff(emission, got, approx); diff != "" {
			t.Errorf("depth %d: radiance mismatch (-want +got):\n%s", depth, diff)
		}
	}
}

func TestPathTracer_DirectOnlyAtDepthOne(t *testing.T) {
	light := lights.NewPointLight(core.Gray(2), core.NewVec3(0.1, 1, 0.05))
	pt := newTracer(floor(0.5), []lights.Light{light}, DefaultConfig())
	sampler := core.NewSeededSampler(42)

	got := pt.EstimateRadiance(downRay(1), sampler)
	want := core.Gray(0.5 / math.Pi * 2)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("radiance mismatch (-want +got):\n%s", diff)
	}

	if got := pt.EstimateRadiance(downRay(0), sampler); !got.IsBlack() {
		t.Errorf("Expected no lighting with a zero bounce budget, got %v", got)
	}
}

func TestPathTracer_ImportanceSumsPerLightAverages(t *testing.T) {
	position := core.NewVec3(0.1, 1, 0.05)
	one := newTracer(floor(0.5), []lights.Light{
		lights.NewPointLight(core.Gray(1), position),
	}, DefaultConfig())
	two := newTracer(floor(0.5), []lights.Light{
		lights.NewPointLight(core.Gray(1), position),
		lights.NewPointLight(core.Gray(1), position),
	}, DefaultConfig())

	single := one.EstimateRadiance(downRay(1), core.NewSeededSampler(1))
	double := two.EstimateRadiance(downRay(1), core.NewSeededSampler(1))
	if diff := cmp.Diff(single.Multiply(2), double, approx); diff != "" {
		t.Errorf("two identical lights should double the direct light (-want +got):\n%s", diff)
	}
}

func TestPathTracer_ImportanceSkipsUnusableSamples(t *testing.T) {
	sampler := core.NewSeededSampler(42)

	below := newTracer(floor(0.5), []lights.Light{
		lights.NewPointLight(core.Gray(1), core.NewVec3(0.1, -1, 0.05)),
	}, DefaultConfig())
	if got := below.EstimateRadiance(downRay(1), sampler); !got.IsBlack() {
		t.Errorf("Expected a light below the surface to contribute nothing, got %v", got)
	}

	blocker := geometry.NewSphere(core.NewVec3(0.1, 0.5, 0.05), 0.1, material.NewDiffuse(core.Gray(0.5)))
	occluded := newTracer(append(floor(0.5), blocker), []lights.Light{
		lights.NewPointLight(core.Gray(1), core.NewVec3(0.1, 1, 0.05)),
	}, DefaultConfig())
	if got := occluded.EstimateRadiance(downRay(1), sampler); !got.IsBlack() {
		t.Errorf("Expected an occluded light to contribute nothing, got %v", got)
	}
}

// lightPanel returns a one-sided emissive quad at y=1 facing down and the
// matching area light. Its diagonal runs along x=z.
func lightPanel(radiance core.Spectrum) ([]geometry.Primitive, *lights.AreaLight) {
	corner := core.NewVec3(-0.25, 1, -0.25)
	u := core.NewVec3(0.5, 0, 0)
	v := core.NewVec3(0, 0, 0.5)
	mesh := geometry.NewQuadMesh(corner, u, v, material.NewOneSidedEmission(radiance))
	return mesh.Primitives(), lights.NewAreaLight(radiance, corner, u, v)
}

func TestPathTracer_DirectEstimatorsAgree(t *testing.T) {
	panel, light := lightPanel(core.Gray(5))
	prims := append(floor(0.5), panel...)

	config := DefaultConfig()
	config.SamplesPerAreaLight = 16

	importance := newTracer(prims, []lights.Light{light}, config)
	config.DirectHemisphereSample = true
	hemisphere := newTracer(prims, []lights.Light{light}, config)

	const trials = 20000
	sampler := core.NewSeededSampler(7)
	var sumImportance, sumHemisphere float64
	for i := 0; i < trials; i++ {
		sumImportance += importance.EstimateRadiance(downRay(1), sampler).Luminance()
		sumHemisphere += hemisphere.EstimateRadiance(downRay(1), sampler).Luminance()
	}
	meanImportance := sumImportance / trials
	meanHemisphere := sumHemisphere / trials

	if meanImportance <= 0 {
		t.Fatalf("Expected positive direct light, got %f", meanImportance)
	}
	if rel := math.Abs(meanHemisphere-meanImportance) / meanImportance; rel > 0.05 {
		t.Errorf("Estimators disagree: importance=%f hemisphere=%f (%.1f%%)", meanImportance, meanHemisphere, rel*100)
	}
}

func TestPathTracer_RussianRouletteUnbiased(t *testing.T) {
	// A camera ray reflects off a mirror floor onto a diffuse panel lit head-on
	// by a point light. The mirror gets no direct light, so the only signal is
	// the single roulette-weighted bounce.
	const reflectance, albedo, intensity = 0.8, 0.5, 1.0

	mirror := geometry.NewQuadMesh(
		core.NewVec3(-5, 0, -5), core.NewVec3(0, 0, 10), core.NewVec3(10, 0, 0),
		material.NewMirror(core.Gray(reflectance)),
	)
	panel := geometry.NewQuadMesh(
		core.NewVec3(-1, 1, 2), core.NewVec3(0, 2, 0), core.NewVec3(2, 0, 0),
		material.NewDiffuse(core.Gray(albedo)),
	)
	prims := append(mirror.Primitives(), panel.Primitives()...)
	light := lights.NewPointLight(core.Gray(intensity), core.NewVec3(0.3, 2, 0))
	pt := newTracer(prims, []lights.Light{light}, DefaultConfig())

	// Hits the mirror at (0.3, 0, 0) and the panel at (0.3, 2, 2)
	ray := core.NewRayWithDepth(core.NewVec3(0.3, 1, -1), core.NewVec3(0, -1, 1).Normalize(), 2)

	expected := reflectance * albedo / math.Pi * intensity
	survivor := expected / ContinuationProbability

	const trials = 20000
	sampler := core.NewSeededSampler(2024)
	var sum float64
	survived := 0
	for i := 0; i < trials; i++ {
		value := pt.EstimateRadiance(ray, sampler).R
		switch {
		case value == 0:
		case math.Abs(value-survivor) < 1e-9:
			survived++
		default:
			t.Fatalf("Unexpected estimate %f, expected 0 or %f", value, survivor)
		}
		sum += value
	}

	mean := sum / trials
	stdErr := survivor * math.Sqrt(ContinuationProbability*(1-ContinuationProbability)/trials)
	if math.Abs(mean-expected) > 4*stdErr {
		t.Errorf("Roulette estimate mean %f differs from %f by more than 4 standard errors (%f)", mean, expected, stdErr)
	}
	if rate := float64(survived) / trials; math.Abs(rate-ContinuationProbability) > 0.02 {
		t.Errorf("Expected survival rate near %f, got %f", ContinuationProbability, rate)
	}
}

func TestPathTracer_Deterministic(t *testing.T) {
	panel, light := lightPanel(core.Gray(5))
	pt := newTracer(append(floor(0.7), panel...), []lights.Light{light}, DefaultConfig())

	a := pt.EstimateRadiance(downRay(5), core.NewSeededSampler(99))
	b := pt.EstimateRadiance(downRay(5), core.NewSeededSampler(99))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed gave different estimates (-first +second):\n%s", diff)
	}
}

func TestPathTracer_LightPanelDoesNotShadowItself(t *testing.T) {
	panel, light := lightPanel(core.Gray(5))
	withPanel := newTracer(append(floor(0.5), panel...), []lights.Light{light}, DefaultConfig())
	lightOnly := newTracer(floor(0.5), []lights.Light{light}, DefaultConfig())

	// Floor hits below the panel, off to the side and at a grazing angle
	targets := []core.Vec3{
		core.NewVec3(0.1, 0, 0.05),
		core.NewVec3(0.37, 0, -0.81),
		core.NewVec3(3.3, 0, 1.7),
	}
	for _, target := range targets {
		origin := target.Add(core.NewVec3(0, 0.5, 1))
		ray := core.NewRayWithDepth(origin, target.Subtract(origin).Normalize(), 1)

		// Shadow tests draw no samples, so equal seeds see equal light samples
		var sumPanel, sumLight float64
		a, b := core.NewSeededSampler(11), core.NewSeededSampler(11)
		for i := 0; i < 200; i++ {
			sumPanel += withPanel.EstimateRadiance(ray, a).Luminance()
			sumLight += lightOnly.EstimateRadiance(ray, b).Luminance()
		}

		if sumLight <= 0 {
			t.Fatalf("%v: expected the light to reach the floor", target)
		}
		if rel := math.Abs(sumPanel-sumLight) / sumLight; rel > 1e-9 {
			t.Errorf("%v: emitter geometry shadows its own light: with panel %f, without %f", target, sumPanel, sumLight)
		}
	}
}

func TestPathTracer_OneSidedPanelDarkFromBehind(t *testing.T) {
	panel, light := lightPanel(core.Gray(5))
	ceiling := geometry.NewQuadMesh(
		core.NewVec3(-5, 1.5, -5), core.NewVec3(0, 0, 10), core.NewVec3(10, 0, 0),
		material.NewDiffuse(core.Gray(0.5)),
	)
	prims := append(ceiling.Primitives(), panel...)

	config := DefaultConfig()
	config.SamplesPerAreaLight = 16
	importance := newTracer(prims, []lights.Light{light}, config)
	config.DirectHemisphereSample = true
	hemisphere := newTracer(prims, []lights.Light{light}, config)

	sampler := core.NewSeededSampler(3)
	below := core.NewRayWithDepth(core.NewVec3(0.1, 0.5, 0.05), core.NewVec3(0, 1, 0), 0)
	if diff := cmp.Diff(core.Gray(5), importance.EstimateRadiance(below, sampler), approx); diff != "" {
		t.Errorf("front face radiance mismatch (-want +got):\n%s", diff)
	}

	// From the ceiling just above the panel only its back face is visible
	up := core.NewRayWithDepth(core.NewVec3(0.1, 1.2, 0.05), core.NewVec3(0, 1, 0), 1)
	for i := 0; i < 100; i++ {
		if got := importance.EstimateRadiance(up, sampler); !got.IsBlack() {
			t.Fatalf("Expected no light behind the panel from light sampling, got %v", got)
		}
		if got := hemisphere.EstimateRadiance(up, sampler); !got.IsBlack() {
			t.Fatalf("Expected no light behind the panel from hemisphere sampling, got %v", got)
		}
	}
}

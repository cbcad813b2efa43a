package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestDiffuse_F(t *testing.T) {
	diffuse := NewDiffuse(core.NewSpectrum(0.5, 0.25, 1))
	wo := core.NewVec3(0, 0, 1)

	got := diffuse.F(wo, core.NewVec3(0.6, 0, 0.8))
	want := core.NewSpectrum(0.5/math.Pi, 0.25/math.Pi, 1/math.Pi)
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("F mismatch (-want +got):\n%s", diff)
	}

	if below := diffuse.F(wo, core.NewVec3(0, 0, -1)); !below.IsBlack() {
		t.Errorf("Expected zero below the surface, got %v", below)
	}
}

func TestDiffuse_SampleF(t *testing.T) {
	diffuse := NewDiffuse(core.Gray(0.8))
	sampler := core.NewSeededSampler(42)
	wo := core.NewVec3(0, 0, 1)

	for i := 0; i < 100; i++ {
		wi, pdf, f := diffuse.SampleF(wo, sampler)
		if wi.Z < 0 {
			t.Fatalf("Sampled direction %v below the surface", wi)
		}
		if expected := wi.Z / math.Pi; math.Abs(pdf-expected) > 1e-10 {
			t.Errorf("PDF mismatch: got %f, expected %f", pdf, expected)
		}
		if diff := cmp.Diff(core.Gray(0.8/math.Pi), f, approx); diff != "" {
			t.Errorf("f mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestDiffuse_SampleFEstimatesAlbedo(t *testing.T) {
	// The one-sample estimator f*cos/pdf of a diffuse surface under constant
	// illumination equals the albedo exactly
	diffuse := NewDiffuse(core.NewSpectrum(0.7, 0.3, 0.3))
	sampler := core.NewSeededSampler(1)
	wo := core.NewVec3(0, 0, 1)

	for i := 0; i < 50; i++ {
		wi, pdf, f := diffuse.SampleF(wo, sampler)
		if pdf == 0 {
			continue
		}
		got := f.Multiply(core.CosTheta(wi) / pdf)
		if diff := cmp.Diff(diffuse.Albedo, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("Estimate mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestEmission(t *testing.T) {
	radiance := core.NewSpectrum(15, 15, 10)
	emission := NewEmission(radiance)

	if emission.OneSided() {
		t.Error("Expected NewEmission to emit from both faces")
	}
	if !NewOneSidedEmission(radiance).OneSided() {
		t.Error("Expected NewOneSidedEmission to emit from the front face only")
	}
	if emission.Emission() != radiance {
		t.Errorf("Expected emission %v, got %v", radiance, emission.Emission())
	}
	if f := emission.F(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)); !f.IsBlack() {
		t.Errorf("Expected zero reflectance, got %v", f)
	}

	_, pdf, f := emission.SampleF(core.NewVec3(0, 0, 1), core.NewSeededSampler(5))
	if !f.IsBlack() {
		t.Errorf("Expected zero sampled reflectance, got %v", f)
	}
	if pdf < 0 {
		t.Errorf("Expected non-negative pdf, got %f", pdf)
	}
}

func TestMirror_SampleF(t *testing.T) {
	mirror := NewMirror(core.Gray(0.9))
	wo := core.NewVec3(0.6, 0, 0.8)

	wi, pdf, f := mirror.SampleF(wo, core.NewSeededSampler(0))
	if diff := cmp.Diff(core.NewVec3(-0.6, 0, 0.8), wi, approx); diff != "" {
		t.Errorf("Reflected direction mismatch (-want +got):\n%s", diff)
	}
	if pdf != 1 {
		t.Errorf("Expected pdf 1, got %f", pdf)
	}

	// f * cos / pdf must reduce to the reflectance
	got := f.Multiply(core.CosTheta(wi) / pdf)
	if diff := cmp.Diff(core.Gray(0.9), got, approx); diff != "" {
		t.Errorf("Throughput mismatch (-want +got):\n%s", diff)
	}

	if !mirror.F(wo, wi).IsBlack() || !mirror.Emission().IsBlack() {
		t.Error("Expected delta mirror to have zero F and zero emission")
	}
}

package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/google/go-cmp/cmp"
)

func unitTriangle() *Triangle {
	return NewFlatTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
}

func TestTriangle_CentroidHit(t *testing.T) {
	tri := unitTriangle()
	ray := core.NewRay(core.NewVec3(1.0/3, 1.0/3, 1), core.NewVec3(0, 0, -1))

	tHit, b1, b2, b3 := tri.barycentric(ray)
	for i, b := range []float64{b1, b2, b3} {
		if math.Abs(b-1.0/3) > 1e-9 {
			t.Errorf("Expected barycentric weight %d = 1/3, got %f", i+1, b)
		}
	}
	if math.Abs(tHit-1) > 1e-9 {
		t.Errorf("Expected t=1, got %f", tHit)
	}

	isect, ok := tri.Intersect(&ray)
	if !ok {
		t.Fatal("Expected hit through the centroid")
	}
	if ray.MaxT != isect.T {
		t.Errorf("Expected MaxT=%f after hit, got %f", isect.T, ray.MaxT)
	}
	if diff := cmp.Diff(core.NewVec3(0, 0, 1), isect.Normal, approx); diff != "" {
		t.Errorf("normal mismatch (-want +got):\n%s", diff)
	}
}

func TestTriangle_Rejections(t *testing.T) {
	tri := unitTriangle()

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"outside", core.NewRay(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, -1))},
		{"exactly on edge", core.NewRay(core.NewVec3(0.5, 0, 1), core.NewVec3(0, 0, -1))},
		{"behind origin", core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, -1))},
		{"parallel in plane", core.NewRay(core.NewVec3(-1, 0.2, 0), core.NewVec3(1, 0, 0))},
		{"parallel above plane", core.NewRay(core.NewVec3(-1, 0.2, 1), core.NewVec3(1, 0, 0))},
		{"beyond MaxT", core.Ray{Origin: core.NewVec3(0.25, 0.25, 1), Direction: core.NewVec3(0, 0, -1), MaxT: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := tt.ray
			if tri.HasIntersection(&ray) {
				t.Error("Expected HasIntersection to reject")
			}
			if _, ok := tri.Intersect(&ray); ok {
				t.Error("Expected Intersect to reject")
			}
			if ray.MaxT != tt.ray.MaxT {
				t.Errorf("MaxT changed on a miss: %f -> %f", tt.ray.MaxT, ray.MaxT)
			}
		})
	}
}

func TestTriangle_InterpolatedNormal(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1),
		nil,
	)
	ray := core.NewRay(core.NewVec3(1.0/3, 1.0/3, 1), core.NewVec3(0, 0, -1))

	isect, ok := tri.Intersect(&ray)
	if !ok {
		t.Fatal("Expected hit")
	}
	want := core.NewVec3(1, 1, 1).Normalize()
	if diff := cmp.Diff(want, isect.Normal, approx); diff != "" {
		t.Errorf("normal mismatch (-want +got):\n%s", diff)
	}
}

func TestTriangle_BoundingBox(t *testing.T) {
	tri := NewFlatTriangle(core.NewVec3(-1, 2, 0), core.NewVec3(3, 0, 1), core.NewVec3(0, -2, 5), nil)
	want := core.NewBoundingBox(core.NewVec3(-1, -2, 0), core.NewVec3(3, 2, 5))
	if diff := cmp.Diff(want, tri.BoundingBox()); diff != "" {
		t.Errorf("bounding box mismatch (-want +got):\n%s", diff)
	}
}

package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.DefaultMaterial())
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if dist, ok := sphere.Intersect(ray); ok {
		t.Errorf("Expected miss, but got hit at t=%f", dist)
	}
}

func TestSphere_Intersect(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -10), 2.0, material.DefaultMaterial())

	tests := []struct {
		name         string
		rayOrigin    core.Vec3
		rayDirection core.Vec3
		expectHit    bool
		expectedT    float64
	}{
		{
			name:         "head on from outside",
			rayOrigin:    core.NewVec3(0, 0, 0),
			rayDirection: core.NewVec3(0, 0, -1),
			expectHit:    true,
			expectedT:    8.0, // |center-origin| - radius
		},
		{
			name:         "from inside uses far root",
			rayOrigin:    core.NewVec3(0, 0, -10),
			rayDirection: core.NewVec3(0, 0, -1),
			expectHit:    true,
			expectedT:    2.0,
		},
		{
			name:         "sphere behind origin",
			rayOrigin:    core.NewVec3(0, 0, 0),
			rayDirection: core.NewVec3(0, 0, 1),
			expectHit:    false,
		},
		{
			name:         "tangent ray",
			rayOrigin:    core.NewVec3(2, 0, 0),
			rayDirection: core.NewVec3(0, 0, -1),
			expectHit:    true,
			expectedT:    10.0,
		},
		{
			name:         "origin on near surface",
			rayOrigin:    core.NewVec3(0, 0, -8),
			rayDirection: core.NewVec3(0, 0, -1),
			expectHit:    true,
			expectedT:    0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			dist, ok := sphere.Intersect(ray)

			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%t, got hit=%t (t=%f)", tt.expectHit, ok, dist)
			}
			if !ok {
				return
			}
			if math.Abs(dist-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, dist)
			}
		})
	}
}

func TestSphere_Intersect_TangentSingleRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1.0, material.DefaultMaterial())
	// Perpendicular distance from center to the ray equals the radius
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 0, -1))

	dist, ok := sphere.Intersect(ray)
	if !ok {
		t.Fatal("Expected tangent ray to hit")
	}
	if dist <= 0 {
		t.Errorf("Expected a positive distance, got %f", dist)
	}
	if math.Abs(dist-5.0) > 1e-9 {
		t.Errorf("Expected t=5, got t=%f", dist)
	}
}

func TestSphere_Intersect_UnnormalizedDirection(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -10), 2.0, material.DefaultMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -3))

	if _, ok := sphere.Intersect(ray); !ok {
		t.Error("Expected hit for unnormalized direction")
	}
}

func TestSphere_NormalAt(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 1, 1), 2.0, material.DefaultMaterial())

	normal := sphere.NormalAt(core.NewVec3(1, 3, 1))
	if normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("Expected normal (0,1,0), got %v", normal)
	}
}

func TestSphere_SharedMaterial(t *testing.T) {
	ivory := material.NewIvory()
	a := NewSphere(core.NewVec3(0, 0, 0), 1, ivory)
	b := NewSphere(core.NewVec3(5, 0, 0), 1, ivory)

	if a.Material != b.Material {
		t.Error("Expected spheres to share the same material instance")
	}
}

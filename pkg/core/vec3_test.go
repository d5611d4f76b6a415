package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(5, -3, 9)},
		{"Subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}

	if dot := a.Dot(b); dot != 12 {
		t.Errorf("Expected dot product 12, got %f", dot)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if math.Abs(v.X-0.6) > 1e-12 || math.Abs(v.Z-0.8) > 1e-12 {
		t.Errorf("Expected (0.6, 0, 0.8), got %v", v)
	}

	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("Expected zero vector to normalize to zero, got %v", zero)
	}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		incident Vec3
		normal   Vec3
		expected Vec3
	}{
		{"head on", NewVec3(0, 0, -1), NewVec3(0, 0, 1), NewVec3(0, 0, 1)},
		{"45 degrees", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"grazing", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reflect(tt.incident, tt.normal)
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestOffsetAlong(t *testing.T) {
	point := NewVec3(0, 1, 0)
	normal := NewVec3(0, 1, 0)

	out := OffsetAlong(point, normal, NewVec3(1, 1, 0), 0.001)
	if math.Abs(out.Y-1.001) > 1e-12 {
		t.Errorf("Expected offset above the surface, got %v", out)
	}

	in := OffsetAlong(point, normal, NewVec3(1, -1, 0), 0.001)
	if math.Abs(in.Y-0.999) > 1e-12 {
		t.Errorf("Expected offset below the surface, got %v", in)
	}

	// Tangent directions leave on the normal side
	tangent := OffsetAlong(point, normal, NewVec3(1, 0, 0), 0.001)
	if math.Abs(tangent.Y-1.001) > 1e-12 {
		t.Errorf("Expected tangent offset above the surface, got %v", tangent)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -1))
	if p := ray.At(2.5); p != NewVec3(1, 1, -1.5) {
		t.Errorf("Expected (1, 1, -1.5), got %v", p)
	}
}

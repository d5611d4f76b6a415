package material

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial()

	if m.Albedo != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected albedo (1,0,0), got %v", m.Albedo)
	}
	if m.DiffuseColor != (core.Vec3{}) {
		t.Errorf("Expected black diffuse color, got %v", m.DiffuseColor)
	}
	if m.SpecularExponent != 0 {
		t.Errorf("Expected exponent 0, got %f", m.SpecularExponent)
	}
	if m.IsReflective() {
		t.Error("Default material should not be reflective")
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		name       string
		material   *Material
		reflective bool
	}{
		{"ivory", NewIvory(), true},
		{"matte ivory", NewMatteIvory(), false},
		{"red rubber", NewRedRubber(), false},
		{"mirror", NewMirror(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.material.IsReflective() != tt.reflective {
				t.Errorf("Expected reflective=%t, got %t", tt.reflective, tt.material.IsReflective())
			}
			if tt.material.SpecularExponent <= 0 {
				t.Errorf("Expected positive specular exponent, got %f", tt.material.SpecularExponent)
			}
		})
	}
}

package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const testSceneTOML = `
name = "file-scene"
description = "two ivory spheres"

[materials.ivory]
albedo = [0.6, 0.3, 0.1]
diffuse_color = [0.4, 0.4, 0.3]
specular_exponent = 50.0

[[spheres]]
center = [-3.0, 0.0, -16.0]
radius = 2.0
material = "ivory"

[[spheres]]
center = [7.0, 5.0, -18.0]
radius = 4.0
material = "ivory"

[[lights]]
position = [-20.0, 20.0, 20.0]
intensity = 1.5
`

func TestDecode(t *testing.T) {
	s, err := Decode(strings.NewReader(testSceneTOML))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.Name != "file-scene" {
		t.Errorf("Expected name file-scene, got %q", s.Name)
	}
	if s.Description != "two ivory spheres" {
		t.Errorf("Expected description to be kept, got %q", s.Description)
	}
	if len(s.Spheres) != 2 || len(s.Lights) != 1 {
		t.Fatalf("Expected 2 spheres and 1 light, got %d and %d", len(s.Spheres), len(s.Lights))
	}
	if s.Spheres[0].Material != s.Spheres[1].Material {
		t.Error("Expected spheres naming the same material to share it")
	}

	ivory := s.Materials["ivory"]
	if ivory.Albedo != core.NewVec3(0.6, 0.3, 0.1) {
		t.Errorf("Unexpected albedo %v", ivory.Albedo)
	}
	if ivory.SpecularExponent != 50 {
		t.Errorf("Expected exponent 50, got %f", ivory.SpecularExponent)
	}
	if s.Lights[0].Position != core.NewVec3(-20, 20, 20) || s.Lights[0].Intensity != 1.5 {
		t.Errorf("Unexpected light %+v", s.Lights[0])
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name: "unknown material",
			input: `
[[spheres]]
center = [0.0, 0.0, -5.0]
radius = 1.0
material = "gold"
`,
		},
		{
			name: "short vector",
			input: `
[[lights]]
position = [1.0, 2.0]
intensity = 1.0
`,
		},
		{
			name:  "unknown key",
			input: `camera = "fisheye"`,
		},
		{
			name:  "malformed toml",
			input: `[[spheres`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected error, got none")
			}
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	original := NewMirrorScene()

	var buf bytes.Buffer
	if err := Encode(&buf, original); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v\n%s", err, buf.String())
	}

	if len(decoded.Spheres) != len(original.Spheres) {
		t.Fatalf("Expected %d spheres, got %d", len(original.Spheres), len(decoded.Spheres))
	}
	for i, sphere := range decoded.Spheres {
		want := original.Spheres[i]
		if sphere.Center != want.Center || sphere.Radius != want.Radius {
			t.Errorf("Sphere %d: expected %+v, got %+v", i, want, sphere)
		}
		if *sphere.Material != *want.Material {
			t.Errorf("Sphere %d: expected material %+v, got %+v", i, *want.Material, *sphere.Material)
		}
	}
	if len(decoded.Materials) != len(original.Materials) {
		t.Errorf("Expected %d materials, got %d", len(original.Materials), len(decoded.Materials))
	}
}

func TestLoad_NamesSceneAfterFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lonely-sphere.toml")
	content := `
[materials.rubber]
albedo = [0.9, 0.1, 0.0]
diffuse_color = [0.3, 0.1, 0.1]
specular_exponent = 10.0

[[spheres]]
center = [0.0, 0.0, -10.0]
radius = 1.0
material = "rubber"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Name != "lonely-sphere" {
		t.Errorf("Expected name lonely-sphere, got %q", s.Name)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

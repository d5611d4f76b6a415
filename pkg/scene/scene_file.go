package scene

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// File is the TOML representation of a scene. Spheres refer to materials by
// name so that one material table is shared by every sphere that names it.
//
//	name = "example"
//
//	[materials.ivory]
//	albedo = [0.6, 0.3, 0.1]
//	diffuse_color = [0.4, 0.4, 0.3]
//	specular_exponent = 50.0
//
//	[[spheres]]
//	center = [-3.0, 0.0, -16.0]
//	radius = 2.0
//	material = "ivory"
//
//	[[lights]]
//	position = [-20.0, 20.0, 20.0]
//	intensity = 1.5
type File struct {
	Name        string                  `toml:"name"`
	Description string                  `toml:"description,omitempty"`
	Materials   map[string]MaterialFile `toml:"materials"`
	Spheres     []SphereFile            `toml:"spheres"`
	Lights      []LightFile             `toml:"lights"`
}

// MaterialFile is a named material table
type MaterialFile struct {
	Albedo           []float64 `toml:"albedo"`
	DiffuseColor     []float64 `toml:"diffuse_color"`
	SpecularExponent float64   `toml:"specular_exponent"`
}

// SphereFile is a sphere entry
type SphereFile struct {
	Center   []float64 `toml:"center"`
	Radius   float64   `toml:"radius"`
	Material string    `toml:"material"`
}

// LightFile is a point light entry
type LightFile struct {
	Position  []float64 `toml:"position"`
	Intensity float64   `toml:"intensity"`
}

// Load reads a TOML scene file. A scene without a name is named after the file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Decode parses a TOML scene description
func Decode(r io.Reader) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var file File
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown scene keys: %v", undecoded)
	}

	return file.Build()
}

// Build converts the file representation into a scene
func (f *File) Build() (*Scene, error) {
	s := NewScene(f.Name)
	s.Description = f.Description

	for name, m := range f.Materials {
		albedo, err := toVec3(m.Albedo)
		if err != nil {
			return nil, fmt.Errorf("material %q albedo: %w", name, err)
		}
		color, err := toVec3(m.DiffuseColor)
		if err != nil {
			return nil, fmt.Errorf("material %q diffuse_color: %w", name, err)
		}
		s.AddMaterial(name, material.NewMaterial(albedo, color, m.SpecularExponent))
	}

	for i, sp := range f.Spheres {
		center, err := toVec3(sp.Center)
		if err != nil {
			return nil, fmt.Errorf("sphere %d center: %w", i, err)
		}
		mat, ok := s.Materials[sp.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, sp.Material)
		}
		s.AddSphere(center, sp.Radius, mat)
	}

	for i, l := range f.Lights {
		position, err := toVec3(l.Position)
		if err != nil {
			return nil, fmt.Errorf("light %d position: %w", i, err)
		}
		s.AddLight(position, l.Intensity)
	}

	return s, nil
}

// Encode writes the scene as TOML. Materials that were not registered by name
// are given generated names.
func Encode(w io.Writer, s *Scene) error {
	return toml.NewEncoder(w).Encode(ToFile(s))
}

// ToFile converts a scene into its file representation
func ToFile(s *Scene) *File {
	file := &File{
		Name:        s.Name,
		Description: s.Description,
		Materials:   make(map[string]MaterialFile),
	}

	names := make(map[*material.Material]string)
	registered := make([]string, 0, len(s.Materials))
	for name := range s.Materials {
		registered = append(registered, name)
	}
	sort.Strings(registered)
	for _, name := range registered {
		mat := s.Materials[name]
		if _, seen := names[mat]; !seen {
			names[mat] = name
			file.Materials[name] = fromMaterial(mat)
		}
	}

	for _, sphere := range s.Spheres {
		name, ok := names[sphere.Material]
		if !ok {
			name = fmt.Sprintf("material_%d", len(names)+1)
			names[sphere.Material] = name
			file.Materials[name] = fromMaterial(sphere.Material)
		}
		file.Spheres = append(file.Spheres, SphereFile{
			Center:   fromVec3(sphere.Center),
			Radius:   sphere.Radius,
			Material: name,
		})
	}

	for _, light := range s.Lights {
		file.Lights = append(file.Lights, LightFile{
			Position:  fromVec3(light.Position),
			Intensity: light.Intensity,
		})
	}

	return file
}

func fromMaterial(m *material.Material) MaterialFile {
	return MaterialFile{
		Albedo:           fromVec3(m.Albedo),
		DiffuseColor:     fromVec3(m.DiffuseColor),
		SpecularExponent: m.SpecularExponent,
	}
}

func toVec3(values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

func fromVec3(v core.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}

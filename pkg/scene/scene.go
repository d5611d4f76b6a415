package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultHorizon is the far-plane distance beyond which hits are ignored
const DefaultHorizon = 1000.0

// Scene contains all the elements needed for rendering. It is read-only once a
// render starts and may be shared between render workers.
type Scene struct {
	Name        string
	Description string
	Spheres     []*geometry.Sphere            // Scanned in order for every ray
	Lights      []*lights.PointLight          // Point lights in the scene
	Materials   map[string]*material.Material // Named materials shared by spheres
}

// NewScene creates an empty scene
func NewScene(name string) *Scene {
	return &Scene{
		Name:      name,
		Spheres:   make([]*geometry.Sphere, 0),
		Lights:    make([]*lights.PointLight, 0),
		Materials: make(map[string]*material.Material),
	}
}

// AddMaterial registers a named material and returns it for use by spheres
func (s *Scene) AddMaterial(name string, mat *material.Material) *material.Material {
	s.Materials[name] = mat
	return mat
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat *material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.Spheres = append(s.Spheres, sphere)
	return sphere
}

// AddLight appends a point light to the scene
func (s *Scene) AddLight(position core.Vec3, intensity float64) *lights.PointLight {
	light := lights.NewPointLight(position, intensity)
	s.Lights = append(s.Lights, light)
	return light
}

// Intersect finds the nearest sphere hit along the ray. Hits at or beyond the
// horizon are reported as misses. When two spheres are hit at exactly the same
// distance the one added first wins.
func (s *Scene) Intersect(ray core.Ray, horizon float64) (geometry.Hit, bool) {
	var closest *geometry.Sphere
	closestSoFar := math.MaxFloat64

	for _, sphere := range s.Spheres {
		if dist, ok := sphere.Intersect(ray); ok && dist < closestSoFar {
			closestSoFar = dist
			closest = sphere
		}
	}

	if closest == nil || closestSoFar >= horizon {
		return geometry.Hit{}, false
	}

	point := ray.At(closestSoFar)
	return geometry.Hit{
		Point:    point,
		Normal:   closest.NormalAt(point),
		Material: closest.Material,
		T:        closestSoFar,
	}, true
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Spheres)
}

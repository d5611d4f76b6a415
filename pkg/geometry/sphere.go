package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material // Shared with every other sphere using it
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect returns the distance along the ray to the nearest non-negative
// intersection with the sphere. The direction is expected to be normalized so
// the distance is in world units.
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	// Vector from ray origin to sphere center
	l := s.Center.Subtract(ray.Origin)

	// Projection of l onto the ray and squared distance from the center to the ray
	tca := l.Dot(ray.Direction)
	d2 := l.Dot(l) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return 0, false
	}

	// Half chord length; zero for a tangent ray
	thc := math.Sqrt(r2 - d2)
	t0 := tca - thc
	t1 := tca + thc

	// Origin inside the sphere or near root behind it: use the far root
	if t0 < 0 {
		t0 = t1
	}
	if t0 < 0 {
		return 0, false
	}
	return t0, true
}

// NormalAt returns the outward unit normal at a point on the surface
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

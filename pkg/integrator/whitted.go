package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// WhittedConfig contains the shading parameters
type WhittedConfig struct {
	MaxDepth   int       // Deepest recursion level that still resolves geometry
	Horizon    float64   // Hits at or beyond this distance are misses
	Bias       float64   // Offset applied to secondary ray origins along the normal
	Background core.Vec3 // Color returned for misses and exhausted rays
}

// DefaultWhittedConfig returns the reference shading parameters
func DefaultWhittedConfig() WhittedConfig {
	return WhittedConfig{
		MaxDepth:   2,
		Horizon:    scene.DefaultHorizon,
		Bias:       0.001,
		Background: core.NewVec3(0.2, 0.7, 0.8),
	}
}

// WhittedIntegrator shades hits with Lambert diffuse, Phong specular and hard
// shadows from point lights, and follows one mirror reflection per hit
type WhittedIntegrator struct {
	config WhittedConfig
}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator(config WhittedConfig) *WhittedIntegrator {
	return &WhittedIntegrator{config: config}
}

// Config returns the integrator's shading parameters
func (w *WhittedIntegrator) Config() WhittedConfig {
	return w.config
}

// RayColor computes the color for a primary ray
func (w *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene) core.Vec3 {
	return w.CastRay(ray, s, 0)
}

// CastRay computes the color seen along a ray at the given recursion depth.
// Past MaxDepth the background is returned without touching the scene.
func (w *WhittedIntegrator) CastRay(ray core.Ray, s *scene.Scene, depth int) core.Vec3 {
	if depth > w.config.MaxDepth {
		return w.config.Background
	}

	hit, ok := s.Intersect(ray, w.config.Horizon)
	if !ok {
		return w.config.Background
	}

	reflectColor := w.reflectedLight(ray, hit, s, depth)
	diffuse, specular := w.DirectLighting(ray, hit, s)

	mat := hit.Material
	return mat.DiffuseColor.Multiply(diffuse * mat.Albedo.X).
		Add(core.NewVec3(1, 1, 1).Multiply(specular * mat.Albedo.Y)).
		Add(reflectColor.Multiply(mat.Albedo.Z))
}

// reflectedLight follows the mirror reflection of the incoming ray
func (w *WhittedIntegrator) reflectedLight(ray core.Ray, hit geometry.Hit, s *scene.Scene, depth int) core.Vec3 {
	reflectDir := core.Reflect(ray.Direction, hit.Normal).Normalize()
	reflectOrigin := core.OffsetAlong(hit.Point, hit.Normal, reflectDir, w.config.Bias)
	return w.CastRay(core.NewRay(reflectOrigin, reflectDir), s, depth+1)
}

// DirectLighting sums the diffuse and specular intensities of every light
// that is visible from the hit point
func (w *WhittedIntegrator) DirectLighting(ray core.Ray, hit geometry.Hit, s *scene.Scene) (diffuse, specular float64) {
	for _, light := range s.Lights {
		sample := light.Sample(hit.Point)

		if w.Occluded(hit, sample.Direction, sample.Distance, s) {
			continue
		}

		diffuse += sample.Intensity * math.Max(0, sample.Direction.Dot(hit.Normal))

		mirrored := core.Reflect(sample.Direction.Negate(), hit.Normal).Negate()
		specular += math.Pow(math.Max(0, mirrored.Dot(ray.Direction)), hit.Material.SpecularExponent) * sample.Intensity
	}
	return diffuse, specular
}

// Occluded reports whether anything lies between the hit point and a light
// at the given direction and distance
func (w *WhittedIntegrator) Occluded(hit geometry.Hit, lightDir core.Vec3, lightDistance float64, s *scene.Scene) bool {
	shadowOrigin := core.OffsetAlong(hit.Point, hit.Normal, lightDir, w.config.Bias)

	shadowHit, ok := s.Intersect(core.NewRay(shadowOrigin, lightDir), w.config.Horizon)
	if !ok {
		return false
	}
	return shadowHit.Point.Subtract(shadowOrigin).Length() < lightDistance
}

package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe to call from multiple goroutines at once.
type Integrator interface {
	// RayColor computes the unclamped linear RGB color seen along a primary ray
	RayColor(ray core.Ray, scene *scene.Scene) core.Vec3
}

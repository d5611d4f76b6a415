package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Hit contains information about the nearest ray-scene intersection
type Hit struct {
	Point    core.Vec3          // Point of intersection
	Normal   core.Vec3          // Outward unit normal at the point
	Material *material.Material // Material of the sphere that was hit
	T        float64            // Distance along the ray
}

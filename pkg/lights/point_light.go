package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is an infinitesimal light with a scalar intensity
type PointLight struct {
	Position  core.Vec3
	Intensity float64
}

// LightSample describes a point light as seen from a shading point
type LightSample struct {
	Direction core.Vec3 // Unit direction from the shading point to the light
	Distance  float64   // Distance from the shading point to the light
	Intensity float64   // Unattenuated light intensity
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity float64) *PointLight {
	return &PointLight{
		Position:  position,
		Intensity: intensity,
	}
}

// Sample returns the direction and distance from point to the light.
// Point lights do not fall off with distance.
func (l *PointLight) Sample(point core.Vec3) LightSample {
	toLight := l.Position.Subtract(point)
	return LightSample{
		Direction: toLight.Normalize(),
		Distance:  toLight.Length(),
		Intensity: l.Intensity,
	}
}

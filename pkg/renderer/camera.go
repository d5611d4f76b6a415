package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera is a pinhole camera at the origin looking down the negative Z axis
type Camera struct {
	width, height int
	scale         float64 // tan(fov/2)
	aspectRatio   float64
}

// NewCamera creates a camera for an image of the given size and field of view
// in radians
func NewCamera(width, height int, fov float64) *Camera {
	return &Camera{
		width:       width,
		height:      height,
		scale:       math.Tan(fov / 2),
		aspectRatio: float64(width) / float64(height),
	}
}

// GetRay returns the primary ray through the center of pixel (i, j), where
// j = 0 is the top row
func (c *Camera) GetRay(i, j int) core.Ray {
	x := (2*(float64(i)+0.5)/float64(c.width) - 1) * c.scale * c.aspectRatio
	y := -(2*(float64(j)+0.5)/float64(c.height) - 1) * c.scale

	return core.NewRay(core.Vec3{}, core.NewVec3(x, y, -1).Normalize())
}

package renderer

import (
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	camera     *Camera
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene, camera and integrator
func NewTileRenderer(s *scene.Scene, camera *Camera, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		camera:     camera,
		integrator: integratorInst,
	}
}

// RenderTileBounds renders the pixels within bounds into the framebuffer.
// Callers running tiles concurrently must pass non-overlapping bounds.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, fb *Framebuffer) TileStats {
	start := time.Now()

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ray := tr.camera.GetRay(i, j)
			fb.Set(i, j, tr.integrator.RayColor(ray, tr.scene))
		}
	}

	return TileStats{
		Pixels:  bounds.Dx() * bounds.Dy(),
		Elapsed: time.Since(start),
	}
}

package renderer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderConfig contains the image and scheduling parameters of a render
type RenderConfig struct {
	Width      int     // Image width in pixels
	Height     int     // Image height in pixels
	FOV        float64 // Field of view in radians
	TileSize   int     // Size of each tile (64x64 recommended)
	NumWorkers int     // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns the reference image parameters
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:      1024,
		Height:     768,
		FOV:        math.Pi / 2,
		TileSize:   64,
		NumWorkers: 0,
	}
}

// Raytracer renders a scene into a framebuffer, one primary ray per pixel
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, integratorInst integrator.Integrator, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:      s,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// Render traces every pixel and returns the completed framebuffer. Tiles
// write disjoint framebuffer cells, so they render without locking. If ctx is
// cancelled the render stops between tiles and no framebuffer is returned.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	if rt.config.Width <= 0 || rt.config.Height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", rt.config.Width, rt.config.Height)
	}

	startTime := time.Now()
	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	camera := NewCamera(rt.config.Width, rt.config.Height, rt.config.FOV)
	tileRenderer := NewTileRenderer(rt.scene, camera, rt.integrator)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize)

	pool := NewWorkerPool(ctx, rt.config.NumWorkers)
	rt.logger.Printf("Rendering %s at %dx%d: %d tiles on %d workers...\n",
		rt.scene.Name, rt.config.Width, rt.config.Height, len(tiles), pool.GetNumWorkers())

	// Each task owns one slot
	tileStats := make([]TileStats, len(tiles))
	for _, tile := range tiles {
		pool.Submit(func(ctx context.Context) error {
			ts := tileRenderer.RenderTileBounds(tile.Bounds, fb)
			ts.TileID = tile.ID
			tileStats[tile.ID] = ts
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		rt.logger.Printf("Render of %s cancelled: %v\n", rt.scene.Name, err)
		return nil, RenderStats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{NumWorkers: pool.GetNumWorkers()}
	mergeTileStats(&stats, tileStats)
	stats.Elapsed = time.Since(startTime)

	rt.logger.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Elapsed, stats.PixelsPerSecond())
	return fb, stats, nil
}

package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	TotalTiles  int           // Number of tiles the image was split into
	NumWorkers  int           // Number of tiles rendered concurrently
	Elapsed     time.Duration // Wall time of the whole render
	SlowestTile time.Duration // Longest time spent on a single tile
}

// TileStats contains statistics about a single rendered tile
type TileStats struct {
	TileID  int
	Pixels  int
	Elapsed time.Duration
}

// PixelsPerSecond returns the render throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Elapsed.Seconds()
}

// mergeTileStats folds per-tile results into the render statistics
func mergeTileStats(stats *RenderStats, tiles []TileStats) {
	for _, ts := range tiles {
		stats.TotalPixels += ts.Pixels
		stats.SlowestTile = max(stats.SlowestTile, ts.Elapsed)
	}
	stats.TotalTiles = len(tiles)
}

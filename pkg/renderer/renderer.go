package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderOptions configures tiled parallel rendering
type RenderOptions struct {
	TileSize   int              // Tile edge in pixels; 0 uses DefaultTileSize
	NumWorkers int              // Worker goroutines; 0 uses one per CPU
	OnTile     func(TileResult) // Called on the rendering goroutine as tiles finish
	Logger     core.Logger      // Progress messages; nil discards them
}

// TileResult describes a finished tile
type TileResult struct {
	Tile       *Tile
	Canvas     *Canvas // Canvas being filled; pixels inside Tile.Bounds are final
	TileNumber int     // 1-based completion order
	TotalTiles int
}

// Render traces the camera's canvas with a pool of workers. The result is
// pixel-for-pixel identical to camera.Render. Cancelling ctx abandons the
// remaining tiles and returns ctx.Err().
func Render(ctx context.Context, camera *Camera, tracer Tracer, options RenderOptions) (*Canvas, RenderStats, error) {
	if camera.HSize <= 0 || camera.VSize <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid canvas size %dx%d", camera.HSize, camera.VSize)
	}

	logger := options.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	canvas := NewCanvas(camera.HSize, camera.VSize)
	tiles := NewTileGrid(camera.HSize, camera.VSize, options.TileSize)
	pool := NewWorkerPool(options.NumWorkers)
	tileRenderer := NewTileRenderer(camera, tracer)

	logger.Printf("Rendering %dx%d in %d tiles using %d workers...\n",
		camera.HSize, camera.VSize, len(tiles), pool.NumWorkers())

	start := time.Now()
	completed := 0
	err := pool.Run(ctx, tiles,
		func(ctx context.Context, tile *Tile) error {
			return tileRenderer.RenderTile(ctx, tile, canvas)
		},
		func(tile *Tile) {
			completed++
			if options.OnTile != nil {
				options.OnTile(TileResult{Tile: tile, Canvas: canvas, TileNumber: completed, TotalTiles: len(tiles)})
			}
		},
	)
	if err != nil {
		logger.Printf("Rendering stopped after %d of %d tiles: %v\n", completed, len(tiles), err)
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		TotalPixels: camera.HSize * camera.VSize,
		TotalTiles:  len(tiles),
		Workers:     pool.NumWorkers(),
		Elapsed:     time.Since(start),
	}
	logger.Printf("Render completed in %v\n", stats.Elapsed)

	return canvas, stats, nil
}

package renderer

import (
	"context"
	"image"
)

// DefaultTileSize is the edge length of a square tile in pixels
const DefaultTileSize = 32

// Tile is a rectangular region of the canvas rendered as one unit of work
type Tile struct {
	ID     int             // Row-major position in the grid
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// TileRenderer traces the pixels of individual tiles into a shared canvas
type TileRenderer struct {
	camera *Camera
	tracer Tracer
}

// NewTileRenderer creates a tile renderer for the given camera and tracer
func NewTileRenderer(camera *Camera, tracer Tracer) *TileRenderer {
	return &TileRenderer{camera: camera, tracer: tracer}
}

// RenderTile writes every pixel of the tile into canvas. Tiles have disjoint
// bounds, so concurrent calls on different tiles never touch the same slot.
// Cancellation is checked once per row.
func (tr *TileRenderer) RenderTile(ctx context.Context, tile *Tile, canvas *Canvas) error {
	bounds := tile.Bounds.Intersect(image.Rect(0, 0, canvas.Width, canvas.Height))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			canvas.WritePixel(x, y, tr.tracer.ColorAt(tr.camera.RayForPixel(x, y)))
		}
	}

	return nil
}

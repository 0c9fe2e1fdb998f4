package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/display"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene name, 'mesh:<file>' or a path to an .obj/.ply file")
	size := flag.Int("size", 300, "Canvas width and height in pixels")
	scale := flag.Int("scale", 2, "Window magnification")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	meshDir := flag.String("mesh", "meshes", "Directory searched for mesh scenes")
	flag.Parse()

	var s *scene.Scene
	var err error
	switch {
	case strings.HasPrefix(*sceneType, "mesh:"):
		var info scene.SceneInfo
		if info, err = scene.Find(*sceneType, *meshDir); err == nil {
			s, err = scene.Load(info, *size)
		}
	case loaders.IsMeshFile(*sceneType):
		s, err = scene.NewMeshScene(*sceneType, *size)
	default:
		s, err = scene.New(*sceneType, *size)
	}
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}

	window := display.NewWindow(fmt.Sprintf("Whitted Raytracer - %s", s.Name), *size, *size, *scale)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ebiten owns the main goroutine, so render in the background
	go func() {
		canvas, stats, err := s.Render(ctx, renderer.RenderOptions{
			NumWorkers: *workers,
			OnTile: func(result renderer.TileResult) {
				window.Update(result.Canvas, result.Tile.Bounds)
			},
		})
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("Render failed: %v", err)
			}
			return
		}
		window.Show(canvas)
		log.Printf("Rendered %s in %v", s.Name, stats.Elapsed)
	}()

	if err := window.Run(); err != nil {
		log.Fatalf("Window error: %v", err)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene name, 'mesh:<file>' from the mesh directory, or a path to an .obj/.ply file")
	size := flag.Int("size", 400, "Canvas width and height in pixels")
	format := flag.String("format", "png", "Output format: 'png' or 'ppm'")
	dir := flag.String("dir", "output", "Output directory")
	filename := flag.String("filename", "", "Output file name (default render_<timestamp>.<format>)")
	showTime := flag.Bool("time", false, "Print render statistics")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	tileSize := flag.Int("tile", renderer.DefaultTileSize, "Tile size in pixels")
	depth := flag.Int("depth", scene.DefaultMaxDepth, "Maximum reflection/refraction depth")
	meshDir := flag.String("mesh", "meshes", "Directory searched for mesh scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		showHelp(*meshDir)
		return
	}

	if *format != "png" && *format != "ppm" {
		fmt.Printf("Error: unknown format %q (use 'png' or 'ppm')\n", *format)
		os.Exit(1)
	}
	if *depth < 0 {
		fmt.Printf("Error: depth must be non-negative, got %d\n", *depth)
		os.Exit(1)
	}

	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, err := createScene(*sceneType, *meshDir, *size)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	selectedScene.World.MaxDepth = *depth

	outputPath := createOutputPath(*dir, *sceneType, *filename, *format, time.Now())
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	options := renderer.RenderOptions{
		TileSize:   *tileSize,
		NumWorkers: *workers,
		Logger:     renderer.NewDefaultLogger(),
	}
	canvas, stats, err := selectedScene.Render(ctx, options)
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}

	if *showTime {
		fmt.Printf("Render completed in %v\n", stats.Elapsed)
		fmt.Printf("%d pixels in %d tiles on %d workers (%.0f pixels/sec)\n",
			stats.TotalPixels, stats.TotalTiles, stats.Workers, stats.PixelsPerSecond())
		fmt.Printf("Average luminance: %.4f\n", renderer.AverageLuminance(canvas))
	}

	if err := saveCanvas(outputPath, canvas, *format); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", outputPath)
}

// showHelp prints usage and the scenes that can be rendered
func showHelp(meshDir string) {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()

	response, err := scene.ListAllScenes(meshDir)
	if err != nil {
		fmt.Printf("Error listing scenes: %v\n", err)
		return
	}
	for _, group := range response.Groups {
		fmt.Printf("%s:\n", group.Name)
		for _, s := range group.Scenes {
			if s.Description != "" {
				fmt.Printf("  %-18s %s\n", s.ID, s.Description)
			} else {
				fmt.Printf("  %s\n", s.ID)
			}
		}
		fmt.Println()
	}
	fmt.Println("Output will be saved to <dir>/<scene>/render_<timestamp>.<format>")
}

// createScene resolves a built-in name, a mesh scene ID or a mesh file path
func createScene(sceneType, meshDir string, size int) (*scene.Scene, error) {
	switch {
	case sceneType == "":
		return nil, fmt.Errorf("no scene given")
	case strings.HasPrefix(sceneType, "mesh:"):
		info, err := scene.Find(sceneType, meshDir)
		if err != nil {
			return nil, err
		}
		return scene.Load(info, size)
	case loaders.IsMeshFile(sceneType):
		return scene.NewMeshScene(sceneType, size)
	default:
		return scene.New(sceneType, size)
	}
}

// createOutputPath names the output file after the scene, under dir
func createOutputPath(dir, sceneType, filename, format string, now time.Time) string {
	base := strings.TrimPrefix(sceneType, "mesh:")
	base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))

	if filename == "" {
		filename = fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), format)
	}
	return filepath.Join(dir, base, filename)
}

func saveCanvas(path string, canvas *renderer.Canvas, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeImage(file, canvas, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// writeImage encodes the canvas as PPM or PNG
func writeImage(w io.Writer, canvas *renderer.Canvas, format string) error {
	switch format {
	case "ppm":
		return canvas.WritePPM(w)
	case "png":
		return png.Encode(w, canvas.ToRGBA(false))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

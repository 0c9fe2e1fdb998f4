package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	TotalTiles  int           // Number of tiles the image was split into
	Workers     int           // Number of worker goroutines used
	Elapsed     time.Duration // Wall-clock render time
}

// PixelsPerSecond returns the render throughput, or 0 before any time has elapsed
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Elapsed.Seconds()
}

// AverageLuminance returns the mean Rec. 709 luminance of the canvas
func AverageLuminance(canvas *Canvas) float64 {
	if len(canvas.Pixels) == 0 {
		return 0
	}

	total := 0.0
	for _, c := range canvas.Pixels {
		total += 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
	}
	return total / float64(len(canvas.Pixels))
}

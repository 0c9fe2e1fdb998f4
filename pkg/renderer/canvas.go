package renderer

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// maxPPMLine is the longest line a PPM body may contain
const maxPPMLine = 70

// Canvas is a grid of colors indexed Pixels[y*Width+x], row 0 at the top
type Canvas struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// WritePixel stores a color; writes outside the canvas are dropped
func (c *Canvas) WritePixel(x, y int, color core.Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.Pixels[y*c.Width+x] = color
}

// PixelAt returns the color at (x, y), or black outside the canvas
func (c *Canvas) PixelAt(x, y int) core.Color {
	if !c.inBounds(x, y) {
		return core.Black
	}
	return c.Pixels[y*c.Width+x]
}

// Fill sets every pixel to color
func (c *Canvas) Fill(color core.Color) {
	for i := range c.Pixels {
		c.Pixels[i] = color
	}
}

// WritePPM encodes the canvas as plain PPM (P3). Body lines never exceed 70
// characters, every row ends with a newline, and so does the file.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.Width, c.Height)

	var line strings.Builder
	flush := func() {
		bw.WriteString(line.String())
		bw.WriteByte('\n')
		line.Reset()
	}

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			r, g, b := c.PixelAt(x, y).Bytes()
			for _, channel := range [3]uint8{r, g, b} {
				value := strconv.Itoa(int(channel))
				if line.Len() > 0 && line.Len()+1+len(value) > maxPPMLine {
					flush()
				}
				if line.Len() > 0 {
					line.WriteByte(' ')
				}
				line.WriteString(value)
			}
		}
		flush()
	}

	return bw.Flush()
}

// ReadPPM decodes a plain PPM (P3) image. Channels are scaled back to [0,1]
// using the declared maximum value.
func ReadPPM(r io.Reader) (*Canvas, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	next := func(what string) (int, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("reading %s: %w", what, err)
			}
			return 0, fmt.Errorf("unexpected end of PPM data reading %s", what)
		}
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", what, scanner.Text(), err)
		}
		return v, nil
	}

	if !scanner.Scan() {
		return nil, fmt.Errorf("empty PPM data")
	}
	if magic := scanner.Text(); magic != "P3" {
		return nil, fmt.Errorf("unsupported PPM format %q", magic)
	}

	width, err := next("width")
	if err != nil {
		return nil, err
	}
	height, err := next("height")
	if err != nil {
		return nil, err
	}
	maxValue, err := next("max value")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || maxValue <= 0 {
		return nil, fmt.Errorf("invalid PPM header %dx%d max %d", width, height, maxValue)
	}

	canvas := NewCanvas(width, height)
	scale := 1.0 / float64(maxValue)
	for i := range canvas.Pixels {
		var channels [3]float64
		for j := range channels {
			v, err := next("channel")
			if err != nil {
				return nil, fmt.Errorf("pixel %d: %w", i, err)
			}
			channels[j] = float64(v) * scale
		}
		canvas.Pixels[i] = core.NewColor(channels[0], channels[1], channels[2])
	}

	return canvas, nil
}

// ToRGBA converts the canvas to an 8-bit image. With flipY, canvas row 0
// becomes the bottom row of the image.
func (c *Canvas) ToRGBA(flipY bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		row := y
		if flipY {
			row = c.Height - 1 - y
		}
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, row, c.PixelAt(x, y).ToRGBA())
		}
	}
	return img
}

// SubImage copies the pixels inside bounds into a new image whose origin is bounds.Min
func (c *Canvas) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, c.Width, c.Height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, c.PixelAt(x, y).ToRGBA())
		}
	}
	return img
}

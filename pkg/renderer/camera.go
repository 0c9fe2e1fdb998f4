package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tracer maps a ray to the color seen along it
type Tracer interface {
	ColorAt(ray core.Ray) core.Color
}

// Camera is a pinhole camera looking down -z in its own space
type Camera struct {
	HSize       int     // Canvas width in pixels
	VSize       int     // Canvas height in pixels
	FieldOfView float64 // Horizontal (or vertical, for tall canvases) field of view in radians
	PixelSize   float64 // World units per pixel on the canvas at z=-1
	HalfWidth   float64
	HalfHeight  float64

	transform core.Matrix4
	inverse   core.Matrix4
}

// NewCamera creates a camera with the identity transform
func NewCamera(hsize, vsize int, fov float64) *Camera {
	halfView := math.Tan(fov / 2)
	aspect := float64(hsize) / float64(vsize)

	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fov,
		transform:   core.Identity(),
		inverse:     core.Identity(),
	}

	if aspect >= 1 {
		c.HalfWidth = halfView
		c.HalfHeight = halfView / aspect
	} else {
		c.HalfWidth = halfView * aspect
		c.HalfHeight = halfView
	}
	c.PixelSize = c.HalfWidth * 2 / float64(hsize)

	return c
}

// Transform returns the view transform
func (c *Camera) Transform() core.Matrix4 {
	return c.transform
}

// SetTransform sets the view transform, rejecting matrices that cannot be inverted
func (c *Camera) SetTransform(m core.Matrix4) error {
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("camera transform: %w", err)
	}
	c.transform = m
	c.inverse = inv
	return nil
}

// RayForPixel returns the world-space ray through the center of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.PixelSize
	yOffset := (float64(py) + 0.5) * c.PixelSize

	// +x points left because the camera looks toward -z
	worldX := c.HalfWidth - xOffset
	worldY := c.HalfHeight - yOffset

	pixel := c.inverse.MultiplyTuple(core.Point(worldX, worldY, -1))
	origin := c.inverse.MultiplyTuple(core.Point(0, 0, 0))
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction)
}

// Render traces every pixel in row order on the calling goroutine
func (c *Camera) Render(tracer Tracer) *Canvas {
	canvas := NewCanvas(c.HSize, c.VSize)
	for y := 0; y < c.VSize; y++ {
		for x := 0; x < c.HSize; x++ {
			canvas.WritePixel(x, y, tracer.ColorAt(c.RayForPixel(x, y)))
		}
	}
	return canvas
}

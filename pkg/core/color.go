package core

import (
	"image/color"
	"math"
)

// Color is a linear RGB color with unbounded float channels
type Color struct {
	R, G, B float64
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// NewColor creates a new color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the difference of two colors
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Hadamard returns the component-wise product of two colors
func (c Color) Hadamard(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Equals compares two colors channel-wise within Epsilon
func (c Color) Equals(other Color) bool {
	return Equal(c.R, other.R) && Equal(c.G, other.G) && Equal(c.B, other.B)
}

// Bytes quantizes each channel to [0,255]: scale by 255, round to nearest, clamp
func (c Color) Bytes() (r, g, b uint8) {
	return quantize(c.R), quantize(c.G), quantize(c.B)
}

// ToRGBA converts the color to an opaque 8-bit RGBA value
func (c Color) ToRGBA() color.RGBA {
	r, g, b := c.Bytes()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func quantize(channel float64) uint8 {
	v := math.Round(channel * 255)
	return uint8(max(0, min(255, v)))
}

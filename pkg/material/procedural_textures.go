package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Color
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Color) *SolidColor {
	return &SolidColor{Color: color}
}

// ColorAt returns the solid color regardless of position
func (s *SolidColor) ColorAt(point core.Tuple) core.Color {
	return s.Color
}

// Stripe alternates between A and B on every unit of x
type Stripe struct {
	A, B core.Color
}

// NewStripe creates a stripe texture
func NewStripe(a, b core.Color) *Stripe {
	return &Stripe{A: a, B: b}
}

// ColorAt picks A on even x bands and B on odd ones
func (s *Stripe) ColorAt(point core.Tuple) core.Color {
	if isEven(math.Floor(point.X)) {
		return s.A
	}
	return s.B
}

// Gradient blends linearly from A to B across each unit of x
type Gradient struct {
	A, B core.Color
}

// NewGradient creates a gradient texture
func NewGradient(a, b core.Color) *Gradient {
	return &Gradient{A: a, B: b}
}

// ColorAt interpolates by the fractional part of x
func (g *Gradient) ColorAt(point core.Tuple) core.Color {
	fraction := point.X - math.Floor(point.X)
	return g.A.Add(g.B.Subtract(g.A).Multiply(fraction))
}

// Ring alternates between A and B in concentric rings around the y axis
type Ring struct {
	A, B core.Color
}

// NewRing creates a ring texture
func NewRing(a, b core.Color) *Ring {
	return &Ring{A: a, B: b}
}

// ColorAt picks by the floor of the distance from the y axis
func (r *Ring) ColorAt(point core.Tuple) core.Color {
	if isEven(math.Floor(math.Hypot(point.X, point.Z))) {
		return r.A
	}
	return r.B
}

// Checkers alternates between A and B in unit cubes
type Checkers struct {
	A, B core.Color
}

// NewCheckers creates a 3D checkerboard texture
func NewCheckers(a, b core.Color) *Checkers {
	return &Checkers{A: a, B: b}
}

// ColorAt picks by the parity of the summed floors
func (c *Checkers) ColorAt(point core.Tuple) core.Color {
	if isEven(math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)) {
		return c.A
	}
	return c.B
}

// isEven uses the truncated remainder, so negative odd values are odd
func isEven(v float64) bool {
	return math.Mod(v, 2) == 0
}

package material

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture provides a spatially-varying color in pattern space
type Texture interface {
	// ColorAt returns the color at a pattern-space point
	ColorAt(point core.Tuple) core.Color
}

// Pattern places a texture on a shape through its own transform
type Pattern struct {
	Texture   Texture
	transform core.Matrix4
	inverse   core.Matrix4
}

// NewPattern creates a pattern with the identity transform
func NewPattern(texture Texture) *Pattern {
	return &Pattern{
		Texture:   texture,
		transform: core.Identity(),
		inverse:   core.Identity(),
	}
}

// Transform returns the pattern-to-object transform
func (p *Pattern) Transform() core.Matrix4 {
	return p.transform
}

// SetTransform sets the pattern transform and caches its inverse
func (p *Pattern) SetTransform(m core.Matrix4) error {
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("pattern transform: %w", err)
	}
	p.transform = m
	p.inverse = inv
	return nil
}

// ColorAtObject returns the pattern color at a point given in object space
func (p *Pattern) ColorAtObject(objectPoint core.Tuple) core.Color {
	return p.Texture.ColorAt(p.inverse.MultiplyTuple(objectPoint))
}

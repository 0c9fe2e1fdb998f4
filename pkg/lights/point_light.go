package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is a light with no size that emits equally in every direction
type PointLight struct {
	Position  core.Tuple // Light position (a point)
	Intensity core.Color // Light color and brightness
}

// NewPointLight creates a new point light
func NewPointLight(position core.Tuple, intensity core.Color) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// DirectionFrom returns the normalized direction from point toward the light
// together with the distance to it
func (l *PointLight) DirectionFrom(point core.Tuple) (core.Tuple, float64) {
	v := l.Position.Subtract(point)
	return v.Normalize(), v.Magnitude()
}

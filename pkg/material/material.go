package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Material holds the Phong surface attributes plus the reflection and
// refraction terms used by the world's recursive shading
type Material struct {
	Color     core.Color // Base surface color, overridden by Pattern when set
	Ambient   float64    // Fraction of light reflected from the environment
	Diffuse   float64    // Fraction of light reflected from matte surfaces
	Specular  float64    // Brightness of the specular highlight
	Shininess float64    // Size of the specular highlight (larger is smaller and tighter)

	Reflective      float64 // 0 for matte, 1 for a perfect mirror
	Transparency    float64 // 0 for opaque, 1 for fully transparent
	RefractiveIndex float64 // 1 for vacuum, 1.5 for glass

	Pattern *Pattern // Optional procedural color
}

// Default returns the default material: white, ambient 0.1, diffuse 0.9,
// specular 0.9, shininess 200, opaque and non-reflective
func Default() Material {
	return Material{
		Color:           core.White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		RefractiveIndex: 1,
	}
}

// Glass returns the default material made fully transparent with index 1.5
func Glass() Material {
	m := Default()
	m.Transparency = 1
	m.RefractiveIndex = 1.5
	return m
}

// Validate checks that every scalar attribute is in range
func (m Material) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"ambient", m.Ambient},
		{"diffuse", m.Diffuse},
		{"specular", m.Specular},
		{"reflective", m.Reflective},
		{"transparency", m.Transparency},
		{"refractive index", m.RefractiveIndex},
	}
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) {
			return fmt.Errorf("material %s must be non-negative, got %v", f.name, f.value)
		}
	}
	if !(m.Shininess > 0) {
		return fmt.Errorf("material shininess must be positive, got %v", m.Shininess)
	}
	return nil
}

// Lighting evaluates the Phong model at a point under a fully visible light.
// The pattern, if any, is sampled at the point itself.
func (m Material) Lighting(light *lights.PointLight, point, eyev, normalv core.Tuple) core.Color {
	return m.ShadeAt(light, point, point, eyev, normalv, 1)
}

// ShadeAt evaluates the Phong model at a world-space point. objectPoint is the
// same point in the shape's object space, used for pattern lookup. intensity
// scales the diffuse and specular terms: 0 when in shadow, 1 when lit.
func (m Material) ShadeAt(light *lights.PointLight, point, objectPoint, eyev, normalv core.Tuple, intensity float64) core.Color {
	surface := m.Color
	if m.Pattern != nil {
		surface = m.Pattern.ColorAtObject(objectPoint)
	}

	effective := surface.Hadamard(light.Intensity)
	ambient := effective.Multiply(m.Ambient)
	if intensity == 0 {
		return ambient
	}

	lightv := light.Position.Subtract(point).Normalize()

	// Negative means the light is on the other side of the surface
	lightDotNormal := lightv.Dot(normalv)
	if lightDotNormal < 0 {
		return ambient
	}

	diffuse := effective.Multiply(m.Diffuse * lightDotNormal)
	specular := core.Black

	reflectv := lightv.Negate().Reflect(normalv)
	reflectDotEye := reflectv.Dot(eyev)
	if reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse.Multiply(intensity)).Add(specular.Multiply(intensity))
}

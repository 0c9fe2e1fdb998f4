package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// DefaultMaxDepth is the number of reflection/refraction bounces followed per camera ray
const DefaultMaxDepth = 5

// World is a list of objects lit by a single point light
type World struct {
	Objects  []*geometry.Object
	Light    *lights.PointLight
	MaxDepth int // Recursion limit for reflected and refracted rays
}

// NewWorld creates an empty world with no light
func NewWorld() *World {
	return &World{MaxDepth: DefaultMaxDepth}
}

// DefaultWorld creates the two concentric spheres lit from the upper left
func DefaultWorld() *World {
	outer := geometry.NewSphere()
	outer.Material.Color = core.NewColor(0.8, 1.0, 0.6)
	outer.Material.Diffuse = 0.7
	outer.Material.Specular = 0.2

	inner := geometry.NewSphere()
	// Scaling is always invertible
	_ = inner.SetTransform(core.Scaling(0.5, 0.5, 0.5))

	w := NewWorld()
	w.Light = lights.NewPointLight(core.Point(-10, 10, -10), core.White)
	w.Add(outer, inner)
	return w
}

// Add appends objects to the world, refreshing cached group bounds
func (w *World) Add(objects ...*geometry.Object) {
	for _, obj := range objects {
		obj.RefreshBounds()
		w.Objects = append(w.Objects, obj)
	}
}

// Intersect returns every intersection of the ray with the world, sorted by t
func (w *World) Intersect(ray core.Ray) geometry.Intersections {
	var xs []geometry.Intersection
	for _, obj := range w.Objects {
		xs = append(xs, obj.Intersect(ray)...)
	}
	return geometry.NewIntersections(xs...)
}

// ColorAt returns the color seen along the ray, following up to MaxDepth bounces
func (w *World) ColorAt(ray core.Ray) core.Color {
	return w.ColorAtDepth(ray, w.MaxDepth)
}

// ColorAtDepth returns the color seen along the ray with the given bounce budget.
// A miss, or a world without a light, is black.
func (w *World) ColorAtDepth(ray core.Ray, remaining int) core.Color {
	if w.Light == nil {
		return core.Black
	}

	xs := w.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return core.Black
	}

	comps := geometry.PrepareComputations(hit, ray, xs)
	return w.ShadeHit(comps, remaining)
}

// ShadeHit combines the surface color with reflected and refracted light
func (w *World) ShadeHit(comps geometry.Computations, remaining int) core.Color {
	if w.Light == nil {
		return core.Black
	}

	intensity := 1.0
	if w.IsShadowed(comps.OverPoint) {
		intensity = 0
	}

	m := comps.Object.Material
	surface := m.ShadeAt(w.Light, comps.Point, comps.ObjectPoint, comps.EyeV, comps.NormalV, intensity)

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := comps.Schlick()
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// IsShadowed reports whether a shadow-casting object lies between point and the light
func (w *World) IsShadowed(point core.Tuple) bool {
	if w.Light == nil {
		return false
	}

	direction, distance := w.Light.DirectionFrom(point)
	ray := core.NewRay(point, direction)

	for _, x := range w.Intersect(ray) {
		if x.T <= 0 || !x.Object.CastsShadow {
			continue
		}
		// Sorted, so the first candidate decides
		return x.T < distance
	}
	return false
}

// ReflectedColor traces the mirror ray when the surface is reflective
func (w *World) ReflectedColor(comps geometry.Computations, remaining int) core.Color {
	reflective := comps.Object.Material.Reflective
	if remaining < 1 || reflective == 0 {
		return core.Black
	}

	ray := core.NewRay(comps.OverPoint, comps.ReflectV)
	return w.ColorAtDepth(ray, remaining-1).Multiply(reflective)
}

// RefractedColor traces the transmitted ray when the surface is transparent.
// Total internal reflection contributes black.
func (w *World) RefractedColor(comps geometry.Computations, remaining int) core.Color {
	transparency := comps.Object.Material.Transparency
	if remaining < 1 || transparency == 0 {
		return core.Black
	}

	direction, ok := comps.RefractedDirection()
	if !ok {
		return core.Black
	}

	ray := core.NewRay(comps.UnderPoint, direction)
	return w.ColorAtDepth(ray, remaining-1).Multiply(transparency)
}

package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere is the unit sphere centered at the origin
type Sphere struct{}

// NewSphere creates a unit sphere object
func NewSphere() *Object {
	return NewObject(&Sphere{})
}

// NewGlassSphere creates a unit sphere with a fully transparent glass material
func NewGlassSphere() *Object {
	obj := NewSphere()
	obj.Material = material.Glass()
	return obj
}

// LocalIntersect solves the ray-sphere quadratic
func (s *Sphere) LocalIntersect(ray core.Ray, obj *Object) []Intersection {
	// Vector from sphere center to ray origin
	sphereToRay := ray.Origin.Subtract(core.Point(0, 0, 0))

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	return []Intersection{
		NewIntersection((-b-sqrtD)/(2*a), obj),
		NewIntersection((-b+sqrtD)/(2*a), obj),
	}
}

// LocalNormalAt points from the center to the surface point
func (s *Sphere) LocalNormalAt(point core.Tuple, hit Intersection) core.Tuple {
	return point.Subtract(core.Point(0, 0, 0))
}

// Bounds returns the unit cube around the sphere
func (s *Sphere) Bounds() core.BoundingBox {
	return core.NewBoundingBox(core.Point(-1, -1, -1), core.Point(1, 1, 1))
}

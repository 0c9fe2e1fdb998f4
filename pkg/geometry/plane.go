package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is the infinite xz plane through the origin
type Plane struct{}

// NewPlane creates a plane object
func NewPlane() *Object {
	return NewObject(&Plane{})
}

// LocalIntersect returns the single crossing of y = 0
func (p *Plane) LocalIntersect(ray core.Ray, obj *Object) []Intersection {
	// Parallel or coplanar rays never cross
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return nil
	}

	t := -ray.Origin.Y / ray.Direction.Y
	return []Intersection{NewIntersection(t, obj)}
}

// LocalNormalAt is always +y
func (p *Plane) LocalNormalAt(point core.Tuple, hit Intersection) core.Tuple {
	return core.Vector(0, 1, 0)
}

// Bounds is unbounded in x and z and flat in y
func (p *Plane) Bounds() core.BoundingBox {
	return core.NewBoundingBox(
		core.Point(math.Inf(-1), 0, math.Inf(-1)),
		core.Point(math.Inf(1), 0, math.Inf(1)),
	)
}

package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cube is the axis-aligned cube spanning [-1, 1] on every axis
type Cube struct{}

// NewCube creates a cube object
func NewCube() *Object {
	return NewObject(&Cube{})
}

// LocalIntersect uses the slab method against the three axis pairs of faces
func (c *Cube) LocalIntersect(ray core.Ray, obj *Object) []Intersection {
	xtMin, xtMax := core.SlabAxis(ray.Origin.X, ray.Direction.X, -1, 1)
	ytMin, ytMax := core.SlabAxis(ray.Origin.Y, ray.Direction.Y, -1, 1)
	ztMin, ztMax := core.SlabAxis(ray.Origin.Z, ray.Direction.Z, -1, 1)

	tMin := math.Max(xtMin, math.Max(ytMin, ztMin))
	tMax := math.Min(xtMax, math.Min(ytMax, ztMax))
	if tMin > tMax || tMax < 0 {
		return nil
	}

	return []Intersection{
		NewIntersection(tMin, obj),
		NewIntersection(tMax, obj),
	}
}

// LocalNormalAt picks the face whose axis has the largest component
func (c *Cube) LocalNormalAt(point core.Tuple, hit Intersection) core.Tuple {
	ax, ay, az := math.Abs(point.X), math.Abs(point.Y), math.Abs(point.Z)
	maxc := math.Max(ax, math.Max(ay, az))

	switch maxc {
	case ax:
		return core.Vector(point.X, 0, 0).Normalize()
	case ay:
		return core.Vector(0, point.Y, 0).Normalize()
	}
	return core.Vector(0, 0, point.Z).Normalize()
}

// Bounds is the cube itself
func (c *Cube) Bounds() core.BoundingBox {
	return core.NewBoundingBox(core.Point(-1, -1, -1), core.Point(1, 1, 1))
}

package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Shape is the canonical, untransformed geometry behind an Object. Every
// method works in the shape's own object space.
type Shape interface {
	// LocalIntersect returns the intersections of an object-space ray.
	// obj is the wrapping object, attached to each intersection.
	LocalIntersect(ray core.Ray, obj *Object) []Intersection

	// LocalNormalAt returns the (not necessarily unit) object-space normal.
	// hit carries u,v for shapes that interpolate normals.
	LocalNormalAt(point core.Tuple, hit Intersection) core.Tuple

	// Bounds returns the object-space bounding box
	Bounds() core.BoundingBox
}

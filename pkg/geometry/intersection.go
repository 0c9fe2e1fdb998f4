package geometry

import (
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Intersection records where a ray met an object
type Intersection struct {
	T      float64 // Parameter t along the ray
	Object *Object // Leaf object that was hit
	U, V   float64 // Barycentric coordinates, set only for triangles

	// world-to-object transform accumulated through enclosing groups
	toObject core.Matrix4
}

// NewIntersection creates an intersection on obj
func NewIntersection(t float64, obj *Object) Intersection {
	return Intersection{T: t, Object: obj, toObject: obj.inverse}
}

// NewIntersectionUV creates an intersection that carries barycentric coordinates
func NewIntersectionUV(t float64, obj *Object, u, v float64) Intersection {
	return Intersection{T: t, Object: obj, U: u, V: v, toObject: obj.inverse}
}

// Intersections is a list of intersections sorted by t
type Intersections []Intersection

// NewIntersections sorts the given intersections ascending by t.
// Equal t values keep their relative order.
func NewIntersections(xs ...Intersection) Intersections {
	sorted := Intersections(xs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].T < sorted[j].T
	})
	return sorted
}

// Hit returns the first intersection with t > 0; t = 0 counts as behind the origin
func (xs Intersections) Hit() (Intersection, bool) {
	for _, x := range xs {
		if x.T > 0 {
			return x, true
		}
	}
	return Intersection{}, false
}

// sameAs reports whether two intersections are the same event
func (i Intersection) sameAs(other Intersection) bool {
	return i.Object == other.Object && i.T == other.T && i.U == other.U && i.V == other.V
}

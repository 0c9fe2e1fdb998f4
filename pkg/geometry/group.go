package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Group is an ordered collection of child objects sharing the group's transform
type Group struct {
	Children []*Object

	bounds core.BoundingBox // union of children's bounds in group space
}

// NewGroup creates a group object containing the given children
func NewGroup(children ...*Object) *Object {
	g := &Group{bounds: core.EmptyBoundingBox()}
	g.add(children...)
	return NewObject(g)
}

func (g *Group) add(children ...*Object) {
	for _, child := range children {
		g.Children = append(g.Children, child)
		g.bounds = g.bounds.Merge(child.Bounds())
	}
}

func (g *Group) recomputeBounds() {
	g.bounds = core.EmptyBoundingBox()
	for _, child := range g.Children {
		g.bounds = g.bounds.Merge(child.Bounds())
	}
}

// LocalIntersect intersects every child with the group-space ray, skipping
// all of them when the ray misses the group's bounds
func (g *Group) LocalIntersect(ray core.Ray, obj *Object) []Intersection {
	if len(g.Children) == 0 || !g.bounds.Intersects(ray) {
		return nil
	}

	var xs []Intersection
	for _, child := range g.Children {
		xs = append(xs, child.Intersect(ray)...)
	}
	return xs
}

// LocalNormalAt panics: hits always refer to a leaf object, never a group
func (g *Group) LocalNormalAt(point core.Tuple, hit Intersection) core.Tuple {
	panic("geometry: LocalNormalAt called on a group")
}

// Bounds returns the cached union of the children's bounds
func (g *Group) Bounds() core.BoundingBox {
	return g.bounds
}

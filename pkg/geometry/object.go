package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrNotGroup is returned when adding children to a non-group object
var ErrNotGroup = errors.New("object is not a group")

// Object places a shape in its parent's space with a transform and a material
type Object struct {
	Shape       Shape
	Material    material.Material
	CastsShadow bool // Whether the object blocks light for shadow rays

	transform core.Matrix4
	inverse   core.Matrix4
}

// NewObject wraps a shape with the identity transform and the default material
func NewObject(shape Shape) *Object {
	return &Object{
		Shape:       shape,
		Material:    material.Default(),
		CastsShadow: true,
		transform:   core.Identity(),
		inverse:     core.Identity(),
	}
}

// Transform returns the object-to-parent transform
func (o *Object) Transform() core.Matrix4 {
	return o.transform
}

// Inverse returns the cached parent-to-object transform
func (o *Object) Inverse() core.Matrix4 {
	return o.inverse
}

// SetTransform sets the object transform and caches its inverse. A
// non-invertible matrix is rejected and the object is left unchanged.
func (o *Object) SetTransform(m core.Matrix4) error {
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("object transform: %w", err)
	}
	o.transform = m
	o.inverse = inv
	return nil
}

// Intersect transforms a parent-space ray into object space and intersects the shape.
// The result is sorted by t.
func (o *Object) Intersect(ray core.Ray) Intersections {
	local := ray.Transform(o.inverse)
	xs := o.Shape.LocalIntersect(local, o)
	for i := range xs {
		// Hits on descendants extend their world-to-object chain through this object
		if xs[i].Object != o {
			xs[i].toObject = xs[i].toObject.Multiply(o.inverse)
		}
	}
	return NewIntersections(xs...)
}

// NormalAt returns the unit world-space normal at a world point on the object.
// When hit refers to this object its accumulated group transforms are used,
// otherwise only the object's own transform is applied.
func (o *Object) NormalAt(worldPoint core.Tuple, hit Intersection) core.Tuple {
	toObject := o.worldToObject(hit)
	localNormal := o.Shape.LocalNormalAt(toObject.MultiplyTuple(worldPoint), hit)
	worldNormal := toObject.Transpose().MultiplyTuple(localNormal)
	worldNormal.W = 0
	return worldNormal.Normalize()
}

// WorldToObject converts a world point into this object's space
func (o *Object) WorldToObject(worldPoint core.Tuple, hit Intersection) core.Tuple {
	return o.worldToObject(hit).MultiplyTuple(worldPoint)
}

func (o *Object) worldToObject(hit Intersection) core.Matrix4 {
	if hit.Object == o && hit.toObject != (core.Matrix4{}) {
		return hit.toObject
	}
	return o.inverse
}

// Bounds returns the object's bounding box in its parent's space
func (o *Object) Bounds() core.BoundingBox {
	return o.Shape.Bounds().Transform(o.transform)
}

// AddChild appends children to a group object. Children should have their
// final transforms before being added, since the group caches its bounds.
func (o *Object) AddChild(children ...*Object) error {
	group, ok := o.Shape.(*Group)
	if !ok {
		return ErrNotGroup
	}
	group.add(children...)
	return nil
}

// Children returns the children of a group object, or nil for any other shape
func (o *Object) Children() []*Object {
	if group, ok := o.Shape.(*Group); ok {
		return group.Children
	}
	return nil
}

// RefreshBounds recomputes cached group bounds below this object
func (o *Object) RefreshBounds() {
	if group, ok := o.Shape.(*Group); ok {
		for _, child := range group.Children {
			child.RefreshBounds()
		}
		group.recomputeBounds()
	}
}

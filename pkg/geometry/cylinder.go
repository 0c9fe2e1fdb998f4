package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is a unit-radius cylinder around the y axis, truncated to
// Minimum < y < Maximum and optionally capped
type Cylinder struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCylinder creates a cylinder object. Use math.Inf for an unbounded cylinder.
func NewCylinder(minimum, maximum float64, closed bool) *Object {
	return NewObject(&Cylinder{Minimum: minimum, Maximum: maximum, Closed: closed})
}

// NewInfiniteCylinder creates an open cylinder with no truncation
func NewInfiniteCylinder() *Object {
	return NewCylinder(math.Inf(-1), math.Inf(1), false)
}

// LocalIntersect intersects the side wall and, when closed, the two caps
func (c *Cylinder) LocalIntersect(ray core.Ray, obj *Object) []Intersection {
	var xs []Intersection

	a := ray.Direction.X*ray.Direction.X + ray.Direction.Z*ray.Direction.Z

	// A ray parallel to the y axis can only hit the caps
	if a >= core.Epsilon {
		b := 2 * (ray.Origin.X*ray.Direction.X + ray.Origin.Z*ray.Direction.Z)
		cc := ray.Origin.X*ray.Origin.X + ray.Origin.Z*ray.Origin.Z - 1

		discriminant := b*b - 4*a*cc
		if discriminant < 0 {
			return nil
		}
		xs = appendWalls(xs, ray, obj, a, b, discriminant, c.Minimum, c.Maximum)
	}

	if c.Closed {
		xs = appendCaps(xs, ray, obj, c.Minimum, c.Maximum, func(float64) float64 { return 1 })
	}
	return xs
}

// LocalNormalAt returns ±y on the caps and the radial direction on the wall
func (c *Cylinder) LocalNormalAt(point core.Tuple, hit Intersection) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z

	if dist < 1 && point.Y >= c.Maximum-core.Epsilon {
		return core.Vector(0, 1, 0)
	}
	if dist < 1 && point.Y <= c.Minimum+core.Epsilon {
		return core.Vector(0, -1, 0)
	}
	return core.Vector(point.X, 0, point.Z)
}

// Bounds spans the unit radius between the truncation planes
func (c *Cylinder) Bounds() core.BoundingBox {
	return core.NewBoundingBox(core.Point(-1, c.Minimum, -1), core.Point(1, c.Maximum, 1))
}

// appendWalls adds the quadratic roots whose y lies strictly between minimum and maximum
func appendWalls(xs []Intersection, ray core.Ray, obj *Object, a, b, discriminant, minimum, maximum float64) []Intersection {
	sqrtD := math.Sqrt(discriminant)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	for _, t := range [2]float64{t0, t1} {
		y := ray.Origin.Y + t*ray.Direction.Y
		if minimum < y && y < maximum {
			xs = append(xs, NewIntersection(t, obj))
		}
	}
	return xs
}

// appendCaps adds hits on the y = minimum and y = maximum discs. radius gives
// the disc radius at a cap height.
func appendCaps(xs []Intersection, ray core.Ray, obj *Object, minimum, maximum float64, radius func(y float64) float64) []Intersection {
	if ray.Direction.Y == 0 {
		return xs
	}

	for _, capY := range [2]float64{minimum, maximum} {
		if math.IsInf(capY, 0) {
			continue
		}
		t := (capY - ray.Origin.Y) / ray.Direction.Y
		x := ray.Origin.X + t*ray.Direction.X
		z := ray.Origin.Z + t*ray.Direction.Z
		r := radius(capY)
		if x*x+z*z <= r*r {
			xs = append(xs, NewIntersection(t, obj))
		}
	}
	return xs
}

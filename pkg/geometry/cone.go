package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cone is a double-napped cone around the y axis with radius |y|, truncated
// to Minimum < y < Maximum and optionally capped
type Cone struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCone creates a cone object
func NewCone(minimum, maximum float64, closed bool) *Object {
	return NewObject(&Cone{Minimum: minimum, Maximum: maximum, Closed: closed})
}

// LocalIntersect intersects the two nappes and, when closed, the caps
func (c *Cone) LocalIntersect(ray core.Ray, obj *Object) []Intersection {
	var xs []Intersection
	o, d := ray.Origin, ray.Direction

	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2 * (o.X*d.X - o.Y*d.Y + o.Z*d.Z)
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	if math.Abs(a) < core.Epsilon {
		// Parallel to one nappe: a single crossing of the other
		if b != 0 {
			t := -cc / (2 * b)
			y := o.Y + t*d.Y
			if c.Minimum < y && y < c.Maximum {
				xs = append(xs, NewIntersection(t, obj))
			}
		}
	} else {
		// A ray that misses both nappes may still pass through a cap
		if discriminant := b*b - 4*a*cc; discriminant >= 0 {
			xs = appendWalls(xs, ray, obj, a, b, discriminant, c.Minimum, c.Maximum)
		}
	}

	if c.Closed {
		xs = appendCaps(xs, ray, obj, c.Minimum, c.Maximum, math.Abs)
	}
	return xs
}

// LocalNormalAt returns ±y on the caps and the slanted surface normal elsewhere
func (c *Cone) LocalNormalAt(point core.Tuple, hit Intersection) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z

	if dist < point.Y*point.Y && point.Y >= c.Maximum-core.Epsilon {
		return core.Vector(0, 1, 0)
	}
	if dist < point.Y*point.Y && point.Y <= c.Minimum+core.Epsilon {
		return core.Vector(0, -1, 0)
	}

	y := math.Sqrt(dist)
	if point.Y > 0 {
		y = -y
	}
	return core.Vector(point.X, y, point.Z)
}

// Bounds uses the widest cap radius
func (c *Cone) Bounds() core.BoundingBox {
	limit := math.Max(math.Abs(c.Minimum), math.Abs(c.Maximum))
	return core.NewBoundingBox(core.Point(-limit, c.Minimum, -limit), core.Point(limit, c.Maximum, limit))
}

package core

import "math"

// BoundingBox is an axis-aligned box in some object's coordinate space
type BoundingBox struct {
	Min Tuple // Minimum corner
	Max Tuple // Maximum corner
}

// NewBoundingBox creates a box from two corner points
func NewBoundingBox(min, max Tuple) BoundingBox {
	return BoundingBox{Min: min, Max: max}
}

// EmptyBoundingBox returns a box that contains nothing; adding a point makes it that point
func EmptyBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Point(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max: Point(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
	}
}

// IsEmpty returns true if no point has been added to the box
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// AddPoint grows the box to include p
func (b BoundingBox) AddPoint(p Tuple) BoundingBox {
	return BoundingBox{
		Min: Point(math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)),
		Max: Point(math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)),
	}
}

// Merge returns a box that bounds both boxes
func (b BoundingBox) Merge(other BoundingBox) BoundingBox {
	if other.IsEmpty() {
		return b
	}
	return b.AddPoint(other.Min).AddPoint(other.Max)
}

// Contains returns true if p lies inside or on the box
func (b BoundingBox) Contains(p Tuple) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ContainsBox returns true if other lies entirely inside the box
func (b BoundingBox) ContainsBox(other BoundingBox) bool {
	return b.Contains(other.Min) && b.Contains(other.Max)
}

// Transform returns the box bounding all eight transformed corners
func (b BoundingBox) Transform(m Matrix4) BoundingBox {
	if b.IsEmpty() {
		return b
	}

	corners := [8]Tuple{
		b.Min,
		Point(b.Min.X, b.Min.Y, b.Max.Z),
		Point(b.Min.X, b.Max.Y, b.Min.Z),
		Point(b.Min.X, b.Max.Y, b.Max.Z),
		Point(b.Max.X, b.Min.Y, b.Min.Z),
		Point(b.Max.X, b.Min.Y, b.Max.Z),
		Point(b.Max.X, b.Max.Y, b.Min.Z),
		b.Max,
	}

	result := EmptyBoundingBox()
	for _, corner := range corners {
		lo, hi := widenNaN(transformCorner(m, corner))
		result = result.AddPoint(lo).AddPoint(hi)
	}
	return result
}

// transformCorner multiplies like MultiplyTuple but treats 0·∞ as 0, so that
// unbounded boxes (planes, infinite cylinders) stay well-defined under rotation.
func transformCorner(m Matrix4, p Tuple) Tuple {
	in := [4]float64{p.X, p.Y, p.Z, p.W}
	var out [4]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if m[r][c] == 0 {
				continue
			}
			out[r] += m[r][c] * in[c]
		}
	}
	return Tuple{X: out[0], Y: out[1], Z: out[2], W: out[3]}
}

// widenNaN splits a corner into low and high points; an axis that came out as
// ∞-∞ is unbounded in both directions.
func widenNaN(p Tuple) (lo, hi Tuple) {
	lo, hi = p, p
	if math.IsNaN(p.X) {
		lo.X, hi.X = math.Inf(-1), math.Inf(1)
	}
	if math.IsNaN(p.Y) {
		lo.Y, hi.Y = math.Inf(-1), math.Inf(1)
	}
	if math.IsNaN(p.Z) {
		lo.Z, hi.Z = math.Inf(-1), math.Inf(1)
	}
	return lo, hi
}

// Intersects tests the ray against the box with the slab method
func (b BoundingBox) Intersects(ray Ray) bool {
	xtMin, xtMax := SlabAxis(ray.Origin.X, ray.Direction.X, b.Min.X, b.Max.X)
	ytMin, ytMax := SlabAxis(ray.Origin.Y, ray.Direction.Y, b.Min.Y, b.Max.Y)
	ztMin, ztMax := SlabAxis(ray.Origin.Z, ray.Direction.Z, b.Min.Z, b.Max.Z)

	tMin := math.Max(xtMin, math.Max(ytMin, ztMin))
	tMax := math.Min(xtMax, math.Min(ytMax, ztMax))
	return tMin <= tMax && tMax >= 0
}

// SlabAxis returns the entry and exit t of a ray against the slab [min, max]
// on one axis. A zero direction yields ±∞ with the sign of the numerator, so a
// parallel ray inside the slab spans (-∞, +∞) and one outside spans nothing.
func SlabAxis(origin, direction, min, max float64) (tMin, tMax float64) {
	if direction == 0 {
		if origin < min || origin > max {
			return math.Inf(1), math.Inf(-1)
		}
		return math.Inf(-1), math.Inf(1)
	}

	tMin = (min - origin) / direction
	tMax = (max - origin) / direction
	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	return tMin, tMax
}

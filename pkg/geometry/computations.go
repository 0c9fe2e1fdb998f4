package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Computations holds the values shading needs at a hit, computed once
type Computations struct {
	Hit    Intersection
	T      float64
	Object *Object

	Point       core.Tuple // World-space hit point
	ObjectPoint core.Tuple // Hit point in the leaf's object space
	OverPoint   core.Tuple // Point nudged along the normal, for shadow and reflection rays
	UnderPoint  core.Tuple // Point nudged against the normal, for refraction rays
	EyeV        core.Tuple
	NormalV     core.Tuple // Unit normal facing the eye
	ReflectV    core.Tuple
	Inside      bool // Whether the normal was flipped because the ray started inside

	N1, N2 float64 // Refractive indices on the incoming and outgoing sides
}

// PrepareComputations derives shading values for hit. xs is the full sorted
// intersection list the hit came from, used to find the refractive indices.
func PrepareComputations(hit Intersection, ray core.Ray, xs Intersections) Computations {
	point := ray.Position(hit.T)
	eyev := ray.Direction.Negate()
	normalv := hit.Object.NormalAt(point, hit)

	inside := normalv.Dot(eyev) < 0
	if inside {
		normalv = normalv.Negate()
	}

	comps := Computations{
		Hit:         hit,
		T:           hit.T,
		Object:      hit.Object,
		Point:       point,
		ObjectPoint: hit.Object.WorldToObject(point, hit),
		OverPoint:   point.Add(normalv.Multiply(core.Epsilon)),
		UnderPoint:  point.Subtract(normalv.Multiply(core.Epsilon)),
		EyeV:        eyev,
		NormalV:     normalv,
		ReflectV:    ray.Direction.Reflect(normalv),
		Inside:      inside,
	}
	comps.N1, comps.N2 = refractiveIndices(hit, xs)
	return comps
}

// refractiveIndices walks the intersections in order, tracking which objects
// the ray is currently inside
func refractiveIndices(hit Intersection, xs Intersections) (n1, n2 float64) {
	n1, n2 = 1, 1
	var containers []*Object

	for _, x := range xs {
		isHit := x.sameAs(hit)
		if isHit && len(containers) > 0 {
			n1 = containers[len(containers)-1].Material.RefractiveIndex
		}

		if idx := indexOf(containers, x.Object); idx >= 0 {
			containers = append(containers[:idx], containers[idx+1:]...)
		} else {
			containers = append(containers, x.Object)
		}

		if isHit {
			if len(containers) > 0 {
				n2 = containers[len(containers)-1].Material.RefractiveIndex
			}
			break
		}
	}
	return n1, n2
}

func indexOf(objects []*Object, target *Object) int {
	for i, o := range objects {
		if o == target {
			return i
		}
	}
	return -1
}

// Schlick approximates the Fresnel reflectance at the hit
func (c Computations) Schlick() float64 {
	cos := c.EyeV.Dot(c.NormalV)

	// Total internal reflection is only possible going into a lower index
	if c.N1 > c.N2 {
		ratio := c.N1 / c.N2
		sin2T := ratio * ratio * (1 - cos*cos)
		if sin2T > 1 {
			return 1
		}
		cos = math.Sqrt(1 - sin2T)
	}

	r0 := math.Pow((c.N1-c.N2)/(c.N1+c.N2), 2)
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}

// RefractedDirection returns the refracted ray direction by Snell's law, or
// false on total internal reflection
func (c Computations) RefractedDirection() (core.Tuple, bool) {
	ratio := c.N1 / c.N2
	cosI := c.EyeV.Dot(c.NormalV)
	sin2T := ratio * ratio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Tuple{}, false
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := c.NormalV.Multiply(ratio*cosI - cosT).Subtract(c.EyeV.Multiply(ratio))
	return direction, true
}

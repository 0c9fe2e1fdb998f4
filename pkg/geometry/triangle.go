package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Triangle is a flat triangle with precomputed edges and normal
type Triangle struct {
	P1, P2, P3 core.Tuple
	E1, E2     core.Tuple // P2-P1 and P3-P1
	Normal     core.Tuple
}

// newTriangleShape precomputes edges and the face normal
func newTriangleShape(p1, p2, p3 core.Tuple) Triangle {
	e1 := p2.Subtract(p1)
	e2 := p3.Subtract(p1)
	return Triangle{
		P1: p1, P2: p2, P3: p3,
		E1: e1, E2: e2,
		Normal: e2.Cross(e1).Normalize(),
	}
}

// NewTriangle creates a flat triangle object
func NewTriangle(p1, p2, p3 core.Tuple) *Object {
	tri := newTriangleShape(p1, p2, p3)
	return NewObject(&tri)
}

// LocalIntersect uses the Möller–Trumbore algorithm and records u,v
func (tr *Triangle) LocalIntersect(ray core.Ray, obj *Object) []Intersection {
	t, u, v, ok := tr.intersect(ray)
	if !ok {
		return nil
	}
	return []Intersection{NewIntersectionUV(t, obj, u, v)}
}

func (tr *Triangle) intersect(ray core.Ray) (t, u, v float64, ok bool) {
	dirCrossE2 := ray.Direction.Cross(tr.E2)
	det := tr.E1.Dot(dirCrossE2)
	if det == 0 {
		return 0, 0, 0, false
	}

	f := 1 / det
	p1ToOrigin := ray.Origin.Subtract(tr.P1)
	u = f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	originCrossE1 := p1ToOrigin.Cross(tr.E1)
	v = f * ray.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = f * tr.E2.Dot(originCrossE1)
	return t, u, v, true
}

// LocalNormalAt is the precomputed face normal
func (tr *Triangle) LocalNormalAt(point core.Tuple, hit Intersection) core.Tuple {
	return tr.Normal
}

// Bounds is the vertex hull
func (tr *Triangle) Bounds() core.BoundingBox {
	return core.EmptyBoundingBox().AddPoint(tr.P1).AddPoint(tr.P2).AddPoint(tr.P3)
}

// SmoothTriangle interpolates per-vertex normals across the face
type SmoothTriangle struct {
	Triangle
	N1, N2, N3 core.Tuple
}

// NewSmoothTriangle creates a triangle object with vertex normals
func NewSmoothTriangle(p1, p2, p3, n1, n2, n3 core.Tuple) *Object {
	return NewObject(&SmoothTriangle{
		Triangle: newTriangleShape(p1, p2, p3),
		N1:       n1,
		N2:       n2,
		N3:       n3,
	})
}

// LocalIntersect matches the flat triangle
func (st *SmoothTriangle) LocalIntersect(ray core.Ray, obj *Object) []Intersection {
	return st.Triangle.LocalIntersect(ray, obj)
}

// LocalNormalAt blends the vertex normals with the hit's barycentric coordinates
func (st *SmoothTriangle) LocalNormalAt(point core.Tuple, hit Intersection) core.Tuple {
	return st.N2.Multiply(hit.U).
		Add(st.N3.Multiply(hit.V)).
		Add(st.N1.Multiply(1 - hit.U - hit.V))
}

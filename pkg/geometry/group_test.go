package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func mustTransform(t *testing.T, obj *Object, m core.Matrix4) *Object {
	t.Helper()
	if err := obj.SetTransform(m); err != nil {
		t.Fatalf("SetTransform: %v", err)
	}
	return obj
}

func TestGroup_Empty(t *testing.T) {
	g := NewGroup()
	if len(g.Children()) != 0 {
		t.Errorf("New group should be empty, got %d children", len(g.Children()))
	}
	if xs := g.Intersect(core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, 1))); len(xs) != 0 {
		t.Errorf("Empty group should have no intersections, got %d", len(xs))
	}
}

func TestGroup_AddChild(t *testing.T) {
	g := NewGroup()
	s := NewSphere()
	if err := g.AddChild(s); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(g.Children()) != 1 || g.Children()[0] != s {
		t.Errorf("Group should contain the sphere")
	}
}

func TestGroup_IntersectChildren(t *testing.T) {
	s1 := NewSphere()
	s2 := mustTransform(t, NewSphere(), core.Translation(0, 0, -3))
	s3 := mustTransform(t, NewSphere(), core.Translation(5, 0, 0))
	g := NewGroup(s1, s2, s3)

	xs := g.Intersect(core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1)))
	if len(xs) != 4 {
		t.Fatalf("Expected 4 intersections, got %d", len(xs))
	}

	expected := []*Object{s2, s2, s1, s1}
	for i, x := range xs {
		if x.Object != expected[i] {
			t.Errorf("Intersection %d hit the wrong child", i)
		}
	}
}

func TestGroup_Transformed(t *testing.T) {
	s := mustTransform(t, NewSphere(), core.Translation(5, 0, 0))
	g := mustTransform(t, NewGroup(s), core.Scaling(2, 2, 2))

	xs := g.Intersect(core.NewRay(core.Point(10, 0, -10), core.Vector(0, 0, 1)))
	if len(xs) != 2 {
		t.Errorf("Expected 2 intersections, got %d", len(xs))
	}
}

func TestGroup_NestedNormal(t *testing.T) {
	s := mustTransform(t, NewSphere(), core.Translation(5, 0, 0))
	g2 := mustTransform(t, NewGroup(s), core.Scaling(1, 2, 3))
	mustTransform(t, NewGroup(g2), core.RotationY(math.Pi/2))

	// World-to-object through both groups, as propagation would build it
	hit := NewIntersection(1, s)
	hit.toObject = s.Inverse().Multiply(g2.Inverse()).Multiply(mustInverse(t, core.RotationY(math.Pi/2)))

	n := s.NormalAt(core.Point(1.7321, 1.1547, -5.5774), hit)
	if !n.Equals(core.Vector(0.2857, 0.42854, -0.85716)) {
		t.Errorf("Expected (0.2857, 0.42854, -0.85716), got %v", n)
	}
}

func TestGroup_NestedNormalFromIntersect(t *testing.T) {
	s := mustTransform(t, NewSphere(), core.Translation(5, 0, 0))
	g2 := mustTransform(t, NewGroup(s), core.Scaling(2, 2, 2))
	g1 := mustTransform(t, NewGroup(g2), core.RotationY(math.Pi/2))

	// The sphere ends up centered at (0,0,-10) with radius 2
	ray := core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, -1))
	xs := g1.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Object != s || !core.Equal(hit.T, 8) {
		t.Fatalf("Expected sphere hit at t=8, got t=%v", hit.T)
	}

	n := hit.Object.NormalAt(ray.Position(hit.T), hit)
	if !n.Equals(core.Vector(0, 0, 1)) {
		t.Errorf("Expected normal (0,0,1), got %v", n)
	}
	if p := hit.Object.WorldToObject(ray.Position(hit.T), hit); !p.Equals(core.Point(-1, 0, 0)) {
		t.Errorf("Expected object point (-1,0,0), got %v", p)
	}
}

func TestGroup_Bounds(t *testing.T) {
	s := mustTransform(t, NewSphere(), core.Translation(2, 5, -3).Multiply(core.Scaling(2, 2, 2)))
	c := mustTransform(t, NewCylinder(-2, 2, false), core.Translation(-4, -1, 4).Multiply(core.Scaling(0.5, 1, 0.5)))
	g := NewGroup(s, c)

	b := g.Shape.Bounds()
	if !b.Min.Equals(core.Point(-4.5, -3, -5)) || !b.Max.Equals(core.Point(4, 7, 4.5)) {
		t.Errorf("Unexpected group bounds %v %v", b.Min, b.Max)
	}
}

func TestGroup_SkipsChildrenOutsideBounds(t *testing.T) {
	s := NewSphere()
	g := NewGroup(s)

	// The ray misses the unit box, so no child is tested
	xs := g.Shape.LocalIntersect(core.NewRay(core.Point(0, 5, -5), core.Vector(0, 0, 1)), g)
	if len(xs) != 0 {
		t.Errorf("Expected no intersections, got %d", len(xs))
	}
}

func TestGroup_RefreshBounds(t *testing.T) {
	s := NewSphere()
	g := NewGroup(s)
	mustTransform(t, s, core.Translation(10, 0, 0))

	ray := core.NewRay(core.Point(10, 0, -5), core.Vector(0, 0, 1))
	if xs := g.Intersect(ray); len(xs) != 0 {
		t.Fatalf("Stale bounds should still skip the moved child, got %d", len(xs))
	}

	g.RefreshBounds()
	if xs := g.Intersect(ray); len(xs) != 2 {
		t.Errorf("Expected 2 intersections after refresh, got %d", len(xs))
	}
}

func TestGroup_NormalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected LocalNormalAt on a group to panic")
		}
	}()
	g := NewGroup()
	g.Shape.LocalNormalAt(core.Point(0, 0, 0), Intersection{})
}

func mustInverse(t *testing.T, m core.Matrix4) core.Matrix4 {
	t.Helper()
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	return inv
}

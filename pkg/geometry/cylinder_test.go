package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCylinder_Miss(t *testing.T) {
	tests := []struct {
		origin    core.Tuple
		direction core.Tuple
	}{
		{core.Point(1, 0, 0), core.Vector(0, 1, 0)},
		{core.Point(0, 0, 0), core.Vector(0, 1, 0)},
		{core.Point(0, 0, -5), core.Vector(1, 1, 1)},
	}

	cyl := NewInfiniteCylinder()
	for _, tt := range tests {
		ray := core.NewRay(tt.origin, tt.direction.Normalize())
		if got := intersectTs(cyl, ray); len(got) != 0 {
			t.Errorf("Ray %v %v should miss, got %v", tt.origin, tt.direction, got)
		}
	}
}

func TestCylinder_Strike(t *testing.T) {
	tests := []struct {
		origin    core.Tuple
		direction core.Tuple
		t0, t1    float64
	}{
		{core.Point(1, 0, -5), core.Vector(0, 0, 1), 5, 5},
		{core.Point(0, 0, -5), core.Vector(0, 0, 1), 4, 6},
		{core.Point(0.5, 0, -5), core.Vector(0.1, 1, 1), 6.80798, 7.08872},
	}

	cyl := NewInfiniteCylinder()
	for _, tt := range tests {
		ray := core.NewRay(tt.origin, tt.direction.Normalize())
		if got := intersectTs(cyl, ray); !equalTs(got, []float64{tt.t0, tt.t1}) {
			t.Errorf("Ray %v %v: expected [%v %v], got %v", tt.origin, tt.direction, tt.t0, tt.t1, got)
		}
	}
}

func TestCylinder_Normal(t *testing.T) {
	tests := []struct {
		point    core.Tuple
		expected core.Tuple
	}{
		{core.Point(1, 0, 0), core.Vector(1, 0, 0)},
		{core.Point(0, 5, -1), core.Vector(0, 0, -1)},
		{core.Point(0, -2, 1), core.Vector(0, 0, 1)},
		{core.Point(-1, 1, 0), core.Vector(-1, 0, 0)},
	}

	cyl := &Cylinder{Minimum: math.Inf(-1), Maximum: math.Inf(1)}
	for _, tt := range tests {
		if got := cyl.LocalNormalAt(tt.point, Intersection{}); !got.Equals(tt.expected) {
			t.Errorf("Normal at %v: expected %v, got %v", tt.point, tt.expected, got)
		}
	}
}

func TestCylinder_Defaults(t *testing.T) {
	cyl := NewInfiniteCylinder().Shape.(*Cylinder)
	if !math.IsInf(cyl.Minimum, -1) || !math.IsInf(cyl.Maximum, 1) || cyl.Closed {
		t.Errorf("Unexpected default cylinder: %+v", cyl)
	}
}

func TestCylinder_Truncated(t *testing.T) {
	tests := []struct {
		name      string
		point     core.Tuple
		direction core.Tuple
		count     int
	}{
		{"diagonal from inside escapes", core.Point(0, 1.5, 0), core.Vector(0.1, 1, 0), 0},
		{"above", core.Point(0, 3, -5), core.Vector(0, 0, 1), 0},
		{"below", core.Point(0, 0, -5), core.Vector(0, 0, 1), 0},
		{"at maximum is excluded", core.Point(0, 2, -5), core.Vector(0, 0, 1), 0},
		{"at minimum is excluded", core.Point(0, 1, -5), core.Vector(0, 0, 1), 0},
		{"through the middle", core.Point(0, 1.5, -2), core.Vector(0, 0, 1), 2},
	}

	cyl := NewCylinder(1, 2, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.point, tt.direction.Normalize())
			if got := intersectTs(cyl, ray); len(got) != tt.count {
				t.Errorf("Expected %d intersections, got %v", tt.count, got)
			}
		})
	}
}

func TestCylinder_Caps(t *testing.T) {
	tests := []struct {
		name      string
		point     core.Tuple
		direction core.Tuple
		count     int
	}{
		{"down the axis", core.Point(0, 3, 0), core.Vector(0, -1, 0), 2},
		{"top cap and wall", core.Point(0, 3, -2), core.Vector(0, -1, 2), 2},
		{"top cap corner", core.Point(0, 4, -2), core.Vector(0, -1, 1), 2},
		{"bottom cap and wall", core.Point(0, 0, -2), core.Vector(0, 1, 2), 2},
		{"bottom cap corner", core.Point(0, -1, -2), core.Vector(0, 1, 1), 2},
	}

	cyl := NewCylinder(1, 2, true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.point, tt.direction.Normalize())
			if got := intersectTs(cyl, ray); len(got) != tt.count {
				t.Errorf("Expected %d intersections, got %v", tt.count, got)
			}
		})
	}
}

func TestCylinder_CapsWithShortDirection(t *testing.T) {
	cyl := NewCylinder(1, 2, true)
	ray := core.NewRay(core.Point(0, 5, 0), core.Vector(0, -0.00005, 0))

	if got := intersectTs(cyl, ray); !equalTs(got, []float64{60000, 80000}) {
		t.Errorf("Expected cap hits at [60000 80000], got %v", got)
	}
}

func TestCylinder_CapNormals(t *testing.T) {
	tests := []struct {
		point    core.Tuple
		expected core.Tuple
	}{
		{core.Point(0, 1, 0), core.Vector(0, -1, 0)},
		{core.Point(0.5, 1, 0), core.Vector(0, -1, 0)},
		{core.Point(0, 1, 0.5), core.Vector(0, -1, 0)},
		{core.Point(0, 2, 0), core.Vector(0, 1, 0)},
		{core.Point(0.5, 2, 0), core.Vector(0, 1, 0)},
		{core.Point(0, 2, 0.5), core.Vector(0, 1, 0)},
	}

	cyl := &Cylinder{Minimum: 1, Maximum: 2, Closed: true}
	for _, tt := range tests {
		if got := cyl.LocalNormalAt(tt.point, Intersection{}); !got.Equals(tt.expected) {
			t.Errorf("Normal at %v: expected %v, got %v", tt.point, tt.expected, got)
		}
	}
}

func TestCylinder_Bounds(t *testing.T) {
	b := (&Cylinder{Minimum: -5, Maximum: 3}).Bounds()
	if !b.Min.Equals(core.Point(-1, -5, -1)) || !b.Max.Equals(core.Point(1, 3, 1)) {
		t.Errorf("Unexpected bounds %v %v", b.Min, b.Max)
	}
}

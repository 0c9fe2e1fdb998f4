package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		expected bool
	}{
		{"identical", 1.5, 1.5, true},
		{"within epsilon", 1.0, 1.00005, true},
		{"outside epsilon", 1.0, 1.0002, false},
		{"both positive infinity", math.Inf(1), math.Inf(1), true},
		{"opposite infinities", math.Inf(1), math.Inf(-1), false},
		{"infinity and finite", math.Inf(1), 1e9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.expected {
				t.Errorf("Equal(%v, %v) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestTuple_PointAndVector(t *testing.T) {
	p := Point(4, -4, 3)
	if !p.IsPoint() || p.IsVector() {
		t.Errorf("Point(4,-4,3) should be a point, got w=%v", p.W)
	}

	v := Vector(4, -4, 3)
	if !v.IsVector() || v.IsPoint() {
		t.Errorf("Vector(4,-4,3) should be a vector, got w=%v", v.W)
	}
}

func TestTuple_Arithmetic(t *testing.T) {
	tests := []struct {
		name     string
		got      Tuple
		expected Tuple
	}{
		{"point plus vector", Point(3, -2, 5).Add(Vector(-2, 3, 1)), Point(1, 1, 6)},
		{"point minus point", Point(3, 2, 1).Subtract(Point(5, 6, 7)), Vector(-2, -4, -6)},
		{"point minus vector", Point(3, 2, 1).Subtract(Vector(5, 6, 7)), Point(-2, -4, -6)},
		{"vector minus vector", Vector(3, 2, 1).Subtract(Vector(5, 6, 7)), Vector(-2, -4, -6)},
		{"negate", NewTuple(1, -2, 3, -4).Negate(), NewTuple(-1, 2, -3, 4)},
		{"multiply by scalar", NewTuple(1, -2, 3, -4).Multiply(3.5), NewTuple(3.5, -7, 10.5, -14)},
		{"multiply by fraction", NewTuple(1, -2, 3, -4).Multiply(0.5), NewTuple(0.5, -1, 1.5, -2)},
		{"divide by scalar", NewTuple(1, -2, 3, -4).Divide(2), NewTuple(0.5, -1, 1.5, -2)},
		{"cross a b", Vector(1, 2, 3).Cross(Vector(2, 3, 4)), Vector(-1, 2, -1)},
		{"cross b a", Vector(2, 3, 4).Cross(Vector(1, 2, 3)), Vector(1, -2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestTuple_MagnitudeAndNormalize(t *testing.T) {
	tests := []struct {
		name      string
		v         Tuple
		magnitude float64
		normal    Tuple
	}{
		{"unit x", Vector(1, 0, 0), 1, Vector(1, 0, 0)},
		{"axis aligned", Vector(4, 0, 0), 4, Vector(1, 0, 0)},
		{"general", Vector(1, 2, 3), math.Sqrt(14), Vector(1/math.Sqrt(14), 2/math.Sqrt(14), 3/math.Sqrt(14))},
		{"negative", Vector(-1, -2, -3), math.Sqrt(14), Vector(-1/math.Sqrt(14), -2/math.Sqrt(14), -3/math.Sqrt(14))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !Equal(tt.v.Magnitude(), tt.magnitude) {
				t.Errorf("Expected magnitude %v, got %v", tt.magnitude, tt.v.Magnitude())
			}
			n := tt.v.Normalize()
			if !n.Equals(tt.normal) {
				t.Errorf("Expected normalized %v, got %v", tt.normal, n)
			}
			if !Equal(n.Magnitude(), 1) {
				t.Errorf("Normalized magnitude should be 1, got %v", n.Magnitude())
			}
		})
	}
}

func TestTuple_NormalizeZero(t *testing.T) {
	zero := Vector(0, 0, 0)
	if got := zero.Normalize(); !got.Equals(zero) {
		t.Errorf("Normalizing a zero vector should return it unchanged, got %v", got)
	}
}

func TestTuple_NormalizeIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		v := Vector(20*rng.Float64()-10, 20*rng.Float64()-10, 20*rng.Float64()-10)
		if v.Magnitude() < Epsilon {
			continue
		}
		unit := v.Normalize()
		if again := unit.Normalize(); !again.Equals(unit) {
			t.Fatalf("Normalize(%v) = %v, want %v", unit, again, unit)
		}
	}
}

func TestTuple_Dot(t *testing.T) {
	if got := Vector(1, 2, 3).Dot(Vector(2, 3, 4)); !Equal(got, 20) {
		t.Errorf("Expected dot product 20, got %v", got)
	}
}

func TestTuple_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Tuple
		normal   Tuple
		expected Tuple
	}{
		{"approaching at 45 degrees", Vector(1, -1, 0), Vector(0, 1, 0), Vector(1, 1, 0)},
		{"off a slanted surface", Vector(0, -1, 0), Vector(math.Sqrt2/2, math.Sqrt2/2, 0), Vector(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Reflect(tt.normal); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestColor_Operations(t *testing.T) {
	tests := []struct {
		name     string
		got      Color
		expected Color
	}{
		{"add", NewColor(0.9, 0.6, 0.75).Add(NewColor(0.7, 0.1, 0.25)), NewColor(1.6, 0.7, 1.0)},
		{"subtract", NewColor(0.9, 0.6, 0.75).Subtract(NewColor(0.7, 0.1, 0.25)), NewColor(0.2, 0.5, 0.5)},
		{"scalar", NewColor(0.2, 0.3, 0.4).Multiply(2), NewColor(0.4, 0.6, 0.8)},
		{"hadamard", NewColor(1, 0.2, 0.4).Hadamard(NewColor(0.9, 1, 0.1)), NewColor(0.9, 0.2, 0.04)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestColor_Bytes(t *testing.T) {
	tests := []struct {
		name    string
		c       Color
		r, g, b uint8
	}{
		{"in range", NewColor(0, 0.5, 1), 0, 128, 255},
		{"clamped high", NewColor(1.5, 2, 100), 255, 255, 255},
		{"clamped low", NewColor(-0.5, -1, 0), 0, 0, 0},
		{"rounded", NewColor(0.25, 0.75, 0.6), 64, 191, 153},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := tt.c.Bytes()
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("Expected (%d,%d,%d), got (%d,%d,%d)", tt.r, tt.g, tt.b, r, g, b)
			}
		})
	}
}

func TestRay_Position(t *testing.T) {
	ray := NewRay(Point(2, 3, 4), Vector(1, 0, 0))

	tests := []struct {
		t        float64
		expected Tuple
	}{
		{0, Point(2, 3, 4)},
		{1, Point(3, 3, 4)},
		{-1, Point(1, 3, 4)},
		{2.5, Point(4.5, 3, 4)},
	}

	for _, tt := range tests {
		if got := ray.Position(tt.t); !got.Equals(tt.expected) {
			t.Errorf("Position(%v): expected %v, got %v", tt.t, tt.expected, got)
		}
	}
}

func TestRay_Transform(t *testing.T) {
	ray := NewRay(Point(1, 2, 3), Vector(0, 1, 0))

	translated := ray.Transform(Translation(3, 4, 5))
	if !translated.Origin.Equals(Point(4, 6, 8)) || !translated.Direction.Equals(Vector(0, 1, 0)) {
		t.Errorf("Translation: got origin %v direction %v", translated.Origin, translated.Direction)
	}

	scaled := ray.Transform(Scaling(2, 3, 4))
	if !scaled.Origin.Equals(Point(2, 6, 12)) || !scaled.Direction.Equals(Vector(0, 3, 0)) {
		t.Errorf("Scaling: got origin %v direction %v", scaled.Origin, scaled.Direction)
	}

	// The original ray is a value and must be untouched
	if !ray.Origin.Equals(Point(1, 2, 3)) {
		t.Errorf("Transform mutated the original ray: %v", ray.Origin)
	}
}

func TestRay_TransformMovesPositions(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	value := func() float64 { return 6*rng.Float64() - 3 }

	for i := 0; i < 200; i++ {
		m := Identity().
			Scale(0.5+rng.Float64(), 0.5+rng.Float64(), 0.5+rng.Float64()).
			RotateX(value()).
			RotateY(value()).
			Shear(0.2*value(), 0, 0, 0.2*value(), 0, 0).
			Translate(value(), value(), value())
		ray := NewRay(Point(value(), value(), value()), Vector(value(), value(), value()))
		moved := ray.Transform(m)

		for _, tt := range []float64{-2.5, 0, 0.75, value()} {
			if got, want := moved.Position(tt), m.MultiplyTuple(ray.Position(tt)); !got.Equals(want) {
				t.Fatalf("Ray %d at t=%v: transformed position %v, want %v", i, tt, got, want)
			}
		}
	}
}

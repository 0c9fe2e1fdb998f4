package core

import "math"

// Epsilon is the tolerance used for every approximate scalar comparison
const Epsilon = 1e-4

// Infinity is positive infinity, used for unbounded shape extents
var Infinity = math.Inf(1)

// Equal reports whether two scalars are within Epsilon of each other.
// Infinities are equal only when their signs agree.
func Equal(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) < Epsilon
}

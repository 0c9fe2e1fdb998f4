package core

import "math"

// Translation moves points by (x, y, z); vectors are unaffected
func Translation(x, y, z float64) Matrix4 {
	m := Identity()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

// Scaling scales each axis independently
func Scaling(x, y, z float64) Matrix4 {
	m := Identity()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// RotationX rotates by radians around the x axis (right-handed)
func RotationX(radians float64) Matrix4 {
	c, s := math.Cos(radians), math.Sin(radians)
	return Matrix4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationY rotates by radians around the y axis (right-handed)
func RotationY(radians float64) Matrix4 {
	c, s := math.Cos(radians), math.Sin(radians)
	return Matrix4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationZ rotates by radians around the z axis (right-handed)
func RotationZ(radians float64) Matrix4 {
	c, s := math.Cos(radians), math.Sin(radians)
	return Matrix4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Shearing moves each component in proportion to the other two.
// xy means "x moved in proportion to y", and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix4 {
	return Matrix4{
		{1, xy, xz, 0},
		{yx, 1, yz, 0},
		{zx, zy, 1, 0},
		{0, 0, 0, 1},
	}
}

// ViewTransform orients the world relative to an eye at from looking at to
func ViewTransform(from, to, up Tuple) Matrix4 {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize()).Normalize()
	trueUp := left.Cross(forward)

	orientation := Matrix4{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	}
	return orientation.Multiply(Translation(-from.X, -from.Y, -from.Z))
}

// Fluent composition: each call applies its transform after the ones already
// in m, so Identity().RotateX(a).Scale(...).Translate(...) equals T·S·R.

// Translate appends a translation
func (m Matrix4) Translate(x, y, z float64) Matrix4 {
	return Translation(x, y, z).Multiply(m)
}

// Scale appends a scaling
func (m Matrix4) Scale(x, y, z float64) Matrix4 {
	return Scaling(x, y, z).Multiply(m)
}

// RotateX appends a rotation around x
func (m Matrix4) RotateX(radians float64) Matrix4 {
	return RotationX(radians).Multiply(m)
}

// RotateY appends a rotation around y
func (m Matrix4) RotateY(radians float64) Matrix4 {
	return RotationY(radians).Multiply(m)
}

// RotateZ appends a rotation around z
func (m Matrix4) RotateZ(radians float64) Matrix4 {
	return RotationZ(radians).Multiply(m)
}

// Shear appends a shearing
func (m Matrix4) Shear(xy, xz, yx, yz, zx, zy float64) Matrix4 {
	return Shearing(xy, xz, yx, yz, zx, zy).Multiply(m)
}

package core

import (
	"errors"
	"fmt"
)

// ErrNonInvertible is returned when inverting a matrix whose determinant is zero
var ErrNonInvertible = errors.New("matrix is not invertible")

// Matrix2 is a 2x2 row-major matrix, used only for determinants
type Matrix2 [2][2]float64

// Matrix3 is a 3x3 row-major matrix, used only for determinants
type Matrix3 [3][3]float64

// Matrix4 is the 4x4 row-major transform matrix
type Matrix4 [4][4]float64

// Identity returns the 4x4 identity matrix
func Identity() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Determinant returns ad - bc
func (m Matrix2) Determinant() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Submatrix removes the given row and column
func (m Matrix3) Submatrix(row, col int) Matrix2 {
	var sub Matrix2
	r := 0
	for i := 0; i < 3; i++ {
		if i == row {
			continue
		}
		c := 0
		for j := 0; j < 3; j++ {
			if j == col {
				continue
			}
			sub[r][c] = m[i][j]
			c++
		}
		r++
	}
	return sub
}

// Minor is the determinant of the submatrix at (row, col)
func (m Matrix3) Minor(row, col int) float64 {
	return m.Submatrix(row, col).Determinant()
}

// Cofactor is the minor with sign (-1)^(row+col)
func (m Matrix3) Cofactor(row, col int) float64 {
	return cofactorSign(row, col) * m.Minor(row, col)
}

// Determinant expands along the first row
func (m Matrix3) Determinant() float64 {
	det := 0.0
	for col := 0; col < 3; col++ {
		det += m[0][col] * m.Cofactor(0, col)
	}
	return det
}

// Multiply returns the matrix product m·other
func (m Matrix4) Multiply(other Matrix4) Matrix4 {
	var result Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result[r][c] = m[r][0]*other[0][c] +
				m[r][1]*other[1][c] +
				m[r][2]*other[2][c] +
				m[r][3]*other[3][c]
		}
	}
	return result
}

// MultiplyTuple transforms a tuple. Vectors (w=0) ignore the translation column.
func (m Matrix4) MultiplyTuple(t Tuple) Tuple {
	return Tuple{
		X: m[0][0]*t.X + m[0][1]*t.Y + m[0][2]*t.Z + m[0][3]*t.W,
		Y: m[1][0]*t.X + m[1][1]*t.Y + m[1][2]*t.Z + m[1][3]*t.W,
		Z: m[2][0]*t.X + m[2][1]*t.Y + m[2][2]*t.Z + m[2][3]*t.W,
		W: m[3][0]*t.X + m[3][1]*t.Y + m[3][2]*t.Z + m[3][3]*t.W,
	}
}

// Transpose swaps rows and columns
func (m Matrix4) Transpose() Matrix4 {
	var result Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result[c][r] = m[r][c]
		}
	}
	return result
}

// Submatrix removes the given row and column
func (m Matrix4) Submatrix(row, col int) Matrix3 {
	var sub Matrix3
	r := 0
	for i := 0; i < 4; i++ {
		if i == row {
			continue
		}
		c := 0
		for j := 0; j < 4; j++ {
			if j == col {
				continue
			}
			sub[r][c] = m[i][j]
			c++
		}
		r++
	}
	return sub
}

// Minor is the determinant of the submatrix at (row, col)
func (m Matrix4) Minor(row, col int) float64 {
	return m.Submatrix(row, col).Determinant()
}

// Cofactor is the minor with sign (-1)^(row+col)
func (m Matrix4) Cofactor(row, col int) float64 {
	return cofactorSign(row, col) * m.Minor(row, col)
}

// Determinant expands along the first row
func (m Matrix4) Determinant() float64 {
	det := 0.0
	for col := 0; col < 4; col++ {
		det += m[0][col] * m.Cofactor(0, col)
	}
	return det
}

// Invertible reports whether the determinant is non-zero
func (m Matrix4) Invertible() bool {
	return m.Determinant() != 0
}

// Inverse returns the inverse matrix, or ErrNonInvertible when the determinant is zero
func (m Matrix4) Inverse() (Matrix4, error) {
	det := m.Determinant()
	if det == 0 {
		return Matrix4{}, fmt.Errorf("inverse of %v: %w", m, ErrNonInvertible)
	}

	var inverse Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			// Transposed store: cofactor(r,c) lands at [c][r]
			inverse[c][r] = m.Cofactor(r, c) / det
		}
	}
	return inverse, nil
}

// Equals compares two matrices element-wise within Epsilon
func (m Matrix4) Equals(other Matrix4) bool {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if !Equal(m[r][c], other[r][c]) {
				return false
			}
		}
	}
	return true
}

func cofactorSign(row, col int) float64 {
	if (row+col)%2 == 1 {
		return -1
	}
	return 1
}

package canvasmem

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
)

// Matrix represents a 2D affine transformation in homogeneous form.
// It is a 3x3 matrix in row-major order using the row-vector convention
// of the canvas transform() arguments:
//
//	| m11 m12 0 |
//	| m21 m22 0 |
//	| dx  dy  1 |
//
// A point (x, y) maps to (x*m11 + y*m21 + dx, x*m12 + y*m22 + dy).
// The last column is stored explicitly so that Multiply is a plain
// 3x3 product.
type Matrix [3][3]float64

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		{1, 0, 0},
		{0, 1, 0},
		{x, y, 1},
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		{x, 0, 0},
		{0, y, 0},
		{0, 0, 1},
	}
}

// Rotate creates a rotation matrix (angle in radians, clockwise in a
// y-down coordinate system).
func Rotate(angle float64) Matrix {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return Matrix{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}

// NewMatrix builds a matrix from the six arguments of the canvas
// transform and setTransform operations.
func NewMatrix(m11, m12, m21, m22, dx, dy float64) Matrix {
	return Matrix{
		{m11, m12, 0},
		{m21, m22, 0},
		{dx, dy, 1},
	}
}

// Multiply returns the product m * other.
// With the row-vector convention the result applies m first, then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	var res Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m[i][k] * other[k][j]
			}
			res[i][j] = sum
		}
	}
	return res
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: p.X*m[0][0] + p.Y*m[1][0] + m[2][0],
		Y: p.X*m[0][1] + p.Y*m[1][1] + m[2][1],
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: p.X*m[0][0] + p.Y*m[1][0],
		Y: p.X*m[0][1] + p.Y*m[1][1],
	}
}

// IsFinite reports whether every element is finite and not NaN.
func (m Matrix) IsFinite() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := m[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Invert returns the inverse matrix.
// The second result is false if the matrix is not invertible, in which
// case the identity is returned.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 || !m.IsFinite() {
		return Identity(), false
	}
	inv := 1 / det
	a, b := m[0][0], m[0][1]
	c, d := m[1][0], m[1][1]
	e, f := m[2][0], m[2][1]
	return NewMatrix(
		d*inv, -b*inv,
		-c*inv, a*inv,
		(c*f-d*e)*inv, (b*e-a*f)*inv,
	), true
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Affine returns the six affine coefficients in the order of the PDF
// "cm" operator, which uses the same row-vector convention.
func (m Matrix) Affine() matrix.Matrix {
	return matrix.Matrix{m[0][0], m[0][1], m[1][0], m[1][1], m[2][0], m[2][1]}
}

// FromAffine converts six affine coefficients back into a Matrix.
func FromAffine(a matrix.Matrix) Matrix {
	return NewMatrix(a[0], a[1], a[2], a[3], a[4], a[5])
}

// String formats the matrix as its six affine coefficients.
func (m Matrix) String() string {
	return fmt.Sprintf("[%g %g %g %g %g %g]", m[0][0], m[0][1], m[1][0], m[1][1], m[2][0], m[2][1])
}

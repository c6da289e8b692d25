package coaster

import (
	"fmt"
	"math"
)

// === Rotation matrices =====================================================
//
// Matrices are row-major and transform row vectors: result = v · M.
// A rotation built by RotationAxisAngle therefore turns a vector
// counter-clockwise around the axis when looking down the axis towards the
// origin (right-handed).

// Matrix3 is a 3x3 matrix, flattened by rows.
type Matrix3 [9]float64

// Matrix4 is a 4x4 matrix, flattened by rows.
type Matrix4 [16]float64

// Identity3 returns the 3x3 identity. Will transform a vector onto itself.
func Identity3() Matrix3 {
	var m Matrix3
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

func (m Matrix3) get(row, col int) float64 {
	return m[row*3+col]
}

func (m *Matrix3) set(row, col int, value float64) {
	m[row*3+col] = value
}

// At returns the value at (row, col).
func (m Matrix3) At(row, col int) float64 {
	return m.get(row, col)
}

// Row returns row i as a vector.
func (m Matrix3) Row(i int) Vector {
	return V(m.get(i, 0), m.get(i, 1), m.get(i, 2))
}

// SetRow sets row i from the x, y, z parts of v.
func (m *Matrix3) SetRow(i int, v Vector) {
	m.set(i, 0, v.X)
	m.set(i, 1, v.Y)
	m.set(i, 2, v.Z)
}

// RotationAxisAngle returns a rotation of theta radians around a
// normalized axis.
func RotationAxisAngle(axis Vector, theta float64) Matrix3 {
	var m Matrix3
	x, y, z := axis.X, axis.Y, axis.Z
	cos := math.Cos(theta)
	sin := math.Sin(theta)
	inv := 1.0 - cos
	m.set(0, 0, x*x*inv+cos)
	m.set(0, 1, x*y*inv+z*sin)
	m.set(0, 2, x*z*inv-y*sin)
	m.set(1, 0, x*y*inv-z*sin)
	m.set(1, 1, y*y*inv+cos)
	m.set(1, 2, y*z*inv+x*sin)
	m.set(2, 0, x*z*inv+y*sin)
	m.set(2, 1, y*z*inv-x*sin)
	m.set(2, 2, z*z*inv+cos)
	return m
}

// RotationY returns a rotation of theta radians around the Y axis.
func RotationY(theta float64) Matrix3 {
	var m Matrix3
	cos := math.Cos(theta)
	sin := math.Sin(theta)
	m.set(0, 0, cos)
	m.set(0, 2, -sin)
	m.set(1, 1, 1.0)
	m.set(2, 0, sin)
	m.set(2, 2, cos)
	return m
}

// TransformVector transforms v as a row vector: v · M.
// The argument is unchanged and a new vector with W = 0 is returned.
func (m Matrix3) TransformVector(v Vector) Vector {
	return V(
		m.get(0, 0)*v.X+m.get(1, 0)*v.Y+m.get(2, 0)*v.Z,
		m.get(0, 1)*v.X+m.get(1, 1)*v.Y+m.get(2, 1)*v.Z,
		m.get(0, 2)*v.X+m.get(1, 2)*v.Y+m.get(2, 2)*v.Z,
	)
}

// Combine returns m · n, i.e. the transform applying m first, then n.
func (m Matrix3) Combine(n Matrix3) Matrix3 {
	var o Matrix3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var s float64
			for k := 0; k < 3; k++ {
				s += m.get(row, k) * n.get(k, col)
			}
			o.set(row, col, s)
		}
	}
	return o
}

// Debug Stringer for a 3x3 matrix.
func (m Matrix3) String() string {
	return fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

// --- 4x4 -------------------------------------------------------------------

// Identity4 returns the 4x4 identity.
func Identity4() Matrix4 {
	var m Matrix4
	for i := 0; i < 4; i++ {
		m.set(i, i, 1.0)
	}
	return m
}

func (m Matrix4) get(row, col int) float64 {
	return m[row*4+col]
}

func (m *Matrix4) set(row, col int, value float64) {
	m[row*4+col] = value
}

// At returns the value at (row, col).
func (m Matrix4) At(row, col int) float64 {
	return m.get(row, col)
}

// Row returns row i as a vector, W included.
func (m Matrix4) Row(i int) Vector {
	return V4(m.get(i, 0), m.get(i, 1), m.get(i, 2), m.get(i, 3))
}

// SetRow sets row i from v, W included.
func (m *Matrix4) SetRow(i int, v Vector) {
	m.set(i, 0, v.X)
	m.set(i, 1, v.Y)
	m.set(i, 2, v.Z)
	m.set(i, 3, v.W)
}

// Matrix4FromRows creates a matrix from four row vectors.
func Matrix4FromRows(r0, r1, r2, r3 Vector) Matrix4 {
	var m Matrix4
	m.SetRow(0, r0)
	m.SetRow(1, r1)
	m.SetRow(2, r2)
	m.SetRow(3, r3)
	return m
}

// RotationAxisAngle4 is RotationAxisAngle embedded into a homogeneous 4x4 matrix.
func RotationAxisAngle4(axis Vector, theta float64) Matrix4 {
	r := RotationAxisAngle(axis, theta)
	m := Identity4()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m.set(row, col, r.get(row, col))
		}
	}
	return m
}

// Multiply4x3 multiplies m by the x, y and z columns of n. The W column of
// the result is 0. This is what turns a basis matrix and a matrix of control
// point rows into coefficient rows.
func (m Matrix4) Multiply4x3(n Matrix4) Matrix4 {
	var o Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 3; col++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += m.get(row, k) * n.get(k, col)
			}
			o.set(row, col, s)
		}
	}
	return o
}

// TransformVector transforms v as a homogeneous row vector: v · M.
func (m Matrix4) TransformVector(v Vector) Vector {
	c := [4]float64{v.X, v.Y, v.Z, v.W}
	var r [4]float64
	for col := 0; col < 4; col++ {
		for k := 0; k < 4; k++ {
			r[col] += c[k] * m.get(k, col)
		}
	}
	return V4(r[0], r[1], r[2], r[3])
}

// Debug Stringer for a 4x4 matrix.
func (m Matrix4) String() string {
	return fmt.Sprintf("[%g,%g,%g,%g|%g,%g,%g,%g|%g,%g,%g,%g|%g,%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7],
		m[8], m[9], m[10], m[11], m[12], m[13], m[14], m[15])
}

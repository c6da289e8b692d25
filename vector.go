package coaster

import (
	"fmt"
	"math"
)

// Vector is a 3D vector with an additional homogeneous coordinate W.
// W is 0 except where a vector takes part in a 4x4 matrix product.
//
// Vectors are values; all operations return a new vector.
type Vector struct {
	X, Y, Z, W float64
}

// Zero is the zero vector.
var Zero = Vector{}

// V is a quick notation for constructing a vector with W = 0.
func V(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// V4 constructs a vector including its homogeneous coordinate.
func V4(x, y, z, w float64) Vector {
	return Vector{X: x, Y: y, Z: z, W: w}
}

// Up is the world up axis (0,1,0).
func Up() Vector {
	return V(0, 1, 0)
}

// Right is the world right axis (1,0,0).
func Right() Vector {
	return V(1, 0, 0)
}

// Forward is the world forward axis (0,0,1).
func Forward() Vector {
	return V(0, 0, 1)
}

// Pretty Stringer for vectors.
func (v Vector) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// Add returns v + u. W of the result is 0.
func (v Vector) Add(u Vector) Vector {
	return V(v.X+u.X, v.Y+u.Y, v.Z+u.Z)
}

// Sub returns v - u. W of the result is 0.
func (v Vector) Sub(u Vector) Vector {
	return V(v.X-u.X, v.Y-u.Y, v.Z-u.Z)
}

// Scaled returns v scaled by s, including W.
func (v Vector) Scaled(s float64) Vector {
	return V4(v.X*s, v.Y*s, v.Z*s, v.W*s)
}

// Flip returns -v, including W.
func (v Vector) Flip() Vector {
	return v.Scaled(-1)
}

// Dot is the 3D dot product.
func (v Vector) Dot(u Vector) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross is the 3D cross product v × u.
func (v Vector) Cross(u Vector) Vector {
	return V(
		v.Y*u.Z-v.Z*u.Y,
		v.Z*u.X-v.X*u.Z,
		v.X*u.Y-v.Y*u.X,
	)
}

// LengthSquared returns |v|².
func (v Vector) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns |v|.
func (v Vector) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalized returns v scaled to unit length. Normalizing the zero vector
// yields NaN components; callers working with degenerate geometry have to
// check with IsNaN.
func (v Vector) Normalized() Vector {
	l := v.Length()
	if l == 0 {
		tracer().Debugf("normalizing zero vector")
	}
	return V(v.X/l, v.Y/l, v.Z/l)
}

// IsNaN is a predicate: does any of x, y, z hold a NaN?
func (v Vector) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// IsZero is a predicate: is v = (0,0,0) within ε ?
func (v Vector) IsZero() bool {
	return Is0(v.X) && Is0(v.Y) && Is0(v.Z)
}

// Equal compares the x, y and z parts of two vectors within ε.
func (v Vector) Equal(u Vector) bool {
	return Is0(v.X-u.X) && Is0(v.Y-u.Y) && Is0(v.Z-u.Z)
}

// EqualWithin compares the x, y and z parts of two vectors within tolerance tol.
func (v Vector) EqualWithin(u Vector, tol float64) bool {
	return math.Abs(v.X-u.X) <= tol && math.Abs(v.Y-u.Y) <= tol && math.Abs(v.Z-u.Z) <= tol
}

// Zap rounds near-zero components to 0.
func (v Vector) Zap() Vector {
	return V4(Zap(v.X), Zap(v.Y), Zap(v.Z), Zap(v.W))
}

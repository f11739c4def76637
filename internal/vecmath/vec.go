package vecmath

import (
	math "github.com/chewxy/math32"
)

// Vec is a 3D vector. Padding brings it to 16 bytes for 1-to-1 mapping with
// GLSL's vec3/std430 layout, matching the teacher's ms3.Vec.
type Vec struct {
	X, Y, Z float32
	_       float32
}

// Array returns the ordered components of v in a 3 element array.
func (v Vec) Array() [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

// Add returns the vector sum of p and q.
func Add(p, q Vec) Vec {
	return Vec{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns the vector sum of p and -q.
func Sub(p, q Vec) Vec {
	return Vec{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Scale returns the vector p scaled by f.
func Scale(f float32, p Vec) Vec {
	return Vec{X: f * p.X, Y: f * p.Y, Z: f * p.Z}
}

// Norm returns the Euclidean norm of p.
func Norm(p Vec) float32 {
	return math.Hypot(p.X, math.Hypot(p.Y, p.Z))
}

// EqualElem checks equality between vector elements to within a tolerance.
func EqualElem(a, b Vec, tol float32) bool {
	return EqualWithinAbs(a.X, b.X, tol) &&
		EqualWithinAbs(a.Y, b.Y, tol) &&
		EqualWithinAbs(a.Z, b.Z, tol)
}

// Package vecmath implements the 32 bit float vector and matrix math the
// V-PCC reconstruction pipeline needs: single points, their fixed
// normal-axis permutations (§4.E.3) and the model-view-projection multiply
// used by dynamic decimation (§4.E.5).
//
// It is a trimmed port of github.com/soypat/glgl's math/ms1 and math/ms3
// packages: only the handful of operations the reconstruction math and its
// tests exercise are kept, everything quaternion/SVD/2D/mesh related is
// dropped (see DESIGN.md).
package vecmath

import (
	math "github.com/chewxy/math32"
)

// Sign returns -1, 0, or 1 for negative, zero or positive x, matching OpenGL's "sign".
func Sign(x float32) float32 {
	if x == 0 {
		return 0
	}
	return math.Copysign(1, x)
}

// Clamp returns v clamped between lo and hi.
func Clamp(v, lo, hi float32) float32 {
	return math.Min(hi, math.Max(v, lo))
}

// EqualWithinAbs reports whether a and b are within tol of each other.
func EqualWithinAbs(a, b, tol float32) bool {
	return math.Abs(a-b) <= tol
}

package vecmath

// Mat3 is a 3x3 matrix, row major. The reconstruction pipeline only ever
// uses it to hold the three fixed normal-axis permutation matrices of
// §4.E.3 step 5, so most of the teacher's Mat3 surface (Skew, Eigs,
// RotatingMat3, Hessian...) is dropped — see DESIGN.md.
type Mat3 struct {
	x00, x01, x02 float32
	x10, x11, x12 float32
	x20, x21, x22 float32
}

func mat3(x00, x01, x02, x10, x11, x12, x20, x21, x22 float32) Mat3 {
	return Mat3{x00, x01, x02, x10, x11, x12, x20, x21, x22}
}

// IdentityMat3 returns the 3x3 identity matrix.
func IdentityMat3() Mat3 {
	return mat3(
		1, 0, 0,
		0, 1, 0,
		0, 0, 1)
}

// SwapXYMat3 returns the permutation matrix that swaps the X and Y axes.
func SwapXYMat3() Mat3 {
	return mat3(
		0, 1, 0,
		1, 0, 0,
		0, 0, 1)
}

// SwapXZMat3 returns the permutation matrix that swaps the X and Z axes.
func SwapXZMat3() Mat3 {
	return mat3(
		0, 0, 1,
		0, 1, 0,
		1, 0, 0)
}

// MulMatVec performs matrix multiplication on v: result = M * v.
func MulMatVec(m Mat3, v Vec) (result Vec) {
	result.X = v.X*m.x00 + v.Y*m.x01 + v.Z*m.x02
	result.Y = v.X*m.x10 + v.Y*m.x11 + v.Z*m.x12
	result.Z = v.X*m.x20 + v.Y*m.x21 + v.Z*m.x22
	return result
}

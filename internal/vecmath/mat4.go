package vecmath

// Mat4 is a 4x4 matrix, row major. Used to hold the model-view-projection
// matrix the dynamic decimation reference math (§4.E.5) multiplies points
// by. Most of the teacher's Mat4 surface (MulBox, RotationBetweenVecsMat4,
// quaternion conversions) is dropped — see DESIGN.md.
type Mat4 struct {
	x00, x01, x02, x03 float32
	x10, x11, x12, x13 float32
	x20, x21, x22, x23 float32
	x30, x31, x32, x33 float32
}

// NewMat4 returns a Mat4 from 16 row-major elements.
func NewMat4(x00, x01, x02, x03,
	x10, x11, x12, x13,
	x20, x21, x22, x23,
	x30, x31, x32, x33 float32) Mat4 {
	return Mat4{
		x00, x01, x02, x03,
		x10, x11, x12, x13,
		x20, x21, x22, x23,
		x30, x31, x32, x33,
	}
}

// IdentityMat4 returns the 4x4 identity matrix.
func IdentityMat4() Mat4 {
	return NewMat4(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1)
}

// MulMat4 returns the matrix product a*b.
func MulMat4(a, b Mat4) Mat4 {
	return Mat4{
		x00: a.x00*b.x00 + a.x01*b.x10 + a.x02*b.x20 + a.x03*b.x30,
		x01: a.x00*b.x01 + a.x01*b.x11 + a.x02*b.x21 + a.x03*b.x31,
		x02: a.x00*b.x02 + a.x01*b.x12 + a.x02*b.x22 + a.x03*b.x32,
		x03: a.x00*b.x03 + a.x01*b.x13 + a.x02*b.x23 + a.x03*b.x33,

		x10: a.x10*b.x00 + a.x11*b.x10 + a.x12*b.x20 + a.x13*b.x30,
		x11: a.x10*b.x01 + a.x11*b.x11 + a.x12*b.x21 + a.x13*b.x31,
		x12: a.x10*b.x02 + a.x11*b.x12 + a.x12*b.x22 + a.x13*b.x32,
		x13: a.x10*b.x03 + a.x11*b.x13 + a.x12*b.x23 + a.x13*b.x33,

		x20: a.x20*b.x00 + a.x21*b.x10 + a.x22*b.x20 + a.x23*b.x30,
		x21: a.x20*b.x01 + a.x21*b.x11 + a.x22*b.x21 + a.x23*b.x31,
		x22: a.x20*b.x02 + a.x21*b.x12 + a.x22*b.x22 + a.x23*b.x32,
		x23: a.x20*b.x03 + a.x21*b.x13 + a.x22*b.x23 + a.x23*b.x33,

		x30: a.x30*b.x00 + a.x31*b.x10 + a.x32*b.x20 + a.x33*b.x30,
		x31: a.x30*b.x01 + a.x31*b.x11 + a.x32*b.x21 + a.x33*b.x31,
		x32: a.x30*b.x02 + a.x31*b.x12 + a.x32*b.x22 + a.x33*b.x32,
		x33: a.x30*b.x03 + a.x31*b.x13 + a.x32*b.x23 + a.x33*b.x33,
	}
}

// MulPosition transforms v as a position (implicit w=1) by m and returns
// the dehomogenized result: used to project a reconstructed point through
// the caller-supplied MVP for the decimation cull distance of §4.E.5.
func MulPosition(m Mat4, v Vec) Vec {
	w := m.x30*v.X + m.x31*v.Y + m.x32*v.Z + m.x33
	result := Vec{
		X: m.x00*v.X + m.x01*v.Y + m.x02*v.Z + m.x03,
		Y: m.x10*v.X + m.x11*v.Y + m.x12*v.Z + m.x13,
		Z: m.x20*v.X + m.x21*v.Y + m.x22*v.Z + m.x23,
	}
	if w != 0 && w != 1 {
		result = Scale(1/w, result)
	}
	return result
}

// Array returns m's elements in column-major order, the OpenGL upload
// order GLSL expects for uniform matrices.
func (m Mat4) Array() [16]float32 {
	return [16]float32{
		m.x00, m.x10, m.x20, m.x30,
		m.x01, m.x11, m.x21, m.x31,
		m.x02, m.x12, m.x22, m.x32,
		m.x03, m.x13, m.x23, m.x33,
	}
}

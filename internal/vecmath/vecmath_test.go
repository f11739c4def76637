package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVecArith(t *testing.T) {
	a := Vec{X: 1, Y: 2, Z: 3}
	b := Vec{X: 4, Y: -1, Z: 0.5}

	assert.Equal(t, Vec{X: 5, Y: 1, Z: 3.5}, Add(a, b))
	assert.Equal(t, Vec{X: -3, Y: 3, Z: 2.5}, Sub(a, b))
	assert.Equal(t, Vec{X: 2, Y: 4, Z: 6}, Scale(2, a))
	assert.InDelta(t, 3.7416575, Norm(a), 1e-6)
}

func TestEqualElem(t *testing.T) {
	a := Vec{X: 1, Y: 2, Z: 3}
	b := Vec{X: 1.0000001, Y: 2, Z: 3}
	assert.True(t, EqualElem(a, b, 1e-5))
	assert.False(t, EqualElem(a, b, 1e-9))
}

func TestSwapPermutations(t *testing.T) {
	v := Vec{X: 1, Y: 2, Z: 3}

	assert.Equal(t, v, MulMatVec(IdentityMat3(), v))
	assert.Equal(t, Vec{X: 2, Y: 1, Z: 3}, MulMatVec(SwapXYMat3(), v))
	assert.Equal(t, Vec{X: 3, Y: 2, Z: 1}, MulMatVec(SwapXZMat3(), v))
}

func TestMat4Identity(t *testing.T) {
	v := Vec{X: 1, Y: -2, Z: 0.5}
	assert.True(t, EqualElem(v, MulPosition(IdentityMat4(), v), 1e-7))
}

func TestMat4MulAndTranslate(t *testing.T) {
	translate := NewMat4(
		1, 0, 0, 10,
		0, 1, 0, 20,
		0, 0, 1, 30,
		0, 0, 0, 1)
	v := Vec{X: 1, Y: 1, Z: 1}
	got := MulPosition(translate, v)
	assert.True(t, EqualElem(Vec{X: 11, Y: 21, Z: 31}, got, 1e-7))

	combined := MulMat4(translate, IdentityMat4())
	assert.True(t, EqualElem(Vec{X: 11, Y: 21, Z: 31}, MulPosition(combined, v), 1e-7))
}

func TestClampAndSign(t *testing.T) {
	assert.Equal(t, float32(0), Sign(0))
	assert.Equal(t, float32(1), Sign(5))
	assert.Equal(t, float32(-1), Sign(-5))
	assert.Equal(t, float32(2), Clamp(5, -1, 2))
	assert.Equal(t, float32(-1), Clamp(-5, -1, 2))
	assert.Equal(t, float32(0.5), Clamp(0.5, -1, 2))
}

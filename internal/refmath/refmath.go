// Package refmath is a pure-Go mirror of the model-builder compute
// shader's per-pixel unprojection math (§4.E.3 steps 4-6) and the dynamic
// decimation LOD rule (§4.E.5), grounded on the same algorithm
// internal/shaders.ModelBuilderSource/DecimationProjectedSource implement
// in GLSL.
//
// It exists only so tests can assert the documented unprojection semantics
// without a live GL context; its only caller is its own _test.go file. It
// is never called by Pipeline, synth.Facade, or any other non-test code,
// and is not a CPU rendering fallback.
package refmath

import (
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/internal/vecmath"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/metadata"
)

// PatchOffsets are the caller-supplied global 3D patch offsets (§4.E.3
// step 5: N_off, T_off, B_off).
type PatchOffsets struct {
	N, T, B float32
}

// normalMat returns the fixed permutation matrix for the given normal axis
// (§4.E.3 step 5's R_normal table).
func normalMat(normalAxis uint8) vecmath.Mat3 {
	switch normalAxis {
	case 1:
		return vecmath.SwapXYMat3()
	case 2:
		return vecmath.SwapXZMat3()
	default:
		return vecmath.IdentityMat3()
	}
}

// Unproject computes the local-then-world point for one atlas pixel
// (px,py) given its patch and the decoded geometry sample geoR (the red
// channel of the geometry texture at that pixel), following §4.E.3 step 5
// exactly. maxBbox normalizes the result.
func Unproject(px, py int, patch metadata.Patch, geoR float32, off PatchOffsets, maxBbox float32) vecmath.Vec {
	projSign := float32(255) * (1 - 2*float32(patch.ProjectionMode))

	originX := float32(px) - float32(patch.U0)*16
	originY := float32(py) - float32(patch.V0)*16

	var t, b float32
	if patch.Orientation == 1 {
		t, b = originY, originX
	} else {
		t, b = originX, originY
	}

	tPrime := t + float32(patch.U1)
	bPrime := b + float32(patch.V1)
	n := float32(patch.D1) + geoR*projSign

	local := vecmath.Vec{
		X: n + off.N*projSign,
		Y: bPrime + off.B,
		Z: tPrime + off.T,
	}

	world := vecmath.MulMatVec(normalMat(patch.NormalAxis), local)
	return vecmath.Scale(1/maxBbox, world)
}

// LOD is a dynamic-decimation per-block level-of-detail decision (§4.E.5).
type LOD struct {
	Level  uint8 // 0 (culled), 1, 2, or 4
	Culled bool
}

// DecimationRanges are the tunable thresholds of §4.E.5.
type DecimationRanges struct {
	R1, R2       float32
	VPCullFactor float32
}

// ChooseLOD mirrors internal/shaders.DecimationProjectedSource (itself
// grounded on VPCCModelBuilder.cpp's decimation_code_2, the variant the
// original actually compiles): it takes two world points supplied by the
// caller, p0 (the block's representative pixel) and p1 (the same pixel
// with B'+=1, T'+=1), transforms both through mvp, and thresholds the NDC
// distance between them. The cull test looks at p0's NDC position only.
// Note the thresholds run the opposite way from a
// naive reading: a small NDC distance selects the coarsest LOD (4), a
// large one the finest (1) — that is what the original's
// "dist<r1 -> 4u ... dist>r2 -> 1u" literally does.
func ChooseLOD(p0 vecmath.Vec, p1 vecmath.Vec, mvp vecmath.Mat4, ranges DecimationRanges) LOD {
	ndc0 := vecmath.MulPosition(mvp, p0)
	ndc1 := vecmath.MulPosition(mvp, p1)
	d := vecmath.Norm(vecmath.Sub(ndc1, ndc0))

	var level uint8
	switch {
	case d < ranges.R1:
		level = 4
	case d < ranges.R2:
		level = 2
	default:
		level = 1
	}

	if absF(ndc0.X) > ranges.VPCullFactor || absF(ndc0.Y) > ranges.VPCullFactor {
		return LOD{Level: 0, Culled: true}
	}
	return LOD{Level: level}
}

func absF(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

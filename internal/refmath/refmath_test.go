package refmath

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/internal/vecmath"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/metadata"
)

func TestUnprojectIdentityNormalAxis(t *testing.T) {
	patch := metadata.Patch{U0: 0, V0: 0, U1: 0, V1: 0, D1: 10, NormalAxis: 0, Orientation: 0, ProjectionMode: 0}
	p := Unproject(16, 16, patch, 1.0, PatchOffsets{}, 1)
	// projSign = 255, N = 10 + 1*255 = 265; origin=(16,16); orientation 0 -> T=16,B=16
	assert.InDelta(t, 265, p.X, 1e-3)
	assert.InDelta(t, 16, p.Y, 1e-3)
	assert.InDelta(t, 16, p.Z, 1e-3)
}

func TestUnprojectNegativeProjectionMode(t *testing.T) {
	patch := metadata.Patch{D1: 10, ProjectionMode: 1}
	p := Unproject(0, 0, patch, 1.0, PatchOffsets{}, 1)
	// projSign = -255, N = 10 - 255 = -245
	assert.InDelta(t, -245, p.X, 1e-3)
}

func TestUnprojectSwapXYNormalAxis(t *testing.T) {
	patch := metadata.Patch{D1: 1, NormalAxis: 1}
	p := Unproject(0, 0, patch, 0, PatchOffsets{}, 1)
	// local = (N=1+0*255=1, B=0, T=0); swap X/Y -> world=(B,N,T)=(0,1,0)
	assert.InDelta(t, 0, p.X, 1e-3)
	assert.InDelta(t, 1, p.Y, 1e-3)
	assert.InDelta(t, 0, p.Z, 1e-3)
}

func TestChooseLODThresholds(t *testing.T) {
	// DecimationProjectedSource's thresholds run small-distance-to-coarse:
	// dist<r1 -> LOD4, r1<dist<r2 -> LOD2, dist>r2 -> LOD1.
	ranges := DecimationRanges{R1: 0.1, R2: 0.5, VPCullFactor: 1.5}
	mvp := vecmath.IdentityMat4()

	p0 := vecmath.Vec{X: 0, Y: 0, Z: 0}

	close := vecmath.Vec{X: 0.05, Y: 0, Z: 0}
	assert.Equal(t, uint8(4), ChooseLOD(p0, close, mvp, ranges).Level)

	mid := vecmath.Vec{X: 0.3, Y: 0, Z: 0}
	assert.Equal(t, uint8(2), ChooseLOD(p0, mid, mvp, ranges).Level)

	far := vecmath.Vec{X: 0.9, Y: 0, Z: 0}
	assert.Equal(t, uint8(1), ChooseLOD(p0, far, mvp, ranges).Level)
}

func TestChooseLODCullsOutsideViewport(t *testing.T) {
	ranges := DecimationRanges{R1: 0.1, R2: 0.5, VPCullFactor: 1.0}
	mvp := vecmath.IdentityMat4()
	p0 := vecmath.Vec{X: 2.0, Y: 0, Z: 0}
	p1 := vecmath.Vec{X: 2.05, Y: 0, Z: 0}
	lod := ChooseLOD(p0, p1, mvp, ranges)
	assert.True(t, lod.Culled)
	assert.Equal(t, uint8(0), lod.Level)
}

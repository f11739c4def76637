package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameOf(idx int32, patches []Patch, blocks []uint32) FrameMetadata {
	return FrameMetadata{
		FrameIndex:   idx,
		FrameWidth:   32,
		FrameHeight:  16,
		Patches:      patches,
		BlockToPatch: blocks,
	}
}

func TestPackerPacksNonEmptyBlock(t *testing.T) {
	p := NewPacker(nil)
	patches := []Patch{{U0: 1, V0: 2, U1: 3, V1: 4, D1: 5, NormalAxis: 1, Orientation: 1, ProjectionMode: 0}}
	fm := frameOf(0, patches, []uint32{1, 0})

	ok := p.Pack(fm)
	require.True(t, ok)
	require.Len(t, p.UV0UV1(), 2)
	assert.Equal(t, RGBA32F{R: 1, G: 2, B: 3, A: 4}, p.UV0UV1()[0])
	assert.Equal(t, RGBA32F{}, p.UV0UV1()[1])
	assert.Equal(t, RGBA32F{R: 5, G: 1, B: 1, A: 0}, p.D1NOp()[0])
}

func TestPackerSkipsRepackOnSameFrameIndex(t *testing.T) {
	p := NewPacker(nil)
	patches := []Patch{{U0: 1}}
	fm := frameOf(3, patches, []uint32{1, 0})
	require.True(t, p.Pack(fm))

	stale := frameOf(3, nil, []uint32{0, 0})
	ok := p.Pack(stale)
	require.True(t, ok)
	// unchanged: still reflects the first pack, not the (ignored) second call
	assert.Equal(t, float32(1), p.UV0UV1()[0].R)
}

func TestPackerRejectsLengthMismatch(t *testing.T) {
	p := NewPacker(nil)
	fm := frameOf(0, nil, []uint32{0, 0, 0})
	ok := p.Pack(fm)
	assert.False(t, ok)
	assert.Empty(t, p.UV0UV1())
}

func TestPackerGrowsButNeverShrinks(t *testing.T) {
	p := NewPacker(nil)
	require.True(t, p.Pack(frameOf(0, nil, make([]uint32, 2))))
	firstCap := cap(p.UV0UV1())

	bigFM := FrameMetadata{FrameIndex: 1, FrameWidth: 64, FrameHeight: 32, BlockToPatch: make([]uint32, 8)}
	require.True(t, p.Pack(bigFM))
	assert.GreaterOrEqual(t, cap(p.UV0UV1()), 8)
	assert.GreaterOrEqual(t, cap(p.UV0UV1()), firstCap)
}

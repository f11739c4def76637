package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockGridSize(t *testing.T) {
	fm := FrameMetadata{FrameWidth: 64, FrameHeight: 32}
	assert.Equal(t, 4, fm.BlockGridWidth())
	assert.Equal(t, 2, fm.BlockGridHeight())
	assert.Equal(t, 8, fm.BlockGridSize())
}

func TestValidRejectsWrongLength(t *testing.T) {
	fm := FrameMetadata{
		FrameWidth:   32,
		FrameHeight:  16,
		BlockToPatch: []uint32{0, 0, 0},
	}
	assert.False(t, fm.Valid())
}

func TestValidRejectsOutOfRangePatchIndex(t *testing.T) {
	fm := FrameMetadata{
		FrameWidth:   16,
		FrameHeight:  16,
		Patches:      []Patch{{}},
		BlockToPatch: []uint32{2},
	}
	assert.False(t, fm.Valid())
}

func TestValidAcceptsEmptyBlocks(t *testing.T) {
	fm := FrameMetadata{
		FrameWidth:   16,
		FrameHeight:  16,
		BlockToPatch: []uint32{0},
	}
	assert.True(t, fm.Valid())
}

// Package metadata implements the per-frame unprojection parameters the
// upstream parser hands to the builder (§3 FrameMetadata/Patch, §4.D).
package metadata

// Patch holds one patch's unprojection parameters (§3).
type Patch struct {
	U0, V0 uint16 // atlas origin, block units (1 unit = 16px)
	U1, V1 uint16 // tangent/bitangent origin, pixel units
	D1     uint16 // origin along the normal axis

	NormalAxis     uint8 // 0,1,2 -> X,Y,Z (§4.5 table)
	Orientation    uint8 // 0 = no swap, 1 = swap tangent/bitangent
	ProjectionMode uint8 // 0 = positive offset along normal, 1 = negative
}

// FrameMetadata is one reconstructed 3D frame's worth of patch layout (§3).
type FrameMetadata struct {
	FrameIndex  int32
	FrameWidth  uint32
	FrameHeight uint32
	Patches     []Patch

	// BlockToPatch has length (FrameWidth/16)*(FrameHeight/16). Each entry
	// is 0 (block empty) or patch_index+1.
	BlockToPatch []uint32
}

// BlockGridWidth returns FrameWidth/16.
func (m FrameMetadata) BlockGridWidth() int { return int(m.FrameWidth / 16) }

// BlockGridHeight returns FrameHeight/16.
func (m FrameMetadata) BlockGridHeight() int { return int(m.FrameHeight / 16) }

// BlockGridSize is the expected BlockToPatch length.
func (m FrameMetadata) BlockGridSize() int {
	return m.BlockGridWidth() * m.BlockGridHeight()
}

// Valid checks the invariants of §3: block_to_patch is exactly the
// block-grid size and every non-zero entry indexes a valid patch.
func (m FrameMetadata) Valid() bool {
	if len(m.BlockToPatch) != m.BlockGridSize() {
		return false
	}
	n := uint32(len(m.Patches))
	for _, e := range m.BlockToPatch {
		if e != 0 && e > n {
			return false
		}
	}
	return true
}

package metadata

import "log/slog"

// RGBA32F is one packed texel: four float32 channels, matching the GL-side
// RGBA32F block-meta textures (§4.D, §3).
type RGBA32F struct{ R, G, B, A float32 }

// Packer produces the two block-grid textures the model builder samples
// per pixel (§4.E.3): uv0uv1 and d1nop. It re-packs only when the incoming
// frame_index differs from the last one packed, and its CPU-side staging
// buffers grow but never shrink across frames.
type Packer struct {
	log *slog.Logger

	lastFrameIndex int32
	havePacked     bool

	uv0uv1 []RGBA32F
	d1nop  []RGBA32F

	gridW, gridH int
}

// NewPacker returns a Packer that logs skipped frames through log.
func NewPacker(log *slog.Logger) *Packer {
	if log == nil {
		log = slog.Default()
	}
	return &Packer{log: log}
}

// Pack re-packs the staging buffers from fm if fm.FrameIndex differs from
// the last packed frame index. On a block_to_patch length mismatch it logs
// and leaves the buffers untouched for this frame (§4.D errors), reporting
// ok=false.
func (p *Packer) Pack(fm FrameMetadata) (ok bool) {
	if p.havePacked && fm.FrameIndex == p.lastFrameIndex {
		return true
	}

	want := fm.BlockGridSize()
	if len(fm.BlockToPatch) != want {
		p.log.Error("metadata: block_to_patch length mismatch, frame skipped",
			"frame_index", fm.FrameIndex, "got", len(fm.BlockToPatch), "want", want)
		return false
	}

	p.growTo(want)
	p.gridW, p.gridH = fm.BlockGridWidth(), fm.BlockGridHeight()

	for i, entry := range fm.BlockToPatch {
		if entry == 0 || int(entry-1) >= len(fm.Patches) {
			p.uv0uv1[i] = RGBA32F{}
			p.d1nop[i] = RGBA32F{}
			continue
		}
		patch := fm.Patches[entry-1]
		p.uv0uv1[i] = RGBA32F{
			R: float32(patch.U0), G: float32(patch.V0),
			B: float32(patch.U1), A: float32(patch.V1),
		}
		p.d1nop[i] = RGBA32F{
			R: float32(patch.D1), G: float32(patch.NormalAxis),
			B: float32(patch.Orientation), A: float32(patch.ProjectionMode),
		}
	}

	p.lastFrameIndex = fm.FrameIndex
	p.havePacked = true
	return true
}

// growTo extends the staging slices to at least n entries, never shrinking
// them (§4.D: "grow but never shrink").
func (p *Packer) growTo(n int) {
	if cap(p.uv0uv1) < n {
		grown := make([]RGBA32F, n)
		copy(grown, p.uv0uv1)
		p.uv0uv1 = grown
	} else {
		p.uv0uv1 = p.uv0uv1[:n]
	}
	if cap(p.d1nop) < n {
		grown := make([]RGBA32F, n)
		copy(grown, p.d1nop)
		p.d1nop = grown
	} else {
		p.d1nop = p.d1nop[:n]
	}
}

// UV0UV1 returns the current packed (u0,v0,u1,v1) staging buffer, block-grid
// ordered row-major (GridWidth() wide).
func (p *Packer) UV0UV1() []RGBA32F { return p.uv0uv1 }

// D1NOp returns the current packed (d1, normal_axis, orientation,
// projection_mode) staging buffer.
func (p *Packer) D1NOp() []RGBA32F { return p.d1nop }

// GridWidth is the block-grid width of the last successfully packed frame.
func (p *Packer) GridWidth() int { return p.gridW }

// GridHeight is the block-grid height of the last successfully packed frame.
func (p *Packer) GridHeight() int { return p.gridH }

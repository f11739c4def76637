//go:build !tinygo && cgo

package builder

import (
	"errors"
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/internal/glcore"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/internal/shaders"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/metadata"
)

// Pipeline owns the GL programs, the atomic/indirect buffers, the
// decimation texture, and the block-meta packer for one reconstruction
// stream (§4.E, §3 "Ownership").
type Pipeline struct {
	log  *slog.Logger
	errs *glcore.ErrSink

	cfg Config

	fixedProgram, dynamicProgram glcore.Program
	clearProgram, decimProgram   glcore.Program
	programsReady                bool
	unusable                     bool // §4.E.6: permanent after a compile/link failure

	atomicCounter    glcore.ShaderStorageBuffer
	indirect         glcore.IndirectBuffer
	buffersAllocated bool

	decimationTex          glcore.Texture
	decimationAllocated    bool
	decimGridW, decimGridH int

	uv0uv1Tex, d1nopTex glcore.Texture
	blockMetaAllocated  bool

	packer *metadata.Packer

	lastRebuildFrameIndex int32
	haveRebuilt           bool
	forceRebuild          bool
}

// NewPipeline returns a Pipeline ready for its first Build call.
func NewPipeline(log *slog.Logger, cfg Config) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		log:    log,
		errs:   glcore.NewErrSink(log),
		cfg:    cfg.withDefaults(),
		packer: metadata.NewPacker(log),
	}
}

// SetForceRebuild implements synth's set_force_rebuild (§4.G): forces the
// next Build call past the rebuild gate regardless of frame_index.
func (p *Pipeline) SetForceRebuild(v bool) { p.forceRebuild = v }

// SetConfig replaces the tunables (decimation ranges, offsets, etc). The
// programs are compiled once, on the first Build call, with the Shadow
// setting in force at that time; a later change to Shadow does not
// recompile them. DynamicDecimation switches between the fixed and dynamic
// programs, which are both compiled up front.
func (p *Pipeline) SetConfig(cfg Config) { p.cfg = cfg.withDefaults() }

// Unusable reports whether a prior GL compile/link failure has
// permanently disabled this pipeline (§4.E.6).
func (p *Pipeline) Unusable() bool { return p.unusable }

// IndirectBufferID returns the GL buffer name the draw call should bind as
// its indirect-command source (§6.4). Zero until the first successful
// Build call has allocated it.
func (p *Pipeline) IndirectBufferID() uint32 { return p.indirect.ID() }

// IndirectCount reads back the indirect buffer's count word (§8 properties
// 1-3). The data path itself never reads this back; it exists for tests
// and diagnostics.
func (p *Pipeline) IndirectCount() (uint32, error) {
	return glcore.ReadIndirectCount(p.indirect)
}

// Build runs the 8-step per-frame control flow of §4.E.2, skipping the
// frame (leaving the indirect buffer untouched) per the failure semantics
// of §4.E.6.
func (p *Pipeline) Build(in Inputs) error {
	if p.unusable {
		return nil
	}
	if !in.Texture.valid() || !in.Geometry.valid() || !in.Occupancy.valid() ||
		!in.Position.valid() || !in.Canvas.valid() || (p.cfg.Shadow && !in.Shadow.valid()) {
		p.log.Warn("builder: missing or zero-sized input texture, frame skipped")
		return nil
	}

	p.errs.Stage("builder.ensure", func() {
		p.ensurePrograms()
		if !p.unusable {
			p.ensureBuffers()
			p.ensureDecimationTexture(in)
			p.ensureBlockMetaTextures(in.Metadata)
		}
	})
	if p.unusable {
		return errors.New("builder: pipeline permanently unusable after a compile/link failure")
	}

	p.errs.Stage("builder.pack", func() {
		if p.packer.Pack(in.Metadata) {
			p.uploadBlockMeta()
		}
	})

	rebuild := p.cfg.DynamicDecimation || p.forceRebuild ||
		!p.haveRebuilt || in.Metadata.FrameIndex != p.lastRebuildFrameIndex
	if !rebuild {
		return nil
	}

	if p.cfg.Shadow {
		p.errs.Stage("builder.shadow_clear", func() { p.runClear(in.Shadow) })
	}
	if p.cfg.DynamicDecimation {
		p.errs.Stage("builder.decimation", func() { p.runDecimation(in) })
	}
	p.errs.Stage("builder.atomic_reset", func() {
		if err := glcore.ZeroFirstWord(p.atomicCounter); err != nil {
			p.log.Error("builder: atomic reset failed", "err", err)
		}
	})
	p.errs.Stage("builder.build_pass", func() { p.runBuild(in) })
	p.errs.Stage("builder.indirect_publish", func() {
		if err := glcore.CopyCounterToIndirect(p.atomicCounter, p.indirect); err != nil {
			p.log.Error("builder: indirect publish failed", "err", err)
		}
	})

	p.lastRebuildFrameIndex = in.Metadata.FrameIndex
	p.haveRebuilt = true
	p.forceRebuild = false
	return nil
}

func (p *Pipeline) ensurePrograms() {
	if p.programsReady {
		return
	}
	compile := func(source string, variant shaders.Variant) (glcore.Program, bool) {
		prog, err := glcore.CompileCompute(shaders.Instantiate(source, variant), glcore.CompileFlagsStrict)
		if err != nil {
			p.log.Error("builder: shader compile/link failed, pipeline disabled", "err", err)
			p.unusable = true
			return glcore.Program{}, false
		}
		return prog, true
	}

	var ok bool
	p.clearProgram, ok = compile(shaders.ClearImageSource, shaders.Variant{})
	if !ok {
		return
	}
	p.fixedProgram, ok = compile(shaders.ModelBuilderSource, shaders.Variant{Shadow: p.cfg.Shadow, GlobalDecimation: true})
	if !ok {
		return
	}
	p.dynamicProgram, ok = compile(shaders.ModelBuilderSource, shaders.Variant{Shadow: p.cfg.Shadow, DynamicDecimation: true})
	if !ok {
		return
	}
	p.decimProgram, ok = compile(shaders.DecimationProjectedSource, shaders.Variant{})
	if !ok {
		return
	}
	p.programsReady = true
}

func (p *Pipeline) ensureBuffers() {
	if p.buffersAllocated {
		return
	}
	var err error
	p.atomicCounter, err = glcore.NewShaderStorageBuffer[uint32](nil, glcore.ShaderStorageBufferConfig{
		Usage: glcore.ReadWrite, Base: 3, MemSize: 4,
	})
	if err != nil {
		p.log.Error("builder: atomic SSBO allocation failed", "err", err)
		return
	}
	p.indirect, err = glcore.NewIndirectBuffer()
	if err != nil {
		p.log.Error("builder: indirect buffer allocation failed", "err", err)
		return
	}
	p.buffersAllocated = true
}

// ensureDecimationTexture (re)allocates DecimationTex (immutable storage,
// §4.C) when first needed or when the block grid resizes (§4.E.2 step 1).
func (p *Pipeline) ensureDecimationTexture(in Inputs) {
	gw, gh := in.Metadata.BlockGridWidth(), in.Metadata.BlockGridHeight()
	if gw == 0 || gh == 0 {
		return
	}
	if p.decimationAllocated && gw == p.decimGridW && gh == p.decimGridH {
		return
	}
	p.decimationTex.Delete()
	tex, err := glcore.NewImmutableTexture(glcore.ImageConfig{
		Width: gw, Height: gh,
		InternalFormat: gl.RGBA8UI, Format: gl.RGBA_INTEGER, Xtype: gl.UNSIGNED_BYTE,
		Access: gl.WRITE_ONLY, ImageUnit: 0,
	})
	if err != nil {
		p.log.Error("builder: decimation texture allocation failed", "err", err)
		return
	}
	p.decimationTex = tex
	p.decimGridW, p.decimGridH = gw, gh
	p.decimationAllocated = true
}

// ensureBlockMetaTextures (re)allocates the two RGBA32F block-meta
// textures (§4.D) when first needed or when the block grid resizes.
func (p *Pipeline) ensureBlockMetaTextures(fm metadata.FrameMetadata) {
	gw, gh := fm.BlockGridWidth(), fm.BlockGridHeight()
	if gw == 0 || gh == 0 {
		return
	}
	// The packer still holds the grid of the last packed frame, which is the
	// size the current block-meta textures were allocated for.
	if p.blockMetaAllocated && p.uv0uv1Tex.ID() != 0 && gw == p.packer.GridWidth() && gh == p.packer.GridHeight() {
		return
	}
	p.uv0uv1Tex.Delete()
	p.d1nopTex.Delete()
	cfg := glcore.ImageConfig{
		Width: gw, Height: gh,
		InternalFormat: gl.RGBA32F, Format: gl.RGBA, Xtype: gl.FLOAT,
	}
	uvTex, err := glcore.NewMutableTexture[float32](cfg, nil)
	if err != nil {
		p.log.Error("builder: uv0uv1 texture allocation failed", "err", err)
		return
	}
	d1Tex, err := glcore.NewMutableTexture[float32](cfg, nil)
	if err != nil {
		p.log.Error("builder: d1nop texture allocation failed", "err", err)
		return
	}
	p.uv0uv1Tex, p.d1nopTex = uvTex, d1Tex
	p.blockMetaAllocated = true
}

func rgbaToFloats(buf []metadata.RGBA32F) []float32 {
	out := make([]float32, 0, len(buf)*4)
	for _, v := range buf {
		out = append(out, v.R, v.G, v.B, v.A)
	}
	return out
}

func (p *Pipeline) uploadBlockMeta() {
	gw, gh := p.packer.GridWidth(), p.packer.GridHeight()
	cfg := glcore.ImageConfig{Width: gw, Height: gh, Format: gl.RGBA, Xtype: gl.FLOAT}
	if err := glcore.SetSubImage2D(p.uv0uv1Tex, cfg, rgbaToFloats(p.packer.UV0UV1())); err != nil {
		p.log.Error("builder: uv0uv1 upload failed", "err", err)
	}
	if err := glcore.SetSubImage2D(p.d1nopTex, cfg, rgbaToFloats(p.packer.D1NOp())); err != nil {
		p.log.Error("builder: d1nop upload failed", "err", err)
	}
}

func (p *Pipeline) runClear(shadow TextureProperty) {
	if _, err := glcore.AdoptTexture(shadow.Handle, glcore.ImageConfig{
		InternalFormat: gl.RGBA32F, Access: gl.WRITE_ONLY, ImageUnit: 0,
	}); err != nil {
		p.log.Error("builder: adopting shadow texture for clear failed", "err", err)
		return
	}
	p.clearProgram.Bind()
	if err := p.clearProgram.RunCompute(ceilDiv(shadow.Width, 32), ceilDiv(shadow.Height, 32), 1); err != nil {
		p.log.Error("builder: shadow clear dispatch failed", "err", err)
	}
}

func (p *Pipeline) runDecimation(in Inputs) {
	prog := p.decimProgram
	prog.Bind()

	setUniform1i(prog, "block_w\x00", int32(p.decimGridW))
	setUniform1i(prog, "block_h\x00", int32(p.decimGridH))
	setUniformMatrix4fv(prog, "MVP\x00", in.MVP)
	setUniform1f(prog, "norm_res_factor\x00", 1/p.cfg.MaxBbox)
	setUniform1f(prog, "r1\x00", p.cfg.R1)
	setUniform1f(prog, "r2\x00", p.cfg.R2)
	setUniform1f(prog, "vp_cull_factor\x00", p.cfg.VPCullFactor)

	bindSampler(in.Geometry, 0)
	bindAdoptedSampler(p.uv0uv1Tex, 1)
	bindAdoptedSampler(p.d1nopTex, 2)
	setUniform1i(prog, "tex_geo\x00", 0)
	setUniform1i(prog, "tex_uv0uv1\x00", 1)
	setUniform1i(prog, "tex_d1nop\x00", 2)

	if _, err := glcore.AdoptTexture(p.decimationTex.ID(), glcore.ImageConfig{
		InternalFormat: gl.RGBA8UI, Access: gl.WRITE_ONLY, ImageUnit: 0,
	}); err != nil {
		p.log.Error("builder: binding decimation image failed", "err", err)
		return
	}

	if err := prog.RunCompute(p.decimGridW, p.decimGridH, 1); err != nil {
		p.log.Error("builder: decimation dispatch failed", "err", err)
	}
}

func (p *Pipeline) runBuild(in Inputs) {
	var prog glcore.Program
	if p.cfg.DynamicDecimation {
		prog = p.dynamicProgram
	} else {
		prog = p.fixedProgram
	}
	prog.Bind()

	// Image bindings must be in exactly this order (§4.E.2): 0=position,
	// 1=canvas, 2=shadow (if enabled), 3=atomic SSBO.
	bindWriteImage(in.Position, 0, gl.RGBA32F)
	bindWriteImage(in.Canvas, 1, gl.RGBA8)
	if p.cfg.Shadow {
		bindWriteImage(in.Shadow, 2, gl.RGBA32F)
	}
	p.atomicCounter.Bind()

	setUniform1i(prog, "width\x00", int32(in.Position.Width))
	setUniform1i(prog, "height\x00", int32(in.Position.Height))
	setUniform1iU(prog, "vert_incr\x00", p.cfg.VertIncr)
	setUniform1f(prog, "norm_res_factor\x00", 1/p.cfg.MaxBbox)
	setUniform1f(prog, "N_off\x00", p.cfg.NOffset)
	setUniform1f(prog, "B_off\x00", p.cfg.BOffset)
	setUniform1f(prog, "T_off\x00", p.cfg.TOffset)
	if !p.cfg.DynamicDecimation {
		setUniform1iU(prog, "decimation_level\x00", p.cfg.DecimationLevel)
	}
	if p.cfg.Shadow {
		setUniform1f(prog, "shadow_res_factor\x00", float32(in.Shadow.Width)/p.cfg.MaxBbox)
	}

	bindSampler(in.Texture, 0)
	bindSampler(in.Geometry, 1)
	bindSampler(in.Occupancy, 2)
	bindAdoptedSampler(p.uv0uv1Tex, 3)
	bindAdoptedSampler(p.d1nopTex, 4)
	setUniform1i(prog, "tex_col\x00", 0)
	setUniform1i(prog, "tex_geo\x00", 1)
	setUniform1i(prog, "tex_ocm\x00", 2)
	setUniform1i(prog, "tex_uv0uv1\x00", 3)
	setUniform1i(prog, "tex_d1nop\x00", 4)
	if p.cfg.DynamicDecimation {
		bindAdoptedSampler(p.decimationTex, 5)
		setUniform1i(prog, "tex_dec\x00", 5)
	}

	gw := ceilDiv(in.Position.Width, 16) + 1
	gh := ceilDiv(in.Position.Height, 16) + 1
	if err := prog.RunCompute(gw, gh, 1); err != nil {
		p.log.Error("builder: build pass dispatch failed", "err", err)
	}
}

func bindSampler(prop TextureProperty, unit int) {
	tex, err := glcore.AdoptTexture(prop.Handle, glcore.ImageConfig{})
	if err != nil {
		return
	}
	tex.Bind(unit)
}

func bindAdoptedSampler(tex glcore.Texture, unit int) { tex.Bind(unit) }

func bindWriteImage(prop TextureProperty, unit uint32, internalFormat int32) {
	glcore.AdoptTexture(prop.Handle, glcore.ImageConfig{
		InternalFormat: internalFormat, Access: gl.WRITE_ONLY, ImageUnit: unit,
	})
}

func setUniform1i(prog glcore.Program, name string, v int32) {
	if loc, err := prog.UniformLocation(name); err == nil {
		prog.SetUniform1i(loc, v)
	}
}

func setUniform1iU(prog glcore.Program, name string, v uint32) {
	setUniform1i(prog, name, int32(v))
}

func setUniform1f(prog glcore.Program, name string, v float32) {
	if loc, err := prog.UniformLocation(name); err == nil {
		prog.SetUniform1f(loc, v)
	}
}

func setUniformMatrix4fv(prog glcore.Program, name string, m [16]float32) {
	if loc, err := prog.UniformLocation(name); err == nil {
		prog.SetUniformMatrix4fv(loc, m)
	}
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

package synth

import (
	"log/slog"

	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/builder"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/metadata"
)

// RenderJob picks the MVP that feeds the dynamic-decimation cull pass when
// the host renders the same reconstruction to more than one viewport
// (SUPPLEMENTED FEATURES #6). Selecting among jobs is metadata only: the
// actual draw for every viewport remains entirely the host's concern.
type RenderJob struct {
	Viewport  [4]int32
	MVP       [16]float32
	PointSize float32
}

// Facade is the single external entry point of §4.G: it owns the builder
// pipeline and the "current" externally-owned textures the host sets
// between synthesize calls.
type Facade struct {
	log      *slog.Logger
	pipeline *builder.Pipeline
	cfg      Config

	position, shadow builder.TextureProperty

	mvp                       [16]float32
	nOffset, tOffset, bOffset float32

	jobs      []RenderJob
	activeJob int
}

// New returns a Facade with its builder pipeline ready for the first
// Synthesize call.
func New(log *slog.Logger, cfg Config) *Facade {
	if log == nil {
		log = slog.Default()
	}
	cfg = cfg.withDefaults()
	f := &Facade{log: log, cfg: cfg}
	f.pipeline = builder.NewPipeline(log, cfg.toBuilderConfig(0, 0, 0))
	return f
}

// SetPositionTexture adopts the externally-owned PositionTex view (§6.3).
func (f *Facade) SetPositionTexture(p builder.TextureProperty) { f.position = p }

// SetShadowTexture adopts the externally-owned ShadowTex view; only read
// when Config.RenderShadow is set.
func (f *Facade) SetShadowTexture(p builder.TextureProperty) { f.shadow = p }

// SetIndirectBufferPtr is a no-op placeholder for host code migrating from
// an externally-allocated indirect buffer: the pipeline always owns and
// allocates its own (§4.E.2 step 1), surfaced read-only via
// IndirectBufferID so the host's draw call can bind it.
func (f *Facade) SetIndirectBufferPtr(uint32) {}

// IndirectBufferID returns the GL buffer name the host's draw call should
// bind as its indirect-command source (§6.4).
func (f *Facade) IndirectBufferID() uint32 { return f.pipeline.IndirectBufferID() }

// IndirectCount reads back the published point count (§8 properties 1-3).
func (f *Facade) IndirectCount() (uint32, error) { return f.pipeline.IndirectCount() }

// SetDecimationLevel sets the fixed-mode decimation level (§6.5).
func (f *Facade) SetDecimationLevel(n uint32) {
	f.cfg.DecimationLevel = n
	f.applyConfig()
}

// SetNumVertexPerPoint sets the per-point vertex multiplier (§6.5).
func (f *Facade) SetNumVertexPerPoint(n uint32) {
	f.cfg.NumVertexPerPoint = n
	f.applyConfig()
}

// SetMVP sets the model-view-projection matrix used by the dynamic
// decimation cull pass (§4.E.5) when no RenderJobs are installed. The
// build pass does not read it.
func (f *Facade) SetMVP(mvp [16]float32) { f.mvp = mvp }

// SetMaxBbox sets the normalization factor applied to unprojected
// coordinates (§4.E.1's norm_res_factor = 1/max_bbox).
func (f *Facade) SetMaxBbox(v float32) {
	f.cfg.MaxBbox = v
	f.applyConfig()
}

// SetGlobal3DPatchOffsets sets the N/T/B offsets added during unprojection
// (§4.E.1).
func (f *Facade) SetGlobal3DPatchOffsets(n, t, b float32) {
	f.nOffset, f.tOffset, f.bOffset = n, t, b
	f.applyConfig()
}

// SetDynamicDecimation toggles fixed vs dynamic per-block LOD (§4.E.4).
func (f *Facade) SetDynamicDecimation(v bool) {
	f.cfg.UseDynamicDecimation = v
	f.applyConfig()
}

// SetDecimationRanges sets the dynamic decimation thresholds and viewport
// cull factor (§4.E.5).
func (f *Facade) SetDecimationRanges(r1, r2, vpCullFactor float32) {
	f.cfg.R1, f.cfg.R2, f.cfg.VPCullFactor = r1, r2, vpCullFactor
	f.applyConfig()
}

// SetForceRebuild forces the next Synthesize call past the rebuild gate
// regardless of frame_index (§4.E.2 step 3).
func (f *Facade) SetForceRebuild(v bool) { f.pipeline.SetForceRebuild(v) }

// SetRenderJobs installs the multi-viewport job list (SUPPLEMENTED
// FEATURES #6). An empty list restores single-viewport behavior driven
// solely by SetMVP.
func (f *Facade) SetRenderJobs(jobs []RenderJob) {
	f.jobs = jobs
	f.activeJob = 0
}

// SelectRenderJob picks which installed RenderJob's MVP feeds the next
// Synthesize call's dynamic-decimation cull pass. A no-op if idx is out
// of range or no jobs are installed.
func (f *Facade) SelectRenderJob(idx int) {
	if idx < 0 || idx >= len(f.jobs) {
		return
	}
	f.activeJob = idx
}

func (f *Facade) applyConfig() {
	f.pipeline.SetConfig(f.cfg.toBuilderConfig(f.nOffset, f.tOffset, f.bOffset))
}

func (f *Facade) effectiveMVP() [16]float32 {
	if len(f.jobs) == 0 {
		return f.mvp
	}
	return f.jobs[f.activeJob].MVP
}

// Synthesize runs one frame through the builder pipeline (§4.G's single
// entry point). transparency is accepted for API-surface parity with
// spec.md §4.G but, per §4.E.1, ignored by the baseline builder.
func (f *Facade) Synthesize(fm metadata.FrameMetadata, occupancy, geometry, texture, transparency, canvas builder.TextureProperty) error {
	_ = transparency
	err := f.pipeline.Build(builder.Inputs{
		Metadata:  fm,
		Texture:   texture,
		Geometry:  geometry,
		Occupancy: occupancy,
		Position:  f.position,
		Canvas:    canvas,
		Shadow:    f.shadow,
		MVP:       f.effectiveMVP(),
	})
	return err
}

// Unusable reports whether the underlying pipeline has been permanently
// disabled by a GL compile/link failure (§4.E.6, §7 GLError).
func (f *Facade) Unusable() bool { return f.pipeline.Unusable() }

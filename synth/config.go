// Package synth implements the synthesizer facade (§4.G): the single
// external entry point that owns the metadata packer, the builder
// pipeline, and the "current" externally-owned textures, and exposes the
// setter surface external code drives one frame at a time.
//
// Grounded on VPCCRenderer's set_*/synthesize public surface from
// VPCCModelBuilder.cpp/.h, translated onto builder.Pipeline.
package synth

import "github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/builder"

// DebugFlags names input textures for diagnostics (SUPPLEMENTED FEATURES
// #3). The flags are carried in Config only: no code in this module reads
// them, so they change neither logging nor the per-pixel reconstruction.
type DebugFlags uint8

const (
	DebugTexture DebugFlags = 1 << iota
	DebugGeometry
	DebugOccupancy
)

// Config is the synthesizer's tunable set (§6.5).
type Config struct {
	RenderShadow bool

	MaxBbox float32 // default 2048
	R1, R2  float32 // default 20, 50

	VPCullFactor float32 // default 1.5

	UseDynamicDecimation bool
	NumVertexPerPoint    uint32 // >= 1
	DecimationLevel      uint32 // fixed-mode only, >= 1

	Debug DebugFlags
}

func (c Config) withDefaults() Config {
	if c.MaxBbox == 0 {
		c.MaxBbox = 2048
	}
	if c.R1 == 0 && c.R2 == 0 {
		c.R1, c.R2 = 20, 50
	}
	if c.VPCullFactor == 0 {
		c.VPCullFactor = 1.5
	}
	if c.NumVertexPerPoint == 0 {
		c.NumVertexPerPoint = 1
	}
	if c.DecimationLevel == 0 {
		c.DecimationLevel = 1
	}
	return c
}

func (c Config) toBuilderConfig(nOff, tOff, bOff float32) builder.Config {
	return builder.Config{
		Shadow:            c.RenderShadow,
		DynamicDecimation: c.UseDynamicDecimation,
		DecimationLevel:   c.DecimationLevel,
		VertIncr:          c.NumVertexPerPoint,
		MaxBbox:           c.MaxBbox,
		R1:                c.R1,
		R2:                c.R2,
		VPCullFactor:      c.VPCullFactor,
		NOffset:           nOff,
		TOffset:           tOff,
		BOffset:           bOff,
	}
}

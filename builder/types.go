// Package builder implements the model-builder compute pipeline (§4.E):
// the per-frame unprojection of atlas pixels into a compacted point buffer,
// with optional shadow splatting and dynamic per-block level-of-detail.
//
// Grounded on VPCCModelBuilder.cpp's build_model/create_model_builder_program
// control flow, translated onto internal/glcore's narrower GL wrapper and
// internal/shaders' Go-constant shader sources.
package builder

import "github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/metadata"

// TextureProperty describes an externally-owned GL texture the builder
// binds for reading or writing without ever deleting it (§3 "Ownership",
// §4.C, SUPPLEMENTED FEATURES #2).
type TextureProperty struct {
	Handle         uint32
	Width, Height  int
	InternalFormat int32
	Format         uint32
	Xtype          uint32
}

func (t TextureProperty) valid() bool {
	return t.Handle != 0 && t.Width > 0 && t.Height > 0
}

// Config holds the per-pipeline tunables the synthesizer facade sets
// (§4.E.4, §4.E.5, §6.5).
type Config struct {
	Shadow            bool
	DynamicDecimation bool
	DecimationLevel   uint32 // fixed-mode only (§4.E.4)
	VertIncr          uint32
	MaxBbox           float32
	R1, R2            float32
	VPCullFactor      float32
	NOffset           float32
	TOffset           float32
	BOffset           float32
}

func (cfg Config) withDefaults() Config {
	if cfg.VertIncr == 0 {
		cfg.VertIncr = 1
	}
	if cfg.DecimationLevel == 0 {
		cfg.DecimationLevel = 1
	}
	if cfg.MaxBbox == 0 {
		cfg.MaxBbox = 2048
	}
	return cfg
}

// Inputs is everything one Build call needs (§4.E.1).
type Inputs struct {
	Metadata metadata.FrameMetadata

	Texture   TextureProperty
	Geometry  TextureProperty
	Occupancy TextureProperty

	Position TextureProperty
	Canvas   TextureProperty
	Shadow   TextureProperty // only read if Config.Shadow

	MVP [16]float32
}

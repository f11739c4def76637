// vpccdemo wires the reconstruction pipeline end to end against synthetic
// atlas data: a single 16x16 block, one patch, flat geometry, full
// occupancy. It prints the reconstructed point count each frame.
//
// Grounded on examples/hellocompute/hellocompute.go (teacher) for the
// window/compute init and dispatch shape.
package main

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/builder"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/internal/glcore"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/metadata"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/synth"
)

const atlasSize = 16

func init() {
	runtime.LockOSThread()
}

func identityMVP() [16]float32 {
	var m [16]float32
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

func syntheticMetadata(frameIndex int32) metadata.FrameMetadata {
	return metadata.FrameMetadata{
		FrameIndex:  frameIndex,
		FrameWidth:  atlasSize,
		FrameHeight: atlasSize,
		Patches: []metadata.Patch{
			{U0: 0, V0: 0, U1: 0, V1: 0, D1: 100, NormalAxis: 0, Orientation: 0, ProjectionMode: 0},
		},
		BlockToPatch: []uint32{1},
	}
}

func newAtlasTexture(log *slog.Logger, internalFormat int32, format, xtype uint32, fill byte) builder.TextureProperty {
	pixelBytes := atlasSize * atlasSize * 4
	data := make([]byte, pixelBytes)
	for i := range data {
		data[i] = fill
	}
	tex, err := glcore.NewMutableTexture(glcore.ImageConfig{
		Width: atlasSize, Height: atlasSize,
		InternalFormat: internalFormat, Format: format, Xtype: xtype,
	}, data)
	if err != nil {
		log.Error("vpccdemo: atlas texture creation failed", "err", err)
		return builder.TextureProperty{}
	}
	return builder.TextureProperty{
		Handle: tex.ID(), Width: atlasSize, Height: atlasSize,
		InternalFormat: internalFormat, Format: format, Xtype: xtype,
	}
}

func newOutputTexture(log *slog.Logger, internalFormat int32, format, xtype uint32) builder.TextureProperty {
	tex, err := glcore.NewImmutableTexture(glcore.ImageConfig{
		Width: atlasSize, Height: atlasSize,
		InternalFormat: internalFormat, Format: format, Xtype: xtype,
	})
	if err != nil {
		log.Error("vpccdemo: output texture creation failed", "err", err)
		return builder.TextureProperty{}
	}
	return builder.TextureProperty{
		Handle: tex.ID(), Width: atlasSize, Height: atlasSize,
		InternalFormat: internalFormat, Format: format, Xtype: xtype,
	}
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	_, terminate, err := glcore.InitWindow(glcore.WindowConfig{
		Title: "vpccdemo", Width: atlasSize, Height: atlasSize, HideWindow: true,
	})
	if err != nil {
		log.Error("vpccdemo: window init failed", "err", err)
		return
	}
	defer terminate()

	texture := newAtlasTexture(log, gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, 200)
	geometry := newAtlasTexture(log, gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, 0)
	occupancy := newAtlasTexture(log, gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, 255)
	position := newOutputTexture(log, gl.RGBA32F, gl.RGBA, gl.FLOAT)
	canvas := newOutputTexture(log, gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE)

	f := synth.New(log, synth.Config{
		MaxBbox:           1024,
		NumVertexPerPoint: 1,
		DecimationLevel:   1,
	})
	f.SetPositionTexture(position)
	f.SetMVP(identityMVP())

	for frame := int32(0); frame < 3; frame++ {
		err := f.Synthesize(syntheticMetadata(frame), occupancy, geometry, texture, builder.TextureProperty{}, canvas)
		if err != nil {
			log.Error("vpccdemo: synthesize failed", "frame", frame, "err", err)
			return
		}
		if f.Unusable() {
			log.Error("vpccdemo: pipeline marked unusable, stopping")
			return
		}
		count, err := f.IndirectCount()
		if err != nil {
			log.Error("vpccdemo: indirect readback failed", "err", err)
			return
		}
		log.Info("vpccdemo: frame synthesized", "frame", frame, "point_count", count)
	}
}

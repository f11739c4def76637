package synth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/builder"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/internal/glcore"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/metadata"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/synth"
)

func initGL(t *testing.T) func() {
	t.Helper()
	_, term, err := glcore.InitWindow(glcore.WindowConfig{
		Title: "synth_test", Width: 4, Height: 4, HideWindow: true,
	})
	if err != nil {
		t.Log(err)
		t.Skip("no GL context available in this environment")
	}
	return term
}

func TestSynthesizeSkipsOnMissingTextures(t *testing.T) {
	term := initGL(t)
	defer term()

	f := synth.New(nil, synth.Config{})
	err := f.Synthesize(
		metadata.FrameMetadata{FrameWidth: 16, FrameHeight: 16, BlockToPatch: []uint32{0}},
		builder.TextureProperty{}, builder.TextureProperty{}, builder.TextureProperty{},
		builder.TextureProperty{}, builder.TextureProperty{},
	)
	assert.NoError(t, err)
	assert.False(t, f.Unusable())
}

func TestNewFacadeIsUsableWithNoIndirectBuffer(t *testing.T) {
	term := initGL(t)
	defer term()

	f := synth.New(nil, synth.Config{})
	assert.False(t, f.Unusable())
	assert.Zero(t, f.IndirectBufferID())
}

func TestRenderJobSelectionIgnoresOutOfRangeIndex(t *testing.T) {
	term := initGL(t)
	defer term()

	f := synth.New(nil, synth.Config{})
	f.SetRenderJobs([]synth.RenderJob{
		{MVP: [16]float32{1}},
		{MVP: [16]float32{2}},
	})
	f.SelectRenderJob(5)
	f.SelectRenderJob(1)
	f.SelectRenderJob(-1)
	// no GL-visible effect to assert without a live dispatch; exercising
	// the setters is enough to catch a panic on bad indices.
}

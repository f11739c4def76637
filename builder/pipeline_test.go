package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/builder"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/internal/glcore"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/metadata"
)

func initGL(t *testing.T) (*glcore.Window, func()) {
	t.Helper()
	win, term, err := glcore.InitWindow(glcore.WindowConfig{
		Title: "builder_test", Width: 4, Height: 4, HideWindow: true,
	})
	if err != nil {
		t.Log(err)
		t.Skip("no GL context available in this environment")
	}
	return win, term
}

func TestBuildSkipsOnMissingTextures(t *testing.T) {
	_, term := initGL(t)
	defer term()

	p := builder.NewPipeline(nil, builder.Config{})
	err := p.Build(builder.Inputs{Metadata: metadata.FrameMetadata{FrameWidth: 16, FrameHeight: 16, BlockToPatch: []uint32{0}}})
	assert.NoError(t, err)
	assert.False(t, p.Unusable())
}

func TestNewPipelineStartsUsable(t *testing.T) {
	// Only the starting state is checked: a compile/link failure (§4.E.6)
	// cannot be forced here, since the shader sources are not swappable
	// from outside the package.
	_, term := initGL(t)
	defer term()

	p := builder.NewPipeline(nil, builder.Config{})
	assert.False(t, p.Unusable())
}

package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstantiateNoShadowNoDecimation(t *testing.T) {
	got := Instantiate(ModelBuilderSource, Variant{GlobalDecimation: true})
	assert.NotContains(t, got, "shadow_img")
	assert.NotContains(t, got, "tex_dec")
	assert.Contains(t, got, "uniform uint decimation_level;")
}

func TestInstantiateShadowAndDynamicDecimation(t *testing.T) {
	got := Instantiate(ModelBuilderSource, Variant{Shadow: true, DynamicDecimation: true})
	assert.Contains(t, got, "uniform float shadow_res_factor;")
	assert.Contains(t, got, "layout(rgba32f, binding = 2) uniform writeonly image2D shadow_img;")
	assert.Contains(t, got, "uniform usampler2D tex_dec;")
	assert.NotContains(t, got, "//@if_shadow")
	assert.NotContains(t, got, "//@if_dynamic_decimation")
}

func TestBothDecimationVariantsAreValidButDistinct(t *testing.T) {
	assert.NotEqual(t, DecimationDepthSource, DecimationProjectedSource)
	assert.True(t, strings.HasSuffix(DecimationDepthSource, "\x00"))
	assert.True(t, strings.HasSuffix(DecimationProjectedSource, "\x00"))
}

func TestClearImageSourceNullTerminated(t *testing.T) {
	assert.True(t, strings.HasSuffix(ClearImageSource, "\x00"))
}

package videoframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYuv420P8PlaneGeometry(t *testing.T) {
	f := Yuv420P8
	assert.Equal(t, 3, f.NumPlanes())
	assert.Equal(t, 64, f.PlaneWidth(0, 64))
	assert.Equal(t, 32, f.PlaneWidth(1, 64))
	assert.Equal(t, 32, f.PlaneWidth(2, 64))
	assert.Equal(t, 32, f.PlaneHeight(1, 64))
}

func TestLineSizeGranularity(t *testing.T) {
	// bytesPerSample=1, width=15 -> rowBytes=15, alignment=4 -> granularity lcm(1,4)=4 -> round up to 16.
	got := Yuv420P8.LineSize(0, 15, 4)
	assert.Equal(t, 16, got)

	// alignment=1 collapses to exact row bytes.
	got = Yuv420P8.LineSize(0, 15, 1)
	assert.Equal(t, 15, got)
}

func TestNv10BytesPerSample(t *testing.T) {
	assert.Equal(t, 2, Nv10.BytesPerSample(0))
	assert.Equal(t, 4, Nv10.BytesPerSample(1))
}

func TestOpaqueFormatsReportNoPlanes(t *testing.T) {
	assert.True(t, MediaCodec.Opaque())
	assert.Equal(t, 0, MediaCodec.NumPlanes())
}

func TestBytesPerFrame(t *testing.T) {
	got := Rgba8.BytesPerFrame(4, 4, 1)
	assert.Equal(t, 4*4*4, got)
}

func TestVideoFrameValid(t *testing.T) {
	f := New(Rgba8, 8, 8, 1)
	assert.True(t, f.Valid())

	zero := VideoFrame{}
	assert.False(t, zero.Valid())

	opaque := VideoFrame{PixelFormat: MediaCodec, Width: 8, Height: 8}
	assert.True(t, opaque.Valid())
}

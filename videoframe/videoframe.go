package videoframe

import "time"

// StreamKind indexes the up-to-four decoded video streams a DecodedFrame
// pairs together (§3 DecodedFrame).
type StreamKind int

const (
	Texture StreamKind = iota
	Occupancy
	Geometry
	Transparency
	numStreamKinds
)

func (k StreamKind) String() string {
	switch k {
	case Texture:
		return "texture"
	case Occupancy:
		return "occupancy"
	case Geometry:
		return "geometry"
	case Transparency:
		return "transparency"
	default:
		return "unknown"
	}
}

// NumStreamKinds is the fixed number of StreamKind slots a DecodedFrame holds.
const NumStreamKinds = int(numStreamKinds)

// VideoFrame is one planar image delivered by the decoder (§3). Planes and
// LineStrides are parallel slices, one entry per PixelFormat.NumPlanes().
type VideoFrame struct {
	PixelFormat PixelFormat
	Width       int
	Height      int
	Planes      [][]byte
	LineStrides []int
	Timestamp   time.Duration
	StreamID    uint16
}

// New builds a VideoFrame with freshly allocated plane buffers sized per
// format.LineSize/PlaneHeight (alignment=1, matching the decoder's default
// ring-buffer allocation).
func New(format PixelFormat, width, height int, streamID uint16) VideoFrame {
	n := format.NumPlanes()
	planes := make([][]byte, n)
	strides := make([]int, n)
	for p := 0; p < n; p++ {
		stride := format.LineSize(p, width, 1)
		strides[p] = stride
		planes[p] = make([]byte, stride*format.PlaneHeight(p, height))
	}
	return VideoFrame{
		PixelFormat: format,
		Width:       width,
		Height:      height,
		Planes:      planes,
		LineStrides: strides,
		StreamID:    streamID,
	}
}

// Valid reports whether f has a plane for every slot its pixel format
// declares, with non-zero dimensions — the "missing or zero-sized input
// textures" check of §4.E.3's edge cases starts here.
func (f VideoFrame) Valid() bool {
	if f.Width <= 0 || f.Height <= 0 {
		return false
	}
	if f.PixelFormat.Opaque() {
		return true
	}
	n := f.PixelFormat.NumPlanes()
	if len(f.Planes) != n || len(f.LineStrides) != n {
		return false
	}
	for p := 0; p < n; p++ {
		if len(f.Planes[p]) == 0 {
			return false
		}
	}
	return true
}

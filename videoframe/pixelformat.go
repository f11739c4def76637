// Package videoframe implements the decoded planar image the decoder
// hands off per stream (§3 VideoFrame, §6.2): a PixelFormat descriptor
// table (plane count, bytes per sample, subsampling, line-stride rule)
// and the VideoFrame value itself.
//
// Grounded on Libraries/iloj/media/pixelformat.h's RGB<>/YUVP<>/NV<>
// templates and Base::getLineSize's lcm-granularity rule.
package videoframe

// PixelFormat enumerates the formats VideoFrame can carry (§6.2).
type PixelFormat int

const (
	None PixelFormat = iota
	Rgb8
	Rgba8
	Bgr8
	Yuv400P8
	Yuv400P10LE
	Yuv400P16LE
	Yuv420P8
	Yuv420P10LE
	Yuv420P16LE
	Yuv422P8
	Yuv444P8
	Nv8
	Nv10
	MediaCodec
	MediaCodecYUV
	MediaCodecRGB
)

// planeDesc describes one plane's geometry relative to the frame's full
// width/height.
type planeDesc struct {
	bytesPerSample int
	widthDiv       int // full width divided by this to get plane width
	heightDiv      int // full height divided by this to get plane height
}

// formatDesc is precomputed per PixelFormat, mirroring Base's virtual
// table (getNumberOfPlane, getBytePerSample, getWidth, getHeight).
type formatDesc struct {
	name   string
	planes []planeDesc
	opaque bool // hardware-decoder formats (MediaCodec*): no CPU-visible planes
}

var descs = map[PixelFormat]formatDesc{
	Rgb8:  {name: "rgb8", planes: []planeDesc{{3, 1, 1}}},
	Rgba8: {name: "rgba8", planes: []planeDesc{{4, 1, 1}}},
	Bgr8:  {name: "bgr8", planes: []planeDesc{{3, 1, 1}}},

	Yuv400P8:    {name: "yuv400p8", planes: []planeDesc{{1, 1, 1}}},
	Yuv400P10LE: {name: "yuv400p10le", planes: []planeDesc{{2, 1, 1}}},
	Yuv400P16LE: {name: "yuv400p16le", planes: []planeDesc{{2, 1, 1}}},

	Yuv420P8:    {name: "yuv420p8", planes: []planeDesc{{1, 1, 1}, {1, 2, 2}, {1, 2, 2}}},
	Yuv420P10LE: {name: "yuv420p10le", planes: []planeDesc{{2, 1, 1}, {2, 2, 2}, {2, 2, 2}}},
	Yuv420P16LE: {name: "yuv420p16le", planes: []planeDesc{{2, 1, 1}, {2, 2, 2}, {2, 2, 2}}},

	Yuv422P8: {name: "yuv422p8", planes: []planeDesc{{1, 1, 1}, {1, 2, 1}, {1, 2, 1}}},
	Yuv444P8: {name: "yuv444p8", planes: []planeDesc{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}}},

	Nv8:  {name: "nv8", planes: []planeDesc{{1, 1, 1}, {2, 2, 2}}},
	Nv10: {name: "nv10", planes: []planeDesc{{2, 1, 1}, {4, 2, 2}}},

	MediaCodec:    {name: "mediacodec", opaque: true},
	MediaCodecYUV: {name: "mediacodec_yuv", opaque: true},
	MediaCodecRGB: {name: "mediacodec_rgb", opaque: true},
}

// Name returns the descriptive pixel format name (e.g. "yuv420p10le").
func (f PixelFormat) Name() string { return descs[f].name }

// NumPlanes returns the number of CPU-visible planes; 0 for opaque
// hardware-decoder formats.
func (f PixelFormat) NumPlanes() int { return len(descs[f].planes) }

// Opaque reports whether f is a hardware-decoder output format with no
// CPU-visible plane layout (MediaCodec / MediaCodec_Yuv / MediaCodec_Rgb).
func (f PixelFormat) Opaque() bool { return descs[f].opaque }

// BytesPerSample returns the byte size of one sample in the given plane.
func (f PixelFormat) BytesPerSample(plane int) int {
	d := descs[f]
	if plane < 0 || plane >= len(d.planes) {
		return 0
	}
	return d.planes[plane].bytesPerSample
}

// PlaneWidth returns the plane's width for a frame of the given full width.
func (f PixelFormat) PlaneWidth(plane int, width int) int {
	d := descs[f]
	if plane < 0 || plane >= len(d.planes) {
		return 0
	}
	return width / d.planes[plane].widthDiv
}

// PlaneHeight returns the plane's height for a frame of the given full height.
func (f PixelFormat) PlaneHeight(plane int, height int) int {
	d := descs[f]
	if plane < 0 || plane >= len(d.planes) {
		return 0
	}
	return height / d.planes[plane].heightDiv
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}

// BytesPerRow returns the unpadded row size: bytesPerSample * planeWidth.
func (f PixelFormat) BytesPerRow(plane, width int) int {
	return f.BytesPerSample(plane) * f.PlaneWidth(plane, width)
}

// LineSize returns the stride in bytes for the given plane, rounded up to
// lcm(bytesPerSample, alignment) — ported verbatim from
// Base::getLineSize's granularity rule. alignment of 1 means "no extra
// alignment constraint beyond the sample size itself".
func (f PixelFormat) LineSize(plane, width, alignment int) int {
	if alignment <= 0 {
		alignment = 1
	}
	bps := f.BytesPerSample(plane)
	if bps == 0 {
		return 0
	}
	granularity := lcm(bps, alignment)
	if granularity == 0 {
		return 0
	}
	rowBytes := f.BytesPerRow(plane, width)
	q, r := rowBytes/granularity, rowBytes%granularity
	if r != 0 {
		q++
	}
	return granularity * q
}

// BytesPerPlane returns LineSize(plane, width, alignment) * planeHeight.
func (f PixelFormat) BytesPerPlane(plane, width, height, alignment int) int {
	return f.LineSize(plane, width, alignment) * f.PlaneHeight(plane, height)
}

// BytesPerFrame sums BytesPerPlane across every plane.
func (f PixelFormat) BytesPerFrame(width, height, alignment int) int {
	total := 0
	for p := 0; p < f.NumPlanes(); p++ {
		total += f.BytesPerPlane(p, width, height, alignment)
	}
	return total
}

//go:build !tinygo && cgo

package glcore

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// AccessUsage mirrors gl.READ_ONLY / gl.WRITE_ONLY / gl.READ_WRITE.
type AccessUsage uint32

const (
	WriteOnly AccessUsage = gl.WRITE_ONLY
	ReadOnly  AccessUsage = gl.READ_ONLY
	ReadWrite AccessUsage = gl.READ_WRITE
)

// BufferUsage is the GL usage hint passed to glBufferData.
type BufferUsage uint32

const (
	StaticDraw  BufferUsage = gl.STATIC_DRAW
	DynamicDraw BufferUsage = gl.DYNAMIC_DRAW
	DynamicCopy BufferUsage = gl.DYNAMIC_COPY
	StreamDraw  BufferUsage = gl.STREAM_DRAW
)

// ShaderStorageBuffer is a bound GL SSBO (§4.C). Used for the single-u32
// atomic counter (§4.E.2).
type ShaderStorageBuffer struct {
	id    uint32
	usage AccessUsage
	sz    int
	base  uint32
}

// ShaderStorageBufferConfig mirrors the teacher's config struct.
type ShaderStorageBufferConfig struct {
	Usage AccessUsage
	// Base is the layout(std430, binding=Base) buffer's binding index.
	Base uint32
	// MemSize is used instead of len(data)*sizeof(T) when data is nil —
	// reserves MemSize bytes without uploading.
	MemSize int
}

func (ssbo ShaderStorageBuffer) ID() uint32 { return ssbo.id }
func (ssbo ShaderStorageBuffer) Bind()      { gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, ssbo.id) }
func (ssbo ShaderStorageBuffer) Delete()    { gl.DeleteBuffers(1, &ssbo.id) }

// NewShaderStorageBuffer allocates and binds a new SSBO. Pass data==nil and
// a non-zero cfg.MemSize to allocate without uploading (used for the atomic
// counter).
func NewShaderStorageBuffer[T any](data []T, cfg ShaderStorageBufferConfig) (ssbo ShaderStorageBuffer, err error) {
	if data == nil && cfg.MemSize <= 0 {
		return ssbo, errors.New("glcore: SSBO needs either data or a positive MemSize")
	}
	if data != nil && cfg.MemSize != 0 {
		return ssbo, errors.New("glcore: MemSize is only used when data is nil")
	}

	gl.GenBuffers(1, &ssbo.id)
	ssbo.usage = cfg.Usage
	ssbo.base = cfg.Base
	ssbo.Bind()
	if data != nil {
		var z T
		ssbo.sz = int(unsafe.Sizeof(z)) * len(data)
		gl.BufferData(gl.SHADER_STORAGE_BUFFER, ssbo.sz, unsafe.Pointer(&data[0]), uint32(DynamicDraw))
	} else {
		ssbo.sz = cfg.MemSize
		gl.BufferData(gl.SHADER_STORAGE_BUFFER, ssbo.sz, nil, uint32(DynamicDraw))
	}
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, cfg.Base, ssbo.id)
	return ssbo, Err()
}

// SetData re-uploads the SSBO's contents, keeping its size and binding.
func SetData[T any](ssbo ShaderStorageBuffer, data []T) error {
	if len(data) == 0 {
		return errors.New("glcore: SetData needs a non-empty slice")
	}
	var z T
	sz := int(unsafe.Sizeof(z)) * len(data)
	if sz > ssbo.sz {
		return errors.New("glcore: data larger than the SSBO's allocated size")
	}
	ssbo.Bind()
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, sz, unsafe.Pointer(&data[0]))
	return Err()
}

// Read copies dst's worth of bytes back from the SSBO (used by tests to
// inspect the atomic counter / emitted point buffers without a full
// pipeline round trip).
func Read[T any](dst []T, ssbo ShaderStorageBuffer) error {
	if len(dst) == 0 {
		return errors.New("glcore: Read needs a non-empty destination")
	}
	var z T
	sz := int(unsafe.Sizeof(z)) * len(dst)
	if sz > ssbo.sz {
		return errors.New("glcore: requested more bytes than the SSBO holds")
	}
	ssbo.Bind()
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, sz, unsafe.Pointer(&dst[0]))
	return Err()
}

// ZeroFirstWord writes a single zero uint32 at byte offset 0 — the atomic
// counter reset step of §4.E.2 step 6.
func ZeroFirstWord(ssbo ShaderStorageBuffer) error {
	var zero uint32
	ssbo.Bind()
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, 4, unsafe.Pointer(&zero))
	return Err()
}

// IndirectBuffer is the 4-word DrawArraysIndirectCommand (count, instanceCount,
// first, baseInstance) published from the atomic counter (§4.E.2 step 8).
type IndirectBuffer struct {
	id uint32
}

// drawArraysIndirectCommand matches the GL DrawArraysIndirectCommand layout.
type drawArraysIndirectCommand struct {
	Count         uint32
	InstanceCount uint32
	First         uint32
	BaseInstance  uint32
}

// NewIndirectBuffer allocates the 4-word indirect draw command buffer with
// InstanceCount/First/BaseInstance fixed at 1/0/0 — only Count ever changes,
// via CopyCounterToIndirect.
func NewIndirectBuffer() (ib IndirectBuffer, err error) {
	cmd := drawArraysIndirectCommand{Count: 0, InstanceCount: 1, First: 0, BaseInstance: 0}
	gl.GenBuffers(1, &ib.id)
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, ib.id)
	gl.BufferData(gl.DRAW_INDIRECT_BUFFER, int(unsafe.Sizeof(cmd)), unsafe.Pointer(&cmd), uint32(DynamicDraw))
	return ib, Err()
}

func (ib IndirectBuffer) ID() uint32 { return ib.id }
func (ib IndirectBuffer) Delete()    { gl.DeleteBuffers(1, &ib.id) }

// CopyCounterToIndirect copies the first 4 bytes of the atomic counter SSBO
// into the count word of the indirect buffer (§4.E.2 step 8), with the
// memory barriers the spec requires bracketing the copy.
func CopyCounterToIndirect(counter ShaderStorageBuffer, ib IndirectBuffer) error {
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT | gl.ATOMIC_COUNTER_BARRIER_BIT)
	gl.BindBuffer(gl.COPY_READ_BUFFER, counter.id)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, ib.id)
	gl.CopyBufferSubData(gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER, 0, 0, 4)
	gl.MemoryBarrier(gl.COMMAND_BARRIER_BIT)
	return Err()
}

// ReadIndirectCount reads back the indirect buffer's count word. Exists for
// tests and diagnostics (§8 properties) — the data path never reads it back
// on the CPU.
func ReadIndirectCount(ib IndirectBuffer) (uint32, error) {
	var cmd drawArraysIndirectCommand
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, ib.id)
	gl.GetBufferSubData(gl.DRAW_INDIRECT_BUFFER, 0, int(unsafe.Sizeof(cmd)), unsafe.Pointer(&cmd))
	return cmd.Count, Err()
}

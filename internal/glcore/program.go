//go:build !tinygo && cgo

// Package glcore is a thin OpenGL 4.6 core-profile wrapper purpose-built for
// the V-PCC reconstruction compute pipeline: compiling compute programs,
// managing SSBOs/indirect buffers and textures, and reporting stage-boundary
// GL errors through the ambient logging stack.
//
// It is a generalized, renamed port of github.com/soypat/glgl's v4.6-core/glgl
// package: the GL call sequences are unchanged, the surface is narrowed to
// compute-shader usage (no vertex/fragment pipeline, no VAO/VBO) and extended
// with immutable texture storage and an indirect-draw buffer (see DESIGN.md).
package glcore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// ErrStringNotNullTerminated is returned when a caller forgets the shader
// source / attribute name null terminator the GL C ABI requires.
var ErrStringNotNullTerminated = errors.New("glcore: string not null terminated")

// Program is a linked GL program object. For this pipeline it always wraps
// exactly one compute shader (§4.E/§4.C): no vertex/fragment stage.
type Program struct {
	rid uint32
}

func (p Program) ID() uint32   { return p.rid }
func (p Program) Bind()        { gl.UseProgram(p.rid) }
func (p Program) Unbind()      { gl.UseProgram(0) }

// Delete deletes the program. The program must be bound to a live context.
func (p Program) Delete() {
	if p.rid == 0 {
		panic("glcore: program id of zero, was it compiled?")
	}
	p.Unbind()
	gl.DeleteProgram(p.rid)
}

// RunCompute dispatches the compute shader over the given work group counts
// and issues a full memory barrier so subsequent reads observe the writes.
func (p Program) RunCompute(groupsX, groupsY, groupsZ int) error {
	gl.DispatchCompute(uint32(groupsX), uint32(groupsY), uint32(groupsZ))
	if err := Err(); err != nil {
		return err
	}
	gl.MemoryBarrier(gl.ALL_BARRIER_BITS)
	return Err()
}

func (p Program) UniformLocation(name string) (int32, error) {
	if !strings.HasSuffix(name, "\x00") {
		return -2, ErrStringNotNullTerminated
	}
	loc := gl.GetUniformLocation(p.rid, gl.Str(name))
	if loc < 0 {
		return loc, fmt.Errorf("glcore: uniform %q not found in program", strings.TrimSuffix(name, "\x00"))
	}
	return loc, nil
}

func (p Program) SetUniform1i(loc int32, v int32)     { gl.Uniform1i(loc, v) }
func (p Program) SetUniform1f(loc int32, v float32)   { gl.Uniform1f(loc, v) }
func (p Program) SetUniform3f(loc int32, x, y, z float32) { gl.Uniform3f(loc, x, y, z) }

func (p Program) SetUniformMatrix4fv(loc int32, m [16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// CompileFlags controls how a program's compile/link/validate steps check
// for errors. Ported verbatim from the teacher's parse.go CompileFlags.
type CompileFlags uint64

const (
	CompileFlagValidateProgram CompileFlags = 1 << iota
	CompileFlagNoCompileCheck
	CompileFlagNoLinkCheck
)

const (
	CompileFlagsLax    = CompileFlagNoCompileCheck | CompileFlagNoLinkCheck
	CompileFlagsStrict = CompileFlagValidateProgram
)

func (cf CompileFlags) checkCompile() bool    { return cf&CompileFlagNoCompileCheck == 0 }
func (cf CompileFlags) checkLink() bool       { return cf&CompileFlagNoLinkCheck == 0 }
func (cf CompileFlags) validateProgram() bool { return cf&CompileFlagValidateProgram != 0 }

// CompileCompute compiles a single compute shader source (null-terminated)
// into a linked Program. source must include the "#version 460 core" and
// "layout(local_size_x=...)" declarations itself (see internal/shaders).
func CompileCompute(source string, flags CompileFlags) (prog Program, err error) {
	if !strings.HasSuffix(source, "\x00") {
		return Program{}, ErrStringNotNullTerminated
	}
	prog.rid = gl.CreateProgram()
	if prog.rid == 0 {
		return Program{}, errors.New("glcore: got invalid program id, is the GL context current on this thread?")
	}

	cid, err := compile(gl.COMPUTE_SHADER, flags, source)
	if err != nil {
		return Program{}, fmt.Errorf("compute shader compile: %w", err)
	}
	gl.AttachShader(prog.rid, cid)
	var linked bool
	defer func() {
		if linked {
			gl.DetachShader(prog.rid, cid)
		}
		gl.DeleteShader(cid)
	}()

	gl.LinkProgram(prog.rid)
	if flags.checkLink() {
		if err = ivLogErr(prog.rid, gl.LINK_STATUS, gl.GetProgramiv, gl.GetProgramInfoLog); err != nil {
			return Program{}, fmt.Errorf("link failed: %w", err)
		}
	}
	linked = true
	if flags.validateProgram() {
		gl.ValidateProgram(prog.rid)
		if err = ivLogErr(prog.rid, gl.VALIDATE_STATUS, gl.GetProgramiv, gl.GetProgramInfoLog); err != nil {
			return Program{}, fmt.Errorf("validation failed: %w", err)
		}
	}
	return prog, nil
}

func compile(shaderType uint32, flags CompileFlags, sourceCodes ...string) (uint32, error) {
	var sourceLengths []int32
	for i := range sourceCodes {
		if !strings.HasSuffix(sourceCodes[i], "\x00") {
			return 0, ErrStringNotNullTerminated
		}
		sourceLengths = append(sourceLengths, int32(len(sourceCodes[i])))
	}
	id := gl.CreateShader(shaderType)
	if id == 0 {
		if err := Err(); err != nil {
			return 0, fmt.Errorf("got invalid shader id: %w", err)
		}
		return 0, errors.New("glcore: got invalid shader id 0")
	}
	csources, free := gl.Strs(sourceCodes...)
	gl.ShaderSource(id, int32(len(sourceCodes)), csources, &sourceLengths[0])
	free()
	gl.CompileShader(id)
	if flags.checkCompile() {
		if err := ivLogErr(id, gl.COMPILE_STATUS, gl.GetShaderiv, gl.GetShaderInfoLog); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func ivLogErr(id, plName uint32, getIV func(program uint32, pname uint32, params *int32), getInfo func(program uint32, bufSize int32, length *int32, infoLog *uint8)) error {
	log := ivLog(id, plName, getIV, getInfo)
	if len(log) > 0 {
		err := errors.New(log)
		if err2 := Err(); err2 != nil {
			return errors.Join(err, err2)
		}
		return err
	}
	return nil
}

func ivLog(id, plName uint32, getIV func(program uint32, pname uint32, params *int32), getInfo func(program uint32, bufSize int32, length *int32, infoLog *uint8)) string {
	var iv int32
	getIV(id, plName, &iv)
	if iv == gl.FALSE {
		var logLength int32
		getIV(id, gl.INFO_LOG_LENGTH, &logLength)
		if logLength == 0 {
			return ""
		}
		log := make([]byte, logLength)
		getInfo(id, logLength, &logLength, &log[0])
		return string(log[:len(log)-1])
	}
	return ""
}

// ClearErrors drains the GL error queue.
func ClearErrors() {
	for i := 0; gl.GetError() != gl.NO_ERROR; i++ {
		if i > 2000 {
			panic("glcore: forever loop in ClearErrors, has the context terminated?")
		}
	}
}

// Err returns a non-nil error aggregating every pending glGetError code.
func Err() error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	errs := glErrors{glError(code)}
	for {
		code = gl.GetError()
		if code == gl.NO_ERROR {
			return errs
		}
		errs = append(errs, glError(code))
		if len(errs) > 61 {
			last := len(errs) - 1
			return fmt.Errorf("glcore: possible forever loop in Err, errs[0]=%v errs[%d]=%v", errs[0], last, errs[last])
		}
	}
}

type glErrors []glError

func (ge glErrors) Error() (s string) {
	if len(ge) == 0 {
		return "no gl errors"
	}
	for i, e := range ge {
		s += e.String()
		if i != len(ge)-1 {
			s += "; "
		}
	}
	return s
}

type glError uint32

func (ge glError) String() string {
	switch ge {
	case gl.INVALID_ENUM:
		return "invalid enum"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "invalid framebuffer operation"
	case gl.INVALID_INDEX:
		return "invalid index"
	case gl.INVALID_OPERATION:
		return "invalid operation"
	case gl.INVALID_VALUE:
		return "invalid value"
	default:
		return "glError(" + strconv.Itoa(int(ge)) + ")"
	}
}

// zdefault returns Default if got is the zero value, got otherwise. Trimmed
// local replacement for the teacher's golang.org/x/exp/constraints-based
// generic helper (see DESIGN.md: the only dropped teacher dependency).
func zdefault[T comparable](got, def T) T {
	var zero T
	if got == zero {
		return def
	}
	return got
}

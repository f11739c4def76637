//go:build !tinygo && cgo

package glcore

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// Texture is a bound 2D GL texture, either owned (created by this package)
// or adopted from a host-provided external handle (§6.3, SUPPLEMENTED
// FEATURES #2).
type Texture struct {
	rid    uint32
	target uint32
	owned  bool
}

// ID returns the GL texture name.
func (t Texture) ID() uint32 { return t.rid }

// Bind binds t to the given texture unit (glActiveTexture + glBindTexture).
func (t Texture) Bind(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(t.target, t.rid)
}

// Delete releases the texture. A no-op on adopted (externally owned)
// textures: ownership never transfers to glcore for those (§6.3).
func (t Texture) Delete() {
	if !t.owned {
		return
	}
	gl.DeleteTextures(1, &t.rid)
}

const Texture2D uint32 = gl.TEXTURE_2D

// ImageConfig mirrors the teacher's TextureImgConfig, trimmed to the 2D
// image-texture fields the reconstruction pipeline's position/shadow/
// decimation textures actually use.
type ImageConfig struct {
	Width, Height  int
	InternalFormat int32
	Format         uint32
	Xtype          uint32
	MagFilter      int32
	MinFilter      int32
	Wrap           int32
	Access         uint32
	Level          int32
	ImageUnit      uint32
}

func (cfg ImageConfig) pixelSize() int {
	var mul, sz int
	switch cfg.Format {
	case gl.RED, gl.RED_INTEGER:
		mul = 1
	case gl.RG, gl.RG_INTEGER:
		mul = 2
	case gl.RGB, gl.RGB_INTEGER:
		mul = 3
	case gl.RGBA, gl.RGBA_INTEGER:
		mul = 4
	default:
		panic("glcore: unsupported texture format")
	}
	switch cfg.Xtype {
	case gl.FLOAT, gl.INT, gl.UNSIGNED_INT:
		sz = 4
	case gl.UNSIGNED_BYTE, gl.BYTE:
		sz = 1
	default:
		panic("glcore: unsupported texture xtype")
	}
	return mul * sz
}

// NewMutableTexture creates a texture with glTexImage2D, reallocating
// storage on every call: used for the video planes that resize across
// streams (§4.C "mutable glTexImage2D path for decoded planes that may
// resize").
func NewMutableTexture[T any](cfg ImageConfig, data []T) (Texture, error) {
	var id uint32
	var ptr unsafe.Pointer
	if data != nil {
		if got, want := len(data)*int(unsafe.Sizeof(data[0])), cfg.pixelSize()*cfg.Width*cfg.Height; got != want {
			return Texture{}, errors.New("glcore: data size does not match configured image size")
		}
		ptr = unsafe.Pointer(&data[0])
	}
	gl.GenTextures(1, &id)
	tex := Texture{rid: id, target: Texture2D, owned: true}
	tex.Bind(0)
	internalFormat := zdefault(cfg.InternalFormat, int32(cfg.Format))
	gl.TexImage2D(tex.target, cfg.Level, internalFormat, int32(cfg.Width), int32(cfg.Height), 0, cfg.Format, cfg.Xtype, ptr)
	gl.TexParameteri(tex.target, gl.TEXTURE_MAG_FILTER, zdefault(cfg.MagFilter, gl.NEAREST))
	gl.TexParameteri(tex.target, gl.TEXTURE_MIN_FILTER, zdefault(cfg.MinFilter, gl.NEAREST))
	gl.TexParameteri(tex.target, gl.TEXTURE_WRAP_S, zdefault(cfg.Wrap, gl.CLAMP_TO_EDGE))
	gl.TexParameteri(tex.target, gl.TEXTURE_WRAP_T, zdefault(cfg.Wrap, gl.CLAMP_TO_EDGE))
	if cfg.Access != 0 {
		gl.BindImageTexture(cfg.ImageUnit, id, cfg.Level, false, 0, cfg.Access, uint32(internalFormat))
	}
	return tex, Err()
}

// NewImmutableTexture allocates storage once via glTexStorage2D: used for
// the position/canvas/decimation textures (§4.C "immutable glTexStorage2D
// path for the builder's own fixed-size outputs"). Its storage cannot be
// resized; a new size means allocating a new texture, as the builder does
// for its decimation texture when the block grid changes.
func NewImmutableTexture(cfg ImageConfig) (Texture, error) {
	var id uint32
	gl.GenTextures(1, &id)
	tex := Texture{rid: id, target: Texture2D, owned: true}
	tex.Bind(0)
	internalFormat := zdefault(cfg.InternalFormat, int32(cfg.Format))
	gl.TexStorage2D(tex.target, 1, uint32(internalFormat), int32(cfg.Width), int32(cfg.Height))
	gl.TexParameteri(tex.target, gl.TEXTURE_MAG_FILTER, zdefault(cfg.MagFilter, gl.NEAREST))
	gl.TexParameteri(tex.target, gl.TEXTURE_MIN_FILTER, zdefault(cfg.MinFilter, gl.NEAREST))
	gl.TexParameteri(tex.target, gl.TEXTURE_WRAP_S, zdefault(cfg.Wrap, gl.CLAMP_TO_EDGE))
	gl.TexParameteri(tex.target, gl.TEXTURE_WRAP_T, zdefault(cfg.Wrap, gl.CLAMP_TO_EDGE))
	if cfg.Access != 0 {
		gl.BindImageTexture(cfg.ImageUnit, id, cfg.Level, false, 0, cfg.Access, uint32(internalFormat))
	}
	return tex, Err()
}

// SetSubImage2D uploads data into an existing texture without reallocating
// storage (used to refresh the builder's block-meta textures frame to frame).
func SetSubImage2D[T any](tex Texture, cfg ImageConfig, data []T) error {
	if len(data) == 0 {
		return errors.New("glcore: empty data for SetSubImage2D")
	}
	ptr := unsafe.Pointer(&data[0])
	tex.Bind(0)
	gl.TexSubImage2D(tex.target, cfg.Level, 0, 0, int32(cfg.Width), int32(cfg.Height), cfg.Format, cfg.Xtype, ptr)
	return Err()
}

// AdoptTexture wraps an externally created GL texture name (owned by the
// host application) so it can be bound to an image unit by glcore without
// glcore ever deleting it. Mirrors the original's TextureProperty ->
// toRegularTexture adoption (§6.3, SUPPLEMENTED FEATURES #2).
func AdoptTexture(rid uint32, cfg ImageConfig) (Texture, error) {
	if rid == 0 {
		return Texture{}, errors.New("glcore: cannot adopt texture id 0")
	}
	tex := Texture{rid: rid, target: Texture2D, owned: false}
	if cfg.Access != 0 {
		internalFormat := zdefault(cfg.InternalFormat, int32(cfg.Format))
		gl.BindImageTexture(cfg.ImageUnit, rid, cfg.Level, false, 0, cfg.Access, uint32(internalFormat))
	}
	return tex, Err()
}

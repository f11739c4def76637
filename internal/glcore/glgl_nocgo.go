//go:build tinygo || !cgo

package glcore

import (
	"errors"
	"log/slog"
)

var errNoCgo = errors.New("glcore: requires cgo and a live GL context")

// Window stub: no cgo means no real GLFW window is available.
type Window struct{}

// InitWindow always fails without cgo.
func InitWindow(cfg WindowConfig) (*Window, func(), error) {
	return nil, nil, errNoCgo
}

func enableDebugOutput(log *slog.Logger) {}

func ClearErrors() {}

func Err() error { return nil }

// Program stub: no GL program object exists without cgo.
type Program struct{}

// CompileFlags mirrors the cgo build's compile/link check flags.
type CompileFlags uint64

func (p Program) Bind()   {}
func (p Program) Unbind() {}

// CompileCompute always fails without cgo: there is no GL to compile against.
func CompileCompute(source string, flags CompileFlags) (Program, error) {
	return Program{}, errNoCgo
}

const (
	ProfileAny int = iota
	ProfileCore
	ProfileCompat
)

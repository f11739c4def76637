//go:build !tinygo && cgo

package glcore

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	ProfileAny    int = glfw.OpenGLAnyProfile
	ProfileCore   int = glfw.OpenGLCoreProfile
	ProfileCompat int = glfw.OpenGLCompatProfile
)

// Window wraps a current, initialized GLFW window + GL context.
type Window struct {
	*glfw.Window
}

// InitWindow creates a GLFW window, makes its GL context current, and
// initializes the go-gl bindings. Grounded on the teacher's
// InitWithCurrentWindow33 (v4.6-core/glgl/glfw33.go).
func InitWindow(cfg WindowConfig) (*Window, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, err
	}
	glfw.WindowHint(glfw.Resizable, b2i(!cfg.NotResizable))
	if cfg.Version != [2]int{} {
		glfw.WindowHint(glfw.ContextVersionMajor, cfg.Version[0])
		glfw.WindowHint(glfw.ContextVersionMinor, cfg.Version[1])
	} else {
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 6)
	}
	glfw.WindowHint(glfw.OpenGLProfile, zdefault(cfg.OpenGLProfile, glfw.OpenGLCoreProfile))
	glfw.WindowHint(glfw.OpenGLForwardCompatible, b2i(cfg.ForwardCompat))
	if cfg.HideWindow {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, err
	}
	ClearErrors()
	if cfg.DebugLog != nil {
		EnableDebugOutput(cfg.DebugLog)
	}
	return &Window{window}, glfw.Terminate, nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

package glcore

import "log/slog"

// WindowConfig configures the bootstrap window cmd/vpccdemo uses to get a
// current GL context. Never used by the core data path (§1: context
// creation is the host's job) — only by the demo binary.
type WindowConfig struct {
	Title         string
	NotResizable  bool
	Version       [2]int
	OpenGLProfile int
	ForwardCompat bool
	Width, Height int
	HideWindow    bool
	DebugLog      *slog.Logger
}

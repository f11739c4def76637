//go:build tinygo || !cgo

package builder

import (
	"errors"
	"log/slog"
)

var errNoCgo = errors.New("builder: requires cgo (go-gl bindings need cgo)")

// Pipeline is a no-op stand-in when built without cgo: there is no GL
// binding available, so Build always fails loudly instead of pretending
// to reconstruct anything.
type Pipeline struct {
	log *slog.Logger
	cfg Config
}

func NewPipeline(log *slog.Logger, cfg Config) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{log: log, cfg: cfg.withDefaults()}
}

func (p *Pipeline) SetForceRebuild(bool)           {}
func (p *Pipeline) SetConfig(cfg Config)           { p.cfg = cfg.withDefaults() }
func (p *Pipeline) Unusable() bool                 { return true }
func (p *Pipeline) Build(in Inputs) error          { return errNoCgo }
func (p *Pipeline) IndirectBufferID() uint32       { return 0 }
func (p *Pipeline) IndirectCount() (uint32, error) { return 0, errNoCgo }

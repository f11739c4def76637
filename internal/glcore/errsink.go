package glcore

import (
	"context"
	"log/slog"
)

// ErrSink logs every pending GL error at stage boundaries, the way the
// original VPCCRenderer calls LogError(section_name) after each GL section
// (SUPPLEMENTED FEATURES #1). Stage pushes/pops are not re-entrant locking —
// glcore is only ever driven from the owning render thread (§7 Threading).
type ErrSink struct {
	log    *slog.Logger
	stages []string
}

// NewErrSink returns an ErrSink logging through log, defaulting to
// slog.Default() when log is nil.
func NewErrSink(log *slog.Logger) *ErrSink {
	if log == nil {
		log = slog.Default()
	}
	return &ErrSink{log: log}
}

// Enter pushes a stage name (e.g. "decimation-pass", "build-pass") onto the
// sink's stack for inclusion in any error logged before the matching Leave.
func (s *ErrSink) Enter(stage string) {
	s.stages = append(s.stages, stage)
}

// Leave pops the current stage and logs any pending GL error attributed to
// it via Err().
func (s *ErrSink) Leave() {
	if len(s.stages) == 0 {
		return
	}
	stage := s.stages[len(s.stages)-1]
	s.stages = s.stages[:len(s.stages)-1]
	if err := Err(); err != nil {
		s.log.LogAttrs(context.Background(), slog.LevelError, "gl error",
			slog.String("stage", stage), slog.String("err", err.Error()))
	}
}

// Stage runs fn between an Enter/Leave pair for the named GL stage.
func (s *ErrSink) Stage(name string, fn func()) {
	s.Enter(name)
	defer s.Leave()
	fn()
}

// EnableDebugOutput wires glDebugMessageCallback into log, matching the
// teacher's glgl.EnableDebugOutput (§7 ambient logging stack).
func EnableDebugOutput(log *slog.Logger) {
	enableDebugOutput(log)
}

// Package supervise runs build and cleanup subprocesses, streaming their
// merged output through filters and parsers into a build session.
//
// Every output line is appended verbatim to the session log artifact
// before anything else touches it, so the log survives filtering,
// cancellation and stalls. Recognized progress lines update the session
// counters; recognized diagnostics are structured and counted; all other
// surviving lines are handed to the caller for display.
package supervise

import "time"

// State is the lifecycle state of a build session.
type State int

const (
	StateIdle State = iota
	StateLaunching
	StateStreaming
	StateCompleted
	StateFailed
	StateCanceled
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLaunching:
		return "launching"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCanceled:
		return "canceled"
	case StateTimedOut:
		return "timed out"
	}
	return "unknown"
}

// Terminal reports whether no further state transitions can happen.
func (s State) Terminal() bool {
	return s >= StateCompleted
}

// Session tracks one supervised subprocess run. It is ephemeral; nothing
// here is persisted except the log artifact it points at.
type Session struct {
	Start time.Time
	State State

	// Progress counters, updated from recognized progress lines.
	UnitCount  int
	LineCount  int
	TotalLines int
	Percent    int

	// Diagnostic counters. ErrorCount prefers the count reported by the
	// build's own progress lines when present.
	ErrorCount   int
	WarningCount int

	LogPath  string
	ExitCode int
}

// Elapsed returns time since the session started, zero before launch.
func (s *Session) Elapsed() time.Duration {
	if s.Start.IsZero() {
		return 0
	}
	return time.Since(s.Start)
}

// Package bferr defines the fatal error taxonomy for taskbench: every
// failure the core detects is one of these four types, returned as a
// plain error. Only cmd/taskbench turns one into a process exit.
package bferr

import "fmt"

// ConfigError reports a malformed or inconsistent command-line flag.
type ConfigError struct {
	Flag   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: flag %s: %s", e.Flag, e.Reason)
}

// ValidationError reports a graph that fails a well-formedness invariant.
type ValidationError struct {
	Graph  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("graph %d failed validation: %s", e.Graph, e.Reason)
}

// CorruptionError reports execute-point finding a wrong (timestep, point)
// pair in an input buffer, or a required input buffer missing or shorter
// than one pair.
type CorruptionError struct {
	Graph      int
	Timestep   int
	Point      int
	InputIndex int
	Position   int
	Expected   [2]int64
	Actual     [2]int64
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf(
		"corruption at graph=%d timestep=%d point=%d input[%d] pos=%d: expected (%d,%d), got (%d,%d)",
		e.Graph, e.Timestep, e.Point, e.InputIndex, e.Position,
		e.Expected[0], e.Expected[1], e.Actual[0], e.Actual[1],
	)
}

// ScratchCorruptionError reports a scratch buffer missing its magic header.
type ScratchCorruptionError struct {
	Graph    int
	Timestep int
	Point    int
	Got      uint64
}

func (e *ScratchCorruptionError) Error() string {
	return fmt.Sprintf(
		"scratch corruption at graph=%d timestep=%d point=%d: expected magic 0x%X, got 0x%X",
		e.Graph, e.Timestep, e.Point, uint64(0x5C4A7C8B), e.Got,
	)
}

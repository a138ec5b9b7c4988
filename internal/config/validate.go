package config

import (
	"fmt"

	"github.com/taskbench/taskbench/internal/bferr"
)

// Validate checks the field-level well-formedness invariants and the
// post-parse rules that don't require recomputing the dependence graph
// (period/pattern consistency, spread wrap-around). Dependency/reverse-
// dependency symmetry is checked separately by internal/graph.ValidateSymmetry,
// which needs the graph package's own closed forms and would create an
// import cycle if pulled in here.
func Validate(g *TaskGraph) error {
	if g.Timesteps < 1 {
		return &bferr.ValidationError{Graph: g.GraphIndex, Reason: "timesteps must be >= 1"}
	}
	if g.MaxWidth < 1 {
		return &bferr.ValidationError{Graph: g.GraphIndex, Reason: "max_width must be >= 1"}
	}
	if g.OutputBytesPerTask < SizeOfPair {
		return &bferr.ValidationError{Graph: g.GraphIndex, Reason: "output_bytes_per_task must be >= 16"}
	}
	if g.OutputBytesPerTask%SizeOfPair != 0 {
		return &bferr.ValidationError{Graph: g.GraphIndex, Reason: "output_bytes_per_task must be a multiple of 16"}
	}
	if g.ScratchBytesPerTask%8 != 0 {
		return &bferr.ValidationError{Graph: g.GraphIndex, Reason: "scratch_bytes_per_task must be a multiple of 8"}
	}
	if g.FractionConnected < 0 || g.FractionConnected > 1 {
		return &bferr.ValidationError{Graph: g.GraphIndex, Reason: "fraction_connected must be in [0,1]"}
	}
	if g.Kernel.Imbalance < 0 || g.Kernel.Imbalance > 2 {
		return &bferr.ValidationError{Graph: g.GraphIndex, Reason: "kernel imbalance must be in [0,2]"}
	}
	if g.Kernel.FractionMem < 0 || g.Kernel.FractionMem > 1 {
		return &bferr.ValidationError{Graph: g.GraphIndex, Reason: "kernel fraction_mem must be in [0,1]"}
	}

	requiresPeriod := g.Dependence.RequiresPeriod()
	if requiresPeriod && g.Period == 0 {
		return &bferr.ValidationError{
			Graph:  g.GraphIndex,
			Reason: fmt.Sprintf("dependence %s requires a non-zero period", g.Dependence),
		}
	}
	if !requiresPeriod && g.Period != 0 {
		return &bferr.ValidationError{
			Graph:  g.GraphIndex,
			Reason: fmt.Sprintf("dependence %s must not set a period", g.Dependence),
		}
	}

	if g.Dependence == PatternSpread {
		if g.Radix <= 0 {
			return &bferr.ValidationError{Graph: g.GraphIndex, Reason: "spread requires radix > 0"}
		}
		maxPeriod := ceilDiv(g.MaxWidth, g.Radix)
		if g.Period > maxPeriod {
			return &bferr.ValidationError{
				Graph: g.GraphIndex,
				Reason: fmt.Sprintf("spread period %d exceeds ceil(width/radix) = %d",
					g.Period, maxPeriod),
			}
		}
	}

	switch g.Dependence {
	case PatternNearest, PatternRandomNearest, PatternRandomSpread:
		if g.Radix < 0 {
			return &bferr.ValidationError{Graph: g.GraphIndex, Reason: "radix must be >= 0"}
		}
	}

	return nil
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

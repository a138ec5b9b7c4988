package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskbench/taskbench/internal/config"
)

func TestValidateSymmetry_AllPatternsPass(t *testing.T) {
	patterns := []config.Pattern{
		config.PatternTrivial, config.PatternNoComm, config.PatternStencil1D,
		config.PatternStencil1DPeriodic, config.PatternDom, config.PatternTree,
		config.PatternFFT, config.PatternAllToAll, config.PatternNearest,
		config.PatternSpread, config.PatternRandomNearest, config.PatternRandomSpread,
	}
	for _, p := range patterns {
		g := &config.TaskGraph{
			GraphIndex: 0, MaxWidth: 9, Dependence: p,
			Radix: 3, Period: 3, FractionConnected: 0.5,
		}
		assert.NoErrorf(t, ValidateSymmetry(g), "pattern %s", p)
	}
}

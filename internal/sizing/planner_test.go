package sizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbench/taskbench/internal/config"
)

func TestPlan_FlatWhenSixteenBytes(t *testing.T) {
	g := &config.TaskGraph{
		Timesteps: 3, MaxWidth: 4, Dependence: config.PatternNoComm,
		OutputBytesPerTask: 16, OutputCase: config.OutputCaseUniform,
	}
	Plan(g)
	require.Len(t, g.OutputByteSize, 3)
	for _, row := range g.OutputByteSize {
		for _, v := range row {
			assert.Equal(t, int64(16), v)
		}
	}
}

func TestPlan_GammaCase_MultiplesOf16AndMinimum(t *testing.T) {
	g := &config.TaskGraph{
		Timesteps: 2, MaxWidth: 6, Dependence: config.PatternNoComm,
		OutputBytesPerTask: 64, OutputCase: config.OutputCaseGamma,
		OutputGammaA: 2, OutputGammaB: 2,
	}
	Plan(g)
	for _, row := range g.OutputByteSize {
		var total int64
		for _, v := range row {
			assert.GreaterOrEqual(t, v, int64(16))
			assert.Equal(t, int64(0), v%16)
			total += v
		}
		assert.Equal(t, g.OutputBytesPerTask*int64(len(row)), total)
	}
}

func TestPlan_Deterministic(t *testing.T) {
	newGraph := func() *config.TaskGraph {
		return &config.TaskGraph{
			Timesteps: 2, MaxWidth: 5, Dependence: config.PatternNoComm,
			OutputBytesPerTask: 48, OutputCase: config.OutputCaseNormalRandomParams,
			GraphIndex: 9,
		}
	}
	g1, g2 := newGraph(), newGraph()
	Plan(g1)
	Plan(g2)
	assert.Equal(t, g1.OutputByteSize, g2.OutputByteSize)
}

package bsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/exec"
)

func TestRun_NoCommGraphCompletesCleanly(t *testing.T) {
	exec.ResetDebugMask()
	g := &config.TaskGraph{
		Timesteps: 4, MaxWidth: 6, Dependence: config.PatternNoComm,
		Kernel:             config.Kernel{Tag: config.KernelComputeBound, Iterations: 5},
		OutputBytesPerTask: 16,
	}
	stats, err := Run(g, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2*64*5+64)*24, stats.FLOPs) // 4 timesteps * 6 points
	assert.True(t, exec.Executed(0))
}

func TestRun_StencilGraphCompletesCleanly(t *testing.T) {
	g := &config.TaskGraph{
		Timesteps: 5, MaxWidth: 8, Dependence: config.PatternStencil1D,
		Kernel:             config.Kernel{Tag: config.KernelEmpty},
		OutputBytesPerTask: 16,
	}
	_, err := Run(g, 1)
	require.NoError(t, err)
}

func TestRun_UsesScratchWhenConfigured(t *testing.T) {
	g := &config.TaskGraph{
		Timesteps: 2, MaxWidth: 4, Dependence: config.PatternNoComm,
		Kernel:              config.Kernel{Tag: config.KernelMemoryBound, Iterations: 4, Samples: 2},
		OutputBytesPerTask:  16,
		ScratchBytesPerTask: 64,
	}
	stats, err := Run(g, 2)
	require.NoError(t, err)
	assert.Positive(t, stats.Bytes)
}

package taskinsert

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
	stats, err := Run(g, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2*64*5+64)*24, stats.FLOPs)
	assert.True(t, exec.Executed(0))
}

func TestRun_StencilGraphWithDefaultWorkerCount(t *testing.T) {
	g := &config.TaskGraph{
		Timesteps: 5, MaxWidth: 8, Dependence: config.PatternStencil1D,
		Kernel:             config.Kernel{Tag: config.KernelEmpty},
		OutputBytesPerTask: 16,
	}
	_, err := Run(g, 1, 0)
	require.NoError(t, err)
}

func TestRun_AllToAllGraphFansOutCleanly(t *testing.T) {
	g := &config.TaskGraph{
		Timesteps: 3, MaxWidth: 5, Dependence: config.PatternAllToAll,
		Kernel:             config.Kernel{Tag: config.KernelComputeBound2, Iterations: 2},
		OutputBytesPerTask: 16,
	}
	_, err := Run(g, 2, 4)
	require.NoError(t, err)
}

func TestRun_DomGraphHandlesShrinkingRows(t *testing.T) {
	g := &config.TaskGraph{
		Timesteps: 6, MaxWidth: 4, Dependence: config.PatternDom,
		Kernel:             config.Kernel{Tag: config.KernelEmpty},
		OutputBytesPerTask: 16,
	}
	_, err := Run(g, 3, 2)
	require.NoError(t, err)
}

package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/kernel"
)

func TestCompute_NoCommTasksAndDeps(t *testing.T) {
	g := &config.TaskGraph{
		Timesteps: 3, MaxWidth: 4, Dependence: config.PatternNoComm,
		Kernel: config.Kernel{Tag: config.KernelComputeBound, Iterations: 10},
	}
	tot := Compute(g, 0)
	assert.Equal(t, int64(12), tot.Tasks) // 3 timesteps * 4 points
	assert.Equal(t, int64(8), tot.TotalDeps) // 2 dependent timesteps * 4 points * 1 dep each
	assert.Equal(t, int64(2*64*10+64)*12, tot.FLOPs)
}

func TestCompute_AllToAll_LocalNonLocalSplit(t *testing.T) {
	g := &config.TaskGraph{
		Timesteps: 2, MaxWidth: 4, Dependence: config.PatternAllToAll,
	}
	tot := Compute(g, 2)
	assert.Equal(t, int64(16), tot.TotalDeps) // 4 points * 4 deps each
	assert.Equal(t, tot.TotalDeps, tot.LocalDeps+tot.NonLocalDeps)
	assert.Positive(t, tot.NonLocalDeps)
}

func TestTaskCost_ComputeDGEMM(t *testing.T) {
	flops, bytes := TaskCost(config.Kernel{Tag: config.KernelComputeDGEMM, Iterations: 2}, 3*8*16*16, kernel.TaskID{})
	assert.Equal(t, int64(16), int64(16)) // sanity anchor for N=16
	assert.Equal(t, int64(2*16*16*16*2), flops)
	assert.Equal(t, int64(0), bytes)
}

func TestCompute_LoadImbalance_FLOPsMatchExecutedDraw(t *testing.T) {
	g := &config.TaskGraph{
		Timesteps: 1, MaxWidth: 4, Dependence: config.PatternNoComm, GraphIndex: 3,
		Kernel: config.Kernel{Tag: config.KernelLoadImbalance, Iterations: 100, Imbalance: 0.5},
	}
	tot := Compute(g, 0)

	var want int64
	for p := 0; p < g.MaxWidth; p++ {
		s := kernel.Run(g.Kernel, nil, kernel.TaskID{Graph: g.GraphIndex, Timestep: 0, Point: p})
		want += s.FLOPs
	}
	assert.Equal(t, want, tot.FLOPs)
}

func TestRates_ZeroElapsedIsZero(t *testing.T) {
	tot := Totals{FLOPs: 100, Bytes: 100}
	f, b := tot.Rates(0)
	assert.Zero(t, f)
	assert.Zero(t, b)
}

func TestPrint_IncludesNodeLinesOnlyWhenSet(t *testing.T) {
	var buf bytes.Buffer
	tot := Totals{Tasks: 10}
	tot.Print(&buf, time.Second)
	assert.NotContains(t, buf.String(), "Number of Nodes")

	buf.Reset()
	tot.Nodes = 2
	tot.Print(&buf, time.Second)
	assert.Contains(t, buf.String(), "Number of Nodes")
}

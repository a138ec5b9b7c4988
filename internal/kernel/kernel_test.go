package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskbench/taskbench/internal/config"
)

func TestRun_Empty(t *testing.T) {
	s := Run(config.Kernel{Tag: config.KernelEmpty}, nil, TaskID{})
	assert.Equal(t, Stats{}, s)
}

func TestRun_ComputeBound_FLOPsFormula(t *testing.T) {
	s := Run(config.Kernel{Tag: config.KernelComputeBound, Iterations: 10}, nil, TaskID{})
	assert.Equal(t, int64(2*64*10+64), s.FLOPs)
}

func TestRun_ComputeBound2_FLOPsFormula(t *testing.T) {
	s := Run(config.Kernel{Tag: config.KernelComputeBound2, Iterations: 10}, nil, TaskID{})
	assert.Equal(t, int64(2*32*10), s.FLOPs)
}

func TestRun_ComputeDGEMM_FLOPsFormula(t *testing.T) {
	scratch := make([]byte, 3*8*16*16) // n=16
	s := Run(config.Kernel{Tag: config.KernelComputeDGEMM, Iterations: 2}, scratch, TaskID{})
	n := dgemmN(len(scratch))
	assert.Equal(t, int64(2*n*n*n*2), s.FLOPs)
}

func TestRun_MemoryBound_BytesFormula(t *testing.T) {
	scratch := make([]byte, 1024)
	s := Run(config.Kernel{Tag: config.KernelMemoryBound, Iterations: 10, Samples: 5}, scratch, TaskID{})
	assert.Equal(t, int64(1024*(10/5)), s.Bytes)
}

func TestRun_LoadImbalance_Deterministic(t *testing.T) {
	k := config.Kernel{Tag: config.KernelLoadImbalance, Iterations: 100, Imbalance: 0.5}
	id := TaskID{Graph: 1, Timestep: 2, Point: 3}
	a := Run(k, nil, id)
	b := Run(k, nil, id)
	assert.Equal(t, a, b)
}

func TestRun_DistImbalance_NonNegative(t *testing.T) {
	k := config.Kernel{
		Tag:  config.KernelDistImbalance,
		Dist: config.Distribution{Tag: config.DistGamma, A: 2, B: 2},
	}
	for p := 0; p < 20; p++ {
		s := Run(k, nil, TaskID{Graph: 1, Timestep: 1, Point: p})
		assert.GreaterOrEqual(t, s.FLOPs, int64(0))
	}
}

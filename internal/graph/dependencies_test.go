package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbench/taskbench/internal/config"
)

func points(ivs []Interval) []int {
	var out []int
	for _, iv := range ivs {
		for p := iv.Lo; p <= iv.Hi; p++ {
			out = append(out, p)
		}
	}
	return out
}

func TestStencil1D_Scenario(t *testing.T) {
	g := &config.TaskGraph{Timesteps: 4, MaxWidth: 4, Dependence: config.PatternStencil1D}

	assert.Equal(t, 4, Width(g, 0))
	total := 0
	for tt := 0; tt < 4; tt++ {
		total += Width(g, tt)
	}
	assert.Equal(t, 16, total)

	deps := Dependencies(g, Dset(g, 1), 1)
	assert.ElementsMatch(t, []int{0, 1, 2}, points(deps))
}

func TestFFT_Scenario(t *testing.T) {
	g := &config.TaskGraph{Timesteps: 3, MaxWidth: 8, Dependence: config.PatternFFT}

	maxDS := MaxDependenceSets(g)
	require.Equal(t, 3, maxDS)

	assert.Equal(t, 0, Dset(g, 1))
	assert.Equal(t, 1, Dset(g, 2))
	assert.Equal(t, 2, Dset(g, 3))

	deps := Dependencies(g, 1, 4)
	assert.ElementsMatch(t, []int{2, 4, 6}, points(deps))
}

func TestTree_Scenario(t *testing.T) {
	g := &config.TaskGraph{Timesteps: 5, MaxWidth: 8, Dependence: config.PatternTree}

	deps := Dependencies(g, 0, 3)
	assert.ElementsMatch(t, []int{1}, points(deps))

	rdeps := ReverseDependencies(g, 0, 1)
	assert.ElementsMatch(t, []int{2, 3}, points(rdeps))
}

func TestDom_Scenario(t *testing.T) {
	// For T=4, W=6: offset(3) = max(0, 3+6-4) = 5, width(3) = min(6, 4, 1) = 1.
	g := &config.TaskGraph{Timesteps: 4, MaxWidth: 6, Dependence: config.PatternDom}

	assert.Equal(t, 5, Offset(g, 3))
	assert.Equal(t, 1, Width(g, 3))
}

func TestSpread_Scenario(t *testing.T) {
	g := &config.TaskGraph{Timesteps: 4, MaxWidth: 8, Dependence: config.PatternSpread, Radix: 3, Period: 2}

	deps0 := Dependencies(g, 0, 0)
	assert.ElementsMatch(t, []int{0, 2, 5}, points(deps0))

	deps1 := Dependencies(g, 1, 0)
	assert.ElementsMatch(t, []int{0, 3, 6}, points(deps1))
}

func TestRandomNearest_ZeroFraction_SelfOnly(t *testing.T) {
	g := &config.TaskGraph{
		Timesteps: 4, MaxWidth: 8, Dependence: config.PatternRandomNearest,
		Radix: 5, Period: 1, FractionConnected: 0.0,
	}

	for p := 0; p < g.MaxWidth; p++ {
		deps := Dependencies(g, 0, p)
		assert.Equal(t, []int{p}, points(deps))
	}
}

func TestSymmetry_AllPatterns(t *testing.T) {
	patterns := []config.Pattern{
		config.PatternTrivial, config.PatternNoComm, config.PatternStencil1D,
		config.PatternStencil1DPeriodic, config.PatternDom, config.PatternTree,
		config.PatternFFT, config.PatternAllToAll, config.PatternNearest,
		config.PatternSpread, config.PatternRandomNearest, config.PatternRandomSpread,
	}

	for _, pat := range patterns {
		g := &config.TaskGraph{
			Timesteps: 6, MaxWidth: 9, Dependence: pat,
			Radix: 3, Period: 3, FractionConnected: 0.5, GraphIndex: 7,
		}
		maxDS := MaxDependenceSets(g)
		for dset := 0; dset < maxDS; dset++ {
			for src := 0; src < g.MaxWidth; src++ {
				for _, dst := range points(Dependencies(g, dset, src)) {
					rset := points(ReverseDependencies(g, dset, dst))
					assert.Contains(t, rset, src,
						"pattern=%v dset=%d src=%d dst=%d: src missing from reverse set %v",
						pat, dset, src, dst, rset)
				}
			}
		}
	}
}

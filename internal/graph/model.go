package graph

import (
	"math/bits"

	"github.com/taskbench/taskbench/internal/config"
)

// Offset returns the first valid point index of timestep t's task row.
// Timesteps before the graph starts (t < 0) have an empty row.
func Offset(g *config.TaskGraph, t int) int {
	if t < 0 {
		return 0
	}
	if g.Dependence == config.PatternDom {
		v := t + g.MaxWidth - g.Timesteps
		if v < 0 {
			v = 0
		}
		return v
	}
	return 0
}

// Width returns the number of valid points in timestep t's task row.
func Width(g *config.TaskGraph, t int) int {
	if t < 0 {
		return 0
	}
	if g.Dependence == config.PatternDom {
		w := g.MaxWidth
		if t+1 < w {
			w = t + 1
		}
		if rem := g.Timesteps - t; rem < w {
			w = rem
		}
		if w < 0 {
			w = 0
		}
		return w
	}
	return g.MaxWidth
}

// MaxDependenceSets returns the number of distinct dset values a pattern
// cycles through.
func MaxDependenceSets(g *config.TaskGraph) int {
	switch g.Dependence {
	case config.PatternFFT:
		return ceilLog2(g.MaxWidth)
	case config.PatternSpread, config.PatternRandomNearest, config.PatternRandomSpread:
		return g.Period
	default:
		return 1
	}
}

// Dset returns the dependence-set index in force at timestep t.
func Dset(g *config.TaskGraph, t int) int {
	switch g.Dependence {
	case config.PatternFFT:
		maxDS := MaxDependenceSets(g)
		return mod(t+maxDS-1, maxDS)
	case config.PatternSpread, config.PatternRandomNearest, config.PatternRandomSpread:
		return mod(t, MaxDependenceSets(g))
	default:
		return 0
	}
}

func ceilLog2(w int) int {
	if w <= 1 {
		return 1
	}
	n := bits.Len(uint(w - 1))
	return n
}

func mod(a, n int) int {
	if n <= 0 {
		return 0
	}
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Package sizing implements the output-size planner: it fills in each
// graph's per-(timestep, point) output byte size table once, at
// configuration time.
package sizing

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/graph"
	"github.com/taskbench/taskbench/internal/rng"
)

const nrolls = 10000

// Plan populates g.OutputByteSize, a [timestep][point-offset] table of
// per-task output byte sizes, for every valid point of every timestep row
// (rows of zero width stay nil). Called
// once per graph at configuration time; the result is immutable after
// that.
func Plan(g *config.TaskGraph) {
	g.OutputByteSize = make([][]int64, g.Timesteps)

	flat := g.OutputBytesPerTask == 16 || g.OutputCase == config.OutputCaseUniform
	for t := 0; t < g.Timesteps; t++ {
		width := graph.Width(g, t)
		if width == 0 {
			continue
		}
		row := make([]int64, width)
		if flat {
			for i := range row {
				row[i] = g.OutputBytesPerTask
			}
			g.OutputByteSize[t] = row
			continue
		}
		planRow(g, t, width, row)
		g.OutputByteSize[t] = row
	}
}

func planRow(g *config.TaskGraph, t, width int, row []int64) {
	src := rng.Source(rng.Key{int64(g.GraphIndex), int64(t), 0, 0, 0})
	draw := rowSampler(g, width, src)

	counts := make([]int64, width)
	for roll := 0; roll < nrolls; roll++ {
		v := draw()
		idx := int(v)
		if idx < 0 {
			idx = 0
		}
		if idx >= width {
			idx = width - 1
		}
		counts[idx]++
	}

	nstars := (g.OutputBytesPerTask - 16) * int64(width) / 16
	stars := make([]int64, width)

	// First pass: allocate each point its share of nstars in proportion to
	// how often it was rolled.
	var allocated int64
	for i, c := range counts {
		s := c * nstars / nrolls
		stars[i] = s
		allocated += s
	}

	// Second pass: redistribute what the first pass's flooring left over,
	// again in proportion to each point's roll count. The remainder
	// (nstars - allocated) shrinks as allocated grows, so each point sees its
	// share of what's left at that point in the loop, not a value fixed
	// before the loop started.
	// Whatever the loop still can't place lands on the last point.
	for i, c := range counts {
		s := c * (nstars - allocated) / nrolls
		stars[i] += s
		allocated += s
	}
	deficit := nstars - allocated
	if width > 0 {
		stars[width-1] += deficit
	}

	for i := range row {
		row[i] = 16 + stars[i]*16
	}
}

// rowSampler returns a closure drawing one value per call from the
// distribution selected by the graph's output case, for bucketing into a
// point index in [0, width). Case 2's mu/sigma are drawn once per row, not
// once per roll: the row samples all come from one fixed Normal, not a
// freshly reparameterized one on every draw.
func rowSampler(g *config.TaskGraph, width int, src *rand.Rand) func() float64 {
	switch g.OutputCase {
	case config.OutputCaseNormal:
		d := distuv.Normal{Mu: g.OutputMean, Sigma: g.OutputStd, Src: src}
		return d.Rand
	case config.OutputCaseNormalRandomParams:
		mu := src.Float64() * float64(width)
		sigma := src.Float64() * float64(width)
		d := distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
		return d.Rand
	case config.OutputCaseGamma:
		a := g.OutputGammaA
		b := g.OutputGammaB
		if a == 0 {
			a = 2
		}
		if b == 0 {
			b = 2
		}
		d := distuv.Gamma{Alpha: a, Beta: 1.0 / b, Src: src}
		return d.Rand
	default:
		return func() float64 {
			return math.Min(float64(width-1), src.Float64()*float64(width))
		}
	}
}

package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/graph"
	"github.com/taskbench/taskbench/internal/kernel"
)

// Totals is the pure per-graph accounting result: task count, dependency
// counts (overall and, when a node count was given, split local/non-local),
// and resource totals. It carries no runtime telemetry — every field is
// derived from the configuration alone.
type Totals struct {
	Nodes        int
	Tasks        int64
	TotalDeps    int64
	LocalDeps    int64
	NonLocalDeps int64
	FLOPs        int64
	Bytes        int64
}

// Compute derives Totals for g, partitioning dependencies into local/
// non-local by the node mapping node(p) = floor(p*nodes/W) when nodes > 0.
func Compute(g *config.TaskGraph, nodes int) Totals {
	tot := Totals{Nodes: nodes}
	W := g.MaxWidth

	for t := 0; t < g.Timesteps; t++ {
		off, w := graph.Offset(g, t), graph.Width(g, t)
		tot.Tasks += int64(w)

		for p := off; p < off+w; p++ {
			id := kernel.TaskID{Graph: g.GraphIndex, Timestep: t, Point: p}
			flopsPerTask, bytesPerTask := TaskCost(g.Kernel, g.ScratchBytesPerTask, id)
			tot.FLOPs += flopsPerTask
			tot.Bytes += bytesPerTask
		}

		if t == 0 || w == 0 {
			continue
		}
		lastOff, lastW := graph.Offset(g, t-1), graph.Width(g, t-1)
		if lastW == 0 {
			continue
		}
		dset := graph.Dset(g, t)
		for p := off; p < off+w; p++ {
			for _, iv := range graph.Dependencies(g, dset, p) {
				clamped, ok := iv.Clamp(lastOff + lastW)
				if !ok {
					continue
				}
				lo := clamped.Lo
				if lo < lastOff {
					lo = lastOff
				}
				for d := lo; d <= clamped.Hi; d++ {
					tot.TotalDeps++
					if nodes > 0 {
						if node(p, W, nodes) == node(d, W, nodes) {
							tot.LocalDeps++
						} else {
							tot.NonLocalDeps++
						}
					}
				}
			}
		}
	}
	return tot
}

func node(p, width, nodes int) int {
	if nodes <= 0 || width <= 0 {
		return 0
	}
	return p * nodes / width
}

// TaskCost returns the FLOPs and bytes one task of kernel k at id costs, per
// the same closed-form formulas internal/kernel executes by. For
// load_imbalance/dist_imbalance the iteration count is not the nominal
// k.Iterations but the deterministic per-task draw internal/kernel makes at
// execution time — reproduced here via the same internal/rng-backed
// functions kernel.Run calls, so the accounted FLOPs match executed work
// without actually running the kernel.
func TaskCost(k config.Kernel, scratchBytes int64, id kernel.TaskID) (flops, bytes int64) {
	switch k.Tag {
	case config.KernelComputeBound:
		flops = 2*64*k.Iterations + 64
	case config.KernelLoadImbalance:
		iters := kernel.LoadImbalanceIterations(k, id)
		flops = 2*64*iters + 64
	case config.KernelDistImbalance:
		iters := kernel.DistImbalanceIterations(k, id)
		flops = 2*64*iters + 64
	case config.KernelComputeBound2:
		flops = 2 * 32 * k.Iterations
	case config.KernelComputeDGEMM:
		n := int64(math.Sqrt(float64(scratchBytes) / (3 * 8)))
		flops = 2 * n * n * n * k.Iterations
	case config.KernelMemoryBound, config.KernelMemoryDAXPY:
		if k.Samples > 0 {
			bytes = scratchBytes * (k.Iterations / k.Samples)
		}
	case config.KernelComputeMemory:
		memIters := int64(float64(k.Iterations) * k.FractionMem)
		compIters := k.Iterations - memIters
		flops = 2*64*compIters + 64
		samples := k.Samples
		if samples <= 0 {
			samples = 1
		}
		bytes = scratchBytes * (memIters / samples)
	}
	return flops, bytes
}

// Rates derives FLOP/s and B/s given an externally supplied elapsed time.
func (tot Totals) Rates(elapsed time.Duration) (flopsPerSec, bytesPerSec float64) {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0, 0
	}
	return float64(tot.FLOPs) / secs, float64(tot.Bytes) / secs
}

// Print renders the line-oriented stdout summary of a run.
func (tot Totals) Print(w io.Writer, elapsed time.Duration) {
	flopsPerSec, bytesPerSec := tot.Rates(elapsed)

	fmt.Fprintln(w, "=== Task Graph Report ===")
	fmt.Fprintf(w, "Total Tasks          : %d\n", tot.Tasks)
	fmt.Fprintf(w, "Total Dependencies   : %d\n", tot.TotalDeps)
	if tot.Nodes > 0 {
		fmt.Fprintf(w, "Number of Nodes      : %d\n", tot.Nodes)
		fmt.Fprintf(w, "Local Dependencies   : %d\n", tot.LocalDeps)
		fmt.Fprintf(w, "Nonlocal Dependencies: %d\n", tot.NonLocalDeps)
	}
	fmt.Fprintf(w, "Total FLOPs          : %d\n", tot.FLOPs)
	fmt.Fprintf(w, "Total Bytes          : %d\n", tot.Bytes)
	fmt.Fprintf(w, "Elapsed Time         : %s\n", elapsed)
	fmt.Fprintf(w, "FLOP/s               : %.2f\n", flopsPerSec)
	fmt.Fprintf(w, "B/s                  : %.2f\n", bytesPerSec)
}

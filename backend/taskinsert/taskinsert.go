// Package taskinsert is an illustrative dynamic task-insertion backend: a
// fixed worker pool drains a channel of "ready" (timestep, point) pairs,
// readiness tracked by an atomic dependency counter per point that workers
// decrement as producers finish, mirroring a runtime-managed task queue
// rather than bulk-synchronous's global barrier. In-process only, a minimal
// stand-in for a real dynamic-scheduling runtime.
package taskinsert

import (
	"sync"
	"sync/atomic"

	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/exec"
	"github.com/taskbench/taskbench/internal/graph"
	"github.com/taskbench/taskbench/internal/kernel"
)

type point struct {
	t, p int
}

// Run drains g's tasks through a workers-sized pool, enqueuing (t, p) only
// once every dependency it has on timestep t-1 has completed. It returns
// the summed resource cost, or the first fatal error execute-point
// reported. A workers value <= 0 defaults to the graph's widest row.
func Run(g *config.TaskGraph, graphIdx, workers int) (kernel.Stats, error) {
	if workers <= 0 {
		workers = g.MaxWidth
		if workers < 1 {
			workers = 1
		}
	}

	offsets := make([]int, g.Timesteps)
	widths := make([]int, g.Timesteps)
	for t := 0; t < g.Timesteps; t++ {
		offsets[t], widths[t] = graph.Offset(g, t), graph.Width(g, t)
	}

	remaining := make([][]int32, g.Timesteps)
	outputs := make([][][]byte, g.Timesteps)
	for t := 0; t < g.Timesteps; t++ {
		remaining[t] = make([]int32, widths[t])
		outputs[t] = make([][]byte, widths[t])
		if t == 0 {
			continue
		}
		dset := graph.Dset(g, t)
		for p := offsets[t]; p < offsets[t]+widths[t]; p++ {
			remaining[t][p-offsets[t]] = int32(len(dependencyPoints(g, dset, p, offsets[t-1], widths[t-1])))
		}
	}

	ready := make(chan point, totalTasks(widths)+1)
	var pending int64

	enqueue := func(pt point) {
		atomic.AddInt64(&pending, 1)
		ready <- pt
	}
	// Seed every point with no forward dependencies as ready, not just row
	// 0: a pattern like trivial leaves remaining[t] at zero for every t, and
	// those points would otherwise never be enqueued by a producer's
	// completion.
	for t := 0; t < g.Timesteps; t++ {
		for p := offsets[t]; p < offsets[t]+widths[t]; p++ {
			if remaining[t][p-offsets[t]] == 0 {
				enqueue(point{t, p})
			}
		}
	}
	if pending == 0 {
		return kernel.Stats{}, nil
	}

	var total kernel.Stats
	var totalMu sync.Mutex
	var firstErr error
	var errMu sync.Mutex
	done := make(chan struct{})
	var closeOnce sync.Once

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case pt := <-ready:
					stats, err := execute(g, graphIdx, pt, offsets, widths, outputs)
					if err != nil {
						errMu.Lock()
						if firstErr == nil {
							firstErr = err
						}
						errMu.Unlock()
					} else {
						totalMu.Lock()
						total.FLOPs += stats.FLOPs
						total.Bytes += stats.Bytes
						totalMu.Unlock()
						enqueueDependents(g, pt, offsets, widths, remaining, enqueue)
					}
					if atomic.AddInt64(&pending, -1) == 0 {
						closeOnce.Do(func() { close(done) })
						return
					}
				case <-done:
					return
				}
			}
		}()
	}
	wg.Wait()

	return total, firstErr
}

func totalTasks(widths []int) int {
	n := 0
	for _, w := range widths {
		n += w
	}
	return n
}

func execute(g *config.TaskGraph, graphIdx int, pt point, offsets, widths []int, outputs [][][]byte) (kernel.Stats, error) {
	t, p := pt.t, pt.p
	var inputs [][]byte
	if t > 0 && widths[t-1] > 0 {
		dset := graph.Dset(g, t)
		for _, d := range dependencyPoints(g, dset, p, offsets[t-1], widths[t-1]) {
			inputs = append(inputs, outputs[t-1][d-offsets[t-1]])
		}
	}

	capacity := g.OutputBytesPerTask
	if len(g.OutputByteSize) > t && len(g.OutputByteSize[t]) > p-offsets[t] {
		capacity = g.OutputByteSize[t][p-offsets[t]]
	}
	out := make([]byte, capacity)

	var scratch []byte
	if g.ScratchBytesPerTask > 0 {
		scratch = make([]byte, g.ScratchBytesPerTask)
		exec.PrepareScratch(scratch)
	}

	stats, err := exec.Run(exec.Request{
		Graph: g, GraphIdx: graphIdx, Timestep: t, Point: p,
		Output: out, Inputs: inputs, Scratch: scratch,
	})
	if err != nil {
		return kernel.Stats{}, err
	}
	outputs[t][p-offsets[t]] = out
	return stats, nil
}

// enqueueDependents decrements the dependency counter of every point at
// t+1 that depends on (t, p), enqueuing it via enqueue once its counter
// reaches zero.
func enqueueDependents(g *config.TaskGraph, pt point, offsets, widths []int, remaining [][]int32, enqueue func(point)) {
	t, p := pt.t, pt.p
	next := t + 1
	if next >= g.Timesteps || widths[next] == 0 {
		return
	}
	dset := graph.Dset(g, next)
	for _, iv := range graph.ReverseDependencies(g, dset, p) {
		clamped, ok := iv.Clamp(offsets[next] + widths[next])
		if !ok {
			continue
		}
		lo := clamped.Lo
		if lo < offsets[next] {
			lo = offsets[next]
		}
		for q := lo; q <= clamped.Hi; q++ {
			idx := q - offsets[next]
			if atomic.AddInt32(&remaining[next][idx], -1) == 0 {
				enqueue(point{next, q})
			}
		}
	}
}

func dependencyPoints(g *config.TaskGraph, dset, p, lastOff, lastW int) []int {
	var pts []int
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
			pts = append(pts, d)
		}
	}
	return pts
}

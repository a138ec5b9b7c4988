// Package bsp is an illustrative bulk-synchronous backend: one goroutine
// per rank (one per point of max_width), a sync.WaitGroup barrier between
// timesteps, and each rank's most recent output held in a small ring
// buffer standing in for the inter-rank send/receive a real message-passing
// backend would perform over the network. It is in-process and exists only
// to exercise every core component end-to-end; a production message-passing
// backend would replace the goroutines with real ranks and sockets.
package bsp

import (
	"sync"

	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/exec"
	"github.com/taskbench/taskbench/internal/graph"
	"github.com/taskbench/taskbench/internal/kernel"
)

// Run executes every timestep of g under a bulk-synchronous schedule and
// returns the summed resource cost of every task, or the first fatal error
// execute-point reported.
func Run(g *config.TaskGraph, graphIdx int) (kernel.Stats, error) {
	W := g.MaxWidth

	scratches := make([][]byte, W)
	for i := range scratches {
		if g.ScratchBytesPerTask > 0 {
			scratches[i] = make([]byte, g.ScratchBytesPerTask)
			exec.PrepareScratch(scratches[i])
		}
	}

	nbFields := g.NBFields
	if nbFields <= 0 {
		nbFields = g.Timesteps
	}
	if nbFields < 1 {
		nbFields = 1
	}
	outputs := make([][][]byte, nbFields)
	for i := range outputs {
		outputs[i] = make([][]byte, W)
	}

	var total kernel.Stats
	var totalMu sync.Mutex
	var firstErr error
	var errMu sync.Mutex

	for t := 0; t < g.Timesteps; t++ {
		off, w := graph.Offset(g, t), graph.Width(g, t)
		if w == 0 {
			continue
		}
		dset := graph.Dset(g, t)
		lastOff, lastW := graph.Offset(g, t-1), graph.Width(g, t-1)
		row := outputs[t%nbFields]
		var prevRow [][]byte
		if t > 0 {
			prevRow = outputs[(t-1+nbFields)%nbFields]
		}

		var wg sync.WaitGroup
		for p := off; p < off+w; p++ {
			wg.Add(1)
			go func(p int) {
				defer wg.Done()

				var inputs [][]byte
				if t > 0 && lastW > 0 {
					for _, d := range dependencyPoints(g, dset, p, lastOff, lastW) {
						inputs = append(inputs, prevRow[d])
					}
				}

				capacity := g.OutputBytesPerTask
				if len(g.OutputByteSize) > t && len(g.OutputByteSize[t]) > p-off {
					capacity = g.OutputByteSize[t][p-off]
				}
				out := make([]byte, capacity)

				var scratch []byte
				if p < len(scratches) {
					scratch = scratches[p]
				}

				stats, err := exec.Run(exec.Request{
					Graph: g, GraphIdx: graphIdx, Timestep: t, Point: p,
					Output: out, Inputs: inputs, Scratch: scratch,
				})
				if err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
					return
				}
				row[p] = out

				totalMu.Lock()
				total.FLOPs += stats.FLOPs
				total.Bytes += stats.Bytes
				totalMu.Unlock()
			}(p)
		}
		wg.Wait()
		if firstErr != nil {
			return total, firstErr
		}
	}
	return total, nil
}

// dependencyPoints flattens graph.Dependencies(g, dset, p) into individual
// point indices, clamped to the previous row's valid range.
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

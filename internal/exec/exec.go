package exec

import (
	"encoding/binary"

	"github.com/taskbench/taskbench/internal/bferr"
	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/graph"
	"github.com/taskbench/taskbench/internal/kernel"
)

// Request bundles one execute-point call's buffers. Inputs holds one slice
// per required dependency point, in ascending point order, matching what
// Dependencies(dset(t), point) intersected with the previous timestep's
// valid range produces.
type Request struct {
	Graph    *config.TaskGraph
	GraphIdx int
	Timestep int
	Point    int
	Output   []byte
	Inputs   [][]byte
	Scratch  []byte
}

// Run validates req, writes the canonical output payload, and dispatches
// the graph's configured kernel. Corruption in the data is reported as a
// *bferr.CorruptionError or *bferr.ScratchCorruptionError; a caller
// precondition violation (timestep or point out of range, output capacity
// below 16 bytes) is reported as a *bferr.ValidationError. Every failure is
// returned, none panics.
func Run(req Request) (kernel.Stats, error) {
	g := req.Graph
	t, p := req.Timestep, req.Point

	if t < 0 || t >= g.Timesteps {
		return kernel.Stats{}, &bferr.ValidationError{
			Graph:  req.GraphIdx,
			Reason: "execute-point: timestep out of range",
		}
	}
	off, w := graph.Offset(g, t), graph.Width(g, t)
	if p < off || p >= off+w {
		return kernel.Stats{}, &bferr.ValidationError{
			Graph:  req.GraphIdx,
			Reason: "execute-point: point out of range for timestep",
		}
	}
	if len(req.Output) < config.SizeOfPair {
		return kernel.Stats{}, &bferr.ValidationError{
			Graph:  req.GraphIdx,
			Reason: "execute-point: output capacity below 16 bytes",
		}
	}
	if len(req.Scratch) > 0 {
		got := binary.LittleEndian.Uint64(req.Scratch[:8])
		if got != config.ScratchMagic {
			return kernel.Stats{}, &bferr.ScratchCorruptionError{
				Graph: req.GraphIdx, Timestep: t, Point: p, Got: got,
			}
		}
	}

	if err := validateInputs(req); err != nil {
		return kernel.Stats{}, err
	}

	writeOutput(req.Output, t, p)

	MarkExecuted(req.GraphIdx)

	var scratch []byte
	if g.ScratchBytesPerTask > 0 {
		scratch = req.Scratch
	}
	stats := kernel.Run(g.Kernel, scratch, kernel.TaskID{Graph: req.GraphIdx, Timestep: t, Point: p})
	return stats, nil
}

// validateInputs recomputes the dependency set for (t, p), intersects it
// with the previous timestep's valid range, and checks that the
// corresponding input buffer (in ascending point order) actually carries
// (t-1, d) in every 16-byte slot.
func validateInputs(req Request) error {
	g := req.Graph
	t, p := req.Timestep, req.Point
	if t == 0 {
		return nil
	}
	dset := graph.Dset(g, t)
	lastOff, lastW := graph.Offset(g, t-1), graph.Width(g, t-1)
	if lastW == 0 {
		return nil
	}

	var deps []int
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
			if d >= lastOff {
				deps = append(deps, d)
			}
		}
	}

	for i, d := range deps {
		if i >= len(req.Inputs) {
			return &bferr.CorruptionError{
				Graph: req.GraphIdx, Timestep: t, Point: p,
				InputIndex: i, Position: 0,
				Expected: [2]int64{int64(t - 1), int64(d)},
				Actual:   [2]int64{-1, -1},
			}
		}
		buf := req.Inputs[i]
		if len(buf) < config.SizeOfPair {
			return &bferr.CorruptionError{
				Graph: req.GraphIdx, Timestep: t, Point: p,
				InputIndex: i, Position: 0,
				Expected: [2]int64{int64(t - 1), int64(d)},
				Actual:   [2]int64{-1, -1},
			}
		}
		for pos := 0; pos+config.SizeOfPair <= len(buf); pos += config.SizeOfPair {
			gotT := int64(binary.LittleEndian.Uint64(buf[pos : pos+8]))
			gotP := int64(binary.LittleEndian.Uint64(buf[pos+8 : pos+16]))
			if gotT != int64(t-1) || gotP != int64(d) {
				return &bferr.CorruptionError{
					Graph: req.GraphIdx, Timestep: t, Point: p,
					InputIndex: i, Position: pos / config.SizeOfPair,
					Expected: [2]int64{int64(t - 1), int64(d)},
					Actual:   [2]int64{gotT, gotP},
				}
			}
		}
	}
	return nil
}

// writeOutput fills every 16-byte slot of out with the little-endian pair
// (timestep, point), up to out's full capacity.
func writeOutput(out []byte, t, p int) {
	for pos := 0; pos+config.SizeOfPair <= len(out); pos += config.SizeOfPair {
		binary.LittleEndian.PutUint64(out[pos:pos+8], uint64(t))
		binary.LittleEndian.PutUint64(out[pos+8:pos+16], uint64(p))
	}
}

// PrepareScratch writes the magic header into the first 8 bytes of buf.
// Backends call this once per scratch buffer before reuse across tasks.
func PrepareScratch(buf []byte) {
	if len(buf) < 8 {
		return
	}
	binary.LittleEndian.PutUint64(buf[:8], config.ScratchMagic)
}

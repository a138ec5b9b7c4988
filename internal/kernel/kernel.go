package kernel

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/rng"
)

// TaskID identifies the (graph, timestep, point) a kernel runs for, used to
// seed the deterministic imbalance variants.
type TaskID struct {
	Graph    int
	Timestep int
	Point    int
}

func (id TaskID) key(salt int64) rng.Key {
	return rng.Key{int64(id.Graph), int64(id.Timestep), int64(id.Point), salt, 0}
}

// Stats reports the resource cost of one kernel invocation, in the units
// internal/report aggregates.
type Stats struct {
	FLOPs int64
	Bytes int64
}

const sizeofDouble = 8

// Run dispatches the kernel named by k, executing against scratch (which
// may be nil when the graph's ScratchBytesPerTask is zero), and returns its
// resource cost.
func Run(k config.Kernel, scratch []byte, id TaskID) Stats {
	switch k.Tag {
	case config.KernelEmpty:
		return Stats{}
	case config.KernelBusyWait:
		busyWait(k.Iterations)
		return Stats{}
	case config.KernelComputeBound:
		return computeBound(k.Iterations)
	case config.KernelComputeBound2:
		return computeBound2(k.Iterations)
	case config.KernelComputeDGEMM:
		return computeDGEMM(scratch, k.Iterations)
	case config.KernelMemoryBound:
		return memoryBound(scratch, k.Iterations, k.Samples)
	case config.KernelMemoryDAXPY:
		return memoryDAXPY(scratch, k.Iterations, k.Samples)
	case config.KernelComputeMemory:
		return computeMemory(scratch, k)
	case config.KernelIOBound:
		ioBound()
		return Stats{}
	case config.KernelLoadImbalance:
		return loadImbalance(k, id)
	case config.KernelDistImbalance:
		return distImbalance(k, id)
	default:
		return Stats{}
	}
}

// sink defeats dead-code elimination of the busy_wait/compute loops without
// pulling in a benchmarking framework.
var sink float64

func busyWait(iterations int64) {
	var x float64 = 1.0
	for i := int64(0); i < iterations; i++ {
		x = x*1.0000001 + 1.0
	}
	sink = x
}

// computeBound performs 2*64*iterations+64 FLOPs on register-resident
// values.
func computeBound(iterations int64) Stats {
	var acc [64]float64
	for i := range acc {
		acc[i] = float64(i + 1)
	}
	for i := int64(0); i < iterations; i++ {
		for j := range acc {
			acc[j] = acc[j]*1.0000001 + acc[(j+1)%len(acc)]
		}
	}
	var s float64
	for _, v := range acc {
		s += v
	}
	sink = s
	return Stats{FLOPs: 2*64*iterations + 64}
}

// computeBound2 performs 2*32*iterations FLOPs, a lighter sibling of
// computeBound.
func computeBound2(iterations int64) Stats {
	var acc [32]float64
	for i := range acc {
		acc[i] = float64(i + 1)
	}
	for i := int64(0); i < iterations; i++ {
		for j := range acc {
			acc[j] = acc[j]*1.0000001 + acc[(j+1)%len(acc)]
		}
	}
	var s float64
	for _, v := range acc {
		s += v
	}
	sink = s
	return Stats{FLOPs: 2 * 32 * iterations}
}

// computeDGEMM runs iterations square dense GEMMs sized so three NxN
// matrices fit in scratch.
func computeDGEMM(scratch []byte, iterations int64) Stats {
	n := dgemmN(len(scratch))
	if n <= 0 || iterations <= 0 {
		return Stats{}
	}
	a, b, c := sliceMatrices(scratch, n)
	for it := int64(0); it < iterations; it++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				var sum float64
				for kk := 0; kk < n; kk++ {
					sum += a[i*n+kk] * b[kk*n+j]
				}
				c[i*n+j] += sum
			}
		}
	}
	return Stats{FLOPs: 2 * int64(n) * int64(n) * int64(n) * iterations}
}

func dgemmN(scratchBytes int) int {
	if scratchBytes <= 0 {
		return 0
	}
	return int(math.Sqrt(float64(scratchBytes) / (3 * sizeofDouble)))
}

// sliceMatrices decodes three equal float64 slices of length n*n from
// scratch into freshly allocated slices, used only to give the DGEMM kernel
// somewhere to read and write; nothing is written back to scratch.
func sliceMatrices(scratch []byte, n int) (a, b, c []float64) {
	words := n * n
	bytesPer := words * sizeofDouble
	if len(scratch) < 3*bytesPer {
		words = len(scratch) / (3 * sizeofDouble)
		bytesPer = words * sizeofDouble
	}
	a = bytesToFloat64(scratch[0:bytesPer])
	b = bytesToFloat64(scratch[bytesPer : 2*bytesPer])
	c = bytesToFloat64(scratch[2*bytesPer : 3*bytesPer])
	for i := range a {
		a[i], b[i] = float64(i%7+1), float64(i%5+1)
	}
	return a, b, c
}

func bytesToFloat64(b []byte) []float64 {
	n := len(b) / 8
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		bits := uint64(b[i*8]) | uint64(b[i*8+1])<<8 | uint64(b[i*8+2])<<16 |
			uint64(b[i*8+3])<<24 | uint64(b[i*8+4])<<32 | uint64(b[i*8+5])<<40 |
			uint64(b[i*8+6])<<48 | uint64(b[i*8+7])<<56
		out[i] = math.Float64frombits(bits)
	}
	return out
}

// memoryBound streams the scratch region iterations/samples times,
// touching every byte. The first 8 bytes hold the magic header
// execute-point checks on every call, so they are read but never rewritten.
func memoryBound(scratch []byte, iterations, samples int64) Stats {
	if samples <= 0 || len(scratch) == 0 {
		return Stats{}
	}
	passes := iterations / samples
	var acc byte
	for p := int64(0); p < passes; p++ {
		for i := range scratch {
			acc += scratch[i]
			if i >= 8 {
				scratch[i] = acc
			}
		}
	}
	sink = float64(acc)
	return Stats{Bytes: int64(len(scratch)) * passes}
}

// memoryDAXPY performs a strided DAXPY (y = a*x + y) over two equal-length
// float64 vectors decoded from the two halves of scratch, with the same byte
// accounting as memoryBound. The vectors are copies; scratch itself is not
// written.
func memoryDAXPY(scratch []byte, iterations, samples int64) Stats {
	if samples <= 0 || len(scratch) < 16 {
		return Stats{}
	}
	half := (len(scratch) / 16) * 8
	x := bytesToFloat64(scratch[:half])
	y := bytesToFloat64(scratch[half : 2*half])
	passes := iterations / samples
	const a = 2.0
	for p := int64(0); p < passes; p++ {
		for i := range x {
			y[i] = a*x[i] + y[i]
		}
	}
	if len(y) > 0 {
		sink = y[0]
	}
	return Stats{Bytes: int64(len(scratch)) * passes}
}

// computeMemory splits iterations between memory-streaming and compute
// sub-iterations according to FractionMem.
func computeMemory(scratch []byte, k config.Kernel) Stats {
	memIters := int64(float64(k.Iterations) * k.FractionMem)
	compIters := k.Iterations - memIters
	mem := memoryBound(scratch, memIters, max64(k.Samples, 1))
	comp := computeBound(compIters)
	return Stats{FLOPs: comp.FLOPs, Bytes: mem.Bytes}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// ioBound blocks briefly on a synthetic I/O stall, standing in for a real
// blocking syscall without touching the filesystem or network.
func ioBound() {
	time.Sleep(50 * time.Microsecond)
}

// loadImbalance picks an effective iteration count uniformly within
// [(1-imbalance)*iterations, (1+imbalance)*iterations], keyed
// deterministically on the task's identity, and runs it as compute_bound.
func loadImbalance(k config.Kernel, id TaskID) Stats {
	return computeBound(LoadImbalanceIterations(k, id))
}

// LoadImbalanceIterations draws the effective iteration count for the
// load_imbalance kernel at id, uniformly within
// [(1-imbalance)*iterations, (1+imbalance)*iterations], keyed
// deterministically on the task's identity. internal/report calls this same
// function to account FLOPs for the iteration count actually executed,
// rather than the nominal, undrawn one.
func LoadImbalanceIterations(k config.Kernel, id TaskID) int64 {
	key := rng.Key{int64(id.Graph), int64(id.Timestep), int64(id.Point), k.Iterations, 1}
	u := rng.RandomUniform(key)
	lo := float64(k.Iterations) * (1 - k.Imbalance)
	hi := float64(k.Iterations) * (1 + k.Imbalance)
	eff := int64(lo + u*(hi-lo))
	if eff < 0 {
		eff = 0
	}
	return eff
}

// distImbalance draws an effective iteration count from the configured
// distribution, seeded deterministically from the task's identity, clamped
// to non-negative, and runs it as compute_bound.
func distImbalance(k config.Kernel, id TaskID) Stats {
	return computeBound(DistImbalanceIterations(k, id))
}

// DistImbalanceIterations draws the effective iteration count for the
// dist_imbalance kernel at id from the configured distribution, seeded
// deterministically from the task's identity, clamped to non-negative.
// internal/report calls this same function to account FLOPs for the
// iteration count actually executed, rather than the nominal, undrawn one.
func DistImbalanceIterations(k config.Kernel, id TaskID) int64 {
	src := rng.Source(id.key(2))
	var draw float64
	switch k.Dist.Tag {
	case config.DistUniform:
		draw = src.Float64() * k.Dist.Max
	case config.DistNormal:
		draw = distuv.Normal{Mu: float64(k.Iterations), Sigma: k.Dist.Std, Src: src}.Rand()
	case config.DistGamma:
		draw = distuv.Gamma{Alpha: k.Dist.A, Beta: 1.0 / k.Dist.B, Src: src}.Rand()
	case config.DistCauchy:
		draw = rng.Cauchy(src, k.Dist.A)
	default:
		draw = float64(k.Iterations)
	}
	if draw < 0 {
		draw = 0
	}
	return int64(draw)
}

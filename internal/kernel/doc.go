// Package kernel implements the synthetic per-task compute kernels: empty,
// busy_wait, the compute-bound pair, DGEMM, DAXPY, memory streaming, the
// compute/memory mix, a synthetic I/O stall, and the two imbalance
// variants. Each kernel reports the FLOPs and bytes it moved so
// internal/report can reuse the exact same formulas for accounting.
package kernel

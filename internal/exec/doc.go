// Package exec implements execute-point: the single per-task entry point
// that validates its inputs, writes the canonical output payload, and
// dispatches the configured kernel. It is a pure,
// reentrant function — no goroutines, no I/O beyond the kernel's own
// io_bound stall — so backends can call it from however many workers they
// like. Fatal conditions are returned as internal/bferr values rather than
// calling os.Exit; only cmd/taskbench turns a returned error into a process
// exit.
package exec

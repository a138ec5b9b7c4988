// Package report implements reporting/accounting: task, dependency,
// FLOPs, and byte totals for a configured graph, partitioned
// into local/non-local dependencies given a node count, plus the derived
// rates printed at the end of a run.
package report

// Package graph answers closed-form dependence queries for a task graph:
// the offset and width of a timestep's task row, the dependence-set index
// in force at a timestep, and the forward/reverse dependency intervals for
// a (dset, point) pair. No DAG is ever materialized — every query is pure
// arithmetic over the graph's configuration, optionally consulting
// internal/rng for the two random patterns.
//
// Interval is the shared shape of a dependency set: a list of inclusive
// [a,b] ranges of points in the previous timestep's row.
package graph

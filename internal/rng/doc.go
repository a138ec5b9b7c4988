// Package rng provides the deterministic hash-based random source the rest
// of taskbench builds on.
//
// # Reading Guide
//
// Start with hash.go: RandomUniform is the one primitive every dependence
// pattern and kernel that needs "randomness" actually calls. It is a pure
// function of its input tuple — no global state, no mutex, safe to call
// concurrently from any number of goroutines.
//
// Source derives a *rand.Rand from the same hash for callers that need a
// full distribution draw (Normal, Gamma, Cauchy) rather than a single
// uniform float. Two calls with the same tuple always produce the same
// sequence, which is what makes dist_imbalance and the output-size planner
// reproducible across processes and runs.
package rng

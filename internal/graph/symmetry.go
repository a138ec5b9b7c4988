package graph

import (
	"fmt"

	"github.com/taskbench/taskbench/internal/bferr"
	"github.com/taskbench/taskbench/internal/config"
)

// ValidateSymmetry checks, for every dset in [0, maxDependenceSets) and
// every point in that dset's widest row, that dependencies and
// reverse_dependencies form a mutually consistent bipartite matching: dst
// in dependencies(dset, src) iff src in reverse_dependencies(dset, dst),
// and neither side carries duplicate points. It samples every point of
// max_width rather than a specific timestep's row, since dset is a
// property of the pattern, not of any one row's width.
func ValidateSymmetry(g *config.TaskGraph) error {
	maxDS := MaxDependenceSets(g)
	W := g.MaxWidth

	for dset := 0; dset < maxDS; dset++ {
		fwd := make([][]bool, W)
		rev := make([][]bool, W)
		for p := 0; p < W; p++ {
			fwd[p] = make([]bool, W)
			rev[p] = make([]bool, W)

			for _, iv := range Dependencies(g, dset, p) {
				clamped, ok := iv.Clamp(W)
				if !ok {
					continue
				}
				for d := clamped.Lo; d <= clamped.Hi; d++ {
					if fwd[p][d] {
						return &bferr.ValidationError{
							Graph: g.GraphIndex,
							Reason: fmt.Sprintf(
								"duplicate dependency: dset=%d point=%d dep=%d", dset, p, d),
						}
					}
					fwd[p][d] = true
				}
			}
			for _, iv := range ReverseDependencies(g, dset, p) {
				clamped, ok := iv.Clamp(W)
				if !ok {
					continue
				}
				for d := clamped.Lo; d <= clamped.Hi; d++ {
					if rev[p][d] {
						return &bferr.ValidationError{
							Graph: g.GraphIndex,
							Reason: fmt.Sprintf(
								"duplicate reverse dependency: dset=%d point=%d dep=%d", dset, p, d),
						}
					}
					rev[p][d] = true
				}
			}
		}

		for src := 0; src < W; src++ {
			for dst := 0; dst < W; dst++ {
				if fwd[src][dst] != rev[dst][src] {
					return &bferr.ValidationError{
						Graph: g.GraphIndex,
						Reason: fmt.Sprintf(
							"dependency/reverse-dependency mismatch: dset=%d src=%d dst=%d forward=%v reverse=%v",
							dset, src, dst, fwd[src][dst], rev[dst][src]),
					}
				}
			}
		}
	}
	return nil
}

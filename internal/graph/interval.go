package graph

import "sort"

// Interval is an inclusive [Lo, Hi] range of points in a dependence row.
type Interval struct {
	Lo, Hi int
}

// Len reports how many points the interval covers.
func (iv Interval) Len() int {
	if iv.Hi < iv.Lo {
		return 0
	}
	return iv.Hi - iv.Lo + 1
}

// Clamp returns iv intersected with [0, width-1], and whether any points
// survive.
func (iv Interval) Clamp(width int) (Interval, bool) {
	lo, hi := iv.Lo, iv.Hi
	if lo < 0 {
		lo = 0
	}
	if hi > width-1 {
		hi = width - 1
	}
	if lo > hi {
		return Interval{}, false
	}
	return Interval{lo, hi}, true
}

// coalescePoints de-duplicates a set of points and folds consecutive runs
// into minimal inclusive intervals, satisfying the "no duplicates within a
// single point's materialized dependency list" invariant.
func coalescePoints(points []int) []Interval {
	if len(points) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(points))
	uniq := make([]int, 0, len(points))
	for _, p := range points {
		if !seen[p] {
			seen[p] = true
			uniq = append(uniq, p)
		}
	}
	sort.Ints(uniq)

	out := make([]Interval, 0, len(uniq))
	start := uniq[0]
	prev := uniq[0]
	for _, p := range uniq[1:] {
		if p == prev+1 {
			prev = p
			continue
		}
		out = append(out, Interval{start, prev})
		start, prev = p, p
	}
	out = append(out, Interval{start, prev})
	return out
}
